package controller

import (
	"homestay-be/internal/pkg/serverutils"
	"homestay-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IRefundController interface {
	RegisterRoutes(r fiber.Router)
	MyRefunds(ctx *fiber.Ctx) error
	GetOne(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type refundController struct {
	refundService service.IRefundService
}

func NewRefundController(refundService service.IRefundService) IRefundController {
	return &refundController{
		refundService: refundService,
	}
}

func (c *refundController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/refund")
	h.Use(serverutils.JwtMiddleware)
	h.Get("my-refunds", c.MyRefunds)
	h.Get(":id", c.GetOne)
	h.Delete(":id", c.Delete)
}

func (c *refundController) MyRefunds(ctx *fiber.Ctx) error {
	userId, _, err := currentUser(ctx)
	if err != nil {
		return err
	}

	res, err := c.refundService.MyRefunds(ctx.Context(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get refunds", res))
}

func (c *refundController) GetOne(ctx *fiber.Ctx) error {
	userId, isAdmin, err := currentUser(ctx)
	if err != nil {
		return err
	}

	refundId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid refund id")
	}

	res, err := c.refundService.GetOne(ctx.Context(), userId, isAdmin, refundId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get refund", res))
}

func (c *refundController) Delete(ctx *fiber.Ctx) error {
	userId, isAdmin, err := currentUser(ctx)
	if err != nil {
		return err
	}

	refundId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid refund id")
	}

	if err := c.refundService.Delete(ctx.Context(), userId, isAdmin, refundId); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete refund", nil))
}
