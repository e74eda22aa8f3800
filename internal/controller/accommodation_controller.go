package controller

import (
	"homestay-be/internal/dto"
	"homestay-be/internal/pkg/serverutils"
	"homestay-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IAccommodationController interface {
	RegisterRoutes(r fiber.Router)
	GetAll(ctx *fiber.Ctx) error
	GetOne(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
}

type accommodationController struct {
	accommodationService service.IAccommodationService
}

func NewAccommodationController(accommodationService service.IAccommodationService) IAccommodationController {
	return &accommodationController{
		accommodationService: accommodationService,
	}
}

func (c *accommodationController) RegisterRoutes(r fiber.Router) {
	// Listing is public so guests can browse before signing up.
	h := r.Group("/accommodation")
	h.Get("", c.GetAll)
	h.Get(":id", c.GetOne)

	admin := r.Group("/admin/accommodation")
	admin.Use(serverutils.JwtMiddleware)
	admin.Use(serverutils.AdminMiddleware)
	admin.Post("", c.Create)
	admin.Put(":id", c.Update)
}

func (c *accommodationController) GetAll(ctx *fiber.Ctx) error {
	res, err := c.accommodationService.GetAll(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get accommodations", res))
}

func (c *accommodationController) GetOne(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid accommodation id")
	}

	res, err := c.accommodationService.GetOne(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get accommodation", res))
}

func (c *accommodationController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateAccommodationRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.accommodationService.Create(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create accommodation", res))
}

func (c *accommodationController) Update(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid accommodation id")
	}

	var req dto.UpdateAccommodationRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.accommodationService.Update(ctx.Context(), id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success update accommodation", res))
}
