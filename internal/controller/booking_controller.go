package controller

import (
	"homestay-be/internal/dto"
	"homestay-be/internal/pkg/serverutils"
	"homestay-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IBookingController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	VerifyPayment(ctx *fiber.Ctx) error
	CheckConfirmation(ctx *fiber.Ctx) error
	Cancel(ctx *fiber.Ctx) error
	MyBookings(ctx *fiber.Ctx) error
	RefundStatus(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type bookingController struct {
	bookingService service.IBookingService
	paymentService service.IPaymentService
}

func NewBookingController(bookingService service.IBookingService, paymentService service.IPaymentService) IBookingController {
	return &bookingController{
		bookingService: bookingService,
		paymentService: paymentService,
	}
}

func (c *bookingController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/booking")
	h.Use(serverutils.JwtMiddleware)
	h.Get("my-bookings", c.MyBookings)
	h.Get("check-confirmation/:orderId", c.CheckConfirmation)
	h.Get("refund-status/:id", c.RefundStatus)
	h.Put("cancel-booking/:id", c.Cancel)
	h.Post(":accommodationId", c.Create)
	h.Post(":accommodationId/verify-payment", c.VerifyPayment)
	h.Delete(":id", c.Delete)
}

func currentUser(ctx *fiber.Ctx) (uuid.UUID, bool, error) {
	userIdStr, ok := ctx.Locals("user_id").(string)
	if !ok {
		return uuid.Nil, false, fiber.ErrUnauthorized
	}
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return uuid.Nil, false, fiber.ErrUnauthorized
	}
	role, _ := ctx.Locals("role").(string)
	return userId, role == "admin", nil
}

func (c *bookingController) Create(ctx *fiber.Ctx) error {
	userId, _, err := currentUser(ctx)
	if err != nil {
		return err
	}

	accommodationId, err := uuid.Parse(ctx.Params("accommodationId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid accommodation id")
	}

	var req dto.CreateBookingRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.bookingService.Create(ctx.Context(), userId, accommodationId, &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create booking", res))
}

func (c *bookingController) VerifyPayment(ctx *fiber.Ctx) error {
	userId, _, err := currentUser(ctx)
	if err != nil {
		return err
	}

	var req dto.VerifyPaymentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.paymentService.VerifyPayment(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Payment verified", res))
}

func (c *bookingController) CheckConfirmation(ctx *fiber.Ctx) error {
	userId, _, err := currentUser(ctx)
	if err != nil {
		return err
	}

	orderId := ctx.Params("orderId")
	if orderId == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing order id")
	}

	res, err := c.bookingService.CheckConfirmation(ctx.Context(), userId, orderId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success check confirmation", res))
}

func (c *bookingController) Cancel(ctx *fiber.Ctx) error {
	userId, isAdmin, err := currentUser(ctx)
	if err != nil {
		return err
	}

	bookingId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid booking id")
	}

	var req dto.CancelBookingRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.bookingService.Cancel(ctx.Context(), userId, isAdmin, bookingId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success cancel booking", res))
}

func (c *bookingController) MyBookings(ctx *fiber.Ctx) error {
	userId, _, err := currentUser(ctx)
	if err != nil {
		return err
	}

	res, err := c.bookingService.MyBookings(ctx.Context(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get bookings", res))
}

func (c *bookingController) RefundStatus(ctx *fiber.Ctx) error {
	userId, _, err := currentUser(ctx)
	if err != nil {
		return err
	}

	bookingId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid booking id")
	}

	res, err := c.bookingService.GetRefundStatus(ctx.Context(), userId, bookingId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get refund status", res))
}

func (c *bookingController) Delete(ctx *fiber.Ctx) error {
	userId, isAdmin, err := currentUser(ctx)
	if err != nil {
		return err
	}

	bookingId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid booking id")
	}

	if err := c.bookingService.SoftDelete(ctx.Context(), userId, isAdmin, bookingId); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete booking", nil))
}
