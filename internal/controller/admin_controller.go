package controller

import (
	"homestay-be/internal/dto"
	"homestay-be/internal/pkg/serverutils"
	"homestay-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IAdminController interface {
	RegisterRoutes(r fiber.Router)
	GetBookings(ctx *fiber.Ctx) error
	MarkCashPaid(ctx *fiber.Ctx) error
	GetRefunds(ctx *fiber.Ctx) error
	ApproveRefund(ctx *fiber.Ctx) error
	RejectRefund(ctx *fiber.Ctx) error
	ModerateTestimonial(ctx *fiber.Ctx) error
	GetDashboard(ctx *fiber.Ctx) error
	GetLogs(ctx *fiber.Ctx) error
}

type adminController struct {
	adminService       service.IAdminService
	testimonialService service.ITestimonialService
}

func NewAdminController(adminService service.IAdminService, testimonialService service.ITestimonialService) IAdminController {
	return &adminController{
		adminService:       adminService,
		testimonialService: testimonialService,
	}
}

func (c *adminController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/admin")
	h.Use(serverutils.JwtMiddleware)
	h.Use(serverutils.AdminMiddleware)
	h.Get("bookings", c.GetBookings)
	h.Get("refunds", c.GetRefunds)
	h.Get("dashboard", c.GetDashboard)
	h.Get("logs", c.GetLogs)
	h.Put("refund/:id/approve", c.ApproveRefund)
	h.Put("refund/:id/reject", c.RejectRefund)
	h.Put("testimonial/:id", c.ModerateTestimonial)
	h.Put(":id/paymentsatus-update", c.MarkCashPaid)
}

func (c *adminController) GetBookings(ctx *fiber.Ctx) error {
	status := ctx.Query("status")
	page := ctx.QueryInt("page", 1)
	limit := ctx.QueryInt("limit", 20)

	res, err := c.adminService.GetBookings(ctx.Context(), status, page, limit)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get bookings", res))
}

func (c *adminController) MarkCashPaid(ctx *fiber.Ctx) error {
	bookingId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid booking id")
	}

	res, err := c.adminService.MarkCashPaid(ctx.Context(), bookingId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success record cash payment", res))
}

func (c *adminController) GetRefunds(ctx *fiber.Ctx) error {
	status := ctx.Query("status")
	page := ctx.QueryInt("page", 1)
	limit := ctx.QueryInt("limit", 20)

	res, err := c.adminService.GetRefunds(ctx.Context(), status, page, limit)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get refunds", res))
}

func (c *adminController) ApproveRefund(ctx *fiber.Ctx) error {
	refundId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid refund id")
	}

	var req dto.AdminResolveRefundRequest
	if err := ctx.BodyParser(&req); err != nil && len(ctx.Body()) > 0 {
		return err
	}

	res, err := c.adminService.ApproveRefund(ctx.Context(), refundId, req.Note)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success approve refund", res))
}

func (c *adminController) RejectRefund(ctx *fiber.Ctx) error {
	refundId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid refund id")
	}

	var req dto.AdminResolveRefundRequest
	if err := ctx.BodyParser(&req); err != nil && len(ctx.Body()) > 0 {
		return err
	}

	res, err := c.adminService.RejectRefund(ctx.Context(), refundId, req.Note)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success reject refund", res))
}

func (c *adminController) ModerateTestimonial(ctx *fiber.Ctx) error {
	testimonialId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid testimonial id")
	}

	var req dto.ModerateTestimonialRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.testimonialService.Moderate(ctx.Context(), testimonialId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success moderate testimonial", res))
}

func (c *adminController) GetDashboard(ctx *fiber.Ctx) error {
	res, err := c.adminService.GetDashboard(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get dashboard", res))
}

func (c *adminController) GetLogs(ctx *fiber.Ctx) error {
	level := ctx.Query("level")
	limit := ctx.QueryInt("limit", 100)
	offset := ctx.QueryInt("offset", 0)

	logs, err := c.adminService.GetSystemLogs(level, limit, offset)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get logs", logs))
}
