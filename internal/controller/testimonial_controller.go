package controller

import (
	"homestay-be/internal/dto"
	"homestay-be/internal/pkg/serverutils"
	"homestay-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ITestimonialController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	GetApproved(ctx *fiber.Ctx) error
}

type testimonialController struct {
	testimonialService service.ITestimonialService
}

func NewTestimonialController(testimonialService service.ITestimonialService) ITestimonialController {
	return &testimonialController{
		testimonialService: testimonialService,
	}
}

func (c *testimonialController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/testimonial")
	// Approved testimonials are public marketing content.
	h.Get("", c.GetApproved)
	h.Post(":bookingId", serverutils.JwtMiddleware, c.Create)
}

func (c *testimonialController) Create(ctx *fiber.Ctx) error {
	userId, _, err := currentUser(ctx)
	if err != nil {
		return err
	}

	bookingId, err := uuid.Parse(ctx.Params("bookingId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid booking id")
	}

	var req dto.CreateTestimonialRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.testimonialService.Create(ctx.Context(), userId, bookingId, &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create testimonial", res))
}

func (c *testimonialController) GetApproved(ctx *fiber.Ctx) error {
	res, err := c.testimonialService.GetApproved(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get testimonials", res))
}
