package controller

import (
	"homestay-be/internal/pkg/serverutils"
	"homestay-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IPaymentController interface {
	RegisterRoutes(r fiber.Router)
	Webhook(ctx *fiber.Ctx) error
}

type paymentController struct {
	paymentService service.IPaymentService
}

func NewPaymentController(paymentService service.IPaymentService) IPaymentController {
	return &paymentController{
		paymentService: paymentService,
	}
}

func (c *paymentController) RegisterRoutes(r fiber.Router) {
	// No auth middleware; the HMAC signature is the authentication.
	h := r.Group("/razorpay")
	h.Post("webhook", c.Webhook)
}

// Webhook receives gateway deliveries. The signature is computed over
// the raw body, so it must be read before any parsing.
func (c *paymentController) Webhook(ctx *fiber.Ctx) error {
	signature := ctx.Get("X-Razorpay-Signature")
	body := ctx.Body()

	if err := c.paymentService.HandleWebhook(ctx.Context(), body, signature); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("ok", nil))
}
