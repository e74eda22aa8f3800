package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"homestay-be/internal/pkg/apperror"
)

// ErrorHandlerMiddleware is installed as the fiber app's ErrorHandler.
// It maps application error codes to HTTP statuses so controllers can
// simply return errors from services.
func ErrorHandlerMiddleware(ctx *fiber.Ctx, err error) error {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return ctx.Status(apperror.HTTPStatus(err)).JSON(ErrorResponse(apperror.HTTPStatus(err), appErr.Message))
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
	}

	return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(fiber.StatusInternalServerError, "Internal server error"))
}
