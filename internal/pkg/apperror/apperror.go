package apperror

import (
	"errors"
	"fmt"
)

// Code classifies an application error so the HTTP layer can pick a status
// without string-matching messages.
type Code string

const (
	CodeValidation       Code = "VALIDATION_ERROR"
	CodeNotFound         Code = "NOT_FOUND"
	CodeCapacityExceeded Code = "CAPACITY_EXCEEDED"
	CodeInvalidSignature Code = "INVALID_SIGNATURE"
	CodePaymentGateway   Code = "PAYMENT_GATEWAY_ERROR"
	CodeConflict         Code = "CONFLICT"
	CodeAuthorization    Code = "AUTHORIZATION_ERROR"
)

type AppError struct {
	Code    Code
	Message string
	Err     error // wrapped cause, optional
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code Code, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

func Wrap(code Code, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func Validation(message string) *AppError {
	return New(CodeValidation, message)
}

func NotFound(resource string) *AppError {
	return New(CodeNotFound, resource+" not found")
}

func CapacityExceeded(message string) *AppError {
	return New(CodeCapacityExceeded, message)
}

func InvalidSignature(message string) *AppError {
	return New(CodeInvalidSignature, message)
}

func PaymentGateway(message string, err error) *AppError {
	return Wrap(CodePaymentGateway, message, err)
}

func Conflict(message string) *AppError {
	return New(CodeConflict, message)
}

func Authorization(message string) *AppError {
	return New(CodeAuthorization, message)
}

// Is reports whether err carries the given code anywhere in its chain.
func Is(err error, code Code) bool {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Code == code
	}
	return false
}

// HTTPStatus maps an error code to the status the request boundary returns.
func HTTPStatus(err error) int {
	var ae *AppError
	if !errors.As(err, &ae) {
		return 500
	}
	switch ae.Code {
	case CodeValidation:
		return 400
	case CodeAuthorization:
		return 403
	case CodeNotFound:
		return 404
	case CodeCapacityExceeded, CodeConflict:
		return 409
	case CodeInvalidSignature:
		return 400
	case CodePaymentGateway:
		return 502
	default:
		return 500
	}
}
