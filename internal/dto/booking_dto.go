package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	StayDate    string `json:"stay_date" validate:"required"` // YYYY-MM-DD
	GroupSize   int    `json:"group_size" validate:"required,gt=0"`
	MealType    string `json:"meal_type" validate:"required,oneof=veg nonveg"`
	NeedStay    bool   `json:"need_stay"`
	StayNight   int    `json:"stay_night" validate:"gte=0"`
	PaymentMode string `json:"payment_mode" validate:"required,oneof=online cash"`
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone" validate:"required,min=10,max=15"`
}

// CreateBookingResponse covers both flows: online checkout returns the
// gateway order the client hands to Razorpay's JS SDK; cash mode returns the
// booking with deposit figures straight away.
type CreateBookingResponse struct {
	BookingId       uuid.UUID        `json:"booking_id"`
	Amount          float64          `json:"amount"`
	DepositAmount   float64          `json:"deposit_amount,omitempty"`
	RemainingAmount float64          `json:"remaining_amount,omitempty"`
	PaymentMode     string           `json:"payment_mode"`
	Status          string           `json:"status"`
	RazorpayOrder   *GatewayOrderDTO `json:"razorpay_order,omitempty"`
	RazorpayKey     string           `json:"razorpay_key,omitempty"`
}

type GatewayOrderDTO struct {
	OrderId  string  `json:"order_id"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

type VerifyPaymentRequest struct {
	RazorpayPaymentId string `json:"razorpay_payment_id" validate:"required"`
	RazorpayOrderId   string `json:"razorpay_order_id" validate:"required"`
	RazorpaySignature string `json:"razorpay_signature" validate:"required"`
}

type VerifyPaymentResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type CheckConfirmationResponse struct {
	Confirmed bool             `json:"confirmed"`
	Booking   *BookingResponse `json:"booking,omitempty"`
}

type CancelBookingRequest struct {
	Reason string `json:"reason" validate:"required,min=5"`
}

type CancelBookingResponse struct {
	BookingId    uuid.UUID  `json:"booking_id"`
	Status       string     `json:"status"`
	RefundId     *uuid.UUID `json:"refund_id,omitempty"`
	RefundAmount float64    `json:"refund_amount,omitempty"`
	RefundStatus string     `json:"refund_status,omitempty"`
}

type BookingResponse struct {
	Id              uuid.UUID  `json:"id"`
	AccommodationId uuid.UUID  `json:"accommodation_id"`
	StayDate        string     `json:"stay_date"`
	GroupSize       int        `json:"group_size"`
	MealType        string     `json:"meal_type"`
	NeedStay        bool       `json:"need_stay"`
	StayNight       int        `json:"stay_night"`
	Amount          float64    `json:"amount"`
	PaymentMode     string     `json:"payment_mode"`
	PaymentStatus   string     `json:"payment_status"`
	Status          string     `json:"status"`
	DepositAmount   float64    `json:"deposit_amount,omitempty"`
	RemainingAmount float64    `json:"remaining_amount,omitempty"`
	DepositPaid     bool       `json:"deposit_paid"`
	RefundRequested bool       `json:"refund_requested"`
	CancelReason    string     `json:"cancel_reason,omitempty"`
	CancelledAt     *time.Time `json:"cancelled_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}
