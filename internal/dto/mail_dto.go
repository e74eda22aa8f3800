package dto

import "github.com/google/uuid"

type MailKind string

const (
	MailKindBookingConfirmation MailKind = "booking_confirmation"
	MailKindBookingCancellation MailKind = "booking_cancellation"
	MailKindRefundUpdate        MailKind = "refund_update"
)

// MailMessage is the payload queued on the in-process mail topic.
type MailMessage struct {
	Kind         MailKind  `json:"kind"`
	ToEmail      string    `json:"to_email"`
	GuestName    string    `json:"guest_name"`
	StayDate     string    `json:"stay_date,omitempty"`
	Amount       float64   `json:"amount,omitempty"`
	RefundAmount float64   `json:"refund_amount,omitempty"`
	Fee          float64   `json:"fee,omitempty"`
	RefundStatus string    `json:"refund_status,omitempty"`
	BookingId    uuid.UUID `json:"booking_id"`
}
