package dto

import (
	"time"

	"github.com/google/uuid"
)

type RefundTimelineEntryDTO struct {
	Status  string    `json:"status"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

type RefundResponse struct {
	Id          uuid.UUID                `json:"id"`
	BookingId   uuid.UUID                `json:"booking_id"`
	Method      string                   `json:"method"`
	Amount      float64                  `json:"amount"`
	Fee         float64                  `json:"fee"`
	Status      string                   `json:"status"`
	Reason      string                   `json:"reason"`
	Timeline    []RefundTimelineEntryDTO `json:"timeline"`
	InitiatedAt time.Time                `json:"initiated_at"`
	RefundedAt  *time.Time               `json:"refunded_at,omitempty"`
}

// --- Admin-side refund management ---

type AdminRefundListResponse struct {
	Id        uuid.UUID           `json:"id"`
	User      AdminRefundUserInfo `json:"user"`
	BookingId uuid.UUID           `json:"booking_id"`
	Method    string              `json:"method"`
	Amount    float64             `json:"amount"`
	Fee       float64             `json:"fee"`
	Status    string              `json:"status"`
	Reason    string              `json:"reason"`
	CreatedAt time.Time           `json:"created_at"`
}

type AdminRefundUserInfo struct {
	Id       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	FullName string    `json:"full_name"`
}

type AdminResolveRefundRequest struct {
	Note string `json:"note"`
}
