package entity

import (
	"time"

	"github.com/google/uuid"
)

type RefundStatus string
type RefundMethod string

const (
	RefundStatusInitiated  RefundStatus = "initiated"
	RefundStatusProcessing RefundStatus = "processing"
	RefundStatusFailed     RefundStatus = "failed"
	RefundStatusRefunded   RefundStatus = "refunded"
	RefundStatusCancelled  RefundStatus = "cancelled"

	RefundMethodRazorpay RefundMethod = "razorpay"
	RefundMethodCash     RefundMethod = "cash"
)

var refundTransitions = map[RefundStatus][]RefundStatus{
	RefundStatusInitiated:  {RefundStatusProcessing, RefundStatusRefunded, RefundStatusFailed, RefundStatusCancelled},
	RefundStatusProcessing: {RefundStatusRefunded, RefundStatusFailed},
	// A failed gateway refund sits in the admin queue until it is settled
	// out of band.
	RefundStatusFailed: {RefundStatusRefunded},
	RefundStatusRefunded:   {},
	RefundStatusCancelled:  {},
}

func (s RefundStatus) CanTransition(to RefundStatus) bool {
	for _, next := range refundTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

func (s RefundStatus) Terminal() bool {
	return len(refundTransitions[s]) == 0
}

// Deletable reports whether a refund request in this status may be removed.
// In-flight requests (initiated/processing) must survive until they settle.
func (s RefundStatus) Deletable() bool {
	return s != RefundStatusInitiated && s != RefundStatusProcessing
}

// TimelineEntry is one audit step in a refund's life. The full list is
// persisted as a JSON column on the refund row.
type TimelineEntry struct {
	Status  RefundStatus `json:"status"`
	Message string       `json:"message"`
	At      time.Time    `json:"at"`
}

type RefundRequest struct {
	Id        uuid.UUID
	BookingId uuid.UUID
	UserId    uuid.UUID
	PaymentId *uuid.UUID

	Method          RefundMethod
	Amount          float64
	Fee             float64
	Status          RefundStatus
	GatewayRefundId *string
	Reason          string

	Timeline []TimelineEntry

	InitiatedAt time.Time
	ProcessedAt *time.Time
	RefundedAt  *time.Time
	FailedAt    *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	// Populated on detail queries.
	User    User
	Booking Booking
}

// Advance applies a status transition and records it on the timeline.
func (r *RefundRequest) Advance(to RefundStatus, message string, at time.Time) error {
	if !r.Status.CanTransition(to) {
		return InvalidTransitionError{From: string(r.Status), To: string(to)}
	}
	r.Status = to
	r.Timeline = append(r.Timeline, TimelineEntry{Status: to, Message: message, At: at})

	switch to {
	case RefundStatusProcessing:
		r.ProcessedAt = &at
	case RefundStatusRefunded:
		r.RefundedAt = &at
	case RefundStatusFailed:
		r.FailedAt = &at
	}
	return nil
}

// InvalidTransitionError is returned when a status change is not in the
// transition table.
type InvalidTransitionError struct {
	From string
	To   string
}

func (e InvalidTransitionError) Error() string {
	return "invalid refund transition " + e.From + " -> " + e.To
}
