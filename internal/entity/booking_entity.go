package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"homestay-be/pkg/pricing"
)

type BookingStatus string
type PaymentStatus string
type PaymentMode string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"

	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"

	PaymentModeOnline PaymentMode = "online"
	PaymentModeCash   PaymentMode = "cash"
)

// bookingTransitions is the closed transition table for booking status.
// Anything not listed here is an invalid transition, full stop.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:   {BookingStatusConfirmed, BookingStatusCancelled, BookingStatusCompleted},
	BookingStatusConfirmed: {BookingStatusCancelled, BookingStatusCompleted},
	BookingStatusCancelled: {},
	BookingStatusCompleted: {},
}

func (s BookingStatus) CanTransition(to BookingStatus) bool {
	for _, next := range bookingTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

func (s BookingStatus) Terminal() bool {
	return len(bookingTransitions[s]) == 0
}

func (m PaymentMode) Valid() bool {
	return m == PaymentModeOnline || m == PaymentModeCash
}

type Booking struct {
	Id              uuid.UUID
	UserId          uuid.UUID
	AccommodationId uuid.UUID

	StayDate  time.Time
	GroupSize int
	MealType  pricing.MealType
	NeedStay  bool
	StayNight int

	Amount        float64
	PaymentMode   PaymentMode
	PaymentStatus PaymentStatus
	Status        BookingStatus

	// Cash-mode deposit bookkeeping.
	DepositAmount   float64
	RemainingAmount float64
	DepositPaid     bool

	// Contact details captured at checkout.
	GuestName  string
	GuestEmail string
	GuestPhone string

	RefundRequested bool
	CancelReason    string
	CancelledAt     *time.Time

	// Soft-delete flags per actor; the row survives for the other side.
	DeletedByUser  bool
	DeletedByAdmin bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Transition moves the booking to a new status, enforcing the transition
// table at construction time rather than leaving it to string comparisons
// scattered across handlers.
func (b *Booking) Transition(to BookingStatus) error {
	if !b.Status.CanTransition(to) {
		return fmt.Errorf("invalid booking transition %s -> %s", b.Status, to)
	}
	b.Status = to
	return nil
}

// MoneyCollected reports whether any payment was captured for this booking,
// which is what decides if a cancellation must trigger the refund engine.
func (b *Booking) MoneyCollected() bool {
	return b.PaymentStatus == PaymentStatusPaid || b.DepositPaid
}
