package dto

import (
	"time"

	"github.com/google/uuid"
)

type AdminBookingListResponse struct {
	Id            uuid.UUID `json:"id"`
	GuestName     string    `json:"guest_name"`
	GuestEmail    string    `json:"guest_email"`
	GuestPhone    string    `json:"guest_phone"`
	StayDate      string    `json:"stay_date"`
	GroupSize     int       `json:"group_size"`
	Amount        float64   `json:"amount"`
	PaymentMode   string    `json:"payment_mode"`
	PaymentStatus string    `json:"payment_status"`
	Status        string    `json:"status"`
	DepositPaid   bool      `json:"deposit_paid"`
	CreatedAt     time.Time `json:"created_at"`
}

type DashboardResponse struct {
	TotalBookings     int64   `json:"total_bookings"`
	PendingBookings   int64   `json:"pending_bookings"`
	ConfirmedBookings int64   `json:"confirmed_bookings"`
	CancelledBookings int64   `json:"cancelled_bookings"`
	CompletedBookings int64   `json:"completed_bookings"`
	TotalRevenue      float64 `json:"total_revenue"`
	TotalRefunded     float64 `json:"total_refunded"`
	OccupiedMembers   int     `json:"occupied_members"`
	CapacityMembers   int     `json:"capacity_members"`
	PendingRefunds    int64   `json:"pending_refunds"`
}

type MarkCashPaidResponse struct {
	BookingId     uuid.UUID `json:"booking_id"`
	PaymentStatus string    `json:"payment_status"`
	Status        string    `json:"status"`
	DepositPaid   bool      `json:"deposit_paid"`
}
