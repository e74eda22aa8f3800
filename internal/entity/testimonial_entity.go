package entity

import (
	"time"

	"github.com/google/uuid"
)

type TestimonialStatus string

const (
	TestimonialStatusPending  TestimonialStatus = "pending"
	TestimonialStatusApproved TestimonialStatus = "approved"
	TestimonialStatusRejected TestimonialStatus = "rejected"
)

// Testimonial is a booking-scoped review. One per completed booking.
type Testimonial struct {
	Id        uuid.UUID
	BookingId uuid.UUID
	UserId    uuid.UUID
	Rating    int
	Comment   string
	Status    TestimonialStatus
	CreatedAt time.Time
	UpdatedAt time.Time

	User User
}
