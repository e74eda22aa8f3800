package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateTestimonialRequest struct {
	Rating  int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment string `json:"comment" validate:"required,min=5"`
}

type TestimonialResponse struct {
	Id        uuid.UUID `json:"id"`
	BookingId uuid.UUID `json:"booking_id"`
	GuestName string    `json:"guest_name"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type ModerateTestimonialRequest struct {
	Status string `json:"status" validate:"required,oneof=approved rejected"`
}
