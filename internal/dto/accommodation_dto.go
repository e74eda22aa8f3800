package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateAccommodationRequest struct {
	Name          string  `json:"name" validate:"required"`
	Description   string  `json:"description"`
	MaxMembers    int     `json:"max_members" validate:"required,gt=0"`
	VegRate       float64 `json:"veg_rate" validate:"required,gt=0"`
	NonVegRate    float64 `json:"nonveg_rate" validate:"required,gt=0"`
	PricePerNight float64 `json:"price_per_night" validate:"required,gt=0"`
}

// UpdateAccommodationRequest uses pointers so the admin can patch a subset of
// fields; nil means leave unchanged.
type UpdateAccommodationRequest struct {
	Name          *string  `json:"name"`
	Description   *string  `json:"description"`
	MaxMembers    *int     `json:"max_members" validate:"omitempty,gt=0"`
	VegRate       *float64 `json:"veg_rate" validate:"omitempty,gt=0"`
	NonVegRate    *float64 `json:"nonveg_rate" validate:"omitempty,gt=0"`
	PricePerNight *float64 `json:"price_per_night" validate:"omitempty,gt=0"`
}

type AccommodationResponse struct {
	Id               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	MaxMembers       int       `json:"max_members"`
	BookedMembers    int       `json:"booked_members"`
	AvailableMembers int       `json:"available_members"`
	VegRate          float64   `json:"veg_rate"`
	NonVegRate       float64   `json:"nonveg_rate"`
	PricePerNight    float64   `json:"price_per_night"`
	UpdatedAt        time.Time `json:"updated_at"`
}
