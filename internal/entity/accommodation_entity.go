package entity

import (
	"time"

	"github.com/google/uuid"

	"homestay-be/pkg/pricing"
)

// Accommodation is the bookable property record. BookedMembers is the one
// piece of truly shared mutable state in the system; it is only ever mutated
// through the repository's atomic conditional updates, never by
// read-modify-write in application code.
type Accommodation struct {
	Id            uuid.UUID
	Name          string
	Description   string
	MaxMembers    int
	BookedMembers int
	VegRate       float64
	NonVegRate    float64
	PricePerNight float64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (a *Accommodation) Rates() pricing.Rates {
	return pricing.Rates{
		VegRate:       a.VegRate,
		NonVegRate:    a.NonVegRate,
		PricePerNight: a.PricePerNight,
	}
}

func (a *Accommodation) AvailableMembers() int {
	return a.MaxMembers - a.BookedMembers
}
