package contract

import (
	"context"

	"github.com/google/uuid"

	"homestay-be/internal/entity"
	"homestay-be/internal/repository/specification"
)

type AccommodationRepository interface {
	Create(ctx context.Context, acc *entity.Accommodation) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Accommodation, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Accommodation, error)

	// UpdateRates patches the rate card. Capacity fields are excluded on
	// purpose; they only move through the conditional updates below.
	UpdateRates(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error

	// ReserveCapacity atomically increments booked_members by members,
	// guarded by max_members in the same statement. Returns
	// apperror.CapacityExceeded when the guard fails.
	ReserveCapacity(ctx context.Context, id uuid.UUID, members int) error

	// ReleaseCapacity atomically decrements booked_members, never below zero.
	ReleaseCapacity(ctx context.Context, id uuid.UUID, members int) error

	// UpdateMaxMembers conditionally sets max_members; rejected when the new
	// ceiling would fall below the current committed occupancy.
	UpdateMaxMembers(ctx context.Context, id uuid.UUID, maxMembers int) error
}
