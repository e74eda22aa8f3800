package contract

import (
	"context"
	"time"

	"github.com/google/uuid"

	"homestay-be/internal/entity"
	"homestay-be/internal/repository/specification"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Booking, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Booking, error)
	FindAllWithUser(ctx context.Context, specs ...specification.Specification) ([]*entity.Booking, error)
	Update(ctx context.Context, booking *entity.Booking) error
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// ConfirmPending is the idempotency gate for booking confirmation: a
	// conditional update that flips status pending->confirmed and payment
	// status to paid. Exactly one concurrent caller observes won=true; webhook
	// retries and duplicate verification calls observe won=false and stop.
	ConfirmPending(ctx context.Context, id uuid.UUID) (won bool, err error)

	// MarkCashDepositPaid conditionally records a cash deposit, guarded by
	// payment_mode='cash' AND payment_status='pending' in the statement.
	MarkCashDepositPaid(ctx context.Context, id uuid.UUID) (won bool, err error)

	// CompleteStale bulk-transitions pending/confirmed bookings whose stay
	// date passed before the cutoff into completed. Safe to re-run.
	CompleteStale(ctx context.Context, before time.Time) (int64, error)
}
