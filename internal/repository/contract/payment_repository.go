package contract

import (
	"context"

	"homestay-be/internal/entity"
	"homestay-be/internal/repository/specification"
)

type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Payment, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Payment, error)
	Update(ctx context.Context, payment *entity.Payment) error

	// MarkPaid conditionally flips a pending payment to paid, attaching the
	// gateway payment id. Duplicate webhook deliveries observe won=false.
	MarkPaid(ctx context.Context, orderId, paymentId, method string) (won bool, err error)

	SumAmountByStatus(ctx context.Context, status entity.GatewayPaymentStatus) (float64, error)
}
