package contract

import (
	"context"

	"github.com/google/uuid"

	"homestay-be/internal/entity"
	"homestay-be/internal/repository/specification"
)

type RefundRepository interface {
	Create(ctx context.Context, refund *entity.RefundRequest) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.RefundRequest, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.RefundRequest, error)
	FindAllWithDetails(ctx context.Context, specs ...specification.Specification) ([]*entity.RefundRequest, error)
	Update(ctx context.Context, refund *entity.RefundRequest) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	SumAmountByStatus(ctx context.Context, status entity.RefundStatus) (float64, error)
}
