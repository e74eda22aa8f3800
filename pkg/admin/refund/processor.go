package refund

import (
	"context"
	"time"

	"homestay-be/internal/entity"
	"homestay-be/internal/pkg/apperror"
	"homestay-be/internal/pkg/logger"
	"homestay-be/internal/repository/specification"
	"homestay-be/internal/repository/unitofwork"
	adminEvents "homestay-be/pkg/admin/events"

	"github.com/google/uuid"
)

// ResolveResult contains the outcome of an admin refund resolution
type ResolveResult struct {
	RefundId    uuid.UUID
	Status      entity.RefundStatus
	Amount      float64
	ProcessedAt time.Time
}

// Processor handles the admin side of the refund queue: cash refunds
// stay initiated until someone here settles them, and failed gateway
// refunds land here for manual resolution.
type Processor struct {
	logger    logger.ILogger
	publisher adminEvents.Publisher
}

func NewProcessor(logger logger.ILogger, publisher adminEvents.Publisher) *Processor {
	return &Processor{
		logger:    logger,
		publisher: publisher,
	}
}

// GetAll retrieves paginated refund requests with optional status filter
func (p *Processor) GetAll(ctx context.Context, uow unitofwork.UnitOfWork, page, limit int, status string) ([]*entity.RefundRequest, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	var specs []specification.Specification
	if status != "" {
		specs = append(specs, specification.Filter("status", status))
	}
	specs = append(specs, specification.Pagination{Limit: limit, Offset: offset})
	specs = append(specs, specification.OrderBy{Field: "created_at", Desc: true})

	return uow.RefundRepository().FindAllWithDetails(ctx, specs...)
}

// Approve settles an open refund request as refunded. For cash refunds
// this records the hand-back; for failed online refunds it records an
// out-of-band resolution.
func (p *Processor) Approve(ctx context.Context, uow unitofwork.UnitOfWork, refundId uuid.UUID, note string) (*ResolveResult, error) {
	refund, err := uow.RefundRepository().FindOne(ctx, specification.ByID{ID: refundId})
	if err != nil {
		return nil, err
	}
	if refund == nil {
		return nil, apperror.NotFound("refund request")
	}

	if refund.Status.Terminal() {
		return nil, apperror.Conflict("refund already settled")
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	now := time.Now()
	message := "settled by admin"
	if note != "" {
		message = note
	}
	if err := refund.Advance(entity.RefundStatusRefunded, message, now); err != nil {
		return nil, apperror.Conflict(err.Error())
	}

	if err := uow.RefundRepository().Update(ctx, refund); err != nil {
		return nil, err
	}

	// An online refund settled here (typically after a gateway failure)
	// still has to close out its payment row.
	if refund.PaymentId != nil {
		pay, err := uow.PaymentRepository().FindOne(ctx, specification.ByID{ID: *refund.PaymentId})
		if err != nil {
			return nil, err
		}
		if pay != nil && pay.Status != entity.GatewayPaymentRefunded {
			pay.Status = entity.GatewayPaymentRefunded
			if err := uow.PaymentRepository().Update(ctx, pay); err != nil {
				return nil, err
			}
		}
	}

	p.logger.Info("ADMIN", "Approved refund request", map[string]interface{}{
		"refundId":  refundId.String(),
		"bookingId": refund.BookingId.String(),
		"amount":    refund.Amount,
		"note":      note,
	})

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	p.publisher.PublishRefundResolved(ctx, refundId, refund.BookingId, refund.UserId, string(refund.Status), refund.Amount, note)

	return &ResolveResult{
		RefundId:    refundId,
		Status:      refund.Status,
		Amount:      refund.Amount,
		ProcessedAt: now,
	}, nil
}

// Reject closes an open refund request without paying out.
func (p *Processor) Reject(ctx context.Context, uow unitofwork.UnitOfWork, refundId uuid.UUID, note string) (*ResolveResult, error) {
	refund, err := uow.RefundRepository().FindOne(ctx, specification.ByID{ID: refundId})
	if err != nil {
		return nil, err
	}
	if refund == nil {
		return nil, apperror.NotFound("refund request")
	}

	if refund.Status != entity.RefundStatusInitiated {
		return nil, apperror.Conflict("only open refund requests can be rejected")
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	now := time.Now()
	message := "rejected by admin"
	if note != "" {
		message = note
	}
	if err := refund.Advance(entity.RefundStatusCancelled, message, now); err != nil {
		return nil, apperror.Conflict(err.Error())
	}

	if err := uow.RefundRepository().Update(ctx, refund); err != nil {
		return nil, err
	}

	p.logger.Info("ADMIN", "Rejected refund request", map[string]interface{}{
		"refundId":  refundId.String(),
		"bookingId": refund.BookingId.String(),
		"note":      note,
	})

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	p.publisher.PublishRefundResolved(ctx, refundId, refund.BookingId, refund.UserId, string(refund.Status), refund.Amount, note)

	return &ResolveResult{
		RefundId:    refundId,
		Status:      refund.Status,
		Amount:      refund.Amount,
		ProcessedAt: now,
	}, nil
}
