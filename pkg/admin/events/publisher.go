package events

import (
	"context"
	"time"

	"homestay-be/internal/pkg/logger"
	pkgEvents "homestay-be/pkg/events"
	pktNats "homestay-be/pkg/nats"

	"github.com/google/uuid"
)

// Publisher abstracts event publishing for admin operations
type Publisher interface {
	PublishRefundResolved(ctx context.Context, refundId, bookingId, userId uuid.UUID, status string, amount float64, note string)
	PublishCashPaymentRecorded(ctx context.Context, bookingId uuid.UUID, amount float64)
}

// NatsPublisher implements Publisher using NATS
type NatsPublisher struct {
	publisher *pktNats.Publisher
	logger    logger.ILogger
}

func NewNatsPublisher(publisher *pktNats.Publisher, logger logger.ILogger) *NatsPublisher {
	return &NatsPublisher{
		publisher: publisher,
		logger:    logger,
	}
}

// PublishRefundResolved emits REFUND_UPDATED when an admin settles a
// refund request either way.
func (p *NatsPublisher) PublishRefundResolved(ctx context.Context, refundId, bookingId, userId uuid.UUID, status string, amount float64, note string) {
	if p.publisher == nil {
		return
	}

	now := time.Now()
	evt := pkgEvents.BaseEvent{
		Type: pkgEvents.TypeRefundUpdated,
		Data: map[string]interface{}{
			"refund_id":   refundId,
			"booking_id":  bookingId,
			"user_id":     userId,
			"status":      status,
			"amount":      amount,
			"note":        note,
			"entity_type": "refund",
			"entity_id":   refundId.String(),
			"occurred_at": now,
		},
		OccurredAt: now,
	}

	if err := p.publisher.Publish(ctx, evt); err != nil {
		p.logger.Error("ADMIN", "Failed to publish REFUND_UPDATED event", map[string]interface{}{"error": err.Error()})
	}
}

// PublishCashPaymentRecorded emits PAYMENT_RECEIVED for cash deposits.
func (p *NatsPublisher) PublishCashPaymentRecorded(ctx context.Context, bookingId uuid.UUID, amount float64) {
	if p.publisher == nil {
		return
	}

	now := time.Now()
	evt := pkgEvents.BaseEvent{
		Type: pkgEvents.TypePaymentReceived,
		Data: map[string]interface{}{
			"booking_id":  bookingId,
			"amount":      amount,
			"method":      "cash",
			"entity_type": "booking",
			"entity_id":   bookingId.String(),
			"occurred_at": now,
		},
		OccurredAt: now,
	}

	if err := p.publisher.Publish(ctx, evt); err != nil {
		p.logger.Error("ADMIN", "Failed to publish PAYMENT_RECEIVED event", map[string]interface{}{"error": err.Error()})
	}
}
