package dashboard

import (
	"context"

	"homestay-be/internal/dto"
	"homestay-be/internal/entity"
	"homestay-be/internal/pkg/logger"
	"homestay-be/internal/repository/specification"
	"homestay-be/internal/repository/unitofwork"
)

// Aggregator assembles the admin dashboard statistics
type Aggregator struct {
	logger logger.ILogger
}

func NewAggregator(logger logger.ILogger) *Aggregator {
	return &Aggregator{
		logger: logger,
	}
}

// GetStats collects booking counts, money figures and live occupancy.
func (a *Aggregator) GetStats(ctx context.Context, uow unitofwork.UnitOfWork) (*dto.DashboardResponse, error) {
	bookings := uow.BookingRepository()

	total, err := bookings.Count(ctx)
	if err != nil {
		return nil, err
	}
	pending, err := bookings.Count(ctx, specification.Filter("status", string(entity.BookingStatusPending)))
	if err != nil {
		return nil, err
	}
	confirmed, err := bookings.Count(ctx, specification.Filter("status", string(entity.BookingStatusConfirmed)))
	if err != nil {
		return nil, err
	}
	cancelled, err := bookings.Count(ctx, specification.Filter("status", string(entity.BookingStatusCancelled)))
	if err != nil {
		return nil, err
	}
	completed, err := bookings.Count(ctx, specification.Filter("status", string(entity.BookingStatusCompleted)))
	if err != nil {
		return nil, err
	}

	revenue, err := uow.PaymentRepository().SumAmountByStatus(ctx, entity.GatewayPaymentPaid)
	if err != nil {
		return nil, err
	}
	refunded, err := uow.RefundRepository().SumAmountByStatus(ctx, entity.RefundStatusRefunded)
	if err != nil {
		return nil, err
	}
	pendingRefunds, err := uow.RefundRepository().Count(ctx,
		specification.Filter("status", string(entity.RefundStatusInitiated)),
	)
	if err != nil {
		return nil, err
	}

	occupied, capacity := 0, 0
	accs, err := uow.AccommodationRepository().FindAll(ctx)
	if err != nil {
		a.logger.Warn("ADMIN", "dashboard occupancy lookup failed", map[string]interface{}{"error": err.Error()})
	} else {
		for _, acc := range accs {
			occupied += acc.BookedMembers
			capacity += acc.MaxMembers
		}
	}

	return &dto.DashboardResponse{
		TotalBookings:     total,
		PendingBookings:   pending,
		ConfirmedBookings: confirmed,
		CancelledBookings: cancelled,
		CompletedBookings: completed,
		TotalRevenue:      revenue,
		TotalRefunded:     refunded,
		OccupiedMembers:   occupied,
		CapacityMembers:   capacity,
		PendingRefunds:    pendingRefunds,
	}, nil
}
