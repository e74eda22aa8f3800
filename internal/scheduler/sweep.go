package scheduler

import (
	"context"
	"time"

	"homestay-be/internal/pkg/logger"
	"homestay-be/internal/repository/unitofwork"
	"homestay-be/pkg/events"
	pktNats "homestay-be/pkg/nats"

	"github.com/robfig/cron/v3"
)

// Sweeper runs the nightly pass that moves pending and confirmed
// bookings whose stay date has passed into completed.
type Sweeper struct {
	uowFactory unitofwork.RepositoryFactory
	publisher  *pktNats.Publisher
	logger     logger.ILogger
	cron       *cron.Cron
}

func NewSweeper(uowFactory unitofwork.RepositoryFactory, publisher *pktNats.Publisher, log logger.ILogger) *Sweeper {
	return &Sweeper{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     log,
		cron:       cron.New(),
	}
}

// Start schedules the sweep at midnight every day.
func (s *Sweeper) Start() error {
	_, err := s.cron.AddFunc("0 0 * * *", func() {
		defer func() {
			if r := recover(); r != nil {
				s.logger.Error("Sweeper", "Panic during nightly sweep", map[string]interface{}{"panic": r})
			}
		}()
		if err := s.RunOnce(context.Background()); err != nil {
			s.logger.Error("Sweeper", "Nightly sweep failed", map[string]interface{}{"error": err.Error()})
		}
	})
	if err != nil {
		return err
	}
	s.cron.Start()
	s.logger.Info("Sweeper", "Nightly sweep scheduled", nil)
	return nil
}

func (s *Sweeper) Stop() {
	s.cron.Stop()
}

// RunOnce completes every stale booking with a stay date before the
// start of today. The underlying bulk update is conditional on status,
// so running twice in a row is harmless.
func (s *Sweeper) RunOnce(ctx context.Context) error {
	now := time.Now()
	startOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	uow := s.uowFactory.NewUnitOfWork(ctx)
	completed, err := uow.BookingRepository().CompleteStale(ctx, startOfToday)
	if err != nil {
		return err
	}

	s.logger.Info("Sweeper", "Nightly sweep finished", map[string]interface{}{
		"completed": completed,
		"cutoff":    startOfToday.Format("2006-01-02"),
	})

	if s.publisher != nil {
		event := events.NewBookingEvent(events.TypeSweepCompleted, map[string]interface{}{
			"completed": completed,
			"cutoff":    startOfToday.Format("2006-01-02"),
		})
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.Warn("Sweeper", "Failed to publish sweep event", map[string]interface{}{"error": err.Error()})
		}
	}

	return nil
}
