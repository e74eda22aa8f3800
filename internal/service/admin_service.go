package service

import (
	"context"

	"homestay-be/internal/dto"
	"homestay-be/internal/entity"
	"homestay-be/internal/pkg/apperror"
	"homestay-be/internal/pkg/logger"
	"homestay-be/internal/repository/specification"
	"homestay-be/internal/repository/unitofwork"
	"homestay-be/pkg/admin/dashboard"
	adminEvents "homestay-be/pkg/admin/events"
	"homestay-be/pkg/admin/refund"

	"github.com/google/uuid"
)

type IAdminService interface {
	GetBookings(ctx context.Context, status string, page, limit int) ([]*dto.AdminBookingListResponse, error)
	MarkCashPaid(ctx context.Context, bookingId uuid.UUID) (*dto.MarkCashPaidResponse, error)
	GetRefunds(ctx context.Context, status string, page, limit int) ([]*dto.AdminRefundListResponse, error)
	ApproveRefund(ctx context.Context, refundId uuid.UUID, note string) (*dto.RefundResponse, error)
	RejectRefund(ctx context.Context, refundId uuid.UUID, note string) (*dto.RefundResponse, error)
	GetDashboard(ctx context.Context) (*dto.DashboardResponse, error)
	GetSystemLogs(level string, limit, offset int) ([]logger.LogEntry, error)
}

type adminService struct {
	uowFactory      unitofwork.RepositoryFactory
	refundProcessor *refund.Processor
	aggregator      *dashboard.Aggregator
	publisher       adminEvents.Publisher
	mailPublisher   IMailPublisher
	log             logger.ILogger
}

func NewAdminService(
	uowFactory unitofwork.RepositoryFactory,
	refundProcessor *refund.Processor,
	aggregator *dashboard.Aggregator,
	publisher adminEvents.Publisher,
	mailPublisher IMailPublisher,
	log logger.ILogger,
) IAdminService {
	return &adminService{
		uowFactory:      uowFactory,
		refundProcessor: refundProcessor,
		aggregator:      aggregator,
		publisher:       publisher,
		mailPublisher:   mailPublisher,
		log:             log,
	}
}

func (s *adminService) GetBookings(ctx context.Context, status string, page, limit int) ([]*dto.AdminBookingListResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	specs := []specification.Specification{specification.VisibleToAdmin{}}
	if status != "" {
		specs = append(specs, specification.Filter("status", status))
	}
	specs = append(specs,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: (page - 1) * limit},
	)

	bookings, err := uow.BookingRepository().FindAllWithUser(ctx, specs...)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.AdminBookingListResponse, 0, len(bookings))
	for _, b := range bookings {
		res = append(res, &dto.AdminBookingListResponse{
			Id:            b.Id,
			GuestName:     b.GuestName,
			GuestEmail:    b.GuestEmail,
			GuestPhone:    b.GuestPhone,
			StayDate:      b.StayDate.Format("2006-01-02"),
			GroupSize:     b.GroupSize,
			Amount:        b.Amount,
			PaymentMode:   string(b.PaymentMode),
			PaymentStatus: string(b.PaymentStatus),
			Status:        string(b.Status),
			DepositPaid:   b.DepositPaid,
			CreatedAt:     b.CreatedAt,
		})
	}
	return res, nil
}

// MarkCashPaid records a cash deposit received at the desk and runs the
// same confirmation path the payment webhook uses. The conditional deposit
// update is the gate: a second call on the same booking loses it and fails.
func (s *adminService) MarkCashPaid(ctx context.Context, bookingId uuid.UUID) (*dto.MarkCashPaidResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	won, err := uow.BookingRepository().MarkCashDepositPaid(ctx, bookingId)
	if err != nil {
		return nil, err
	}
	if !won {
		return nil, apperror.Conflict("booking is not awaiting a cash deposit")
	}

	confirmed, booking, err := confirmBookingTx(ctx, uow, bookingId)
	if err != nil {
		return nil, err
	}
	if !confirmed {
		return nil, apperror.Conflict("booking could not be confirmed")
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.log.Info("ADMIN", "Cash deposit recorded and booking confirmed", map[string]interface{}{
		"bookingId": bookingId.String(),
		"deposit":   booking.DepositAmount,
	})

	s.publisher.PublishCashPaymentRecorded(ctx, bookingId, booking.DepositAmount)
	s.mailPublisher.PublishBookingConfirmation(booking)

	return &dto.MarkCashPaidResponse{
		BookingId:     booking.Id,
		PaymentStatus: string(booking.PaymentStatus),
		Status:        string(booking.Status),
		DepositPaid:   true,
	}, nil
}

func (s *adminService) GetRefunds(ctx context.Context, status string, page, limit int) ([]*dto.AdminRefundListResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	refunds, err := s.refundProcessor.GetAll(ctx, uow, page, limit, status)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.AdminRefundListResponse, 0, len(refunds))
	for _, r := range refunds {
		res = append(res, &dto.AdminRefundListResponse{
			Id: r.Id,
			User: dto.AdminRefundUserInfo{
				Id:       r.User.Id,
				Email:    r.User.Email,
				FullName: r.User.FullName,
			},
			BookingId: r.BookingId,
			Method:    string(r.Method),
			Amount:    r.Amount,
			Fee:       r.Fee,
			Status:    string(r.Status),
			Reason:    r.Reason,
			CreatedAt: r.CreatedAt,
		})
	}
	return res, nil
}

func (s *adminService) ApproveRefund(ctx context.Context, refundId uuid.UUID, note string) (*dto.RefundResponse, error) {
	return s.resolveRefund(ctx, refundId, note, true)
}

func (s *adminService) RejectRefund(ctx context.Context, refundId uuid.UUID, note string) (*dto.RefundResponse, error) {
	return s.resolveRefund(ctx, refundId, note, false)
}

func (s *adminService) resolveRefund(ctx context.Context, refundId uuid.UUID, note string, approve bool) (*dto.RefundResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	var err error
	if approve {
		_, err = s.refundProcessor.Approve(ctx, uow, refundId, note)
	} else {
		_, err = s.refundProcessor.Reject(ctx, uow, refundId, note)
	}
	if err != nil {
		return nil, err
	}

	// Re-read through a fresh unit of work so the response carries the
	// settled timeline and guest details.
	readUow := s.uowFactory.NewUnitOfWork(ctx)
	settled, err := readUow.RefundRepository().FindOne(ctx, specification.ByID{ID: refundId})
	if err != nil {
		return nil, err
	}
	if settled == nil {
		return nil, apperror.NotFound("refund request")
	}

	s.notifyGuest(ctx, readUow, settled)

	return mapRefundResponse(settled), nil
}

func (s *adminService) notifyGuest(ctx context.Context, uow unitofwork.UnitOfWork, r *entity.RefundRequest) {
	booking, err := uow.BookingRepository().FindOne(ctx, specification.ByID{ID: r.BookingId})
	if err != nil || booking == nil {
		s.log.Warn("ADMIN", "Could not load booking for refund notification", map[string]interface{}{
			"refundId": r.Id.String(),
		})
		return
	}
	s.mailPublisher.PublishRefundUpdate(r, booking.GuestEmail, booking.GuestName)
}

func (s *adminService) GetDashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return s.aggregator.GetStats(ctx, uow)
}

func (s *adminService) GetSystemLogs(level string, limit, offset int) ([]logger.LogEntry, error) {
	return s.log.GetLogs(level, limit, offset)
}
