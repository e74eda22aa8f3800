package service

import (
	"context"
	"fmt"
	"time"

	"homestay-be/internal/config"
	"homestay-be/internal/dto"
	"homestay-be/internal/entity"
	"homestay-be/internal/pkg/apperror"
	"homestay-be/internal/pkg/logger"
	"homestay-be/internal/repository/memory"
	"homestay-be/internal/repository/specification"
	"homestay-be/internal/repository/unitofwork"
	"homestay-be/pkg/events"
	pktNats "homestay-be/pkg/nats"
	"homestay-be/pkg/payment"
	"homestay-be/pkg/pricing"

	"github.com/google/uuid"
)

type IBookingService interface {
	Create(ctx context.Context, userId, accommodationId uuid.UUID, req *dto.CreateBookingRequest) (*dto.CreateBookingResponse, error)
	CheckConfirmation(ctx context.Context, userId uuid.UUID, orderId string) (*dto.CheckConfirmationResponse, error)
	Cancel(ctx context.Context, userId uuid.UUID, isAdmin bool, bookingId uuid.UUID, req *dto.CancelBookingRequest) (*dto.CancelBookingResponse, error)
	MyBookings(ctx context.Context, userId uuid.UUID) ([]*dto.BookingResponse, error)
	GetRefundStatus(ctx context.Context, userId uuid.UUID, bookingId uuid.UUID) (*dto.RefundResponse, error)
	SoftDelete(ctx context.Context, userId uuid.UUID, isAdmin bool, bookingId uuid.UUID) error
}

type bookingService struct {
	uowFactory     unitofwork.RepositoryFactory
	gateway        payment.Gateway
	checkoutCache  *memory.CheckoutCache
	eventPublisher *pktNats.Publisher
	cfg            config.BookingConfig
	razorpayKeyId  string
	log            logger.ILogger
}

func NewBookingService(
	uowFactory unitofwork.RepositoryFactory,
	gateway payment.Gateway,
	checkoutCache *memory.CheckoutCache,
	eventPublisher *pktNats.Publisher,
	cfg config.BookingConfig,
	razorpayKeyId string,
	log logger.ILogger,
) IBookingService {
	return &bookingService{
		uowFactory:     uowFactory,
		gateway:        gateway,
		checkoutCache:  checkoutCache,
		eventPublisher: eventPublisher,
		cfg:            cfg,
		razorpayKeyId:  razorpayKeyId,
		log:            log,
	}
}

// parseStayDate validates the requested date against the same-day cutoff.
// Bookings for today are accepted only before the cutoff hour; past dates
// never are.
func (s *bookingService) parseStayDate(raw string, now time.Time) (time.Time, error) {
	stayDate, err := time.ParseInLocation("2006-01-02", raw, now.Location())
	if err != nil {
		return time.Time{}, apperror.Validation("stay_date must be YYYY-MM-DD")
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if stayDate.Before(today) {
		return time.Time{}, apperror.Validation("stay date is in the past")
	}
	if stayDate.Equal(today) && now.Hour() >= s.cfg.CutoffHour {
		return time.Time{}, apperror.Validation(fmt.Sprintf("same-day bookings close at %02d:00", s.cfg.CutoffHour))
	}
	return stayDate, nil
}

func (s *bookingService) Create(ctx context.Context, userId, accommodationId uuid.UUID, req *dto.CreateBookingRequest) (*dto.CreateBookingResponse, error) {
	now := time.Now()

	stayDate, err := s.parseStayDate(req.StayDate, now)
	if err != nil {
		return nil, err
	}

	meal := pricing.MealType(req.MealType)
	if !meal.Valid() {
		return nil, apperror.Validation("meal_type must be veg or nonveg")
	}
	if req.NeedStay && req.StayNight < 1 {
		return nil, apperror.Validation("stay_night must be at least 1 when stay is needed")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	acc, err := uow.AccommodationRepository().FindOne(ctx, specification.ByID{ID: accommodationId})
	if err != nil {
		return nil, err
	}
	if acc == nil {
		return nil, apperror.NotFound("accommodation")
	}

	// Price is always computed server-side from the live rate card.
	amount := pricing.Quote(req.GroupSize, meal, req.NeedStay, req.StayNight, acc.Rates())

	booking := &entity.Booking{
		Id:              uuid.New(),
		UserId:          userId,
		AccommodationId: accommodationId,
		StayDate:        stayDate,
		GroupSize:       req.GroupSize,
		MealType:        meal,
		NeedStay:        req.NeedStay,
		StayNight:       req.StayNight,
		Amount:          amount,
		PaymentMode:     entity.PaymentMode(req.PaymentMode),
		PaymentStatus:   entity.PaymentStatusPending,
		Status:          entity.BookingStatusPending,
		GuestName:       req.Name,
		GuestEmail:      req.Email,
		GuestPhone:      req.Phone,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if booking.PaymentMode == entity.PaymentModeCash {
		return s.createCashBooking(ctx, uow, booking)
	}
	return s.createOnlineBooking(ctx, uow, booking)
}

func (s *bookingService) createCashBooking(ctx context.Context, uow unitofwork.UnitOfWork, booking *entity.Booking) (*dto.CreateBookingResponse, error) {
	deposit, remaining := pricing.DepositSplit(booking.Amount)
	booking.DepositAmount = deposit
	booking.RemainingAmount = remaining

	if err := uow.BookingRepository().Create(ctx, booking); err != nil {
		return nil, err
	}

	s.log.Info("BookingService", "cash booking created", map[string]interface{}{
		"booking_id": booking.Id,
		"amount":     booking.Amount,
		"deposit":    deposit,
	})

	return &dto.CreateBookingResponse{
		BookingId:       booking.Id,
		Amount:          booking.Amount,
		DepositAmount:   deposit,
		RemainingAmount: remaining,
		PaymentMode:     string(booking.PaymentMode),
		Status:          string(booking.Status),
	}, nil
}

func (s *bookingService) createOnlineBooking(ctx context.Context, uow unitofwork.UnitOfWork, booking *entity.Booking) (*dto.CreateBookingResponse, error) {
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.BookingRepository().Create(ctx, booking); err != nil {
		return nil, err
	}

	order, err := s.gateway.CreateOrder(ctx, booking.Amount, booking.Id.String())
	if err != nil {
		return nil, apperror.PaymentGateway("failed to create payment order", err)
	}

	pay := &entity.Payment{
		Id:        uuid.New(),
		BookingId: booking.Id,
		UserId:    booking.UserId,
		OrderId:   order.Id,
		Amount:    booking.Amount,
		Currency:  order.Currency,
		Status:    entity.GatewayPaymentPending,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := uow.PaymentRepository().Create(ctx, pay); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.checkoutCache.Save(&memory.CheckoutDraft{
		OrderId:         order.Id,
		BookingId:       booking.Id,
		UserId:          booking.UserId,
		AccommodationId: booking.AccommodationId,
		Amount:          booking.Amount,
		CreatedAt:       time.Now(),
	})

	s.log.Info("BookingService", "online booking created", map[string]interface{}{
		"booking_id": booking.Id,
		"order_id":   order.Id,
		"amount":     booking.Amount,
	})

	return &dto.CreateBookingResponse{
		BookingId:   booking.Id,
		Amount:      booking.Amount,
		PaymentMode: string(booking.PaymentMode),
		Status:      string(booking.Status),
		RazorpayOrder: &dto.GatewayOrderDTO{
			OrderId:  order.Id,
			Amount:   order.Amount,
			Currency: order.Currency,
		},
		RazorpayKey: s.razorpayKeyId,
	}, nil
}

// confirmBookingTx is the single confirmation path, shared by the webhook
// handler and the cash deposit flow. Must run inside an open uow
// transaction. The ConfirmPending conditional update is the idempotency
// gate: only the winner reserves capacity. A capacity failure propagates
// so the caller rolls the whole transaction back and the booking stays
// pending.
func confirmBookingTx(ctx context.Context, uow unitofwork.UnitOfWork, bookingId uuid.UUID) (confirmed bool, booking *entity.Booking, err error) {
	booking, err = uow.BookingRepository().FindOne(ctx, specification.ByID{ID: bookingId})
	if err != nil {
		return false, nil, err
	}
	if booking == nil {
		return false, nil, apperror.NotFound("booking")
	}

	won, err := uow.BookingRepository().ConfirmPending(ctx, bookingId)
	if err != nil {
		return false, nil, err
	}
	if !won {
		return false, booking, nil
	}

	if err := uow.AccommodationRepository().ReserveCapacity(ctx, booking.AccommodationId, booking.GroupSize); err != nil {
		return false, nil, err
	}

	booking.Status = entity.BookingStatusConfirmed
	booking.PaymentStatus = entity.PaymentStatusPaid
	return true, booking, nil
}

func (s *bookingService) CheckConfirmation(ctx context.Context, userId uuid.UUID, orderId string) (*dto.CheckConfirmationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	pay, err := uow.PaymentRepository().FindOne(ctx, specification.ByOrderId{OrderId: orderId})
	if err != nil {
		return nil, err
	}
	if pay == nil || pay.UserId != userId {
		return nil, apperror.NotFound("order")
	}

	booking, err := uow.BookingRepository().FindOne(ctx, specification.ByID{ID: pay.BookingId})
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, apperror.NotFound("booking")
	}

	res := &dto.CheckConfirmationResponse{
		Confirmed: booking.Status == entity.BookingStatusConfirmed,
	}
	if res.Confirmed {
		res.Booking = mapBookingResponse(booking)
	}
	return res, nil
}

func (s *bookingService) Cancel(ctx context.Context, userId uuid.UUID, isAdmin bool, bookingId uuid.UUID, req *dto.CancelBookingRequest) (*dto.CancelBookingResponse, error) {
	now := time.Now()

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	booking, err := uow.BookingRepository().FindOne(ctx, specification.ByID{ID: bookingId})
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, apperror.NotFound("booking")
	}
	if !isAdmin && booking.UserId != userId {
		return nil, apperror.Authorization("not your booking")
	}

	// Same-day cancellations close at the cutoff hour, mirroring creation.
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if booking.StayDate.Equal(today) && now.Hour() >= s.cfg.CutoffHour {
		return nil, apperror.Conflict(fmt.Sprintf("same-day cancellations close at %02d:00", s.cfg.CutoffHour))
	}

	wasConfirmed := booking.Status == entity.BookingStatusConfirmed

	if err := booking.Transition(entity.BookingStatusCancelled); err != nil {
		return nil, apperror.Conflict(err.Error())
	}
	booking.CancelReason = req.Reason
	booking.CancelledAt = &now

	if err := uow.BookingRepository().Update(ctx, booking); err != nil {
		return nil, err
	}

	// Capacity was only ever reserved at confirmation, so only a confirmed
	// booking gives it back.
	if wasConfirmed {
		if err := uow.AccommodationRepository().ReleaseCapacity(ctx, booking.AccommodationId, booking.GroupSize); err != nil {
			return nil, err
		}
	}

	// Client-side verification can mark the gateway payment captured while
	// the booking is still pending for the webhook, so the booking fields
	// alone undercount what was collected.
	collected := booking.MoneyCollected()
	if !collected && booking.PaymentMode == entity.PaymentModeOnline {
		pay, err := uow.PaymentRepository().FindOne(ctx, specification.Filter("booking_id", booking.Id))
		if err != nil {
			return nil, err
		}
		collected = pay != nil && pay.Status == entity.GatewayPaymentPaid
	}

	var refund *entity.RefundRequest
	if collected {
		refund, err = s.initiateRefundTx(ctx, uow, booking, now)
		if err != nil {
			return nil, err
		}
		booking.RefundRequested = true
		if err := uow.BookingRepository().Update(ctx, booking); err != nil {
			return nil, err
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	// Gateway work happens after the commit so a provider outage cannot
	// roll back the cancellation itself.
	if refund != nil && refund.Method == entity.RefundMethodRazorpay {
		s.executeGatewayRefund(ctx, refund)
	}

	s.publishEvent(ctx, events.TypeBookingCancelled, map[string]interface{}{
		"booking_id": booking.Id,
		"user_id":    booking.UserId,
		"guest_name": booking.GuestName,
		"reason":     req.Reason,
	})

	res := &dto.CancelBookingResponse{
		BookingId: booking.Id,
		Status:    string(booking.Status),
	}
	if refund != nil {
		res.RefundId = &refund.Id
		res.RefundAmount = refund.Amount
		res.RefundStatus = string(refund.Status)
	}
	return res, nil
}

// initiateRefundTx creates the refund row inside the cancellation
// transaction. The refunded base is what was actually collected: the full
// amount for paid bookings, the deposit for cash bookings.
func (s *bookingService) initiateRefundTx(ctx context.Context, uow unitofwork.UnitOfWork, booking *entity.Booking, now time.Time) (*entity.RefundRequest, error) {
	paid := booking.Amount
	method := entity.RefundMethodRazorpay
	var paymentId *uuid.UUID

	if booking.PaymentMode == entity.PaymentModeCash {
		method = entity.RefundMethodCash
		// Confirmation sets payment_status=paid for cash bookings too, so
		// that field cannot tell the deposit from a settled remainder. The
		// remainder is only collected at checkout; until then the deposit is
		// all that crossed the desk.
		if booking.RemainingAmount > 0 {
			paid = booking.DepositAmount
		}
	} else {
		pay, err := uow.PaymentRepository().FindOne(ctx, specification.Filter("booking_id", booking.Id))
		if err != nil {
			return nil, err
		}
		if pay != nil {
			paymentId = &pay.Id
		}
	}

	refundAmount, fee := pricing.RefundAmount(paid, booking.StayDate, now, s.cfg.FeeSchedule)

	refund := &entity.RefundRequest{
		Id:          uuid.New(),
		BookingId:   booking.Id,
		UserId:      booking.UserId,
		PaymentId:   paymentId,
		Method:      method,
		Amount:      refundAmount,
		Fee:         fee,
		Status:      entity.RefundStatusInitiated,
		Reason:      booking.CancelReason,
		InitiatedAt: now,
		Timeline: []entity.TimelineEntry{
			{Status: entity.RefundStatusInitiated, Message: "refund request created", At: now},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uow.RefundRepository().Create(ctx, refund); err != nil {
		return nil, err
	}
	return refund, nil
}

// executeGatewayRefund drives an online refund through the gateway and
// records the outcome. Failures leave the request in failed state for the
// admin queue; they never undo the cancellation.
func (s *bookingService) executeGatewayRefund(ctx context.Context, refund *entity.RefundRequest) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	var pay *entity.Payment
	gatewayPaymentId := ""
	if refund.PaymentId != nil {
		found, err := uow.PaymentRepository().FindOne(ctx, specification.ByID{ID: *refund.PaymentId})
		if err == nil && found != nil && found.PaymentId != nil {
			pay = found
			gatewayPaymentId = *found.PaymentId
		}
	}
	if gatewayPaymentId == "" {
		s.failRefund(ctx, uow, refund, "no captured gateway payment to refund against")
		return
	}

	now := time.Now()
	if err := refund.Advance(entity.RefundStatusProcessing, "submitted to gateway", now); err != nil {
		s.log.Error("BookingService", "refund transition rejected", map[string]interface{}{"refund_id": refund.Id, "error": err.Error()})
		return
	}
	if err := uow.RefundRepository().Update(ctx, refund); err != nil {
		s.log.Error("BookingService", "failed to persist refund state", map[string]interface{}{"refund_id": refund.Id, "error": err.Error()})
		return
	}

	result, err := s.gateway.Refund(ctx, gatewayPaymentId, refund.Amount)
	if err != nil {
		s.failRefund(ctx, uow, refund, err.Error())
		return
	}

	refund.GatewayRefundId = &result.Id
	if err := refund.Advance(entity.RefundStatusRefunded, "gateway refund processed", time.Now()); err != nil {
		s.log.Error("BookingService", "refund transition rejected", map[string]interface{}{"refund_id": refund.Id, "error": err.Error()})
		return
	}
	if err := uow.RefundRepository().Update(ctx, refund); err != nil {
		s.log.Error("BookingService", "failed to persist refund state", map[string]interface{}{"refund_id": refund.Id, "error": err.Error()})
		return
	}

	pay.Status = entity.GatewayPaymentRefunded
	if err := uow.PaymentRepository().Update(ctx, pay); err != nil {
		s.log.Error("BookingService", "failed to mark payment refunded", map[string]interface{}{"payment_id": pay.Id, "error": err.Error()})
	}

	s.publishEvent(ctx, events.TypeRefundUpdated, map[string]interface{}{
		"refund_id":  refund.Id,
		"booking_id": refund.BookingId,
		"user_id":    refund.UserId,
		"status":     string(refund.Status),
		"amount":     refund.Amount,
	})
}

func (s *bookingService) failRefund(ctx context.Context, uow unitofwork.UnitOfWork, refund *entity.RefundRequest, reason string) {
	if err := refund.Advance(entity.RefundStatusFailed, reason, time.Now()); err != nil {
		s.log.Error("BookingService", "refund transition rejected", map[string]interface{}{"refund_id": refund.Id, "error": err.Error()})
		return
	}
	if err := uow.RefundRepository().Update(ctx, refund); err != nil {
		s.log.Error("BookingService", "failed to persist refund failure", map[string]interface{}{"refund_id": refund.Id, "error": err.Error()})
	}
	s.log.Warn("BookingService", "gateway refund failed", map[string]interface{}{"refund_id": refund.Id, "reason": reason})
}

func (s *bookingService) MyBookings(ctx context.Context, userId uuid.UUID) ([]*dto.BookingResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	bookings, err := uow.BookingRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.VisibleToUser{},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	var res []*dto.BookingResponse
	for _, b := range bookings {
		res = append(res, mapBookingResponse(b))
	}
	return res, nil
}

func (s *bookingService) GetRefundStatus(ctx context.Context, userId uuid.UUID, bookingId uuid.UUID) (*dto.RefundResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	refund, err := uow.RefundRepository().FindOne(ctx,
		specification.Filter("booking_id", bookingId),
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}
	if refund == nil {
		return nil, apperror.NotFound("refund")
	}
	if refund.UserId != userId {
		return nil, apperror.Authorization("not your refund")
	}
	return mapRefundResponse(refund), nil
}

func (s *bookingService) SoftDelete(ctx context.Context, userId uuid.UUID, isAdmin bool, bookingId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	booking, err := uow.BookingRepository().FindOne(ctx, specification.ByID{ID: bookingId})
	if err != nil {
		return err
	}
	if booking == nil {
		return apperror.NotFound("booking")
	}
	if !isAdmin && booking.UserId != userId {
		return apperror.Authorization("not your booking")
	}

	// A booking with a live refund stays visible until the refund settles.
	refund, err := uow.RefundRepository().FindOne(ctx,
		specification.Filter("booking_id", bookingId),
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return err
	}
	if refund != nil && !refund.Status.Deletable() {
		return apperror.Conflict("booking has a refund in progress")
	}

	if isAdmin {
		booking.DeletedByAdmin = true
	} else {
		booking.DeletedByUser = true
	}
	return uow.BookingRepository().Update(ctx, booking)
}

func (s *bookingService) publishEvent(ctx context.Context, eventType string, data map[string]interface{}) {
	if s.eventPublisher == nil {
		return
	}
	evt := events.NewBookingEvent(eventType, data)
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		s.log.Warn("BookingService", "failed to publish event", map[string]interface{}{"type": eventType, "error": err.Error()})
	}
}

func mapBookingResponse(b *entity.Booking) *dto.BookingResponse {
	return &dto.BookingResponse{
		Id:              b.Id,
		AccommodationId: b.AccommodationId,
		StayDate:        b.StayDate.Format("2006-01-02"),
		GroupSize:       b.GroupSize,
		MealType:        string(b.MealType),
		NeedStay:        b.NeedStay,
		StayNight:       b.StayNight,
		Amount:          b.Amount,
		PaymentMode:     string(b.PaymentMode),
		PaymentStatus:   string(b.PaymentStatus),
		Status:          string(b.Status),
		DepositAmount:   b.DepositAmount,
		RemainingAmount: b.RemainingAmount,
		DepositPaid:     b.DepositPaid,
		RefundRequested: b.RefundRequested,
		CancelReason:    b.CancelReason,
		CancelledAt:     b.CancelledAt,
		CreatedAt:       b.CreatedAt,
	}
}

func mapRefundResponse(r *entity.RefundRequest) *dto.RefundResponse {
	var timeline []dto.RefundTimelineEntryDTO
	for _, t := range r.Timeline {
		timeline = append(timeline, dto.RefundTimelineEntryDTO{
			Status:  string(t.Status),
			Message: t.Message,
			At:      t.At,
		})
	}
	return &dto.RefundResponse{
		Id:          r.Id,
		BookingId:   r.BookingId,
		Method:      string(r.Method),
		Amount:      r.Amount,
		Fee:         r.Fee,
		Status:      string(r.Status),
		Reason:      r.Reason,
		Timeline:    timeline,
		InitiatedAt: r.InitiatedAt,
		RefundedAt:  r.RefundedAt,
	}
}
