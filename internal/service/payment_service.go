package service

import (
	"context"
	"encoding/json"

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

	"github.com/google/uuid"
)

type IPaymentService interface {
	// VerifyPayment validates the signature the client submits after
	// finishing checkout and marks the payment paid. It never confirms the
	// booking; that is the webhook's job.
	VerifyPayment(ctx context.Context, userId uuid.UUID, req *dto.VerifyPaymentRequest) (*dto.VerifyPaymentResponse, error)

	// HandleWebhook processes a raw gateway delivery. Safe to call any
	// number of times for the same payment.
	HandleWebhook(ctx context.Context, body []byte, signature string) error
}

type paymentService struct {
	uowFactory     unitofwork.RepositoryFactory
	gateway        payment.Gateway
	checkoutCache  *memory.CheckoutCache
	eventPublisher *pktNats.Publisher
	mailPublisher  IMailPublisher
	log            logger.ILogger
}

func NewPaymentService(
	uowFactory unitofwork.RepositoryFactory,
	gateway payment.Gateway,
	checkoutCache *memory.CheckoutCache,
	eventPublisher *pktNats.Publisher,
	mailPublisher IMailPublisher,
	log logger.ILogger,
) IPaymentService {
	return &paymentService{
		uowFactory:     uowFactory,
		gateway:        gateway,
		checkoutCache:  checkoutCache,
		eventPublisher: eventPublisher,
		mailPublisher:  mailPublisher,
		log:            log,
	}
}

func (s *paymentService) VerifyPayment(ctx context.Context, userId uuid.UUID, req *dto.VerifyPaymentRequest) (*dto.VerifyPaymentResponse, error) {
	if !s.gateway.VerifyPaymentSignature(req.RazorpayOrderId, req.RazorpayPaymentId, req.RazorpaySignature) {
		return nil, apperror.InvalidSignature("payment signature mismatch")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	won, err := uow.PaymentRepository().MarkPaid(ctx, req.RazorpayOrderId, req.RazorpayPaymentId, "")
	if err != nil {
		return nil, err
	}

	s.log.Info("PaymentService", "client payment verification", map[string]interface{}{
		"order_id":   req.RazorpayOrderId,
		"payment_id": req.RazorpayPaymentId,
		"first_mark": won,
	})

	return &dto.VerifyPaymentResponse{
		Success: true,
		Message: "payment verified, confirmation in progress",
	}, nil
}

func (s *paymentService) HandleWebhook(ctx context.Context, body []byte, signature string) error {
	if !s.gateway.VerifyWebhookSignature(body, signature) {
		s.log.Warn("PaymentService", "webhook signature mismatch", nil)
		return apperror.InvalidSignature("webhook signature mismatch")
	}

	var payload dto.RazorpayWebhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return apperror.Validation("malformed webhook body")
	}

	entityData := payload.Payload.Payment.Entity
	if entityData.OrderId == "" {
		return apperror.Validation("webhook payload missing order id")
	}

	switch payload.Event {
	case "payment.captured":
		return s.handleCaptured(ctx, entityData.OrderId, entityData.Id, entityData.Method)
	case "payment.failed":
		return s.handleFailed(ctx, entityData.OrderId)
	default:
		s.log.Debug("PaymentService", "ignoring webhook event", map[string]interface{}{"event": payload.Event})
		return nil
	}
}

func (s *paymentService) handleFailed(ctx context.Context, orderId string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	pay, err := uow.PaymentRepository().FindOne(ctx, specification.ByOrderId{OrderId: orderId})
	if err != nil {
		return err
	}
	if pay == nil {
		return apperror.NotFound("payment")
	}

	// Only a still-pending payment fails; a stale failure arriving after
	// capture changes nothing.
	if pay.Status != entity.GatewayPaymentPending {
		s.log.Debug("PaymentService", "ignoring failure for settled payment", map[string]interface{}{"order_id": orderId})
		return nil
	}

	pay.Status = entity.GatewayPaymentFailed
	if err := uow.PaymentRepository().Update(ctx, pay); err != nil {
		return err
	}

	s.log.Info("PaymentService", "payment failed at gateway", map[string]interface{}{"order_id": orderId})
	return nil
}

func (s *paymentService) handleCaptured(ctx context.Context, orderId, gatewayPaymentId, method string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	pay, err := uow.PaymentRepository().FindOne(ctx, specification.ByOrderId{OrderId: orderId})
	if err != nil {
		return err
	}
	if pay == nil {
		return apperror.NotFound("payment")
	}

	// MarkPaid may lose to an earlier client verification; confirmation
	// still has to run, since verification never confirms.
	if _, err := uow.PaymentRepository().MarkPaid(ctx, orderId, gatewayPaymentId, method); err != nil {
		return err
	}

	confirmed, booking, err := confirmBookingTx(ctx, uow, pay.BookingId)
	if err != nil {
		// Capacity exhausted or DB failure: roll everything back, leave the
		// booking pending for manual resolution.
		s.log.Error("PaymentService", "booking confirmation failed", map[string]interface{}{
			"order_id": orderId, "error": err.Error(),
		})
		return err
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	s.checkoutCache.Delete(orderId)

	if !confirmed {
		// A previous delivery already confirmed this booking.
		s.log.Info("PaymentService", "duplicate webhook, booking already confirmed", map[string]interface{}{"order_id": orderId})
		return nil
	}

	s.log.Info("PaymentService", "booking confirmed via webhook", map[string]interface{}{
		"order_id":   orderId,
		"booking_id": booking.Id,
	})

	if s.eventPublisher != nil {
		evt := events.NewBookingEvent(events.TypeBookingConfirmed, map[string]interface{}{
			"booking_id": booking.Id,
			"user_id":    booking.UserId,
			"guest_name": booking.GuestName,
			"amount":     booking.Amount,
		})
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.log.Warn("PaymentService", "failed to publish confirmation event", map[string]interface{}{"error": err.Error()})
		}
	}

	if s.mailPublisher != nil {
		s.mailPublisher.PublishBookingConfirmation(booking)
	}

	return nil
}
