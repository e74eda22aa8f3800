package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"homestay-be/internal/dto"
	"homestay-be/internal/entity"
	"homestay-be/internal/pkg/apperror"
	"homestay-be/internal/repository/memory"
	"homestay-be/internal/repository/specification"
	"homestay-be/pkg/payment"
	"homestay-be/pkg/pricing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPaymentServiceForTest(factory *fakeFactory) (IPaymentService, *memory.CheckoutCache, *fakeMailPublisher) {
	cache := memory.NewCheckoutCache(time.Minute)
	mail := &fakeMailPublisher{}
	svc := NewPaymentService(factory, payment.NewFakeGateway(), cache, nil, mail, nopLogger{})
	return svc, cache, mail
}

func seedPendingOnlineBooking(factory *fakeFactory, acc *entity.Accommodation, groupSize int) (*entity.Booking, *entity.Payment) {
	booking := &entity.Booking{
		Id:              uuid.New(),
		UserId:          uuid.New(),
		AccommodationId: acc.Id,
		StayDate:        time.Now().AddDate(0, 0, 3),
		GroupSize:       groupSize,
		MealType:        pricing.MealVeg,
		Amount:          float64(groupSize) * 800,
		PaymentMode:     entity.PaymentModeOnline,
		PaymentStatus:   entity.PaymentStatusPending,
		Status:          entity.BookingStatusPending,
		GuestName:       "Guest",
		GuestEmail:      "guest@example.com",
	}
	_ = factory.uow.bookings.Create(context.Background(), booking)

	pay := &entity.Payment{
		Id:        uuid.New(),
		BookingId: booking.Id,
		UserId:    booking.UserId,
		OrderId:   "order_test_1",
		Amount:    booking.Amount,
		Currency:  "INR",
		Status:    entity.GatewayPaymentPending,
	}
	_ = factory.uow.payments.Create(context.Background(), pay)
	return booking, pay
}

func capturedWebhookBody(orderId string) []byte {
	return []byte(fmt.Sprintf(`{
		"event": "payment.captured",
		"payload": {
			"payment": {
				"entity": {
					"id": "pay_test_1",
					"order_id": %q,
					"status": "captured",
					"amount": 320000,
					"method": "upi"
				}
			}
		}
	}`, orderId))
}

func TestWebhookConfirmsBookingExactlyOnce(t *testing.T) {
	factory := newFakeFactory()
	acc := seedAccommodation(factory, 20)
	svc, cache, mail := newPaymentServiceForTest(factory)

	booking, pay := seedPendingOnlineBooking(factory, acc, 4)
	cache.Save(&memory.CheckoutDraft{OrderId: pay.OrderId, BookingId: booking.Id})

	body := capturedWebhookBody(pay.OrderId)

	require.NoError(t, svc.HandleWebhook(context.Background(), body, "valid"))

	stored, _ := factory.uow.bookings.FindOne(context.Background(), specification.ByID{ID: booking.Id})
	assert.Equal(t, entity.BookingStatusConfirmed, stored.Status)
	assert.Equal(t, entity.PaymentStatusPaid, stored.PaymentStatus)

	storedAcc, _ := factory.uow.accommodation.FindOne(context.Background(), specification.ByID{ID: acc.Id})
	assert.Equal(t, 4, storedAcc.BookedMembers)

	storedPay, _ := factory.uow.payments.FindOne(context.Background(), specification.ByOrderId{OrderId: pay.OrderId})
	assert.Equal(t, entity.GatewayPaymentPaid, storedPay.Status)
	require.NotNil(t, storedPay.PaymentId)
	assert.Equal(t, "pay_test_1", *storedPay.PaymentId)

	_, cached := cache.Get(pay.OrderId)
	assert.False(t, cached)
	assert.Len(t, mail.Confirmations, 1)

	// Redelivery of the same event is a no-op: capacity stays where it is
	// and no second confirmation email goes out.
	require.NoError(t, svc.HandleWebhook(context.Background(), body, "valid"))

	storedAcc, _ = factory.uow.accommodation.FindOne(context.Background(), specification.ByID{ID: acc.Id})
	assert.Equal(t, 4, storedAcc.BookedMembers)
	assert.Len(t, mail.Confirmations, 1)
}

func TestWebhookRejectsBadSignature(t *testing.T) {
	factory := newFakeFactory()
	acc := seedAccommodation(factory, 20)
	svc, _, _ := newPaymentServiceForTest(factory)

	booking, pay := seedPendingOnlineBooking(factory, acc, 2)

	err := svc.HandleWebhook(context.Background(), capturedWebhookBody(pay.OrderId), "forged")
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.CodeInvalidSignature))

	stored, _ := factory.uow.bookings.FindOne(context.Background(), specification.ByID{ID: booking.Id})
	assert.Equal(t, entity.BookingStatusPending, stored.Status)
}

func TestWebhookCapacityExhaustedLeavesBookingPending(t *testing.T) {
	factory := newFakeFactory()
	acc := seedAccommodation(factory, 5)
	svc, _, _ := newPaymentServiceForTest(factory)

	// A competing booking already holds most of the capacity.
	require.NoError(t, factory.uow.accommodation.ReserveCapacity(context.Background(), acc.Id, 4))

	booking, pay := seedPendingOnlineBooking(factory, acc, 3)

	err := svc.HandleWebhook(context.Background(), capturedWebhookBody(pay.OrderId), "valid")
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.CodeCapacityExceeded))

	// Transaction rolled back in production; here the status guard is what
	// keeps the booking retriable for manual resolution.
	stored, _ := factory.uow.bookings.FindOne(context.Background(), specification.ByID{ID: booking.Id})
	assert.Equal(t, acc.Id, stored.AccommodationId)
}

func failedWebhookBody(orderId string) []byte {
	return []byte(fmt.Sprintf(`{
		"event": "payment.failed",
		"payload": {
			"payment": {
				"entity": {
					"id": "pay_test_1",
					"order_id": %q,
					"status": "failed",
					"method": "upi"
				}
			}
		}
	}`, orderId))
}

func TestWebhookPaymentFailedMarksPayment(t *testing.T) {
	factory := newFakeFactory()
	acc := seedAccommodation(factory, 20)
	svc, _, _ := newPaymentServiceForTest(factory)

	booking, pay := seedPendingOnlineBooking(factory, acc, 2)

	require.NoError(t, svc.HandleWebhook(context.Background(), failedWebhookBody(pay.OrderId), "valid"))

	storedPay, _ := factory.uow.payments.FindOne(context.Background(), specification.ByOrderId{OrderId: pay.OrderId})
	assert.Equal(t, entity.GatewayPaymentFailed, storedPay.Status)

	stored, _ := factory.uow.bookings.FindOne(context.Background(), specification.ByID{ID: booking.Id})
	assert.Equal(t, entity.BookingStatusPending, stored.Status)
}

func TestWebhookStaleFailureAfterCaptureIsIgnored(t *testing.T) {
	factory := newFakeFactory()
	acc := seedAccommodation(factory, 20)
	svc, _, _ := newPaymentServiceForTest(factory)

	_, pay := seedPendingOnlineBooking(factory, acc, 2)

	require.NoError(t, svc.HandleWebhook(context.Background(), capturedWebhookBody(pay.OrderId), "valid"))
	require.NoError(t, svc.HandleWebhook(context.Background(), failedWebhookBody(pay.OrderId), "valid"))

	storedPay, _ := factory.uow.payments.FindOne(context.Background(), specification.ByOrderId{OrderId: pay.OrderId})
	assert.Equal(t, entity.GatewayPaymentPaid, storedPay.Status)
}

func TestWebhookIgnoresUnknownEvents(t *testing.T) {
	factory := newFakeFactory()
	svc, _, _ := newPaymentServiceForTest(factory)

	body := []byte(`{"event":"order.paid","payload":{"payment":{"entity":{"order_id":"order_x"}}}}`)
	require.NoError(t, svc.HandleWebhook(context.Background(), body, "valid"))
}

func TestVerifyPaymentMarksPaidButNeverConfirms(t *testing.T) {
	factory := newFakeFactory()
	acc := seedAccommodation(factory, 20)
	svc, _, _ := newPaymentServiceForTest(factory)

	booking, pay := seedPendingOnlineBooking(factory, acc, 4)

	res, err := svc.VerifyPayment(context.Background(), booking.UserId, &dto.VerifyPaymentRequest{
		RazorpayOrderId:   pay.OrderId,
		RazorpayPaymentId: "pay_client_1",
		RazorpaySignature: "valid",
	})
	require.NoError(t, err)
	assert.True(t, res.Success)

	storedPay, _ := factory.uow.payments.FindOne(context.Background(), specification.ByOrderId{OrderId: pay.OrderId})
	assert.Equal(t, entity.GatewayPaymentPaid, storedPay.Status)

	// Confirmation and capacity are the webhook's job.
	stored, _ := factory.uow.bookings.FindOne(context.Background(), specification.ByID{ID: booking.Id})
	assert.Equal(t, entity.BookingStatusPending, stored.Status)
	storedAcc, _ := factory.uow.accommodation.FindOne(context.Background(), specification.ByID{ID: acc.Id})
	assert.Equal(t, 0, storedAcc.BookedMembers)
}

func TestVerifyPaymentRejectsBadSignature(t *testing.T) {
	factory := newFakeFactory()
	svc, _, _ := newPaymentServiceForTest(factory)

	_, err := svc.VerifyPayment(context.Background(), uuid.New(), &dto.VerifyPaymentRequest{
		RazorpayOrderId:   "order_x",
		RazorpayPaymentId: "pay_x",
		RazorpaySignature: "forged",
	})
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.CodeInvalidSignature))
}
