package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"homestay-be/internal/entity"
	"homestay-be/internal/pkg/apperror"
	"homestay-be/internal/repository/specification"
	"homestay-be/pkg/admin/dashboard"
	"homestay-be/pkg/admin/refund"
	"homestay-be/pkg/pricing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAdminPublisher struct {
	mu           sync.Mutex
	RefundsSent  []uuid.UUID
	CashRecorded []uuid.UUID
}

func (p *fakeAdminPublisher) PublishRefundResolved(ctx context.Context, refundId, bookingId, userId uuid.UUID, status string, amount float64, note string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.RefundsSent = append(p.RefundsSent, refundId)
}

func (p *fakeAdminPublisher) PublishCashPaymentRecorded(ctx context.Context, bookingId uuid.UUID, amount float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.CashRecorded = append(p.CashRecorded, bookingId)
}

func newAdminServiceForTest(factory *fakeFactory) (IAdminService, *fakeAdminPublisher, *fakeMailPublisher) {
	publisher := &fakeAdminPublisher{}
	mail := &fakeMailPublisher{}
	svc := NewAdminService(
		factory,
		refund.NewProcessor(nopLogger{}, publisher),
		dashboard.NewAggregator(nopLogger{}),
		publisher,
		mail,
		nopLogger{},
	)
	return svc, publisher, mail
}

func seedCashBookingAwaitingDeposit(factory *fakeFactory, acc *entity.Accommodation) *entity.Booking {
	amount := 3300.0
	deposit, remaining := pricing.DepositSplit(amount)
	booking := &entity.Booking{
		Id:              uuid.New(),
		UserId:          uuid.New(),
		AccommodationId: acc.Id,
		StayDate:        time.Now().AddDate(0, 0, 2),
		GroupSize:       3,
		MealType:        pricing.MealNonVeg,
		Amount:          amount,
		DepositAmount:   deposit,
		RemainingAmount: remaining,
		PaymentMode:     entity.PaymentModeCash,
		PaymentStatus:   entity.PaymentStatusPending,
		Status:          entity.BookingStatusPending,
		GuestName:       "Meera",
		GuestEmail:      "meera@example.com",
	}
	_ = factory.uow.bookings.Create(context.Background(), booking)
	return booking
}

func TestMarkCashPaidConfirmsOnce(t *testing.T) {
	factory := newFakeFactory()
	acc := seedAccommodation(factory, 20)
	svc, publisher, mail := newAdminServiceForTest(factory)

	booking := seedCashBookingAwaitingDeposit(factory, acc)

	res, err := svc.MarkCashPaid(context.Background(), booking.Id)
	require.NoError(t, err)
	assert.Equal(t, string(entity.BookingStatusConfirmed), res.Status)
	assert.True(t, res.DepositPaid)

	stored, _ := factory.uow.bookings.FindOne(context.Background(), specification.ByID{ID: booking.Id})
	assert.Equal(t, entity.BookingStatusConfirmed, stored.Status)
	assert.True(t, stored.DepositPaid)

	storedAcc, _ := factory.uow.accommodation.FindOne(context.Background(), specification.ByID{ID: acc.Id})
	assert.Equal(t, 3, storedAcc.BookedMembers)

	assert.Len(t, publisher.CashRecorded, 1)
	assert.Len(t, mail.Confirmations, 1)

	// The deposit gate rejects a second recording outright.
	_, err = svc.MarkCashPaid(context.Background(), booking.Id)
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.CodeConflict))

	storedAcc, _ = factory.uow.accommodation.FindOne(context.Background(), specification.ByID{ID: acc.Id})
	assert.Equal(t, 3, storedAcc.BookedMembers)
}

func TestMarkCashPaidRejectsOnlineBooking(t *testing.T) {
	factory := newFakeFactory()
	acc := seedAccommodation(factory, 20)
	svc, _, _ := newAdminServiceForTest(factory)

	booking, _ := seedPendingOnlineBooking(factory, acc, 2)

	_, err := svc.MarkCashPaid(context.Background(), booking.Id)
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.CodeConflict))
}

func seedCashRefundRequest(factory *fakeFactory, status entity.RefundStatus) *entity.RefundRequest {
	now := time.Now()
	booking := &entity.Booking{
		Id:          uuid.New(),
		UserId:      uuid.New(),
		Status:      entity.BookingStatusCancelled,
		PaymentMode: entity.PaymentModeCash,
		GuestName:   "Meera",
		GuestEmail:  "meera@example.com",
	}
	_ = factory.uow.bookings.Create(context.Background(), booking)

	r := &entity.RefundRequest{
		Id:          uuid.New(),
		BookingId:   booking.Id,
		UserId:      booking.UserId,
		Method:      entity.RefundMethodCash,
		Amount:      900,
		Fee:         100,
		Status:      status,
		Reason:      "plans changed",
		InitiatedAt: now,
		Timeline: []entity.TimelineEntry{
			{Status: entity.RefundStatusInitiated, Message: "refund request created", At: now},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	_ = factory.uow.refunds.Create(context.Background(), r)
	return r
}

func TestApproveRefundSettlesAndNotifies(t *testing.T) {
	factory := newFakeFactory()
	svc, publisher, mail := newAdminServiceForTest(factory)

	r := seedCashRefundRequest(factory, entity.RefundStatusInitiated)

	res, err := svc.ApproveRefund(context.Background(), r.Id, "paid out at desk")
	require.NoError(t, err)
	assert.Equal(t, string(entity.RefundStatusRefunded), res.Status)

	stored, _ := factory.uow.refunds.FindOne(context.Background(), specification.ByID{ID: r.Id})
	assert.Equal(t, entity.RefundStatusRefunded, stored.Status)
	require.NotNil(t, stored.RefundedAt)
	assert.Len(t, publisher.RefundsSent, 1)
	assert.Len(t, mail.RefundUpdates, 1)

	// Settling a settled refund is a conflict, not a double payout.
	_, err = svc.ApproveRefund(context.Background(), r.Id, "again")
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.CodeConflict))
}

func TestApproveFailedOnlineRefundSettlesPayment(t *testing.T) {
	factory := newFakeFactory()
	svc, _, _ := newAdminServiceForTest(factory)

	now := time.Now()
	booking := &entity.Booking{
		Id:          uuid.New(),
		UserId:      uuid.New(),
		Status:      entity.BookingStatusCancelled,
		PaymentMode: entity.PaymentModeOnline,
		GuestName:   "Asha Rao",
		GuestEmail:  "asha@example.com",
	}
	_ = factory.uow.bookings.Create(context.Background(), booking)

	gatewayPaymentId := "pay_live_9"
	pay := &entity.Payment{
		Id:        uuid.New(),
		BookingId: booking.Id,
		UserId:    booking.UserId,
		OrderId:   "order_live_9",
		Amount:    2400,
		Currency:  "INR",
		Status:    entity.GatewayPaymentPaid,
		PaymentId: &gatewayPaymentId,
	}
	_ = factory.uow.payments.Create(context.Background(), pay)

	failedAt := now
	r := &entity.RefundRequest{
		Id:          uuid.New(),
		BookingId:   booking.Id,
		UserId:      booking.UserId,
		PaymentId:   &pay.Id,
		Method:      entity.RefundMethodRazorpay,
		Amount:      1800,
		Fee:         600,
		Status:      entity.RefundStatusFailed,
		Reason:      "plans changed",
		InitiatedAt: now,
		FailedAt:    &failedAt,
		Timeline: []entity.TimelineEntry{
			{Status: entity.RefundStatusInitiated, Message: "refund request created", At: now},
			{Status: entity.RefundStatusFailed, Message: "gateway unavailable", At: now},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	_ = factory.uow.refunds.Create(context.Background(), r)

	res, err := svc.ApproveRefund(context.Background(), r.Id, "wired manually")
	require.NoError(t, err)
	assert.Equal(t, string(entity.RefundStatusRefunded), res.Status)

	storedPay, _ := factory.uow.payments.FindOne(context.Background(), specification.ByID{ID: pay.Id})
	assert.Equal(t, entity.GatewayPaymentRefunded, storedPay.Status)
}

func TestRejectRefundOnlyFromInitiated(t *testing.T) {
	factory := newFakeFactory()
	svc, _, _ := newAdminServiceForTest(factory)

	r := seedCashRefundRequest(factory, entity.RefundStatusInitiated)

	res, err := svc.RejectRefund(context.Background(), r.Id, "no-show policy")
	require.NoError(t, err)
	assert.Equal(t, string(entity.RefundStatusCancelled), res.Status)

	processing := seedCashRefundRequest(factory, entity.RefundStatusProcessing)
	_, err = svc.RejectRefund(context.Background(), processing.Id, "too late")
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.CodeConflict))
}
