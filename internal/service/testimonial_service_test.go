package service

import (
	"context"
	"testing"
	"time"

	"homestay-be/internal/dto"
	"homestay-be/internal/entity"
	"homestay-be/internal/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedBookingWithStatus(factory *fakeFactory, userId uuid.UUID, status entity.BookingStatus) *entity.Booking {
	booking := &entity.Booking{
		Id:        uuid.New(),
		UserId:    userId,
		StayDate:  time.Now().AddDate(0, 0, -7),
		Status:    status,
		GuestName: "Ravi",
	}
	_ = factory.uow.bookings.Create(context.Background(), booking)
	return booking
}

func TestCreateTestimonialRequiresCompletedStay(t *testing.T) {
	factory := newFakeFactory()
	svc := NewTestimonialService(factory)

	userId := uuid.New()
	booking := seedBookingWithStatus(factory, userId, entity.BookingStatusConfirmed)

	_, err := svc.Create(context.Background(), userId, booking.Id, &dto.CreateTestimonialRequest{
		Rating:  5,
		Comment: "lovely stay by the river",
	})
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.CodeConflict))
}

func TestCreateTestimonialOncePerBooking(t *testing.T) {
	factory := newFakeFactory()
	svc := NewTestimonialService(factory)

	userId := uuid.New()
	booking := seedBookingWithStatus(factory, userId, entity.BookingStatusCompleted)

	req := &dto.CreateTestimonialRequest{Rating: 4, Comment: "great food, thin walls"}

	res, err := svc.Create(context.Background(), userId, booking.Id, req)
	require.NoError(t, err)
	assert.Equal(t, string(entity.TestimonialStatusPending), res.Status)
	assert.Equal(t, "Ravi", res.GuestName)

	_, err = svc.Create(context.Background(), userId, booking.Id, req)
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.CodeConflict))
}

func TestCreateTestimonialRejectsForeignBooking(t *testing.T) {
	factory := newFakeFactory()
	svc := NewTestimonialService(factory)

	booking := seedBookingWithStatus(factory, uuid.New(), entity.BookingStatusCompleted)

	_, err := svc.Create(context.Background(), uuid.New(), booking.Id, &dto.CreateTestimonialRequest{
		Rating:  1,
		Comment: "never actually stayed here",
	})
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.CodeAuthorization))
}

func TestModerateTestimonial(t *testing.T) {
	factory := newFakeFactory()
	svc := NewTestimonialService(factory)

	userId := uuid.New()
	booking := seedBookingWithStatus(factory, userId, entity.BookingStatusCompleted)

	created, err := svc.Create(context.Background(), userId, booking.Id, &dto.CreateTestimonialRequest{
		Rating:  5,
		Comment: "will come back",
	})
	require.NoError(t, err)

	moderated, err := svc.Moderate(context.Background(), created.Id, &dto.ModerateTestimonialRequest{
		Status: string(entity.TestimonialStatusApproved),
	})
	require.NoError(t, err)
	assert.Equal(t, string(entity.TestimonialStatusApproved), moderated.Status)
}

func TestRefundVisibilityAndDeletion(t *testing.T) {
	factory := newFakeFactory()
	svc := NewRefundService(factory)

	r := seedCashRefundRequest(factory, entity.RefundStatusInitiated)

	// Owner and admin can read it, a stranger cannot.
	res, err := svc.GetOne(context.Background(), r.UserId, false, r.Id)
	require.NoError(t, err)
	assert.Equal(t, r.Id, res.Id)

	_, err = svc.GetOne(context.Background(), uuid.New(), true, r.Id)
	require.NoError(t, err)

	_, err = svc.GetOne(context.Background(), uuid.New(), false, r.Id)
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.CodeAuthorization))

	// Money still moving, so the record must stay.
	err = svc.Delete(context.Background(), r.UserId, false, r.Id)
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.CodeConflict))

	settled := seedCashRefundRequest(factory, entity.RefundStatusRefunded)
	require.NoError(t, svc.Delete(context.Background(), settled.UserId, false, settled.Id))

	err = svc.Delete(context.Background(), settled.UserId, false, settled.Id)
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.CodeNotFound))
}
