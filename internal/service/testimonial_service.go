package service

import (
	"context"
	"time"

	"homestay-be/internal/dto"
	"homestay-be/internal/entity"
	"homestay-be/internal/pkg/apperror"
	"homestay-be/internal/repository/specification"
	"homestay-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type ITestimonialService interface {
	Create(ctx context.Context, userId, bookingId uuid.UUID, req *dto.CreateTestimonialRequest) (*dto.TestimonialResponse, error)
	GetApproved(ctx context.Context) ([]*dto.TestimonialResponse, error)
	Moderate(ctx context.Context, testimonialId uuid.UUID, req *dto.ModerateTestimonialRequest) (*dto.TestimonialResponse, error)
}

type testimonialService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewTestimonialService(uowFactory unitofwork.RepositoryFactory) ITestimonialService {
	return &testimonialService{
		uowFactory: uowFactory,
	}
}

func (s *testimonialService) Create(ctx context.Context, userId, bookingId uuid.UUID, req *dto.CreateTestimonialRequest) (*dto.TestimonialResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	booking, err := uow.BookingRepository().FindOne(ctx, specification.ByID{ID: bookingId})
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, apperror.NotFound("booking")
	}
	if booking.UserId != userId {
		return nil, apperror.Authorization("not your booking")
	}
	if booking.Status != entity.BookingStatusCompleted {
		return nil, apperror.Conflict("testimonials are only accepted for completed stays")
	}

	existing, err := uow.TestimonialRepository().FindOne(ctx, specification.Filter("booking_id", bookingId))
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.Conflict("testimonial already submitted for this booking")
	}

	testimonial := &entity.Testimonial{
		Id:        uuid.New(),
		BookingId: bookingId,
		UserId:    userId,
		Rating:    req.Rating,
		Comment:   req.Comment,
		Status:    entity.TestimonialStatusPending,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := uow.TestimonialRepository().Create(ctx, testimonial); err != nil {
		return nil, err
	}

	return mapTestimonialResponse(testimonial, booking.GuestName), nil
}

func (s *testimonialService) GetApproved(ctx context.Context) ([]*dto.TestimonialResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	testimonials, err := uow.TestimonialRepository().FindAllWithUser(ctx,
		specification.Filter("status", string(entity.TestimonialStatusApproved)),
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	var res []*dto.TestimonialResponse
	for _, t := range testimonials {
		res = append(res, mapTestimonialResponse(t, t.User.FullName))
	}
	return res, nil
}

func (s *testimonialService) Moderate(ctx context.Context, testimonialId uuid.UUID, req *dto.ModerateTestimonialRequest) (*dto.TestimonialResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	testimonial, err := uow.TestimonialRepository().FindOne(ctx, specification.ByID{ID: testimonialId})
	if err != nil {
		return nil, err
	}
	if testimonial == nil {
		return nil, apperror.NotFound("testimonial")
	}

	testimonial.Status = entity.TestimonialStatus(req.Status)
	if err := uow.TestimonialRepository().Update(ctx, testimonial); err != nil {
		return nil, err
	}

	return mapTestimonialResponse(testimonial, ""), nil
}

func mapTestimonialResponse(t *entity.Testimonial, guestName string) *dto.TestimonialResponse {
	return &dto.TestimonialResponse{
		Id:        t.Id,
		BookingId: t.BookingId,
		GuestName: guestName,
		Rating:    t.Rating,
		Comment:   t.Comment,
		Status:    string(t.Status),
		CreatedAt: t.CreatedAt,
	}
}
