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

type IAccommodationService interface {
	Create(ctx context.Context, req *dto.CreateAccommodationRequest) (*dto.AccommodationResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateAccommodationRequest) (*dto.AccommodationResponse, error)
	GetAll(ctx context.Context) ([]*dto.AccommodationResponse, error)
	GetOne(ctx context.Context, id uuid.UUID) (*dto.AccommodationResponse, error)
}

type accommodationService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewAccommodationService(uowFactory unitofwork.RepositoryFactory) IAccommodationService {
	return &accommodationService{
		uowFactory: uowFactory,
	}
}

func (s *accommodationService) Create(ctx context.Context, req *dto.CreateAccommodationRequest) (*dto.AccommodationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	acc := &entity.Accommodation{
		Id:            uuid.New(),
		Name:          req.Name,
		Description:   req.Description,
		MaxMembers:    req.MaxMembers,
		BookedMembers: 0,
		VegRate:       req.VegRate,
		NonVegRate:    req.NonVegRate,
		PricePerNight: req.PricePerNight,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	if err := uow.AccommodationRepository().Create(ctx, acc); err != nil {
		return nil, err
	}

	return mapAccommodationResponse(acc), nil
}

func (s *accommodationService) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateAccommodationRequest) (*dto.AccommodationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	acc, err := uow.AccommodationRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if acc == nil {
		return nil, apperror.NotFound("accommodation")
	}

	// Rate reductions are refused while unpaid bookings are in flight, so
	// a pending checkout never ends up owing more than it was quoted.
	if s.lowersRates(acc, req) {
		pending, err := uow.BookingRepository().Count(ctx,
			specification.Filter("accommodation_id", id),
			specification.Filter("status", string(entity.BookingStatusPending)),
		)
		if err != nil {
			return nil, err
		}
		if pending > 0 {
			return nil, apperror.Conflict("cannot reduce rates while bookings are awaiting payment")
		}
	}

	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.VegRate != nil {
		fields["veg_rate"] = *req.VegRate
	}
	if req.NonVegRate != nil {
		fields["nonveg_rate"] = *req.NonVegRate
	}
	if req.PricePerNight != nil {
		fields["price_per_night"] = *req.PricePerNight
	}

	if len(fields) > 0 {
		if err := uow.AccommodationRepository().UpdateRates(ctx, id, fields); err != nil {
			return nil, err
		}
	}

	// Capacity moves through its own guarded statement, not the rate patch.
	if req.MaxMembers != nil {
		if err := uow.AccommodationRepository().UpdateMaxMembers(ctx, id, *req.MaxMembers); err != nil {
			return nil, err
		}
	}

	updated, err := uow.AccommodationRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	return mapAccommodationResponse(updated), nil
}

func (s *accommodationService) lowersRates(acc *entity.Accommodation, req *dto.UpdateAccommodationRequest) bool {
	if req.VegRate != nil && *req.VegRate < acc.VegRate {
		return true
	}
	if req.NonVegRate != nil && *req.NonVegRate < acc.NonVegRate {
		return true
	}
	if req.PricePerNight != nil && *req.PricePerNight < acc.PricePerNight {
		return true
	}
	return false
}

func (s *accommodationService) GetAll(ctx context.Context) ([]*dto.AccommodationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	accs, err := uow.AccommodationRepository().FindAll(ctx, specification.OrderBy{Field: "created_at", Desc: false})
	if err != nil {
		return nil, err
	}

	var res []*dto.AccommodationResponse
	for _, acc := range accs {
		res = append(res, mapAccommodationResponse(acc))
	}
	return res, nil
}

func (s *accommodationService) GetOne(ctx context.Context, id uuid.UUID) (*dto.AccommodationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	acc, err := uow.AccommodationRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if acc == nil {
		return nil, apperror.NotFound("accommodation")
	}
	return mapAccommodationResponse(acc), nil
}

func mapAccommodationResponse(acc *entity.Accommodation) *dto.AccommodationResponse {
	return &dto.AccommodationResponse{
		Id:               acc.Id,
		Name:             acc.Name,
		Description:      acc.Description,
		MaxMembers:       acc.MaxMembers,
		BookedMembers:    acc.BookedMembers,
		AvailableMembers: acc.AvailableMembers(),
		VegRate:          acc.VegRate,
		NonVegRate:       acc.NonVegRate,
		PricePerNight:    acc.PricePerNight,
		UpdatedAt:        acc.UpdatedAt,
	}
}
