package service

import (
	"context"

	"homestay-be/internal/dto"
	"homestay-be/internal/pkg/apperror"
	"homestay-be/internal/repository/specification"
	"homestay-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IRefundService interface {
	MyRefunds(ctx context.Context, userId uuid.UUID) ([]*dto.RefundResponse, error)
	GetOne(ctx context.Context, userId uuid.UUID, isAdmin bool, refundId uuid.UUID) (*dto.RefundResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, isAdmin bool, refundId uuid.UUID) error
}

type refundService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewRefundService(uowFactory unitofwork.RepositoryFactory) IRefundService {
	return &refundService{
		uowFactory: uowFactory,
	}
}

func (s *refundService) MyRefunds(ctx context.Context, userId uuid.UUID) ([]*dto.RefundResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	refunds, err := uow.RefundRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	var res []*dto.RefundResponse
	for _, r := range refunds {
		res = append(res, mapRefundResponse(r))
	}
	return res, nil
}

func (s *refundService) GetOne(ctx context.Context, userId uuid.UUID, isAdmin bool, refundId uuid.UUID) (*dto.RefundResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	refund, err := uow.RefundRepository().FindOne(ctx, specification.ByID{ID: refundId})
	if err != nil {
		return nil, err
	}
	if refund == nil {
		return nil, apperror.NotFound("refund")
	}
	if !isAdmin && refund.UserId != userId {
		return nil, apperror.Authorization("not your refund")
	}
	return mapRefundResponse(refund), nil
}

func (s *refundService) Delete(ctx context.Context, userId uuid.UUID, isAdmin bool, refundId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	refund, err := uow.RefundRepository().FindOne(ctx, specification.ByID{ID: refundId})
	if err != nil {
		return err
	}
	if refund == nil {
		return apperror.NotFound("refund")
	}
	if !isAdmin && refund.UserId != userId {
		return apperror.Authorization("not your refund")
	}

	// In-flight refunds are the audit trail for money still moving.
	if !refund.Status.Deletable() {
		return apperror.Conflict("refund is still being processed")
	}

	return uow.RefundRepository().Delete(ctx, refundId)
}
