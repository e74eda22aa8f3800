package implementation

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"homestay-be/internal/entity"
	"homestay-be/internal/model"
	"homestay-be/internal/repository/contract"
	"homestay-be/internal/repository/specification"
)

type refundRepositoryImpl struct {
	db *gorm.DB
}

func NewRefundRepository(db *gorm.DB) contract.RefundRepository {
	return &refundRepositoryImpl{db: db}
}

func (r *refundRepositoryImpl) Create(ctx context.Context, refund *entity.RefundRequest) error {
	mr, err := r.mapToModel(refund)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(mr).Error
}

func (r *refundRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.RefundRequest, error) {
	var mr model.RefundRequest
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.First(&mr).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return r.mapToEntity(&mr), nil
}

func (r *refundRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.RefundRequest, error) {
	var mrs []*model.RefundRequest
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.Find(&mrs).Error; err != nil {
		return nil, err
	}

	var refunds []*entity.RefundRequest
	for _, mr := range mrs {
		refunds = append(refunds, r.mapToEntity(mr))
	}
	return refunds, nil
}

// FindAllWithDetails preloads User and Booking for admin listings.
func (r *refundRepositoryImpl) FindAllWithDetails(ctx context.Context, specs ...specification.Specification) ([]*entity.RefundRequest, error) {
	var mrs []*model.RefundRequest
	query := r.db.WithContext(ctx).
		Preload("User").
		Preload("Booking")

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.Find(&mrs).Error; err != nil {
		return nil, err
	}

	var refunds []*entity.RefundRequest
	for _, mr := range mrs {
		refund := r.mapToEntity(mr)
		refund.User = entity.User{
			Id:       mr.User.Id,
			Email:    mr.User.Email,
			FullName: mr.User.FullName,
		}
		refund.Booking = entity.Booking{
			Id:       mr.Booking.Id,
			StayDate: mr.Booking.StayDate,
			Amount:   mr.Booking.Amount,
			Status:   entity.BookingStatus(mr.Booking.Status),
		}
		refunds = append(refunds, refund)
	}
	return refunds, nil
}

func (r *refundRepositoryImpl) Update(ctx context.Context, refund *entity.RefundRequest) error {
	timeline, err := json.Marshal(refund.Timeline)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Model(&model.RefundRequest{}).
		Where("id = ?", refund.Id).
		Updates(map[string]interface{}{
			"status":            string(refund.Status),
			"gateway_refund_id": refund.GatewayRefundId,
			"timeline":          datatypes.JSON(timeline),
			"processed_at":      refund.ProcessedAt,
			"refunded_at":       refund.RefundedAt,
			"failed_at":         refund.FailedAt,
		}).Error
}

func (r *refundRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.RefundRequest{}, id).Error
}

func (r *refundRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&model.RefundRequest{})

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	err := query.Count(&count).Error
	return count, err
}

func (r *refundRepositoryImpl) SumAmountByStatus(ctx context.Context, status entity.RefundStatus) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).Model(&model.RefundRequest{}).
		Where("status = ?", string(status)).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}

func (r *refundRepositoryImpl) mapToModel(ref *entity.RefundRequest) (*model.RefundRequest, error) {
	timeline, err := json.Marshal(ref.Timeline)
	if err != nil {
		return nil, err
	}
	return &model.RefundRequest{
		Id:              ref.Id,
		BookingId:       ref.BookingId,
		UserId:          ref.UserId,
		PaymentId:       ref.PaymentId,
		Method:          string(ref.Method),
		Amount:          ref.Amount,
		Fee:             ref.Fee,
		Status:          string(ref.Status),
		GatewayRefundId: ref.GatewayRefundId,
		Reason:          ref.Reason,
		Timeline:        datatypes.JSON(timeline),
		InitiatedAt:     ref.InitiatedAt,
		ProcessedAt:     ref.ProcessedAt,
		RefundedAt:      ref.RefundedAt,
		FailedAt:        ref.FailedAt,
	}, nil
}

func (r *refundRepositoryImpl) mapToEntity(mr *model.RefundRequest) *entity.RefundRequest {
	var timeline []entity.TimelineEntry
	if len(mr.Timeline) > 0 {
		// A malformed timeline column should not make the row unreadable.
		_ = json.Unmarshal(mr.Timeline, &timeline)
	}
	return &entity.RefundRequest{
		Id:              mr.Id,
		BookingId:       mr.BookingId,
		UserId:          mr.UserId,
		PaymentId:       mr.PaymentId,
		Method:          entity.RefundMethod(mr.Method),
		Amount:          mr.Amount,
		Fee:             mr.Fee,
		Status:          entity.RefundStatus(mr.Status),
		GatewayRefundId: mr.GatewayRefundId,
		Reason:          mr.Reason,
		Timeline:        timeline,
		InitiatedAt:     mr.InitiatedAt,
		ProcessedAt:     mr.ProcessedAt,
		RefundedAt:      mr.RefundedAt,
		FailedAt:        mr.FailedAt,
		CreatedAt:       mr.CreatedAt,
		UpdatedAt:       mr.UpdatedAt,
	}
}
