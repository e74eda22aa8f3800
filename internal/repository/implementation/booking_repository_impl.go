package implementation

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"homestay-be/internal/entity"
	"homestay-be/internal/model"
	"homestay-be/internal/repository/contract"
	"homestay-be/internal/repository/specification"
	"homestay-be/pkg/pricing"
)

type bookingRepositoryImpl struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) contract.BookingRepository {
	return &bookingRepositoryImpl{db: db}
}

func (r *bookingRepositoryImpl) Create(ctx context.Context, booking *entity.Booking) error {
	return r.db.WithContext(ctx).Create(r.mapToModel(booking)).Error
}

func (r *bookingRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Booking, error) {
	var mb model.Booking
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.First(&mb).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return r.mapToEntity(&mb), nil
}

func (r *bookingRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Booking, error) {
	var mbs []*model.Booking
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.Find(&mbs).Error; err != nil {
		return nil, err
	}

	var bookings []*entity.Booking
	for _, mb := range mbs {
		bookings = append(bookings, r.mapToEntity(mb))
	}
	return bookings, nil
}

// FindAllWithUser preloads the owning user for admin listings.
func (r *bookingRepositoryImpl) FindAllWithUser(ctx context.Context, specs ...specification.Specification) ([]*entity.Booking, error) {
	var mbs []*model.Booking
	query := r.db.WithContext(ctx).Preload("User")

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.Find(&mbs).Error; err != nil {
		return nil, err
	}

	var bookings []*entity.Booking
	for _, mb := range mbs {
		bookings = append(bookings, r.mapToEntity(mb))
	}
	return bookings, nil
}

func (r *bookingRepositoryImpl) Update(ctx context.Context, booking *entity.Booking) error {
	return r.db.WithContext(ctx).Model(&model.Booking{}).
		Where("id = ?", booking.Id).
		Updates(map[string]interface{}{
			"payment_status":   string(booking.PaymentStatus),
			"status":           string(booking.Status),
			"deposit_paid":     booking.DepositPaid,
			"refund_requested": booking.RefundRequested,
			"cancel_reason":    booking.CancelReason,
			"cancelled_at":     booking.CancelledAt,
			"deleted_by_user":  booking.DeletedByUser,
			"deleted_by_admin": booking.DeletedByAdmin,
		}).Error
}

func (r *bookingRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&model.Booking{})

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	err := query.Count(&count).Error
	return count, err
}

// ConfirmPending: the WHERE status='pending' clause is what makes
// confirmation idempotent under at-least-once webhook delivery. RowsAffected
// tells the caller whether it won the transition.
func (r *bookingRepositoryImpl) ConfirmPending(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Model(&model.Booking{}).
		Where("id = ? AND status = ?", id, string(entity.BookingStatusPending)).
		Updates(map[string]interface{}{
			"status":         string(entity.BookingStatusConfirmed),
			"payment_status": string(entity.PaymentStatusPaid),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *bookingRepositoryImpl) MarkCashDepositPaid(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Model(&model.Booking{}).
		Where("id = ? AND payment_mode = ? AND payment_status = ?",
			id, string(entity.PaymentModeCash), string(entity.PaymentStatusPending)).
		Updates(map[string]interface{}{
			"payment_status": string(entity.PaymentStatusPaid),
			"deposit_paid":   true,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *bookingRepositoryImpl) CompleteStale(ctx context.Context, before time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&model.Booking{}).
		Where("status IN ? AND stay_date < ?",
			[]string{string(entity.BookingStatusPending), string(entity.BookingStatusConfirmed)}, before).
		Update("status", string(entity.BookingStatusCompleted))
	return result.RowsAffected, result.Error
}

func (r *bookingRepositoryImpl) mapToModel(b *entity.Booking) *model.Booking {
	return &model.Booking{
		Id:              b.Id,
		UserId:          b.UserId,
		AccommodationId: b.AccommodationId,
		StayDate:        b.StayDate,
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
		GuestName:       b.GuestName,
		GuestEmail:      b.GuestEmail,
		GuestPhone:      b.GuestPhone,
		RefundRequested: b.RefundRequested,
		CancelReason:    b.CancelReason,
		CancelledAt:     b.CancelledAt,
		DeletedByUser:   b.DeletedByUser,
		DeletedByAdmin:  b.DeletedByAdmin,
	}
}

func (r *bookingRepositoryImpl) mapToEntity(mb *model.Booking) *entity.Booking {
	return &entity.Booking{
		Id:              mb.Id,
		UserId:          mb.UserId,
		AccommodationId: mb.AccommodationId,
		StayDate:        mb.StayDate,
		GroupSize:       mb.GroupSize,
		MealType:        pricing.MealType(mb.MealType),
		NeedStay:        mb.NeedStay,
		StayNight:       mb.StayNight,
		Amount:          mb.Amount,
		PaymentMode:     entity.PaymentMode(mb.PaymentMode),
		PaymentStatus:   entity.PaymentStatus(mb.PaymentStatus),
		Status:          entity.BookingStatus(mb.Status),
		DepositAmount:   mb.DepositAmount,
		RemainingAmount: mb.RemainingAmount,
		DepositPaid:     mb.DepositPaid,
		GuestName:       mb.GuestName,
		GuestEmail:      mb.GuestEmail,
		GuestPhone:      mb.GuestPhone,
		RefundRequested: mb.RefundRequested,
		CancelReason:    mb.CancelReason,
		CancelledAt:     mb.CancelledAt,
		DeletedByUser:   mb.DeletedByUser,
		DeletedByAdmin:  mb.DeletedByAdmin,
		CreatedAt:       mb.CreatedAt,
		UpdatedAt:       mb.UpdatedAt,
	}
}
