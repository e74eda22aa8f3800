package implementation

import (
	"context"

	"gorm.io/gorm"

	"homestay-be/internal/entity"
	"homestay-be/internal/model"
	"homestay-be/internal/repository/contract"
	"homestay-be/internal/repository/specification"
)

type paymentRepositoryImpl struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) contract.PaymentRepository {
	return &paymentRepositoryImpl{db: db}
}

func (r *paymentRepositoryImpl) Create(ctx context.Context, payment *entity.Payment) error {
	return r.db.WithContext(ctx).Create(&model.Payment{
		Id:        payment.Id,
		BookingId: payment.BookingId,
		UserId:    payment.UserId,
		OrderId:   payment.OrderId,
		PaymentId: payment.PaymentId,
		Amount:    payment.Amount,
		Currency:  payment.Currency,
		Status:    string(payment.Status),
		Method:    payment.Method,
	}).Error
}

func (r *paymentRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Payment, error) {
	var mp model.Payment
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.First(&mp).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return r.mapToEntity(&mp), nil
}

func (r *paymentRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Payment, error) {
	var mps []*model.Payment
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.Find(&mps).Error; err != nil {
		return nil, err
	}

	var payments []*entity.Payment
	for _, mp := range mps {
		payments = append(payments, r.mapToEntity(mp))
	}
	return payments, nil
}

func (r *paymentRepositoryImpl) Update(ctx context.Context, payment *entity.Payment) error {
	return r.db.WithContext(ctx).Model(&model.Payment{}).
		Where("id = ?", payment.Id).
		Updates(map[string]interface{}{
			"payment_id": payment.PaymentId,
			"status":     string(payment.Status),
			"method":     payment.Method,
		}).Error
}

func (r *paymentRepositoryImpl) MarkPaid(ctx context.Context, orderId, paymentId, method string) (bool, error) {
	result := r.db.WithContext(ctx).Model(&model.Payment{}).
		Where("order_id = ? AND status = ?", orderId, string(entity.GatewayPaymentPending)).
		Updates(map[string]interface{}{
			"payment_id": paymentId,
			"status":     string(entity.GatewayPaymentPaid),
			"method":     method,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *paymentRepositoryImpl) SumAmountByStatus(ctx context.Context, status entity.GatewayPaymentStatus) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).Model(&model.Payment{}).
		Where("status = ?", string(status)).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}

func (r *paymentRepositoryImpl) mapToEntity(mp *model.Payment) *entity.Payment {
	return &entity.Payment{
		Id:        mp.Id,
		BookingId: mp.BookingId,
		UserId:    mp.UserId,
		OrderId:   mp.OrderId,
		PaymentId: mp.PaymentId,
		Amount:    mp.Amount,
		Currency:  mp.Currency,
		Status:    entity.GatewayPaymentStatus(mp.Status),
		Method:    mp.Method,
		CreatedAt: mp.CreatedAt,
		UpdatedAt: mp.UpdatedAt,
	}
}
