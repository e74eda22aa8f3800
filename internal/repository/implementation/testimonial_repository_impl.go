package implementation

import (
	"context"

	"gorm.io/gorm"

	"homestay-be/internal/entity"
	"homestay-be/internal/model"
	"homestay-be/internal/repository/contract"
	"homestay-be/internal/repository/specification"
)

type testimonialRepositoryImpl struct {
	db *gorm.DB
}

func NewTestimonialRepository(db *gorm.DB) contract.TestimonialRepository {
	return &testimonialRepositoryImpl{db: db}
}

func (r *testimonialRepositoryImpl) Create(ctx context.Context, testimonial *entity.Testimonial) error {
	mt := r.mapToModel(testimonial)
	if err := r.db.WithContext(ctx).Create(mt).Error; err != nil {
		return err
	}
	testimonial.Id = mt.Id
	return nil
}

func (r *testimonialRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Testimonial, error) {
	var mt model.Testimonial
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.First(&mt).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return r.mapToEntity(&mt), nil
}

func (r *testimonialRepositoryImpl) FindAllWithUser(ctx context.Context, specs ...specification.Specification) ([]*entity.Testimonial, error) {
	var mts []*model.Testimonial
	query := r.db.WithContext(ctx).Preload("User")

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.Find(&mts).Error; err != nil {
		return nil, err
	}

	var testimonials []*entity.Testimonial
	for _, mt := range mts {
		t := r.mapToEntity(mt)
		t.User = entity.User{
			Id:       mt.User.Id,
			Email:    mt.User.Email,
			FullName: mt.User.FullName,
		}
		testimonials = append(testimonials, t)
	}
	return testimonials, nil
}

func (r *testimonialRepositoryImpl) Update(ctx context.Context, testimonial *entity.Testimonial) error {
	return r.db.WithContext(ctx).Model(&model.Testimonial{}).
		Where("id = ?", testimonial.Id).
		Updates(map[string]interface{}{
			"rating":  testimonial.Rating,
			"comment": testimonial.Comment,
			"status":  string(testimonial.Status),
		}).Error
}

func (r *testimonialRepositoryImpl) mapToModel(t *entity.Testimonial) *model.Testimonial {
	return &model.Testimonial{
		Id:        t.Id,
		BookingId: t.BookingId,
		UserId:    t.UserId,
		Rating:    t.Rating,
		Comment:   t.Comment,
		Status:    string(t.Status),
	}
}

func (r *testimonialRepositoryImpl) mapToEntity(mt *model.Testimonial) *entity.Testimonial {
	return &entity.Testimonial{
		Id:        mt.Id,
		BookingId: mt.BookingId,
		UserId:    mt.UserId,
		Rating:    mt.Rating,
		Comment:   mt.Comment,
		Status:    entity.TestimonialStatus(mt.Status),
		CreatedAt: mt.CreatedAt,
		UpdatedAt: mt.UpdatedAt,
	}
}
