package contract

import (
	"context"

	"homestay-be/internal/entity"
	"homestay-be/internal/repository/specification"
)

type TestimonialRepository interface {
	Create(ctx context.Context, testimonial *entity.Testimonial) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Testimonial, error)
	FindAllWithUser(ctx context.Context, specs ...specification.Specification) ([]*entity.Testimonial, error)
	Update(ctx context.Context, testimonial *entity.Testimonial) error
}
