package unitofwork

import (
	"context"

	"homestay-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	AccommodationRepository() contract.AccommodationRepository
	BookingRepository() contract.BookingRepository
	PaymentRepository() contract.PaymentRepository
	RefundRepository() contract.RefundRepository
	TestimonialRepository() contract.TestimonialRepository
}
