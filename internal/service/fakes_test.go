package service

import (
	"context"
	"sync"
	"time"

	"homestay-be/internal/entity"
	"homestay-be/internal/pkg/apperror"
	"homestay-be/internal/pkg/logger"
	"homestay-be/internal/repository/contract"
	"homestay-be/internal/repository/specification"
	"homestay-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// The fakes below back the service tests with in-memory state. They honor
// the same conditional-update semantics the SQL implementations do, which
// is what the idempotency tests exercise.

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }
func (nopLogger) GetLogs(level string, limit, offset int) ([]logger.LogEntry, error) {
	return nil, nil
}

type fakeMailPublisher struct {
	mu            sync.Mutex
	Confirmations []uuid.UUID
	Cancellations []uuid.UUID
	RefundUpdates []uuid.UUID
}

func (f *fakeMailPublisher) PublishBookingConfirmation(booking *entity.Booking) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Confirmations = append(f.Confirmations, booking.Id)
}

func (f *fakeMailPublisher) PublishBookingCancellation(booking *entity.Booking, refundAmount, fee float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Cancellations = append(f.Cancellations, booking.Id)
}

func (f *fakeMailPublisher) PublishRefundUpdate(refund *entity.RefundRequest, guestEmail, guestName string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.RefundUpdates = append(f.RefundUpdates, refund.Id)
}

// --- spec matching helpers ---

func specsMatchBooking(b *entity.Booking, specs []specification.Specification) bool {
	for _, sp := range specs {
		switch s := sp.(type) {
		case specification.ByID:
			if b.Id != s.ID {
				return false
			}
		case specification.UserOwnedBy:
			if b.UserId != s.UserID {
				return false
			}
		case specification.FilterBy:
			switch s.Field {
			case "status":
				if string(b.Status) != s.Value.(string) {
					return false
				}
			case "accommodation_id":
				if b.AccommodationId != s.Value.(uuid.UUID) {
					return false
				}
			}
		}
	}
	return true
}

// --- repositories ---

type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[uuid.UUID]*entity.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[uuid.UUID]*entity.Booking)}
}

func (r *fakeBookingRepo) Create(ctx context.Context, booking *entity.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *booking
	r.bookings[booking.Id] = &clone
	return nil
}

func (r *fakeBookingRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if specsMatchBooking(b, specs) {
			clone := *b
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeBookingRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Booking
	for _, b := range r.bookings {
		if specsMatchBooking(b, specs) {
			clone := *b
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) FindAllWithUser(ctx context.Context, specs ...specification.Specification) ([]*entity.Booking, error) {
	return r.FindAll(ctx, specs...)
}

func (r *fakeBookingRepo) Update(ctx context.Context, booking *entity.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *booking
	r.bookings[booking.Id] = &clone
	return nil
}

func (r *fakeBookingRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, b := range r.bookings {
		if specsMatchBooking(b, specs) {
			n++
		}
	}
	return n, nil
}

func (r *fakeBookingRepo) ConfirmPending(ctx context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok || b.Status != entity.BookingStatusPending {
		return false, nil
	}
	b.Status = entity.BookingStatusConfirmed
	b.PaymentStatus = entity.PaymentStatusPaid
	return true, nil
}

func (r *fakeBookingRepo) MarkCashDepositPaid(ctx context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok || b.PaymentMode != entity.PaymentModeCash || b.PaymentStatus != entity.PaymentStatusPending || b.DepositPaid {
		return false, nil
	}
	b.DepositPaid = true
	return true, nil
}

func (r *fakeBookingRepo) CompleteStale(ctx context.Context, before time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, b := range r.bookings {
		if b.StayDate.Before(before) &&
			(b.Status == entity.BookingStatusPending || b.Status == entity.BookingStatusConfirmed) {
			b.Status = entity.BookingStatusCompleted
			n++
		}
	}
	return n, nil
}

type fakeAccommodationRepo struct {
	mu   sync.Mutex
	accs map[uuid.UUID]*entity.Accommodation
}

func newFakeAccommodationRepo() *fakeAccommodationRepo {
	return &fakeAccommodationRepo{accs: make(map[uuid.UUID]*entity.Accommodation)}
}

func (r *fakeAccommodationRepo) Create(ctx context.Context, acc *entity.Accommodation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *acc
	r.accs[acc.Id] = &clone
	return nil
}

func (r *fakeAccommodationRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Accommodation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.accs {
		match := true
		for _, sp := range specs {
			if byID, ok := sp.(specification.ByID); ok && a.Id != byID.ID {
				match = false
			}
		}
		if match {
			clone := *a
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeAccommodationRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Accommodation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Accommodation
	for _, a := range r.accs {
		clone := *a
		out = append(out, &clone)
	}
	return out, nil
}

func (r *fakeAccommodationRepo) UpdateRates(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accs[id]
	if !ok {
		return apperror.NotFound("accommodation")
	}
	if v, ok := fields["veg_rate"]; ok {
		a.VegRate = v.(float64)
	}
	if v, ok := fields["non_veg_rate"]; ok {
		a.NonVegRate = v.(float64)
	}
	if v, ok := fields["price_per_night"]; ok {
		a.PricePerNight = v.(float64)
	}
	return nil
}

func (r *fakeAccommodationRepo) ReserveCapacity(ctx context.Context, id uuid.UUID, members int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accs[id]
	if !ok {
		return apperror.NotFound("accommodation")
	}
	if a.BookedMembers+members > a.MaxMembers {
		return apperror.CapacityExceeded("not enough capacity")
	}
	a.BookedMembers += members
	return nil
}

func (r *fakeAccommodationRepo) ReleaseCapacity(ctx context.Context, id uuid.UUID, members int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accs[id]
	if !ok {
		return apperror.NotFound("accommodation")
	}
	a.BookedMembers -= members
	if a.BookedMembers < 0 {
		a.BookedMembers = 0
	}
	return nil
}

func (r *fakeAccommodationRepo) UpdateMaxMembers(ctx context.Context, id uuid.UUID, maxMembers int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accs[id]
	if !ok {
		return apperror.NotFound("accommodation")
	}
	if maxMembers < a.BookedMembers {
		return apperror.Conflict("max members below current occupancy")
	}
	a.MaxMembers = maxMembers
	return nil
}

type fakePaymentRepo struct {
	mu       sync.Mutex
	payments map[uuid.UUID]*entity.Payment
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{payments: make(map[uuid.UUID]*entity.Payment)}
}

func specsMatchPayment(p *entity.Payment, specs []specification.Specification) bool {
	for _, sp := range specs {
		switch s := sp.(type) {
		case specification.ByID:
			if p.Id != s.ID {
				return false
			}
		case specification.ByOrderId:
			if p.OrderId != s.OrderId {
				return false
			}
		case specification.FilterBy:
			if s.Field == "booking_id" && p.BookingId != s.Value.(uuid.UUID) {
				return false
			}
		}
	}
	return true
}

func (r *fakePaymentRepo) Create(ctx context.Context, payment *entity.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *payment
	r.payments[payment.Id] = &clone
	return nil
}

func (r *fakePaymentRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.payments {
		if specsMatchPayment(p, specs) {
			clone := *p
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakePaymentRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Payment
	for _, p := range r.payments {
		if specsMatchPayment(p, specs) {
			clone := *p
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *fakePaymentRepo) Update(ctx context.Context, payment *entity.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *payment
	r.payments[payment.Id] = &clone
	return nil
}

func (r *fakePaymentRepo) MarkPaid(ctx context.Context, orderId, paymentId, method string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.payments {
		if p.OrderId == orderId {
			if p.Status != entity.GatewayPaymentPending {
				return false, nil
			}
			p.Status = entity.GatewayPaymentPaid
			p.PaymentId = &paymentId
			p.Method = method
			return true, nil
		}
	}
	return false, nil
}

func (r *fakePaymentRepo) SumAmountByStatus(ctx context.Context, status entity.GatewayPaymentStatus) (float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var sum float64
	for _, p := range r.payments {
		if p.Status == status {
			sum += p.Amount
		}
	}
	return sum, nil
}

type fakeRefundRepo struct {
	mu      sync.Mutex
	refunds map[uuid.UUID]*entity.RefundRequest
}

func newFakeRefundRepo() *fakeRefundRepo {
	return &fakeRefundRepo{refunds: make(map[uuid.UUID]*entity.RefundRequest)}
}

func specsMatchRefund(r *entity.RefundRequest, specs []specification.Specification) bool {
	for _, sp := range specs {
		switch s := sp.(type) {
		case specification.ByID:
			if r.Id != s.ID {
				return false
			}
		case specification.UserOwnedBy:
			if r.UserId != s.UserID {
				return false
			}
		case specification.FilterBy:
			switch s.Field {
			case "booking_id":
				if r.BookingId != s.Value.(uuid.UUID) {
					return false
				}
			case "status":
				if string(r.Status) != s.Value.(string) {
					return false
				}
			}
		}
	}
	return true
}

func (f *fakeRefundRepo) Create(ctx context.Context, refund *entity.RefundRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *refund
	f.refunds[refund.Id] = &clone
	return nil
}

func (f *fakeRefundRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.RefundRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.refunds {
		if specsMatchRefund(r, specs) {
			clone := *r
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeRefundRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.RefundRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.RefundRequest
	for _, r := range f.refunds {
		if specsMatchRefund(r, specs) {
			clone := *r
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (f *fakeRefundRepo) FindAllWithDetails(ctx context.Context, specs ...specification.Specification) ([]*entity.RefundRequest, error) {
	return f.FindAll(ctx, specs...)
}

func (f *fakeRefundRepo) Update(ctx context.Context, refund *entity.RefundRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *refund
	f.refunds[refund.Id] = &clone
	return nil
}

func (f *fakeRefundRepo) Delete(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.refunds, id)
	return nil
}

func (f *fakeRefundRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, r := range f.refunds {
		if specsMatchRefund(r, specs) {
			n++
		}
	}
	return n, nil
}

func (f *fakeRefundRepo) SumAmountByStatus(ctx context.Context, status entity.RefundStatus) (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var sum float64
	for _, r := range f.refunds {
		if r.Status == status {
			sum += r.Amount
		}
	}
	return sum, nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *user
	f.users[user.Id] = &clone
	return nil
}

func (f *fakeUserRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		match := true
		for _, sp := range specs {
			switch s := sp.(type) {
			case specification.ByID:
				if u.Id != s.ID {
					match = false
				}
			case specification.ByEmail:
				if u.Email != s.Email {
					match = false
				}
			}
		}
		if match {
			clone := *u
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.User
	for _, u := range f.users {
		clone := *u
		out = append(out, &clone)
	}
	return out, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *user
	f.users[user.Id] = &clone
	return nil
}

func (f *fakeUserRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.users)), nil
}

type fakeTestimonialRepo struct {
	mu           sync.Mutex
	testimonials map[uuid.UUID]*entity.Testimonial
}

func newFakeTestimonialRepo() *fakeTestimonialRepo {
	return &fakeTestimonialRepo{testimonials: make(map[uuid.UUID]*entity.Testimonial)}
}

func (f *fakeTestimonialRepo) Create(ctx context.Context, t *entity.Testimonial) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *t
	f.testimonials[t.Id] = &clone
	return nil
}

func (f *fakeTestimonialRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Testimonial, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.testimonials {
		match := true
		for _, sp := range specs {
			switch s := sp.(type) {
			case specification.ByID:
				if t.Id != s.ID {
					match = false
				}
			case specification.FilterBy:
				if s.Field == "booking_id" && t.BookingId != s.Value.(uuid.UUID) {
					match = false
				}
			}
		}
		if match {
			clone := *t
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeTestimonialRepo) FindAllWithUser(ctx context.Context, specs ...specification.Specification) ([]*entity.Testimonial, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Testimonial
	for _, t := range f.testimonials {
		clone := *t
		out = append(out, &clone)
	}
	return out, nil
}

func (f *fakeTestimonialRepo) Update(ctx context.Context, t *entity.Testimonial) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *t
	f.testimonials[t.Id] = &clone
	return nil
}

// --- unit of work ---

// fakeUow shares the same repositories across "transactions"; Begin,
// Commit and Rollback are bookkeeping only. Rollback semantics are not
// simulated, the tests assert on the success paths and on guard refusals
// that happen before any write.
type fakeUow struct {
	bookings      *fakeBookingRepo
	accommodation *fakeAccommodationRepo
	payments      *fakePaymentRepo
	refunds       *fakeRefundRepo
	users         *fakeUserRepo
	testimonials  *fakeTestimonialRepo
}

func newFakeUow() *fakeUow {
	return &fakeUow{
		bookings:      newFakeBookingRepo(),
		accommodation: newFakeAccommodationRepo(),
		payments:      newFakePaymentRepo(),
		refunds:       newFakeRefundRepo(),
		users:         newFakeUserRepo(),
		testimonials:  newFakeTestimonialRepo(),
	}
}

func (u *fakeUow) Begin(ctx context.Context) error { return nil }
func (u *fakeUow) Commit() error                   { return nil }
func (u *fakeUow) Rollback() error                 { return nil }

func (u *fakeUow) UserRepository() contract.UserRepository                   { return u.users }
func (u *fakeUow) AccommodationRepository() contract.AccommodationRepository { return u.accommodation }
func (u *fakeUow) BookingRepository() contract.BookingRepository             { return u.bookings }
func (u *fakeUow) PaymentRepository() contract.PaymentRepository             { return u.payments }
func (u *fakeUow) RefundRepository() contract.RefundRepository               { return u.refunds }
func (u *fakeUow) TestimonialRepository() contract.TestimonialRepository     { return u.testimonials }

type fakeFactory struct {
	uow *fakeUow
}

func newFakeFactory() *fakeFactory {
	return &fakeFactory{uow: newFakeUow()}
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}
