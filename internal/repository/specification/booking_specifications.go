package specification

import (
	"time"

	"gorm.io/gorm"
)

// StatusIn filters by a set of statuses
type StatusIn struct {
	Statuses []string
}

func (s StatusIn) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status IN ?", s.Statuses)
}

// StayDateBefore selects bookings whose stay date passed before the cutoff.
// Used by the nightly sweep.
type StayDateBefore struct {
	Cutoff time.Time
}

func (s StayDateBefore) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("stay_date < ?", s.Cutoff)
}

// ByOrderId filters payments by gateway order id
type ByOrderId struct {
	OrderId string
}

func (s ByOrderId) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("order_id = ?", s.OrderId)
}

// VisibleToUser hides rows the user soft-deleted on their side
type VisibleToUser struct{}

func (s VisibleToUser) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("deleted_by_user = false")
}

// VisibleToAdmin hides rows the admin soft-deleted on their side
type VisibleToAdmin struct{}

func (s VisibleToAdmin) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("deleted_by_admin = false")
}
