package model

import (
	"time"

	"github.com/google/uuid"
)

// Accommodation holds the capacity counter. booked_members is only mutated by
// the conditional UPDATEs in the repository; the CHECK-like guard lives in
// the WHERE clause, not here.
type Accommodation struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name          string    `gorm:"type:varchar(255);not null"`
	Description   string    `gorm:"type:text"`
	MaxMembers    int       `gorm:"not null"`
	BookedMembers int       `gorm:"not null;default:0"`
	VegRate       float64   `gorm:"type:decimal(10,2);not null"`
	NonVegRate    float64   `gorm:"type:decimal(10,2);not null"`
	PricePerNight float64   `gorm:"type:decimal(10,2);not null"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

func (Accommodation) TableName() string {
	return "accommodations"
}
