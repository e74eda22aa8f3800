package model

import (
	"time"

	"github.com/google/uuid"
)

type Testimonial struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	BookingId uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;index"`
	Rating    int       `gorm:"not null"`
	Comment   string    `gorm:"type:text"`
	Status    string    `gorm:"type:varchar(20);not null;default:'pending';index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	User    User    `gorm:"foreignKey:UserId"`
	Booking Booking `gorm:"foreignKey:BookingId"`
}

func (Testimonial) TableName() string {
	return "testimonials"
}
