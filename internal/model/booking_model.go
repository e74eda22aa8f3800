package model

import (
	"time"

	"github.com/google/uuid"
)

type Booking struct {
	Id              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId          uuid.UUID `gorm:"type:uuid;not null;index"`
	AccommodationId uuid.UUID `gorm:"type:uuid;not null;index"`

	StayDate  time.Time `gorm:"type:date;not null;index"`
	GroupSize int       `gorm:"not null"`
	MealType  string    `gorm:"type:varchar(20);not null"`
	NeedStay  bool      `gorm:"default:false"`
	StayNight int       `gorm:"default:0"`

	Amount        float64 `gorm:"type:decimal(10,2);not null"`
	PaymentMode   string  `gorm:"type:varchar(20);not null"`
	PaymentStatus string  `gorm:"type:varchar(20);not null;default:'pending';index"`
	Status        string  `gorm:"type:varchar(20);not null;default:'pending';index"`

	DepositAmount   float64 `gorm:"type:decimal(10,2);default:0"`
	RemainingAmount float64 `gorm:"type:decimal(10,2);default:0"`
	DepositPaid     bool    `gorm:"default:false"`

	GuestName  string `gorm:"type:varchar(255)"`
	GuestEmail string `gorm:"type:varchar(255)"`
	GuestPhone string `gorm:"type:varchar(20)"`

	RefundRequested bool   `gorm:"default:false"`
	CancelReason    string `gorm:"type:text"`
	CancelledAt     *time.Time

	DeletedByUser  bool `gorm:"default:false"`
	DeletedByAdmin bool `gorm:"default:false"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	User          User          `gorm:"foreignKey:UserId"`
	Accommodation Accommodation `gorm:"foreignKey:AccommodationId"`
}

func (Booking) TableName() string {
	return "bookings"
}
