package model

import (
	"time"

	"github.com/google/uuid"
)

type Payment struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	BookingId uuid.UUID `gorm:"type:uuid;not null;index"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;index"`
	OrderId   string    `gorm:"type:varchar(100);uniqueIndex;not null"`
	PaymentId *string   `gorm:"type:varchar(100);uniqueIndex"`
	Amount    float64   `gorm:"type:decimal(10,2);not null"`
	Currency  string    `gorm:"type:varchar(10);not null;default:'INR'"`
	Status    string    `gorm:"type:varchar(20);not null;default:'pending'"`
	Method    string    `gorm:"type:varchar(50)"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	Booking Booking `gorm:"foreignKey:BookingId"`
	User    User    `gorm:"foreignKey:UserId"`
}

func (Payment) TableName() string {
	return "payments"
}
