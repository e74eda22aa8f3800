package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type RefundRequest struct {
	Id        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	BookingId uuid.UUID  `gorm:"type:uuid;not null;index"`
	UserId    uuid.UUID  `gorm:"type:uuid;not null;index"`
	PaymentId *uuid.UUID `gorm:"type:uuid"`

	Method          string         `gorm:"type:varchar(20);not null"`
	Amount          float64        `gorm:"type:decimal(10,2);not null"`
	Fee             float64        `gorm:"type:decimal(10,2);not null;default:0"`
	Status          string         `gorm:"type:varchar(20);not null;default:'initiated';index"`
	GatewayRefundId *string        `gorm:"type:varchar(100)"`
	Reason          string         `gorm:"type:text"`
	Timeline        datatypes.JSON `gorm:"type:jsonb"`

	InitiatedAt time.Time `gorm:"not null"`
	ProcessedAt *time.Time
	RefundedAt  *time.Time
	FailedAt    *time.Time

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	Booking Booking `gorm:"foreignKey:BookingId"`
	User    User    `gorm:"foreignKey:UserId"`
}

func (RefundRequest) TableName() string {
	return "refund_requests"
}
