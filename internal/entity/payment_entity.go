package entity

import (
	"time"

	"github.com/google/uuid"
)

type GatewayPaymentStatus string

const (
	GatewayPaymentPending  GatewayPaymentStatus = "pending"
	GatewayPaymentPaid     GatewayPaymentStatus = "paid"
	GatewayPaymentFailed   GatewayPaymentStatus = "failed"
	GatewayPaymentRefunded GatewayPaymentStatus = "refunded"
)

// Payment is one row per gateway transaction. OrderId is assigned at order
// creation; PaymentId only once the gateway captures the money.
type Payment struct {
	Id        uuid.UUID
	BookingId uuid.UUID
	UserId    uuid.UUID
	OrderId   string
	PaymentId *string
	Amount    float64
	Currency  string
	Status    GatewayPaymentStatus
	Method    string
	CreatedAt time.Time
	UpdatedAt time.Time
}
