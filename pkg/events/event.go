package events

import "time"

// Event is the contract every system event satisfies.
type Event interface {
	// EventType returns the unique code for this event (e.g. "BOOKING_CONFIRMED").
	EventType() string

	// Payload returns the data carried by the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is a plain implementation used when reconstructing events
// off the wire or when no dedicated type exists.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// Event codes emitted by the booking pipeline.
const (
	TypeBookingCreated   = "BOOKING_CREATED"
	TypeBookingConfirmed = "BOOKING_CONFIRMED"
	TypeBookingCancelled = "BOOKING_CANCELLED"
	TypePaymentReceived  = "PAYMENT_RECEIVED"
	TypeRefundUpdated    = "REFUND_UPDATED"
	TypeSweepCompleted   = "SWEEP_COMPLETED"
)

func NewBookingEvent(eventType string, data map[string]interface{}) BaseEvent {
	return BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
}
