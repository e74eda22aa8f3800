package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBookingTransitionTable(t *testing.T) {
	tests := []struct {
		name string
		from BookingStatus
		to   BookingStatus
		ok   bool
	}{
		{"pending to confirmed", BookingStatusPending, BookingStatusConfirmed, true},
		{"pending to cancelled", BookingStatusPending, BookingStatusCancelled, true},
		{"pending to completed via sweep", BookingStatusPending, BookingStatusCompleted, true},
		{"confirmed to cancelled", BookingStatusConfirmed, BookingStatusCancelled, true},
		{"confirmed to completed", BookingStatusConfirmed, BookingStatusCompleted, true},
		{"confirmed back to pending", BookingStatusConfirmed, BookingStatusPending, false},
		{"cancelled is terminal", BookingStatusCancelled, BookingStatusConfirmed, false},
		{"completed is terminal", BookingStatusCompleted, BookingStatusCancelled, false},
		{"no self transition", BookingStatusPending, BookingStatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &Booking{Status: tt.from}
			err := b.Transition(tt.to)
			if tt.ok {
				assert.NoError(t, err)
				assert.Equal(t, tt.to, b.Status)
			} else {
				assert.Error(t, err)
				assert.Equal(t, tt.from, b.Status)
			}
		})
	}
}

func TestRefundAdvanceRecordsTimeline(t *testing.T) {
	now := time.Now()
	r := &RefundRequest{Status: RefundStatusInitiated}

	assert.NoError(t, r.Advance(RefundStatusProcessing, "refund sent to gateway", now))
	assert.NoError(t, r.Advance(RefundStatusRefunded, "gateway confirmed refund", now.Add(time.Minute)))

	assert.Len(t, r.Timeline, 2)
	assert.Equal(t, RefundStatusProcessing, r.Timeline[0].Status)
	assert.Equal(t, RefundStatusRefunded, r.Timeline[1].Status)
	assert.NotNil(t, r.ProcessedAt)
	assert.NotNil(t, r.RefundedAt)

	// Terminal: any further transition is rejected.
	err := r.Advance(RefundStatusFailed, "late failure", now)
	assert.Error(t, err)
}

func TestFailedRefundCanBeSettledManually(t *testing.T) {
	now := time.Now()
	r := &RefundRequest{Status: RefundStatusFailed}

	assert.NoError(t, r.Advance(RefundStatusRefunded, "settled by admin", now))
	assert.Equal(t, RefundStatusRefunded, r.Status)
	assert.NotNil(t, r.RefundedAt)

	assert.Error(t, r.Advance(RefundStatusFailed, "late failure", now))
}

func TestRefundStatusDeletable(t *testing.T) {
	assert.False(t, RefundStatusInitiated.Deletable())
	assert.False(t, RefundStatusProcessing.Deletable())
	assert.True(t, RefundStatusRefunded.Deletable())
	assert.True(t, RefundStatusFailed.Deletable())
	assert.True(t, RefundStatusCancelled.Deletable())
}

func TestMoneyCollected(t *testing.T) {
	paid := &Booking{PaymentStatus: PaymentStatusPaid}
	assert.True(t, paid.MoneyCollected())

	deposit := &Booking{PaymentStatus: PaymentStatusPending, DepositPaid: true}
	assert.True(t, deposit.MoneyCollected())

	unpaid := &Booking{PaymentStatus: PaymentStatusPending}
	assert.False(t, unpaid.MoneyCollected())
}
