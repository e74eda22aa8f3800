package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestQuote(t *testing.T) {
	rates := Rates{VegRate: 200, NonVegRate: 250, PricePerNight: 200}

	tests := []struct {
		name      string
		groupSize int
		meal      MealType
		needStay  bool
		stayNight int
		want      float64
	}{
		{
			name:      "veg group with two nights",
			groupSize: 4,
			meal:      MealVeg,
			needStay:  true,
			stayNight: 2,
			want:      2400, // 200*4 + 200*2*4
		},
		{
			name:      "nonveg day visit",
			groupSize: 3,
			meal:      MealNonVeg,
			needStay:  false,
			stayNight: 0,
			want:      750,
		},
		{
			name:      "needStay false ignores stayNight",
			groupSize: 2,
			meal:      MealVeg,
			needStay:  false,
			stayNight: 5,
			want:      400,
		},
		{
			name:      "single guest one night",
			groupSize: 1,
			meal:      MealNonVeg,
			needStay:  true,
			stayNight: 1,
			want:      450,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Quote(tt.groupSize, tt.meal, tt.needStay, tt.stayNight, rates)
			assert.Equal(t, tt.want, got)

			// Deterministic: same inputs, same output.
			assert.Equal(t, got, Quote(tt.groupSize, tt.meal, tt.needStay, tt.stayNight, rates))
		})
	}
}

func TestDepositSplit(t *testing.T) {
	deposit, remaining := DepositSplit(2400)
	assert.Equal(t, 1200.0, deposit)
	assert.Equal(t, 1200.0, remaining)

	deposit, remaining = DepositSplit(333)
	assert.Equal(t, 166.5, deposit)
	assert.Equal(t, 166.5, remaining)
}

func TestRefundAmountFollowsSchedule(t *testing.T) {
	schedule := DefaultFeeSchedule()
	stayDate := time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)

	// Cancelling two days ahead lands in the widest (highest fee) tier,
	// so the refund is smaller than a last-minute cancellation.
	earlyRefund, earlyFee := RefundAmount(2400, stayDate, stayDate.Add(-48*time.Hour), schedule)
	lateRefund, lateFee := RefundAmount(2400, stayDate, stayDate.Add(-10*time.Minute), schedule)

	assert.Equal(t, 600.0, earlyFee)
	assert.Equal(t, 1800.0, earlyRefund)
	assert.Equal(t, 240.0, lateFee)
	assert.Equal(t, 2160.0, lateRefund)
	assert.Less(t, earlyRefund, lateRefund)
}

func TestRefundAmountAfterStayDateClampsToZeroWindow(t *testing.T) {
	schedule := DefaultFeeSchedule()
	stayDate := time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)

	refund, fee := RefundAmount(1000, stayDate, stayDate.Add(2*time.Hour), schedule)
	assert.Equal(t, 100.0, fee)
	assert.Equal(t, 900.0, refund)
}

func TestFeeForUnsortedSchedule(t *testing.T) {
	schedule := FeeSchedule{
		{HoursBefore: 0, FeePercent: 5},
		{HoursBefore: 72, FeePercent: 30},
		{HoursBefore: 24, FeePercent: 20},
	}

	assert.Equal(t, 30.0, schedule.FeeFor(100))
	assert.Equal(t, 20.0, schedule.FeeFor(30))
	assert.Equal(t, 5.0, schedule.FeeFor(1))
}
