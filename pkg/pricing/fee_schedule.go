package pricing

import (
	"sort"
	"time"
)

// FeeTier maps a cancellation window to a cancellation fee. A tier applies
// when the cancellation happens at least HoursBefore hours ahead of the stay
// date.
type FeeTier struct {
	HoursBefore int
	FeePercent  float64
}

// FeeSchedule is the configured cancellation policy. It is plain data so the
// policy lives in configuration, not in the booking state machine.
type FeeSchedule []FeeTier

// DefaultFeeSchedule mirrors the platform's published cancellation policy.
func DefaultFeeSchedule() FeeSchedule {
	return FeeSchedule{
		{HoursBefore: 48, FeePercent: 25},
		{HoursBefore: 24, FeePercent: 15},
		{HoursBefore: 0, FeePercent: 10},
	}
}

// FeeFor returns the fee percent for a cancellation happening hoursBefore
// hours ahead of the stay date. Tiers are matched widest window first.
func (s FeeSchedule) FeeFor(hoursBefore float64) float64 {
	tiers := make(FeeSchedule, len(s))
	copy(tiers, s)
	sort.Slice(tiers, func(i, j int) bool {
		return tiers[i].HoursBefore > tiers[j].HoursBefore
	})

	for _, t := range tiers {
		if hoursBefore >= float64(t.HoursBefore) {
			return t.FeePercent
		}
	}
	if len(tiers) > 0 {
		return tiers[len(tiers)-1].FeePercent
	}
	return 0
}

// RefundAmount is the single canonical refund computation: amount paid minus
// the scheduled cancellation fee. Every caller (refund engine, admin views)
// must go through this function rather than recomputing its own figure.
func RefundAmount(paid float64, stayDate, cancelledAt time.Time, s FeeSchedule) (refund, fee float64) {
	hoursBefore := stayDate.Sub(cancelledAt).Hours()
	if hoursBefore < 0 {
		hoursBefore = 0
	}

	feePercent := s.FeeFor(hoursBefore)
	fee = round2(paid * feePercent / 100)
	refund = round2(paid - fee)
	return refund, fee
}
