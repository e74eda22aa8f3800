package pricing

import "math"

// Rates is a snapshot of the accommodation's current rate card. Quotes are
// always computed from a live snapshot at booking-creation time; amounts
// submitted by clients are never trusted.
type Rates struct {
	VegRate       float64
	NonVegRate    float64
	PricePerNight float64
}

type MealType string

const (
	MealVeg    MealType = "veg"
	MealNonVeg MealType = "nonveg"
)

func (m MealType) Valid() bool {
	return m == MealVeg || m == MealNonVeg
}

// Quote computes the booking amount for a group. Pure function, no rounding
// surprises: meal charge per head plus an optional per-night stay charge per
// head.
func Quote(groupSize int, meal MealType, needStay bool, stayNight int, r Rates) float64 {
	mealRate := r.VegRate
	if meal == MealNonVeg {
		mealRate = r.NonVegRate
	}

	amount := mealRate * float64(groupSize)
	if needStay {
		amount += r.PricePerNight * float64(stayNight) * float64(groupSize)
	}
	return round2(amount)
}

// DepositSplit returns the upfront deposit and the remainder due at check-in
// for cash-mode bookings. The deposit is half the quoted amount.
func DepositSplit(amount float64) (deposit, remaining float64) {
	deposit = round2(amount / 2)
	remaining = round2(amount - deposit)
	return deposit, remaining
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
