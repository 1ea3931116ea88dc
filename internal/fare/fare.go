// Package fare computes the price breakdown for a reservation.
package fare

import "github.com/aerovia/flightdeck/internal/domain"

// BaseFare is charged on every reservation regardless of options.
const BaseFare = 5000

// Breakdown itemizes the total price of a reservation.
type Breakdown struct {
	BaseFare   int `json:"baseFare"`
	BaggageFee int `json:"baggageFee"`
	MealFee    int `json:"mealFee"`
	Total      int `json:"total"`
}

var baggageFees = map[domain.BaggageTier]int{
	domain.BaggageNone:   0,
	domain.BaggageSmall:  500,
	domain.BaggageMedium: 1000,
	domain.BaggageLarge:  1500,
}

const specialMealFee = 300

// Compute returns the fare breakdown for the given options. Any meal
// other than the standard one carries the special meal fee.
func Compute(baggage domain.BaggageTier, meal domain.MealTier) Breakdown {
	b := Breakdown{BaseFare: BaseFare}
	b.BaggageFee = baggageFees[baggage]
	if meal != domain.MealStandard {
		b.MealFee = specialMealFee
	}
	b.Total = b.BaseFare + b.BaggageFee + b.MealFee
	return b
}
