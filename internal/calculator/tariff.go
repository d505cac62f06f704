// Package calculator implements the tiered electricity tariff.
package calculator

const (
	// TierOneLimit is the number of units billed at TierOneRate.
	TierOneLimit = 100

	// TierOneRate is the price per unit for the first TierOneLimit units.
	TierOneRate = 5

	// TierTwoRate is the price per unit for every unit beyond TierOneLimit.
	TierTwoRate = 7
)

// Tiers describes how a total was reached: the units and amount billed in each tier.
type Tiers struct {
	TierOneUnits  int64
	TierOneAmount float64
	TierTwoUnits  int64
	TierTwoAmount float64
}

// Total is the sum of both tiers.
func (t Tiers) Total() float64 {
	return t.TierOneAmount + t.TierTwoAmount
}

// ComputeTotal returns the bill for the given units consumed.
//
//	units <= 100: units * 5
//	units >  100: 100*5 + (units-100) * 7
//
// The function is defined for every integer. Negative input is not rejected here;
// it produces a negative total, so callers validate units before billing.
func ComputeTotal(units int64) float64 {
	return Breakdown(units).Total()
}

// Breakdown splits units across the two tariff tiers.
// Amounts are multiplied in float64 so very large readings cannot wrap around.
func Breakdown(units int64) Tiers {
	if units <= TierOneLimit {
		return Tiers{
			TierOneUnits:  units,
			TierOneAmount: float64(units) * TierOneRate,
		}
	}

	extra := units - TierOneLimit
	return Tiers{
		TierOneUnits:  TierOneLimit,
		TierOneAmount: TierOneLimit * TierOneRate,
		TierTwoUnits:  extra,
		TierTwoAmount: float64(extra) * TierTwoRate,
	}
}
