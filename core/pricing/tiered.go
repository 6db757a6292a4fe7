// Package pricing - Tiered base cost
package pricing

import (
	"github.com/shopspring/decimal"

	"bandwidth-cost/core/types"
)

// AllocateTiers splits usage across ascending, contiguous tiers. Each tier
// takes min(remaining, bound - previous); the unbounded tier takes the rest.
// Allocated quantities sum to usage.
func AllocateTiers(usage decimal.Decimal, tiers []types.Tier) []types.TierCharge {
	if !usage.IsPositive() || len(tiers) == 0 {
		return nil
	}

	charges := make([]types.TierCharge, 0, len(tiers))
	remaining := usage
	previous := decimal.Zero

	for i, tier := range tiers {
		allocatable := remaining
		if limit, ok := tier.UpTo.Limit(); ok {
			allocatable = decimal.Min(remaining, limit.Sub(previous))
		}
		if !allocatable.IsPositive() {
			break
		}

		charges = append(charges, types.TierCharge{
			Index:     i,
			From:      previous,
			UpTo:      tier.UpTo,
			Quantity:  allocatable,
			UnitPrice: tier.Price,
			Amount:    allocatable.Mul(tier.Price),
		})

		previous = previous.Add(allocatable)
		remaining = remaining.Sub(allocatable)
		if !remaining.IsPositive() {
			break
		}
	}

	return charges
}

// CalculateTieredCost returns the base cost rounded to currency precision
func CalculateTieredCost(usage decimal.Decimal, tiers []types.Tier) decimal.Decimal {
	return sumCharges(AllocateTiers(usage, tiers)).Round(types.MoneyPlaces)
}

func sumCharges(charges []types.TierCharge) decimal.Decimal {
	total := decimal.Zero
	for _, c := range charges {
		total = total.Add(c.Amount)
	}
	return total
}
