// Package pricing - Discount schedules
package pricing

import (
	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)

	loyaltyHighThreshold = decimal.NewFromInt(100)
	loyaltyLowThreshold  = decimal.NewFromInt(51)
	loyaltyHighPercent   = decimal.NewFromInt(10)
	loyaltyLowPercent    = decimal.NewFromInt(5)

	volumeStepPercent = decimal.NewFromInt(2)
	volumeMaxPercent  = decimal.NewFromInt(10)
)

// LoyaltyPercent is the discount earned by last period's usage:
// above 100 GB 10%, 51 to 100 GB 5%, otherwise 0.
func LoyaltyPercent(priorUsage decimal.Decimal) decimal.Decimal {
	switch {
	case priorUsage.GreaterThan(loyaltyHighThreshold):
		return loyaltyHighPercent
	case priorUsage.GreaterThanOrEqual(loyaltyLowThreshold):
		return loyaltyLowPercent
	default:
		return decimal.Zero
	}
}

// VolumePercent is 2% per full 100 GB of current usage, capped at 10%.
// usage must be non-negative.
func VolumePercent(usage decimal.Decimal) decimal.Decimal {
	if !usage.IsPositive() {
		return decimal.Zero
	}
	// QuoRem at precision 0 truncates, which is floor for non-negative usage.
	steps, _ := usage.QuoRem(hundred, 0)
	return decimal.Min(steps.Mul(volumeStepPercent), volumeMaxPercent)
}

// percentOf returns amount * percent / 100 rounded to currency precision
func percentOf(amount, percent decimal.Decimal, places int32) decimal.Decimal {
	return amount.Mul(percent).Div(hundred).Round(places)
}
