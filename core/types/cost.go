// Package types - Calculation and recommendation results
package types

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Currency represents a currency code
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
)

// String returns the string representation
func (c Currency) String() string {
	return string(c)
}

// Symbol returns the prefix used in human-readable amounts. Codes without
// a known symbol are printed as "CODE ".
func (c Currency) Symbol() string {
	switch c {
	case CurrencyUSD, "":
		return "$"
	case CurrencyEUR:
		return "€"
	case CurrencyGBP:
		return "£"
	default:
		return string(c) + " "
	}
}

// Format renders amount with the currency symbol at money precision
func (c Currency) Format(amount decimal.Decimal) string {
	return c.Symbol() + amount.StringFixed(MoneyPlaces)
}

// MoneyPlaces is the precision of every monetary field
const MoneyPlaces = 2

// CalculationResult is the cost breakdown for one plan. Treat as immutable.
type CalculationResult struct {
	UsageGB                decimal.Decimal
	Plan                   PlanName
	BaseCost               decimal.Decimal
	LoyaltyDiscountPercent decimal.Decimal
	LoyaltyDiscountAmount  decimal.Decimal
	VolumeDiscountPercent  decimal.Decimal
	VolumeDiscountAmount   decimal.Decimal
	TotalDiscountAmount    decimal.Decimal
	FinalCost              decimal.Decimal
	EffectiveRatePerGB     decimal.Decimal
}

type calculationWire struct {
	UsageGB                json.Number `json:"usage_gb"`
	Plan                   PlanName    `json:"plan"`
	BaseCost               json.Number `json:"base_cost"`
	LoyaltyDiscountPercent json.Number `json:"loyalty_discount_percent"`
	LoyaltyDiscountAmount  json.Number `json:"loyalty_discount_amount"`
	VolumeDiscountPercent  json.Number `json:"volume_discount_percent"`
	VolumeDiscountAmount   json.Number `json:"volume_discount_amount"`
	TotalDiscountAmount    json.Number `json:"total_discount_amount"`
	FinalCost              json.Number `json:"final_cost"`
	EffectiveRatePerGB     json.Number `json:"effective_rate_per_gb"`
}

// MarshalJSON emits numbers, with money fixed at two places
func (r CalculationResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(calculationWire{
		UsageGB:                number(r.UsageGB),
		Plan:                   r.Plan,
		BaseCost:               money(r.BaseCost),
		LoyaltyDiscountPercent: number(r.LoyaltyDiscountPercent),
		LoyaltyDiscountAmount:  money(r.LoyaltyDiscountAmount),
		VolumeDiscountPercent:  number(r.VolumeDiscountPercent),
		VolumeDiscountAmount:   money(r.VolumeDiscountAmount),
		TotalDiscountAmount:    money(r.TotalDiscountAmount),
		FinalCost:              money(r.FinalCost),
		EffectiveRatePerGB:     money(r.EffectiveRatePerGB),
	})
}

// PlanComparison is one plan's row in a recommendation
type PlanComparison struct {
	Cost                 decimal.Decimal
	SavingsVsRecommended decimal.Decimal
}

// MarshalJSON emits numbers fixed at two places
func (c PlanComparison) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Cost                 json.Number `json:"cost"`
		SavingsVsRecommended json.Number `json:"savings_vs_recommended"`
	}{money(c.Cost), money(c.SavingsVsRecommended)})
}

// RecommendationResult compares every plan for one usage level
type RecommendationResult struct {
	RecommendedPlan  PlanName
	EstimatedUsageGB decimal.Decimal
	Comparison       map[PlanName]PlanComparison
}

// MarshalJSON emits the comparison keyed by plan name
func (r RecommendationResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		RecommendedPlan  PlanName                    `json:"recommended_plan"`
		EstimatedUsageGB json.Number                 `json:"estimated_usage_gb"`
		Comparison       map[PlanName]PlanComparison `json:"comparison"`
	}{r.RecommendedPlan, number(r.EstimatedUsageGB), r.Comparison})
}

func money(d decimal.Decimal) json.Number {
	return json.Number(d.StringFixed(MoneyPlaces))
}

func number(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}
