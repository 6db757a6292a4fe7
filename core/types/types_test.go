package types

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBound(t *testing.T) {
	b := Bounded(decimal.NewFromInt(10))
	limit, ok := b.Limit()
	require.True(t, ok)
	assert.True(t, limit.Equal(decimal.NewFromInt(10)))
	assert.False(t, b.IsUnbounded())
	assert.Equal(t, "10", b.String())

	u := Unbounded()
	_, ok = u.Limit()
	assert.False(t, ok)
	assert.True(t, u.IsUnbounded())
	assert.Equal(t, "∞", u.String())
}

func TestTierJSON(t *testing.T) {
	data, err := json.Marshal([]Tier{
		{UpTo: Bounded(decimal.NewFromInt(50)), Price: decimal.NewFromInt(7)},
		{UpTo: Unbounded(), Price: decimal.RequireFromString("4.5")},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"up_to":50,"price":7},{"up_to":null,"price":4.5}]`, string(data))
}

func TestCalculationResultFieldNames(t *testing.T) {
	r := CalculationResult{
		UsageGB:                decimal.NewFromInt(150),
		Plan:                   PlanEnterprise,
		BaseCost:               decimal.NewFromInt(550),
		LoyaltyDiscountPercent: decimal.NewFromInt(10),
		LoyaltyDiscountAmount:  decimal.NewFromInt(55),
		VolumeDiscountPercent:  decimal.NewFromInt(2),
		VolumeDiscountAmount:   decimal.RequireFromString("9.9"),
		TotalDiscountAmount:    decimal.RequireFromString("64.9"),
		FinalCost:              decimal.RequireFromString("485.1"),
		EffectiveRatePerGB:     decimal.RequireFromString("3.23"),
	}

	data, err := json.Marshal(r)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"usage_gb": 150,
		"plan": "enterprise",
		"base_cost": 550.00,
		"loyalty_discount_percent": 10,
		"loyalty_discount_amount": 55.00,
		"volume_discount_percent": 2,
		"volume_discount_amount": 9.90,
		"total_discount_amount": 64.90,
		"final_cost": 485.10,
		"effective_rate_per_gb": 3.23
	}`, string(data))
	assert.Contains(t, string(data), `"final_cost":485.10`)
}

func TestRecommendationResultFieldNames(t *testing.T) {
	r := RecommendationResult{
		RecommendedPlan:  PlanEnterprise,
		EstimatedUsageGB: decimal.NewFromInt(100),
		Comparison: map[PlanName]PlanComparison{
			PlanEnterprise: {Cost: decimal.NewFromInt(392), SavingsVsRecommended: decimal.Zero},
			PlanPro:        {Cost: decimal.NewFromInt(588), SavingsVsRecommended: decimal.NewFromInt(196)},
		},
	}

	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"recommended_plan": "enterprise",
		"estimated_usage_gb": 100,
		"comparison": {
			"enterprise": {"cost": 392, "savings_vs_recommended": 0},
			"pro": {"cost": 588, "savings_vs_recommended": 196}
		}
	}`, string(data))
}

func TestCurrencyFormat(t *testing.T) {
	amount := decimal.RequireFromString("1234.5")

	tests := []struct {
		currency Currency
		want     string
	}{
		{CurrencyUSD, "$1234.50"},
		{"", "$1234.50"},
		{CurrencyEUR, "€1234.50"},
		{CurrencyGBP, "£1234.50"},
		{"CHF", "CHF 1234.50"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.currency.Format(amount), string(tt.currency))
	}
}
