// Package pricing - Bandwidth pricing engine
// Computes tiered base cost, then loyalty and volume discounts applied in
// sequence. The engine is stateless; the catalog it prices against is
// immutable, so an Engine may be shared across goroutines.
package pricing

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"bandwidth-cost/core/catalog"
	"bandwidth-cost/core/types"
	"bandwidth-cost/internal/errors"
	"bandwidth-cost/internal/logging"
)

// MaxUsageGB is the largest usage, current or prior, the engine prices
var MaxUsageGB = decimal.New(1, maxUsageExponent)

const maxUsageExponent = 15

// Engine prices usage against a plan catalog
type Engine struct {
	catalog *catalog.Catalog
}

// NewEngine creates an engine over c. A nil catalog means catalog.Default().
func NewEngine(c *catalog.Catalog) *Engine {
	if c == nil {
		c = catalog.Default()
	}
	return &Engine{catalog: c}
}

// Catalog returns the catalog the engine prices against
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

// Calculate returns the cost breakdown for usage on plan, with loyalty
// based on priorUsage. Pass decimal.Zero when there is no prior period.
//
// Fails with INVALID_PLAN for an unknown plan and INVALID_USAGE for
// negative usage or either amount outside MaxUsageGB. A negative priorUsage
// is accepted; anything at or below 50 earns no loyalty discount.
func (e *Engine) Calculate(usage decimal.Decimal, plan types.PlanName, priorUsage decimal.Decimal) (*types.CalculationResult, error) {
	tiers, err := e.validate(usage, plan)
	if err != nil {
		return nil, err
	}
	if err := checkRange("last month usage", priorUsage); err != nil {
		return nil, err
	}

	baseCost := CalculateTieredCost(usage, tiers)

	loyaltyPercent := LoyaltyPercent(priorUsage)
	loyaltyAmount := percentOf(baseCost, loyaltyPercent, types.MoneyPlaces)
	afterLoyalty := baseCost.Sub(loyaltyAmount)

	volumePercent := VolumePercent(usage)
	volumeAmount := percentOf(afterLoyalty, volumePercent, types.MoneyPlaces)

	finalCost := afterLoyalty.Sub(volumeAmount).Round(types.MoneyPlaces)
	totalDiscount := loyaltyAmount.Add(volumeAmount).Round(types.MoneyPlaces)

	effectiveRate := decimal.Zero
	if usage.IsPositive() {
		effectiveRate = finalCost.DivRound(usage, types.MoneyPlaces)
	}

	result := &types.CalculationResult{
		UsageGB:                usage,
		Plan:                   plan,
		BaseCost:               baseCost,
		LoyaltyDiscountPercent: loyaltyPercent,
		LoyaltyDiscountAmount:  loyaltyAmount,
		VolumeDiscountPercent:  volumePercent,
		VolumeDiscountAmount:   volumeAmount,
		TotalDiscountAmount:    totalDiscount,
		FinalCost:              finalCost,
		EffectiveRatePerGB:     effectiveRate,
	}

	logging.Debug("Calculated bandwidth cost",
		zap.String("plan", plan.String()),
		zap.String("usage_gb", usage.String()),
		zap.String("prior_usage_gb", priorUsage.String()),
		zap.String("base_cost", baseCost.StringFixed(types.MoneyPlaces)),
		zap.String("final_cost", finalCost.StringFixed(types.MoneyPlaces)),
	)

	return result, nil
}

// Allocate returns the per-tier split of usage on plan, with the same
// validation as Calculate.
func (e *Engine) Allocate(usage decimal.Decimal, plan types.PlanName) ([]types.TierCharge, error) {
	tiers, err := e.validate(usage, plan)
	if err != nil {
		return nil, err
	}
	return AllocateTiers(usage, tiers), nil
}

// RecommendPlan prices usage on every catalog plan and picks the cheapest.
// Ties go to the plan that comes first in catalog order.
func (e *Engine) RecommendPlan(usage decimal.Decimal, priorUsage decimal.Decimal) (*types.RecommendationResult, error) {
	names := e.catalog.Names()
	costs := make([]decimal.Decimal, len(names))

	var recommended types.PlanName
	var minCost decimal.Decimal
	for i, name := range names {
		calc, err := e.Calculate(usage, name, priorUsage)
		if err != nil {
			return nil, err
		}
		costs[i] = calc.FinalCost

		if recommended == "" || calc.FinalCost.LessThan(minCost) {
			minCost = calc.FinalCost
			recommended = name
		}
	}

	comparison := make(map[types.PlanName]types.PlanComparison, len(names))
	for i, name := range names {
		comparison[name] = types.PlanComparison{
			Cost:                 costs[i],
			SavingsVsRecommended: costs[i].Sub(minCost).Round(types.MoneyPlaces),
		}
	}

	logging.Debug("Recommended plan",
		zap.String("plan", recommended.String()),
		zap.String("usage_gb", usage.String()),
		zap.String("cost", minCost.StringFixed(types.MoneyPlaces)),
	)

	return &types.RecommendationResult{
		RecommendedPlan:  recommended,
		EstimatedUsageGB: usage,
		Comparison:       comparison,
	}, nil
}

func (e *Engine) validate(usage decimal.Decimal, plan types.PlanName) ([]types.Tier, error) {
	tiers, ok := e.catalog.Tiers(plan)
	if !ok {
		return nil, errors.InvalidPlan(plan.String())
	}
	if usage.IsNegative() {
		return nil, errors.InvalidUsage(usage.String())
	}
	if err := checkRange("usage", usage); err != nil {
		return nil, err
	}
	return tiers, nil
}

// checkRange bounds magnitude and scale. It must run before any rounding.
func checkRange(field string, d decimal.Decimal) error {
	exp := d.Exponent()
	if exp > maxUsageExponent || exp < -errors.MaxUsageScale || d.Abs().GreaterThan(MaxUsageGB) {
		return errors.UsageOutOfRange(field, MaxUsageGB.String())
	}
	return nil
}
