// Package catalog - Catalog validation
// Ensures every plan's tiers cover all usage >= 0 exactly once.
package catalog

import (
	stderrors "errors"
	"fmt"

	"github.com/shopspring/decimal"

	"bandwidth-cost/core/types"
	"bandwidth-cost/internal/errors"
)

// ValidationRule is a per-plan validation rule
type ValidationRule func(types.Plan) error

// DefaultValidationRules returns the standard validation rules
func DefaultValidationRules() []ValidationRule {
	return []ValidationRule{
		validateName,
		validateHasTiers,
		validatePrices,
		validateBoundsAscending,
		validateSingleUnboundedLast,
	}
}

// Validate checks plans against rules and plan-set invariants. All
// violations are reported together as one CONFIG_ERROR.
func Validate(plans []types.Plan, rules []ValidationRule) error {
	var errs []error

	if len(plans) == 0 {
		errs = append(errs, fmt.Errorf("catalog has no plans"))
	}

	seen := make(map[types.PlanName]bool, len(plans))
	for _, p := range plans {
		if seen[p.Name] {
			errs = append(errs, fmt.Errorf("%s: duplicate plan name", p.Name))
		}
		seen[p.Name] = true

		for _, rule := range rules {
			if err := rule(p); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", p.Name, err))
			}
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errors.Wrap(errors.TypeConfig, fmt.Sprintf("invalid plan catalog (%d problems)", len(errs)), stderrors.Join(errs...))
}

func validateName(p types.Plan) error {
	if p.Name == "" {
		return fmt.Errorf("plan name is empty")
	}
	return nil
}

func validateHasTiers(p types.Plan) error {
	if len(p.Tiers) == 0 {
		return fmt.Errorf("plan has no tiers")
	}
	return nil
}

func validatePrices(p types.Plan) error {
	for i, t := range p.Tiers {
		if t.Price.IsNegative() {
			return fmt.Errorf("tier %d: negative price %s", i, t.Price)
		}
	}
	return nil
}

// validateBoundsAscending requires finite bounds to be positive and strictly increasing
func validateBoundsAscending(p types.Plan) error {
	previous := decimal.Zero
	for i, t := range p.Tiers {
		limit, ok := t.UpTo.Limit()
		if !ok {
			continue
		}
		if !limit.GreaterThan(previous) {
			return fmt.Errorf("tier %d: bound %s must exceed %s", i, limit, previous)
		}
		previous = limit
	}
	return nil
}

func validateSingleUnboundedLast(p types.Plan) error {
	if len(p.Tiers) == 0 {
		return nil
	}
	for i, t := range p.Tiers[:len(p.Tiers)-1] {
		if t.UpTo.IsUnbounded() {
			return fmt.Errorf("tier %d: only the last tier may be unbounded", i)
		}
	}
	if !p.Tiers[len(p.Tiers)-1].UpTo.IsUnbounded() {
		return fmt.Errorf("last tier must be unbounded")
	}
	return nil
}
