// Package catalog - Plan catalog
// Holds the ordered, immutable table of subscription plans the engine prices against.
package catalog

import (
	"github.com/shopspring/decimal"

	"bandwidth-cost/core/types"
)

// Catalog is an ordered set of plans. It is read-only after construction
// and safe for concurrent use.
type Catalog struct {
	plans []types.Plan
	index map[types.PlanName]int
}

// New validates plans and builds a catalog. The argument order becomes the
// enumeration order used for recommendation ties.
func New(plans ...types.Plan) (*Catalog, error) {
	if err := Validate(plans, DefaultValidationRules()); err != nil {
		return nil, err
	}

	c := &Catalog{
		plans: make([]types.Plan, len(plans)),
		index: make(map[types.PlanName]int, len(plans)),
	}
	for i, p := range plans {
		c.plans[i] = clonePlan(p)
		c.index[p.Name] = i
	}
	return c, nil
}

// MustNew is New for static tables known to be valid
func MustNew(plans ...types.Plan) *Catalog {
	c, err := New(plans...)
	if err != nil {
		panic(err)
	}
	return c
}

// Default returns the built-in starter/pro/enterprise catalog
func Default() *Catalog {
	return MustNew(DefaultPlans()...)
}

// DefaultPlans returns the built-in plan table
func DefaultPlans() []types.Plan {
	return []types.Plan{
		{
			Name:        types.PlanStarter,
			Description: "Small sites and side projects",
			Tiers: []types.Tier{
				{UpTo: types.Bounded(decimal.NewFromInt(10)), Price: decimal.NewFromInt(10)},
				{UpTo: types.Unbounded(), Price: decimal.NewFromInt(8)},
			},
		},
		{
			Name:        types.PlanPro,
			Description: "Growing traffic",
			Tiers: []types.Tier{
				{UpTo: types.Bounded(decimal.NewFromInt(50)), Price: decimal.NewFromInt(7)},
				{UpTo: types.Unbounded(), Price: decimal.NewFromInt(5)},
			},
		},
		{
			Name:        types.PlanEnterprise,
			Description: "High-volume delivery",
			Tiers: []types.Tier{
				{UpTo: types.Bounded(decimal.NewFromInt(100)), Price: decimal.NewFromInt(4)},
				{UpTo: types.Unbounded(), Price: decimal.NewFromInt(3)},
			},
		},
	}
}

// Lookup returns a copy of the named plan
func (c *Catalog) Lookup(name types.PlanName) (types.Plan, bool) {
	i, ok := c.index[name]
	if !ok {
		return types.Plan{}, false
	}
	return clonePlan(c.plans[i]), true
}

// Has reports whether name is a catalog plan
func (c *Catalog) Has(name types.PlanName) bool {
	_, ok := c.index[name]
	return ok
}

// Names returns plan names in enumeration order
func (c *Catalog) Names() []types.PlanName {
	names := make([]types.PlanName, len(c.plans))
	for i, p := range c.plans {
		names[i] = p.Name
	}
	return names
}

// Plans returns copies of all plans in enumeration order
func (c *Catalog) Plans() []types.Plan {
	plans := make([]types.Plan, len(c.plans))
	for i, p := range c.plans {
		plans[i] = clonePlan(p)
	}
	return plans
}

// Len returns the number of plans
func (c *Catalog) Len() int {
	return len(c.plans)
}

// Tiers returns the plan's tier table without copying. Callers must not modify it.
func (c *Catalog) Tiers(name types.PlanName) ([]types.Tier, bool) {
	i, ok := c.index[name]
	if !ok {
		return nil, false
	}
	return c.plans[i].Tiers, true
}

func clonePlan(p types.Plan) types.Plan {
	tiers := make([]types.Tier, len(p.Tiers))
	copy(tiers, p.Tiers)
	p.Tiers = tiers
	return p
}
