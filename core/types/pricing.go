// Package types - Plan and tier types
package types

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// PlanName identifies a subscription plan
type PlanName string

// Built-in plans, in enumeration order. Order decides recommendation ties.
const (
	PlanStarter    PlanName = "starter"
	PlanPro        PlanName = "pro"
	PlanEnterprise PlanName = "enterprise"
)

// String returns the string representation
func (p PlanName) String() string {
	return string(p)
}

// Bound is the upper usage limit of a tier: either a finite quantity or unbounded.
// The zero value is Bounded(0), which catalog validation rejects.
type Bound struct {
	limit     decimal.Decimal
	unbounded bool
}

// Bounded returns a finite upper limit
func Bounded(limit decimal.Decimal) Bound {
	return Bound{limit: limit}
}

// Unbounded returns the open-ended upper limit of a plan's last tier
func Unbounded() Bound {
	return Bound{unbounded: true}
}

// IsUnbounded reports whether the bound has no upper limit
func (b Bound) IsUnbounded() bool {
	return b.unbounded
}

// Limit returns the finite limit; ok is false for an unbounded tier.
func (b Bound) Limit() (limit decimal.Decimal, ok bool) {
	if b.unbounded {
		return decimal.Zero, false
	}
	return b.limit, true
}

// String returns "∞" for unbounded tiers
func (b Bound) String() string {
	if b.unbounded {
		return "∞"
	}
	return b.limit.String()
}

// MarshalJSON encodes an unbounded tier as null
func (b Bound) MarshalJSON() ([]byte, error) {
	if b.unbounded {
		return []byte("null"), nil
	}
	return []byte(b.limit.String()), nil
}

// Tier prices usage falling between the previous tier's bound and UpTo
type Tier struct {
	// UpTo is the tier's upper usage bound
	UpTo Bound `json:"up_to"`

	// Price is the per-unit price within the tier
	Price decimal.Decimal `json:"price"`
}

// MarshalJSON keeps the price a JSON number
func (t Tier) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		UpTo  Bound       `json:"up_to"`
		Price json.Number `json:"price"`
	}{t.UpTo, json.Number(t.Price.String())})
}

// Plan is a named, ordered tier table
type Plan struct {
	// Name is the plan identifier
	Name PlanName `json:"name"`

	// Description is a human-readable summary
	Description string `json:"description,omitempty"`

	// Tiers are ascending and contiguous; the last one is unbounded
	Tiers []Tier `json:"tiers"`
}

// TierCharge is the share of usage allocated to one tier
type TierCharge struct {
	// Index is the tier's position in the plan
	Index int `json:"index"`

	// From is where the tier's range starts
	From decimal.Decimal `json:"from"`

	// UpTo is the tier's configured bound
	UpTo Bound `json:"up_to"`

	// Quantity is the usage allocated to the tier
	Quantity decimal.Decimal `json:"quantity"`

	// UnitPrice is the tier's per-unit price
	UnitPrice decimal.Decimal `json:"unit_price"`

	// Amount is Quantity * UnitPrice, unrounded
	Amount decimal.Decimal `json:"amount"`
}
