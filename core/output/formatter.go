// Package output provides output formatting for pricing results.
// This package produces human and machine-readable outputs.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"bandwidth-cost/core/types"
	"bandwidth-cost/internal/errors"
)

// Format represents output format type
type Format string

const (
	// FormatCLI is a human-readable CLI table
	FormatCLI Format = "cli"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"

	// FormatMarkdown is a markdown report
	FormatMarkdown Format = "markdown"
)

// Formatter produces output in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	// RenderCalculation writes one plan's breakdown. charges may be nil.
	RenderCalculation(w io.Writer, result *types.CalculationResult, charges []types.TierCharge) error

	// RenderRecommendation writes a plan comparison; order lists plans as the catalog does.
	RenderRecommendation(w io.Writer, rec *types.RecommendationResult, order []types.PlanName) error

	// RenderPlans writes the plan catalog
	RenderPlans(w io.Writer, plans []types.Plan) error
}

// Option configures a Formatter
type Option func(*options)

type options struct {
	currency types.Currency
}

// WithCurrency sets the currency used for human-readable amounts.
// JSON output is unaffected.
func WithCurrency(c types.Currency) Option {
	return func(o *options) {
		if c != "" {
			o.currency = c
		}
	}
}

// New returns the formatter for a format name
func New(format string, opts ...Option) (Formatter, error) {
	o := options{currency: types.CurrencyUSD}
	for _, opt := range opts {
		opt(&o)
	}

	switch Format(strings.ToLower(format)) {
	case FormatCLI, "":
		return &cliFormatter{currency: o.currency}, nil
	case FormatJSON:
		return &jsonFormatter{}, nil
	case FormatMarkdown, "md":
		return &markdownFormatter{currency: o.currency}, nil
	default:
		return nil, errors.Newf(errors.TypeInput, "unknown output format %q (want cli, json or markdown)", format)
	}
}

// jsonFormatter writes the serialized result shapes
type jsonFormatter struct{}

func (f *jsonFormatter) Format() Format { return FormatJSON }

func (f *jsonFormatter) RenderCalculation(w io.Writer, result *types.CalculationResult, _ []types.TierCharge) error {
	return writeJSON(w, result)
}

func (f *jsonFormatter) RenderRecommendation(w io.Writer, rec *types.RecommendationResult, _ []types.PlanName) error {
	return writeJSON(w, rec)
}

func (f *jsonFormatter) RenderPlans(w io.Writer, plans []types.Plan) error {
	return writeJSON(w, map[string]interface{}{"plans": plans})
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// markdownFormatter writes GitHub-flavoured tables
type markdownFormatter struct {
	currency types.Currency
}

func (f *markdownFormatter) Format() Format { return FormatMarkdown }

func (f *markdownFormatter) RenderCalculation(w io.Writer, r *types.CalculationResult, charges []types.TierCharge) error {
	var b strings.Builder
	fmt.Fprintf(&b, "### %s plan, %s GB\n\n", r.Plan, r.UsageGB)
	b.WriteString("| Item | Amount |\n|---|---:|\n")
	fmt.Fprintf(&b, "| Base cost | %s |\n", f.currency.Format(r.BaseCost))
	fmt.Fprintf(&b, "| Loyalty discount (%s%%) | -%s |\n", r.LoyaltyDiscountPercent, f.currency.Format(r.LoyaltyDiscountAmount))
	fmt.Fprintf(&b, "| Volume discount (%s%%) | -%s |\n", r.VolumeDiscountPercent, f.currency.Format(r.VolumeDiscountAmount))
	fmt.Fprintf(&b, "| Total discount | -%s |\n", f.currency.Format(r.TotalDiscountAmount))
	fmt.Fprintf(&b, "| **Final cost** | **%s** |\n", f.currency.Format(r.FinalCost))
	fmt.Fprintf(&b, "| Effective rate | %s/GB |\n", f.currency.Format(r.EffectiveRatePerGB))

	if len(charges) > 0 {
		b.WriteString("\n| Tier | Range (GB) | Quantity | Unit price | Amount |\n|---:|---|---:|---:|---:|\n")
		for _, c := range charges {
			fmt.Fprintf(&b, "| %d | %s–%s | %s | %s | %s |\n",
				c.Index+1, c.From, c.UpTo, c.Quantity, f.currency.Format(c.UnitPrice), f.currency.Format(c.Amount))
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func (f *markdownFormatter) RenderRecommendation(w io.Writer, rec *types.RecommendationResult, order []types.PlanName) error {
	var b strings.Builder
	fmt.Fprintf(&b, "### Recommended plan for %s GB: **%s**\n\n", rec.EstimatedUsageGB, rec.RecommendedPlan)
	b.WriteString("| Plan | Cost | Extra vs recommended |\n|---|---:|---:|\n")
	for _, name := range orderedPlans(rec, order) {
		row := rec.Comparison[name]
		fmt.Fprintf(&b, "| %s | %s | %s |\n", name, f.currency.Format(row.Cost), f.currency.Format(row.SavingsVsRecommended))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func (f *markdownFormatter) RenderPlans(w io.Writer, plans []types.Plan) error {
	var b strings.Builder
	b.WriteString("| Plan | Tier | Up to (GB) | Price/GB |\n|---|---:|---:|---:|\n")
	for _, p := range plans {
		for i, t := range p.Tiers {
			fmt.Fprintf(&b, "| %s | %d | %s | %s |\n", p.Name, i+1, t.UpTo, f.currency.Format(t.Price))
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// orderedPlans lists comparison rows in catalog order, falling back to
// any rows order does not mention.
func orderedPlans(rec *types.RecommendationResult, order []types.PlanName) []types.PlanName {
	names := make([]types.PlanName, 0, len(rec.Comparison))
	seen := make(map[types.PlanName]bool, len(rec.Comparison))
	for _, name := range order {
		if _, ok := rec.Comparison[name]; ok && !seen[name] {
			names = append(names, name)
			seen[name] = true
		}
	}
	for name := range rec.Comparison {
		if !seen[name] {
			names = append(names, name)
		}
	}
	return names
}
