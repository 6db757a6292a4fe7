package output

import (
	"fmt"
	"io"
	"strings"

	"bandwidth-cost/core/types"
)

const boxWidth = 73

// cliFormatter draws box tables for terminals
type cliFormatter struct {
	currency types.Currency
}

func (f *cliFormatter) Format() Format { return FormatCLI }

func (f *cliFormatter) RenderCalculation(w io.Writer, r *types.CalculationResult, charges []types.TierCharge) error {
	var b strings.Builder
	title := fmt.Sprintf("%s PLAN · %s GB", strings.ToUpper(r.Plan.String()), r.UsageGB)

	top(&b)
	center(&b, title)
	rule(&b)

	if len(charges) > 0 {
		for _, c := range charges {
			row(&b, fmt.Sprintf("  tier %d (%s–%s GB): %s GB × %s", c.Index+1, c.From, c.UpTo, c.Quantity, f.currency.Format(c.UnitPrice)), f.currency.Format(c.Amount))
		}
		rule(&b)
	}

	row(&b, "Base cost", f.currency.Format(r.BaseCost))
	row(&b, fmt.Sprintf("Loyalty discount (%s%%)", r.LoyaltyDiscountPercent), "-"+f.currency.Format(r.LoyaltyDiscountAmount))
	row(&b, fmt.Sprintf("Volume discount (%s%%)", r.VolumeDiscountPercent), "-"+f.currency.Format(r.VolumeDiscountAmount))
	row(&b, "Total discount", "-"+f.currency.Format(r.TotalDiscountAmount))
	rule(&b)
	row(&b, "FINAL COST", f.currency.Format(r.FinalCost))
	row(&b, "Effective rate", f.currency.Format(r.EffectiveRatePerGB)+"/GB")
	bottom(&b)

	_, err := io.WriteString(w, b.String())
	return err
}

func (f *cliFormatter) RenderRecommendation(w io.Writer, rec *types.RecommendationResult, order []types.PlanName) error {
	var b strings.Builder

	top(&b)
	center(&b, fmt.Sprintf("PLAN COMPARISON · %s GB", rec.EstimatedUsageGB))
	rule(&b)
	for _, name := range orderedPlans(rec, order) {
		comparison := rec.Comparison[name]
		label := name.String()
		if name == rec.RecommendedPlan {
			label += "  ← recommended"
		}
		value := f.currency.Format(comparison.Cost)
		if !comparison.SavingsVsRecommended.IsZero() {
			value = fmt.Sprintf("%s (+%s)", value, f.currency.Format(comparison.SavingsVsRecommended))
		}
		row(&b, label, value)
	}
	bottom(&b)

	_, err := io.WriteString(w, b.String())
	return err
}

func (f *cliFormatter) RenderPlans(w io.Writer, plans []types.Plan) error {
	var b strings.Builder

	top(&b)
	center(&b, "PLANS")
	for _, p := range plans {
		rule(&b)
		label := p.Name.String()
		if p.Description != "" {
			label += " · " + p.Description
		}
		row(&b, label, "")
		from := "0"
		for _, t := range p.Tiers {
			row(&b, fmt.Sprintf("  %s–%s GB", from, t.UpTo), f.currency.Format(t.Price)+"/GB")
			from = t.UpTo.String()
		}
	}
	bottom(&b)

	_, err := io.WriteString(w, b.String())
	return err
}

func top(b *strings.Builder) {
	b.WriteString("┌" + strings.Repeat("─", boxWidth) + "┐\n")
}

func rule(b *strings.Builder) {
	b.WriteString("├" + strings.Repeat("─", boxWidth) + "┤\n")
}

func bottom(b *strings.Builder) {
	b.WriteString("└" + strings.Repeat("─", boxWidth) + "┘\n")
}

func center(b *strings.Builder, s string) {
	s = truncate(s, boxWidth-2)
	pad := boxWidth - runeLen(s)
	left := pad / 2
	b.WriteString("│" + strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left) + "│\n")
}

func row(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "│ %-50s %20s │\n", truncate(label, 50), truncate(value, 20))
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}

func runeLen(s string) int {
	return len([]rune(s))
}
