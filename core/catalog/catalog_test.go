package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bandwidth-cost/core/types"
	"bandwidth-cost/internal/errors"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestDefaultCatalogOrder(t *testing.T) {
	c := Default()
	assert.Equal(t, []types.PlanName{types.PlanStarter, types.PlanPro, types.PlanEnterprise}, c.Names())
	assert.Equal(t, 3, c.Len())
}

func TestDefaultCatalogTiers(t *testing.T) {
	c := Default()

	tests := []struct {
		plan      types.PlanName
		limit     string
		lowPrice  string
		highPrice string
	}{
		{types.PlanStarter, "10", "10", "8"},
		{types.PlanPro, "50", "7", "5"},
		{types.PlanEnterprise, "100", "4", "3"},
	}

	for _, tt := range tests {
		t.Run(string(tt.plan), func(t *testing.T) {
			p, ok := c.Lookup(tt.plan)
			require.True(t, ok)
			require.Len(t, p.Tiers, 2)

			limit, bounded := p.Tiers[0].UpTo.Limit()
			require.True(t, bounded)
			assert.True(t, limit.Equal(d(tt.limit)))
			assert.True(t, p.Tiers[0].Price.Equal(d(tt.lowPrice)))
			assert.True(t, p.Tiers[1].UpTo.IsUnbounded())
			assert.True(t, p.Tiers[1].Price.Equal(d(tt.highPrice)))
		})
	}
}

func TestLookupReturnsCopy(t *testing.T) {
	c := Default()
	p, ok := c.Lookup(types.PlanPro)
	require.True(t, ok)
	p.Tiers[0].Price = d("999")

	again, _ := c.Lookup(types.PlanPro)
	assert.True(t, again.Tiers[0].Price.Equal(d("7")))
}

func TestLookupUnknown(t *testing.T) {
	_, ok := Default().Lookup("gold")
	assert.False(t, ok)
	assert.False(t, Default().Has("gold"))
}

func TestValidationRejectsMalformedPlans(t *testing.T) {
	bounded := func(s string) types.Bound { return types.Bounded(d(s)) }

	tests := []struct {
		name  string
		plans []types.Plan
	}{
		{"no plans", nil},
		{"empty name", []types.Plan{{Tiers: []types.Tier{{UpTo: types.Unbounded(), Price: d("1")}}}}},
		{"no tiers", []types.Plan{{Name: "bare"}}},
		{"duplicate names", []types.Plan{
			{Name: "a", Tiers: []types.Tier{{UpTo: types.Unbounded(), Price: d("1")}}},
			{Name: "a", Tiers: []types.Tier{{UpTo: types.Unbounded(), Price: d("2")}}},
		}},
		{"negative price", []types.Plan{{Name: "neg", Tiers: []types.Tier{{UpTo: types.Unbounded(), Price: d("-1")}}}}},
		{"zero bound", []types.Plan{{Name: "zero", Tiers: []types.Tier{
			{UpTo: bounded("0"), Price: d("1")},
			{UpTo: types.Unbounded(), Price: d("1")},
		}}}},
		{"descending bounds", []types.Plan{{Name: "desc", Tiers: []types.Tier{
			{UpTo: bounded("50"), Price: d("2")},
			{UpTo: bounded("10"), Price: d("1")},
			{UpTo: types.Unbounded(), Price: d("1")},
		}}}},
		{"last tier bounded", []types.Plan{{Name: "capped", Tiers: []types.Tier{
			{UpTo: bounded("10"), Price: d("1")},
		}}}},
		{"unbounded in middle", []types.Plan{{Name: "mid", Tiers: []types.Tier{
			{UpTo: types.Unbounded(), Price: d("1")},
			{UpTo: types.Unbounded(), Price: d("1")},
		}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.plans...)
			require.Error(t, err)
			assert.True(t, errors.IsType(err, errors.TypeConfig), "got %v", err)
		})
	}
}

func TestMustNewPanicsOnInvalid(t *testing.T) {
	assert.Panics(t, func() { MustNew() })
}

const plansHCL = `
plan "starter" {
  description = "Small sites"
  tier {
    up_to = 10
    price = 10.00
  }
  tier {
    price = 8.00
  }
}

plan "pro" {
  tier {
    up_to = 50
    price = 7
  }
  tier {
    price = 5
  }
}

plan "enterprise" {
  tier {
    up_to = 100
    price = 4
  }
  tier {
    up_to = null
    price = 3
  }
}
`

func TestParseMatchesDefault(t *testing.T) {
	c, err := Parse([]byte(plansHCL), "plans.hcl")
	require.NoError(t, err)

	assert.Equal(t, Default().Names(), c.Names())
	for _, want := range Default().Plans() {
		got, ok := c.Lookup(want.Name)
		require.True(t, ok)
		require.Len(t, got.Tiers, len(want.Tiers))
		for i := range want.Tiers {
			assert.Equal(t, want.Tiers[i].UpTo.String(), got.Tiers[i].UpTo.String())
			assert.True(t, want.Tiers[i].Price.Equal(got.Tiers[i].Price))
		}
	}

	starter, _ := c.Lookup(types.PlanStarter)
	assert.Equal(t, "Small sites", starter.Description)
}

func TestParseFractionalValues(t *testing.T) {
	c, err := Parse([]byte(`
plan "metered" {
  tier {
    up_to = 0.5
    price = 0.1
  }
  tier {
    price = 0.05
  }
}
`), "frac.hcl")
	require.NoError(t, err)

	p, _ := c.Lookup("metered")
	limit, _ := p.Tiers[0].UpTo.Limit()
	assert.Equal(t, "0.5", limit.String())
	assert.Equal(t, "0.1", p.Tiers[0].Price.String())
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		errType errors.Type
	}{
		{"syntax", `plan "x" {`, errors.TypeParsing},
		{"missing price", `
plan "x" {
  tier {
    up_to = 10
  }
}
`, errors.TypeParsing},
		{"string price", `
plan "x" {
  tier {
    price = "cheap"
  }
}
`, errors.TypeParsing},
		{"unknown attribute", `
plan "x" {
  colour = "red"
}
`, errors.TypeParsing},
		{"last tier bounded", `
plan "x" {
  tier {
    up_to = 10
    price = 1
  }
}
`, errors.TypeConfig},
		{"empty file", ``, errors.TypeConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src), "bad.hcl")
			require.Error(t, err)
			assert.True(t, errors.IsType(err, tt.errType), "got %v", err)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plans.hcl")
	require.NoError(t, os.WriteFile(path, []byte(plansHCL), 0644))

	c, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 3, c.Len())

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.hcl"))
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeConfig))
}
