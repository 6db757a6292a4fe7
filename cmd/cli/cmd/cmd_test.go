package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command against an absent config file
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return executeWithConfig(t, filepath.Join(t.TempDir(), "missing.json"), args...)
}

// executeWithConfig runs the root command with fresh flag state and captures stdout
func executeWithConfig(t *testing.T, config string, args ...string) (string, error) {
	t.Helper()

	cfgFile, plansFile, verbose = "", "", false
	usageFlag, planFlag, lastMonthFlag, formatFlag, detailsFlag = "", "", "0", "", false
	recommendUsage, recommendLastMonth, recommendFormat = "", "0", ""
	plansFormat, serveAddr = "", ""

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(append([]string{"--config", config}, args...))

	err := rootCmd.Execute()
	return out.String(), err
}

func TestCalculateCommandJSON(t *testing.T) {
	out, err := execute(t, "calculate", "--usage", "150", "--plan", "enterprise", "--last-month", "120", "--format", "json")
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
	}`, out)
}

func TestCalculateCommandTable(t *testing.T) {
	out, err := execute(t, "calculate", "--usage", "60", "--plan", "pro", "--details")
	require.NoError(t, err)

	assert.Contains(t, out, "PRO PLAN")
	assert.Contains(t, out, "$400.00")
	assert.Contains(t, out, "tier 1")
}

func TestCalculateCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"invalid plan", []string{"--usage", "10", "--plan", "gold"}, "INVALID_PLAN"},
		{"negative usage", []string{"--usage", "-5", "--plan", "pro"}, "INVALID_USAGE"},
		{"non-numeric usage", []string{"--usage", "ten", "--plan", "pro"}, "INPUT_ERROR"},
		{"unknown format", []string{"--usage", "10", "--plan", "pro", "--format", "xml"}, "unknown output format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, append([]string{"calculate"}, tt.args...)...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestRecommendCommand(t *testing.T) {
	out, err := execute(t, "recommend", "--usage", "100", "--format", "json")
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"recommended_plan": "enterprise",
		"estimated_usage_gb": 100,
		"comparison": {
			"starter": {"cost": 803.60, "savings_vs_recommended": 411.60},
			"pro": {"cost": 588.00, "savings_vs_recommended": 196.00},
			"enterprise": {"cost": 392.00, "savings_vs_recommended": 0}
		}
	}`, out)
}

func TestPlansCommandWithCatalogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plans.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`
plan "basic" {
  tier {
    price = 2
  }
}
`), 0o644))

	out, err := execute(t, "--plans", path, "plans", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"basic"`)
	assert.NotContains(t, out, `"starter"`)

	out, err = execute(t, "--plans", path, "calculate", "--usage", "50", "--plan", "basic", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"base_cost": 100.00`)
}

func TestPlansCommandMissingFile(t *testing.T) {
	_, err := execute(t, "--plans", filepath.Join(t.TempDir(), "nope.hcl"), "plans")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load plans")
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "bandwidth-cost version "+version+"\n", out)
}

func TestConfiguredCurrencyAndFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"pricing": {"currency": "EUR"}, "output": {"default_format": "markdown"}}`), 0o644))

	out, err := executeWithConfig(t, path, "calculate", "--usage", "150", "--plan", "enterprise", "--last-month", "120")
	require.NoError(t, err)
	assert.Contains(t, out, "| **Final cost** | **€485.10** |")
}
