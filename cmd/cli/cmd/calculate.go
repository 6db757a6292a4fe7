package cmd

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"bandwidth-cost/core/output"
	"bandwidth-cost/core/types"
	"bandwidth-cost/internal/config"
	"bandwidth-cost/internal/errors"
)

var (
	usageFlag     string
	planFlag      string
	lastMonthFlag string
	formatFlag    string
	detailsFlag   bool
)

// calculateCmd prices one month of usage on one plan
var calculateCmd = &cobra.Command{
	Use:   "calculate",
	Short: "Calculate the monthly cost of usage on a plan",
	Long: `Calculate prices usage through the plan's tiers and applies the loyalty
and volume discounts in order.

Examples:
  bandwidth-cost calculate --usage 150 --plan enterprise --last-month 120
  bandwidth-cost calculate --usage 60 --plan pro --details
  bandwidth-cost calculate --usage 10 --plan starter --format json`,
	RunE: runCalculate,
}

func init() {
	calculateCmd.Flags().StringVarP(&usageFlag, "usage", "u", "", "bandwidth used this month in GB (required)")
	calculateCmd.Flags().StringVarP(&planFlag, "plan", "p", "", "plan name (required)")
	calculateCmd.Flags().StringVar(&lastMonthFlag, "last-month", "0", "bandwidth used last month in GB")
	calculateCmd.Flags().StringVarP(&formatFlag, "format", "f", "", "output format (cli, json, markdown)")
	calculateCmd.Flags().BoolVar(&detailsFlag, "details", false, "show the per-tier breakdown")

	_ = calculateCmd.MarkFlagRequired("usage")
	_ = calculateCmd.MarkFlagRequired("plan")
}

func runCalculate(cmd *cobra.Command, args []string) error {
	usage, err := parseGB("usage", usageFlag)
	if err != nil {
		return err
	}
	prior, err := parseGB("last-month", lastMonthFlag)
	if err != nil {
		return err
	}

	formatter, err := formatterFor(formatFlag)
	if err != nil {
		return err
	}

	engine, err := newEngine()
	if err != nil {
		return err
	}

	plan := types.PlanName(planFlag)
	result, err := engine.Calculate(usage, plan, prior)
	if err != nil {
		return err
	}

	var charges []types.TierCharge
	if detailsFlag || config.Get().Output.ShowDetails {
		if charges, err = engine.Allocate(usage, plan); err != nil {
			return err
		}
	}

	return formatter.RenderCalculation(cmd.OutOrStdout(), result, charges)
}

// parseGB reads a decimal GB amount from a flag value
func parseGB(flag, value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, errors.Newf(errors.TypeInput, "--%s must be a number, got %q", flag, value)
	}
	return d, nil
}

// formatterFor falls back to the configured default format and uses the
// configured currency
func formatterFor(format string) (output.Formatter, error) {
	cfg := config.Get()
	if format == "" {
		format = cfg.Output.DefaultFormat
	}
	f, err := output.New(format, output.WithCurrency(types.Currency(cfg.Pricing.Currency)))
	if err != nil {
		return nil, fmt.Errorf("invalid --format: %w", err)
	}
	return f, nil
}
