package cmd

import (
	"github.com/spf13/cobra"
)

var (
	recommendUsage     string
	recommendLastMonth string
	recommendFormat    string
)

// recommendCmd compares every plan at one usage level
var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Recommend the cheapest plan for a usage level",
	Long: `Recommend prices the usage on every plan, discounts included, and picks
the cheapest. Ties go to the plan listed first in the catalog.

Examples:
  bandwidth-cost recommend --usage 100
  bandwidth-cost recommend --usage 250 --last-month 180 --format markdown`,
	RunE: runRecommend,
}

func init() {
	recommendCmd.Flags().StringVarP(&recommendUsage, "usage", "u", "", "expected bandwidth in GB (required)")
	recommendCmd.Flags().StringVar(&recommendLastMonth, "last-month", "0", "bandwidth used last month in GB")
	recommendCmd.Flags().StringVarP(&recommendFormat, "format", "f", "", "output format (cli, json, markdown)")

	_ = recommendCmd.MarkFlagRequired("usage")
}

func runRecommend(cmd *cobra.Command, args []string) error {
	usage, err := parseGB("usage", recommendUsage)
	if err != nil {
		return err
	}
	prior, err := parseGB("last-month", recommendLastMonth)
	if err != nil {
		return err
	}

	formatter, err := formatterFor(recommendFormat)
	if err != nil {
		return err
	}

	engine, err := newEngine()
	if err != nil {
		return err
	}

	rec, err := engine.RecommendPlan(usage, prior)
	if err != nil {
		return err
	}

	return formatter.RenderRecommendation(cmd.OutOrStdout(), rec, engine.Catalog().Names())
}
