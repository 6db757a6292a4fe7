// Package cmd provides the CLI commands for bandwidth-cost.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"bandwidth-cost/core/catalog"
	"bandwidth-cost/core/pricing"
	"bandwidth-cost/internal/config"
	"bandwidth-cost/internal/logging"
)

const version = "0.1.0"

var (
	cfgFile   string
	plansFile string
	verbose   bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "bandwidth-cost",
	Short: "Price bandwidth usage across subscription plans",
	Long: `bandwidth-cost computes usage-based bandwidth charges.

Usage is priced through the plan's tiers, then a loyalty discount (from last
month's usage) and a volume discount (from this month's usage) are applied
one after the other.

Examples:
  bandwidth-cost calculate --usage 150 --plan enterprise --last-month 120
  bandwidth-cost recommend --usage 100 --format json
  bandwidth-cost plans --plans ./plans.hcl
  bandwidth-cost serve --addr :8080`,
	SilenceUsage: true,
}

// Execute runs the CLI
func Execute() error {
	defer logging.Sync()
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.bandwidth-cost.json)")
	rootCmd.PersistentFlags().StringVar(&plansFile, "plans", "", "HCL plan catalog (default is the built-in plans)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(calculateCmd)
	rootCmd.AddCommand(recommendCmd)
	rootCmd.AddCommand(plansCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	path := cfgFile
	if path == "" {
		path = config.DefaultPath()
	}

	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if plansFile != "" {
		cfg.Pricing.PlansFile = plansFile
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}
	config.Set(cfg)

	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
}

// newEngine builds the engine from the configured catalog
func newEngine() (*pricing.Engine, error) {
	path := config.Get().Pricing.PlansFile
	if path == "" {
		return pricing.NewEngine(catalog.Default()), nil
	}

	c, err := catalog.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load plans: %w", err)
	}
	return pricing.NewEngine(c), nil
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "bandwidth-cost version %s\n", version)
	},
}
