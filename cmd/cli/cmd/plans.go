package cmd

import (
	"github.com/spf13/cobra"
)

var plansFormat string

// plansCmd lists the plan catalog
var plansCmd = &cobra.Command{
	Use:   "plans",
	Short: "List the available plans and their tiers",
	RunE: func(cmd *cobra.Command, args []string) error {
		formatter, err := formatterFor(plansFormat)
		if err != nil {
			return err
		}

		engine, err := newEngine()
		if err != nil {
			return err
		}

		return formatter.RenderPlans(cmd.OutOrStdout(), engine.Catalog().Plans())
	},
}

func init() {
	plansCmd.Flags().StringVarP(&plansFormat, "format", "f", "", "output format (cli, json, markdown)")
}
