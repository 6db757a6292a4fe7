// Package main is the entry point for the bandwidth-cost CLI.
package main

import (
	"os"

	"bandwidth-cost/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
