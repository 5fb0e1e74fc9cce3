// Package cli implements the drivebay command line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "drivebay",
	Short: "DriveBay car marketplace daemon",
	Long: `DriveBay runs a car marketplace: inventory, listings, payments,
ledger accounts and recommendations, served over a local HTTP API.
Domain state is held in memory; an optional SQLite journal records
every state change for inspection.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config.toml (optional)")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
