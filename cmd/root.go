// Package cmd holds the ofdb CLI.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ofdb",
	Short: "Open Filament Database build tooling",
	Long: `ofdb crawls a filament catalog tree and a stores tree, normalizes
them into a single entity graph, and exports the graph as bulk JSON,
NDJSON, per-brand JSON, SQLite, CSV, and a split static JSON API.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
