// Package main provides the college_agent CLI for validating and maintaining
// the college directory dataset.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "college_agent",
	Short: "College directory data quality toolkit",
	Long: "college_agent scores every college record against completeness, range and consistency rules, " +
		"audits specific data gaps, and applies curated corrections to the college table.",
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	PersistentPostRun: teardown,
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
