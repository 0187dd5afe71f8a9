package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/college-directory/internal/fixup"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create or update colleges from a YAML or JSON record list",
	RunE:  runSeed,
}

var (
	seedFile   string
	seedDryRun bool
)

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "Path to seed file (required)")
	seedCmd.Flags().BoolVar(&seedDryRun, "dry-run", false, "Count creates and updates without writing")

	if err := seedCmd.MarkFlagRequired("file"); err != nil {
		panic(fmt.Sprintf("failed to mark file flag as required: %v", err))
	}

	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, _ []string) error {
	records, err := fixup.LoadSeed(seedFile)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	store, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	result, err := fixup.Seed(ctx, store, records, fixup.Options{DryRun: seedDryRun, Logger: logger})
	newPrinter(cmd).PrintSeedResult(result, seedDryRun)
	return err
}
