package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/college-directory/internal/fixup"
)

var applyUpdatesCmd = &cobra.Command{
	Use:   "apply-updates",
	Short: "Apply slug-keyed corrections from a YAML or JSON file",
	Long: "Reads a list of {slug, data} corrections, rejects unknown fields or mistyped values before " +
		"writing anything, then updates each college by slug.",
	RunE: runApplyUpdates,
}

var (
	applyUpdatesFile   string
	applyUpdatesDryRun bool
)

func init() {
	applyUpdatesCmd.Flags().StringVarP(&applyUpdatesFile, "file", "f", "", "Path to updates file (required)")
	applyUpdatesCmd.Flags().BoolVar(&applyUpdatesDryRun, "dry-run", false, "Report what would change without writing")

	if err := applyUpdatesCmd.MarkFlagRequired("file"); err != nil {
		panic(fmt.Sprintf("failed to mark file flag as required: %v", err))
	}

	rootCmd.AddCommand(applyUpdatesCmd)
}

func runApplyUpdates(cmd *cobra.Command, _ []string) error {
	updates, err := fixup.LoadUpdates(applyUpdatesFile)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	store, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	result, err := fixup.Apply(ctx, store, updates, fixup.Options{DryRun: applyUpdatesDryRun, Logger: logger})
	if err != nil {
		return err
	}
	newPrinter(cmd).PrintFixupResult(result)

	if result.Errors > 0 {
		return fmt.Errorf("%d update(s) failed", result.Errors)
	}
	return nil
}
