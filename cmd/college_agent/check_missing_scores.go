package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/college-directory/internal/audit"
)

var checkMissingScoresCmd = &cobra.Command{
	Use:   "check-missing-scores",
	Short: "List US colleges without SAT scores, most selective first",
	RunE:  runCheckMissingScores,
}

func init() {
	rootCmd.AddCommand(checkMissingScoresCmd)
}

func runCheckMissingScores(cmd *cobra.Command, _ []string) error {
	ref, err := loadReference()
	if err != nil {
		return err
	}
	colleges, err := listColleges(cmd.Context())
	if err != nil {
		return err
	}
	newPrinter(cmd).PrintMissingScores(audit.MissingScores(colleges, ref))
	return nil
}
