package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/college-directory/internal/audit"
)

var checkRaceDataCmd = &cobra.Command{
	Use:   "check-race-data",
	Short: "List colleges whose race/ethnicity data lacks a major group",
	RunE:  runCheckRaceData,
}

func init() {
	rootCmd.AddCommand(checkRaceDataCmd)
}

func runCheckRaceData(cmd *cobra.Command, _ []string) error {
	colleges, err := listColleges(cmd.Context())
	if err != nil {
		return err
	}
	newPrinter(cmd).PrintIncompleteRace(audit.IncompleteRaceData(colleges))
	return nil
}
