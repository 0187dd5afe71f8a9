package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/college-directory/internal/audit"
)

var checkEarlyActionCmd = &cobra.Command{
	Use:   "check-early-action",
	Short: "Group colleges with an early action deadline by EA type",
	RunE:  runCheckEarlyAction,
}

func init() {
	rootCmd.AddCommand(checkEarlyActionCmd)
}

func runCheckEarlyAction(cmd *cobra.Command, _ []string) error {
	colleges, err := listColleges(cmd.Context())
	if err != nil {
		return err
	}
	newPrinter(cmd).PrintEarlyAction(audit.GroupEarlyAction(colleges))
	return nil
}
