package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/college-directory/internal/audit"
)

var verifyEarlyAdmissionCmd = &cobra.Command{
	Use:   "verify-early-admission",
	Short: "Check stored early admission data against published policies",
	Long: "Compares each school's published early decision and early action policy from the reference data " +
		"with the stored record and fails when any record disagrees.",
	RunE: runVerifyEarlyAdmission,
}

func init() {
	rootCmd.AddCommand(verifyEarlyAdmissionCmd)
}

func runVerifyEarlyAdmission(cmd *cobra.Command, _ []string) error {
	ref, err := loadReference()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	store, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	result, err := audit.VerifyEarlyAdmission(ctx, store, ref.EarlyAdmissionPolicies)
	if err != nil {
		return err
	}
	newPrinter(cmd).PrintPolicyVerification(result)

	if result.Failed() {
		return fmt.Errorf("%d college(s) disagree with their published early admission policy", result.Errors)
	}
	return nil
}
