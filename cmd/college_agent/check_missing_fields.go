package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/college-directory/internal/audit"
	"github.com/jonathan/college-directory/internal/validation"
)

var checkMissingFieldsCmd = &cobra.Command{
	Use:   "check-missing-fields",
	Short: "Count missing important fields across US colleges",
	RunE:  runCheckMissingFields,
}

var checkMissingFieldsList string

func init() {
	checkMissingFieldsCmd.Flags().StringVar(&checkMissingFieldsList, "fields", "", "Comma-separated fields to check (default: the important fields)")
	rootCmd.AddCommand(checkMissingFieldsCmd)
}

func runCheckMissingFields(cmd *cobra.Command, _ []string) error {
	ref, err := loadReference()
	if err != nil {
		return err
	}

	fields := ref.ImportantFields
	if checkMissingFieldsList != "" {
		fields = nil
		for _, f := range strings.Split(checkMissingFieldsList, ",") {
			if f = strings.TrimSpace(f); f != "" {
				fields = append(fields, f)
			}
		}
	}

	colleges, err := listColleges(cmd.Context())
	if err != nil {
		return err
	}
	result, err := audit.MissingFields(colleges, ref, fields)
	if err != nil {
		var unknown *validation.UnknownFieldError
		if errors.As(err, &unknown) {
			return fmt.Errorf("%w; known fields: %s", err, strings.Join(validation.FieldNames(), ", "))
		}
		return err
	}
	newPrinter(cmd).PrintMissingFields(result)
	return nil
}
