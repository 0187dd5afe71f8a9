package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/college-directory/internal/metrics"
	"github.com/jonathan/college-directory/internal/observability"
	"github.com/jonathan/college-directory/internal/report"
	"github.com/jonathan/college-directory/internal/schemas"
	"github.com/jonathan/college-directory/internal/validation"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Score every college record and report data quality",
	Long: "Validates every college record for completeness, value ranges, sub-document shape and internal " +
		"consistency, writes a JSON report and fails when the average score is below the pass threshold.",
	RunE: runValidate,
}

var (
	validateOutput      string
	validateThreshold   int
	validateWorkers     int
	validateMetricsFile string
)

func init() {
	validateCmd.Flags().StringVarP(&validateOutput, "output", "o", "", "Path to JSON report (default from config)")
	validateCmd.Flags().IntVar(&validateThreshold, "threshold", validation.DefaultPassThreshold, "Minimum average score for the run to pass")
	validateCmd.Flags().IntVar(&validateWorkers, "workers", 0, "Concurrent validators (0 uses GOMAXPROCS)")
	validateCmd.Flags().StringVar(&validateMetricsFile, "metrics-file", "", "Write Prometheus textfile metrics to this path")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	if cmd.Flags().Changed("output") {
		cfg.ReportPath = validateOutput
	}
	if cmd.Flags().Changed("threshold") {
		cfg.PassThreshold = validateThreshold
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers = validateWorkers
	}
	if cmd.Flags().Changed("metrics-file") {
		cfg.MetricsFile = validateMetricsFile
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ref, err := loadReference()
	if err != nil {
		return err
	}
	validator, err := validation.New(ref, validation.WithLogger(logger))
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	colleges, err := listColleges(ctx)
	if err != nil {
		return err
	}

	result, err := validation.RunBatch(ctx, validator, colleges, validation.BatchOptions{
		Workers:   cfg.Workers,
		Threshold: cfg.PassThreshold,
		Logger:    logger,
	})
	if err != nil {
		return err
	}

	if err := report.WriteJSON(cfg.ReportPath, result); err != nil {
		return err
	}

	// Validate output against schema (non-fatal)
	if cfg.ReportSchema != "" {
		if err := report.CheckSchema(cfg.ReportPath, cfg.ReportSchema); err != nil {
			var validationErr *schemas.ValidationError
			if errors.As(err, &validationErr) {
				logger.Warn("report does not validate against schema", zap.Error(err))
			} else {
				logger.Warn("could not validate report against schema", zap.Error(err))
			}
		}
	}

	if cfg.MetricsFile != "" {
		recorder := metrics.NewRecorder()
		recorder.ObserveReport(result)
		if err := recorder.WriteTextfile(cfg.MetricsFile); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
	}

	newPrinter(cmd).PrintValidationReport(result, cfg.ReportPath, observability.Limits{
		Failing:  cfg.FailingLimit,
		Warnings: cfg.WarningLimit,
		Issues:   cfg.IssueLimit,
	})

	if !result.Passed() {
		// Return error to indicate the run failed (exit code 1)
		return fmt.Errorf("average score %.1f is below threshold %d", result.AverageScore, result.Threshold)
	}
	return nil
}
