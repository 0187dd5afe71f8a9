// Package observability provides formatted console output for the CLI reports.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/college-directory/internal/audit"
	"github.com/jonathan/college-directory/internal/fixup"
	"github.com/jonathan/college-directory/internal/report"
	"github.com/jonathan/college-directory/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// ruleWidth is the width of section rules in full reports
	ruleWidth = 80
	// maxItemsToShow is the default number of warnings shown per college
	maxItemsToShow = 5
	// maxRegularEA caps the regular early action listing
	maxRegularEA = 30
)

// Printer handles formatted report output
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// Limits bounds how much of a validation report is printed.
type Limits struct {
	Failing  int // colleges listed under "needing attention"
	Warnings int // warnings shown per college
	Issues   int // rows in the issue summary
}

// DefaultLimits matches the console report's historical output.
func DefaultLimits() Limits {
	return Limits{Failing: 50, Warnings: maxItemsToShow, Issues: 20}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(strings.TrimRight(content, "\n"), "\n")
	for _, line := range lines {
		// Truncate long lines
		if len([]rune(line)) > boxWidth-4 {
			line = string([]rune(line)[:boxWidth-7]) + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printSection(title string) {
	rule := strings.Repeat("=", ruleWidth)
	fmt.Fprintln(p.out, rule)
	fmt.Fprintln(p.out, title)
	fmt.Fprintln(p.out, rule)
}

func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

// PrintValidationReport outputs the full console report for a validation run.
// reportPath is echoed so operators can find the JSON copy.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintValidationReport(r *types.ValidationReport, reportPath string, limits Limits) {
	if r == nil {
		return
	}

	p.printSection("COLLEGE DATA VALIDATION REPORT")
	fmt.Fprintln(p.out)
	fmt.Fprintf(p.out, "Total Colleges: %d\n", r.TotalColleges)
	fmt.Fprintf(p.out, "Passed (≥%d%%): %d (%.1f%%)\n", r.Threshold, r.PassedColleges, percent(r.PassedColleges, r.TotalColleges))
	fmt.Fprintf(p.out, "Failed (<%d%%): %d (%.1f%%)\n", r.Threshold, r.FailedColleges, percent(r.FailedColleges, r.TotalColleges))
	fmt.Fprintf(p.out, "Average Score: %.1f%%\n", r.AverageScore)
	fmt.Fprintln(p.out)

	p.printSection(fmt.Sprintf("COLLEGES NEEDING ATTENTION (Score < %d%%)", r.Threshold))
	failing := report.Failing(r)
	if limits.Failing > 0 && len(failing) > limits.Failing {
		failing = failing[:limits.Failing]
	}
	for _, v := range failing {
		p.printVerdict(v, limits.Warnings)
	}

	fmt.Fprintln(p.out)
	p.printSection("ISSUE SUMMARY")
	summary := report.Summarize(r)
	if limits.Issues > 0 && len(summary) > limits.Issues {
		summary = summary[:limits.Issues]
	}
	for _, row := range summary {
		fmt.Fprintf(p.out, "  %3d - %s\n", row.Count, row.Label)
	}

	if reportPath != "" {
		fmt.Fprintln(p.out)
		fmt.Fprintf(p.out, "Full results saved to: %s\n", reportPath)
	}

	fmt.Fprintln(p.out)
	if r.Passed() {
		fmt.Fprintln(p.out, "✓ VALIDATION PASSED")
	} else {
		fmt.Fprintf(p.out, "❌ VALIDATION FAILED: Average score below %d%%\n", r.Threshold)
	}
}

//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printVerdict(v types.Verdict, maxWarnings int) {
	fmt.Fprintln(p.out)
	fmt.Fprintf(p.out, "%s (%s)\n", v.CollegeName, v.Slug)
	fmt.Fprintf(p.out, "  Score: %d%%\n", v.Score)
	if len(v.Errors) > 0 {
		fmt.Fprintln(p.out, "  ERRORS:")
		for _, e := range v.Errors {
			fmt.Fprintf(p.out, "    - %s\n", e)
		}
	}
	if len(v.Warnings) > 0 {
		if maxWarnings <= 0 {
			maxWarnings = maxItemsToShow
		}
		fmt.Fprintln(p.out, "  WARNINGS:")
		shown := min(len(v.Warnings), maxWarnings)
		for _, w := range v.Warnings[:shown] {
			fmt.Fprintf(p.out, "    - %s\n", w)
		}
		if len(v.Warnings) > shown {
			fmt.Fprintf(p.out, "    ... and %d more warnings\n", len(v.Warnings)-shown)
		}
	}
}

// PrintMissingFields outputs important-field gaps across domestic colleges.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintMissingFields(r *audit.MissingFieldsReport) {
	if r == nil {
		return
	}
	fmt.Fprintf(p.out, "US schools: %d\n", r.Colleges)
	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, "Missing important fields (US schools):")
	for _, fc := range r.Missing {
		fmt.Fprintf(p.out, "  %d - %s\n", fc.Count, fc.Field)
	}
}

// PrintMissingScores outputs domestic colleges with no SAT data.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintMissingScores(missing []audit.MissingScore) {
	fmt.Fprintf(p.out, "US schools missing SAT scores: %d\n", len(missing))
	for _, m := range missing {
		fmt.Fprintf(p.out, "  - %s | %s%% | %s\n", m.Slug, formatRate(m.StudentsAdmittedPercent), orNull(m.TestPolicy))
	}
}

// PrintIncompleteRace outputs colleges whose race/ethnicity breakdown lacks a major group.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintIncompleteRace(incomplete []audit.IncompleteRace) {
	fmt.Fprintf(p.out, "Schools with incomplete race data: %d\n", len(incomplete))
	for _, r := range incomplete {
		fmt.Fprintf(p.out, "  - %s | %s\n", r.Slug, r.Location)
		fmt.Fprintf(p.out, "    Data: %s\n", r.Data)
		if len(r.Missing) > 0 {
			fmt.Fprintf(p.out, "    Missing: %s\n", strings.Join(r.Missing, ", "))
		}
	}
}

// PrintEarlyAction outputs colleges with an early action deadline grouped by type.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintEarlyAction(groups *audit.EarlyActionGroups) {
	if groups == nil {
		return
	}
	fmt.Fprintln(p.out, "Schools with Early Action:")
	fmt.Fprintln(p.out)

	fmt.Fprintln(p.out, "=== SCEA (Single-Choice Early Action) ===")
	for _, c := range groups.SingleChoice {
		fmt.Fprintf(p.out, "  %s: %s\n", c.Name, orNull(c.EarlyActionType))
	}

	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, "=== REA (Restrictive Early Action) ===")
	for _, c := range groups.Restrictive {
		fmt.Fprintf(p.out, "  %s: %s\n", c.Name, orNull(c.EarlyActionType))
	}

	fmt.Fprintln(p.out)
	fmt.Fprintf(p.out, "=== Regular EA (%d schools) ===\n", len(groups.Regular))
	shown := min(len(groups.Regular), maxRegularEA)
	for _, c := range groups.Regular[:shown] {
		fmt.Fprintf(p.out, "  %s: %s\n", c.Name, orNull(c.EarlyActionType))
	}
	if len(groups.Regular) > shown {
		fmt.Fprintf(p.out, "  ... and %d more\n", len(groups.Regular)-shown)
	}

	if len(groups.Other) > 0 {
		fmt.Fprintln(p.out)
		fmt.Fprintf(p.out, "=== Unrecognized type (%d schools) ===\n", len(groups.Other))
		for _, c := range groups.Other {
			fmt.Fprintf(p.out, "  %s: %s\n", c.Name, orNull(c.EarlyActionType))
		}
	}
}

// PrintPolicyVerification outputs the early admission policy check.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintPolicyVerification(r *audit.PolicyReport) {
	if r == nil {
		return
	}
	p.printSection("EARLY ADMISSION ACCURACY VERIFICATION")
	fmt.Fprintln(p.out)

	for _, res := range r.Results {
		switch res.Status {
		case audit.PolicyNotFound:
			fmt.Fprintf(p.out, "⚠️  %s (%s): NOT FOUND IN DATABASE\n", res.Policy.Name, res.Policy.Slug)
		case audit.PolicyMismatch:
			fmt.Fprintf(p.out, "❌ %s (%s):\n", res.College.Name, res.Policy.Slug)
			for _, issue := range res.Issues {
				fmt.Fprintf(p.out, "     - %s\n", issue)
			}
		case audit.PolicyVerified:
			fmt.Fprintf(p.out, "✓  %s: Correct\n", res.College.Name)
			fmt.Fprintf(p.out, "     EA: %s (%s)\n", orDefault(res.College.EarlyActionType, "none"), orDefault(res.College.EADeadline, "no deadline"))
			fmt.Fprintf(p.out, "     ED: %s\n", orDefault(res.College.EDDeadline, "none"))
		}
	}

	fmt.Fprintln(p.out)
	p.printSection("SUMMARY")
	fmt.Fprintf(p.out, "Verified: %d\n", r.Verified)
	fmt.Fprintf(p.out, "Errors: %d\n", r.Errors)
	fmt.Fprintf(p.out, "Warnings: %d\n", r.Warnings)
	fmt.Fprintln(p.out)
	if r.Failed() {
		fmt.Fprintln(p.out, "❌ VERIFICATION FAILED - Fix the errors above")
	} else {
		fmt.Fprintln(p.out, "✓ ALL VERIFIED SCHOOLS PASS")
	}
}

// PrintFixupResult outputs per-entry outcomes and totals for an update run.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintFixupResult(r *fixup.Result) {
	if r == nil {
		return
	}
	for _, e := range r.Entries {
		switch e.Status {
		case fixup.StatusUpdated:
			fmt.Fprintf(p.out, "✓ Updated: %s\n", e.Name)
		case fixup.StatusPlanned:
			fmt.Fprintf(p.out, "• Would update: %s (%d fields)\n", e.Name, e.Fields)
		case fixup.StatusNotFound:
			if e.Suggestion != "" {
				fmt.Fprintf(p.out, "❌ Not found: %s (did you mean %s?)\n", e.Slug, e.Suggestion)
			} else {
				fmt.Fprintf(p.out, "❌ Not found: %s\n", e.Slug)
			}
		case fixup.StatusFailed:
			fmt.Fprintf(p.out, "❌ Error updating %s: %s\n", e.Slug, e.Error)
		}
	}

	var summary strings.Builder
	if r.DryRun {
		summary.WriteString("Dry run: no changes written\n")
	}
	summary.WriteString(fmt.Sprintf("Updated:   %d\n", r.Updated))
	summary.WriteString(fmt.Sprintf("Not found: %d\n", r.NotFound))
	summary.WriteString(fmt.Sprintf("Errors:    %d\n", r.Errors))
	fmt.Fprintln(p.out)
	p.printBox("COLLEGE UPDATES", summary.String())
}

// PrintSeedResult outputs totals for a seed run.
func (p *Printer) PrintSeedResult(r *fixup.SeedResult, dryRun bool) {
	if r == nil {
		return
	}
	var summary strings.Builder
	if dryRun {
		summary.WriteString("Dry run: no changes written\n")
	}
	summary.WriteString(fmt.Sprintf("Created: %d\n", r.Created))
	summary.WriteString(fmt.Sprintf("Updated: %d\n", r.Updated))
	p.printBox("COLLEGE SEED", summary.String())
}

func formatRate(rate *float64) string {
	if rate == nil {
		return "null"
	}
	return fmt.Sprintf("%g", *rate)
}

func orNull(s *string) string {
	return orDefault(s, "null")
}

func orDefault(s *string, fallback string) string {
	if s == nil || *s == "" {
		return fallback
	}
	return *s
}
