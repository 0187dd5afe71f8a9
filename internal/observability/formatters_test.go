package observability

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/college-directory/internal/audit"
	"github.com/jonathan/college-directory/internal/fixup"
	"github.com/jonathan/college-directory/internal/reference"
	"github.com/jonathan/college-directory/internal/types"
)

func strPtr(s string) *string { return &s }

func sampleReport() *types.ValidationReport {
	warnings := make([]string, 7)
	for i := range warnings {
		warnings[i] = fmt.Sprintf("warning %d", i+1)
	}
	return &types.ValidationReport{
		Threshold:      80,
		TotalColleges:  2,
		PassedColleges: 1,
		FailedColleges: 1,
		AverageScore:   78.5,
		Results: []types.Verdict{
			{
				CollegeName: "Broken College",
				Slug:        "broken-college",
				Score:       57,
				Errors:      []string{"Missing required field: website"},
				Warnings:    warnings,
				Issues: []types.Issue{
					{Severity: types.SeverityError, Category: types.CategoryMissingRequired, Deduction: 5},
					{Severity: types.SeverityWarning, Category: types.CategoryMissingImportant, Deduction: 2},
					{Severity: types.SeverityWarning, Category: types.CategoryMissingImportant, Deduction: 2},
				},
			},
			{CollegeName: "Fine College", Slug: "fine-college", Score: 100, Errors: []string{}, Warnings: []string{}, Issues: []types.Issue{}},
		},
	}
}

func TestPrintValidationReport(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintValidationReport(sampleReport(), "/tmp/results.json", DefaultLimits())
	output := buf.String()

	assert.Contains(t, output, "COLLEGE DATA VALIDATION REPORT")
	assert.Contains(t, output, "Total Colleges: 2")
	assert.Contains(t, output, "Passed (≥80%): 1 (50.0%)")
	assert.Contains(t, output, "Average Score: 78.5%")
	assert.Contains(t, output, "Broken College (broken-college)")
	assert.Contains(t, output, "  Score: 57%")
	assert.Contains(t, output, "    - warning 5")
	assert.NotContains(t, output, "warning 6")
	assert.Contains(t, output, "... and 2 more warnings")
	assert.NotContains(t, output, "Fine College")
	assert.Contains(t, output, "    2 - Missing important field")
	assert.Contains(t, output, "    1 - Missing required field")
	assert.Contains(t, output, "Full results saved to: /tmp/results.json")
	assert.Contains(t, output, "❌ VALIDATION FAILED")
}

func TestPrintValidationReport_Passed(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	r := sampleReport()
	r.AverageScore = 90
	p.PrintValidationReport(r, "", DefaultLimits())

	assert.Contains(t, buf.String(), "✓ VALIDATION PASSED")
	assert.NotContains(t, buf.String(), "Full results saved to")
}

func TestPrintValidationReport_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintValidationReport(nil, "", DefaultLimits())

	assert.Empty(t, buf.String())
}

func TestPrintMissingScores(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	rate := 4.5
	p.PrintMissingScores([]audit.MissingScore{
		{Slug: "rice-university", StudentsAdmittedPercent: &rate, TestPolicy: strPtr("Test Optional")},
		{Slug: "nowhere-college"},
	})
	output := buf.String()

	assert.Contains(t, output, "US schools missing SAT scores: 2")
	assert.Contains(t, output, "  - rice-university | 4.5% | Test Optional")
	assert.Contains(t, output, "  - nowhere-college | null% | null")
}

func TestPrintEarlyAction_CapsRegular(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	groups := &audit.EarlyActionGroups{
		SingleChoice: []types.College{{Name: "Yale University", EarlyActionType: strPtr("SCEA")}},
	}
	for i := range 32 {
		groups.Regular = append(groups.Regular, types.College{Name: fmt.Sprintf("College %02d", i)})
	}
	p.PrintEarlyAction(groups)
	output := buf.String()

	assert.Contains(t, output, "  Yale University: SCEA")
	assert.Contains(t, output, "=== Regular EA (32 schools) ===")
	assert.Contains(t, output, "  College 29: null")
	assert.NotContains(t, output, "College 30")
	assert.Contains(t, output, "  ... and 2 more")
}

func TestPrintPolicyVerification(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	r := &audit.PolicyReport{
		Results: []audit.PolicyResult{
			{
				Policy:  reference.EarlyAdmissionPolicy{Slug: "yale-university", Name: "Yale"},
				Status:  audit.PolicyVerified,
				College: &types.College{Name: "Yale University", EarlyActionType: strPtr("SCEA"), EADeadline: strPtr("November 1")},
			},
			{
				Policy:  reference.EarlyAdmissionPolicy{Slug: "mit", Name: "MIT"},
				Status:  audit.PolicyMismatch,
				College: &types.College{Name: "Massachusetts Institute of Technology"},
				Issues:  []string{"Should have EA deadline but doesn't"},
			},
			{
				Policy: reference.EarlyAdmissionPolicy{Slug: "ghost-college", Name: "Ghost College"},
				Status: audit.PolicyNotFound,
			},
		},
		Verified: 1,
		Errors:   1,
		Warnings: 1,
	}
	p.PrintPolicyVerification(r)
	output := buf.String()

	assert.Contains(t, output, "✓  Yale University: Correct")
	assert.Contains(t, output, "     EA: SCEA (November 1)")
	assert.Contains(t, output, "     ED: none")
	assert.Contains(t, output, "❌ Massachusetts Institute of Technology (mit):")
	assert.Contains(t, output, "     - Should have EA deadline but doesn't")
	assert.Contains(t, output, "⚠️  Ghost College (ghost-college): NOT FOUND IN DATABASE")
	assert.Contains(t, output, "❌ VERIFICATION FAILED")
}

func TestPrintFixupResult(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintFixupResult(&fixup.Result{
		Updated:  1,
		NotFound: 1,
		Errors:   1,
		Entries: []fixup.Entry{
			{Slug: "rice-university", Name: "Rice University", Status: fixup.StatusUpdated},
			{Slug: "yael-university", Status: fixup.StatusNotFound, Suggestion: "yale-university"},
			{Slug: "duke-university", Status: fixup.StatusFailed, Error: "database is locked"},
		},
	})
	output := buf.String()

	assert.Contains(t, output, "✓ Updated: Rice University")
	assert.Contains(t, output, "❌ Not found: yael-university (did you mean yale-university?)")
	assert.Contains(t, output, "❌ Error updating duke-university: database is locked")
	assert.Contains(t, output, "COLLEGE UPDATES")
	assert.Contains(t, output, "Not found: 1")
}

func TestPrintBox_LongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", strings.Repeat("x", 200))
	output := buf.String()

	// Should contain box characters
	assert.True(t, strings.Contains(output, "┌"))
	assert.True(t, strings.Contains(output, "└"))
	assert.Contains(t, output, "...")
	assert.NotContains(t, output, strings.Repeat("x", boxWidth))
}
