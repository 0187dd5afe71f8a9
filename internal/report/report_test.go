package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/college-directory/internal/types"
)

func issue(category types.Category, severity types.Severity) types.Issue {
	return types.Issue{Severity: severity, Category: category, Message: string(category)}
}

func sampleReport() *types.ValidationReport {
	return &types.ValidationReport{
		RunID:          "run-1",
		GeneratedAt:    time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Threshold:      80,
		TotalColleges:  3,
		PassedColleges: 1,
		FailedColleges: 2,
		AverageScore:   75,
		Results: []types.Verdict{
			{CollegeName: "A", Slug: "a", Score: 60, Errors: []string{}, Warnings: []string{}, Issues: []types.Issue{
				issue(types.CategoryMissingImportant, types.SeverityWarning),
				issue(types.CategoryMissingImportant, types.SeverityWarning),
				issue(types.CategoryWebsite, types.SeverityWarning),
			}},
			{CollegeName: "B", Slug: "b", Score: 70, Errors: []string{}, Warnings: []string{}, Issues: []types.Issue{
				issue(types.CategoryDescription, types.SeverityError),
				issue(types.CategoryMissingImportant, types.SeverityWarning),
			}},
			{CollegeName: "C", Slug: "c", Score: 95, Errors: []string{}, Warnings: []string{}, Issues: []types.Issue{}},
		},
	}
}

func TestSummarize(t *testing.T) {
	summary := Summarize(sampleReport())

	require.Len(t, summary, 3)
	assert.Equal(t, IssueCount{Category: types.CategoryMissingImportant, Label: "Missing important field", Count: 3}, summary[0])
	// ties broken by label: "Description quality" < "Website URL"
	assert.Equal(t, types.CategoryDescription, summary[1].Category)
	assert.Equal(t, types.CategoryWebsite, summary[2].Category)
}

func TestFailing(t *testing.T) {
	failing := Failing(sampleReport())

	require.Len(t, failing, 2)
	assert.Equal(t, "a", failing[0].Slug)
	assert.Equal(t, "b", failing[1].Slug)
}

func TestWriteJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "results.json")

	require.NoError(t, WriteJSON(path, sampleReport()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var decoded types.ValidationReport
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "run-1", decoded.RunID)
	assert.Len(t, decoded.Results, 3)
}

func TestCheckSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.json")
	require.NoError(t, WriteJSON(path, sampleReport()))

	assert.NoError(t, CheckSchema(path, "schemas/validation_report.schema.json"))
	assert.Error(t, CheckSchema(path, "schemas/does_not_exist.schema.json"))
}
