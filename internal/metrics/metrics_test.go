package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/college-directory/internal/types"
)

func sampleReport() *types.ValidationReport {
	return &types.ValidationReport{
		GeneratedAt:    time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		Threshold:      80,
		TotalColleges:  2,
		PassedColleges: 1,
		FailedColleges: 1,
		AverageScore:   82.5,
		Results: []types.Verdict{
			{Slug: "a", Score: 70, Issues: []types.Issue{
				{Severity: types.SeverityError, Category: types.CategoryMissingRequired, Message: "Missing required field: website", Deduction: 5},
				{Severity: types.SeverityWarning, Category: types.CategorySATScores, Message: "SAT R&W min > max", Deduction: 2},
				{Severity: types.SeverityWarning, Category: types.CategorySATScores, Message: "SAT Math min > max"},
			}},
			{Slug: "b", Score: 95},
		},
	}
}

func TestRecorder_WriteTextfile(t *testing.T) {
	recorder := NewRecorder()
	recorder.ObserveReport(sampleReport())

	path := filepath.Join(t.TempDir(), "college.prom")
	require.NoError(t, recorder.WriteTextfile(path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(content)

	assert.Contains(t, text, "college_directory_validation_colleges_validated_total 2")
	assert.Contains(t, text, "college_directory_validation_colleges_passed_total 1")
	assert.Contains(t, text, "college_directory_validation_average_score 82.5")
	assert.Contains(t, text, "college_directory_validation_pass_threshold 80")
	assert.Contains(t, text, `college_directory_validation_issues_total{category="sat_scores",severity="warning"} 2`)
	assert.Contains(t, text, `college_directory_validation_deduction_points_total{category="missing_required_field"} 5`)
	assert.Contains(t, text, "college_directory_validation_college_score_count 2")
}

func TestRecorder_Options(t *testing.T) {
	recorder := NewRecorder(WithNamespace("test"), WithSubsystem("run"), WithScoreBuckets([]float64{50, 100}))
	recorder.ObserveReport(sampleReport())

	families, err := recorder.Registry().Gather()
	require.NoError(t, err)

	names := make([]string, 0, len(families))
	for _, family := range families {
		names = append(names, family.GetName())
	}
	assert.Contains(t, names, "test_run_colleges_validated_total")
	assert.Contains(t, names, "test_run_college_score")
}

func TestRecorder_WriteTextfileBadPath(t *testing.T) {
	recorder := NewRecorder()
	err := recorder.WriteTextfile(filepath.Join(t.TempDir(), "missing", "dir", "college.prom"))
	assert.Error(t, err)
}
