package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategory_Label(t *testing.T) {
	assert.Equal(t, "Missing required field", CategoryMissingRequired.Label())
	assert.Equal(t, "Race/ethnicity", CategoryRaceEthnicity.Label())
	assert.Equal(t, "custom", Category("custom").Label())
}

func TestCategory_AllLabeled(t *testing.T) {
	for category, label := range categoryLabels {
		assert.NotEmpty(t, label, "category %s should have a label", category)
	}
}

func TestVerdict_JSONFieldNames(t *testing.T) {
	verdict := Verdict{
		CollegeName: "Harvard University",
		Slug:        "harvard-university",
		Errors:      []string{"Missing required field: website"},
		Warnings:    []string{},
		Score:       95,
		Issues: []Issue{{
			Severity:  SeverityError,
			Category:  CategoryMissingRequired,
			Field:     "website",
			Message:   "Missing required field: website",
			Deduction: 5,
		}},
	}

	jsonBytes, err := json.MarshalIndent(verdict, "", "  ")
	require.NoError(t, err)
	assert.Contains(t, string(jsonBytes), `"collegeName": "Harvard University"`)
	assert.Contains(t, string(jsonBytes), `"slug": "harvard-university"`)
	assert.Contains(t, string(jsonBytes), `"score": 95`)
	assert.Contains(t, string(jsonBytes), `"severity": "error"`)
	assert.Contains(t, string(jsonBytes), `"category": "missing_required_field"`)
	assert.Contains(t, string(jsonBytes), `"deduction": 5`)
}

func TestValidationReport_Passed(t *testing.T) {
	tests := []struct {
		name   string
		report ValidationReport
		want   bool
	}{
		{"above threshold", ValidationReport{Threshold: 80, TotalColleges: 3, AverageScore: 92.5}, true},
		{"at threshold", ValidationReport{Threshold: 80, TotalColleges: 1, AverageScore: 80}, true},
		{"below threshold", ValidationReport{Threshold: 80, TotalColleges: 2, AverageScore: 79.9}, false},
		{"empty run", ValidationReport{Threshold: 80}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.report.Passed())
		})
	}
}

func TestCollege_NullColumnsMarshalAsNull(t *testing.T) {
	college := College{Name: "Rice University", Slug: "rice-university"}

	jsonBytes, err := json.Marshal(college)
	require.NoError(t, err)
	assert.Contains(t, string(jsonBytes), `"satScores":null`)
	assert.Contains(t, string(jsonBytes), `"studentsAdmittedPercent":null`)
	assert.Equal(t, "", StringValue(college.Website))
}
