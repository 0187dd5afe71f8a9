package schemas

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/college-directory/internal/schemas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var schemaFiles = []string{
	"validation_report.schema.json",
}

func TestAllSchemaFiles_ValidJSON(t *testing.T) {
	for _, schemaFile := range schemaFiles {
		t.Run(schemaFile, func(t *testing.T) {
			data, err := os.ReadFile(filepath.Join(".", schemaFile))
			require.NoError(t, err, "should be able to read schema file")

			var schemaObj map[string]interface{}
			require.NoError(t, json.Unmarshal(data, &schemaObj), "schema file should be valid JSON: %s", schemaFile)

			_, hasSchema := schemaObj["$schema"]
			_, hasType := schemaObj["type"]
			assert.True(t, hasSchema && hasType, "schema should declare $schema and type")
		})
	}
}

func TestValidationReportSchema_AcceptsReport(t *testing.T) {
	data, err := os.ReadFile("validation_report.schema.json")
	require.NoError(t, err)

	report := `{
		"runId": "0b7c5d3e-1f0a-4a57-9d2b-3f1f6f7a9c11",
		"generatedAt": "2026-03-01T12:00:00Z",
		"threshold": 80,
		"totalColleges": 1,
		"passedColleges": 1,
		"failedColleges": 0,
		"averageScore": 95,
		"results": [
			{
				"collegeName": "Test College",
				"slug": "test-college",
				"errors": ["Missing required field: website"],
				"warnings": [],
				"score": 95,
				"issues": [
					{"severity": "error", "category": "missing_required_field", "field": "website",
					 "message": "Missing required field: website", "deduction": 5}
				]
			}
		]
	}`
	assert.NoError(t, schemas.ValidateJSONString(string(data), report))
}

func TestValidationReportSchema_RejectsBadScore(t *testing.T) {
	data, err := os.ReadFile("validation_report.schema.json")
	require.NoError(t, err)

	report := `{
		"runId": "r", "generatedAt": "2026-03-01T12:00:00Z", "threshold": 80,
		"totalColleges": 1, "passedColleges": 0, "failedColleges": 1, "averageScore": 20,
		"results": [{"collegeName": "x", "slug": "x", "errors": [], "warnings": [], "score": 120, "issues": []}]
	}`
	err = schemas.ValidateJSONString(string(data), report)
	require.Error(t, err)

	var validationErr *schemas.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}
