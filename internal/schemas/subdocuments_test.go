package schemas

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSubdocument(t *testing.T) {
	tests := []struct {
		name    string
		schema  string
		raw     string
		wantErr bool
	}{
		{"sat full", SATScores, `{"readingWriting":{"min":730,"max":780},"math":{"min":750,"max":800},"total":{"min":1480,"max":1580},"percentSubmitted":48}`, false},
		{"sat empty object", SATScores, `{}`, false},
		{"sat range missing max", SATScores, `{"math":{"min":700}}`, true},
		{"sat string bound", SATScores, `{"math":{"min":"700","max":800}}`, true},
		{"sat array", SATScores, `[]`, true},
		{"act composite", ACTScores, `{"composite":{"min":34,"max":36}}`, false},
		{"majors list", PopularMajors, `["Economics","Computer Science","Biology"]`, false},
		{"majors object", PopularMajors, `{"Economics": 1}`, true},
		{"majors numbers", PopularMajors, `[1,2,3]`, true},
		{"considerations", AdmissionConsiderations, `{"Academic GPA":"Very Important"}`, false},
		{"considerations numeric level", AdmissionConsiderations, `{"Academic GPA":3}`, true},
		{"gender", GenderDistribution, `{"women":52,"men":48}`, false},
		{"gender string", GenderDistribution, `{"women":"52%"}`, true},
		{"race", RaceEthnicity, `{"White":36,"Asian":19}`, false},
		{"race string value", RaceEthnicity, `{"White":"36%"}`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSubdocument(tt.schema, tt.raw)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var validationErr *ValidationError
			require.True(t, errors.As(err, &validationErr), "expected ValidationError, got %v", err)
			assert.NotEmpty(t, validationErr.First())
		})
	}
}

func TestValidateSubdocument_UnknownSchema(t *testing.T) {
	err := ValidateSubdocument("nope", `{}`)
	var loadErr *SchemaLoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Contains(t, loadErr.Path, "nope")
}

func TestValidateSubdocument_NotJSON(t *testing.T) {
	err := ValidateSubdocument(SATScores, `{not json`)
	var validationErr *ValidationError
	assert.True(t, errors.As(err, &validationErr))
}

func TestValidateSubdocument_Concurrent(t *testing.T) {
	var wg sync.WaitGroup
	errs := make([]error, 64)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := []string{SATScores, ACTScores, PopularMajors, AdmissionConsiderations, GenderDistribution, RaceEthnicity}[i%6]
			errs[i] = ValidateSubdocument(name, `{}`)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if i%6 == 2 {
			// popular majors must be an array
			assert.Error(t, err)
			continue
		}
		assert.NoError(t, err, "schema %d", i%6)
	}
}
