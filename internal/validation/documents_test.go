package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/college-directory/internal/schemas"
	"github.com/jonathan/college-directory/internal/types"
)

func TestInspectDocument(t *testing.T) {
	tests := []struct {
		name   string
		raw    *string
		schema string
		want   documentStatus
	}{
		{"nil", nil, schemas.SATScores, documentAbsent},
		{"empty", ptr(""), schemas.SATScores, documentAbsent},
		{"malformed", ptr("{oops"), schemas.SATScores, documentUnparseable},
		{"json null", ptr("null"), schemas.GenderDistribution, documentUnparseable},
		{"wrong type", ptr(`["a"]`), schemas.SATScores, documentWrongShape},
		{"range missing max", ptr(`{"math":{"min":500}}`), schemas.SATScores, documentWrongShape},
		{"valid", ptr(`{"math":{"min":500,"max":600}}`), schemas.SATScores, documentValid},
		{"valid majors", ptr(` ["Biology"] `), schemas.PopularMajors, documentValid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := inspectDocument(tt.raw, tt.schema)
			assert.Equal(t, tt.want, got.status)
			if tt.want == documentWrongShape {
				assert.NotEmpty(t, got.detail)
			}
		})
	}
}

func TestShapeProblem_WrongShape(t *testing.T) {
	v := newTestValidator(t, nil)
	problems := v.satProblems(ptr(`{"math":"600-700"}`))

	assert.Len(t, problems, 1)
	assert.Contains(t, problems[0], "SAT scores not in expected format")
}

func TestDecodeRaceEthnicity(t *testing.T) {
	race, ok := DecodeRaceEthnicity(ptr(`{"White":60.5,"Asian":20}`))
	assert.True(t, ok)
	assert.Equal(t, types.RaceEthnicity{"White": 60.5, "Asian": 20}, race)

	_, ok = DecodeRaceEthnicity(ptr(`{"White":"sixty"}`))
	assert.False(t, ok)

	_, ok = DecodeRaceEthnicity(nil)
	assert.False(t, ok)
}

func TestMissingRaceGroups(t *testing.T) {
	assert.Empty(t, MissingRaceGroups(types.RaceEthnicity{
		"White": 1, "Asian": 1, "Hispanic/Latino": 1, "Black/African American": 1,
	}))
	assert.Equal(t, []string{"White", "Asian", "Hispanic", "Black"}, MissingRaceGroups(types.RaceEthnicity{}))
	assert.Equal(t, []string{"Black"}, MissingRaceGroups(types.RaceEthnicity{
		"White": 1, "Asian": 1, "Hispanic": 1,
	}))
}
