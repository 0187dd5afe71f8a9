package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jonathan/college-directory/internal/reference"
	"github.com/jonathan/college-directory/internal/types"
)

func ptr[T any](v T) *T {
	return &v
}

// newTestValidator builds a validator over the embedded reference data.
// mutate, when non-nil, may adjust the reference data before construction.
func newTestValidator(t *testing.T, mutate func(ref *reference.Data)) *Validator {
	t.Helper()
	ref, err := reference.Default()
	require.NoError(t, err)
	if mutate != nil {
		mutate(ref)
	}
	v, err := New(ref)
	require.NoError(t, err)
	return v
}

// completeCollege returns a record that passes every rule with a score of 100.
func completeCollege() types.College {
	return types.College{
		ID:       "c-1",
		Name:     "Test College",
		Slug:     "test-college",
		Location: "Springfield, IL",

		Setting:                    ptr("Suburban"),
		InstitutionalSector:        ptr("Private"),
		UndergraduateEnrollment:    ptr(5000),
		StudentsAdmittedPercent:    ptr(30.0),
		CostOfAttendanceInState:    ptr(60000),
		CostOfAttendanceOutOfState: ptr(60000),
		StudentFacultyRatio:        ptr("10:1"),
		AdmissionsSelectivity:      ptr("Very Selective"),
		TestPolicy:                 ptr("Test Optional"),

		RetentionRate:      ptr(90.0),
		GraduationRate4yr:  ptr(80.0),
		MedianEarnings10yr: ptr(70000),
		TotalApplicants:    ptr(10000),
		TotalAdmitted:      ptr(3000),

		SATScores:       ptr(`{"readingWriting":{"min":600,"max":700},"math":{"min":620,"max":740},"total":{"min":1220,"max":1440}}`),
		ACTScores:       ptr(`{"composite":{"min":27,"max":32},"english":{"min":26,"max":33}}`),
		GPADistribution: ptr(`{"4.0":40,"3.75-3.99":35}`),
		PopularMajors:   ptr(`["Biology","Economics","Psychology"]`),
		AdmissionConsiderations: ptr(`{"Academic GPA":"Very Important","Rigor of secondary school record":"Very Important",` +
			`"Standardized test scores":"Considered","Application essay":"Important",` +
			`"Recommendation(s)":"Important","Extracurricular activities":"Considered"}`),
		RaceEthnicity:      ptr(`{"White":50,"Asian":20,"Hispanic":15,"Black":10,"Other":5}`),
		GenderDistribution: ptr(`{"women":55,"men":45}`),

		Description: ptr(strings.Repeat("A small liberal arts college with a strong core curriculum. ", 3)),
		Website:     ptr("https://test.edu"),
		RDDeadline:  ptr("January 1"),

		FAFSARequired:      ptr(true),
		CSSProfileRequired: ptr(false),
		AverageNetPrice:    ptr(30000),
		PrimaryColor:       ptr("#990000"),
	}
}
