package validation

import (
	"sort"

	"github.com/jonathan/college-directory/internal/schemas"
	"github.com/jonathan/college-directory/internal/types"
)

// FieldSpec describes how to decide whether a college column is populated.
type FieldSpec struct {
	Name    string
	Present func(c *types.College) bool
}

func textField(name string, get func(c *types.College) *string) FieldSpec {
	return FieldSpec{Name: name, Present: func(c *types.College) bool { return textPresent(get(c)) }}
}

func intField(name string, get func(c *types.College) *int) FieldSpec {
	return FieldSpec{Name: name, Present: func(c *types.College) bool { return get(c) != nil }}
}

func floatField(name string, get func(c *types.College) *float64) FieldSpec {
	return FieldSpec{Name: name, Present: func(c *types.College) bool { return get(c) != nil }}
}

func boolField(name string, get func(c *types.College) *bool) FieldSpec {
	return FieldSpec{Name: name, Present: func(c *types.College) bool { return get(c) != nil }}
}

// documentField treats a sub-document as present only when it decodes to the expected shape.
func documentField(name, schema string, get func(c *types.College) *string) FieldSpec {
	return FieldSpec{Name: name, Present: func(c *types.College) bool {
		return inspectDocument(get(c), schema).status == documentValid
	}}
}

func textPresent(s *string) bool {
	return s != nil && *s != ""
}

var fieldTable = indexFields(
	textField("name", func(c *types.College) *string { return &c.Name }),
	textField("slug", func(c *types.College) *string { return &c.Slug }),
	textField("location", func(c *types.College) *string { return &c.Location }),
	textField("setting", func(c *types.College) *string { return c.Setting }),
	textField("institutionalSector", func(c *types.College) *string { return c.InstitutionalSector }),
	intField("undergraduateEnrollment", func(c *types.College) *int { return c.UndergraduateEnrollment }),
	floatField("studentsAdmittedPercent", func(c *types.College) *float64 { return c.StudentsAdmittedPercent }),
	intField("costOfAttendanceInState", func(c *types.College) *int { return c.CostOfAttendanceInState }),
	intField("costOfAttendanceOutOfState", func(c *types.College) *int { return c.CostOfAttendanceOutOfState }),
	textField("studentFacultyRatio", func(c *types.College) *string { return c.StudentFacultyRatio }),
	textField("admissionsSelectivity", func(c *types.College) *string { return c.AdmissionsSelectivity }),
	textField("testPolicy", func(c *types.College) *string { return c.TestPolicy }),
	floatField("retentionRate", func(c *types.College) *float64 { return c.RetentionRate }),
	floatField("graduationRate4yr", func(c *types.College) *float64 { return c.GraduationRate4yr }),
	floatField("graduationRate6yr", func(c *types.College) *float64 { return c.GraduationRate6yr }),
	intField("medianEarnings10yr", func(c *types.College) *int { return c.MedianEarnings10yr }),
	intField("totalApplicants", func(c *types.College) *int { return c.TotalApplicants }),
	intField("totalAdmitted", func(c *types.College) *int { return c.TotalAdmitted }),
	intField("totalEnrolled", func(c *types.College) *int { return c.TotalEnrolled }),
	floatField("yieldRate", func(c *types.College) *float64 { return c.YieldRate }),
	intField("earlyDecisionApplied", func(c *types.College) *int { return c.EarlyDecisionApplied }),
	intField("earlyDecisionAdmitted", func(c *types.College) *int { return c.EarlyDecisionAdmitted }),
	floatField("earlyDecisionAdmitRate", func(c *types.College) *float64 { return c.EarlyDecisionAdmitRate }),
	intField("earlyActionApplied", func(c *types.College) *int { return c.EarlyActionApplied }),
	intField("earlyActionAdmitted", func(c *types.College) *int { return c.EarlyActionAdmitted }),
	floatField("earlyActionAdmitRate", func(c *types.College) *float64 { return c.EarlyActionAdmitRate }),
	textField("earlyActionType", func(c *types.College) *string { return c.EarlyActionType }),
	intField("regularDecisionApplied", func(c *types.College) *int { return c.RegularDecisionApplied }),
	intField("regularDecisionAdmitted", func(c *types.College) *int { return c.RegularDecisionAdmitted }),
	floatField("regularDecisionAdmitRate", func(c *types.College) *float64 { return c.RegularDecisionAdmitRate }),
	documentField("satScores", schemas.SATScores, func(c *types.College) *string { return c.SATScores }),
	documentField("actScores", schemas.ACTScores, func(c *types.College) *string { return c.ACTScores }),
	textField("gpaDistribution", func(c *types.College) *string { return c.GPADistribution }),
	documentField("popularMajors", schemas.PopularMajors, func(c *types.College) *string { return c.PopularMajors }),
	documentField("admissionConsiderations", schemas.AdmissionConsiderations, func(c *types.College) *string { return c.AdmissionConsiderations }),
	documentField("raceEthnicity", schemas.RaceEthnicity, func(c *types.College) *string { return c.RaceEthnicity }),
	documentField("genderDistribution", schemas.GenderDistribution, func(c *types.College) *string { return c.GenderDistribution }),
	textField("description", func(c *types.College) *string { return c.Description }),
	textField("website", func(c *types.College) *string { return c.Website }),
	intField("applicationFee", func(c *types.College) *int { return c.ApplicationFee }),
	textField("rdDeadline", func(c *types.College) *string { return c.RDDeadline }),
	textField("edDeadline", func(c *types.College) *string { return c.EDDeadline }),
	textField("eaDeadline", func(c *types.College) *string { return c.EADeadline }),
	boolField("fafsaRequired", func(c *types.College) *bool { return c.FAFSARequired }),
	boolField("cssProfileRequired", func(c *types.College) *bool { return c.CSSProfileRequired }),
	intField("averageNetPrice", func(c *types.College) *int { return c.AverageNetPrice }),
	textField("financialAidDeadline", func(c *types.College) *string { return c.FinancialAidDeadline }),
	floatField("outOfStatePercent", func(c *types.College) *float64 { return c.OutOfStatePercent }),
	textField("athletics", func(c *types.College) *string { return c.Athletics }),
	textField("primaryColor", func(c *types.College) *string { return c.PrimaryColor }),
	textField("secondaryColor", func(c *types.College) *string { return c.SecondaryColor }),
)

func indexFields(specs ...FieldSpec) map[string]FieldSpec {
	table := make(map[string]FieldSpec, len(specs))
	for _, spec := range specs {
		table[spec.Name] = spec
	}
	return table
}

// LookupField returns the accessor for a college column name.
func LookupField(name string) (FieldSpec, bool) {
	spec, ok := fieldTable[name]
	return spec, ok
}

// FieldNames returns every known column name, sorted.
func FieldNames() []string {
	names := make([]string, 0, len(fieldTable))
	for name := range fieldTable {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// resolveFields maps names to accessors, failing on the first unknown name.
func resolveFields(list string, names []string) ([]FieldSpec, error) {
	specs := make([]FieldSpec, 0, len(names))
	for _, name := range names {
		spec, ok := fieldTable[name]
		if !ok {
			return nil, &UnknownFieldError{List: list, Field: name}
		}
		specs = append(specs, spec)
	}
	return specs, nil
}
