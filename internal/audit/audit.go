// Package audit implements the read-only data-quality reports that complement
// scoring: missing-field counts, missing test scores, incomplete demographics
// and early-round policy checks.
package audit

import (
	"sort"

	"github.com/jonathan/college-directory/internal/reference"
	"github.com/jonathan/college-directory/internal/types"
	"github.com/jonathan/college-directory/internal/validation"
)

// FieldCount is the number of colleges missing one field.
type FieldCount struct {
	Field string `json:"field"`
	Count int    `json:"count"`
}

// MissingFieldsReport counts missing important fields across non-international colleges.
type MissingFieldsReport struct {
	Colleges int          `json:"colleges"`
	Missing  []FieldCount `json:"missing"`
}

// MissingFields counts, for each named field, the non-international colleges
// where it is null or empty. Fields nobody is missing are omitted; the rest
// are sorted by count descending, then by name.
func MissingFields(colleges []types.College, ref *reference.Data, fields []string) (*MissingFieldsReport, error) {
	specs := make([]validation.FieldSpec, 0, len(fields))
	for _, name := range fields {
		spec, ok := validation.LookupField(name)
		if !ok {
			return nil, &validation.UnknownFieldError{List: "fields", Field: name}
		}
		specs = append(specs, spec)
	}

	report := &MissingFieldsReport{Missing: []FieldCount{}}
	counts := make([]int, len(specs))
	for i := range colleges {
		c := &colleges[i]
		if ref.International.Contains(c.Slug) {
			continue
		}
		report.Colleges++
		for j, spec := range specs {
			if !rawPresent(spec.Name, c) {
				counts[j]++
			}
		}
	}

	for j, spec := range specs {
		if counts[j] > 0 {
			report.Missing = append(report.Missing, FieldCount{Field: spec.Name, Count: counts[j]})
		}
	}
	sort.SliceStable(report.Missing, func(i, j int) bool {
		if report.Missing[i].Count != report.Missing[j].Count {
			return report.Missing[i].Count > report.Missing[j].Count
		}
		return report.Missing[i].Field < report.Missing[j].Field
	})
	return report, nil
}

// rawPresent is the storage-level presence test: null or empty is missing,
// but a malformed sub-document still counts as present.
func rawPresent(name string, c *types.College) bool {
	if raw, ok := documentText(name, c); ok {
		return raw != nil && *raw != ""
	}
	spec, _ := validation.LookupField(name)
	return spec.Present(c)
}

func documentText(name string, c *types.College) (*string, bool) {
	switch name {
	case "satScores":
		return c.SATScores, true
	case "actScores":
		return c.ACTScores, true
	case "popularMajors":
		return c.PopularMajors, true
	case "admissionConsiderations":
		return c.AdmissionConsiderations, true
	case "raceEthnicity":
		return c.RaceEthnicity, true
	case "genderDistribution":
		return c.GenderDistribution, true
	}
	return nil, false
}

// MissingScore is a college with no SAT scores on record.
type MissingScore struct {
	Slug                    string   `json:"slug"`
	Name                    string   `json:"name"`
	StudentsAdmittedPercent *float64 `json:"studentsAdmittedPercent"`
	TestPolicy              *string  `json:"testPolicy"`
}

// MissingScores lists non-international colleges without SAT scores, most
// selective first. Colleges with no acceptance rate sort last.
func MissingScores(colleges []types.College, ref *reference.Data) []MissingScore {
	missing := []MissingScore{}
	for i := range colleges {
		c := &colleges[i]
		if c.SATScores != nil && *c.SATScores != "" {
			continue
		}
		if ref.International.Contains(c.Slug) {
			continue
		}
		missing = append(missing, MissingScore{
			Slug:                    c.Slug,
			Name:                    c.Name,
			StudentsAdmittedPercent: c.StudentsAdmittedPercent,
			TestPolicy:              c.TestPolicy,
		})
	}
	sort.SliceStable(missing, func(i, j int) bool {
		a, b := missing[i].StudentsAdmittedPercent, missing[j].StudentsAdmittedPercent
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return *a < *b
		}
	})
	return missing
}

// IncompleteRace is a college whose race/ethnicity breakdown lacks canonical groups.
type IncompleteRace struct {
	Slug     string `json:"slug"`
	Location string `json:"location"`
	Data     string `json:"data"`
	// Missing is empty when the data could not be parsed at all.
	Missing []string `json:"missing"`
}

// IncompleteRaceData lists colleges with race/ethnicity data that is
// malformed or missing one of the four canonical groups.
func IncompleteRaceData(colleges []types.College) []IncompleteRace {
	incomplete := []IncompleteRace{}
	for i := range colleges {
		c := &colleges[i]
		if c.RaceEthnicity == nil || *c.RaceEthnicity == "" {
			continue
		}
		entry := IncompleteRace{Slug: c.Slug, Location: c.Location, Data: *c.RaceEthnicity, Missing: []string{}}
		race, ok := validation.DecodeRaceEthnicity(c.RaceEthnicity)
		if ok {
			missing := validation.MissingRaceGroups(race)
			if len(missing) == 0 {
				continue
			}
			entry.Missing = missing
		}
		incomplete = append(incomplete, entry)
	}
	return incomplete
}

// EarlyActionGroups partitions colleges with an early-action deadline by plan type.
type EarlyActionGroups struct {
	SingleChoice []types.College `json:"scea"`
	Restrictive  []types.College `json:"rea"`
	// Regular holds type EA and colleges with no recorded type.
	Regular []types.College `json:"regular"`
	// Other holds unrecognized type values.
	Other []types.College `json:"other"`
}

// GroupEarlyAction groups colleges that have an EA deadline, each group sorted by name.
func GroupEarlyAction(colleges []types.College) *EarlyActionGroups {
	withEA := make([]types.College, 0, len(colleges))
	for _, c := range colleges {
		if c.EADeadline != nil {
			withEA = append(withEA, c)
		}
	}
	sort.SliceStable(withEA, func(i, j int) bool { return withEA[i].Name < withEA[j].Name })

	groups := &EarlyActionGroups{}
	for _, c := range withEA {
		switch types.StringValue(c.EarlyActionType) {
		case types.EarlyActionSingleChoice:
			groups.SingleChoice = append(groups.SingleChoice, c)
		case types.EarlyActionRestrictive:
			groups.Restrictive = append(groups.Restrictive, c)
		case types.EarlyActionRegular, "":
			groups.Regular = append(groups.Regular, c)
		default:
			groups.Other = append(groups.Other, c)
		}
	}
	return groups
}
