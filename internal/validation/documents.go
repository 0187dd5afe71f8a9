package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/cases"

	"github.com/jonathan/college-directory/internal/schemas"
	"github.com/jonathan/college-directory/internal/types"
)

type documentStatus int

const (
	documentAbsent documentStatus = iota
	documentUnparseable
	documentWrongShape
	documentValid
)

type documentInspection struct {
	status documentStatus
	detail string // first schema violation when status is documentWrongShape
}

// inspectDocument classifies serialized sub-document text without decoding it.
func inspectDocument(raw *string, schema string) documentInspection {
	if raw == nil || *raw == "" {
		return documentInspection{status: documentAbsent}
	}
	text := strings.TrimSpace(*raw)
	if !json.Valid([]byte(text)) || text == "null" {
		return documentInspection{status: documentUnparseable}
	}
	if err := schemas.ValidateSubdocument(schema, text); err != nil {
		var validationErr *schemas.ValidationError
		if errors.As(err, &validationErr) {
			return documentInspection{status: documentWrongShape, detail: validationErr.First()}
		}
		return documentInspection{status: documentWrongShape, detail: err.Error()}
	}
	return documentInspection{status: documentValid}
}

// decodeDocument decodes raw into out when it has the expected shape.
func decodeDocument(raw *string, schema string, out any) documentInspection {
	inspection := inspectDocument(raw, schema)
	if inspection.status != documentValid {
		return inspection
	}
	if err := json.Unmarshal([]byte(*raw), out); err != nil {
		return documentInspection{status: documentWrongShape, detail: err.Error()}
	}
	return inspection
}

// shapeProblem renders a non-valid inspection as a warning message, or "" when valid.
func shapeProblem(label string, inspection documentInspection) string {
	switch inspection.status {
	case documentAbsent, documentUnparseable:
		return label + " not parseable or missing"
	case documentWrongShape:
		return fmt.Sprintf("%s not in expected format (%s)", label, inspection.detail)
	default:
		return ""
	}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatRange(r *types.Range) string {
	return formatNumber(r.Min) + "-" + formatNumber(r.Max)
}

// checkSection appends bound and ordering problems for one score range.
// A nil bound skips the domain check.
func checkSection(problems []string, label string, r *types.Range, min, max *float64) []string {
	if r == nil {
		return problems
	}
	if min != nil && max != nil && (r.Min < *min || r.Max > *max) {
		problems = append(problems, fmt.Sprintf("%s out of range: %s", label, formatRange(r)))
	}
	if r.Min > r.Max {
		problems = append(problems, label+" min > max")
	}
	return problems
}

func (v *Validator) satProblems(raw *string) []string {
	var sat types.SATScores
	inspection := decodeDocument(raw, schemas.SATScores, &sat)
	if msg := shapeProblem("SAT scores", inspection); msg != "" {
		return []string{msg}
	}

	var problems []string
	if sat.ReadingWriting == nil && sat.Math == nil && sat.Total == nil {
		problems = append(problems, "SAT scores missing all score ranges")
	}
	section := v.ref.Bounds.SATSection
	total := v.ref.Bounds.SATTotal
	problems = checkSection(problems, "SAT R&W", sat.ReadingWriting, &section.Min, &section.Max)
	problems = checkSection(problems, "SAT Math", sat.Math, &section.Min, &section.Max)
	problems = checkSection(problems, "SAT total", sat.Total, &total.Min, &total.Max)
	return problems
}

func (v *Validator) actProblems(raw *string) []string {
	var act types.ACTScores
	inspection := decodeDocument(raw, schemas.ACTScores, &act)
	if msg := shapeProblem("ACT scores", inspection); msg != "" {
		return []string{msg}
	}

	var problems []string
	if act.Composite == nil {
		problems = append(problems, "ACT composite scores missing")
	}
	composite := v.ref.Bounds.ACTComposite
	problems = checkSection(problems, "ACT composite", act.Composite, &composite.Min, &composite.Max)
	problems = checkSection(problems, "ACT English", act.English, nil, nil)
	problems = checkSection(problems, "ACT Math", act.Math, nil, nil)
	return problems
}

const (
	minPopularMajors = 3
	maxPopularMajors = 15
)

func popularMajorsProblems(raw *string) []string {
	var majors types.PopularMajors
	inspection := decodeDocument(raw, schemas.PopularMajors, &majors)
	if inspection.status == documentWrongShape && !strings.HasPrefix(strings.TrimSpace(*raw), "[") {
		return []string{"Popular majors is not an array"}
	}
	if msg := shapeProblem("Popular majors", inspection); msg != "" {
		return []string{msg}
	}

	switch {
	case len(majors) < minPopularMajors:
		return []string{fmt.Sprintf("Only %d popular majors listed (should have at least %d)", len(majors), minPopularMajors)}
	case len(majors) > maxPopularMajors:
		return []string{fmt.Sprintf("Too many popular majors listed (%d)", len(majors))}
	}
	return nil
}

type admissionFactor struct {
	name string
	keys []string // case-folded spellings that satisfy the factor
}

var admissionFactors = []admissionFactor{
	{name: "Academic GPA", keys: []string{"academic gpa"}},
	{name: "Rigor of secondary school record", keys: []string{"rigor of secondary school record"}},
	{name: "Standardized test scores", keys: []string{"standardized test scores"}},
	{name: "Application essay", keys: []string{"application essay"}},
	{name: "Recommendation(s)", keys: []string{"recommendation(s)", "recommendations"}},
	{name: "Extracurricular activities", keys: []string{"extracurricular activities"}},
}

func admissionConsiderationsProblems(raw *string) []string {
	var considerations types.AdmissionConsiderations
	inspection := decodeDocument(raw, schemas.AdmissionConsiderations, &considerations)
	if msg := shapeProblem("Admission considerations", inspection); msg != "" {
		return []string{msg}
	}

	fold := cases.Fold()
	folded := make(map[string]bool, len(considerations))
	for factor := range considerations {
		folded[fold.String(factor)] = true
	}

	var problems []string
	var missing []string
	for _, factor := range admissionFactors {
		found := false
		for _, key := range factor.keys {
			if folded[key] {
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, factor.name)
		}
	}
	if len(missing) > 0 {
		problems = append(problems, "Missing admission factors: "+strings.Join(missing, ", "))
	}

	factors := make([]string, 0, len(considerations))
	for factor := range considerations {
		factors = append(factors, factor)
	}
	sort.Strings(factors)
	for _, factor := range factors {
		level := considerations[factor]
		if !validLevel(level) {
			problems = append(problems, fmt.Sprintf("Invalid level %q for factor %q", level, factor))
		}
	}
	return problems
}

func validLevel(level string) bool {
	for _, l := range types.ImportanceLevels {
		if l == level {
			return true
		}
	}
	return false
}

const (
	minGenderTotal = 98.0
	maxGenderTotal = 102.0
)

func genderProblems(raw *string) []string {
	var gender types.GenderDistribution
	inspection := decodeDocument(raw, schemas.GenderDistribution, &gender)
	if msg := shapeProblem("Gender distribution", inspection); msg != "" {
		return []string{msg}
	}

	if gender.Women == nil || gender.Men == nil {
		return []string{"Missing women or men percentage"}
	}
	total := *gender.Women + *gender.Men
	if total < minGenderTotal || total > maxGenderTotal {
		return []string{fmt.Sprintf("Gender percentages don't add up (%s%%)", formatNumber(total))}
	}
	return nil
}

type raceGroup struct {
	name    string
	aliases []string
}

var raceGroups = []raceGroup{
	{name: "White", aliases: []string{"White"}},
	{name: "Asian", aliases: []string{"Asian"}},
	{name: "Hispanic", aliases: []string{"Hispanic", "Hispanic/Latino"}},
	{name: "Black", aliases: []string{"Black", "Black/African American"}},
}

// DecodeRaceEthnicity parses a raceEthnicity column. ok is false when the text
// is absent, malformed or not a group-to-percentage map.
func DecodeRaceEthnicity(raw *string) (types.RaceEthnicity, bool) {
	var race types.RaceEthnicity
	inspection := decodeDocument(raw, schemas.RaceEthnicity, &race)
	return race, inspection.status == documentValid
}

// MissingRaceGroups returns the canonical groups absent from race, in canonical order.
func MissingRaceGroups(race types.RaceEthnicity) []string {
	var missing []string
	for _, group := range raceGroups {
		found := false
		for _, alias := range group.aliases {
			if _, ok := race[alias]; ok {
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, group.name)
		}
	}
	return missing
}

func raceProblems(raw *string) []string {
	var race types.RaceEthnicity
	inspection := decodeDocument(raw, schemas.RaceEthnicity, &race)
	if msg := shapeProblem("Race/ethnicity", inspection); msg != "" {
		return []string{msg}
	}
	if missing := MissingRaceGroups(race); len(missing) > 0 {
		return []string{"Missing race/ethnicity groups: " + strings.Join(missing, ", ")}
	}
	return nil
}
