package db

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/jonathan/college-directory/internal/types"
)

// collegeTable is the Prisma-managed table name; it is case-sensitive in PostgreSQL.
const collegeTable = `"College"`

// ColumnKind is the storage type of a college column.
type ColumnKind int

// Column kinds.
const (
	KindText ColumnKind = iota
	KindInt
	KindFloat
	KindBool
)

func (k ColumnKind) String() string {
	switch k {
	case KindInt:
		return "integer"
	case KindFloat:
		return "number"
	case KindBool:
		return "boolean"
	default:
		return "text"
	}
}

type column struct {
	name string
	kind ColumnKind
	// target returns a scan destination inside c.
	target func(c *types.College) any
}

func col[T any](name string, kind ColumnKind, field func(c *types.College) *T) column {
	return column{name: name, kind: kind, target: func(c *types.College) any { return field(c) }}
}

var collegeColumns = []column{
	col("id", KindText, func(c *types.College) *string { return &c.ID }),
	col("name", KindText, func(c *types.College) *string { return &c.Name }),
	col("slug", KindText, func(c *types.College) *string { return &c.Slug }),
	col("location", KindText, func(c *types.College) *string { return &c.Location }),
	col("setting", KindText, func(c *types.College) **string { return &c.Setting }),
	col("institutionalSector", KindText, func(c *types.College) **string { return &c.InstitutionalSector }),
	col("undergraduateEnrollment", KindInt, func(c *types.College) **int { return &c.UndergraduateEnrollment }),
	col("studentsAdmittedPercent", KindFloat, func(c *types.College) **float64 { return &c.StudentsAdmittedPercent }),
	col("costOfAttendanceInState", KindInt, func(c *types.College) **int { return &c.CostOfAttendanceInState }),
	col("costOfAttendanceOutOfState", KindInt, func(c *types.College) **int { return &c.CostOfAttendanceOutOfState }),
	col("studentFacultyRatio", KindText, func(c *types.College) **string { return &c.StudentFacultyRatio }),
	col("admissionsSelectivity", KindText, func(c *types.College) **string { return &c.AdmissionsSelectivity }),
	col("testPolicy", KindText, func(c *types.College) **string { return &c.TestPolicy }),
	col("retentionRate", KindFloat, func(c *types.College) **float64 { return &c.RetentionRate }),
	col("graduationRate4yr", KindFloat, func(c *types.College) **float64 { return &c.GraduationRate4yr }),
	col("graduationRate6yr", KindFloat, func(c *types.College) **float64 { return &c.GraduationRate6yr }),
	col("medianEarnings10yr", KindInt, func(c *types.College) **int { return &c.MedianEarnings10yr }),
	col("totalApplicants", KindInt, func(c *types.College) **int { return &c.TotalApplicants }),
	col("totalAdmitted", KindInt, func(c *types.College) **int { return &c.TotalAdmitted }),
	col("totalEnrolled", KindInt, func(c *types.College) **int { return &c.TotalEnrolled }),
	col("yieldRate", KindFloat, func(c *types.College) **float64 { return &c.YieldRate }),
	col("earlyDecisionApplied", KindInt, func(c *types.College) **int { return &c.EarlyDecisionApplied }),
	col("earlyDecisionAdmitted", KindInt, func(c *types.College) **int { return &c.EarlyDecisionAdmitted }),
	col("earlyDecisionAdmitRate", KindFloat, func(c *types.College) **float64 { return &c.EarlyDecisionAdmitRate }),
	col("earlyActionApplied", KindInt, func(c *types.College) **int { return &c.EarlyActionApplied }),
	col("earlyActionAdmitted", KindInt, func(c *types.College) **int { return &c.EarlyActionAdmitted }),
	col("earlyActionAdmitRate", KindFloat, func(c *types.College) **float64 { return &c.EarlyActionAdmitRate }),
	col("earlyActionType", KindText, func(c *types.College) **string { return &c.EarlyActionType }),
	col("regularDecisionApplied", KindInt, func(c *types.College) **int { return &c.RegularDecisionApplied }),
	col("regularDecisionAdmitted", KindInt, func(c *types.College) **int { return &c.RegularDecisionAdmitted }),
	col("regularDecisionAdmitRate", KindFloat, func(c *types.College) **float64 { return &c.RegularDecisionAdmitRate }),
	col("satScores", KindText, func(c *types.College) **string { return &c.SATScores }),
	col("actScores", KindText, func(c *types.College) **string { return &c.ACTScores }),
	col("gpaDistribution", KindText, func(c *types.College) **string { return &c.GPADistribution }),
	col("popularMajors", KindText, func(c *types.College) **string { return &c.PopularMajors }),
	col("admissionConsiderations", KindText, func(c *types.College) **string { return &c.AdmissionConsiderations }),
	col("raceEthnicity", KindText, func(c *types.College) **string { return &c.RaceEthnicity }),
	col("genderDistribution", KindText, func(c *types.College) **string { return &c.GenderDistribution }),
	col("description", KindText, func(c *types.College) **string { return &c.Description }),
	col("website", KindText, func(c *types.College) **string { return &c.Website }),
	col("applicationFee", KindInt, func(c *types.College) **int { return &c.ApplicationFee }),
	col("rdDeadline", KindText, func(c *types.College) **string { return &c.RDDeadline }),
	col("edDeadline", KindText, func(c *types.College) **string { return &c.EDDeadline }),
	col("eaDeadline", KindText, func(c *types.College) **string { return &c.EADeadline }),
	col("fafsaRequired", KindBool, func(c *types.College) **bool { return &c.FAFSARequired }),
	col("cssProfileRequired", KindBool, func(c *types.College) **bool { return &c.CSSProfileRequired }),
	col("averageNetPrice", KindInt, func(c *types.College) **int { return &c.AverageNetPrice }),
	col("financialAidDeadline", KindText, func(c *types.College) **string { return &c.FinancialAidDeadline }),
	col("outOfStatePercent", KindFloat, func(c *types.College) **float64 { return &c.OutOfStatePercent }),
	col("athletics", KindText, func(c *types.College) **string { return &c.Athletics }),
	col("primaryColor", KindText, func(c *types.College) **string { return &c.PrimaryColor }),
	col("secondaryColor", KindText, func(c *types.College) **string { return &c.SecondaryColor }),
}

var columnIndex = func() map[string]column {
	index := make(map[string]column, len(collegeColumns))
	for _, c := range collegeColumns {
		index[c.name] = c
	}
	return index
}()

// identity columns are required on insert and cannot be cleared.
var requiredColumns = []string{"name", "slug", "location"}

func quote(name string) string {
	return `"` + name + `"`
}

// selectList is the quoted column list shared by every SELECT.
var selectList = func() string {
	names := make([]string, len(collegeColumns))
	for i, c := range collegeColumns {
		names[i] = quote(c.name)
	}
	return strings.Join(names, ", ")
}()

func scanTargets(c *types.College) []any {
	targets := make([]any, len(collegeColumns))
	for i, col := range collegeColumns {
		targets[i] = col.target(c)
	}
	return targets
}

// ColumnNames returns every writable column name, sorted.
func ColumnNames() []string {
	names := make([]string, 0, len(collegeColumns))
	for _, c := range collegeColumns {
		if c.name != "id" {
			names = append(names, c.name)
		}
	}
	sort.Strings(names)
	return names
}

// NormalizeFields checks field names against the college columns and coerces
// each value to the column's storage type. Maps and lists destined for text
// columns are serialized to JSON text. A nil value clears the column.
func NormalizeFields(fields map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(fields))
	for name, value := range fields {
		c, ok := columnIndex[name]
		if !ok || name == "id" {
			return nil, &UnknownColumnError{Column: name}
		}
		coerced, err := coerce(c.kind, value)
		if err != nil {
			return nil, &FieldTypeError{Column: name, Kind: c.kind, Value: value, Cause: err}
		}
		out[name] = coerced
	}
	return out, nil
}

func coerce(kind ColumnKind, value any) (any, error) {
	if value == nil {
		return nil, nil
	}
	switch kind {
	case KindText:
		switch v := value.(type) {
		case string:
			return v, nil
		case map[string]any, []any, map[any]any:
			encoded, err := json.Marshal(normalizeJSON(v))
			if err != nil {
				return nil, err
			}
			return string(encoded), nil
		}
	case KindInt:
		switch v := value.(type) {
		case int:
			return v, nil
		case int64:
			return int(v), nil
		case float64:
			if v == math.Trunc(v) {
				return int(v), nil
			}
		}
	case KindFloat:
		switch v := value.(type) {
		case int:
			return float64(v), nil
		case int64:
			return float64(v), nil
		case float64:
			return v, nil
		}
	case KindBool:
		if v, ok := value.(bool); ok {
			return v, nil
		}
	}
	return nil, fmt.Errorf("unsupported value %T", value)
}

// normalizeJSON converts map[any]any nodes, which encoding/json rejects, to map[string]any.
func normalizeJSON(v any) any {
	switch node := v.(type) {
	case map[any]any:
		out := make(map[string]any, len(node))
		for k, val := range node {
			out[fmt.Sprint(k)] = normalizeJSON(val)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(node))
		for k, val := range node {
			out[k] = normalizeJSON(val)
		}
		return out
	case []any:
		out := make([]any, len(node))
		for i, val := range node {
			out[i] = normalizeJSON(val)
		}
		return out
	default:
		return v
	}
}

// sortedFields returns normalized field names in a stable order with their values.
func sortedFields(fields map[string]any) ([]string, []any) {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	values := make([]any, len(names))
	for i, name := range names {
		values[i] = fields[name]
	}
	return names, values
}

func missingRequired(fields map[string]any) error {
	for _, name := range requiredColumns {
		v, ok := fields[name].(string)
		if !ok || v == "" {
			return fmt.Errorf("college %s is required", name)
		}
	}
	return nil
}

// placeholder renders the i-th (zero-based) bind parameter.
type placeholder func(i int) string

func dollarPlaceholder(i int) string   { return fmt.Sprintf("$%d", i+1) }
func questionPlaceholder(_ int) string { return "?" }

func buildUpdate(names []string, ph placeholder) string {
	sets := make([]string, len(names))
	for i, name := range names {
		sets[i] = quote(name) + " = " + ph(i)
	}
	return fmt.Sprintf(`UPDATE %s SET %s WHERE "slug" = %s`, collegeTable, strings.Join(sets, ", "), ph(len(names)))
}

func buildInsert(names []string, ph placeholder) string {
	cols := make([]string, len(names))
	params := make([]string, len(names))
	for i, name := range names {
		cols[i] = quote(name)
		params[i] = ph(i)
	}
	return fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`, collegeTable, strings.Join(cols, ", "), strings.Join(params, ", "))
}
