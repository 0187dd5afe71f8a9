package types

import "time"

// Severity distinguishes hard errors from quality warnings.
type Severity string

// Severity values.
const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Category tags an issue with the rule that produced it. Reports group by
// category instead of parsing message text.
type Category string

// Issue categories, one per rule.
const (
	CategoryInternational          Category = "international"
	CategoryMissingRequired        Category = "missing_required_field"
	CategoryMissingImportant       Category = "missing_important_field"
	CategoryEliteMissing           Category = "elite_missing_field"
	CategoryOutOfRange             Category = "out_of_range"
	CategorySATScores              Category = "sat_scores"
	CategoryACTScores              Category = "act_scores"
	CategoryPopularMajors          Category = "popular_majors"
	CategoryAdmissionFactors       Category = "admission_considerations"
	CategoryGenderDistribution     Category = "gender_distribution"
	CategoryRaceEthnicity          Category = "race_ethnicity"
	CategoryAcceptanceRateDrift    Category = "acceptance_rate_drift"
	CategorySectorDrift            Category = "sector_drift"
	CategoryTestPolicyDrift        Category = "test_policy_drift"
	CategoryAcceptanceInconsistent Category = "acceptance_rate_inconsistent"
	CategoryEDRateInconsistent     Category = "ed_rate_inconsistent"
	CategoryCostDifferential       Category = "cost_differential"
	CategoryDescription            Category = "description_quality"
	CategoryWebsite                Category = "website_format"
	CategorySelectivity            Category = "selectivity_mismatch"
)

var categoryLabels = map[Category]string{
	CategoryInternational:          "International school",
	CategoryMissingRequired:        "Missing required field",
	CategoryMissingImportant:       "Missing important field",
	CategoryEliteMissing:           "Elite school missing field",
	CategoryOutOfRange:             "Value out of range",
	CategorySATScores:              "SAT scores",
	CategoryACTScores:              "ACT scores",
	CategoryPopularMajors:          "Popular majors",
	CategoryAdmissionFactors:       "Admission considerations",
	CategoryGenderDistribution:     "Gender distribution",
	CategoryRaceEthnicity:          "Race/ethnicity",
	CategoryAcceptanceRateDrift:    "Acceptance rate mismatch",
	CategorySectorDrift:            "Sector mismatch",
	CategoryTestPolicyDrift:        "Test policy may be outdated",
	CategoryAcceptanceInconsistent: "Acceptance rate inconsistent",
	CategoryEDRateInconsistent:     "ED admit rate inconsistent",
	CategoryCostDifferential:       "Public school cost",
	CategoryDescription:            "Description quality",
	CategoryWebsite:                "Website URL",
	CategorySelectivity:            "Selectivity mismatch",
}

// Label returns the human-readable name used in summary tables.
func (c Category) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}

// Issue is one finding produced by a validation rule.
// Deduction is the number of points the finding cost; rules that charge once
// per sub-document attach the deduction to the first issue only.
type Issue struct {
	Severity  Severity `json:"severity"`
	Category  Category `json:"category"`
	Field     string   `json:"field,omitempty"`
	Message   string   `json:"message"`
	Deduction int      `json:"deduction"`
}

// Verdict is the validation outcome for one college.
type Verdict struct {
	CollegeName string   `json:"collegeName"`
	Slug        string   `json:"slug"`
	Errors      []string `json:"errors"`
	Warnings    []string `json:"warnings"`
	Score       int      `json:"score"` // 0-100
	Issues      []Issue  `json:"issues"`
}

// ValidationReport is the aggregate output of a batch validation run.
type ValidationReport struct {
	RunID          string    `json:"runId"`
	GeneratedAt    time.Time `json:"generatedAt"`
	Threshold      int       `json:"threshold"`
	TotalColleges  int       `json:"totalColleges"`
	PassedColleges int       `json:"passedColleges"`
	FailedColleges int       `json:"failedColleges"`
	AverageScore   float64   `json:"averageScore"`
	Results        []Verdict `json:"results"`
}

// Passed reports whether the run's mean score meets the threshold.
func (r *ValidationReport) Passed() bool {
	return r.TotalColleges > 0 && r.AverageScore >= float64(r.Threshold)
}
