package types

// Range is an inclusive score band, typically the 25th–75th percentile.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// SATScores is the decoded satScores sub-document.
type SATScores struct {
	ReadingWriting   *Range   `json:"readingWriting,omitempty"`
	Math             *Range   `json:"math,omitempty"`
	Total            *Range   `json:"total,omitempty"`
	PercentSubmitted *float64 `json:"percentSubmitted,omitempty"`
}

// ACTScores is the decoded actScores sub-document.
type ACTScores struct {
	Composite        *Range   `json:"composite,omitempty"`
	English          *Range   `json:"english,omitempty"`
	Math             *Range   `json:"math,omitempty"`
	PercentSubmitted *float64 `json:"percentSubmitted,omitempty"`
}

// GenderDistribution is the decoded genderDistribution sub-document (percentages).
type GenderDistribution struct {
	Women *float64 `json:"women,omitempty"`
	Men   *float64 `json:"men,omitempty"`
}

// PopularMajors is the decoded popularMajors sub-document.
type PopularMajors []string

// AdmissionConsiderations maps a Common Data Set factor name to its importance level.
type AdmissionConsiderations map[string]string

// RaceEthnicity maps a demographic group to its enrollment percentage.
type RaceEthnicity map[string]float64

// Importance levels allowed in AdmissionConsiderations.
const (
	LevelVeryImportant = "Very Important"
	LevelImportant     = "Important"
	LevelConsidered    = "Considered"
	LevelNotConsidered = "Not Considered"
)

// ImportanceLevels lists the valid admission factor levels in display order.
var ImportanceLevels = []string{LevelVeryImportant, LevelImportant, LevelConsidered, LevelNotConsidered}
