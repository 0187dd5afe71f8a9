// Package types provides type definitions for structured data used throughout the college-directory system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// College is one row of the college table. Every column except the identity
// columns is nullable, so scalars are pointers; nil means "not recorded".
// Sub-document columns (SAT/ACT scores, majors, admission factors, demographics)
// hold serialized JSON text and are parsed on demand.
type College struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	Location string `json:"location"`

	Setting                    *string  `json:"setting"`
	InstitutionalSector        *string  `json:"institutionalSector"`
	UndergraduateEnrollment    *int     `json:"undergraduateEnrollment"`
	StudentsAdmittedPercent    *float64 `json:"studentsAdmittedPercent"`
	CostOfAttendanceInState    *int     `json:"costOfAttendanceInState"`
	CostOfAttendanceOutOfState *int     `json:"costOfAttendanceOutOfState"`
	StudentFacultyRatio        *string  `json:"studentFacultyRatio"`
	AdmissionsSelectivity      *string  `json:"admissionsSelectivity"`
	TestPolicy                 *string  `json:"testPolicy"`

	// Outcomes
	RetentionRate      *float64 `json:"retentionRate"`
	GraduationRate4yr  *float64 `json:"graduationRate4yr"`
	GraduationRate6yr  *float64 `json:"graduationRate6yr"`
	MedianEarnings10yr *int     `json:"medianEarnings10yr"`

	// Admissions funnel
	TotalApplicants *int     `json:"totalApplicants"`
	TotalAdmitted   *int     `json:"totalAdmitted"`
	TotalEnrolled   *int     `json:"totalEnrolled"`
	YieldRate       *float64 `json:"yieldRate"`

	EarlyDecisionApplied     *int     `json:"earlyDecisionApplied"`
	EarlyDecisionAdmitted    *int     `json:"earlyDecisionAdmitted"`
	EarlyDecisionAdmitRate   *float64 `json:"earlyDecisionAdmitRate"`
	EarlyActionApplied       *int     `json:"earlyActionApplied"`
	EarlyActionAdmitted      *int     `json:"earlyActionAdmitted"`
	EarlyActionAdmitRate     *float64 `json:"earlyActionAdmitRate"`
	EarlyActionType          *string  `json:"earlyActionType"` // EA, SCEA or REA
	RegularDecisionApplied   *int     `json:"regularDecisionApplied"`
	RegularDecisionAdmitted  *int     `json:"regularDecisionAdmitted"`
	RegularDecisionAdmitRate *float64 `json:"regularDecisionAdmitRate"`

	// Serialized sub-documents
	SATScores               *string `json:"satScores"`
	ACTScores               *string `json:"actScores"`
	GPADistribution         *string `json:"gpaDistribution"`
	PopularMajors           *string `json:"popularMajors"`
	AdmissionConsiderations *string `json:"admissionConsiderations"`
	RaceEthnicity           *string `json:"raceEthnicity"`
	GenderDistribution      *string `json:"genderDistribution"`

	Description *string `json:"description"`
	Website     *string `json:"website"`

	// Deadlines and aid
	ApplicationFee       *int    `json:"applicationFee"`
	RDDeadline           *string `json:"rdDeadline"`
	EDDeadline           *string `json:"edDeadline"`
	EADeadline           *string `json:"eaDeadline"`
	FAFSARequired        *bool   `json:"fafsaRequired"`
	CSSProfileRequired   *bool   `json:"cssProfileRequired"`
	AverageNetPrice      *int    `json:"averageNetPrice"`
	FinancialAidDeadline *string `json:"financialAidDeadline"`

	OutOfStatePercent *float64 `json:"outOfStatePercent"`
	Athletics         *string  `json:"athletics"`
	PrimaryColor      *string  `json:"primaryColor"`
	SecondaryColor    *string  `json:"secondaryColor"`
}

// Early action types stored in EarlyActionType.
const (
	EarlyActionRegular      = "EA"
	EarlyActionSingleChoice = "SCEA"
	EarlyActionRestrictive  = "REA"
)

// SectorPublic is the institutionalSector value for public institutions.
const SectorPublic = "Public"

// StringValue dereferences s, returning "" for nil.
func StringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
