package validation

import (
	"fmt"
	"math"
	"strings"

	"github.com/jonathan/college-directory/internal/types"
)

// Rule weights.
const (
	missingRequiredPenalty  = 5
	missingImportantPenalty = 2
	eliteMissingPenalty     = 1

	acceptanceRangePenalty = 10
	fieldRangePenalty      = 5

	satPenalty             = 2
	actPenalty             = 2
	majorsPenalty          = 1
	considerationsPenalty  = 2
	genderPenalty          = 1
	raceEthnicityPenalty   = 1
	acceptanceDriftPenalty = 10
	sectorDriftPenalty     = 5
	testPolicyDriftPenalty = 3

	acceptanceInconsistentPenalty = 3
	edRateInconsistentPenalty     = 2
	costInversionPenalty          = 3
	missingOutOfStatePenalty      = 2
	shortDescriptionPenalty       = 2
	criticalDescriptionPenalty    = 5
	websiteProtocolPenalty        = 1
	selectivityPenalty            = 2
)

const (
	// rateTolerance is the allowed gap, in percentage points, between a stated
	// rate and the value it is compared with.
	rateTolerance = 2.0

	shortDescriptionLength    = 100
	criticalDescriptionLength = 50

	mostSelectiveBelow = 15.0
	verySelectiveBelow = 35.0

	selectivityMost = "Most Selective"
	selectivityVery = "Very Selective"
)

func (v *Validator) checkInternational(b *verdictBuilder, c *types.College) {
	for _, field := range v.international {
		if !field.Present(c) {
			b.errorf(types.CategoryMissingRequired, field.Name, missingRequiredPenalty, "Missing required field: %s", field.Name)
		}
	}
	b.warnf(types.CategoryInternational, "", 0, "International school - relaxed validation applied")
}

func (v *Validator) checkRequired(b *verdictBuilder, c *types.College) {
	for _, field := range v.required {
		if !field.Present(c) {
			b.errorf(types.CategoryMissingRequired, field.Name, missingRequiredPenalty, "Missing required field: %s", field.Name)
		}
	}
}

func (v *Validator) checkImportant(b *verdictBuilder, c *types.College) {
	for _, field := range v.important {
		if !field.Present(c) {
			b.warnf(types.CategoryMissingImportant, field.Name, missingImportantPenalty, "Missing important field: %s", field.Name)
		}
	}
}

var (
	earlyDecisionFields = []string{"earlyDecisionApplied", "earlyDecisionAdmitted", "earlyDecisionAdmitRate"}
	earlyActionFields   = []string{"earlyActionApplied", "earlyActionAdmitted", "earlyActionAdmitRate"}
	eliteAlwaysFields   = []string{"gpaDistribution", "primaryColor"}
)

// isElite reports whether the stated acceptance rate is set, non-zero and
// below the threshold. Negative rates count; the range rule reports them.
func (v *Validator) isElite(c *types.College) bool {
	rate := c.StudentsAdmittedPercent
	return rate != nil && *rate != 0 && *rate < v.ref.EliteThreshold
}

func (v *Validator) checkElite(b *verdictBuilder, c *types.College) {
	if !v.isElite(c) {
		return
	}
	var fields []string
	if !v.ref.SpecialAdmission.Contains(c.Slug) {
		if textPresent(c.EDDeadline) {
			fields = append(fields, earlyDecisionFields...)
		}
		if textPresent(c.EADeadline) {
			fields = append(fields, earlyActionFields...)
		}
	}
	fields = append(fields, eliteAlwaysFields...)

	for _, name := range fields {
		if !fieldTable[name].Present(c) {
			b.warnf(types.CategoryEliteMissing, name, eliteMissingPenalty, "Elite school missing field: %s", name)
		}
	}
}

func (v *Validator) checkRanges(b *verdictBuilder, c *types.College) {
	bounds := v.ref.Bounds
	if r := c.StudentsAdmittedPercent; r != nil && !bounds.StudentsAdmittedPercent.Contains(*r) {
		b.errorf(types.CategoryOutOfRange, "studentsAdmittedPercent", acceptanceRangePenalty,
			"Acceptance rate out of range: %s%%", formatNumber(*r))
	}
	if n := c.UndergraduateEnrollment; n != nil && !bounds.UndergraduateEnrollment.Contains(float64(*n)) {
		b.errorf(types.CategoryOutOfRange, "undergraduateEnrollment", fieldRangePenalty,
			"Enrollment out of range: %d", *n)
	}
	if n := c.CostOfAttendanceInState; n != nil && !bounds.CostOfAttendanceInState.Contains(float64(*n)) {
		b.errorf(types.CategoryOutOfRange, "costOfAttendanceInState", fieldRangePenalty,
			"In-state cost out of range: $%d", *n)
	}
	if r := c.RetentionRate; r != nil && !bounds.RetentionRate.Contains(*r) {
		b.errorf(types.CategoryOutOfRange, "retentionRate", fieldRangePenalty,
			"Retention rate out of range: %s%%", formatNumber(*r))
	}
	if r := c.GraduationRate4yr; r != nil && !bounds.GraduationRate4yr.Contains(*r) {
		b.errorf(types.CategoryOutOfRange, "graduationRate4yr", fieldRangePenalty,
			"4-year grad rate out of range: %s%%", formatNumber(*r))
	}
}

// checkDocuments runs the sub-document rules. Each populated sub-document is
// charged at most once however many problems it has.
func (v *Validator) checkDocuments(b *verdictBuilder, c *types.College) {
	if textPresent(c.SATScores) {
		b.warnGroup(types.CategorySATScores, "satScores", satPenalty, v.satProblems(c.SATScores))
	}
	if textPresent(c.ACTScores) {
		b.warnGroup(types.CategoryACTScores, "actScores", actPenalty, v.actProblems(c.ACTScores))
	}
	if textPresent(c.PopularMajors) {
		b.warnGroup(types.CategoryPopularMajors, "popularMajors", majorsPenalty, popularMajorsProblems(c.PopularMajors))
	}
	if textPresent(c.AdmissionConsiderations) {
		b.warnGroup(types.CategoryAdmissionFactors, "admissionConsiderations", considerationsPenalty,
			admissionConsiderationsProblems(c.AdmissionConsiderations))
	}
	if textPresent(c.GenderDistribution) {
		b.warnGroup(types.CategoryGenderDistribution, "genderDistribution", genderPenalty, genderProblems(c.GenderDistribution))
	}
	if textPresent(c.RaceEthnicity) {
		b.warnGroup(types.CategoryRaceEthnicity, "raceEthnicity", raceEthnicityPenalty, raceProblems(c.RaceEthnicity))
	}
}

func nullable(s *string) string {
	if s == nil {
		return "null"
	}
	return *s
}

func (v *Validator) checkKnownValues(b *verdictBuilder, c *types.College) {
	known, ok := v.ref.Known(c.Slug)
	if !ok {
		return
	}
	if known.StudentsAdmittedPercent != nil && c.StudentsAdmittedPercent != nil {
		expected, got := *known.StudentsAdmittedPercent, *c.StudentsAdmittedPercent
		if math.Abs(expected-got) > rateTolerance {
			b.errorf(types.CategoryAcceptanceRateDrift, "studentsAdmittedPercent", acceptanceDriftPenalty,
				"Acceptance rate mismatch: expected ~%s%%, got %s%%", formatNumber(expected), formatNumber(got))
		}
	}
	if textPresent(known.InstitutionalSector) && nullable(c.InstitutionalSector) != *known.InstitutionalSector {
		b.errorf(types.CategorySectorDrift, "institutionalSector", sectorDriftPenalty,
			"Sector mismatch: expected %s, got %s", *known.InstitutionalSector, nullable(c.InstitutionalSector))
	}
	if textPresent(known.TestPolicy) && (c.TestPolicy == nil || *c.TestPolicy != *known.TestPolicy) {
		b.warnf(types.CategoryTestPolicyDrift, "testPolicy", testPolicyDriftPenalty,
			"Test policy may be outdated: expected %s, got %s", *known.TestPolicy, nullable(c.TestPolicy))
	}
}

// nonZeroInt and nonZeroFloat mirror the "recorded and non-zero" guard used by
// the consistency rules.
func nonZeroInt(n *int) bool       { return n != nil && *n != 0 }
func nonZeroFloat(f *float64) bool { return f != nil && *f != 0 }

func percentOf(part, whole int) float64 {
	return float64(part) / float64(whole) * 100
}

func (v *Validator) checkConsistency(b *verdictBuilder, c *types.College) {
	if nonZeroInt(c.TotalApplicants) && nonZeroInt(c.TotalAdmitted) && nonZeroFloat(c.StudentsAdmittedPercent) {
		calculated := percentOf(*c.TotalAdmitted, *c.TotalApplicants)
		stated := *c.StudentsAdmittedPercent
		if math.Abs(calculated-stated) > rateTolerance {
			b.warnf(types.CategoryAcceptanceInconsistent, "studentsAdmittedPercent", acceptanceInconsistentPenalty,
				"Acceptance rate inconsistent: stated %s%%, calculated %.1f%%", formatNumber(stated), calculated)
		}
	}

	if nonZeroInt(c.EarlyDecisionApplied) && nonZeroInt(c.EarlyDecisionAdmitted) && nonZeroFloat(c.EarlyDecisionAdmitRate) {
		calculated := percentOf(*c.EarlyDecisionAdmitted, *c.EarlyDecisionApplied)
		stated := *c.EarlyDecisionAdmitRate
		if math.Abs(calculated-stated) > rateTolerance {
			b.warnf(types.CategoryEDRateInconsistent, "earlyDecisionAdmitRate", edRateInconsistentPenalty,
				"ED admit rate inconsistent: stated %s%%, calculated %.1f%%", formatNumber(stated), calculated)
		}
	}

	v.checkCostDifferential(b, c)
	checkDescription(b, c)
	checkWebsite(b, c)
	checkSelectivity(b, c)
}

func (v *Validator) checkCostDifferential(b *verdictBuilder, c *types.College) {
	if types.StringValue(c.InstitutionalSector) != types.SectorPublic || v.ref.FreeTuition.Contains(c.Slug) {
		return
	}
	inState, outOfState := c.CostOfAttendanceInState, c.CostOfAttendanceOutOfState
	switch {
	case nonZeroInt(inState) && nonZeroInt(outOfState):
		if *inState >= *outOfState {
			b.warnf(types.CategoryCostDifferential, "costOfAttendanceInState", costInversionPenalty,
				"Public school: in-state cost should be less than out-of-state")
		}
	case !nonZeroInt(outOfState):
		b.warnf(types.CategoryCostDifferential, "costOfAttendanceOutOfState", missingOutOfStatePenalty,
			"Public school missing out-of-state cost")
	}
}

func checkDescription(b *verdictBuilder, c *types.College) {
	if !textPresent(c.Description) {
		return
	}
	length := len([]rune(*c.Description))
	if length < shortDescriptionLength {
		b.warnf(types.CategoryDescription, "description", shortDescriptionPenalty,
			"Description too short (< %d chars)", shortDescriptionLength)
	}
	if length < criticalDescriptionLength {
		b.errorf(types.CategoryDescription, "description", criticalDescriptionPenalty,
			"Description critically short (< %d chars)", criticalDescriptionLength)
	}
}

func checkWebsite(b *verdictBuilder, c *types.College) {
	if !textPresent(c.Website) {
		return
	}
	site := *c.Website
	if !strings.HasPrefix(site, "http://") && !strings.HasPrefix(site, "https://") {
		b.warnf(types.CategoryWebsite, "website", websiteProtocolPenalty, "Website URL missing protocol")
	}
}

func checkSelectivity(b *verdictBuilder, c *types.College) {
	if !nonZeroFloat(c.StudentsAdmittedPercent) || !textPresent(c.AdmissionsSelectivity) {
		return
	}
	rate, label := *c.StudentsAdmittedPercent, *c.AdmissionsSelectivity
	var expected string
	switch {
	case rate < mostSelectiveBelow && label != selectivityMost:
		expected = selectivityMost
	case rate >= mostSelectiveBelow && rate < verySelectiveBelow && label != selectivityVery && label != selectivityMost:
		expected = selectivityVery
	default:
		return
	}
	b.add(types.SeverityWarning, types.CategorySelectivity, "admissionsSelectivity",
		fmt.Sprintf("Selectivity mismatch: %s%% should be %q, not %q", formatNumber(rate), expected, label), selectivityPenalty)
}
