package audit

import (
	"context"
	"fmt"

	"github.com/jonathan/college-directory/internal/reference"
	"github.com/jonathan/college-directory/internal/types"
)

// CollegeLookup fetches one college by slug, returning nil when absent.
type CollegeLookup interface {
	GetCollegeBySlug(ctx context.Context, slug string) (*types.College, error)
}

// PolicyStatus is the outcome of checking one early-admission policy.
type PolicyStatus string

// Policy check outcomes.
const (
	PolicyVerified PolicyStatus = "verified"
	PolicyMismatch PolicyStatus = "mismatch"
	PolicyNotFound PolicyStatus = "not_found"
)

// PolicyResult compares one published policy with the stored record.
type PolicyResult struct {
	Policy  reference.EarlyAdmissionPolicy `json:"policy"`
	Status  PolicyStatus                   `json:"status"`
	College *types.College                 `json:"-"`
	Issues  []string                       `json:"issues"`
}

// PolicyReport summarizes an early-admission verification run.
type PolicyReport struct {
	Results  []PolicyResult `json:"results"`
	Verified int            `json:"verified"`
	Errors   int            `json:"errors"`
	Warnings int            `json:"warnings"`
}

// Failed reports whether any stored record contradicts its policy. Missing
// records are warnings and do not fail the run.
func (r *PolicyReport) Failed() bool {
	return r.Errors > 0
}

// VerifyEarlyAdmission checks each policy against the stored college. Lookup
// errors abort the run.
func VerifyEarlyAdmission(ctx context.Context, lookup CollegeLookup, policies []reference.EarlyAdmissionPolicy) (*PolicyReport, error) {
	report := &PolicyReport{Results: make([]PolicyResult, 0, len(policies))}
	for _, policy := range policies {
		college, err := lookup.GetCollegeBySlug(ctx, policy.Slug)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", policy.Slug, err)
		}
		result := PolicyResult{Policy: policy, College: college, Issues: []string{}}
		switch {
		case college == nil:
			result.Status = PolicyNotFound
			report.Warnings++
		default:
			result.Issues = policyIssues(policy, college)
			if len(result.Issues) > 0 {
				result.Status = PolicyMismatch
				report.Errors++
			} else {
				result.Status = PolicyVerified
				report.Verified++
			}
		}
		report.Results = append(report.Results, result)
	}
	return report, nil
}

func nullable(s *string) string {
	if s == nil {
		return "null"
	}
	return *s
}

func policyIssues(policy reference.EarlyAdmissionPolicy, c *types.College) []string {
	issues := []string{}
	if policy.ExpectedEAType != "" && types.StringValue(c.EarlyActionType) != policy.ExpectedEAType {
		issues = append(issues, fmt.Sprintf("EA Type: expected %s, got %s", policy.ExpectedEAType, nullable(c.EarlyActionType)))
	}

	hasEA := types.StringValue(c.EADeadline) != ""
	if policy.HasEA && !hasEA {
		issues = append(issues, "Should have EA deadline but doesn't")
	}
	if !policy.HasEA && hasEA {
		issues = append(issues, "Has EA deadline but shouldn't: "+*c.EADeadline)
	}

	hasED := types.StringValue(c.EDDeadline) != ""
	if policy.HasED && !hasED {
		issues = append(issues, "Should have ED deadline but doesn't")
	}
	if !policy.HasED && hasED {
		issues = append(issues, "Has ED deadline but shouldn't: "+*c.EDDeadline)
	}

	if !policy.HasED && c.EarlyDecisionApplied != nil && *c.EarlyDecisionApplied != 0 {
		issues = append(issues, fmt.Sprintf("Has ED application data but shouldn't: %d applied", *c.EarlyDecisionApplied))
	}
	return issues
}
