package validation

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/jonathan/college-directory/internal/reference"
	"github.com/jonathan/college-directory/internal/types"
)

// internationalFields are the only columns checked for international schools.
var internationalFields = []string{"name", "slug", "location", "description"}

// Validator scores college records against reference data. It is safe for
// concurrent use; Validate never mutates shared state.
type Validator struct {
	ref           *reference.Data
	required      []FieldSpec
	important     []FieldSpec
	international []FieldSpec
	logger        *zap.Logger
}

// Option configures a Validator.
type Option func(*Validator)

// WithLogger sets the logger used for per-record debug output.
func WithLogger(logger *zap.Logger) Option {
	return func(v *Validator) {
		if logger != nil {
			v.logger = logger
		}
	}
}

// New builds a Validator. It fails when the reference field lists name a
// column the college record does not have.
func New(ref *reference.Data, opts ...Option) (*Validator, error) {
	if ref == nil {
		return nil, fmt.Errorf("reference data is required")
	}
	required, err := resolveFields("requiredFields", ref.RequiredFields)
	if err != nil {
		return nil, err
	}
	important, err := resolveFields("importantFields", ref.ImportantFields)
	if err != nil {
		return nil, err
	}
	international, err := resolveFields("internationalFields", internationalFields)
	if err != nil {
		return nil, err
	}

	v := &Validator{
		ref:           ref,
		required:      required,
		important:     important,
		international: international,
		logger:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v, nil
}

// Validate scores one college. It never fails: malformed sub-documents and
// out-of-range values become issues on the verdict.
func (v *Validator) Validate(c *types.College) types.Verdict {
	b := newVerdictBuilder()

	if v.ref.International.Contains(c.Slug) {
		v.checkInternational(b, c)
		verdict := b.build(c, clampScore)
		v.logVerdict(&verdict)
		return verdict
	}

	v.checkRequired(b, c)
	v.checkImportant(b, c)
	v.checkElite(b, c)
	v.checkRanges(b, c)
	v.checkDocuments(b, c)
	v.checkKnownValues(b, c)
	v.checkConsistency(b, c)

	verdict := b.build(c, floorScore)
	v.logVerdict(&verdict)
	return verdict
}

func (v *Validator) logVerdict(verdict *types.Verdict) {
	v.logger.Debug("college validated",
		zap.String("slug", verdict.Slug),
		zap.Int("score", verdict.Score),
		zap.Int("errors", len(verdict.Errors)),
		zap.Int("warnings", len(verdict.Warnings)),
	)
}

// verdictBuilder accumulates issues in rule order.
type verdictBuilder struct {
	issues []types.Issue
	total  int
}

func newVerdictBuilder() *verdictBuilder {
	return &verdictBuilder{}
}

func (b *verdictBuilder) add(severity types.Severity, category types.Category, field, message string, deduction int) {
	b.issues = append(b.issues, types.Issue{
		Severity:  severity,
		Category:  category,
		Field:     field,
		Message:   message,
		Deduction: deduction,
	})
	b.total += deduction
}

func (b *verdictBuilder) errorf(category types.Category, field string, deduction int, format string, args ...any) {
	b.add(types.SeverityError, category, field, fmt.Sprintf(format, args...), deduction)
}

func (b *verdictBuilder) warnf(category types.Category, field string, deduction int, format string, args ...any) {
	b.add(types.SeverityWarning, category, field, fmt.Sprintf(format, args...), deduction)
}

// warnGroup records several warnings that together cost one deduction,
// charged on the first of them.
func (b *verdictBuilder) warnGroup(category types.Category, field string, deduction int, messages []string) {
	for i, msg := range messages {
		charge := 0
		if i == 0 {
			charge = deduction
		}
		b.add(types.SeverityWarning, category, field, msg, charge)
	}
}

func floorScore(score int) int {
	return max(0, score)
}

func clampScore(score int) int {
	return min(100, max(0, score))
}

func (b *verdictBuilder) build(c *types.College, bound func(int) int) types.Verdict {
	verdict := types.Verdict{
		CollegeName: c.Name,
		Slug:        c.Slug,
		Errors:      []string{},
		Warnings:    []string{},
		Score:       bound(100 - b.total),
		Issues:      b.issues,
	}
	if verdict.Issues == nil {
		verdict.Issues = []types.Issue{}
	}
	for _, issue := range b.issues {
		if issue.Severity == types.SeverityError {
			verdict.Errors = append(verdict.Errors, issue.Message)
		} else {
			verdict.Warnings = append(verdict.Warnings, issue.Message)
		}
	}
	return verdict
}
