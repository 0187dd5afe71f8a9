// Package report persists validation reports and summarizes their issues.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/jonathan/college-directory/internal/schemas"
	"github.com/jonathan/college-directory/internal/types"
)

// IssueCount is one row of the issue summary table.
type IssueCount struct {
	Category types.Category `json:"category"`
	Label    string         `json:"label"`
	Count    int            `json:"count"`
}

// Summarize counts issues across every verdict by category, most frequent
// first. Ties are ordered by label.
func Summarize(report *types.ValidationReport) []IssueCount {
	counts := make(map[types.Category]int)
	for _, verdict := range report.Results {
		for _, issue := range verdict.Issues {
			counts[issue.Category]++
		}
	}

	summary := make([]IssueCount, 0, len(counts))
	for category, count := range counts {
		summary = append(summary, IssueCount{Category: category, Label: category.Label(), Count: count})
	}
	sort.Slice(summary, func(i, j int) bool {
		if summary[i].Count != summary[j].Count {
			return summary[i].Count > summary[j].Count
		}
		return summary[i].Label < summary[j].Label
	})
	return summary
}

// Failing returns the verdicts scoring below the report's threshold, in report order.
func Failing(report *types.ValidationReport) []types.Verdict {
	var failing []types.Verdict
	for _, verdict := range report.Results {
		if verdict.Score < report.Threshold {
			failing = append(failing, verdict)
		}
	}
	return failing
}

// WriteJSON writes the full report, indented, to path. Parent directories are created.
func WriteJSON(path string, report *types.ValidationReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create report directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report %s: %w", path, err)
	}
	return nil
}

// CheckSchema validates a written report against the report JSON schema.
// schemaPath is resolved relative to the working directory or its parents.
func CheckSchema(reportPath, schemaPath string) error {
	resolved := schemas.ResolveSchemaPath(schemaPath)
	if resolved == "" {
		return fmt.Errorf("report schema not found: %s", schemaPath)
	}
	return schemas.ValidateJSON(resolved, reportPath)
}
