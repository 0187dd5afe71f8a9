// Package fixup applies curated corrections and seed records to the college table.
package fixup

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/jonathan/college-directory/internal/db"
	"github.com/jonathan/college-directory/internal/types"
)

// Update is one slug-keyed correction. Data maps column names to new values;
// null clears a column and maps or lists are stored as JSON text.
type Update struct {
	Slug string         `yaml:"slug" json:"slug" validate:"required"`
	Data map[string]any `yaml:"data" json:"data" validate:"required,min=1"`
}

// Store is the subset of db.Store used by fixups.
type Store interface {
	GetCollegeBySlug(ctx context.Context, slug string) (*types.College, error)
	ListSlugs(ctx context.Context) ([]string, error)
	UpdateCollege(ctx context.Context, slug string, fields map[string]any) error
	CreateCollege(ctx context.Context, fields map[string]any) (string, error)
}

// Status is the outcome of one update.
type Status string

// Update outcomes.
const (
	StatusUpdated  Status = "updated"
	StatusPlanned  Status = "planned" // dry run
	StatusNotFound Status = "not_found"
	StatusFailed   Status = "error"
)

// Entry records what happened to one update.
type Entry struct {
	Slug       string `json:"slug"`
	Name       string `json:"name,omitempty"`
	Status     Status `json:"status"`
	Fields     int    `json:"fields"`
	Suggestion string `json:"suggestion,omitempty"`
	Error      string `json:"error,omitempty"`
}

// Result tallies an apply run.
type Result struct {
	Updated  int     `json:"updated"`
	NotFound int     `json:"notFound"`
	Errors   int     `json:"errors"`
	DryRun   bool    `json:"dryRun"`
	Entries  []Entry `json:"entries"`
}

// Options configures Apply and Seed.
type Options struct {
	DryRun bool
	Logger *zap.Logger
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

// LoadUpdates reads a YAML or JSON list of updates and validates every entry,
// including field names and value types, before anything is written.
func LoadUpdates(path string) ([]Update, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read updates file: %w", err)
	}
	var updates []Update
	if err := yaml.Unmarshal(content, &updates); err != nil {
		return nil, fmt.Errorf("failed to parse updates file %s: %w", path, err)
	}
	if err := CheckUpdates(updates); err != nil {
		return nil, err
	}
	return updates, nil
}

// CheckUpdates validates updates without touching the store.
func CheckUpdates(updates []Update) error {
	if len(updates) == 0 {
		return fmt.Errorf("updates file contains no updates")
	}
	validate := validator.New()
	var problems []error
	for i, update := range updates {
		if err := validate.Struct(update); err != nil {
			problems = append(problems, fmt.Errorf("update %d (%s): %w", i+1, update.Slug, err))
			continue
		}
		if _, err := db.NormalizeFields(update.Data); err != nil {
			var unknown *db.UnknownColumnError
			if errors.As(err, &unknown) {
				if hint := Suggest(unknown.Column, db.ColumnNames()); hint != "" {
					err = fmt.Errorf("%w (did you mean %q?)", err, hint)
				}
			}
			problems = append(problems, fmt.Errorf("update %d (%s): %w", i+1, update.Slug, err))
		}
	}
	return errors.Join(problems...)
}

// Apply writes each update to the store. A missing slug or a failed write is
// counted and the run continues; only a failure to look up colleges aborts it.
func Apply(ctx context.Context, store Store, updates []Update, opts Options) (*Result, error) {
	if err := CheckUpdates(updates); err != nil {
		return nil, err
	}
	logger := opts.logger()
	result := &Result{DryRun: opts.DryRun, Entries: make([]Entry, 0, len(updates))}

	var slugs []string
	for _, update := range updates {
		entry := Entry{Slug: update.Slug, Fields: len(update.Data)}

		existing, err := store.GetCollegeBySlug(ctx, update.Slug)
		if err != nil {
			return nil, fmt.Errorf("failed to look up %s: %w", update.Slug, err)
		}
		if existing == nil {
			if slugs == nil {
				if slugs, err = store.ListSlugs(ctx); err != nil {
					return nil, fmt.Errorf("failed to list slugs: %w", err)
				}
			}
			entry.Status = StatusNotFound
			entry.Suggestion = Suggest(update.Slug, slugs)
			result.NotFound++
			result.Entries = append(result.Entries, entry)
			logger.Warn("college not found", zap.String("slug", update.Slug), zap.String("suggestion", entry.Suggestion))
			continue
		}
		entry.Name = existing.Name

		if opts.DryRun {
			entry.Status = StatusPlanned
			result.Updated++
			result.Entries = append(result.Entries, entry)
			continue
		}

		if err := store.UpdateCollege(ctx, update.Slug, update.Data); err != nil {
			entry.Status = StatusFailed
			entry.Error = err.Error()
			result.Errors++
			logger.Error("college update failed", zap.String("slug", update.Slug), zap.Error(err))
		} else {
			entry.Status = StatusUpdated
			result.Updated++
			logger.Info("college updated", zap.String("slug", update.Slug), zap.Int("fields", entry.Fields))
		}
		result.Entries = append(result.Entries, entry)
	}
	return result, nil
}

// Suggest returns the known slug closest to slug by edit distance, or "" when
// nothing is close enough to be a plausible typo or abbreviation. A candidate
// qualifies when slug is its prefix or the distance is at most half the
// longer of the two strings.
func Suggest(slug string, known []string) string {
	best, bestDistance := "", -1
	for _, candidate := range known {
		d := levenshtein.ComputeDistance(slug, candidate)
		if !strings.HasPrefix(candidate, slug) && d > max(3, max(len(slug), len(candidate))/2) {
			continue
		}
		if bestDistance < 0 || d < bestDistance {
			best, bestDistance = candidate, d
		}
	}
	return best
}
