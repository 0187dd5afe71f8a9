package fixup

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/jonathan/college-directory/internal/db"
)

// SeedResult tallies a seed run.
type SeedResult struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
}

// LoadSeed reads a YAML or JSON list of college records keyed by column name.
func LoadSeed(path string) ([]map[string]any, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	var records []map[string]any
	if err := yaml.Unmarshal(content, &records); err != nil {
		return nil, fmt.Errorf("failed to parse seed file %s: %w", path, err)
	}
	for i, record := range records {
		if slug, _ := record["slug"].(string); slug == "" {
			return nil, fmt.Errorf("seed record %d has no slug", i+1)
		}
		if _, err := db.NormalizeFields(record); err != nil {
			return nil, fmt.Errorf("seed record %d: %w", i+1, err)
		}
	}
	return records, nil
}

// Seed upserts records by slug: existing colleges are updated in place and
// new ones created. The first failure aborts the run.
func Seed(ctx context.Context, store Store, records []map[string]any, opts Options) (*SeedResult, error) {
	logger := opts.logger()
	result := &SeedResult{}
	for _, record := range records {
		slug, _ := record["slug"].(string)
		existing, err := store.GetCollegeBySlug(ctx, slug)
		if err != nil {
			return result, fmt.Errorf("failed to look up %s: %w", slug, err)
		}

		if existing != nil {
			if !opts.DryRun {
				if err := store.UpdateCollege(ctx, slug, record); err != nil {
					return result, err
				}
			}
			logger.Info("college seeded", zap.String("slug", slug), zap.String("action", "update"))
			result.Updated++
			continue
		}

		if !opts.DryRun {
			if _, err := store.CreateCollege(ctx, record); err != nil {
				return result, err
			}
		}
		logger.Info("college seeded", zap.String("slug", slug), zap.String("action", "create"))
		result.Created++
	}
	return result, nil
}
