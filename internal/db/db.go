// Package db provides access to the college table in PostgreSQL or SQLite.
package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jonathan/college-directory/internal/types"
)

// ErrNotFound is returned by slug-keyed writes when no college has the slug.
var ErrNotFound = errors.New("college not found")

// Store is the college table as seen by validation, audits and fixups.
type Store interface {
	// ListColleges returns every college in no particular order.
	ListColleges(ctx context.Context) ([]types.College, error)
	// GetCollegeBySlug returns nil, nil when the slug does not exist.
	GetCollegeBySlug(ctx context.Context, slug string) (*types.College, error)
	ListSlugs(ctx context.Context) ([]string, error)
	// UpdateCollege writes the given columns of one college. Fields are
	// normalized with NormalizeFields first.
	UpdateCollege(ctx context.Context, slug string, fields map[string]any) error
	// CreateCollege inserts a college and returns its generated id.
	CreateCollege(ctx context.Context, fields map[string]any) (string, error)
	Close()
}

// Open connects to the database named by databaseURL. postgres:// and
// postgresql:// URLs use PostgreSQL; file: and sqlite: URLs, or bare paths
// ending in .db, use SQLite.
func Open(ctx context.Context, databaseURL string) (Store, error) {
	switch {
	case databaseURL == "":
		return nil, fmt.Errorf("database URL is empty")
	case strings.HasPrefix(databaseURL, "postgres://"), strings.HasPrefix(databaseURL, "postgresql://"):
		return Connect(ctx, databaseURL)
	case strings.HasPrefix(databaseURL, "sqlite:"):
		return OpenSQLite(ctx, strings.TrimPrefix(databaseURL, "sqlite:"))
	case strings.HasPrefix(databaseURL, "file:"), strings.HasSuffix(databaseURL, ".db"):
		return OpenSQLite(ctx, databaseURL)
	default:
		return nil, fmt.Errorf("unsupported database URL scheme: %s", redact(databaseURL))
	}
}

// redact drops everything after the scheme so credentials never reach logs.
func redact(databaseURL string) string {
	if i := strings.Index(databaseURL, "://"); i >= 0 {
		return databaseURL[:i+3] + "..."
	}
	return "(unrecognized)"
}
