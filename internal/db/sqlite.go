package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/jonathan/college-directory/internal/types"
)

// SQLiteStore reads and writes the college table in a SQLite file, such as a
// Prisma development database.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens the SQLite database at dsn and verifies the connection.
func OpenSQLite(ctx context.Context, dsn string) (*SQLiteStore, error) {
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}
	return &SQLiteStore{db: conn}, nil
}

// Close closes the database handle.
func (s *SQLiteStore) Close() {
	if s.db != nil {
		_ = s.db.Close()
	}
}

// Exec runs a statement directly; used to prepare schemas in tests and tools.
func (s *SQLiteStore) Exec(ctx context.Context, query string, args ...any) error {
	_, err := s.db.ExecContext(ctx, query, args...)
	return err
}

// ListColleges returns every college row.
func (s *SQLiteStore) ListColleges(ctx context.Context) ([]types.College, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+selectList+` FROM `+collegeTable)
	if err != nil {
		return nil, fmt.Errorf("failed to list colleges: %w", err)
	}
	defer rows.Close()

	var colleges []types.College
	for rows.Next() {
		var c types.College
		if err := rows.Scan(scanTargets(&c)...); err != nil {
			return nil, fmt.Errorf("failed to scan college: %w", err)
		}
		colleges = append(colleges, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list colleges: %w", err)
	}
	return colleges, nil
}

// GetCollegeBySlug retrieves a college by its slug
func (s *SQLiteStore) GetCollegeBySlug(ctx context.Context, slug string) (*types.College, error) {
	var c types.College
	err := s.db.QueryRowContext(ctx,
		`SELECT `+selectList+` FROM `+collegeTable+` WHERE "slug" = ?`,
		slug,
	).Scan(scanTargets(&c)...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get college: %w", err)
	}
	return &c, nil
}

// ListSlugs returns every slug, sorted.
func (s *SQLiteStore) ListSlugs(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT "slug" FROM `+collegeTable+` ORDER BY "slug"`)
	if err != nil {
		return nil, fmt.Errorf("failed to list slugs: %w", err)
	}
	defer rows.Close()

	var slugs []string
	for rows.Next() {
		var slug string
		if err := rows.Scan(&slug); err != nil {
			return nil, fmt.Errorf("failed to scan slug: %w", err)
		}
		slugs = append(slugs, slug)
	}
	return slugs, rows.Err()
}

// UpdateCollege writes fields to the college with the given slug.
func (s *SQLiteStore) UpdateCollege(ctx context.Context, slug string, fields map[string]any) error {
	normalized, err := NormalizeFields(fields)
	if err != nil {
		return err
	}
	if len(normalized) == 0 {
		return nil
	}
	names, args := sortedFields(normalized)
	result, err := s.db.ExecContext(ctx, buildUpdate(names, questionPlaceholder), append(args, slug)...)
	if err != nil {
		return fmt.Errorf("failed to update college %s: %w", slug, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update college %s: %w", slug, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateCollege inserts a college row and returns its id.
func (s *SQLiteStore) CreateCollege(ctx context.Context, fields map[string]any) (string, error) {
	normalized, err := NormalizeFields(fields)
	if err != nil {
		return "", err
	}
	if err := missingRequired(normalized); err != nil {
		return "", err
	}
	id := uuid.New().String()
	names, args := sortedFields(normalized)
	names = append([]string{"id"}, names...)
	args = append([]any{id}, args...)

	if _, err := s.db.ExecContext(ctx, buildInsert(names, questionPlaceholder), args...); err != nil {
		return "", fmt.Errorf("failed to create college: %w", err)
	}
	return id, nil
}
