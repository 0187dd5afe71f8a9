package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/college-directory/internal/types"
)

// PostgresStore wraps a PostgreSQL connection pool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Close closes the connection pool
func (s *PostgresStore) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// ListColleges returns every college row.
func (s *PostgresStore) ListColleges(ctx context.Context) ([]types.College, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+selectList+` FROM `+collegeTable)
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
func (s *PostgresStore) GetCollegeBySlug(ctx context.Context, slug string) (*types.College, error) {
	var c types.College
	err := s.pool.QueryRow(ctx,
		`SELECT `+selectList+` FROM `+collegeTable+` WHERE "slug" = $1`,
		slug,
	).Scan(scanTargets(&c)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get college: %w", err)
	}
	return &c, nil
}

// ListSlugs returns every slug, sorted.
func (s *PostgresStore) ListSlugs(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx, `SELECT "slug" FROM `+collegeTable+` ORDER BY "slug"`)
	if err != nil {
		return nil, fmt.Errorf("failed to list slugs: %w", err)
	}
	slugs, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to list slugs: %w", err)
	}
	return slugs, nil
}

// UpdateCollege writes fields to the college with the given slug.
func (s *PostgresStore) UpdateCollege(ctx context.Context, slug string, fields map[string]any) error {
	normalized, err := NormalizeFields(fields)
	if err != nil {
		return err
	}
	if len(normalized) == 0 {
		return nil
	}
	names, args := sortedFields(normalized)
	tag, err := s.pool.Exec(ctx, buildUpdate(names, dollarPlaceholder), append(args, slug)...)
	if err != nil {
		return fmt.Errorf("failed to update college %s: %w", slug, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateCollege inserts a college row and returns its id.
func (s *PostgresStore) CreateCollege(ctx context.Context, fields map[string]any) (string, error) {
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

	if _, err := s.pool.Exec(ctx, buildInsert(names, dollarPlaceholder), args...); err != nil {
		return "", fmt.Errorf("failed to create college: %w", err)
	}
	return id, nil
}
