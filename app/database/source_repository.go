package database

import (
	"context"
	"database/sql"
	"fmt"
)

// SourceRepo handles database operations for the source registry
type SourceRepo struct {
	db *DB
}

var _ SourceRepository = (*SourceRepo)(nil)

func NewSourceRepo(db *DB) *SourceRepo {
	return &SourceRepo{db: db}
}

func (r *SourceRepo) GetActiveSources(ctx context.Context) ([]Source, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, type, COALESCE(endpoint, ''), is_active, created_at, updated_at
		FROM sources
		WHERE is_active = true
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get active sources: %w", err)
	}
	defer rows.Close()

	return scanSources(rows)
}

func (r *SourceRepo) GetAllSources(ctx context.Context) ([]Source, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, type, COALESCE(endpoint, ''), is_active, created_at, updated_at
		FROM sources
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get sources: %w", err)
	}
	defer rows.Close()

	return scanSources(rows)
}

func (r *SourceRepo) GetSourceCount(ctx context.Context) (int, int, error) {
	var total, active int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE is_active)
		FROM sources
	`).Scan(&total, &active)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get source count: %w", err)
	}
	return total, active, nil
}

func (r *SourceRepo) UpsertSource(ctx context.Context, name string, sourceType SourceType, endpoint string, isActive bool) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO sources (name, type, endpoint, is_active)
		VALUES ($1, $2, NULLIF($3, ''), $4)
		ON CONFLICT (name) DO UPDATE SET
			type = EXCLUDED.type,
			endpoint = EXCLUDED.endpoint,
			is_active = EXCLUDED.is_active,
			updated_at = NOW()
	`, name, string(sourceType), endpoint, isActive)

	if err != nil {
		return fmt.Errorf("failed to upsert source: %w", err)
	}

	return nil
}

func scanSources(rows *sql.Rows) ([]Source, error) {
	var sources []Source
	for rows.Next() {
		var source Source
		err := rows.Scan(
			&source.ID, &source.Name, &source.Type, &source.Endpoint,
			&source.IsActive, &source.CreatedAt, &source.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan source row: %w", err)
		}
		sources = append(sources, source)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating source rows: %w", err)
	}

	return sources, nil
}
