package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/cargosys/tracking-service/internal/database"
	"github.com/cargosys/tracking-service/internal/models"
)

// PostgresSequenceRepository implements SequenceRepository using PostgreSQL.
// A cached sequence is one row with the readings as a JSONB document: the
// cache is read and replaced whole, never queried per reading, so a
// row-per-reading table would buy nothing but insert cost.
type PostgresSequenceRepository struct {
	db *database.DB
}

// NewPostgresSequenceRepository creates a new PostgreSQL sequence repository
func NewPostgresSequenceRepository(db *database.DB) *PostgresSequenceRepository {
	return &PostgresSequenceRepository{db: db}
}

// SaveSequence stores a generated sequence, replacing any previous cache entry
// for the same tracking code
func (r *PostgresSequenceRepository) SaveSequence(ctx context.Context, trackingCode, fingerprint string, readings []models.Reading) error {
	payload, err := json.Marshal(readings)
	if err != nil {
		return fmt.Errorf("failed to marshal readings: %w", err)
	}

	query := `
		INSERT INTO sequence_cache (id, tracking_code, fingerprint, reading_count, readings, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (tracking_code) DO UPDATE SET
			fingerprint = EXCLUDED.fingerprint,
			reading_count = EXCLUDED.reading_count,
			readings = EXCLUDED.readings,
			created_at = NOW()
	`
	if _, err := r.db.ExecContext(ctx, query, uuid.New(), trackingCode, fingerprint, len(readings), payload); err != nil {
		return fmt.Errorf("failed to upsert sequence cache: %w", err)
	}
	return nil
}

// GetSequence returns the cached sequence for the fingerprint, or ErrNotFound
func (r *PostgresSequenceRepository) GetSequence(ctx context.Context, trackingCode, fingerprint string) ([]models.Reading, error) {
	query := `
		SELECT readings FROM sequence_cache
		WHERE tracking_code = $1 AND fingerprint = $2
	`
	var payload []byte
	err := r.db.QueryRowContext(ctx, query, trackingCode, fingerprint).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query sequence cache: %w", err)
	}

	var readings []models.Reading
	if err := json.Unmarshal(payload, &readings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached readings: %w", err)
	}
	return readings, nil
}

// SetRecentCode records the last-used tracking code in a single-row table
func (r *PostgresSequenceRepository) SetRecentCode(ctx context.Context, trackingCode string) error {
	query := `
		INSERT INTO recent_code (id, tracking_code, updated_at)
		VALUES (1, $1, NOW())
		ON CONFLICT (id) DO UPDATE SET
			tracking_code = EXCLUDED.tracking_code,
			updated_at = NOW()
	`
	if _, err := r.db.ExecContext(ctx, query, trackingCode); err != nil {
		return fmt.Errorf("failed to upsert recent code: %w", err)
	}
	return nil
}

// GetRecentCode returns the last-used tracking code, or ErrNotFound
func (r *PostgresSequenceRepository) GetRecentCode(ctx context.Context) (string, error) {
	var code string
	err := r.db.QueryRowContext(ctx, `SELECT tracking_code FROM recent_code WHERE id = 1`).Scan(&code)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to query recent code: %w", err)
	}
	return code, nil
}
