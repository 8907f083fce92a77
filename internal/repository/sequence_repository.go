// Package repository provides data access interfaces and implementations.
package repository

import (
	"context"
	"errors"

	"github.com/cargosys/tracking-service/internal/models"
)

// ErrNotFound is returned when a lookup matches nothing
var ErrNotFound = errors.New("repository: not found")

// SequenceRepository caches generated reading sequences and remembers the
// last tracking code a user queried. Generation of a months-scale sequence is
// the expensive path; the cache is keyed by the (tracking code, options)
// fingerprint so a changed generation parameter is a miss, never a stale hit.
type SequenceRepository interface {
	// SaveSequence stores a generated sequence under its fingerprint,
	// replacing any previous sequence cached for the same tracking code
	SaveSequence(ctx context.Context, trackingCode, fingerprint string, readings []models.Reading) error

	// GetSequence returns the cached sequence for the fingerprint, or
	// ErrNotFound on a miss
	GetSequence(ctx context.Context, trackingCode, fingerprint string) ([]models.Reading, error)

	// SetRecentCode records the last-used tracking code
	SetRecentCode(ctx context.Context, trackingCode string) error

	// GetRecentCode returns the last-used tracking code, or ErrNotFound if
	// none was ever recorded
	GetRecentCode(ctx context.Context) (string, error)
}
