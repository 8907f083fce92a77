package repository

import (
	"context"

	"github.com/cargosys/tracking-service/internal/models"
)

// MockSequenceRepository is a mock implementation of SequenceRepository for testing
type MockSequenceRepository struct {
	SaveSequenceFunc  func(ctx context.Context, trackingCode, fingerprint string, readings []models.Reading) error
	GetSequenceFunc   func(ctx context.Context, trackingCode, fingerprint string) ([]models.Reading, error)
	SetRecentCodeFunc func(ctx context.Context, trackingCode string) error
	GetRecentCodeFunc func(ctx context.Context) (string, error)
}

// NewMockSequenceRepository creates a new mock repository with default
// implementations: every save succeeds and every lookup misses.
func NewMockSequenceRepository() *MockSequenceRepository {
	return &MockSequenceRepository{
		SaveSequenceFunc: func(_ context.Context, _, _ string, _ []models.Reading) error {
			return nil
		},
		GetSequenceFunc: func(_ context.Context, _, _ string) ([]models.Reading, error) {
			return nil, ErrNotFound
		},
		SetRecentCodeFunc: func(_ context.Context, _ string) error {
			return nil
		},
		GetRecentCodeFunc: func(_ context.Context) (string, error) {
			return "", ErrNotFound
		},
	}
}

// SaveSequence calls the mock function
func (m *MockSequenceRepository) SaveSequence(ctx context.Context, trackingCode, fingerprint string, readings []models.Reading) error {
	return m.SaveSequenceFunc(ctx, trackingCode, fingerprint, readings)
}

// GetSequence calls the mock function
func (m *MockSequenceRepository) GetSequence(ctx context.Context, trackingCode, fingerprint string) ([]models.Reading, error) {
	return m.GetSequenceFunc(ctx, trackingCode, fingerprint)
}

// SetRecentCode calls the mock function
func (m *MockSequenceRepository) SetRecentCode(ctx context.Context, trackingCode string) error {
	return m.SetRecentCodeFunc(ctx, trackingCode)
}

// GetRecentCode calls the mock function
func (m *MockSequenceRepository) GetRecentCode(ctx context.Context) (string, error) {
	return m.GetRecentCodeFunc(ctx)
}
