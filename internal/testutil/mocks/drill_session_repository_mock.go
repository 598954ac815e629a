package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/chessdrill/internal/models"
)

// MockDrillSessionRepository is a mock implementation of repository.DrillSessionRepository
type MockDrillSessionRepository struct {
	mock.Mock
}

func (m *MockDrillSessionRepository) Create(ctx context.Context, session models.DrillSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockDrillSessionRepository) Get(ctx context.Context, id string) (*models.DrillSession, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DrillSession), args.Error(1)
}

func (m *MockDrillSessionRepository) End(ctx context.Context, id string, endedAt time.Time, summary models.DrillSessionSummary) error {
	args := m.Called(ctx, id, endedAt, summary)
	return args.Error(0)
}

func (m *MockDrillSessionRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockDrillSessionRepository) BestStreak(ctx context.Context, drillType models.DrillType) (int, error) {
	args := m.Called(ctx, drillType)
	return args.Int(0), args.Error(1)
}
