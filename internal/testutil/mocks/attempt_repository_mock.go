package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/chessdrill/internal/models"
)

// MockAttemptRepository is a mock implementation of repository.AttemptRepository
type MockAttemptRepository struct {
	mock.Mock
}

func (m *MockAttemptRepository) Insert(ctx context.Context, attempt models.Attempt) (int64, error) {
	args := m.Called(ctx, attempt)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAttemptRepository) ListBySession(ctx context.Context, sessionID string) ([]models.Attempt, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Attempt), args.Error(1)
}

func (m *MockAttemptRepository) SessionSummary(ctx context.Context, sessionID string) (*models.DrillSessionSummary, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DrillSessionSummary), args.Error(1)
}

func (m *MockAttemptRepository) SquareAccuracy(ctx context.Context, drillType models.DrillType) ([]models.SquareAccuracy, error) {
	args := m.Called(ctx, drillType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SquareAccuracy), args.Error(1)
}

func (m *MockAttemptRepository) DrillTypeStats(ctx context.Context, drillType models.DrillType) (*models.DrillTypeStats, error) {
	args := m.Called(ctx, drillType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DrillTypeStats), args.Error(1)
}

func (m *MockAttemptRepository) Totals(ctx context.Context) (*models.OverallStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.OverallStats), args.Error(1)
}
