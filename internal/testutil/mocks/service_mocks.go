package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/chessdrill/internal/models"
)

// MockDrillService is a mock implementation of services.DrillService
type MockDrillService struct {
	mock.Mock
}

func (m *MockDrillService) StartSession(ctx context.Context, drillType models.DrillType, method models.InputMethod, perspective string) (*models.StartResult, error) {
	args := m.Called(ctx, drillType, method, perspective)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StartResult), args.Error(1)
}

func (m *MockDrillService) CheckAnswer(ctx context.Context, sub models.AnswerSubmission) (*models.CheckResult, error) {
	args := m.Called(ctx, sub)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CheckResult), args.Error(1)
}

func (m *MockDrillService) EndSession(ctx context.Context, sessionID string) (*models.DrillSessionSummary, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DrillSessionSummary), args.Error(1)
}

func (m *MockDrillService) LegalMoves(ctx context.Context, fen, square string) (*models.LegalMovesResult, error) {
	args := m.Called(ctx, fen, square)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LegalMovesResult), args.Error(1)
}

// MockStatsService is a mock implementation of services.StatsService
type MockStatsService struct {
	mock.Mock
}

func (m *MockStatsService) Heatmap(ctx context.Context, drillType models.DrillType) (*models.HeatmapData, error) {
	args := m.Called(ctx, drillType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.HeatmapData), args.Error(1)
}

func (m *MockStatsService) Overall(ctx context.Context) (*models.OverallStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.OverallStats), args.Error(1)
}

// MockPinger is a mock database health check
type MockPinger struct {
	mock.Mock
}

func (m *MockPinger) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
