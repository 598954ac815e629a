package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/chessdrill/internal/models"
)

// MockDrillClient is a mock implementation of drillapi.ClientInterface
type MockDrillClient struct {
	mock.Mock
}

func (m *MockDrillClient) StartSession(ctx context.Context, drillType models.DrillType, method models.InputMethod, perspective string) (*models.StartResult, error) {
	args := m.Called(ctx, drillType, method, perspective)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StartResult), args.Error(1)
}

func (m *MockDrillClient) CheckAnswer(ctx context.Context, sub models.AnswerSubmission) (*models.CheckResult, error) {
	args := m.Called(ctx, sub)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CheckResult), args.Error(1)
}

func (m *MockDrillClient) EndSession(ctx context.Context, sessionID string) (*models.DrillSessionSummary, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DrillSessionSummary), args.Error(1)
}

func (m *MockDrillClient) Heatmap(ctx context.Context, drillType models.DrillType) (*models.HeatmapData, error) {
	args := m.Called(ctx, drillType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.HeatmapData), args.Error(1)
}

func (m *MockDrillClient) Stats(ctx context.Context) (*models.OverallStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.OverallStats), args.Error(1)
}

func (m *MockDrillClient) LegalMoves(ctx context.Context, fen, square string) (*models.LegalMovesResult, error) {
	args := m.Called(ctx, fen, square)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LegalMovesResult), args.Error(1)
}
