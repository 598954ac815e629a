package drillapi

import (
	"context"

	"github.com/vytor/chessdrill/internal/models"
)

// ClientInterface defines the drill server operations used by the client.
// This interface enables testability by allowing mock implementations.
type ClientInterface interface {
	StartSession(ctx context.Context, drillType models.DrillType, method models.InputMethod, perspective string) (*models.StartResult, error)
	CheckAnswer(ctx context.Context, sub models.AnswerSubmission) (*models.CheckResult, error)
	EndSession(ctx context.Context, sessionID string) (*models.DrillSessionSummary, error)
	Heatmap(ctx context.Context, drillType models.DrillType) (*models.HeatmapData, error)
	Stats(ctx context.Context) (*models.OverallStats, error)
	LegalMoves(ctx context.Context, fen, square string) (*models.LegalMovesResult, error)
}

// Ensure Client implements the interface
var _ ClientInterface = (*Client)(nil)
