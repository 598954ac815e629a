package repository

import (
	"context"
	"time"

	"github.com/vytor/chessdrill/internal/models"
)

// DrillSessionRepository handles drill session data access
type DrillSessionRepository interface {
	Create(ctx context.Context, session models.DrillSession) error
	Get(ctx context.Context, id string) (*models.DrillSession, error)
	End(ctx context.Context, id string, endedAt time.Time, summary models.DrillSessionSummary) error
	Count(ctx context.Context) (int, error)
	BestStreak(ctx context.Context, drillType models.DrillType) (int, error)
}

// AttemptRepository handles answer attempt data access
type AttemptRepository interface {
	Insert(ctx context.Context, attempt models.Attempt) (int64, error)
	ListBySession(ctx context.Context, sessionID string) ([]models.Attempt, error)
	SessionSummary(ctx context.Context, sessionID string) (*models.DrillSessionSummary, error)
	SquareAccuracy(ctx context.Context, drillType models.DrillType) ([]models.SquareAccuracy, error)
	DrillTypeStats(ctx context.Context, drillType models.DrillType) (*models.DrillTypeStats, error)
	Totals(ctx context.Context) (*models.OverallStats, error)
}
