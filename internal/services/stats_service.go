package services

import (
	"context"
	"fmt"

	"github.com/vytor/chessdrill/internal/errors"
	"github.com/vytor/chessdrill/internal/geometry"
	"github.com/vytor/chessdrill/internal/logger"
	"github.com/vytor/chessdrill/internal/models"
	"github.com/vytor/chessdrill/internal/repository"
)

// StatsService handles statistics-related business logic
type StatsService interface {
	Heatmap(ctx context.Context, drillType models.DrillType) (*models.HeatmapData, error)
	Overall(ctx context.Context) (*models.OverallStats, error)
}

type statsService struct {
	sessionRepo repository.DrillSessionRepository
	attemptRepo repository.AttemptRepository
}

// NewStatsService creates a new StatsService
func NewStatsService(sessionRepo repository.DrillSessionRepository, attemptRepo repository.AttemptRepository) StatsService {
	return &statsService{sessionRepo: sessionRepo, attemptRepo: attemptRepo}
}

// Heatmap returns one entry per board square in index order (a1, b1, ... h8).
// Squares never asked have zero totals. An empty drillType covers every drill.
func (s *statsService) Heatmap(ctx context.Context, drillType models.DrillType) (*models.HeatmapData, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting heatmap: drill_type=%q", drillType)

	if drillType != "" && !drillType.Valid() {
		return nil, errors.NewValidationError("drill_type", fmt.Sprintf("unknown drill type %q", drillType))
	}

	rows, err := s.attemptRepo.SquareAccuracy(ctx, drillType)
	if err != nil {
		log.Error("failed to get square accuracy: %v", err)
		return nil, errors.NewInternalError(err)
	}
	byName := make(map[string]models.SquareAccuracy, len(rows))
	for _, r := range rows {
		byName[r.Square] = r
	}

	squares := make([]models.SquareAccuracy, 0, geometry.NumSquares)
	for i := 0; i < geometry.NumSquares; i++ {
		name := geometry.Square(i).String()
		if r, ok := byName[name]; ok {
			squares = append(squares, r)
			continue
		}
		squares = append(squares, models.SquareAccuracy{Square: name})
	}
	return &models.HeatmapData{Squares: squares}, nil
}

func (s *statsService) Overall(ctx context.Context) (*models.OverallStats, error) {
	log := logger.FromContext(ctx)

	stats, err := s.attemptRepo.Totals(ctx)
	if err != nil {
		log.Error("failed to get attempt totals: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if stats.TotalSessions, err = s.sessionRepo.Count(ctx); err != nil {
		log.Error("failed to count sessions: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if stats.BestStreak, err = s.sessionRepo.BestStreak(ctx, ""); err != nil {
		log.Error("failed to get best streak: %v", err)
		return nil, errors.NewInternalError(err)
	}

	stats.DrillStats = []models.DrillTypeStats{}
	for _, t := range models.DrillTypes {
		ds, err := s.attemptRepo.DrillTypeStats(ctx, t)
		if err != nil {
			log.Error("failed to get %s stats: %v", t, err)
			return nil, errors.NewInternalError(err)
		}
		if ds.TotalAttempts == 0 {
			continue
		}
		if ds.BestStreak, err = s.sessionRepo.BestStreak(ctx, t); err != nil {
			log.Error("failed to get %s best streak: %v", t, err)
			return nil, errors.NewInternalError(err)
		}
		stats.DrillStats = append(stats.DrillStats, *ds)
	}
	log.Debug("overall stats: sessions=%d attempts=%d", stats.TotalSessions, stats.TotalAttempts)
	return stats, nil
}
