package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/vytor/chessdrill/internal/logger"
	"github.com/vytor/chessdrill/internal/models"
	"github.com/vytor/chessdrill/internal/repository"
)

type drillSessionRepository struct {
	db *sql.DB
}

// NewDrillSessionRepository creates a new DrillSessionRepository implementation
func NewDrillSessionRepository(db *sql.DB) repository.DrillSessionRepository {
	return &drillSessionRepository{db: db}
}

func (r *drillSessionRepository) Create(ctx context.Context, s models.DrillSession) error {
	log := logger.FromContext(ctx).WithPrefix("session_repo")
	log.Debug("creating drill session: id=%s, drill_type=%s", s.ID, s.DrillType)

	query, args, err := sqlBuilder.Insert("drill_sessions").
		Columns("id", "drill_type", "input_method", "perspective", "started_at").
		Values(s.ID, s.DrillType, s.InputMethod, s.Perspective, s.StartedAt).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		log.Error("failed to create drill session: %v", err)
		return err
	}
	return nil
}

func (r *drillSessionRepository) Get(ctx context.Context, id string) (*models.DrillSession, error) {
	log := logger.FromContext(ctx).WithPrefix("session_repo")
	log.Debug("getting drill session: id=%s", id)

	query, args, err := sqlBuilder.Select(
		"id", "drill_type", "input_method", "perspective", "started_at", "ended_at",
		"total_attempts", "correct", "avg_response_ms", "streak_best",
	).From("drill_sessions").
		Where("id = ?", id).
		ToSql()
	if err != nil {
		return nil, err
	}

	var s models.DrillSession
	var endedAt sql.NullTime
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&s.ID, &s.DrillType, &s.InputMethod, &s.Perspective, &s.StartedAt, &endedAt,
		&s.Summary.TotalAttempts, &s.Summary.Correct, &s.Summary.AvgResponseMs, &s.Summary.StreakBest)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("drill session not found: id=%s", id)
		} else {
			log.Error("failed to get drill session: %v", err)
		}
		return nil, err
	}
	if endedAt.Valid {
		t := endedAt.Time
		s.EndedAt = &t
	}
	return &s, nil
}

func (r *drillSessionRepository) End(ctx context.Context, id string, endedAt time.Time, summary models.DrillSessionSummary) error {
	log := logger.FromContext(ctx).WithPrefix("session_repo")
	log.Debug("ending drill session: id=%s, total=%d, correct=%d", id, summary.TotalAttempts, summary.Correct)

	query, args, err := sqlBuilder.Update("drill_sessions").
		Set("ended_at", endedAt).
		Set("total_attempts", summary.TotalAttempts).
		Set("correct", summary.Correct).
		Set("avg_response_ms", summary.AvgResponseMs).
		Set("streak_best", summary.StreakBest).
		Where("id = ?", id).
		ToSql()
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to end drill session: %v", err)
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *drillSessionRepository) Count(ctx context.Context) (int, error) {
	query, args, err := sqlBuilder.Select("COUNT(*)").From("drill_sessions").ToSql()
	if err != nil {
		return 0, err
	}

	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		logger.FromContext(ctx).WithPrefix("session_repo").Error("failed to count drill sessions: %v", err)
		return 0, err
	}
	return count, nil
}

// BestStreak returns the best streak recorded by any ended session, limited
// to drillType unless it is empty.
func (r *drillSessionRepository) BestStreak(ctx context.Context, drillType models.DrillType) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("session_repo")

	q := sqlBuilder.Select("COALESCE(MAX(streak_best), 0)").From("drill_sessions")
	if drillType != "" {
		q = q.Where("drill_type = ?", drillType)
	}
	query, args, err := q.ToSql()
	if err != nil {
		return 0, err
	}

	var best int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&best); err != nil {
		log.Error("failed to query best streak: %v", err)
		return 0, err
	}
	return best, nil
}
