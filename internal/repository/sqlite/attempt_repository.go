package sqlite

import (
	"context"
	"database/sql"
	"math"

	"github.com/vytor/chessdrill/internal/logger"
	"github.com/vytor/chessdrill/internal/models"
	"github.com/vytor/chessdrill/internal/repository"
)

type attemptRepository struct {
	db *sql.DB
}

// NewAttemptRepository creates a new AttemptRepository implementation
func NewAttemptRepository(db *sql.DB) repository.AttemptRepository {
	return &attemptRepository{db: db}
}

func (r *attemptRepository) Insert(ctx context.Context, a models.Attempt) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("attempt_repo")
	log.Debug("inserting attempt: session_id=%s, correct=%v", a.SessionID, a.Correct)

	query, args, err := sqlBuilder.Insert("attempts").
		Columns("session_id", "drill_type", "question", "correct_answer", "user_answer",
			"correct", "response_ms", "answered_at", "metadata_piece_kind", "metadata_fen").
		Values(a.SessionID, a.DrillType, a.Question, a.CorrectAnswer, a.UserAnswer,
			a.Correct, a.ResponseMs, a.AnsweredAt, a.Metadata.PieceKind, a.Metadata.FEN).
		ToSql()
	if err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to insert attempt: %v", err)
		return 0, err
	}
	return res.LastInsertId()
}

func (r *attemptRepository) ListBySession(ctx context.Context, sessionID string) ([]models.Attempt, error) {
	log := logger.FromContext(ctx).WithPrefix("attempt_repo")

	query, args, err := sqlBuilder.Select(
		"id", "session_id", "drill_type", "question", "correct_answer", "user_answer",
		"correct", "response_ms", "answered_at", "metadata_piece_kind", "metadata_fen",
	).From("attempts").
		Where("session_id = ?", sessionID).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list attempts: %v", err)
		return nil, err
	}
	defer rows.Close()

	var attempts []models.Attempt
	for rows.Next() {
		var a models.Attempt
		if err := rows.Scan(&a.ID, &a.SessionID, &a.DrillType, &a.Question, &a.CorrectAnswer, &a.UserAnswer,
			&a.Correct, &a.ResponseMs, &a.AnsweredAt, &a.Metadata.PieceKind, &a.Metadata.FEN); err != nil {
			log.Error("failed to scan attempt row: %v", err)
			return nil, err
		}
		attempts = append(attempts, a)
	}
	log.Debug("found %d attempts for session %s", len(attempts), sessionID)
	return attempts, rows.Err()
}

func (r *attemptRepository) SessionSummary(ctx context.Context, sessionID string) (*models.DrillSessionSummary, error) {
	attempts, err := r.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	var sum models.DrillSessionSummary
	results := make([]bool, 0, len(attempts))
	totalMs := 0
	for _, a := range attempts {
		sum.TotalAttempts++
		if a.Correct {
			sum.Correct++
		}
		totalMs += a.ResponseMs
		results = append(results, a.Correct)
	}
	if sum.TotalAttempts > 0 {
		sum.AvgResponseMs = int(math.Round(float64(totalMs) / float64(sum.TotalAttempts)))
	}
	sum.StreakBest = bestStreak(results)
	return &sum, nil
}

// SquareAccuracy groups attempts by the square that was asked for. An empty
// drillType covers every drill.
func (r *attemptRepository) SquareAccuracy(ctx context.Context, drillType models.DrillType) ([]models.SquareAccuracy, error) {
	log := logger.FromContext(ctx).WithPrefix("attempt_repo")
	log.Debug("fetching square accuracy: drill_type=%s", drillType)

	q := sqlBuilder.Select("correct_answer", "COUNT(*)", "COALESCE(SUM(correct), 0)").
		From("attempts").
		GroupBy("correct_answer").
		OrderBy("correct_answer")
	if drillType != "" {
		q = q.Where("drill_type = ?", drillType)
	}
	query, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query square accuracy: %v", err)
		return nil, err
	}
	defer rows.Close()

	var out []models.SquareAccuracy
	for rows.Next() {
		var sa models.SquareAccuracy
		if err := rows.Scan(&sa.Square, &sa.Total, &sa.Correct); err != nil {
			log.Error("failed to scan square accuracy row: %v", err)
			return nil, err
		}
		sa.Accuracy = accuracy(sa.Correct, sa.Total)
		out = append(out, sa)
	}
	return out, rows.Err()
}

func (r *attemptRepository) DrillTypeStats(ctx context.Context, drillType models.DrillType) (*models.DrillTypeStats, error) {
	log := logger.FromContext(ctx).WithPrefix("attempt_repo")

	query, args, err := sqlBuilder.Select("COUNT(*)", "COALESCE(SUM(correct), 0)", "COALESCE(AVG(response_ms), 0)").
		From("attempts").
		Where("drill_type = ?", drillType).
		ToSql()
	if err != nil {
		return nil, err
	}

	st := models.DrillTypeStats{DrillType: drillType}
	var avg float64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&st.TotalAttempts, &st.CorrectAttempts, &avg); err != nil {
		log.Error("failed to query drill stats: %v", err)
		return nil, err
	}
	st.AvgResponseMs = int(math.Round(avg))
	st.Accuracy = accuracy(st.CorrectAttempts, st.TotalAttempts)
	return &st, nil
}

// Totals aggregates every attempt. Session counts and streaks are filled in
// by the caller.
func (r *attemptRepository) Totals(ctx context.Context) (*models.OverallStats, error) {
	log := logger.FromContext(ctx).WithPrefix("attempt_repo")

	query, args, err := sqlBuilder.Select("COUNT(*)", "COALESCE(SUM(correct), 0)", "COALESCE(AVG(response_ms), 0)").
		From("attempts").
		ToSql()
	if err != nil {
		return nil, err
	}

	var total, correct int
	var avg float64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&total, &correct, &avg); err != nil {
		log.Error("failed to query attempt totals: %v", err)
		return nil, err
	}
	return &models.OverallStats{
		TotalAttempts:   total,
		OverallAccuracy: accuracy(correct, total),
		AvgResponseMs:   int(math.Round(avg)),
	}, nil
}
