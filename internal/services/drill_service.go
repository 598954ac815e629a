package services

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vytor/chessdrill/internal/errors"
	"github.com/vytor/chessdrill/internal/geometry"
	"github.com/vytor/chessdrill/internal/logger"
	"github.com/vytor/chessdrill/internal/models"
	"github.com/vytor/chessdrill/internal/position"
	"github.com/vytor/chessdrill/internal/repository"
)

// DrillService handles drill session business logic
type DrillService interface {
	StartSession(ctx context.Context, drillType models.DrillType, method models.InputMethod, perspective string) (*models.StartResult, error)
	CheckAnswer(ctx context.Context, sub models.AnswerSubmission) (*models.CheckResult, error)
	EndSession(ctx context.Context, sessionID string) (*models.DrillSessionSummary, error)
	LegalMoves(ctx context.Context, fen, square string) (*models.LegalMovesResult, error)
}

type drillService struct {
	sessionRepo repository.DrillSessionRepository
	attemptRepo repository.AttemptRepository
	questions   *QuestionGenerator
	now         func() time.Time
	newID       func() string
}

// DrillServiceOption customises a DrillService.
type DrillServiceOption func(*drillService)

// WithClock replaces the wall clock used for timestamps.
func WithClock(now func() time.Time) DrillServiceOption {
	return func(s *drillService) { s.now = now }
}

// WithIDGenerator replaces the session ID generator.
func WithIDGenerator(newID func() string) DrillServiceOption {
	return func(s *drillService) { s.newID = newID }
}

// NewDrillService creates a new DrillService
func NewDrillService(
	sessionRepo repository.DrillSessionRepository,
	attemptRepo repository.AttemptRepository,
	questions *QuestionGenerator,
	opts ...DrillServiceOption,
) DrillService {
	s := &drillService{
		sessionRepo: sessionRepo,
		attemptRepo: attemptRepo,
		questions:   questions,
		now:         time.Now,
		newID:       uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *drillService) StartSession(ctx context.Context, drillType models.DrillType, method models.InputMethod, perspective string) (*models.StartResult, error) {
	log := logger.FromContext(ctx)

	if drillType == "" {
		drillType = models.DrillTypeNameSquare
	}
	if !drillType.Valid() {
		return nil, errors.NewValidationError("drill_type", fmt.Sprintf("unknown drill type %q", drillType))
	}
	if method == "" {
		method = models.InputMethodType
	}
	if perspective != "black" {
		perspective = "white"
	}

	session := models.DrillSession{
		ID:          s.newID(),
		DrillType:   drillType,
		InputMethod: method,
		Perspective: perspective,
		StartedAt:   s.now().UTC(),
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		log.Error("failed to create drill session: %v", err)
		return nil, errors.NewInternalError(err)
	}

	q := s.questions.Generate(drillType)
	q.SessionID = session.ID
	log.Info("started %s session %s", drillType, session.ID)
	return &models.StartResult{SessionID: session.ID, Question: &q}, nil
}

func (s *drillService) CheckAnswer(ctx context.Context, sub models.AnswerSubmission) (*models.CheckResult, error) {
	log := logger.FromContext(ctx).WithField("session_id", sub.SessionID)

	if sub.SessionID == "" {
		return nil, errors.NewValidationError("session_id", "cannot be empty")
	}
	target := normalizeAnswer(sub.Target)
	if target == "" {
		return nil, errors.NewValidationError("target", "cannot be empty")
	}

	session, err := s.getSession(ctx, sub.SessionID)
	if err != nil {
		return nil, err
	}
	if session.EndedAt != nil {
		return nil, errors.NewBadRequestError("session has ended")
	}

	drillType := session.DrillType
	if sub.DrillType.Valid() {
		drillType = sub.DrillType
	}
	answer := normalizeAnswer(sub.Answer)
	attempt := models.Attempt{
		SessionID:     sub.SessionID,
		DrillType:     drillType,
		Question:      sub.Target,
		CorrectAnswer: target,
		UserAnswer:    answer,
		Correct:       answer == target,
		ResponseMs:    max(sub.ResponseMs, 0),
		AnsweredAt:    s.now().UTC(),
		Metadata: models.AttemptMetadata{
			PieceKind: sub.PieceKind,
			FEN:       sub.FEN,
		},
	}
	if _, err := s.attemptRepo.Insert(ctx, attempt); err != nil {
		log.Error("failed to record attempt: %v", err)
		return nil, errors.NewInternalError(err)
	}
	log.Debug("answer %q for %q correct=%v", answer, target, attempt.Correct)

	feedback := "Correct!"
	if !attempt.Correct {
		feedback = fmt.Sprintf("Incorrect! The answer was %s.", target)
	}
	next := s.questions.Generate(session.DrillType)
	next.SessionID = session.ID
	return &models.CheckResult{Correct: attempt.Correct, Feedback: feedback, NextQuestion: &next}, nil
}

// EndSession closes the session and returns its summary. Ending an ended
// session returns the stored summary.
func (s *drillService) EndSession(ctx context.Context, sessionID string) (*models.DrillSessionSummary, error) {
	log := logger.FromContext(ctx).WithField("session_id", sessionID)

	if sessionID == "" {
		return nil, errors.NewValidationError("session_id", "cannot be empty")
	}
	session, err := s.getSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.EndedAt != nil {
		log.Debug("session already ended")
		return &session.Summary, nil
	}

	summary, err := s.attemptRepo.SessionSummary(ctx, sessionID)
	if err != nil {
		log.Error("failed to summarise session: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if err := s.sessionRepo.End(ctx, sessionID, s.now().UTC(), *summary); err != nil {
		log.Error("failed to end session: %v", err)
		return nil, errors.NewInternalError(err)
	}
	log.Info("session ended: %d/%d correct", summary.Correct, summary.TotalAttempts)
	return summary, nil
}

// LegalMoves lists the legal destinations of the piece on square in fen.
// Positions the rules engine cannot use yield no moves.
func (s *drillService) LegalMoves(ctx context.Context, fen, square string) (*models.LegalMovesResult, error) {
	sq, err := geometry.ParseSquare(strings.ToLower(strings.TrimSpace(square)))
	if err != nil {
		return nil, errors.NewValidationError("square", err.Error())
	}

	adapter := position.NewAdapter()
	if res := adapter.SetPosition(fen); res.Outcome == position.Invalid {
		logger.FromContext(ctx).Debug("legal moves requested for unusable position: %v", res.Err)
	}
	return &models.LegalMovesResult{
		Square: sq.String(),
		Moves:  adapter.LegalDestinations(sq).Strings(),
	}, nil
}

func (s *drillService) getSession(ctx context.Context, id string) (*models.DrillSession, error) {
	session, err := s.sessionRepo.Get(ctx, id)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NewNotFoundError("drill session", id)
		}
		logger.FromContext(ctx).Error("failed to load session: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if session == nil {
		return nil, errors.NewNotFoundError("drill session", id)
	}
	return session, nil
}

func normalizeAnswer(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
