// Package drill is the drill session engine: it owns the current question,
// interprets board clicks and typed answers for the active drill type,
// forwards answers to the server and keeps the learner's running stats.
//
// A Session is owned by a single event loop goroutine and is not safe for
// concurrent use. Network work is handed to a Queue and comes back later as a
// Result passed to Dispatch.
package drill

import (
	"context"
	"fmt"
	"strings"

	"github.com/vytor/chessdrill/internal/errors"
	"github.com/vytor/chessdrill/internal/geometry"
	"github.com/vytor/chessdrill/internal/logger"
	"github.com/vytor/chessdrill/internal/models"
	"github.com/vytor/chessdrill/internal/position"
)

// State is the lifecycle state of a Session.
type State int

const (
	Idle State = iota
	AwaitingQuestion
	QuestionActive
	AwaitingAnswer
	Ended
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case AwaitingQuestion:
		return "awaiting_question"
	case QuestionActive:
		return "question_active"
	case AwaitingAnswer:
		return "awaiting_answer"
	case Ended:
		return "ended"
	default:
		return "unknown"
	}
}

// Board is the visual board widget the session drives.
type Board interface {
	SetPosition(fen string)
	HighlightSquare(sq geometry.Square)
	HighlightSquares(sqs []geometry.Square)
	ClearHighlights()
	// EnableSelection installs the single click interceptor, replacing any
	// previous one.
	EnableSelection(fn func(geometry.Square))
	DisableSelection()
}

// Surface shows server feedback and stats to the learner.
type Surface interface {
	ShowFeedback(text string)
	ShowSummary(text string)
	ShowStats(st Stats)
	DisableEnd()
}

// Stopwatch times the learner's response to the active question.
type Stopwatch interface {
	Start()
	Stop() int
	Elapsed() int
	Reset()
}

// StartRequest asks the server for a new session.
type StartRequest struct {
	DrillType   models.DrillType
	InputMethod models.InputMethod
	Perspective string
}

// Queue runs network requests asynchronously. Each request eventually yields
// exactly one Result for Dispatch. Enqueue methods never block.
type Queue interface {
	EnqueueStart(req StartRequest) error
	EnqueueCheck(sub models.AnswerSubmission, seq uint64) error
	EnqueueEnd(sessionID string) error
}

// ResultKind tells which request a Result completes.
type ResultKind int

const (
	ResultStart ResultKind = iota + 1
	ResultCheck
	ResultEnd
)

func (k ResultKind) String() string {
	switch k {
	case ResultStart:
		return "start"
	case ResultCheck:
		return "check"
	case ResultEnd:
		return "end"
	default:
		return "unknown"
	}
}

// Result is the completion of a queued request. SessionID and Seq are the
// values captured when the request was sent.
type Result struct {
	Kind       ResultKind
	SessionID  string
	Seq        uint64
	Start      *models.StartResult
	Check      *models.CheckResult
	Summary    *models.DrillSessionSummary
	ResponseMs int
	Err        error
}

// ClickEvaluation describes a click during a piece-movement question.
type ClickEvaluation struct {
	Square    geometry.Square
	Piece     geometry.PieceKind
	Candidate bool
	Legal     bool
}

// Config holds the session's drill settings.
type Config struct {
	DrillType   models.DrillType
	InputMethod models.InputMethod
	Perspective string
}

type Session struct {
	board   Board
	surface Surface
	queue   Queue
	clock   Stopwatch
	adapter *position.Adapter
	log     *logger.Logger

	drillType   models.DrillType
	inputMethod models.InputMethod
	perspective string

	state     State
	sessionID string
	question  *models.Question
	seq       uint64
	stats     Stats
	lastClick *ClickEvaluation
}

func NewSession(cfg Config, board Board, surface Surface, queue Queue, clock Stopwatch) *Session {
	drillType := cfg.DrillType
	if !drillType.Valid() {
		drillType = models.DrillTypeNameSquare
	}
	return &Session{
		board:       board,
		surface:     surface,
		queue:       queue,
		clock:       clock,
		adapter:     position.NewAdapter(),
		log:         logger.Default().WithPrefix("drill"),
		drillType:   drillType,
		inputMethod: cfg.InputMethod,
		perspective: cfg.Perspective,
	}
}

func (s *Session) State() State                { return s.state }
func (s *Session) SessionID() string           { return s.sessionID }
func (s *Session) DrillType() models.DrillType { return s.drillType }
func (s *Session) Stats() Stats                { return s.stats }
func (s *Session) Accuracy() int               { return s.stats.Accuracy() }
func (s *Session) AverageResponseMs() int      { return s.stats.AverageResponseMs() }
func (s *Session) LastClick() *ClickEvaluation { return s.lastClick }
func (s *Session) Position() *position.Adapter { return s.adapter }

// Question returns a copy of the active question.
func (s *Session) Question() (models.Question, bool) {
	if s.question == nil {
		return models.Question{}, false
	}
	return *s.question, true
}

// SetDrillType changes the drill used for the next Start. The drill of a
// running session cannot change.
func (s *Session) SetDrillType(t models.DrillType) error {
	if !t.Valid() {
		return errors.NewValidationError("drill_type", "unknown drill type "+string(t))
	}
	if s.state != Idle && s.state != Ended {
		return errors.NewBadRequestError(fmt.Sprintf("cannot change drill type while %s", s.state))
	}
	s.drillType = t
	return nil
}

// Start asks the server for a new session. It is accepted only when no
// session is running.
func (s *Session) Start(ctx context.Context, method models.InputMethod, perspective string) error {
	log := logger.FromContext(ctx).WithPrefix("drill")
	if s.state != Idle && s.state != Ended {
		log.Debug("start ignored in state %s", s.state)
		return nil
	}
	if method != "" {
		s.inputMethod = method
	}
	if perspective != "" {
		s.perspective = perspective
	}

	req := StartRequest{DrillType: s.drillType, InputMethod: s.inputMethod, Perspective: s.perspective}
	if err := s.queue.EnqueueStart(req); err != nil {
		log.Warn("failed to request session: %v", err)
		return errors.NewNetworkFailure("start session", err)
	}
	log.Info("requested %s session", s.drillType)
	s.state = AwaitingQuestion
	return nil
}

// QuestionReady begins a session with q. It is accepted in any state and
// replaces the current session when q carries a session ID.
func (s *Session) QuestionReady(q models.Question) {
	if q.SessionID != "" && q.SessionID != s.sessionID {
		if s.sessionID != "" {
			s.log.Info("session %s replaced by %s", s.sessionID, q.SessionID)
		}
		s.sessionID = q.SessionID
	}
	if q.Type.Valid() {
		s.drillType = q.Type
	}
	s.setup(q)
}

// NextQuestion replaces the active question with q. Questions for another
// session, or arriving when no question is running, are dropped.
func (s *Session) NextQuestion(q models.Question) {
	if s.state != QuestionActive && s.state != AwaitingAnswer {
		s.stale("next question in state %s", s.state)
		return
	}
	if q.SessionID != "" && q.SessionID != s.sessionID {
		s.stale("next question for session %s, current %s", q.SessionID, s.sessionID)
		return
	}
	s.setup(q)
}

func (s *Session) setup(q models.Question) {
	s.board.DisableSelection()
	s.board.ClearHighlights()

	q.Type = s.drillType
	if q.SessionID == "" {
		q.SessionID = s.sessionID
	}
	s.question = &q
	s.seq++
	s.lastClick = nil
	s.state = QuestionActive

	res := s.adapter.SetPosition(q.FEN)
	switch res.Outcome {
	case position.Empty:
		s.board.SetPosition(models.EmptyBoardFEN)
	case position.Invalid:
		// The board still shows the pieces; only legality is unavailable.
		s.log.Debug("question %s has no rules position: %v", q.Target, res.Err)
		s.board.SetPosition(q.FEN)
	default:
		s.board.SetPosition(q.FEN)
	}

	s.clock.Reset()
	s.clock.Start()
	s.arm()

	s.log.WithFields(map[string]any{
		"drill_type": s.drillType,
		"target":     q.Target,
		"seq":        s.seq,
	}).Debug("question active")
}

// arm installs the drill-specific highlights and click interception for the
// active question.
func (s *Session) arm() {
	q := s.question
	target, err := geometry.ParseSquare(q.Target)
	hasTarget := err == nil

	switch s.drillType {
	case models.DrillTypeNameSquare:
		if hasTarget {
			s.board.HighlightSquare(target)
		}
	case models.DrillTypeFindSquare:
		seq := s.seq
		s.board.EnableSelection(func(sq geometry.Square) {
			if s.seq != seq || s.state != QuestionActive {
				return
			}
			s.board.DisableSelection()
			if err := s.SubmitAnswer(sq.String()); err != nil {
				s.log.Warn("answer for %s not sent: %v", sq, err)
			}
		})
	case models.DrillTypePieceMovement:
		if hasTarget {
			s.board.HighlightSquare(target)
		}
		seq := s.seq
		s.board.EnableSelection(func(sq geometry.Square) {
			if s.seq != seq {
				return
			}
			s.evaluateClick(sq)
		})
	case models.DrillTypeMoveNotation:
	}
}

func (s *Session) evaluateClick(sq geometry.Square) {
	q := s.question
	if q == nil {
		return
	}
	origin, err := geometry.ParseSquare(q.Target)
	if err != nil {
		s.stale("click with unusable target %q", q.Target)
		return
	}
	kind := pieceKindOf(*q)
	eval := ClickEvaluation{
		Square:    sq,
		Piece:     kind,
		Candidate: geometry.CandidateDestinations(kind, origin).Contains(sq),
		Legal:     s.adapter.LegalDestinations(origin).Contains(sq),
	}
	s.lastClick = &eval
	s.log.WithFields(map[string]any{
		"piece":     kind,
		"from":      origin,
		"to":        sq,
		"candidate": eval.Candidate,
		"legal":     eval.Legal,
	}).Debug("piece movement click")
}

// pieceKindOf prefers the structured field and falls back to the fourth word
// of prompts shaped like "Where can the knight move?".
func pieceKindOf(q models.Question) geometry.PieceKind {
	if k, err := geometry.ParsePieceKind(q.PieceKind); err == nil {
		return k
	}
	words := strings.Fields(strings.ToLower(q.Prompt))
	if len(words) < 4 {
		return ""
	}
	k, err := geometry.ParsePieceKind(strings.Trim(words[3], "?.!,"))
	if err != nil {
		return ""
	}
	return k
}

// SubmitAnswer forwards answer for the active question. The server judges
// it; the session only waits for the Result.
func (s *Session) SubmitAnswer(answer string) error {
	if s.state != QuestionActive || s.question == nil || s.sessionID == "" {
		s.stale("answer %q in state %s", answer, s.state)
		return nil
	}
	sub := models.AnswerSubmission{
		SessionID:  s.sessionID,
		Target:     s.question.Target,
		Answer:     answer,
		DrillType:  s.drillType,
		ResponseMs: s.clock.Stop(),
		PieceKind:  s.question.PieceKind,
	}
	if fen := strings.TrimSpace(s.question.FEN); !isEmptyBoard(fen) {
		sub.FEN = fen
	}
	if err := s.queue.EnqueueCheck(sub, s.seq); err != nil {
		s.clock.Start()
		s.arm()
		return errors.NewNetworkFailure("check answer", err)
	}
	s.state = AwaitingAnswer
	return nil
}

// RequestEnd ends the running session. Without a session it does nothing.
func (s *Session) RequestEnd() error {
	if s.sessionID == "" || s.state == Ended {
		s.stale("end in state %s", s.state)
		return nil
	}
	s.board.DisableSelection()
	s.clock.Stop()
	s.state = Ended
	s.surface.DisableEnd()
	if err := s.queue.EnqueueEnd(s.sessionID); err != nil {
		return errors.NewNetworkFailure("end session", err)
	}
	s.log.Info("session %s ended", s.sessionID)
	return nil
}

// Dispatch applies a completed request. A NETWORK_FAILURE AppError is
// returned when the request failed; stale results are dropped.
func (s *Session) Dispatch(r Result) error {
	switch r.Kind {
	case ResultStart:
		return s.dispatchStart(r)
	case ResultCheck:
		return s.dispatchCheck(r)
	case ResultEnd:
		return s.dispatchEnd(r)
	}
	s.stale("result of unknown kind %d", r.Kind)
	return nil
}

func (s *Session) dispatchStart(r Result) error {
	if s.state != AwaitingQuestion {
		s.stale("start result in state %s", s.state)
		return nil
	}
	if r.Err != nil {
		s.state = Idle
		return errors.NewNetworkFailure("start session", r.Err)
	}
	if r.Start == nil || r.Start.Question == nil {
		s.state = Idle
		return errors.NewNetworkFailure("start session", fmt.Errorf("empty start response"))
	}
	q := *r.Start.Question
	if q.SessionID == "" {
		q.SessionID = r.Start.SessionID
	}
	s.QuestionReady(q)
	return nil
}

func (s *Session) dispatchCheck(r Result) error {
	if r.SessionID != s.sessionID || s.state == Ended {
		s.stale("check result for session %s, current %s (%s)", r.SessionID, s.sessionID, s.state)
		return nil
	}
	current := r.Seq == s.seq && s.state == AwaitingAnswer

	if r.Err != nil {
		if current {
			s.state = QuestionActive
			s.clock.Start()
			s.arm()
		}
		return errors.NewNetworkFailure("check answer", r.Err)
	}
	if r.Check == nil {
		s.stale("check result without body")
		return nil
	}

	s.UpdateStats(r.Check.Correct, r.ResponseMs)
	if r.Check.Feedback != "" {
		s.surface.ShowFeedback(r.Check.Feedback)
	}
	if !current {
		return nil
	}
	if r.Check.NextQuestion != nil {
		s.NextQuestion(*r.Check.NextQuestion)
		return nil
	}
	s.state = QuestionActive
	s.clock.Start()
	s.arm()
	return nil
}

func (s *Session) dispatchEnd(r Result) error {
	if r.SessionID != s.sessionID {
		s.stale("end result for session %s, current %s", r.SessionID, s.sessionID)
		return nil
	}
	if r.Err != nil {
		return errors.NewNetworkFailure("end session", r.Err)
	}
	if r.Summary != nil {
		s.surface.ShowSummary(FormatSummary(*r.Summary))
	}
	return nil
}

// UpdateStats records one judged answer.
func (s *Session) UpdateStats(correct bool, responseMs int) {
	s.stats.record(correct, responseMs)
	s.surface.ShowStats(s.stats)
}

func (s *Session) ResetStats() {
	s.stats = Stats{}
	s.surface.ShowStats(s.stats)
}

func (s *Session) stale(format string, args ...any) {
	s.log.WithField("code", errors.ErrCodeStaleEvent).Debug("ignored: "+format, args...)
}

func isEmptyBoard(fen string) bool {
	return fen == "" || fen == models.EmptyBoardFEN || fen == "8/8/8/8/8/8/8/8"
}
