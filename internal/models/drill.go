package models

import "time"

// DrillType represents the type of drill
type DrillType string

const (
	DrillTypeNameSquare    DrillType = "name_square"
	DrillTypeFindSquare    DrillType = "find_square"
	DrillTypePieceMovement DrillType = "piece_movement"
	DrillTypeMoveNotation  DrillType = "move_notation"
)

// DrillTypes lists every supported drill in display order.
var DrillTypes = []DrillType{
	DrillTypeNameSquare,
	DrillTypeFindSquare,
	DrillTypePieceMovement,
	DrillTypeMoveNotation,
}

// Valid reports whether t is one of the known drill types.
func (t DrillType) Valid() bool {
	for _, known := range DrillTypes {
		if t == known {
			return true
		}
	}
	return false
}

// InputMethod represents how the learner provides answers
type InputMethod string

const (
	InputMethodType       InputMethod = "type"
	InputMethodClick      InputMethod = "click"
	InputMethodGrid       InputMethod = "grid"
	InputMethodBoardClick InputMethod = "board_click"
)

// EmptyBoardFEN is the sentinel for "no pieces on the board".
const EmptyBoardFEN = "8/8/8/8/8/8/8/8 w - - 0 1"

// Question is a drill question as sent to the client.
type Question struct {
	SessionID string    `json:"session_id,omitempty"`
	Type      DrillType `json:"type"`
	Target    string    `json:"target"`
	Prompt    string    `json:"prompt"`
	FEN       string    `json:"fen,omitempty"`
	PieceKind string    `json:"piece_kind,omitempty"`
}

// DrillSessionSummary contains aggregated stats for a session
type DrillSessionSummary struct {
	TotalAttempts int `json:"total_attempts"`
	Correct       int `json:"correct"`
	AvgResponseMs int `json:"avg_response_ms"`
	StreakBest    int `json:"streak_best"`
}

// DrillSession is one learner's server-side run of questions.
type DrillSession struct {
	ID          string              `json:"id"`
	DrillType   DrillType           `json:"drill_type"`
	InputMethod InputMethod         `json:"input_method"`
	Perspective string              `json:"perspective"`
	StartedAt   time.Time           `json:"started_at"`
	EndedAt     *time.Time          `json:"ended_at"`
	Summary     DrillSessionSummary `json:"summary"`
}

// AttemptMetadata contains additional info for certain drill types
type AttemptMetadata struct {
	PieceKind string `json:"piece_kind,omitempty"`
	FEN       string `json:"fen,omitempty"`
}

// Attempt is a single judged answer.
type Attempt struct {
	ID            int64           `json:"id"`
	SessionID     string          `json:"session_id"`
	DrillType     DrillType       `json:"drill_type"`
	Question      string          `json:"question"`
	CorrectAnswer string          `json:"correct_answer"`
	UserAnswer    string          `json:"user_answer"`
	Correct       bool            `json:"correct"`
	ResponseMs    int             `json:"response_ms"`
	AnsweredAt    time.Time       `json:"answered_at"`
	Metadata      AttemptMetadata `json:"metadata,omitempty"`
}

// AnswerSubmission is the payload of the answer-check endpoint. PieceKind
// and FEN echo the question's position for the attempt record.
type AnswerSubmission struct {
	SessionID  string    `json:"session_id"`
	Target     string    `json:"target"`
	Answer     string    `json:"answer"`
	DrillType  DrillType `json:"drill_type"`
	ResponseMs int       `json:"response_ms"`
	PieceKind  string    `json:"piece_kind,omitempty"`
	FEN        string    `json:"fen,omitempty"`
}

// CheckResult is the answer-check endpoint's response.
type CheckResult struct {
	Correct      bool      `json:"correct"`
	Feedback     string    `json:"feedback"`
	NextQuestion *Question `json:"next_question,omitempty"`
}

// StartResult is the start endpoint's response.
type StartResult struct {
	SessionID string    `json:"session_id"`
	Question  *Question `json:"question"`
}

// LegalMovesResult lists the legal destinations of the piece on Square.
type LegalMovesResult struct {
	Square string   `json:"square"`
	Moves  []string `json:"moves"`
}
