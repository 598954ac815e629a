// Package position wraps a rules-aware chess position for board highlighting.
// Malformed input never panics or errors out: it leaves the adapter without a
// position and every query answers empty.
package position

import (
	"fmt"
	"strings"

	"github.com/corentings/chess/v2"
	"github.com/vytor/chessdrill/internal/errors"
	"github.com/vytor/chessdrill/internal/geometry"
	"github.com/vytor/chessdrill/internal/logger"
	"github.com/vytor/chessdrill/internal/models"
)

// Outcome is the three-way result of SetPosition.
type Outcome int

const (
	OK Outcome = iota
	Empty
	Invalid
)

func (o Outcome) String() string {
	switch o {
	case OK:
		return "ok"
	case Empty:
		return "empty"
	case Invalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// Result describes what SetPosition did. Err is set only for Invalid and is
// either a PARSE_FAILURE or a RULE_SETUP_FAILURE AppError.
type Result struct {
	Outcome Outcome
	Err     error
}

// Side is the colour of a piece.
type Side string

const (
	White Side = "white"
	Black Side = "black"
)

// Piece is a piece standing on a square.
type Piece struct {
	Kind geometry.PieceKind
	Side Side
}

// emptySentinels are notations treated as "intentionally blank".
var emptySentinels = map[string]bool{
	"":                   true,
	"8/8/8/8/8/8/8/8":    true,
	models.EmptyBoardFEN: true,
}

// defaultFields fills the FEN fields after piece placement when omitted.
var defaultFields = []string{"w", "-", "-", "0", "1"}

// Adapter holds at most one position. The zero value has no position.
type Adapter struct {
	pos *chess.Position
	log *logger.Logger
}

func NewAdapter() *Adapter {
	return &Adapter{log: logger.Default().WithPrefix("position")}
}

// SetPosition replaces the current position with the one described by
// notation. Empty and Invalid both leave the adapter without a position.
func (a *Adapter) SetPosition(notation string) Result {
	a.pos = nil
	trimmed := strings.TrimSpace(notation)
	if emptySentinels[trimmed] {
		return Result{Outcome: Empty}
	}

	fen := normalize(trimmed)
	opt, err := chess.FEN(fen)
	if err != nil {
		perr := errors.NewParseFailure(notation, err)
		a.logger().Debug("position unset: %v", perr)
		return Result{Outcome: Invalid, Err: perr}
	}
	if reason := setupProblem(strings.Fields(fen)[0]); reason != "" {
		serr := errors.NewRuleSetupFailure(notation, reason)
		a.logger().Debug("position unset: %v", serr)
		return Result{Outcome: Invalid, Err: serr}
	}

	pos := chess.NewGame(opt).Position()
	if kingCapturable(pos) {
		serr := errors.NewRuleSetupFailure(notation, "side not to move is in check")
		a.logger().Debug("position unset: %v", serr)
		return Result{Outcome: Invalid, Err: serr}
	}
	a.pos = pos
	return Result{Outcome: OK}
}

// HasPosition reports whether a position is set.
func (a *Adapter) HasPosition() bool {
	return a.pos != nil
}

// LegalDestinations returns the fully legal destinations of the piece on
// from, honouring occupancy, side to move, checks and special moves.
func (a *Adapter) LegalDestinations(from geometry.Square) geometry.SquareSet {
	out := make(geometry.SquareSet)
	if a.pos == nil {
		return out
	}
	origin := toChess(from)
	moves := a.pos.ValidMoves()
	for i := range moves {
		m := &moves[i]
		if m.S1() != origin {
			continue
		}
		if sq, ok := fromChess(m.S2()); ok {
			out.Add(sq)
		}
	}
	return out
}

// LegalDestinationsOf is LegalDestinations for a square name; off-board names
// give an empty set.
func (a *Adapter) LegalDestinationsOf(square string) geometry.SquareSet {
	sq, err := geometry.ParseSquare(square)
	if err != nil {
		return make(geometry.SquareSet)
	}
	return a.LegalDestinations(sq)
}

// PieceAt returns the piece on sq, if any.
func (a *Adapter) PieceAt(sq geometry.Square) (Piece, bool) {
	if a.pos == nil {
		return Piece{}, false
	}
	p := a.pos.Board().Piece(toChess(sq))
	if p == chess.NoPiece {
		return Piece{}, false
	}
	kind, ok := kindOf(p.Type())
	if !ok {
		return Piece{}, false
	}
	side := White
	if p.Color() == chess.Black {
		side = Black
	}
	return Piece{Kind: kind, Side: side}, true
}

// ExportNotation re-serialises the current position, or returns the empty
// board sentinel when unset.
func (a *Adapter) ExportNotation() string {
	if a.pos == nil {
		return models.EmptyBoardFEN
	}
	return a.pos.String()
}

func (a *Adapter) logger() *logger.Logger {
	if a.log == nil {
		a.log = logger.Default().WithPrefix("position")
	}
	return a.log
}

// normalize pads a placement-only or partial FEN with default fields.
func normalize(fen string) string {
	fields := strings.Fields(fen)
	for i := len(fields); i >= 1 && i <= len(defaultFields); i++ {
		fields = append(fields, defaultFields[i-1])
	}
	return strings.Join(fields, " ")
}

// setupProblem checks the placement field against constraints the move
// generator relies on. It returns "" for a usable setup.
func setupProblem(placement string) string {
	var whiteKings, blackKings, whitePieces, blackPieces int
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return fmt.Sprintf("expected 8 ranks, got %d", len(ranks))
	}
	for i, row := range ranks {
		backRank := i == 0 || i == 7
		for _, c := range row {
			switch {
			case c >= '1' && c <= '8':
				continue
			case c == 'K':
				whiteKings++
			case c == 'k':
				blackKings++
			case (c == 'P' || c == 'p') && backRank:
				return "pawns on the back rank"
			}
			if c >= 'A' && c <= 'Z' {
				whitePieces++
			} else {
				blackPieces++
			}
		}
	}
	switch {
	case whiteKings != 1 || blackKings != 1:
		return fmt.Sprintf("each side needs exactly one king (white %d, black %d)", whiteKings, blackKings)
	case whitePieces > 16 || blackPieces > 16:
		return "too many pieces"
	}
	return ""
}

// kingCapturable reports whether the side to move can take the enemy king,
// which means the side not to move was left in check.
func kingCapturable(pos *chess.Position) bool {
	board := pos.Board()
	moves := pos.ValidMoves()
	for i := range moves {
		if board.Piece(moves[i].S2()).Type() == chess.King {
			return true
		}
	}
	return false
}

func toChess(sq geometry.Square) chess.Square {
	return chess.NewSquare(chess.File(sq.File()), chess.Rank(sq.Rank()))
}

func fromChess(sq chess.Square) (geometry.Square, bool) {
	return geometry.NewSquare(int(sq.File()), int(sq.Rank()))
}

func kindOf(t chess.PieceType) (geometry.PieceKind, bool) {
	switch t {
	case chess.King:
		return geometry.King, true
	case chess.Queen:
		return geometry.Queen, true
	case chess.Rook:
		return geometry.Rook, true
	case chess.Bishop:
		return geometry.Bishop, true
	case chess.Knight:
		return geometry.Knight, true
	case chess.Pawn:
		return geometry.Pawn, true
	}
	return "", false
}
