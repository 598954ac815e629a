package services

import (
	"fmt"
	"math/rand/v2"

	"github.com/corentings/chess/v2"
	"github.com/vytor/chessdrill/internal/geometry"
	"github.com/vytor/chessdrill/internal/models"
)

// movementPieces are the pieces asked about in piece_movement drills.
var movementPieces = []geometry.PieceKind{
	geometry.Knight,
	geometry.Bishop,
	geometry.Rook,
	geometry.Queen,
	geometry.King,
}

var whitePieces = map[geometry.PieceKind]chess.Piece{
	geometry.Knight: chess.WhiteKnight,
	geometry.Bishop: chess.WhiteBishop,
	geometry.Rook:   chess.WhiteRook,
	geometry.Queen:  chess.WhiteQueen,
	geometry.King:   chess.WhiteKing,
	geometry.Pawn:   chess.WhitePawn,
}

// QuestionGenerator produces random drill questions.
type QuestionGenerator struct {
	rng *rand.Rand
}

func NewQuestionGenerator(rng *rand.Rand) *QuestionGenerator {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &QuestionGenerator{rng: rng}
}

// Generate returns a question for drillType; unknown types fall back to
// name_square.
func (g *QuestionGenerator) Generate(drillType models.DrillType) models.Question {
	switch drillType {
	case models.DrillTypeFindSquare:
		target := g.randomSquare()
		return models.Question{
			Type:   models.DrillTypeFindSquare,
			Target: target.String(),
			Prompt: target.String(),
			FEN:    models.EmptyBoardFEN,
		}
	case models.DrillTypePieceMovement:
		return g.pieceMovement(movementPieces[g.rng.IntN(len(movementPieces))])
	case models.DrillTypeMoveNotation:
		return g.moveNotation()
	default:
		target := g.randomSquare()
		return models.Question{
			Type:   models.DrillTypeNameSquare,
			Target: target.String(),
			Prompt: "Name the highlighted square",
			FEN:    models.EmptyBoardFEN,
		}
	}
}

func (g *QuestionGenerator) randomSquare() geometry.Square {
	return geometry.Square(g.rng.IntN(geometry.NumSquares))
}

func (g *QuestionGenerator) pieceMovement(kind geometry.PieceKind) models.Question {
	target := g.randomSquare()
	return models.Question{
		Type:      models.DrillTypePieceMovement,
		Target:    target.String(),
		Prompt:    fmt.Sprintf("Where can the %s move?", kind),
		FEN:       SinglePieceFEN(kind, target),
		PieceKind: string(kind),
	}
}

// moveNotation picks a legal move from the starting position and asks for
// its destination.
func (g *QuestionGenerator) moveNotation() models.Question {
	pos := chess.NewGame().Position()
	moves := pos.ValidMoves()
	m := &moves[g.rng.IntN(len(moves))]
	san := chess.AlgebraicNotation{}.Encode(pos, m)
	return models.Question{
		Type:   models.DrillTypeMoveNotation,
		Target: m.S2().String(),
		Prompt: fmt.Sprintf("Where does %s land?", san),
		FEN:    pos.String(),
	}
}

// SinglePieceFEN describes a board holding only a white piece of kind on sq.
func SinglePieceFEN(kind geometry.PieceKind, sq geometry.Square) string {
	piece, ok := whitePieces[kind]
	if !ok {
		piece = chess.WhiteKnight
	}
	board := chess.NewBoard(map[chess.Square]chess.Piece{
		chess.NewSquare(chess.File(sq.File()), chess.Rank(sq.Rank())): piece,
	})
	return board.String() + " w - - 0 1"
}
