package geometry

import (
	"fmt"
	"strings"
)

// PieceKind identifies a chess piece independent of colour.
type PieceKind string

const (
	Pawn   PieceKind = "pawn"
	Knight PieceKind = "knight"
	Bishop PieceKind = "bishop"
	Rook   PieceKind = "rook"
	Queen  PieceKind = "queen"
	King   PieceKind = "king"
)

// PieceKinds lists every kind in conventional order.
var PieceKinds = []PieceKind{Pawn, Knight, Bishop, Rook, Queen, King}

// ParsePieceKind accepts the lower-case piece names ("knight", "queen", ...).
func ParsePieceKind(s string) (PieceKind, error) {
	k := PieceKind(strings.TrimSpace(s))
	for _, known := range PieceKinds {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown piece kind %q", s)
}

type offset struct{ df, dr int }

var (
	knightOffsets = []offset{
		{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2},
		{1, -2}, {1, 2}, {2, -1}, {2, 1},
	}
	kingOffsets = []offset{
		{-1, -1}, {-1, 0}, {-1, 1},
		{0, -1}, {0, 1},
		{1, -1}, {1, 0}, {1, 1},
	}
	diagonals  = []offset{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	orthogonal = []offset{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
)

// CandidateDestinations returns where piece could move from origin on an
// otherwise empty board. Occupancy, side to move, checks, castling, captures
// and en passant are ignored. Pawns are white and move forward only.
// Destinations off the board are dropped; an unknown kind yields an empty set.
func CandidateDestinations(piece PieceKind, origin Square) SquareSet {
	out := make(SquareSet)
	switch piece {
	case Knight:
		steps(out, origin, knightOffsets)
	case King:
		steps(out, origin, kingOffsets)
	case Bishop:
		rays(out, origin, diagonals)
	case Rook:
		rays(out, origin, orthogonal)
	case Queen:
		rays(out, origin, diagonals)
		rays(out, origin, orthogonal)
	case Pawn:
		if sq, ok := origin.Offset(0, 1); ok {
			out.Add(sq)
			if origin.Rank() == 1 {
				out.Add(origin + 16)
			}
		}
	}
	return out
}

func steps(out SquareSet, origin Square, offsets []offset) {
	for _, o := range offsets {
		if sq, ok := origin.Offset(o.df, o.dr); ok {
			out.Add(sq)
		}
	}
}

func rays(out SquareSet, origin Square, dirs []offset) {
	for _, d := range dirs {
		for i := 1; i < 8; i++ {
			sq, ok := origin.Offset(d.df*i, d.dr*i)
			if !ok {
				break
			}
			out.Add(sq)
		}
	}
}
