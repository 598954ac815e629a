package geometry

import (
	"fmt"
	"sort"
)

// Square is a board square indexed a1=0 .. h8=63 (rank-major).
type Square uint8

// NumSquares is the number of squares on the board.
const NumSquares = 64

// NewSquare builds a square from zero-based file and rank.
// ok is false when either coordinate is off the board.
func NewSquare(file, rank int) (Square, bool) {
	if !onBoard(file, rank) {
		return 0, false
	}
	return Square(rank*8 + file), true
}

// ParseSquare parses the canonical "<file><rank>" form, e.g. "e4".
// Anything else is rejected, including upper-case files and padding.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return 0, fmt.Errorf("invalid square %q", s)
	}
	file := int(s[0]) - 'a'
	rank := int(s[1]) - '1'
	sq, ok := NewSquare(file, rank)
	if !ok {
		return 0, fmt.Errorf("invalid square %q", s)
	}
	return sq, nil
}

// MustParseSquare is ParseSquare for literals known to be valid.
func MustParseSquare(s string) Square {
	sq, err := ParseSquare(s)
	if err != nil {
		panic(err)
	}
	return sq
}

// File returns the zero-based file (0=a).
func (sq Square) File() int { return int(sq) % 8 }

// Rank returns the zero-based rank (0=rank 1).
func (sq Square) Rank() int { return int(sq) / 8 }

func (sq Square) String() string {
	return fmt.Sprintf("%c%c", 'a'+sq.File(), '1'+sq.Rank())
}

// Offset returns the square shifted by df files and dr ranks, if still on the board.
func (sq Square) Offset(df, dr int) (Square, bool) {
	return NewSquare(sq.File()+df, sq.Rank()+dr)
}

func onBoard(file, rank int) bool {
	return file >= 0 && file < 8 && rank >= 0 && rank < 8
}

// SquareSet is an unordered set of squares.
type SquareSet map[Square]struct{}

// NewSquareSet returns a set holding the given squares.
func NewSquareSet(squares ...Square) SquareSet {
	s := make(SquareSet, len(squares))
	for _, sq := range squares {
		s.Add(sq)
	}
	return s
}

func (s SquareSet) Add(sq Square) { s[sq] = struct{}{} }

func (s SquareSet) Contains(sq Square) bool {
	_, ok := s[sq]
	return ok
}

func (s SquareSet) Len() int { return len(s) }

// Union returns a new set with the squares of both sets.
func (s SquareSet) Union(other SquareSet) SquareSet {
	out := make(SquareSet, len(s)+len(other))
	for sq := range s {
		out.Add(sq)
	}
	for sq := range other {
		out.Add(sq)
	}
	return out
}

// Intersect returns a new set with the squares present in both sets.
func (s SquareSet) Intersect(other SquareSet) SquareSet {
	out := make(SquareSet)
	for sq := range s {
		if other.Contains(sq) {
			out.Add(sq)
		}
	}
	return out
}

// Slice returns the squares in index order. Only for display and logging;
// callers must not attach meaning to the order.
func (s SquareSet) Slice() []Square {
	out := make([]Square, 0, len(s))
	for sq := range s {
		out = append(out, sq)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Strings returns the canonical names in index order.
func (s SquareSet) Strings() []string {
	sqs := s.Slice()
	out := make([]string, len(sqs))
	for i, sq := range sqs {
		out[i] = sq.String()
	}
	return out
}
