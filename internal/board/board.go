// Package board is the terminal board widget: it holds pieces and
// highlights, renders them as text and turns square clicks into selection
// notifications.
package board

import (
	"fmt"
	"io"
	"strings"

	"github.com/vytor/chessdrill/internal/geometry"
	"github.com/vytor/chessdrill/internal/logger"
	"github.com/vytor/chessdrill/internal/models"
)

// Orientation is the side shown at the bottom of the board.
type Orientation string

const (
	White Orientation = "white"
	Black Orientation = "black"
)

// ParseOrientation accepts "white" or "black"; anything else is white.
func ParseOrientation(s string) Orientation {
	if strings.EqualFold(strings.TrimSpace(s), string(Black)) {
		return Black
	}
	return White
}

type Board struct {
	pieces      map[geometry.Square]rune
	highlights  geometry.SquareSet
	orientation Orientation
	coordinates bool
	selection   func(geometry.Square)
	subscribers map[int]func(geometry.Square)
	nextSub     int
	log         *logger.Logger
}

func New(orientation Orientation) *Board {
	return &Board{
		pieces:      make(map[geometry.Square]rune),
		highlights:  make(geometry.SquareSet),
		orientation: orientation,
		coordinates: true,
		subscribers: make(map[int]func(geometry.Square)),
		log:         logger.Default().WithPrefix("board"),
	}
}

// SetPosition replaces every piece with the placement in fen. A placement
// that cannot be read leaves the board empty.
func (b *Board) SetPosition(fen string) {
	pieces, err := parsePlacement(fen)
	if err != nil {
		b.log.Debug("clearing board: %v", err)
		pieces = make(map[geometry.Square]rune)
	}
	b.pieces = pieces
}

// FEN returns the piece placement with default trailing fields.
func (b *Board) FEN() string {
	if len(b.pieces) == 0 {
		return models.EmptyBoardFEN
	}
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			sq, _ := geometry.NewSquare(file, rank)
			p, ok := b.pieces[sq]
			if !ok {
				empty++
				continue
			}
			if empty > 0 {
				fmt.Fprintf(&sb, "%d", empty)
				empty = 0
			}
			sb.WriteRune(p)
		}
		if empty > 0 {
			fmt.Fprintf(&sb, "%d", empty)
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}
	sb.WriteString(" w - - 0 1")
	return sb.String()
}

// SetPiece puts piece (a FEN letter) on sq; 0 clears the square.
func (b *Board) SetPiece(sq geometry.Square, piece rune) error {
	if piece == 0 {
		delete(b.pieces, sq)
		return nil
	}
	if !strings.ContainsRune("KQRBNPkqrbnp", piece) {
		return fmt.Errorf("unknown piece %q", piece)
	}
	b.pieces[sq] = piece
	return nil
}

func (b *Board) PieceAt(sq geometry.Square) (rune, bool) {
	p, ok := b.pieces[sq]
	return p, ok
}

func (b *Board) HighlightSquare(sq geometry.Square) {
	b.highlights.Add(sq)
}

func (b *Board) HighlightSquares(sqs []geometry.Square) {
	for _, sq := range sqs {
		b.highlights.Add(sq)
	}
}

func (b *Board) ClearHighlights() {
	b.highlights = make(geometry.SquareSet)
}

// Highlighted returns the highlighted squares in index order.
func (b *Board) Highlighted() []geometry.Square {
	return b.highlights.Slice()
}

// EnableSelection installs fn as the click interceptor, replacing any
// previous one.
func (b *Board) EnableSelection(fn func(geometry.Square)) {
	b.selection = fn
}

func (b *Board) DisableSelection() {
	b.selection = nil
}

func (b *Board) SelectionEnabled() bool {
	return b.selection != nil
}

// Subscribe registers fn to observe every selected square. The returned
// function removes the subscription.
func (b *Board) Subscribe(fn func(geometry.Square)) func() {
	id := b.nextSub
	b.nextSub++
	b.subscribers[id] = fn
	return func() { delete(b.subscribers, id) }
}

// Select reports a click on sq: subscribers are notified in registration
// order, then the interceptor, if any, runs once.
func (b *Board) Select(sq geometry.Square) {
	for id := 0; id < b.nextSub; id++ {
		if fn, ok := b.subscribers[id]; ok {
			fn(sq)
		}
	}
	if b.selection != nil {
		b.selection(sq)
	}
}

func (b *Board) Orientation() Orientation {
	return b.orientation
}

func (b *Board) SetOrientation(o Orientation) {
	b.orientation = o
}

// Flip swaps the side shown at the bottom.
func (b *Board) Flip() {
	if b.orientation == Black {
		b.orientation = White
		return
	}
	b.orientation = Black
}

// ToggleCoordinates shows or hides the rank and file labels and returns the
// new setting.
func (b *Board) ToggleCoordinates() bool {
	b.coordinates = !b.coordinates
	return b.coordinates
}

// Render writes the board as text. Highlighted squares are bracketed.
func (b *Board) Render(w io.Writer) error {
	ranks, files := axes(b.orientation)
	var sb strings.Builder
	for _, rank := range ranks {
		if b.coordinates {
			fmt.Fprintf(&sb, "%d ", rank+1)
		}
		for _, file := range files {
			sq, _ := geometry.NewSquare(file, rank)
			glyph := '.'
			if p, ok := b.pieces[sq]; ok {
				glyph = p
			}
			if b.highlights.Contains(sq) {
				fmt.Fprintf(&sb, "[%c]", glyph)
			} else {
				fmt.Fprintf(&sb, " %c ", glyph)
			}
		}
		sb.WriteByte('\n')
	}
	if b.coordinates {
		sb.WriteString("  ")
		for _, file := range files {
			fmt.Fprintf(&sb, " %c ", 'a'+file)
		}
		sb.WriteByte('\n')
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// axes returns the rank and file indexes in top-to-bottom and left-to-right
// display order.
func axes(o Orientation) (ranks, files []int) {
	ranks = make([]int, 8)
	files = make([]int, 8)
	for i := 0; i < 8; i++ {
		if o == Black {
			ranks[i] = i
			files[i] = 7 - i
		} else {
			ranks[i] = 7 - i
			files[i] = i
		}
	}
	return ranks, files
}

// parsePlacement reads the piece placement field of a FEN string.
func parsePlacement(fen string) (map[geometry.Square]rune, error) {
	fields := strings.Fields(fen)
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty position")
	}
	rows := strings.Split(fields[0], "/")
	if len(rows) != 8 {
		return nil, fmt.Errorf("expected 8 ranks, got %d", len(rows))
	}
	pieces := make(map[geometry.Square]rune)
	for i, row := range rows {
		rank := 7 - i
		file := 0
		for _, c := range row {
			switch {
			case c >= '1' && c <= '8':
				file += int(c - '0')
			case strings.ContainsRune("KQRBNPkqrbnp", c):
				sq, ok := geometry.NewSquare(file, rank)
				if !ok {
					return nil, fmt.Errorf("rank %d overflows", rank+1)
				}
				pieces[sq] = c
				file++
			default:
				return nil, fmt.Errorf("unexpected %q in rank %d", c, rank+1)
			}
		}
		if file != 8 {
			return nil, fmt.Errorf("rank %d has %d files", rank+1, file)
		}
	}
	return pieces, nil
}
