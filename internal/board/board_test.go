package board_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/chessdrill/internal/board"
	"github.com/vytor/chessdrill/internal/geometry"
	"github.com/vytor/chessdrill/internal/models"
)

func sq(name string) geometry.Square { return geometry.MustParseSquare(name) }

func TestSetPosition(t *testing.T) {
	b := board.New(board.White)

	b.SetPosition("4k3/8/8/8/3N4/8/8/4K3 w - - 0 1")

	p, ok := b.PieceAt(sq("d4"))
	require.True(t, ok)
	assert.Equal(t, 'N', p)
	assert.Equal(t, "4k3/8/8/8/3N4/8/8/4K3 w - - 0 1", b.FEN())

	b.SetPosition("rubbish")
	_, ok = b.PieceAt(sq("d4"))
	assert.False(t, ok, "unreadable placement clears the board")
	assert.Equal(t, models.EmptyBoardFEN, b.FEN())
}

func TestSetPiece(t *testing.T) {
	b := board.New(board.White)

	require.NoError(t, b.SetPiece(sq("e4"), 'q'))
	assert.Error(t, b.SetPiece(sq("e5"), 'x'))

	p, ok := b.PieceAt(sq("e4"))
	require.True(t, ok)
	assert.Equal(t, 'q', p)

	require.NoError(t, b.SetPiece(sq("e4"), 0))
	_, ok = b.PieceAt(sq("e4"))
	assert.False(t, ok)
}

func TestHighlights(t *testing.T) {
	b := board.New(board.White)

	b.HighlightSquare(sq("e4"))
	b.HighlightSquares([]geometry.Square{sq("a1"), sq("e4")})
	assert.Equal(t, []geometry.Square{sq("a1"), sq("e4")}, b.Highlighted())

	b.ClearHighlights()
	assert.Empty(t, b.Highlighted())
}

func TestSelect_SubscribersThenInterceptor(t *testing.T) {
	b := board.New(board.White)
	var order []string

	unsubscribe := b.Subscribe(func(s geometry.Square) { order = append(order, "first:"+s.String()) })
	b.Subscribe(func(s geometry.Square) { order = append(order, "second:"+s.String()) })
	b.EnableSelection(func(s geometry.Square) { order = append(order, "intercept:"+s.String()) })

	b.Select(sq("e4"))
	assert.Equal(t, []string{"first:e4", "second:e4", "intercept:e4"}, order)

	order = nil
	unsubscribe()
	b.DisableSelection()
	b.Select(sq("a1"))
	assert.Equal(t, []string{"second:a1"}, order)
	assert.False(t, b.SelectionEnabled())
}

func TestEnableSelection_ReplacesInterceptor(t *testing.T) {
	b := board.New(board.White)
	calls := map[string]int{}

	b.EnableSelection(func(geometry.Square) { calls["old"]++ })
	b.EnableSelection(func(geometry.Square) { calls["new"]++ })
	b.Select(sq("h8"))

	assert.Equal(t, map[string]int{"new": 1}, calls)
}

func TestRender(t *testing.T) {
	b := board.New(board.White)
	b.SetPosition("4k3/8/8/8/8/8/8/4K3")
	b.HighlightSquare(sq("e1"))

	var buf bytes.Buffer
	require.NoError(t, b.Render(&buf))
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")

	require.Len(t, lines, 9)
	assert.Equal(t, "8  .  .  .  .  k  .  .  . ", lines[0])
	assert.Equal(t, "1  .  .  .  . [K] .  .  . ", lines[7])
	assert.Equal(t, "   a  b  c  d  e  f  g  h ", lines[8])
}

func TestRender_FlippedWithoutCoordinates(t *testing.T) {
	b := board.New(board.White)
	b.SetPosition("4k3/8/8/8/8/8/8/4K3")
	b.Flip()
	assert.Equal(t, board.Black, b.Orientation())
	assert.False(t, b.ToggleCoordinates())

	var buf bytes.Buffer
	require.NoError(t, b.Render(&buf))
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")

	require.Len(t, lines, 8)
	assert.Equal(t, " .  .  .  K  .  .  .  . ", lines[0])
	assert.Equal(t, " .  .  .  k  .  .  .  . ", lines[7])
}

func TestParseOrientation(t *testing.T) {
	assert.Equal(t, board.Black, board.ParseOrientation(" Black "))
	assert.Equal(t, board.White, board.ParseOrientation("white"))
	assert.Equal(t, board.White, board.ParseOrientation("sideways"))
}
