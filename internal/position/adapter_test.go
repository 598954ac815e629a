package position_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/chessdrill/internal/errors"
	"github.com/vytor/chessdrill/internal/geometry"
	"github.com/vytor/chessdrill/internal/models"
	"github.com/vytor/chessdrill/internal/position"
)

const startFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

func TestSetPosition_EmptySentinels(t *testing.T) {
	for _, notation := range []string{"", "   ", "8/8/8/8/8/8/8/8", "8/8/8/8/8/8/8/8 w - - 0 1"} {
		t.Run(notation, func(t *testing.T) {
			a := position.NewAdapter()

			res := a.SetPosition(notation)

			assert.Equal(t, position.Empty, res.Outcome)
			assert.NoError(t, res.Err)
			assert.False(t, a.HasPosition())
			assert.Empty(t, a.LegalDestinations(geometry.MustParseSquare("e2")))
			assert.Equal(t, models.EmptyBoardFEN, a.ExportNotation())
		})
	}
}

func TestSetPosition_OK(t *testing.T) {
	a := position.NewAdapter()

	res := a.SetPosition(startFEN)

	require.Equal(t, position.OK, res.Outcome)
	assert.True(t, a.HasPosition())
	assert.Equal(t, startFEN, a.ExportNotation())
}

func TestSetPosition_PlacementOnlyIsPadded(t *testing.T) {
	a := position.NewAdapter()

	res := a.SetPosition("4k3/8/8/8/8/8/8/4K3")

	require.Equal(t, position.OK, res.Outcome)
	assert.Equal(t, "4k3/8/8/8/8/8/8/4K3 w - - 0 1", a.ExportNotation())
}

func TestSetPosition_ParseFailure(t *testing.T) {
	a := position.NewAdapter()
	require.Equal(t, position.OK, a.SetPosition(startFEN).Outcome)

	res := a.SetPosition("not a fen at all")

	assert.Equal(t, position.Invalid, res.Outcome)
	assert.True(t, errors.HasCode(res.Err, errors.ErrCodeParseFailure))
	assert.False(t, a.HasPosition(), "an invalid notation replaces the previous position")
}

func TestSetPosition_RuleSetupFailure(t *testing.T) {
	tests := []struct {
		name string
		fen  string
	}{
		{name: "two white kings", fen: "4k3/8/8/8/8/8/8/K3K3 w - - 0 1"},
		{name: "no kings", fen: "8/8/8/3N4/8/8/8/8 w - - 0 1"},
		{name: "pawn on first rank", fen: "4k3/8/8/8/8/8/8/P3K3 w - - 0 1"},
		{name: "side not to move in check", fen: "K6k/8/8/8/8/8/8/7Q w - - 0 1"},
		{name: "kings adjacent", fen: "kK6/8/8/8/8/8/8/8 w - - 0 1"},
		{name: "white in check with black to move", fen: "4k3/8/8/8/8/8/4r3/4K3 b - - 0 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := position.NewAdapter()

			res := a.SetPosition(tt.fen)

			assert.Equal(t, position.Invalid, res.Outcome)
			assert.True(t, errors.HasCode(res.Err, errors.ErrCodeRuleSetupFailure), "got %v", res.Err)
			assert.False(t, a.HasPosition())
			_, ok := a.PieceAt(geometry.MustParseSquare("e1"))
			assert.False(t, ok)
		})
	}
}

func TestLegalDestinations(t *testing.T) {
	a := position.NewAdapter()
	require.Equal(t, position.OK, a.SetPosition(startFEN).Outcome)

	assert.ElementsMatch(t, []string{"e3", "e4"}, a.LegalDestinationsOf("e2").Strings())
	assert.ElementsMatch(t, []string{"f3", "h3"}, a.LegalDestinationsOf("g1").Strings())
	assert.Empty(t, a.LegalDestinationsOf("e7"), "black cannot move when white is to play")
	assert.Empty(t, a.LegalDestinationsOf("e4"), "empty square")
	assert.Empty(t, a.LegalDestinationsOf("z9"), "off-board square")
}

func TestLegalDestinations_RestrictGeometry(t *testing.T) {
	a := position.NewAdapter()
	// Knight on d4 hemmed in by its own pawns on c6 and e6.
	require.Equal(t, position.OK, a.SetPosition("4k3/8/2P1P3/8/3N4/8/8/4K3 w - - 0 1").Outcome)

	d4 := geometry.MustParseSquare("d4")
	legal := a.LegalDestinations(d4)
	candidates := geometry.CandidateDestinations(geometry.Knight, d4)

	assert.Equal(t, legal, legal.Intersect(candidates), "legal moves are a subset of the geometry")
	assert.False(t, legal.Contains(geometry.MustParseSquare("c6")))
	assert.False(t, legal.Contains(geometry.MustParseSquare("e6")))
	assert.Equal(t, 6, legal.Len())
}

func TestPieceAt(t *testing.T) {
	a := position.NewAdapter()
	require.Equal(t, position.OK, a.SetPosition(startFEN).Outcome)

	p, ok := a.PieceAt(geometry.MustParseSquare("g1"))
	require.True(t, ok)
	assert.Equal(t, position.Piece{Kind: geometry.Knight, Side: position.White}, p)

	p, ok = a.PieceAt(geometry.MustParseSquare("d8"))
	require.True(t, ok)
	assert.Equal(t, position.Piece{Kind: geometry.Queen, Side: position.Black}, p)

	_, ok = a.PieceAt(geometry.MustParseSquare("e4"))
	assert.False(t, ok)
}

func TestZeroValueAdapter(t *testing.T) {
	var a position.Adapter

	assert.False(t, a.HasPosition())
	assert.Empty(t, a.LegalDestinationsOf("e2"))
	assert.Equal(t, position.Invalid, a.SetPosition("garbage").Outcome)
}
