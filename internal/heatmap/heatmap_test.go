package heatmap_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/chessdrill/internal/board"
	"github.com/vytor/chessdrill/internal/heatmap"
	"github.com/vytor/chessdrill/internal/models"
)

func TestAccuracyColor(t *testing.T) {
	tests := []struct {
		accuracy float64
		want     string
	}{
		{accuracy: 0, want: "rgba(244, 67, 54, 0.6)"},
		{accuracy: 50, want: "rgba(255, 235, 59, 0.6)"},
		{accuracy: 100, want: "rgba(76, 175, 80, 0.6)"},
		{accuracy: 75, want: "rgba(166, 205, 70, 0.6)"},
		{accuracy: 25, want: "rgba(250, 151, 57, 0.6)"},
		{accuracy: -10, want: "rgba(244, 67, 54, 0.6)"},
		{accuracy: 140, want: "rgba(76, 175, 80, 0.6)"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, heatmap.AccuracyColor(tt.accuracy).CSS(), "accuracy %v", tt.accuracy)
	}
}

func TestRender(t *testing.T) {
	data := models.HeatmapData{Squares: []models.SquareAccuracy{
		{Square: "e4", Total: 4, Correct: 3, Accuracy: 75},
		{Square: "a8", Total: 1, Correct: 0, Accuracy: 0},
		{Square: "h1", Total: 0},
		{Square: "bogus", Total: 3, Accuracy: 100},
	}}

	var buf bytes.Buffer
	require.NoError(t, heatmap.Render(&buf, data, heatmap.Options{Orientation: board.White}))
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")

	require.Len(t, lines, 9)
	assert.True(t, strings.HasPrefix(lines[0], "8    0%  -- "), lines[0])
	assert.Equal(t, "4   --   --   --   --   75%  --   --   -- ", lines[4])
	assert.True(t, strings.HasSuffix(lines[7], "  -- "), "no attempts renders as empty")
	assert.True(t, strings.HasPrefix(lines[8], "    a  "))
}

func TestRender_BlackOrientationAndANSI(t *testing.T) {
	data := models.HeatmapData{Squares: []models.SquareAccuracy{{Square: "a1", Total: 2, Correct: 2, Accuracy: 100}}}

	var buf bytes.Buffer
	require.NoError(t, heatmap.Render(&buf, data, heatmap.Options{Orientation: board.Black, ANSI: true}))
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")

	assert.True(t, strings.HasPrefix(lines[0], "1 "))
	assert.True(t, strings.HasSuffix(lines[0], " 100%\x1b[0m"), "a1 is bottom-right from black's side")
	assert.Contains(t, lines[0], "\x1b[48;2;")
}
