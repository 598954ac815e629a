// Package heatmap renders per-square answer accuracy.
package heatmap

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/vytor/chessdrill/internal/board"
	"github.com/vytor/chessdrill/internal/geometry"
	"github.com/vytor/chessdrill/internal/models"
)

// Color is an RGBA overlay colour.
type Color struct {
	R, G, B uint8
	A       float64
}

func (c Color) CSS() string {
	return fmt.Sprintf("rgba(%d, %d, %d, %g)", c.R, c.G, c.B, c.A)
}

var (
	red    = [3]float64{244, 67, 54}
	yellow = [3]float64{255, 235, 59}
	green  = [3]float64{76, 175, 80}

	lightSquare = [3]uint8{0xf0, 0xd9, 0xb5}
	darkSquare  = [3]uint8{0xb5, 0x88, 0x63}
)

const overlayAlpha = 0.6

// AccuracyColor maps an accuracy percentage to red at 0, yellow at 50 and
// green at 100. Values outside 0..100 are clamped.
func AccuracyColor(accuracy float64) Color {
	accuracy = math.Max(0, math.Min(100, accuracy))
	from, to, ratio := red, yellow, accuracy/50
	if accuracy >= 50 {
		from, to, ratio = yellow, green, (accuracy-50)/50
	}
	mix := func(i int) uint8 {
		return uint8(math.Round(from[i] + ratio*(to[i]-from[i])))
	}
	return Color{R: mix(0), G: mix(1), B: mix(2), A: overlayAlpha}
}

// Options control Render.
type Options struct {
	Orientation board.Orientation
	// ANSI paints square backgrounds with 24-bit terminal colours.
	ANSI bool
}

// Render writes an 8x8 grid with the rounded accuracy of every square that
// has attempts, and "--" elsewhere.
func Render(w io.Writer, data models.HeatmapData, opts Options) error {
	bySquare := make(map[geometry.Square]models.SquareAccuracy, len(data.Squares))
	for _, sa := range data.Squares {
		sq, err := geometry.ParseSquare(sa.Square)
		if err != nil {
			continue
		}
		bySquare[sq] = sa
	}

	ranks, files := 8, 8
	var sb strings.Builder
	for row := 0; row < ranks; row++ {
		rank := 7 - row
		if opts.Orientation == board.Black {
			rank = row
		}
		fmt.Fprintf(&sb, "%d ", rank+1)
		for col := 0; col < files; col++ {
			file := col
			if opts.Orientation == board.Black {
				file = 7 - col
			}
			sq, _ := geometry.NewSquare(file, rank)
			sb.WriteString(cell(sq, bySquare, opts.ANSI))
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  ")
	for col := 0; col < files; col++ {
		file := col
		if opts.Orientation == board.Black {
			file = 7 - col
		}
		fmt.Fprintf(&sb, "  %c  ", 'a'+file)
	}
	sb.WriteByte('\n')

	_, err := io.WriteString(w, sb.String())
	return err
}

func cell(sq geometry.Square, bySquare map[geometry.Square]models.SquareAccuracy, ansi bool) string {
	sa, ok := bySquare[sq]
	text := "  -- "
	if ok && sa.Total > 0 {
		text = fmt.Sprintf("%4d%%", int(math.Round(sa.Accuracy)))
	}
	if !ansi {
		return text
	}
	base := darkSquare
	if (sq.File()+sq.Rank())%2 == 1 {
		base = lightSquare
	}
	r, g, b := base[0], base[1], base[2]
	if ok && sa.Total > 0 {
		c := AccuracyColor(sa.Accuracy)
		r, g, b = blend(base[0], c.R, c.A), blend(base[1], c.G, c.A), blend(base[2], c.B, c.A)
	}
	return fmt.Sprintf("\x1b[48;2;%d;%d;%dm\x1b[30m%s\x1b[0m", r, g, b, text)
}

// blend composites an overlay channel with alpha onto base.
func blend(base, overlay uint8, alpha float64) uint8 {
	return uint8(math.Round(float64(base)*(1-alpha) + float64(overlay)*alpha))
}
