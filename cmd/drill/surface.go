package main

import (
	"fmt"
	"io"

	"github.com/vytor/chessdrill/internal/drill"
)

// terminalSurface prints session feedback as plain lines.
type terminalSurface struct {
	out        io.Writer
	endEnabled bool
}

func (t *terminalSurface) ShowFeedback(text string) {
	fmt.Fprintf(t.out, "» %s\n", text)
}

func (t *terminalSurface) ShowSummary(text string) {
	fmt.Fprintf(t.out, "%s\n", text)
}

func (t *terminalSurface) ShowStats(st drill.Stats) {
	fmt.Fprintf(t.out, "  score %d/%d (%d%%)  streak %d  best %d  avg %dms\n",
		st.Correct, st.Total, st.Accuracy(), st.Streak, st.BestStreak, st.AverageResponseMs())
}

func (t *terminalSurface) DisableEnd() {
	t.endEnabled = false
}
