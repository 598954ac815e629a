package drill

import (
	"fmt"
	"math"

	"github.com/vytor/chessdrill/internal/models"
)

// Stats are the running counters for the learner's answers. They survive
// session changes and are cleared only by ResetStats.
type Stats struct {
	Total           int `json:"total"`
	Correct         int `json:"correct"`
	Streak          int `json:"streak"`
	BestStreak      int `json:"best_streak"`
	TotalResponseMs int `json:"total_response_ms"`
}

func (st *Stats) record(correct bool, responseMs int) {
	if responseMs < 0 {
		responseMs = 0
	}
	st.Total++
	st.TotalResponseMs += responseMs
	if correct {
		st.Correct++
		st.Streak++
		if st.Streak > st.BestStreak {
			st.BestStreak = st.Streak
		}
		return
	}
	st.Streak = 0
}

// Accuracy is the rounded percentage of correct answers, 0 when nothing was
// answered.
func (st Stats) Accuracy() int {
	if st.Total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(st.Correct) / float64(st.Total)))
}

// AverageResponseMs is the rounded mean response time.
func (st Stats) AverageResponseMs() int {
	if st.Total == 0 {
		return 0
	}
	return int(math.Round(float64(st.TotalResponseMs) / float64(st.Total)))
}

// FormatSummary renders the server's end-of-session summary for display.
func FormatSummary(sum models.DrillSessionSummary) string {
	acc := 0
	if sum.TotalAttempts > 0 {
		acc = int(math.Round(100 * float64(sum.Correct) / float64(sum.TotalAttempts)))
	}
	return fmt.Sprintf("Session complete: %d/%d correct (%d%%), avg %dms, best streak %d",
		sum.Correct, sum.TotalAttempts, acc, sum.AvgResponseMs, sum.StreakBest)
}
