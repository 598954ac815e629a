package sqlite

import (
	"math"

	"github.com/Masterminds/squirrel"
)

// Helper functions shared across repository implementations

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

// accuracy returns the percentage of correct answers rounded to one decimal.
func accuracy(correct, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(correct)/float64(total)*1000) / 10
}

// bestStreak is the longest run of correct answers in order.
func bestStreak(results []bool) int {
	best, current := 0, 0
	for _, correct := range results {
		if !correct {
			current = 0
			continue
		}
		current++
		if current > best {
			best = current
		}
	}
	return best
}
