package jobs

import "github.com/vytor/chessdrill/internal/drill"

// JobQueue provides an abstraction for running drill requests in the
// background and collecting their results.
type JobQueue interface {
	drill.Queue
	Results() <-chan drill.Result
}
