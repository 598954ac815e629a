package stopwatch

import "time"

// Stopwatch measures how long the learner takes to answer a question.
type Stopwatch struct {
	now     func() time.Time
	started time.Time
	stopped time.Duration
	running bool
}

// New returns a stopped stopwatch reading the wall clock.
func New() *Stopwatch {
	return &Stopwatch{now: time.Now}
}

// NewWithClock returns a stopwatch driven by now, for tests.
func NewWithClock(now func() time.Time) *Stopwatch {
	return &Stopwatch{now: now}
}

// Start (re)starts timing from zero.
func (s *Stopwatch) Start() {
	s.started = s.now()
	s.stopped = 0
	s.running = true
}

// Stop freezes the reading and returns it in milliseconds. Stopping a
// stopwatch that is not running returns 0.
func (s *Stopwatch) Stop() int {
	if !s.running {
		return 0
	}
	s.stopped = s.now().Sub(s.started)
	s.running = false
	return int(s.stopped.Milliseconds())
}

// Elapsed returns the milliseconds since Start, or the frozen reading after
// Stop. It is 0 before the first Start.
func (s *Stopwatch) Elapsed() int {
	if s.started.IsZero() {
		return 0
	}
	if !s.running {
		return int(s.stopped.Milliseconds())
	}
	return int(s.now().Sub(s.started).Round(time.Millisecond).Milliseconds())
}

// Reset clears the stopwatch back to its initial state.
func (s *Stopwatch) Reset() {
	s.started = time.Time{}
	s.stopped = 0
	s.running = false
}

func (s *Stopwatch) Running() bool {
	return s.running
}
