// Package session holds the in-memory log of repetitions accepted during
// one pipeline lifetime. Sessions are never persisted by the core; the
// history store records summaries only.
package session

import (
	"time"

	"github.com/marinocj/repstream/internal/features"
)

// Repetition is one accepted exercise repetition: the frames it spanned and
// its 0-100 correctness score. Immutable once appended.
type Repetition struct {
	Features    []features.Features
	Correctness float64
}

// Session is the ordered repetition log for one exercise pipeline instance.
// It begins when the pipeline starts and ends at teardown or reset.
type Session struct {
	Exercise  string
	StartedAt time.Time

	reps   []Repetition
	firstT float64
	lastT  float64
	seen   bool
}

// New starts an empty session for the named exercise.
func New(exercise string) *Session {
	return &Session{Exercise: exercise, StartedAt: time.Now()}
}

// ObserveFrame records a frame timestamp so the session can report its
// covered duration.
func (s *Session) ObserveFrame(t float64) {
	if !s.seen {
		s.firstT = t
		s.seen = true
	}
	s.lastT = t
}

// Append adds a completed repetition to the log.
func (s *Session) Append(r Repetition) {
	s.reps = append(s.reps, r)
}

// Count returns the number of repetitions accepted so far.
func (s *Session) Count() int {
	return len(s.reps)
}

// Repetitions returns the ordered repetition log.
func (s *Session) Repetitions() []Repetition {
	return s.reps
}

// AverageScore returns the mean correctness across accepted repetitions,
// or 0 for an empty session.
func (s *Session) AverageScore() float64 {
	if len(s.reps) == 0 {
		return 0
	}
	sum := 0.0
	for _, r := range s.reps {
		sum += r.Correctness
	}
	return sum / float64(len(s.reps))
}

// Duration returns the span in seconds between the first and last observed
// frame, or 0 before any frame arrived.
func (s *Session) Duration() float64 {
	if !s.seen {
		return 0
	}
	return s.lastT - s.firstT
}
