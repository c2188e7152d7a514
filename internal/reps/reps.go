// Package reps turns noisy per-frame feature streams into discrete,
// validated exercise repetitions.
//
// Each exercise kind is a small finite-state machine driven one frame at a
// time: a debounced start phase, a descent, a bottom, and an ascent that
// closes the cycle. Closed cycles run through a validator; accepted buffers
// are scored 0-100. Threshold crossings use a hysteresis band and phase
// entry uses a consecutive-frame streak so single-frame noise never commits
// a transition.
//
// A machine owns its in-progress buffer and counters exclusively and must
// be fed frames in arrival order; there is no locking and no concurrency
// inside a machine.
package reps

import (
	"github.com/marinocj/repstream/internal/features"
	"github.com/marinocj/repstream/internal/session"
)

// Tuning shared by both exercise state machines. The hysteresis margin and
// start streak were tuned empirically; transition behavior depends on these
// exact values.
const (
	// hysteresisDeg is the angular margin past a phase threshold required
	// before transitioning away from it.
	hysteresisDeg = 5.0
	// startStreak is the number of consecutive qualifying frames required
	// to leave WAITING_FOR_START.
	startStreak = 3
)

// Machine is the per-frame contract both exercise machines satisfy.
type Machine interface {
	// Advance consumes one frame of features in arrival order and returns
	// the repetition it closed and accepted, or nil.
	Advance(f features.Features) *session.Repetition
	// Reset discards any in-progress buffer and returns the machine to its
	// start state with zeroed counters.
	Reset()
}
