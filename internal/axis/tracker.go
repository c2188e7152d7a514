// Package axis maps a single wrist's vertical position to a continuous
// [0, 1] game-control signal, bypassing repetition logic entirely.
package axis

import (
	"github.com/marinocj/repstream/internal/events"
	"github.com/marinocj/repstream/internal/features"
	"github.com/marinocj/repstream/internal/pose"
)

// Hand selects which wrist drives the control axis.
type Hand int

const (
	LeftHand Hand = iota
	RightHand
)

// Tracker is a stateless per-frame mapping for one designated wrist.
// No smoothing, no hysteresis: consumers apply their own damping.
type Tracker struct {
	hand Hand
}

// NewTracker returns a tracker for the given hand.
func NewTracker(hand Hand) *Tracker {
	return &Tracker{hand: hand}
}

// Value maps the tracked wrist's normalized vertical position to a control
// value: the raw Y is clamped to [0, 1] and inverted so "up" maps to larger
// values. ok is false when the wrist fails the visibility gate, in which
// case the frame yields no axis update.
func (t *Tracker) Value(frame pose.Frame) (value float64, ok bool) {
	lm := frame.Landmarks[t.index()]
	if lm.Visibility < features.VisibilityGate {
		return 0, false
	}

	y := lm.Y
	if y < 0 {
		y = 0
	} else if y > 1 {
		y = 1
	}
	return 1 - y, true
}

// Limb returns the event identifier for the tracked hand.
func (t *Tracker) Limb() events.Limb {
	if t.hand == RightHand {
		return events.LimbRight
	}
	return events.LimbLeft
}

func (t *Tracker) index() int {
	if t.hand == RightHand {
		return pose.RightWrist
	}
	return pose.LeftWrist
}
