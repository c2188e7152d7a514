package reps

import (
	"fmt"

	"github.com/marinocj/repstream/internal/features"
	"github.com/marinocj/repstream/internal/logging"
	"github.com/marinocj/repstream/internal/session"
)

// SquatState is the posture phase of a squat machine.
type SquatState int

const (
	SquatWaitingForStart SquatState = iota
	SquatStanding
	SquatGoingDown
	SquatAtBottom
	SquatGoingUp
)

// String returns the snake_case name of the state.
func (s SquatState) String() string {
	switch s {
	case SquatWaitingForStart:
		return "waiting_for_start"
	case SquatStanding:
		return "standing"
	case SquatGoingDown:
		return "going_down"
	case SquatAtBottom:
		return "at_bottom"
	case SquatGoingUp:
		return "going_up"
	default:
		return fmt.Sprintf("SquatState(%d)", int(s))
	}
}

// Squat posture thresholds and validity criteria. Squats are performed
// upright, so there is no horizontal-posture requirement.
const (
	squatStandKnee  = 165.0
	squatBottomKnee = 100.0

	squatMinFrames = 6
	squatMinRange  = 35.0
	squatMaxBottom = 105.0
)

// SquatMachine classifies a feature stream into squat repetitions, driven
// by the knee angle alone. Accepted squats score a flat 100: there is no
// graded scoring model for this exercise family.
type SquatMachine struct {
	state  SquatState
	streak int
	buffer []features.Features
}

// NewSquatMachine returns a machine in WAITING_FOR_START.
func NewSquatMachine() *SquatMachine {
	return &SquatMachine{}
}

// State returns the current posture phase.
func (m *SquatMachine) State() SquatState {
	return m.state
}

// Reset discards any in-progress buffer and returns to WAITING_FOR_START
// with a zeroed debounce counter.
func (m *SquatMachine) Reset() {
	m.state = SquatWaitingForStart
	m.streak = 0
	m.buffer = nil
}

// Advance consumes one frame. It returns the completed repetition when a
// full cycle closes and passes validation, else nil.
func (m *SquatMachine) Advance(f features.Features) *session.Repetition {
	if f.KneeAngle == nil {
		if m.state == SquatWaitingForStart {
			m.streak = 0
		}
		return nil
	}
	knee := *f.KneeAngle

	standing := knee >= squatStandKnee

	switch m.state {
	case SquatWaitingForStart:
		if standing {
			m.streak++
		} else {
			m.streak = 0
		}
		if m.streak >= startStreak {
			m.state = SquatStanding
			m.buffer = []features.Features{f}
		}

	case SquatStanding:
		m.buffer = append(m.buffer, f)
		if knee <= squatStandKnee-hysteresisDeg {
			m.state = SquatGoingDown
		}

	case SquatGoingDown:
		m.buffer = append(m.buffer, f)
		if knee <= squatBottomKnee {
			m.state = SquatAtBottom
		} else if standing {
			// Stood back up without reaching depth: aborted attempt.
			m.state = SquatStanding
			m.buffer = []features.Features{f}
		}

	case SquatAtBottom:
		m.buffer = append(m.buffer, f)
		if knee >= squatBottomKnee+hysteresisDeg {
			m.state = SquatGoingUp
		}

	case SquatGoingUp:
		m.buffer = append(m.buffer, f)
		if standing {
			rep := m.close()
			m.state = SquatStanding
			m.buffer = []features.Features{f}
			return rep
		}
	}

	return nil
}

func (m *SquatMachine) close() *session.Repetition {
	if err := validateSquat(m.buffer); err != nil {
		logging.Debug(fmt.Sprintf("squat: repetition rejected: %v", err))
		return nil
	}
	return &session.Repetition{Features: m.buffer, Correctness: 100}
}

// validateSquat checks a closed squat cycle for minimal depth and motion.
func validateSquat(buf []features.Features) error {
	var vals []float64
	for _, f := range buf {
		if f.KneeAngle != nil {
			vals = append(vals, *f.KneeAngle)
		}
	}
	if len(vals) < squatMinFrames {
		return fmt.Errorf("only %d frames with knee angle, need %d", len(vals), squatMinFrames)
	}

	min, max := vals[0], vals[0]
	for _, v := range vals[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if max-min < squatMinRange {
		return fmt.Errorf("knee range %.1f° below %.0f°", max-min, squatMinRange)
	}
	if min > squatMaxBottom {
		return fmt.Errorf("minimum knee angle %.1f° never reached %.0f°", min, squatMaxBottom)
	}
	return nil
}
