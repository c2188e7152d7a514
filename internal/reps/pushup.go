package reps

import (
	"fmt"

	"github.com/marinocj/repstream/internal/features"
	"github.com/marinocj/repstream/internal/logging"
	"github.com/marinocj/repstream/internal/session"
	"github.com/marinocj/repstream/internal/template"
)

// PushupState is the posture phase of a push-up machine. Exactly one state
// is active per machine at any time.
type PushupState int

const (
	PushupWaitingForStart PushupState = iota
	PushupAtTop
	PushupGoingDown
	PushupAtBottom
	PushupGoingUp
)

// String returns the snake_case name of the state.
func (s PushupState) String() string {
	switch s {
	case PushupWaitingForStart:
		return "waiting_for_start"
	case PushupAtTop:
		return "at_top"
	case PushupGoingDown:
		return "going_down"
	case PushupAtBottom:
		return "at_bottom"
	case PushupGoingUp:
		return "going_up"
	default:
		return fmt.Sprintf("PushupState(%d)", int(s))
	}
}

// Push-up posture thresholds in degrees, plus the horizontal-posture band.
const (
	pushupTopElbow    = 160.0
	pushupTopHip      = 150.0
	pushupBottomElbow = 90.0
	// postureBand is the maximum |shoulderY - hipY| for the body to count
	// as horizontal. Leaving the band mid-repetition abandons the attempt.
	postureBand = 0.3
)

// PushupMachine classifies a feature stream into push-up repetitions.
type PushupMachine struct {
	state   PushupState
	streak  int
	buffer  []features.Features
	profile *template.Profile
}

// NewPushupMachine returns a machine in WAITING_FOR_START. A non-nil
// profile selects template-based scoring; nil selects the rule-based
// scorer.
func NewPushupMachine(profile *template.Profile) *PushupMachine {
	return &PushupMachine{profile: profile}
}

// State returns the current posture phase.
func (m *PushupMachine) State() PushupState {
	return m.state
}

// Reset discards any in-progress buffer and returns to WAITING_FOR_START
// with a zeroed debounce counter.
func (m *PushupMachine) Reset() {
	m.state = PushupWaitingForStart
	m.streak = 0
	m.buffer = nil
}

// Advance consumes one frame. It returns the completed repetition when a
// full cycle closes and passes validation, else nil.
func (m *PushupMachine) Advance(f features.Features) *session.Repetition {
	// Partial frame: no transition. In the start state the debounce streak
	// resets so intermittent frames never accumulate toward a false start.
	if f.ElbowAngle == nil || f.HipAngle == nil {
		if m.state == PushupWaitingForStart {
			m.streak = 0
		}
		return nil
	}
	elbow, hip := *f.ElbowAngle, *f.HipAngle

	// The body must stay roughly horizontal once a repetition is in
	// progress. Standing up abandons the attempt entirely.
	if m.state != PushupWaitingForStart && !horizontal(f) {
		logging.Debug("pushup: left horizontal posture, abandoning repetition")
		m.Reset()
		return nil
	}

	atTop := elbow >= pushupTopElbow && hip >= pushupTopHip

	switch m.state {
	case PushupWaitingForStart:
		if atTop {
			m.streak++
		} else {
			m.streak = 0
		}
		if m.streak >= startStreak {
			m.state = PushupAtTop
			m.buffer = []features.Features{f}
		}

	case PushupAtTop:
		m.buffer = append(m.buffer, f)
		if elbow <= pushupTopElbow-hysteresisDeg {
			m.state = PushupGoingDown
		}

	case PushupGoingDown:
		m.buffer = append(m.buffer, f)
		if elbow <= pushupBottomElbow {
			m.state = PushupAtBottom
		} else if atTop {
			// Returned to the top without reaching the bottom: aborted
			// attempt, nothing counted.
			m.state = PushupAtTop
			m.buffer = []features.Features{f}
		}

	case PushupAtBottom:
		m.buffer = append(m.buffer, f)
		if elbow >= pushupBottomElbow+hysteresisDeg {
			m.state = PushupGoingUp
		}

	case PushupGoingUp:
		m.buffer = append(m.buffer, f)
		if atTop {
			rep := m.close()
			m.state = PushupAtTop
			m.buffer = []features.Features{f}
			return rep
		}
	}

	return nil
}

// close runs the validator on the buffered cycle and scores it if accepted.
// Rejected buffers are discarded silently apart from a diagnostic log line.
func (m *PushupMachine) close() *session.Repetition {
	if err := ValidatePushup(m.buffer); err != nil {
		logging.Debug(fmt.Sprintf("pushup: repetition rejected: %v", err))
		return nil
	}
	return &session.Repetition{
		Features:    m.buffer,
		Correctness: m.score(m.buffer),
	}
}

func (m *PushupMachine) score(buf []features.Features) float64 {
	if m.profile != nil {
		return m.profile.Score(buf)
	}
	return RuleScore(buf)
}

// horizontal reports whether the frame's shoulder and hip heights are
// within the posture band. Missing positions fail the check: the posture
// can no longer be confirmed.
func horizontal(f features.Features) bool {
	if f.ShoulderY == nil || f.HipY == nil {
		return false
	}
	d := *f.ShoulderY - *f.HipY
	if d < 0 {
		d = -d
	}
	return d <= postureBand
}
