package reps

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marinocj/repstream/internal/features"
	"github.com/marinocj/repstream/internal/session"
)

func fp(v float64) *float64 { return &v }

// pushupFeat builds a horizontal-posture frame with the given elbow and
// hip angles.
func pushupFeat(t, elbow, hip float64) features.Features {
	return features.Features{
		ElbowAngle: fp(elbow),
		HipAngle:   fp(hip),
		ShoulderY:  fp(0.5),
		HipY:       fp(0.5),
		Timestamp:  t,
	}
}

// advanceAll feeds the frames in order and returns every repetition the
// machine closed.
func advanceAll(m Machine, frames []features.Features) []*session.Repetition {
	var reps []*session.Repetition
	for _, f := range frames {
		if rep := m.Advance(f); rep != nil {
			reps = append(reps, rep)
		}
	}
	return reps
}

// pushupCycle builds the canonical full cycle: a 3-frame top streak, a
// descent to the given bottom angle, and a return to the top.
func pushupCycle(bottom float64) []features.Features {
	angles := []float64{170, 168, 169, 150, 110, bottom, 130, 165}
	frames := make([]features.Features, len(angles))
	for i, a := range angles {
		frames[i] = pushupFeat(float64(i)/30, a, 180)
	}
	return frames
}

// TestPushup_SingleRepetition runs a synthetic push-up sequence through the
// machine and expects exactly one completed repetition.
func TestPushup_SingleRepetition(t *testing.T) {
	m := NewPushupMachine(nil)

	reps := advanceAll(m, pushupCycle(88))

	require.Len(t, reps, 1)
	assert.Equal(t, PushupAtTop, m.State())
	assert.GreaterOrEqual(t, reps[0].Correctness, 0.0)
	assert.LessOrEqual(t, reps[0].Correctness, 100.0)
	// Full 81° sweep with straight hips is a perfect score.
	assert.InDelta(t, 100, reps[0].Correctness, 1e-9)
}

// TestPushup_ShallowRangeRejected verifies that a cycle whose elbow range
// is too small yields no repetition. The machine never reaches the bottom
// threshold, so the attempt aborts back to the top.
func TestPushup_ShallowRangeRejected(t *testing.T) {
	m := NewPushupMachine(nil)

	angles := []float64{170, 168, 169, 150, 140, 150, 168, 170, 169}
	var frames []features.Features
	for i, a := range angles {
		frames = append(frames, pushupFeat(float64(i)/30, a, 180))
	}

	reps := advanceAll(m, frames)
	assert.Empty(t, reps)
}

// TestPushup_StartDebounce verifies that fewer than 3 consecutive "at top"
// frames never commit the machine out of WAITING_FOR_START.
func TestPushup_StartDebounce(t *testing.T) {
	m := NewPushupMachine(nil)

	// Two top frames, a noise frame, two top frames, noise, forever.
	for i := 0; i < 30; i++ {
		angle := 170.0
		if i%3 == 2 {
			angle = 120
		}
		rep := m.Advance(pushupFeat(float64(i)/30, angle, 180))
		assert.Nil(t, rep)
		assert.Equal(t, PushupWaitingForStart, m.State())
	}
}

// TestPushup_NilAnglesResetDebounce verifies that a partial frame resets
// the start streak, so intermittent visibility cannot accumulate a start.
func TestPushup_NilAnglesResetDebounce(t *testing.T) {
	m := NewPushupMachine(nil)

	for i := 0; i < 12; i++ {
		m.Advance(pushupFeat(float64(i), 170, 180))
		m.Advance(pushupFeat(float64(i)+0.5, 170, 180))
		// Visibility dropout between every pair of qualifying frames.
		m.Advance(features.Features{ShoulderY: fp(0.5), HipY: fp(0.5)})
		assert.Equal(t, PushupWaitingForStart, m.State())
	}
}

// TestPushup_NilAnglesMidCycleDoNotTransition verifies that partial frames
// inside a cycle are ignored rather than appended or acted on.
func TestPushup_NilAnglesMidCycleDoNotTransition(t *testing.T) {
	m := NewPushupMachine(nil)

	advanceAll(m, []features.Features{
		pushupFeat(0, 170, 180),
		pushupFeat(1, 170, 180),
		pushupFeat(2, 170, 180),
		pushupFeat(3, 150, 180),
	})
	require.Equal(t, PushupGoingDown, m.State())

	rep := m.Advance(features.Features{ShoulderY: fp(0.5), HipY: fp(0.5)})
	assert.Nil(t, rep)
	assert.Equal(t, PushupGoingDown, m.State())
}

// TestPushup_PostureBreakAbandonsRepetition verifies that leaving the
// horizontal band mid-repetition discards the buffer and resets the
// machine, and that no repetition is ever counted from the partial cycle.
func TestPushup_PostureBreakAbandonsRepetition(t *testing.T) {
	m := NewPushupMachine(nil)

	advanceAll(m, []features.Features{
		pushupFeat(0, 170, 180),
		pushupFeat(1, 170, 180),
		pushupFeat(2, 170, 180),
		pushupFeat(3, 120, 180),
		pushupFeat(4, 88, 180),
	})
	require.Equal(t, PushupAtBottom, m.State())

	// The user stands up: shoulders far above hips.
	broken := pushupFeat(5, 120, 180)
	broken.ShoulderY = fp(0.1)
	rep := m.Advance(broken)

	assert.Nil(t, rep)
	assert.Equal(t, PushupWaitingForStart, m.State())

	// Completing the motion afterwards must not resurrect the old buffer.
	rep = m.Advance(pushupFeat(6, 165, 180))
	assert.Nil(t, rep)
	assert.Equal(t, PushupWaitingForStart, m.State())
}

// TestPushup_AbortedAttemptReturnsToTop verifies that rising back to the
// top before reaching the bottom discards the partial descent without
// counting a repetition, then a full cycle still completes normally.
func TestPushup_AbortedAttemptReturnsToTop(t *testing.T) {
	m := NewPushupMachine(nil)

	reps := advanceAll(m, []features.Features{
		pushupFeat(0, 170, 180),
		pushupFeat(1, 170, 180),
		pushupFeat(2, 170, 180),
		pushupFeat(3, 150, 180), // partial descent
		pushupFeat(4, 130, 180),
		pushupFeat(5, 170, 180), // back at top: aborted
	})
	assert.Empty(t, reps)
	assert.Equal(t, PushupAtTop, m.State())

	// A real cycle afterwards completes.
	reps = advanceAll(m, []features.Features{
		pushupFeat(6, 150, 180),
		pushupFeat(7, 110, 180),
		pushupFeat(8, 85, 180),
		pushupFeat(9, 120, 180),
		pushupFeat(10, 150, 180),
		pushupFeat(11, 170, 180),
	})
	assert.Len(t, reps, 1)
}

// TestPushup_ConsecutiveRepetitionsCount verifies the buffer reseeds after
// each completed cycle so back-to-back repetitions each count once.
func TestPushup_ConsecutiveRepetitionsCount(t *testing.T) {
	m := NewPushupMachine(nil)

	total := 0
	frames := pushupCycle(88)
	total += len(advanceAll(m, frames))

	// Two more cycles without re-debouncing: the machine is already at top.
	for i := 0; i < 2; i++ {
		more := []features.Features{
			pushupFeat(float64(10+i*6), 150, 180),
			pushupFeat(float64(11+i*6), 110, 180),
			pushupFeat(float64(12+i*6), 87, 180),
			pushupFeat(float64(13+i*6), 120, 180),
			pushupFeat(float64(14+i*6), 150, 180),
			pushupFeat(float64(15+i*6), 168, 180),
		}
		total += len(advanceAll(m, more))
	}

	assert.Equal(t, 3, total)
}

// TestPushup_ResetClearsEverything verifies Reset returns the machine to
// its initial state with no residual buffer or streak.
func TestPushup_ResetClearsEverything(t *testing.T) {
	m := NewPushupMachine(nil)

	advanceAll(m, []features.Features{
		pushupFeat(0, 170, 180),
		pushupFeat(1, 170, 180),
		pushupFeat(2, 170, 180),
		pushupFeat(3, 120, 180),
	})
	require.Equal(t, PushupGoingDown, m.State())

	m.Reset()
	assert.Equal(t, PushupWaitingForStart, m.State())
	assert.Equal(t, 0, m.streak)
	assert.Nil(t, m.buffer)
}

// TestPushupState_String covers the state names used in diagnostics.
func TestPushupState_String(t *testing.T) {
	assert.Equal(t, "waiting_for_start", PushupWaitingForStart.String())
	assert.Equal(t, "at_top", PushupAtTop.String())
	assert.Equal(t, "going_down", PushupGoingDown.String())
	assert.Equal(t, "at_bottom", PushupAtBottom.String())
	assert.Equal(t, "going_up", PushupGoingUp.String())
}
