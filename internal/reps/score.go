package reps

import (
	"fmt"

	"github.com/marinocj/repstream/internal/features"
)

// Push-up validity criteria and rule-based scoring weights.
const (
	pushupMinFrames = 6
	pushupMinRange  = 40.0
	// pushupBottomSlack is how close (in degrees) the minimum elbow angle
	// must come to the canonical bottom threshold for the descent to count.
	pushupBottomSlack = 10.0

	// Rule-based scoring: range of motion is worth 70 points, reached at a
	// full 80° elbow sweep; body straightness is worth 30, scaling the
	// peak hip angle from 140° to 180°.
	romFullRange   = 80.0
	romWeight      = 70.0
	straightBase   = 140.0
	straightSpan   = 40.0
	straightWeight = 30.0
)

// ValidatePushup decides acceptance of a closed push-up buffer. A nil
// return means accepted; the error carries the rejection reason for the
// diagnostic log.
func ValidatePushup(buf []features.Features) error {
	vals := elbowTrack(buf)
	if len(vals) < pushupMinFrames {
		return fmt.Errorf("only %d frames with elbow angle, need %d", len(vals), pushupMinFrames)
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
	if max-min < pushupMinRange {
		return fmt.Errorf("elbow range %.1f° below %.0f°", max-min, pushupMinRange)
	}
	if min > pushupBottomElbow+pushupBottomSlack {
		return fmt.Errorf("minimum elbow angle %.1f° never came within %.0f° of bottom", min, pushupBottomSlack)
	}
	return nil
}

// RuleScore computes the default 0-100 correctness score for an accepted
// push-up: a range-of-motion component plus a body-straightness component.
func RuleScore(buf []features.Features) float64 {
	elbow := elbowTrack(buf)
	if len(elbow) == 0 {
		return 0
	}

	min, max := elbow[0], elbow[0]
	for _, v := range elbow[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	rom := clamp01((max-min)/romFullRange) * romWeight

	straight := 0.0
	if maxHip, ok := maxHipAngle(buf); ok {
		straight = clamp01((maxHip-straightBase)/straightSpan) * straightWeight
	}

	score := rom + straight
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func elbowTrack(buf []features.Features) []float64 {
	var vals []float64
	for _, f := range buf {
		if f.ElbowAngle != nil {
			vals = append(vals, *f.ElbowAngle)
		}
	}
	return vals
}

func maxHipAngle(buf []features.Features) (float64, bool) {
	found := false
	max := 0.0
	for _, f := range buf {
		if f.HipAngle == nil {
			continue
		}
		if !found || *f.HipAngle > max {
			max = *f.HipAngle
			found = true
		}
	}
	return max, found
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
