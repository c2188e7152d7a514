package template

import (
	"math"

	"github.com/marinocj/repstream/internal/features"
)

func elbowOf(f features.Features) *float64 { return f.ElbowAngle }
func hipOf(f features.Features) *float64   { return f.HipAngle }

// resample projects one signal track onto `phases` normalized positions
// spanning the repetition's duration, using nearest-timestamp lookup over
// the frames where the signal resolved. Positions with no resolvable frame
// come back as NaN.
func resample(frames []features.Features, get func(features.Features) *float64, phases int) []float64 {
	out := make([]float64, phases)
	for i := range out {
		out[i] = math.NaN()
	}

	// Only frames carrying the signal participate in the lookup.
	var ts []float64
	var vs []float64
	for _, f := range frames {
		if v := get(f); v != nil {
			ts = append(ts, f.Timestamp)
			vs = append(vs, *v)
		}
	}
	if len(ts) == 0 || phases < 2 {
		return out
	}

	t0 := ts[0]
	span := ts[len(ts)-1] - t0
	for i := 0; i < phases; i++ {
		target := t0 + span*float64(i)/float64(phases-1)
		out[i] = vs[nearest(ts, target)]
	}
	return out
}

// nearest returns the index of the timestamp closest to target. Timestamps
// arrive in frame order, so a linear scan over a single repetition's worth
// of frames is fine.
func nearest(ts []float64, target float64) int {
	best := 0
	bestD := math.Abs(ts[0] - target)
	for i := 1; i < len(ts); i++ {
		d := math.Abs(ts[i] - target)
		if d < bestD {
			best = i
			bestD = d
		}
	}
	return best
}
