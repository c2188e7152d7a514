package template

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/marinocj/repstream/internal/features"
)

// Build computes a reference profile from a set of accepted repetitions.
// Each repetition is resampled onto `phases` normalized positions; the
// profile records the per-phase mean and sample standard deviation of the
// elbow and hip angle tracks across the whole set.
func Build(reps [][]features.Features, phases int) (*Profile, error) {
	if phases < 2 {
		return nil, fmt.Errorf("build profile: need at least 2 phases, got %d", phases)
	}
	if len(reps) == 0 {
		return nil, fmt.Errorf("build profile: no repetitions supplied")
	}

	elbow := make([][]float64, phases)
	hip := make([][]float64, phases)
	for _, rep := range reps {
		e := resample(rep, elbowOf, phases)
		h := resample(rep, hipOf, phases)
		for i := 0; i < phases; i++ {
			if !math.IsNaN(e[i]) {
				elbow[i] = append(elbow[i], e[i])
			}
			if !math.IsNaN(h[i]) {
				hip[i] = append(hip[i], h[i])
			}
		}
	}

	p := &Profile{Phases: make([]PhaseStats, phases)}
	for i := 0; i < phases; i++ {
		p.Phases[i].ElbowMean, p.Phases[i].ElbowStd = meanStd(elbow[i])
		p.Phases[i].HipMean, p.Phases[i].HipStd = meanStd(hip[i])
	}
	return p, nil
}

// meanStd returns the mean and sample standard deviation of vals. Fewer
// than two samples yield a zero deviation, which Score treats as an
// incomparable phase.
func meanStd(vals []float64) (float64, float64) {
	switch len(vals) {
	case 0:
		return 0, 0
	case 1:
		return vals[0], 0
	default:
		return stat.Mean(vals, nil), stat.StdDev(vals, nil)
	}
}
