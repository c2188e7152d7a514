// Package template implements statistical reference profiles for push-up
// repetitions. A profile describes, at a fixed number of normalized phase
// positions across a repetition's duration, the expected elbow and hip
// angles as a per-phase mean and standard deviation.
//
// Profiles are advisory: scoring against one is deliberately forgiving (a
// full standard-deviation departure costs only 10 points), and a missing
// profile deterministically selects the rule-based scorer instead.
package template

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/marinocj/repstream/internal/features"
)

// DefaultPhases is the phase resolution used when building a profile unless
// the caller asks for another.
const DefaultPhases = 20

// zScoreCost is the score penalty per unit of mean absolute z-score.
const zScoreCost = 10.0

// PhaseStats holds the reference statistics for one normalized phase
// position.
type PhaseStats struct {
	ElbowMean float64 `yaml:"elbow_mean"`
	ElbowStd  float64 `yaml:"elbow_std"`
	HipMean   float64 `yaml:"hip_mean"`
	HipStd    float64 `yaml:"hip_std"`
}

// Profile is an ordered set of phase statistics covering phase positions
// 0..1 of a repetition's duration.
type Profile struct {
	Phases []PhaseStats `yaml:"phases"`
}

// Load reads a YAML profile from path.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}

	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse profile: %w", err)
	}
	if len(p.Phases) < 2 {
		return nil, fmt.Errorf("profile %s: need at least 2 phases, got %d", path, len(p.Phases))
	}

	return &p, nil
}

// Save writes the profile to path as YAML.
func (p *Profile) Save(path string) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write profile: %w", err)
	}
	return nil
}

// Score compares one repetition against the profile and maps the mean
// absolute z-score across all comparable phase samples to a percentage:
// 100 - 10*avgZ, clamped to [0, 100].
//
// Phases with zero reference deviation or no resolvable sample contribute
// nothing. A repetition with no comparable samples at all scores 100: the
// profile had nothing to hold against it.
func (p *Profile) Score(frames []features.Features) float64 {
	elbow := resample(frames, elbowOf, len(p.Phases))
	hip := resample(frames, hipOf, len(p.Phases))

	sum := 0.0
	n := 0
	for i, ps := range p.Phases {
		if z, ok := zScore(elbow[i], ps.ElbowMean, ps.ElbowStd); ok {
			sum += z
			n++
		}
		if z, ok := zScore(hip[i], ps.HipMean, ps.HipStd); ok {
			sum += z
			n++
		}
	}
	if n == 0 {
		return 100
	}

	score := 100 - zScoreCost*(sum/float64(n))
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func zScore(v, mean, std float64) (float64, bool) {
	if math.IsNaN(v) || std < 1e-9 {
		return 0, false
	}
	return math.Abs(v-mean) / std, true
}
