package features

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marinocj/repstream/internal/pose"
)

// TestAngleAt verifies the three-point angle computation against known
// geometric configurations.
func TestAngleAt(t *testing.T) {
	tests := []struct {
		name     string
		a, b, c  pose.Landmark
		expected float64
	}{
		{
			name:     "right angle",
			a:        pose.Landmark{X: 0, Y: 0},
			b:        pose.Landmark{X: 0, Y: 1},
			c:        pose.Landmark{X: 1, Y: 1},
			expected: 90,
		},
		{
			name:     "straight line",
			a:        pose.Landmark{X: 0, Y: 0},
			b:        pose.Landmark{X: 1, Y: 0},
			c:        pose.Landmark{X: 2, Y: 0},
			expected: 180,
		},
		{
			name:     "fully folded",
			a:        pose.Landmark{X: 0, Y: 0},
			b:        pose.Landmark{X: 1, Y: 0},
			c:        pose.Landmark{X: 0, Y: 0},
			expected: 0,
		},
		{
			name:     "45 degrees",
			a:        pose.Landmark{X: 1, Y: 0},
			b:        pose.Landmark{X: 0, Y: 0},
			c:        pose.Landmark{X: 1, Y: 1},
			expected: 45,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := angleAt(tt.a, tt.b, tt.c)
			require.NotNil(t, got)
			assert.InDelta(t, tt.expected, *got, 1e-9)
		})
	}
}

// TestAngleAt_DegenerateVectors verifies that a collapsed joint chain
// yields nil, never NaN.
func TestAngleAt_DegenerateVectors(t *testing.T) {
	tests := []struct {
		name    string
		a, b, c pose.Landmark
	}{
		{
			name: "first vector zero length",
			a:    pose.Landmark{X: 0.5, Y: 0.5},
			b:    pose.Landmark{X: 0.5, Y: 0.5},
			c:    pose.Landmark{X: 1, Y: 1},
		},
		{
			name: "second vector zero length",
			a:    pose.Landmark{X: 1, Y: 1},
			b:    pose.Landmark{X: 0.5, Y: 0.5},
			c:    pose.Landmark{X: 0.5, Y: 0.5},
		},
		{
			name: "all points coincident",
			a:    pose.Landmark{X: 0.5, Y: 0.5},
			b:    pose.Landmark{X: 0.5, Y: 0.5},
			c:    pose.Landmark{X: 0.5, Y: 0.5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, angleAt(tt.a, tt.b, tt.c))
		})
	}
}

// TestAngleAt_NeverNaN sweeps near-degenerate geometry and asserts the
// result is either nil or a finite angle.
func TestAngleAt_NeverNaN(t *testing.T) {
	for _, eps := range []float64{0, 1e-10, 1e-8, 1e-6, 1e-3} {
		a := pose.Landmark{X: eps, Y: 0}
		b := pose.Landmark{X: 0, Y: 0}
		c := pose.Landmark{X: 0, Y: eps}
		if got := angleAt(a, b, c); got != nil {
			assert.False(t, math.IsNaN(*got), "eps=%g produced NaN", eps)
			assert.GreaterOrEqual(t, *got, 0.0)
			assert.LessOrEqual(t, *got, 180.0)
		}
	}
}
