package features

import (
	"math"

	"github.com/marinocj/repstream/internal/pose"
)

// degenerateEps is the squared vector length below which a joint chain is
// considered collapsed and yields no angle.
const degenerateEps = 1e-12

// angleAt computes the angle in degrees at the middle point b of the chain
// a-b-c, using the camera-plane (x, y) components. Returns nil when either
// limb vector has effectively zero length; it never produces NaN.
func angleAt(a, b, c pose.Landmark) *float64 {
	ux, uy := a.X-b.X, a.Y-b.Y
	vx, vy := c.X-b.X, c.Y-b.Y

	uu := ux*ux + uy*uy
	vv := vx*vx + vy*vy
	if uu < degenerateEps || vv < degenerateEps {
		return nil
	}

	// Clamp before acos: floating-point drift can push the cosine slightly
	// outside [-1, 1], which would yield NaN.
	cos := (ux*vx + uy*vy) / math.Sqrt(uu*vv)
	if cos > 1 {
		cos = 1
	} else if cos < -1 {
		cos = -1
	}

	deg := math.Acos(cos) * 180 / math.Pi
	return &deg
}
