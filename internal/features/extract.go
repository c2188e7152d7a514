// Package features reduces landmark frames to the small set of scalar
// signals the repetition state machines consume: joint angles in degrees
// and normalized vertical positions.
//
// Every derived signal is nullable. An angle is present only when the
// exercise family's joint subset passed the aggregate visibility gate and
// the contributing chain resolved on at least one body side. Vertical
// positions degrade more gracefully: they are populated from whichever
// individual joints are visible even when the gate fails.
package features

import "github.com/marinocj/repstream/internal/pose"

// VisibilityGate is the minimum confidence required before trusting a
// landmark, and the minimum mean confidence across an exercise family's
// joint subset before trusting derived angles.
const VisibilityGate = 0.4

// Family selects which joint subset and angle chains an Extractor computes.
type Family int

const (
	// FamilyPushup watches shoulders, elbows, wrists, hips and ankles, and
	// derives elbow and hip angles.
	FamilyPushup Family = iota
	// FamilySquat watches hips, knees and ankles, and derives knee angles.
	FamilySquat
)

// Features holds the derived signals for one frame. A nil field means the
// signal could not be computed; downstream consumers must tolerate partial
// frames.
type Features struct {
	ElbowAngle *float64
	HipAngle   *float64
	KneeAngle  *float64

	HeadY     *float64
	ShoulderY *float64
	HipY      *float64

	// Timestamp is the source frame timestamp in seconds.
	Timestamp float64
}

var (
	pushupSubset = []int{
		pose.LeftShoulder, pose.RightShoulder,
		pose.LeftElbow, pose.RightElbow,
		pose.LeftWrist, pose.RightWrist,
		pose.LeftHip, pose.RightHip,
		pose.LeftAnkle, pose.RightAnkle,
	}
	squatSubset = []int{
		pose.LeftHip, pose.RightHip,
		pose.LeftKnee, pose.RightKnee,
		pose.LeftAnkle, pose.RightAnkle,
	}
)

// Extractor derives Features from landmark frames for one exercise family.
type Extractor struct {
	family Family
}

// NewExtractor returns an extractor for the given exercise family.
func NewExtractor(family Family) *Extractor {
	return &Extractor{family: family}
}

// Extract reduces one frame to its derived signals at time t (seconds).
// It never fails: insufficient visibility and degenerate geometry both
// degrade to nil fields.
func (e *Extractor) Extract(frame pose.Frame, t float64) Features {
	f := Features{Timestamp: t}

	f.HeadY = verticalAt(frame, pose.Nose)
	f.ShoulderY = verticalPair(frame, pose.LeftShoulder, pose.RightShoulder)
	f.HipY = verticalPair(frame, pose.LeftHip, pose.RightHip)

	if meanVisibility(frame, e.subset()) < VisibilityGate {
		return f
	}

	switch e.family {
	case FamilyPushup:
		f.ElbowAngle = pairAngle(frame,
			[3]int{pose.LeftShoulder, pose.LeftElbow, pose.LeftWrist},
			[3]int{pose.RightShoulder, pose.RightElbow, pose.RightWrist})
		f.HipAngle = pairAngle(frame,
			[3]int{pose.LeftShoulder, pose.LeftHip, pose.LeftAnkle},
			[3]int{pose.RightShoulder, pose.RightHip, pose.RightAnkle})
	case FamilySquat:
		f.KneeAngle = pairAngle(frame,
			[3]int{pose.LeftHip, pose.LeftKnee, pose.LeftAnkle},
			[3]int{pose.RightHip, pose.RightKnee, pose.RightAnkle})
	}

	return f
}

func (e *Extractor) subset() []int {
	if e.family == FamilySquat {
		return squatSubset
	}
	return pushupSubset
}

// meanVisibility averages the confidence of the given landmark indices.
func meanVisibility(frame pose.Frame, subset []int) float64 {
	sum := 0.0
	for _, i := range subset {
		sum += frame.Landmarks[i].Visibility
	}
	return sum / float64(len(subset))
}

// pairAngle resolves the chain angle on each body side and averages the
// sides that resolved. A side resolves only when all three of its joints
// individually meet the visibility gate and the chain is not degenerate.
func pairAngle(frame pose.Frame, left, right [3]int) *float64 {
	l := sideAngle(frame, left)
	r := sideAngle(frame, right)

	switch {
	case l != nil && r != nil:
		avg := (*l + *r) / 2
		return &avg
	case l != nil:
		return l
	case r != nil:
		return r
	default:
		return nil
	}
}

func sideAngle(frame pose.Frame, chain [3]int) *float64 {
	for _, i := range chain {
		if frame.Landmarks[i].Visibility < VisibilityGate {
			return nil
		}
	}
	return angleAt(frame.Landmarks[chain[0]], frame.Landmarks[chain[1]], frame.Landmarks[chain[2]])
}

// verticalPair averages the normalized Y of the two sides, falling back to
// whichever single side is visible, else nil.
func verticalPair(frame pose.Frame, left, right int) *float64 {
	l := verticalAt(frame, left)
	r := verticalAt(frame, right)

	switch {
	case l != nil && r != nil:
		avg := (*l + *r) / 2
		return &avg
	case l != nil:
		return l
	case r != nil:
		return r
	default:
		return nil
	}
}

func verticalAt(frame pose.Frame, i int) *float64 {
	lm := frame.Landmarks[i]
	if lm.Visibility < VisibilityGate {
		return nil
	}
	y := lm.Y
	return &y
}
