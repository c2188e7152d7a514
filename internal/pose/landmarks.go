// Package pose defines the landmark data model produced by the external
// pose estimator.
//
// A Frame is one timestamped skeleton estimate: 33 body points in the
// MediaPipe pose convention, each with a normalized position and a
// visibility confidence. The core never mutates frames; they are consumed
// once and reduced to derived features.
package pose

// Body-point indices following the MediaPipe pose convention.
// See: https://developers.google.com/mediapipe/solutions/vision/pose_landmarker
const (
	Nose           = 0
	LeftEyeInner   = 1
	LeftEye        = 2
	LeftEyeOuter   = 3
	RightEyeInner  = 4
	RightEye       = 5
	RightEyeOuter  = 6
	LeftEar        = 7
	RightEar       = 8
	MouthLeft      = 9
	MouthRight     = 10
	LeftShoulder   = 11
	RightShoulder  = 12
	LeftElbow      = 13
	RightElbow     = 14
	LeftWrist      = 15
	RightWrist     = 16
	LeftPinky      = 17
	RightPinky     = 18
	LeftIndex      = 19
	RightIndex     = 20
	LeftThumb      = 21
	RightThumb     = 22
	LeftHip        = 23
	RightHip       = 24
	LeftKnee       = 25
	RightKnee      = 26
	LeftAnkle      = 27
	RightAnkle     = 28
	LeftHeel       = 29
	RightHeel      = 30
	LeftFootIndex  = 31
	RightFootIndex = 32
	NumLandmarks   = 33
)

// Landmark is one estimated anatomical keypoint. X and Y are normalized to
// the camera frame (Y increases downward); Z is depth relative to the hips.
// Visibility is the estimator's confidence that the point is correctly
// located, in [0, 1]. A missing point arrives as the zero value.
type Landmark struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Z          float64 `json:"z"`
	Visibility float64 `json:"v"`
}

// Frame is one skeleton estimate with a monotonically increasing timestamp
// in seconds. The same index always refers to the same anatomical point
// across frames.
type Frame struct {
	Timestamp float64                `json:"t"`
	Landmarks [NumLandmarks]Landmark `json:"landmarks"`
}

// TimestampMs returns the frame timestamp in integer milliseconds, the unit
// carried by emitted events.
func (f Frame) TimestampMs() int64 {
	return int64(f.Timestamp*1000 + 0.5)
}
