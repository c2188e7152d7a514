// Package events defines the domain events the pipeline publishes and the
// emitter that fans them out to external consumers.
//
// Emission is fire-and-forget: subscribers are invoked synchronously in
// registration order, there is no acknowledgement or backpressure channel,
// and at most one event is published per completed repetition or per
// qualifying axis frame.
package events

import "fmt"

// Exercise identifies the exercise kind carried by a repetition event.
type Exercise string

const (
	ExercisePushup Exercise = "pushup"
	ExerciseSquat  Exercise = "squat"
)

// Limb identifies which wrist drives an axis update.
type Limb string

const (
	LimbLeft  Limb = "LEFT"
	LimbRight Limb = "RIGHT"
)

// RepetitionCompleted is published once per accepted repetition.
type RepetitionCompleted struct {
	Exercise    Exercise `json:"exercise"`
	Score       float64  `json:"score"`
	TotalCount  int      `json:"total_count"`
	TimestampMs int64    `json:"timestamp_ms"`
}

// AxisUpdate is published once per frame that passes the wrist visibility
// gate while the pipeline runs in axis mode. Value is in [0, 1], larger
// meaning higher.
type AxisUpdate struct {
	Limb        Limb    `json:"limb"`
	Value       float64 `json:"value"`
	TimestampMs int64   `json:"timestamp_ms"`
}

// Emitter publishes domain events to registered subscribers. It is
// stateless apart from the subscriber lists and is not safe for concurrent
// use; the pipeline is frame-synchronous and so is emission.
type Emitter struct {
	repSubs  []func(RepetitionCompleted)
	axisSubs []func(AxisUpdate)
}

// NewEmitter returns an emitter with no subscribers.
func NewEmitter() *Emitter {
	return &Emitter{}
}

// OnRepetition registers a subscriber for repetition-completed events.
func (e *Emitter) OnRepetition(fn func(RepetitionCompleted)) {
	e.repSubs = append(e.repSubs, fn)
}

// OnAxis registers a subscriber for axis-update events.
func (e *Emitter) OnAxis(fn func(AxisUpdate)) {
	e.axisSubs = append(e.axisSubs, fn)
}

// EmitRepetition publishes ev to every repetition subscriber.
func (e *Emitter) EmitRepetition(ev RepetitionCompleted) {
	for _, fn := range e.repSubs {
		fn(ev)
	}
}

// EmitAxis publishes ev to every axis subscriber.
func (e *Emitter) EmitAxis(ev AxisUpdate) {
	for _, fn := range e.axisSubs {
		fn(ev)
	}
}

// FormatRepetition renders a repetition event as a console line.
func FormatRepetition(ev RepetitionCompleted) string {
	return fmt.Sprintf("%s rep #%d scored %.1f (t=%dms)", ev.Exercise, ev.TotalCount, ev.Score, ev.TimestampMs)
}

// FormatAxis renders an axis event as a console line.
func FormatAxis(ev AxisUpdate) string {
	return fmt.Sprintf("axis %s = %.3f (t=%dms)", ev.Limb, ev.Value, ev.TimestampMs)
}
