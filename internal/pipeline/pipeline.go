// Package pipeline wires one exercise-mode processing chain: landmark
// frames in, zero or more domain events out.
//
// The model is single-threaded and frame-synchronous. ProcessFrame handles
// exactly one frame at a time in arrival order; every stage is pure,
// synchronous computation, so a frame is fully classified before the next
// arrives and no locking is needed anywhere. One pipeline instance owns its
// state machine, buffers and session log exclusively.
package pipeline

import (
	"github.com/marinocj/repstream/internal/axis"
	"github.com/marinocj/repstream/internal/events"
	"github.com/marinocj/repstream/internal/features"
	"github.com/marinocj/repstream/internal/pose"
	"github.com/marinocj/repstream/internal/reps"
	"github.com/marinocj/repstream/internal/session"
	"github.com/marinocj/repstream/internal/template"
)

// Mode selects which exercise-mode chain a pipeline runs. Exactly one is
// active per pipeline instance.
type Mode int

const (
	ModePushup Mode = iota
	ModeSquat
	ModeAxis
)

// String returns the mode's exercise name.
func (m Mode) String() string {
	switch m {
	case ModePushup:
		return "pushup"
	case ModeSquat:
		return "squat"
	case ModeAxis:
		return "axis"
	default:
		return "unknown"
	}
}

// Options configures a pipeline instance.
type Options struct {
	Mode Mode
	// Hand selects the tracked wrist in ModeAxis.
	Hand axis.Hand
	// Profile, when non-nil, selects template-based scoring for push-ups.
	// Nil deterministically selects the rule-based scorer.
	Profile *template.Profile
}

// Pipeline is one active exercise-mode processing chain.
type Pipeline struct {
	mode      Mode
	extractor *features.Extractor
	machine   reps.Machine
	tracker   *axis.Tracker
	emitter   *events.Emitter
	sess      *session.Session
}

// New constructs a pipeline for the given options. Subscribe to its
// Emitter before feeding frames.
func New(opts Options) *Pipeline {
	p := &Pipeline{
		mode:    opts.Mode,
		emitter: events.NewEmitter(),
		sess:    session.New(opts.Mode.String()),
	}

	switch opts.Mode {
	case ModePushup:
		p.extractor = features.NewExtractor(features.FamilyPushup)
		p.machine = reps.NewPushupMachine(opts.Profile)
	case ModeSquat:
		p.extractor = features.NewExtractor(features.FamilySquat)
		p.machine = reps.NewSquatMachine()
	case ModeAxis:
		p.tracker = axis.NewTracker(opts.Hand)
	}

	return p
}

// Emitter returns the pipeline's event emitter for subscription.
func (p *Pipeline) Emitter() *events.Emitter {
	return p.emitter
}

// Session returns the current session log.
func (p *Pipeline) Session() *session.Session {
	return p.sess
}

// ProcessFrame consumes one landmark frame and publishes whatever events it
// produces. It never fails: malformed input degrades to "no event this
// frame".
func (p *Pipeline) ProcessFrame(frame pose.Frame) {
	if p.mode == ModeAxis {
		if v, ok := p.tracker.Value(frame); ok {
			p.emitter.EmitAxis(events.AxisUpdate{
				Limb:        p.tracker.Limb(),
				Value:       v,
				TimestampMs: frame.TimestampMs(),
			})
		}
		return
	}

	p.sess.ObserveFrame(frame.Timestamp)

	f := p.extractor.Extract(frame, frame.Timestamp)
	rep := p.machine.Advance(f)
	if rep == nil {
		return
	}

	p.sess.Append(*rep)
	p.emitter.EmitRepetition(events.RepetitionCompleted{
		Exercise:    events.Exercise(p.mode.String()),
		Score:       rep.Correctness,
		TotalCount:  p.sess.Count(),
		TimestampMs: frame.TimestampMs(),
	})
}

// Reset tears the current session down: any in-progress repetition buffer
// is discarded, the state machine returns to WAITING_FOR_START with zeroed
// counters, and a fresh session begins. The finished session is returned so
// the caller can persist its summary. Partial repetitions never survive a
// reset.
func (p *Pipeline) Reset() *session.Session {
	if p.machine != nil {
		p.machine.Reset()
	}
	done := p.sess
	p.sess = session.New(p.mode.String())
	return done
}
