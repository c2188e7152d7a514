package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/marinocj/repstream/internal/cli"
	"github.com/marinocj/repstream/internal/events"
	"github.com/marinocj/repstream/internal/history"
	"github.com/marinocj/repstream/internal/logging"
	"github.com/marinocj/repstream/internal/pipeline"
	"github.com/marinocj/repstream/internal/replay"
	sighandler "github.com/marinocj/repstream/internal/signal"
	"github.com/marinocj/repstream/internal/template"
)

func newReplayCmd() *cobra.Command {
	var (
		exercise     string
		hand         string
		templatePath string
		save         bool
	)

	cmd := &cobra.Command{
		Use:   "replay <recording>",
		Short: "Run a recorded landmark session through an exercise pipeline",
		Long:  "Replay feeds a recorded landmark stream (.jsonl or .jsonl.zst) through the selected exercise pipeline, printing every emitted event and a session summary.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if exercise == "" {
				exercise = cfg.Exercise
			}
			if hand == "" {
				hand = cfg.AxisHand
			}
			return runReplay(args[0], exercise, hand, templatePath, save)
		},
	}

	cmd.Flags().StringVarP(&exercise, "exercise", "e", "", "Exercise mode: pushup, squat or axis")
	cmd.Flags().StringVar(&hand, "hand", "", "Tracked wrist in axis mode: left or right")
	cmd.Flags().StringVar(&templatePath, "template", "", "YAML reference profile for push-up scoring")
	cmd.Flags().BoolVar(&save, "save", false, "Append the session summary to history")

	return cmd
}

func runReplay(file, exercise, hand, templatePath string, save bool) error {
	opts, err := buildPipelineOptions(exercise, hand, templatePath)
	if err != nil {
		return err
	}

	p := pipeline.New(opts)
	p.Emitter().OnRepetition(func(ev events.RepetitionCompleted) {
		logging.Event(events.FormatRepetition(ev))
	})
	p.Emitter().OnAxis(func(ev events.AxisUpdate) {
		logging.Event(events.FormatAxis(ev))
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sighandler.SetupHandler(ctx, cancel, func() {
		logging.Warn("Interrupted, discarding any in-progress repetition")
	})

	r, err := replay.Open(file)
	if err != nil {
		return err
	}
	defer r.Close()

	frames := 0
	for ctx.Err() == nil {
		frame, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		p.ProcessFrame(frame)
		frames++
	}

	sess := p.Reset()
	if opts.Mode == pipeline.ModeAxis {
		logging.Info(fmt.Sprintf("Processed %d frames in axis mode", frames))
		return nil
	}

	logging.Info(fmt.Sprintf("Processed %d frames: %d repetitions, average score %.1f",
		frames, sess.Count(), sess.AverageScore()))

	if !save {
		return nil
	}
	store, err := history.Open(cfg.HistoryDB)
	if err != nil {
		return err
	}
	defer store.Close()

	id, err := store.Append(history.Entry{
		Exercise:  sess.Exercise,
		Reps:      sess.Count(),
		AvgScore:  sess.AverageScore(),
		DurationS: sess.Duration(),
		Source:    file,
	})
	if err != nil {
		return err
	}
	logging.Info(fmt.Sprintf("Saved session %s to history", id))
	return nil
}

// buildPipelineOptions resolves the shared exercise/hand/template flags
// into pipeline options.
func buildPipelineOptions(exercise, hand, templatePath string) (pipeline.Options, error) {
	mode, err := cli.ParseMode(exercise)
	if err != nil {
		return pipeline.Options{}, err
	}

	opts := pipeline.Options{Mode: mode}

	if mode == pipeline.ModeAxis {
		h, err := cli.ParseHand(hand)
		if err != nil {
			return pipeline.Options{}, err
		}
		opts.Hand = h
	}

	if mode == pipeline.ModePushup {
		if templatePath == "" {
			templatePath = cfg.TemplateProfile
		}
		if templatePath != "" {
			profile, err := template.Load(templatePath)
			if err != nil {
				return pipeline.Options{}, err
			}
			opts.Profile = profile
			logging.Info(fmt.Sprintf("Loaded template profile with %d phases", len(profile.Phases)))
		}
	}

	return opts, nil
}
