package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/marinocj/repstream/internal/features"
	"github.com/marinocj/repstream/internal/logging"
	"github.com/marinocj/repstream/internal/pipeline"
	"github.com/marinocj/repstream/internal/replay"
	"github.com/marinocj/repstream/internal/template"
)

func newTemplateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Build and inspect statistical reference profiles",
	}
	cmd.AddCommand(newTemplateBuildCmd())
	return cmd
}

func newTemplateBuildCmd() *cobra.Command {
	var (
		out    string
		phases int
	)

	cmd := &cobra.Command{
		Use:   "build <recordings...>",
		Short: "Build a push-up reference profile from recorded sessions",
		Long:  "Build replays each recording through the push-up pipeline with rule-based scoring; every accepted repetition contributes to the per-phase mean and standard deviation of the profile.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTemplateBuild(args, out, phases)
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "profile.yaml", "Output profile path")
	cmd.Flags().IntVar(&phases, "phases", template.DefaultPhases, "Number of normalized phase positions")

	return cmd
}

func runTemplateBuild(recordings []string, out string, phases int) error {
	var reps [][]features.Features
	for _, path := range recordings {
		got, err := collectPushupReps(path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		logging.Info(fmt.Sprintf("%s: %d accepted repetitions", path, len(got)))
		reps = append(reps, got...)
	}

	profile, err := template.Build(reps, phases)
	if err != nil {
		return err
	}
	if err := profile.Save(out); err != nil {
		return err
	}

	logging.Info(fmt.Sprintf("Wrote %d-phase profile from %d repetitions to %s", phases, len(reps), out))
	return nil
}

// collectPushupReps replays one recording and returns the feature buffers
// of every accepted push-up repetition.
func collectPushupReps(path string) ([][]features.Features, error) {
	r, err := replay.Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	p := pipeline.New(pipeline.Options{Mode: pipeline.ModePushup})
	for {
		frame, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		p.ProcessFrame(frame)
	}

	var reps [][]features.Features
	for _, rep := range p.Session().Repetitions() {
		reps = append(reps, rep.Features)
	}
	return reps, nil
}
