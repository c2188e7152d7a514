package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/marinocj/repstream/internal/history"
	"github.com/marinocj/repstream/internal/logging"
	"github.com/marinocj/repstream/internal/pipeline"
	sighandler "github.com/marinocj/repstream/internal/signal"
	"github.com/marinocj/repstream/internal/watch"
)

func newWatchCmd() *cobra.Command {
	var (
		exercise     string
		templatePath string
	)

	cmd := &cobra.Command{
		Use:   "watch [dir]",
		Short: "Watch a drop directory for recorded sessions",
		Long:  "Watch processes every recording that appears in the directory through the selected repetition pipeline and appends session summaries to history. Runs until interrupted.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := cfg.WatchDir
			if len(args) == 1 {
				dir = args[0]
			}
			if exercise == "" {
				exercise = cfg.Exercise
			}
			return runWatch(dir, exercise, templatePath)
		},
	}

	cmd.Flags().StringVarP(&exercise, "exercise", "e", "", "Exercise mode: pushup or squat")
	cmd.Flags().StringVar(&templatePath, "template", "", "YAML reference profile for push-up scoring")

	return cmd
}

func runWatch(dir, exercise, templatePath string) error {
	opts, err := buildPipelineOptions(exercise, cfg.AxisHand, templatePath)
	if err != nil {
		return err
	}
	if opts.Mode == pipeline.ModeAxis {
		return fmt.Errorf("watch counts repetitions; axis mode is not supported")
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create watch dir: %w", err)
	}

	store, err := history.Open(cfg.HistoryDB)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sighandler.SetupHandler(ctx, cancel, func() {
		logging.Warn("Interrupted, stopping watcher")
	})

	return watch.New(dir, store, opts).Run(ctx)
}
