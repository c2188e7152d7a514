package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/marinocj/repstream/internal/config"
	"github.com/marinocj/repstream/internal/exitcode"
	"github.com/marinocj/repstream/internal/logging"
)

// version vars injected via ldflags at build time
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// cfg is loaded once in the root PersistentPreRunE and shared by all
// subcommands.
var cfg config.Config

func main() {
	var (
		flagConfig  string
		flagVerbose bool
	)

	rootCmd := &cobra.Command{
		Use:     "repstream",
		Short:   "Pose-stream repetition counter and game-control axis",
		Long:    "Repstream turns recorded human-pose landmark streams into discrete, validated exercise repetitions with per-repetition form-quality scores, and into continuous control-axis signals.",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(flagConfig)
			if err != nil {
				return err
			}
			if flagVerbose || cfg.Verbose {
				logging.SetVerbose(true)
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config file")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug output")

	rootCmd.AddCommand(newReplayCmd())
	rootCmd.AddCommand(newWatchCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newTemplateCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitcode.Error)
	}
}
