package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marinocj/repstream/internal/history"
	"github.com/marinocj/repstream/internal/logging"
)

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Manage the session history store",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List stored session summaries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(store *history.Store) error {
				entries, err := store.List()
				if err != nil {
					return err
				}
				if len(entries) == 0 {
					logging.Info("History is empty")
					return nil
				}
				for _, e := range entries {
					fmt.Printf("%s  %s  %-6s  %3d reps  avg %5.1f  %s\n",
						e.ID,
						e.RecordedAt.Format("2006-01-02 15:04"),
						e.Exercise,
						e.Reps,
						e.AvgScore,
						logging.FormatDuration(int(e.DurationS)))
				}
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete one stored session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(store *history.Store) error {
				if err := store.Delete(args[0]); err != nil {
					return err
				}
				logging.Info(fmt.Sprintf("Deleted session %s", args[0]))
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Delete every stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(store *history.Store) error {
				if err := store.Clear(); err != nil {
					return err
				}
				logging.Info("History cleared")
				return nil
			})
		},
	})

	return cmd
}

// withStore opens the configured history database, runs fn, and closes it.
func withStore(fn func(*history.Store) error) error {
	store, err := history.Open(cfg.HistoryDB)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(store)
}
