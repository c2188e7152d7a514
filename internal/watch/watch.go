// Package watch runs a drop-directory watcher: recorded session files that
// appear in the watched directory are replayed through an exercise pipeline
// and their summaries appended to the history store.
package watch

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/marinocj/repstream/internal/events"
	"github.com/marinocj/repstream/internal/history"
	"github.com/marinocj/repstream/internal/logging"
	"github.com/marinocj/repstream/internal/pipeline"
	"github.com/marinocj/repstream/internal/replay"
)

// settleDelay is how long to wait after a file appears before reading it,
// so a writer still flushing the recording is not raced.
const settleDelay = 500 * time.Millisecond

// Watcher processes recordings dropped into one directory.
type Watcher struct {
	dir   string
	store *history.Store
	opts  pipeline.Options
	seen  map[string]bool
}

// New returns a watcher over dir that runs each new recording through a
// pipeline built from opts and appends summaries to store.
func New(dir string, store *history.Store, opts pipeline.Options) *Watcher {
	return &Watcher{
		dir:   dir,
		store: store,
		opts:  opts,
		seen:  make(map[string]bool),
	}
}

// Run watches the directory until ctx is canceled. Per-file failures are
// logged and skipped; only watcher-level failures end the run.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}
	logging.Info(fmt.Sprintf("Watching %s for recordings", w.dir))

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if !isRecording(ev.Name) || w.seen[ev.Name] {
				continue
			}
			w.seen[ev.Name] = true

			time.Sleep(settleDelay)
			if err := w.processFile(ev.Name); err != nil {
				logging.Error(fmt.Sprintf("Failed to process %s: %v", ev.Name, err))
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logging.Warn(fmt.Sprintf("Watcher error: %v", err))
		}
	}
}

// processFile replays one recording through a fresh pipeline and appends
// the resulting session summary to history.
func (w *Watcher) processFile(path string) error {
	r, err := replay.Open(path)
	if err != nil {
		return err
	}
	defer r.Close()

	p := pipeline.New(w.opts)
	p.Emitter().OnRepetition(func(ev events.RepetitionCompleted) {
		logging.Event(events.FormatRepetition(ev))
	})

	for {
		frame, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		p.ProcessFrame(frame)
	}

	sess := p.Reset()
	id, err := w.store.Append(history.Entry{
		Exercise:  sess.Exercise,
		Reps:      sess.Count(),
		AvgScore:  sess.AverageScore(),
		DurationS: sess.Duration(),
		Source:    path,
	})
	if err != nil {
		return err
	}

	logging.Info(fmt.Sprintf("Recorded session %s: %d reps from %s", id, sess.Count(), filepath.Base(path)))
	return nil
}

// isRecording reports whether the file name looks like a recorded session.
func isRecording(path string) bool {
	return strings.HasSuffix(path, ".jsonl") || strings.HasSuffix(path, ".jsonl.zst")
}
