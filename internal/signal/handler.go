// Package signal provides signal handling for graceful shutdown of the
// repstream CLI.
//
// Stopping a capture or replay must tear the pipeline down cleanly: the
// in-progress repetition buffer is discarded, never resumed. The handler
// cancels the command context so the frame loop exits between frames.
package signal

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// SetupHandler registers SIGINT and SIGTERM handlers. When a signal
// arrives, the onInterrupt callback (if non-nil) runs first, then the
// context is canceled. The listening goroutine exits once the context is
// done.
func SetupHandler(ctx context.Context, cancel context.CancelFunc, onInterrupt func()) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
			if onInterrupt != nil {
				onInterrupt()
			}
			cancel()
		case <-ctx.Done():
			return
		}
	}()
}
