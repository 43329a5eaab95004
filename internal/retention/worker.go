// Package retention prunes old rows from the chat transcript.
package retention

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/drhelai/helai/internal/store"
)

const (
	maxRetries = 3
	baseDelay  = 50 * time.Millisecond
)

// SweepCallback is called after each sweep that removed turns.
type SweepCallback func(deleted int64)

// deleteWithRetry deletes expired turns with exponential backoff on
// SQLITE_BUSY and locked errors.
func deleteWithRetry(ctx context.Context, repo store.Repository, cutoff time.Time) (int64, error) {
	var err error
	for i := 0; i < maxRetries; i++ {
		var deleted int64
		deleted, err = repo.DeleteTurnsBefore(ctx, cutoff)
		if err == nil {
			return deleted, nil
		}
		if !store.IsConflictError(err) || i == maxRetries-1 {
			break
		}

		delay := baseDelay * time.Duration(1<<i) // 50ms, 100ms, 200ms
		slog.Debug("Retention worker: database busy, retrying",
			"attempt", i+1,
			"delay", delay)

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	}
	return 0, fmt.Errorf("delete expired turns after retries: %w", err)
}

// Sweep removes turns older than retention, measured from now.
func Sweep(ctx context.Context, repo store.Repository, retention time.Duration, now time.Time) (int64, error) {
	return deleteWithRetry(ctx, repo, now.Add(-retention))
}

// StartWorker runs a background goroutine that periodically prunes turns
// older than retention. It stops when ctx is cancelled; the returned channel
// is closed once the goroutine has exited.
func StartWorker(ctx context.Context, repo store.Repository, retention, interval time.Duration, onSweep SweepCallback) <-chan struct{} {
	done := make(chan struct{})
	ticker := time.NewTicker(interval)

	go func() {
		defer close(done)
		defer ticker.Stop()
		slog.Info("Retention worker started", "interval", interval, "retention", retention)

		for {
			select {
			case <-ticker.C:
				deleted, err := Sweep(ctx, repo, retention, time.Now())
				if err != nil {
					if ctx.Err() != nil {
						continue
					}
					slog.Error("Retention worker failed to prune transcript", "error", err)
					continue
				}
				if deleted > 0 {
					slog.Info("Retention worker pruned transcript", "deleted", deleted)
					if onSweep != nil {
						onSweep(deleted)
					}
				}
			case <-ctx.Done():
				slog.Info("Retention worker shutting down", "reason", ctx.Err())
				return
			}
		}
	}()

	return done
}
