// Package watcher polls one source file for changes and re-parses it.
package watcher

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/Simar-malhotra09/pars/internal/engine"
)

const (
	baseInterval = 1 * time.Second
	maxInterval  = 30 * time.Second
)

type fileSnapshot struct {
	modTime time.Time
	size    int64
}

// OnResult is called with each fresh analysis, including the initial one.
type OnResult func(res *engine.Result)

// Watcher polls a file with mtime+size snapshots and re-parses on change.
// The interval doubles while the file is quiet and resets when it changes.
type Watcher struct {
	path     string
	cfg      engine.Config
	onResult OnResult

	// Interval overrides the base poll interval; zero means baseInterval.
	Interval time.Duration
}

// New creates a Watcher for one file. onResult is called after every parse.
func New(path string, cfg engine.Config, onResult OnResult) *Watcher {
	return &Watcher{path: path, cfg: cfg, onResult: onResult}
}

func (w *Watcher) base() time.Duration {
	if w.Interval > 0 {
		return w.Interval
	}
	return baseInterval
}

// Run parses the file once immediately, then blocks until ctx is
// cancelled, re-parsing whenever the snapshot changes. Parse failures are
// logged and retried on the next change rather than stopping the watch.
func (w *Watcher) Run(ctx context.Context) error {
	snap, err := capture(w.path)
	if err != nil {
		return err
	}
	w.parse(ctx)

	interval := w.base()
	timer := time.NewTimer(interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}

		next, err := capture(w.path)
		switch {
		case err != nil:
			// File may be mid-rewrite or briefly gone; back off.
			slog.Warn("watcher.stat", "path", w.path, "err", err)
			interval = backoff(interval)
		case next == snap:
			interval = backoff(interval)
		default:
			slog.Info("watcher.changed", "path", w.path, "size", next.size)
			snap = next
			w.parse(ctx)
			interval = w.base()
		}
		timer.Reset(interval)
	}
}

func (w *Watcher) parse(ctx context.Context) {
	res, err := engine.ParseFile(ctx, w.path, w.cfg)
	if err != nil {
		slog.Warn("watcher.parse", "path", w.path, "err", err)
		return
	}
	if w.onResult != nil {
		w.onResult(res)
	}
}

func capture(path string) (fileSnapshot, error) {
	info, err := os.Stat(path)
	if err != nil {
		return fileSnapshot{}, err
	}
	return fileSnapshot{modTime: info.ModTime(), size: info.Size()}, nil
}

func backoff(interval time.Duration) time.Duration {
	interval *= 2
	if interval > maxInterval {
		return maxInterval
	}
	return interval
}
