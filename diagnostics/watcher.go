package diagnostics

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const defaultDebounce = 250 * time.Millisecond

// Watcher reloads a snapshot file whenever it changes and calls onDecrease
// each time the error total drops.
type Watcher struct {
	path       string
	debounce   time.Duration
	observer   *Observer
	onDecrease func(context.Context)
}

type WatcherOption func(*Watcher)

// WithDebounce sets how long the file must be quiet before it is reloaded.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		w.debounce = d
	}
}

func NewWatcher(path string, onDecrease func(context.Context), opts ...WatcherOption) (*Watcher, error) {
	if path == "" {
		return nil, fmt.Errorf("no diagnostics path provided")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve diagnostics path: %w", err)
	}

	w := &Watcher{
		path:       abs,
		debounce:   defaultDebounce,
		observer:   &Observer{},
		onDecrease: onDecrease,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

func (w *Watcher) Path() string {
	return w.path
}

// Errors returns the error total from the last snapshot read.
func (w *Watcher) Errors() int {
	return w.observer.Last()
}

// Run blocks until ctx is cancelled. The parent directory is watched rather
// than the file so snapshots replaced by rename are still seen.
func (w *Watcher) Run(ctx context.Context) error {
	dir := filepath.Dir(w.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create diagnostics directory: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	slog.Info("watching diagnostics", "path", w.path)

	// establish the baseline
	w.check(ctx)

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Rename) {
				continue
			}
			timer.Reset(w.debounce)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			slog.Warn("diagnostics watcher error", "error", err)

		case <-timer.C:
			w.check(ctx)
		}
	}
}

func (w *Watcher) check(ctx context.Context) {
	report, err := Load(w.path)
	if err != nil {
		slog.Debug("unable to load diagnostics", "path", w.path, "error", err)
		return
	}

	before := w.observer.Last()
	if !w.observer.Observe(report) {
		return
	}
	slog.Info("error count decreased", "from", before, "to", report.Errors())
	if w.onDecrease != nil {
		w.onDecrease(ctx)
	}
}
