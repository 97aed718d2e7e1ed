package extract

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/leapstack-labs/ddldoc/internal/source"
)

// DefaultDebounce is how long the watcher waits for writes to settle.
const DefaultDebounce = 500 * time.Millisecond

// Watcher re-runs extraction for SQL files that change under the runner's
// input path. Files are processed on the watch loop itself, one at a time.
type Watcher struct {
	runner   *Runner
	debounce time.Duration
	logger   *slog.Logger
	ready    chan struct{}
}

// NewWatcher creates a Watcher around runner.
func NewWatcher(runner *Runner, debounce time.Duration, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		runner:   runner,
		debounce: debounce,
		logger:   logger,
		ready:    make(chan struct{}),
	}
}

// Ready is closed once the watch is registered.
func (w *Watcher) Ready() <-chan struct{} {
	return w.ready
}

// Watch blocks until ctx is cancelled. Processing errors are logged and do
// not stop the loop.
func (w *Watcher) Watch(ctx context.Context) error {
	input := w.runner.Input()
	info, err := os.Stat(input)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", input, err)
	}

	dir := input
	only := ""
	if !info.IsDir() {
		dir = filepath.Dir(input)
		only = filepath.Clean(input)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	close(w.ready)

	w.logger.Info("watching for changes", "dir", dir, "debounce", w.debounce.String())

	pending := make(map[string]struct{})
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if !source.IsSQLFile(event.Name) {
				continue
			}
			if only != "" && filepath.Clean(event.Name) != only {
				continue
			}

			pending[event.Name] = struct{}{}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			w.flush(pending)
			pending = make(map[string]struct{})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watcher error", "error", err)
		}
	}
}

func (w *Watcher) flush(pending map[string]struct{}) {
	paths := make([]string, 0, len(pending))
	for p := range pending {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, p := range paths {
		w.logger.Debug("change detected", "path", p)
		if _, err := w.runner.ProcessOne(p); err != nil {
			w.logger.Error("re-extraction failed", "path", p, "error", err)
		}
	}
}
