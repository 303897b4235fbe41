// Package watch re-runs a callback whenever a project file changes on disk.
package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/alexanderramin/effortplan/internal/estimate"
)

// DefaultDebounce collapses the burst of events most editors emit per save.
const DefaultDebounce = 100 * time.Millisecond

// ChangeFunc receives the new file contents. A returned error is logged and
// the same contents are offered again on the next change event.
type ChangeFunc func(ctx context.Context, data []byte) error

type Watcher struct {
	path     string
	debounce time.Duration
	onChange ChangeFunc
	logger   *slog.Logger
	seen     estimate.Memo[struct{}]
}

type Option func(*Watcher)

func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

func WithLogger(logger *slog.Logger) Option {
	return func(w *Watcher) { w.logger = logger }
}

func New(path string, onChange ChangeFunc, opts ...Option) *Watcher {
	w := &Watcher{
		path:     filepath.Clean(path),
		debounce: DefaultDebounce,
		onChange: onChange,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run delivers the current contents once, then every distinct change, until
// ctx is cancelled. The parent directory is watched so that editors which
// replace the file by rename are followed.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(w.path), err)
	}

	w.fire(ctx)

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			timer.Reset(w.debounce)
		case <-timer.C:
			w.fire(ctx)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "path", w.path, "error", err)
		}
	}
}

func (w *Watcher) fire(ctx context.Context) {
	data, err := os.ReadFile(w.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			w.logger.Warn("reading watched file", "path", w.path, "error", err)
		}
		return
	}
	content := string(data)
	if !w.seen.Changed(content) {
		w.logger.Debug("content unchanged", "path", w.path)
		return
	}
	_, err = w.seen.Get(content, func() (struct{}, error) {
		return struct{}{}, w.onChange(ctx, data)
	})
	if err != nil {
		w.logger.Warn("change handler failed", "path", w.path, "error", err)
	}
}
