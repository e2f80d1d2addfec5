// Package filewatcher reports changes to the lecture document so a running
// quiz can pick up edits.
package filewatcher

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"lecture-quiz/internal/logger"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce collapses the burst of events one editor save produces.
const DefaultDebounce = 200 * time.Millisecond

// FSNotifyWatcher watches a single file through its parent directory, so
// editors that save by rename are still seen.
type FSNotifyWatcher struct {
	watcher  *fsnotify.Watcher
	debounce time.Duration
}

// NewFSNotifyWatcher creates a watcher. A non-positive debounce disables
// coalescing.
func NewFSNotifyWatcher(debounce time.Duration) (*FSNotifyWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	return &FSNotifyWatcher{watcher: w, debounce: debounce}, nil
}

// Watch emits the cleaned path of file each time it is written or recreated.
// The channel closes when ctx is done or the watcher is stopped.
func (w *FSNotifyWatcher) Watch(ctx context.Context, file string) (<-chan string, error) {
	target, err := filepath.Abs(file)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", file, err)
	}
	if err := w.watcher.Add(filepath.Dir(target)); err != nil {
		return nil, fmt.Errorf("failed to watch %s: %w", file, err)
	}

	changes := make(chan string, 1)

	go func() {
		defer close(changes)

		var timer *time.Timer
		var fire <-chan time.Time
		defer func() {
			if timer != nil {
				timer.Stop()
			}
		}()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-w.watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				if w.debounce <= 0 {
					if !send(ctx, changes, target) {
						return
					}
					continue
				}
				if timer == nil {
					timer = time.NewTimer(w.debounce)
				} else {
					timer.Reset(w.debounce)
				}
				fire = timer.C
			case <-fire:
				fire = nil
				if !send(ctx, changes, target) {
					return
				}
			case err, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
				logger.Get().Warn("file watcher error", zap.String("file", target), zap.Error(err))
			}
		}
	}()

	return changes, nil
}

// Stop releases the underlying watcher.
func (w *FSNotifyWatcher) Stop() error {
	return w.watcher.Close()
}

func send(ctx context.Context, ch chan<- string, path string) bool {
	select {
	case ch <- path:
		return true
	case <-ctx.Done():
		return false
	}
}
