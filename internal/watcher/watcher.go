// Package watcher turns filesystem events on corpus directories into
// debounced reindex triggers. Bursts of writes (editor saves, rsync
// runs) collapse into a single trigger after a quiet period.
package watcher

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/archivelabs/ragdex/internal/core/domain"
	"github.com/archivelabs/ragdex/internal/logger"
)

// TriggerFunc is called after the debounce window closes with no
// further events.
type TriggerFunc func()

// Watcher watches directories recursively and fires a trigger after
// events settle.
type Watcher struct {
	fsw      *fsnotify.Watcher
	debounce time.Duration
	trigger  TriggerFunc
}

// New creates a watcher. debounce below 1ms falls back to the
// default.
func New(debounce time.Duration, trigger TriggerFunc) (*Watcher, error) {
	if trigger == nil {
		return nil, fmt.Errorf("%w: trigger is required", domain.ErrInvalidInput)
	}
	if debounce < time.Millisecond {
		debounce = domain.DefaultWatchDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	return &Watcher{
		fsw:      fsw,
		debounce: debounce,
		trigger:  trigger,
	}, nil
}

// Add watches root and, when it is a directory, every directory
// beneath it.
func (w *Watcher) Add(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("%w: %s", domain.ErrMissingFile, root)
	}
	if !info.IsDir() {
		return w.fsw.Add(root)
	}

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logger.Warn("Skipping unreadable path %s: %v", path, err)
			return nil
		}
		if d.IsDir() {
			if err := w.fsw.Add(path); err != nil {
				return fmt.Errorf("watching %s: %w", path, err)
			}
		}
		return nil
	})
}

// Run processes events until the context is cancelled. It blocks.
func (w *Watcher) Run(ctx context.Context) error {
	// The timer starts stopped; the first event arms it.
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if event.Op == fsnotify.Chmod {
				continue
			}

			// New directories join the watch set so files created
			// inside them are seen.
			if event.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.fsw.Add(event.Name); err != nil {
						logger.Warn("Cannot watch new directory %s: %v", event.Name, err)
					}
				}
			}

			logger.Debug("Filesystem event: %s %s", event.Op, event.Name)
			timer.Reset(w.debounce)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error: %v", err)

		case <-timer.C:
			w.trigger()
		}
	}
}

// Close stops the underlying filesystem watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}
