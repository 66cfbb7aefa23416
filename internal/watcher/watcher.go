// Package watcher reloads the template registry when packs on disk change.
package watcher

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"dsforge/internal/log"
)

// Watcher watches a template directory tree for changes
type Watcher struct {
	dir      string
	onChange func()
	debounce time.Duration
	logger   zerolog.Logger
}

// New creates a watcher over a template directory. onChange fires once per
// debounced burst of filesystem events anywhere under the directory.
func New(dir string, onChange func()) *Watcher {
	return &Watcher{
		dir:      dir,
		onChange: onChange,
		debounce: 500 * time.Millisecond,
		logger:   log.WithComponent("watcher"),
	}
}

// WithDebounce sets the debounce duration
func (w *Watcher) WithDebounce(d time.Duration) *Watcher {
	w.debounce = d
	return w
}

// Watch starts watching the directory tree for changes.
// It blocks until the context is cancelled or an error occurs.
func (w *Watcher) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Template packs are directory trees, so every subdirectory needs its
	// own watch. Directories created later are added as they appear.
	if err := addTree(watcher, w.dir); err != nil {
		return err
	}

	w.logger.Info().Str("dir", w.dir).Msg("watching templates")

	var debounceTimer *time.Timer

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := addTree(watcher, event.Name); err != nil {
						w.logger.Warn().Err(err).Str("dir", event.Name).Msg("watch new directory")
					}
				}
			}

			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				if debounceTimer != nil {
					debounceTimer.Stop()
				}
				name := event.Name
				debounceTimer = time.AfterFunc(w.debounce, func() {
					w.logger.Info().Str("path", name).Msg("templates changed")
					w.onChange()
				})
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error().Err(err).Msg("watcher error")

		case <-ctx.Done():
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return ctx.Err()
		}
	}
}

// addTree registers root and all directories below it
func addTree(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		return watcher.Add(path)
	})
}
