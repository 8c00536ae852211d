package catalog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/yildizm/storefront/internal/logger"
)

// Watch signals on the returned channel whenever the fixture at path is
// written, created or renamed into place. The directory is watched rather
// than the file so editors that replace files atomically are still seen.
// Signals are coalesced: a pending signal is not duplicated. The channel is
// closed when ctx is done or the watcher fails.
func Watch(ctx context.Context, path string, log *logger.Logger) (<-chan struct{}, error) {
	if log == nil {
		log = logger.Nop()
	}
	log = log.WithComponent("catalog-watch")

	cleanPath := filepath.Clean(path)
	info, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("cannot access fixture: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("cannot watch directory, must be a file")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(cleanPath)); err != nil {
		cleanupWatcher(watcher, log)
		return nil, fmt.Errorf("failed to watch fixture directory: %w", err)
	}

	changes := make(chan struct{}, 1)

	go func() {
		defer close(changes)
		defer cleanupWatcher(watcher, log)

		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !isFixtureChange(event, cleanPath) {
					continue
				}
				log.Debug("fixture changed: %s", event.Op)
				select {
				case changes <- struct{}{}:
				default:
				}

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Warn("watcher error: %v", err)
			}
		}
	}()

	return changes, nil
}

// isFixtureChange filters directory events down to content changes of path
func isFixtureChange(event fsnotify.Event, path string) bool {
	if filepath.Clean(event.Name) != path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}

// cleanupWatcher safely closes watcher with error logging
func cleanupWatcher(watcher *fsnotify.Watcher, log *logger.Logger) {
	if err := watcher.Close(); err != nil {
		log.Debug("failed to close watcher: %v", err)
	}
}
