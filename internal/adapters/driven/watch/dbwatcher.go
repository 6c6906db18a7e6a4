// Package watch observes the database file for external modification.
//
// A cloud sync client may replace the database or its journal sidecars
// underneath the application. The watcher reports those writes so callers
// can re-verify integrity and refresh stale views.
package watch

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/inkwell-md/inkwell/internal/logger"
)

// DBWatcher watches the directory containing the database file and reports
// changes to the file or its journal sidecars.
type DBWatcher struct {
	watcher *fsnotify.Watcher
	changes chan string
}

// NewDBWatcher starts watching the database at dbPath. The parent directory
// is watched rather than the file itself; sync clients replace files by
// rename, which silently detaches a file-level watch.
func NewDBWatcher(dbPath string) (*DBWatcher, error) {
	abs, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, fmt.Errorf("resolving database path: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watching database directory: %w", err)
	}

	w := &DBWatcher{
		watcher: fsw,
		changes: make(chan string, 8),
	}
	go w.loop(abs)
	return w, nil
}

// Changes delivers the path of each modified database-related file. The
// channel is closed when the watcher is closed. Events are dropped, not
// queued, when the receiver lags; one pending notification is enough to
// trigger a re-check.
func (w *DBWatcher) Changes() <-chan string {
	return w.changes
}

// Close stops the watcher and closes the changes channel.
func (w *DBWatcher) Close() error {
	return w.watcher.Close()
}

// loop filters raw directory events down to the database file family.
func (w *DBWatcher) loop(dbPath string) {
	defer close(w.changes)

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !isDatabaseFile(event.Name, dbPath) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			logger.Debug("database file changed externally: %s (%s)", event.Name, event.Op)
			select {
			case w.changes <- event.Name:
			default:
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("database watcher error: %v", err)
		}
	}
}

// isDatabaseFile reports whether name is the database file or one of its
// journal sidecars.
func isDatabaseFile(name, dbPath string) bool {
	switch name {
	case dbPath, dbPath + "-wal", dbPath + "-shm", dbPath + "-journal":
		return true
	}
	return false
}
