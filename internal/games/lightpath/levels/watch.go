package levels

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits for more changes before
// reporting a batch.
const DefaultDebounce = 150 * time.Millisecond

// Watcher reports changes to a level pack directory or a single map file.
type Watcher struct {
	target   string // Absolute path being watched
	file     bool   // Target is a single file
	debounce time.Duration
	fsw      *fsnotify.Watcher
}

// NewWatcher creates a watcher for path. For a single file the parent
// directory is watched, so editors that replace the file are still seen.
func NewWatcher(path string, debounce time.Duration) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("watching %s: %w", path, err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}

	w := &Watcher{target: abs, file: !info.IsDir(), debounce: debounce, fsw: fsw}
	if w.file {
		err = fsw.Add(filepath.Dir(abs))
	} else {
		err = w.addRecursive(abs)
	}
	if err != nil {
		fsw.Close() //nolint:errcheck
		return nil, fmt.Errorf("watching %s: %w", path, err)
	}
	return w, nil
}

func (w *Watcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // Ignore errors, continue walking
		}
		if !d.IsDir() {
			return nil
		}
		return w.fsw.Add(p)
	})
}

// relevant reports whether a change to name should trigger a reload.
func (w *Watcher) relevant(name string) bool {
	if w.file {
		return filepath.Clean(name) == w.target
	}
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".txt" || supported(name)
}

// Run delivers debounced change notifications to onChange until ctx is
// cancelled or the watcher is closed. onErr, when set, receives watcher errors.
func (w *Watcher) Run(ctx context.Context, onChange func(), onErr func(error)) {
	var timerC <-chan time.Time
	var timer *time.Timer

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.file && event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					w.fsw.Add(event.Name) //nolint:errcheck
				}
			}
			if !w.relevant(event.Name) {
				continue
			}
			// Reset or start debounce timer
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			timerC = timer.C

		case <-timerC:
			timer = nil
			timerC = nil
			onChange()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			if onErr != nil {
				onErr(err)
			}
		}
	}
}

// Close stops the underlying watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}
