// Package watch re-runs a callback when .rs files under a directory change.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period after the last change before a run.
const DefaultDebounce = 150 * time.Millisecond

// Options configures Watch.
type Options struct {
	Debounce time.Duration
	// Exclude holds path.Match patterns tested against directory and file
	// base names.
	Exclude []string
	Logger  *slog.Logger
	// Ready is called once every directory is registered.
	Ready func()
}

// RunFunc handles one batch of changed files, sorted and deduplicated.
type RunFunc func(ctx context.Context, changed []string) error

// Watch blocks until ctx is done, calling run after each burst of writes to
// .rs files under root. Errors from run are logged and do not stop the loop.
func Watch(ctx context.Context, root string, opts Options, run RunFunc) error {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := addTree(watcher, root, opts.Exclude); err != nil {
		return fmt.Errorf("watch %s: %w", root, err)
	}
	if opts.Ready != nil {
		opts.Ready()
	}

	pending := make(map[string]struct{})
	timer := time.NewTimer(debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := addTree(watcher, event.Name, opts.Exclude); err != nil {
						log.Warn("watch new directory", "dir", event.Name, "err", err)
					}
					continue
				}
			}
			if filepath.Ext(event.Name) != ".rs" || excluded(filepath.Base(event.Name), opts.Exclude) {
				continue
			}
			log.Debug("change", "file", event.Name, "op", event.Op.String())
			pending[event.Name] = struct{}{}
			timer.Reset(debounce)
		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			changed := make([]string, 0, len(pending))
			for name := range pending {
				changed = append(changed, name)
			}
			slices.Sort(changed)
			clear(pending)
			if err := run(ctx, changed); err != nil {
				log.Error("rerun failed", "err", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("watcher error", "err", err)
		}
	}
}

// addTree registers dir and its subdirectories, skipping hidden and
// excluded ones.
func addTree(watcher *fsnotify.Watcher, dir string, exclude []string) error {
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		name := d.Name()
		if p != dir && (strings.HasPrefix(name, ".") || excluded(name, exclude)) {
			return filepath.SkipDir
		}
		return watcher.Add(p)
	})
}

func excluded(name string, patterns []string) bool {
	for _, pattern := range patterns {
		if ok, _ := path.Match(pattern, name); ok {
			return true
		}
	}
	return false
}
