package index

import (
	"context"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/arbor-dev/arbor/internal/config"
	"github.com/arbor-dev/arbor/internal/debug"
	"github.com/arbor-dev/arbor/internal/extract"
)

// watcher subscribes to OS-level filesystem notifications under root,
// recursively, filters to extensions the extractor supports and paths
// not matched by the configured ignore patterns, and feeds every raw
// event into a debouncer.
type watcher struct {
	fsw       *fsnotify.Watcher
	root      string
	cfg       *config.Config
	extractor *extract.Extractor
	db        *debouncer
}

func newWatcher(root string, cfg *config.Config, extractor *extract.Extractor, db *debouncer) (*watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &watcher{fsw: fsw, root: root, cfg: cfg, extractor: extractor, db: db}, nil
}

// addWatches walks root and registers a watch on every directory not
// excluded by the configured ignore patterns.
func (w *watcher) addWatches() error {
	return filepath.Walk(w.root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if !info.IsDir() {
			return nil
		}
		rel, relErr := filepath.Rel(w.root, path)
		if relErr == nil && rel != "." && config.MatchIgnore(w.cfg.Ignore, rel) {
			return filepath.SkipDir
		}
		if addErr := w.fsw.Add(path); addErr != nil {
			debug.LogIndexing("watch add failed for %s: %v\n", path, addErr)
		}
		return nil
	})
}

// run pumps fsnotify events into the debouncer until ctx is cancelled.
// Newly created directories are watched on the fly so the recursive
// subscription stays complete as the tree grows.
func (w *watcher) run(ctx context.Context) {
	defer w.fsw.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handle(ev)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			debug.LogIndexing("watch error: %v\n", err)
		}
	}
}

func (w *watcher) handle(ev fsnotify.Event) {
	if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
		if ev.Op&(fsnotify.Create) != 0 {
			rel, relErr := filepath.Rel(w.root, ev.Name)
			if relErr == nil && config.MatchIgnore(w.cfg.Ignore, rel) {
				return
			}
			if err := w.fsw.Add(ev.Name); err != nil {
				debug.LogIndexing("watch add failed for %s: %v\n", ev.Name, err)
			}
		}
		return
	}

	ext := filepath.Ext(ev.Name)
	if !w.extractor.Supports(ext) {
		return
	}
	rel, relErr := filepath.Rel(w.root, ev.Name)
	if relErr == nil && config.MatchIgnore(w.cfg.Ignore, rel) {
		return
	}
	if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}
	w.db.record(ev.Name)
}
