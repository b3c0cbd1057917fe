package index

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arbor-dev/arbor/internal/config"
	"github.com/arbor-dev/arbor/internal/extract"
)

func fsnotifyWriteEvent(path string) fsnotify.Event {
	return fsnotify.Event{Name: path, Op: fsnotify.Write}
}

func TestAddWatchesSkipsIgnoredDirectories(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "node_modules", "pkg"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src"), 0o755))

	cfg := config.Default(root, false)
	extractor := extract.New()

	out := make(chan Event, 1)
	db := newDebouncer(cfg.Indexer.DebounceMs, out)
	w, err := newWatcher(root, cfg, extractor, db)
	require.NoError(t, err)
	defer w.fsw.Close()

	require.NoError(t, w.addWatches())

	watched := w.fsw.WatchList()
	assert.Contains(t, watched, root)
	assert.Contains(t, watched, filepath.Join(root, "src"))
	assert.NotContains(t, watched, filepath.Join(root, "node_modules", "pkg"))
}

func TestWatcherHandleFiltersUnsupportedExtensions(t *testing.T) {
	root := t.TempDir()
	cfg := config.Default(root, false)
	extractor := extract.New()

	out := make(chan Event, 1)
	db := newDebouncer(cfg.Indexer.DebounceMs, out)
	w, err := newWatcher(root, cfg, extractor, db)
	require.NoError(t, err)
	defer w.fsw.Close()

	readmePath := filepath.Join(root, "README.md")
	require.NoError(t, os.WriteFile(readmePath, []byte("hi"), 0o644))

	w.handle(fsnotifyWriteEvent(readmePath))

	db.mu.Lock()
	_, tracked := db.lastSeen[readmePath]
	db.mu.Unlock()
	assert.False(t, tracked)
}
