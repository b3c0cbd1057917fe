package index

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/arbor-dev/arbor/internal/config"
	"github.com/arbor-dev/arbor/internal/extract"
	"github.com/arbor-dev/arbor/internal/graph"
)

// Indexer wires the three incremental-indexing stages (watcher,
// debouncer, re-indexer) by channels and supervises their lifetime
// with an errgroup, matching sync_server.rs's spawn_and_supervise
// pattern without tokio.
type Indexer struct {
	root      string
	cfg       *config.Config
	shared    *graph.Shared
	extractor *extract.Extractor
	onDelta   func(Delta)

	w  *watcher
	db *debouncer
	r  *reindexer

	events chan Event
	cancel context.CancelFunc
	group  *errgroup.Group
}

// New builds an Indexer over an already-populated shared graph. OnDelta,
// if set, is invoked once per committed re-index (including ones that
// touched zero symbols, e.g. a deletion) — the caller wires this to the
// broadcast hub's delta path.
func New(root string, cfg *config.Config, shared *graph.Shared, extractor *extract.Extractor, onDelta func(Delta)) *Indexer {
	return &Indexer{
		root:      root,
		cfg:       cfg,
		shared:    shared,
		extractor: extractor,
		onDelta:   onDelta,
	}
}

// Start launches the watcher, debouncer, and re-indexer goroutines.
// The returned error reports only watcher-setup failures; runtime
// errors from individual files are reported per-Delta, not returned
// here.
func (ix *Indexer) Start(ctx context.Context) error {
	runCtx, cancel := context.WithCancel(ctx)
	ix.cancel = cancel

	ix.events = make(chan Event, 256)
	ix.db = newDebouncer(ix.cfg.Indexer.DebounceMs, ix.events)
	ix.r = newReindexer(ix.shared, ix.extractor, ix.cfg, ix.onDelta)

	w, err := newWatcher(ix.root, ix.cfg, ix.extractor, ix.db)
	if err != nil {
		cancel()
		return err
	}
	ix.w = w
	if err := w.addWatches(); err != nil {
		cancel()
		return err
	}

	g, gctx := errgroup.WithContext(runCtx)
	ix.group = g

	g.Go(func() error {
		ix.w.run(gctx)
		return nil
	})
	g.Go(func() error {
		ix.db.run(gctx)
		return nil
	})
	g.Go(func() error {
		for {
			select {
			case <-gctx.Done():
				return nil
			case ev := <-ix.events:
				ix.r.apply(ev)
			}
		}
	})

	return nil
}

// Stop cancels every stage and waits for them to exit.
func (ix *Indexer) Stop() error {
	if ix.cancel == nil {
		return nil
	}
	ix.cancel()
	return ix.group.Wait()
}
