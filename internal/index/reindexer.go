package index

import (
	"os"

	"github.com/arbor-dev/arbor/internal/arborerrors"
	"github.com/arbor-dev/arbor/internal/config"
	"github.com/arbor-dev/arbor/internal/debug"
	"github.com/arbor-dev/arbor/internal/extract"
	"github.com/arbor-dev/arbor/internal/graph"
)

// reindexer applies one promoted event to the shared graph: remove the
// file's stale subgraph, then, unless the event is a deletion, extract
// and re-add it, resolving the new nodes' references against the
// existing FQN table with bare-name fallback scoped to the new nodes.
type reindexer struct {
	shared    *graph.Shared
	extractor *extract.Extractor
	cfg       *config.Config
	onDelta   func(Delta)
}

func newReindexer(shared *graph.Shared, extractor *extract.Extractor, cfg *config.Config, onDelta func(Delta)) *reindexer {
	return &reindexer{shared: shared, extractor: extractor, cfg: cfg, onDelta: onDelta}
}

// apply runs one promoted event under the graph's write lock, so
// readers never observe a file half-removed or half-added.
func (r *reindexer) apply(ev Event) {
	delta := Delta{Path: ev.Path, Kind: ev.Kind}

	r.shared.Write(func(g *graph.Graph) {
		g.RemoveFile(ev.Path)

		if ev.Kind == Deleted {
			return
		}

		source, err := os.ReadFile(ev.Path)
		if err != nil {
			delta.Err = arborerrors.NewResourceError("file", "read", err)
			debug.LogIndexing("reindex: read %s: %v\n", ev.Path, err)
			return
		}
		if r.cfg.Indexer.MaxFileSizeBytes > 0 && int64(len(source)) > r.cfg.Indexer.MaxFileSizeBytes {
			debug.LogIndexing("reindex: %s exceeds max file size, skipping\n", ev.Path)
			return
		}

		symbols, err := r.extractor.ExtractFile(ev.Path, source)
		if err != nil {
			delta.Err = arborerrors.NewParseError(ev.Path, "", err)
			debug.LogIndexing("reindex: parse %s: %v\n", ev.Path, err)
			return
		}

		builder := graph.NewBuilderWithGraph(g)
		handles, err := builder.AddNodes(symbols)
		if err != nil {
			delta.Err = arborerrors.NewResourceError("graph", "add_nodes", err)
			debug.LogIndexing("reindex: add nodes for %s: %v\n", ev.Path, err)
			return
		}

		bareNameFallback := make(map[string]graph.NodeHandle, len(handles))
		for i, h := range handles {
			bareNameFallback[symbols[i].Name] = h
		}
		builder.ResolveEdgesSubset(handles, bareNameFallback)

		delta.NodeCount = len(handles)
	})

	delta.EdgeCount = r.shared.Snapshot().EdgeCount

	if r.onDelta != nil {
		r.onDelta(delta)
	}
}
