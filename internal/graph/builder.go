package graph

// Builder performs the two-phase insertion described by the graph
// builder: add every parsed symbol first, then resolve every symbol's
// unresolved references into Calls edges, grounded on the original
// GraphBuilder's add_nodes/resolve_edges split.
type Builder struct {
	g *Graph
	// nameToHandle is the bare-name fallback map; last writer for a
	// given name wins the map slot, but FindByName on the underlying
	// graph still returns every homonym — only the builder's own
	// fallback resolution uses this single-valued map, matching the
	// original's legacy name_to_id behavior.
	nameToHandle map[string]NodeHandle
}

// NewBuilder creates a builder wrapping a fresh graph.
func NewBuilder() *Builder {
	return &Builder{g: New(), nameToHandle: make(map[string]NodeHandle)}
}

// NewBuilderWithGraph wraps an existing graph (used by the incremental
// indexer, which must resolve new nodes against the FQN table already
// populated by previously-indexed files).
func NewBuilderWithGraph(g *Graph) *Builder {
	b := &Builder{g: g, nameToHandle: make(map[string]NodeHandle)}
	for _, h := range g.Handles() {
		s := g.nodes[h]
		b.nameToHandle[s.Name] = h
		if s.QualifiedName != "" {
			b.nameToHandle[s.QualifiedName] = h
		}
	}
	return b
}

// Graph returns the underlying graph being built.
func (b *Builder) Graph() *Graph { return b.g }

// AddNodes runs phase 1: insert every symbol and populate the FQN
// table and bare-name fallback map. Returns the handles assigned, in
// the same order as the input, to let the caller correlate relations
// it tracks separately (e.g. the incremental indexer's from_id map).
func (b *Builder) AddNodes(symbols []Symbol) ([]NodeHandle, error) {
	handles := make([]NodeHandle, 0, len(symbols))
	for _, s := range symbols {
		h, err := b.g.AddNode(s)
		if err != nil {
			return handles, err
		}
		handles = append(handles, h)
		b.nameToHandle[s.Name] = h
		if s.QualifiedName != "" {
			b.nameToHandle[s.QualifiedName] = h
		}
	}
	return handles, nil
}

// ResolveEdges runs phase 2: for every node's references, resolve by
// FQN first, then by bare name, else drop silently, and add all
// resolved edges as Calls in one sweep.
func (b *Builder) ResolveEdges() {
	type pending struct{ from, to NodeHandle }
	var toAdd []pending

	for _, from := range b.g.Handles() {
		s, ok := b.g.Get(from)
		if !ok {
			continue
		}
		for _, ref := range s.References {
			if to, found := b.g.ResolveFQN(ref); found {
				if to != from {
					toAdd = append(toAdd, pending{from, to})
				}
				continue
			}
			if to, found := b.nameToHandle[ref]; found {
				if to != from {
					toAdd = append(toAdd, pending{from, to})
				}
				continue
			}
			// Unresolved: dropped silently per the two-pass contract.
		}
	}

	for _, p := range toAdd {
		b.g.AddEdge(p.from, p.to, NewEdge(EdgeCalls))
	}
}

// ResolveEdgesSubset runs phase 2 restricted to the references of only
// the given handles, used by the incremental indexer when re-indexing
// a single file: the FQN table already carries every previously-seen
// symbol, so only the new file's references need resolving, and the
// bare-name fallback is likewise scoped to the new nodes per spec
// §4.6 ("bare-name fallback only against the new nodes' names").
func (b *Builder) ResolveEdgesSubset(handles []NodeHandle, bareNameFallback map[string]NodeHandle) {
	type pending struct{ from, to NodeHandle }
	var toAdd []pending

	for _, from := range handles {
		s, ok := b.g.Get(from)
		if !ok {
			continue
		}
		for _, ref := range s.References {
			if to, found := b.g.ResolveFQN(ref); found {
				if to != from {
					toAdd = append(toAdd, pending{from, to})
				}
				continue
			}
			if to, found := bareNameFallback[ref]; found {
				if to != from {
					toAdd = append(toAdd, pending{from, to})
				}
			}
		}
	}

	for _, p := range toAdd {
		b.g.AddEdge(p.from, p.to, NewEdge(EdgeCalls))
	}
}

// Build runs ResolveEdges and returns the finished graph.
func (b *Builder) Build() *Graph {
	b.ResolveEdges()
	return b.g
}
