package graph

import "sync"

// Shared is the single owning handle to a live graph, protected by a
// many-reader/one-writer lock: the re-indexer is the only writer, every
// query path and the broadcast surface are readers.
type Shared struct {
	mu sync.RWMutex
	g  *Graph
}

// NewShared wraps g (or a fresh empty graph if g is nil) in a Shared
// handle.
func NewShared(g *Graph) *Shared {
	if g == nil {
		g = New()
	}
	return &Shared{g: g}
}

// Read runs fn with a read lock held, for queries that only inspect the
// graph (search, impact, context, ranking reads).
func (s *Shared) Read(fn func(g *Graph)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.g)
}

// Write runs fn with the write lock held, for the re-indexer's
// remove-then-rebuild sequence and centrality refresh.
func (s *Shared) Write(fn func(g *Graph)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.g)
}

// Snapshot returns the current Stats under a read lock, for status
// reporting without requiring the caller to take the lock itself.
func (s *Shared) Snapshot() Stats {
	var stats Stats
	s.Read(func(g *Graph) { stats = g.Stats() })
	return stats
}
