package graph

import (
	"fmt"
	"sort"
)

// NodeHandle identifies a node within one Graph instance. Handles are
// stable for the lifetime of the node (never reused while live) but
// are only meaningful within the Graph that issued them.
type NodeHandle uint64

type edgeRecord struct {
	to   NodeHandle
	edge Edge
}

type edgeRecordIn struct {
	from NodeHandle
	edge Edge
}

// Graph is the directed multigraph of Symbols and Edges described by
// the data model: a primary node store plus id/name/file/FQN indexes
// and an n-gram substring search index, all kept coherent by every
// mutating method. Graph itself holds no lock — callers (the Shared
// handle in this package) serialize writers and readers.
type Graph struct {
	nodes map[NodeHandle]*Symbol
	next  NodeHandle

	idIndex    map[string]NodeHandle
	nameIndex  map[string][]NodeHandle
	fileIndex  map[string][]NodeHandle
	fqnIndex   map[string]NodeHandle
	centrality map[NodeHandle]float64
	search     *searchIndex

	outgoing map[NodeHandle][]edgeRecord
	incoming map[NodeHandle][]edgeRecordIn
	edgeCnt  int
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		nodes:      make(map[NodeHandle]*Symbol),
		idIndex:    make(map[string]NodeHandle),
		nameIndex:  make(map[string][]NodeHandle),
		fileIndex:  make(map[string][]NodeHandle),
		fqnIndex:   make(map[string]NodeHandle),
		centrality: make(map[NodeHandle]float64),
		search:     newSearchIndex(),
		outgoing:   make(map[NodeHandle][]edgeRecord),
		incoming:   make(map[NodeHandle][]edgeRecordIn),
	}
}

// AddNode inserts a symbol into the primary store and every index.
// It returns an error if the symbol's id already exists — a duplicate
// id is treated as an extractor bug, never silently overwritten.
func (g *Graph) AddNode(s Symbol) (NodeHandle, error) {
	if _, exists := g.idIndex[s.ID]; exists {
		return 0, fmt.Errorf("graph: duplicate node id %q", s.ID)
	}

	h := g.next
	g.next++

	stored := s
	g.nodes[h] = &stored

	g.idIndex[s.ID] = h
	g.nameIndex[s.Name] = append(g.nameIndex[s.Name], h)
	g.fileIndex[s.File] = append(g.fileIndex[s.File], h)
	if s.QualifiedName != "" {
		g.fqnIndex[s.QualifiedName] = h
	}
	g.search.insert(s.Name, h)

	return h, nil
}

// AddEdge adds an edge from one handle to another. No deduplication is
// performed; callers must not add the same semantic edge twice.
func (g *Graph) AddEdge(from, to NodeHandle, e Edge) {
	g.outgoing[from] = append(g.outgoing[from], edgeRecord{to: to, edge: e})
	g.incoming[to] = append(g.incoming[to], edgeRecordIn{from: from, edge: e})
	g.edgeCnt++
}

// GetByID returns the node with the given id.
func (g *Graph) GetByID(id string) (*Symbol, bool) {
	h, ok := g.idIndex[id]
	if !ok {
		return nil, false
	}
	return g.nodes[h], true
}

// Get returns the node for a handle.
func (g *Graph) Get(h NodeHandle) (*Symbol, bool) {
	s, ok := g.nodes[h]
	return s, ok
}

// GetIndex returns the handle for a string id.
func (g *Graph) GetIndex(id string) (NodeHandle, bool) {
	h, ok := g.idIndex[id]
	return h, ok
}

// FindByName returns every node with the given (unqualified) name.
func (g *Graph) FindByName(name string) []*Symbol {
	handles := g.nameIndex[name]
	out := make([]*Symbol, 0, len(handles))
	for _, h := range handles {
		if s, ok := g.nodes[h]; ok {
			out = append(out, s)
		}
	}
	return out
}

// FindByFile returns every node defined in the given file.
func (g *Graph) FindByFile(file string) []*Symbol {
	handles := g.fileIndex[file]
	out := make([]*Symbol, 0, len(handles))
	for _, h := range handles {
		if s, ok := g.nodes[h]; ok {
			out = append(out, s)
		}
	}
	return out
}

// ResolveFQN looks up a node handle by fully-qualified name.
func (g *Graph) ResolveFQN(fqn string) (NodeHandle, bool) {
	h, ok := g.fqnIndex[fqn]
	return h, ok
}

// NodeCount returns the number of live nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of live edges.
func (g *Graph) EdgeCount() int { return g.edgeCnt }

// Stats reports graph-wide counters.
func (g *Graph) Stats() Stats {
	return Stats{
		NodeCount: g.NodeCount(),
		EdgeCount: g.EdgeCount(),
		Files:     len(g.fileIndex),
	}
}

// GetCallers returns nodes with a Calls edge into the given handle.
func (g *Graph) GetCallers(h NodeHandle) []*Symbol {
	var out []*Symbol
	for _, rec := range g.incoming[h] {
		if rec.edge.Kind != EdgeCalls {
			continue
		}
		if s, ok := g.nodes[rec.from]; ok {
			out = append(out, s)
		}
	}
	return out
}

// GetCallees returns nodes reached by a Calls edge from the given handle.
func (g *Graph) GetCallees(h NodeHandle) []*Symbol {
	var out []*Symbol
	for _, rec := range g.outgoing[h] {
		if rec.edge.Kind != EdgeCalls {
			continue
		}
		if s, ok := g.nodes[rec.to]; ok {
			out = append(out, s)
		}
	}
	return out
}

// DependentHop pairs a handle reached during get_dependents with its hop depth.
type DependentHop struct {
	Handle NodeHandle
	Depth  int
}

// GetDependents performs a BFS over incoming edges up to maxDepth,
// interpreting 0 as "raw zero" (callers decide what unbounded means;
// AnalyzeImpact does not call this and runs its own BFS instead).
func (g *Graph) GetDependents(h NodeHandle, maxDepth int) []DependentHop {
	var result []DependentHop
	visited := map[NodeHandle]bool{h: true}
	queue := []DependentHop{{Handle: h, Depth: 0}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if cur.Handle != h {
			result = append(result, cur)
		}
		if cur.Depth >= maxDepth {
			continue
		}
		for _, rec := range g.incoming[cur.Handle] {
			if visited[rec.from] {
				continue
			}
			visited[rec.from] = true
			queue = append(queue, DependentHop{Handle: rec.from, Depth: cur.Depth + 1})
		}
	}
	return result
}

// RemoveFile evicts every node defined in the given file, removing all
// index entries and all incident edges so no dangling edge remains.
func (g *Graph) RemoveFile(file string) {
	handles, ok := g.fileIndex[file]
	if !ok {
		return
	}
	delete(g.fileIndex, file)

	dead := make(map[NodeHandle]bool, len(handles))
	for _, h := range handles {
		dead[h] = true
	}

	for _, h := range handles {
		s, ok := g.nodes[h]
		if !ok {
			continue
		}
		delete(g.idIndex, s.ID)
		g.nameIndex[s.Name] = removeHandle(g.nameIndex[s.Name], h)
		if len(g.nameIndex[s.Name]) == 0 {
			delete(g.nameIndex, s.Name)
		}
		if s.QualifiedName != "" {
			if cur, ok := g.fqnIndex[s.QualifiedName]; ok && cur == h {
				delete(g.fqnIndex, s.QualifiedName)
			}
		}
		g.search.remove(s.Name, h)
		delete(g.centrality, h)
		delete(g.nodes, h)
	}

	// Remove incident edges: every edge touching a dead node on either
	// side, scanning the adjacency lists of the removed nodes plus
	// pruning any stale reference left in a live neighbor's list.
	for _, h := range handles {
		for _, rec := range g.outgoing[h] {
			g.incoming[rec.to] = pruneIncoming(g.incoming[rec.to], h)
			g.edgeCnt--
		}
		for _, rec := range g.incoming[h] {
			g.outgoing[rec.from] = pruneOutgoing(g.outgoing[rec.from], h)
			g.edgeCnt--
		}
		delete(g.outgoing, h)
		delete(g.incoming, h)
	}
}

func removeHandle(list []NodeHandle, h NodeHandle) []NodeHandle {
	out := list[:0]
	for _, v := range list {
		if v != h {
			out = append(out, v)
		}
	}
	return out
}

func pruneIncoming(list []edgeRecordIn, dead NodeHandle) []edgeRecordIn {
	out := list[:0]
	for _, rec := range list {
		if rec.from != dead {
			out = append(out, rec)
		}
	}
	return out
}

func pruneOutgoing(list []edgeRecord, dead NodeHandle) []edgeRecord {
	out := list[:0]
	for _, rec := range list {
		if rec.to != dead {
			out = append(out, rec)
		}
	}
	return out
}

// Search delegates to the n-gram substring index.
func (g *Graph) Search(query string) []*Symbol {
	handles := g.search.search(query)
	out := make([]*Symbol, 0, len(handles))
	for _, h := range handles {
		if s, ok := g.nodes[h]; ok {
			out = append(out, s)
		}
	}
	return out
}

// FindPath returns the unit-weight shortest path from a to b, or nil
// if no path exists.
func (g *Graph) FindPath(a, b NodeHandle) []*Symbol {
	if a == b {
		if s, ok := g.nodes[a]; ok {
			return []*Symbol{s}
		}
		return nil
	}

	prev := map[NodeHandle]NodeHandle{}
	visited := map[NodeHandle]bool{a: true}
	queue := []NodeHandle{a}

	found := false
	for len(queue) > 0 && !found {
		cur := queue[0]
		queue = queue[1:]
		for _, rec := range g.outgoing[cur] {
			if visited[rec.to] {
				continue
			}
			visited[rec.to] = true
			prev[rec.to] = cur
			if rec.to == b {
				found = true
				break
			}
			queue = append(queue, rec.to)
		}
	}

	if !found {
		return nil
	}

	var path []NodeHandle
	for cur := b; ; {
		path = append([]NodeHandle{cur}, path...)
		if cur == a {
			break
		}
		cur = prev[cur]
	}

	out := make([]*Symbol, 0, len(path))
	for _, h := range path {
		if s, ok := g.nodes[h]; ok {
			out = append(out, s)
		}
	}
	return out
}

// ExportEdges returns every edge as a (source id, target id, kind)
// triple, for snapshot and broadcast export.
func (g *Graph) ExportEdges() []ExportedEdge {
	out := make([]ExportedEdge, 0, g.edgeCnt)
	// Iterate in handle order for deterministic export.
	handles := g.sortedHandles()
	for _, from := range handles {
		for _, rec := range g.outgoing[from] {
			fromSym, okF := g.nodes[from]
			toSym, okT := g.nodes[rec.to]
			if !okF || !okT {
				continue
			}
			out = append(out, ExportedEdge{
				Source: fromSym.ID,
				Target: toSym.ID,
				Kind:   rec.edge.Kind,
				File:   rec.edge.File,
				Line:   rec.edge.Line,
			})
		}
	}
	return out
}

func (g *Graph) sortedHandles() []NodeHandle {
	out := make([]NodeHandle, 0, len(g.nodes))
	for h := range g.nodes {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Nodes returns every live node, in deterministic handle order.
func (g *Graph) Nodes() []*Symbol {
	handles := g.sortedHandles()
	out := make([]*Symbol, 0, len(handles))
	for _, h := range handles {
		out = append(out, g.nodes[h])
	}
	return out
}

// Handles returns every live node handle, in deterministic order.
func (g *Graph) Handles() []NodeHandle {
	return g.sortedHandles()
}

// Centrality returns the node's current centrality score (0 if unset).
func (g *Graph) Centrality(h NodeHandle) float64 {
	return g.centrality[h]
}

// SetCentrality atomically replaces the centrality vector.
func (g *Graph) SetCentrality(scores map[NodeHandle]float64) {
	g.centrality = scores
}

// NodeInfo projects a handle's symbol plus its current centrality.
func (g *Graph) NodeInfo(h NodeHandle) (NodeInfo, bool) {
	s, ok := g.nodes[h]
	if !ok {
		return NodeInfo{}, false
	}
	return nodeInfoFrom(s, g.centrality[h]), true
}
