package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sym(id, name, file string, kind SymbolKind, refs ...string) Symbol {
	return Symbol{
		ID:        id,
		Name:      name,
		File:      file,
		Kind:      kind,
		LineStart: 1,
		LineEnd:   2,
		References: refs,
	}
}

func TestAddNodeRejectsDuplicateID(t *testing.T) {
	g := New()
	_, err := g.AddNode(sym("a", "Foo", "f.go", KindFunction))
	require.NoError(t, err)

	_, err = g.AddNode(sym("a", "Bar", "f.go", KindFunction))
	assert.Error(t, err)
}

func TestAddNodeIndexesByNameFileAndID(t *testing.T) {
	g := New()
	h, err := g.AddNode(sym("a", "Foo", "f.go", KindFunction))
	require.NoError(t, err)

	got, ok := g.Get(h)
	require.True(t, ok)
	assert.Equal(t, "Foo", got.Name)

	byID, ok := g.GetByID("a")
	require.True(t, ok)
	assert.Equal(t, h, mustIndex(t, g, "a"))
	assert.Equal(t, "Foo", byID.Name)

	assert.Len(t, g.FindByName("Foo"), 1)
	assert.Len(t, g.FindByFile("f.go"), 1)
}

func mustIndex(t *testing.T, g *Graph, id string) NodeHandle {
	t.Helper()
	h, ok := g.GetIndex(id)
	require.True(t, ok)
	return h
}

func TestGetCallersAndCallees(t *testing.T) {
	g := New()
	a, _ := g.AddNode(sym("a", "A", "f.go", KindFunction))
	b, _ := g.AddNode(sym("b", "B", "f.go", KindFunction))
	g.AddEdge(a, b, NewEdge(EdgeCalls))

	callees := g.GetCallees(a)
	require.Len(t, callees, 1)
	assert.Equal(t, "B", callees[0].Name)

	callers := g.GetCallers(b)
	require.Len(t, callers, 1)
	assert.Equal(t, "A", callers[0].Name)
}

func TestGetDependentsIsBreadthFirst(t *testing.T) {
	g := New()
	a, _ := g.AddNode(sym("a", "A", "f.go", KindFunction))
	b, _ := g.AddNode(sym("b", "B", "f.go", KindFunction))
	c, _ := g.AddNode(sym("c", "C", "f.go", KindFunction))
	// b calls a, c calls b: dependents of a are b (depth 1), c (depth 2)
	g.AddEdge(b, a, NewEdge(EdgeCalls))
	g.AddEdge(c, b, NewEdge(EdgeCalls))

	hops := g.GetDependents(a, 10)
	require.Len(t, hops, 2)
	assert.Equal(t, b, hops[0].Handle)
	assert.Equal(t, 1, hops[0].Depth)
	assert.Equal(t, c, hops[1].Handle)
	assert.Equal(t, 2, hops[1].Depth)
}

func TestGetDependentsRespectsMaxDepth(t *testing.T) {
	g := New()
	a, _ := g.AddNode(sym("a", "A", "f.go", KindFunction))
	b, _ := g.AddNode(sym("b", "B", "f.go", KindFunction))
	c, _ := g.AddNode(sym("c", "C", "f.go", KindFunction))
	g.AddEdge(b, a, NewEdge(EdgeCalls))
	g.AddEdge(c, b, NewEdge(EdgeCalls))

	hops := g.GetDependents(a, 1)
	require.Len(t, hops, 1)
	assert.Equal(t, b, hops[0].Handle)
}

func TestRemoveFilePrunesIncidentEdges(t *testing.T) {
	g := New()
	a, _ := g.AddNode(sym("a", "A", "f1.go", KindFunction))
	b, _ := g.AddNode(sym("b", "B", "f2.go", KindFunction))
	g.AddEdge(a, b, NewEdge(EdgeCalls))
	g.AddEdge(b, a, NewEdge(EdgeCalls))

	require.Equal(t, 2, g.EdgeCount())

	g.RemoveFile("f1.go")

	assert.Equal(t, 1, g.NodeCount())
	assert.Equal(t, 0, g.EdgeCount())
	assert.Empty(t, g.GetCallers(b))
	assert.Empty(t, g.GetCallees(b))

	_, ok := g.GetByID("a")
	assert.False(t, ok)
}

func TestFindPath(t *testing.T) {
	g := New()
	a, _ := g.AddNode(sym("a", "A", "f.go", KindFunction))
	b, _ := g.AddNode(sym("b", "B", "f.go", KindFunction))
	c, _ := g.AddNode(sym("c", "C", "f.go", KindFunction))
	g.AddEdge(a, b, NewEdge(EdgeCalls))
	g.AddEdge(b, c, NewEdge(EdgeCalls))

	path := g.FindPath(a, c)
	require.Len(t, path, 3)
	assert.Equal(t, "A", path[0].Name)
	assert.Equal(t, "B", path[1].Name)
	assert.Equal(t, "C", path[2].Name)

	assert.Nil(t, g.FindPath(c, a))
}

func TestExportEdgesDeterministicOrder(t *testing.T) {
	g := New()
	a, _ := g.AddNode(sym("a", "A", "f.go", KindFunction))
	b, _ := g.AddNode(sym("b", "B", "f.go", KindFunction))
	g.AddEdge(a, b, NewEdge(EdgeCalls))

	edges := g.ExportEdges()
	require.Len(t, edges, 1)
	assert.Equal(t, "a", edges[0].Source)
	assert.Equal(t, "b", edges[0].Target)
	assert.Equal(t, EdgeCalls, edges[0].Kind)
}
