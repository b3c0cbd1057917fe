package bridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arbor-dev/arbor/internal/graph"
)

func buildTestGraph(t *testing.T) (*graph.Graph, graph.NodeHandle) {
	t.Helper()
	b := graph.NewBuilder()
	_, err := b.AddNodes([]graph.Symbol{
		{ID: "f1", Name: "main", Kind: graph.KindFunction, File: "main.go", References: []string{"helper"}},
		{ID: "f2", Name: "helper", Kind: graph.KindFunction, File: "helper.go"},
	})
	require.NoError(t, err)
	g := b.Build()
	h, ok := g.GetIndex("f1")
	require.True(t, ok)
	return g, h
}

func TestRenderBriefIncludesMetadataAndTables(t *testing.T) {
	g, h := buildTestGraph(t)

	text, err := RenderBrief(g, h)
	require.NoError(t, err)
	assert.Contains(t, text, "# Architectural Brief: `main`")
	assert.Contains(t, text, "Dependencies (calls)")
	assert.Contains(t, text, "Used by (callers)")
	assert.Contains(t, text, "`helper`")
}

func TestResolveNodeByIDAndByName(t *testing.T) {
	g, _ := buildTestGraph(t)

	h, ok := ResolveNode(g, "f2")
	require.True(t, ok)
	s, _ := g.Get(h)
	assert.Equal(t, "helper", s.Name)

	h, ok = ResolveNode(g, "helper")
	require.True(t, ok)
	s, _ = g.Get(h)
	assert.Equal(t, "helper", s.Name)

	_, ok = ResolveNode(g, "nope")
	assert.False(t, ok)
}
