package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSliceContextAlwaysIncludesTarget(t *testing.T) {
	g := New()
	target, _ := g.AddNode(sym("t", "Target", "f.go", KindFunction))

	slice := g.SliceContext(target, 1000, 2, nil)
	require.Len(t, slice.Nodes, 1)
	assert.Equal(t, 0, slice.Nodes[0].Depth)
	assert.Equal(t, TruncationExhausted, slice.TruncationReason)
}

func TestSliceContextExpandsBothDirectionsWithinDepth(t *testing.T) {
	g := New()
	target, _ := g.AddNode(sym("t", "Target", "f.go", KindFunction))
	caller, _ := g.AddNode(sym("c", "Caller", "f.go", KindFunction))
	callee, _ := g.AddNode(sym("e", "Callee", "f.go", KindFunction))
	g.AddEdge(caller, target, NewEdge(EdgeCalls))
	g.AddEdge(target, callee, NewEdge(EdgeCalls))

	slice := g.SliceContext(target, 100000, 1, nil)
	ids := map[string]bool{}
	for _, n := range slice.Nodes {
		ids[n.NodeInfo.ID] = true
	}
	assert.True(t, ids["t"])
	assert.True(t, ids["c"])
	assert.True(t, ids["e"])
}

func TestSliceContextStopsAtMaxDepth(t *testing.T) {
	g, h := buildChain(t, 5)
	slice := g.SliceContext(h[0], 1000000, 1, nil)

	assert.Equal(t, TruncationDepthReached, slice.TruncationReason)
	for _, n := range slice.Nodes {
		assert.LessOrEqual(t, n.Depth, 1)
	}
}

func TestSliceContextBudgetStopsNonPinnedInclusion(t *testing.T) {
	g := New()
	// Each node spans 100 lines -> 100*40/4 = 1000 tokens.
	target := Symbol{ID: "t", Name: "Target", File: "f.go", Kind: KindFunction, LineStart: 1, LineEnd: 101}
	other := Symbol{ID: "o", Name: "Other", File: "f.go", Kind: KindFunction, LineStart: 1, LineEnd: 101}
	th, _ := g.AddNode(target)
	oh, _ := g.AddNode(other)
	g.AddEdge(th, oh, NewEdge(EdgeCalls))

	// Budget covers the target (1000) but not target+other (2000).
	slice := g.SliceContext(th, 1500, 0, nil)
	require.Len(t, slice.Nodes, 1)
	assert.Equal(t, TruncationBudget, slice.TruncationReason)
	assert.Equal(t, 1000, slice.TotalTokens)
}

func TestSliceContextPinnedNodeIncludedOverBudget(t *testing.T) {
	g := New()
	target := Symbol{ID: "t", Name: "Target", File: "f.go", Kind: KindFunction, LineStart: 1, LineEnd: 101}
	pinned := Symbol{ID: "p", Name: "Pinned", File: "f.go", Kind: KindInterface, LineStart: 1, LineEnd: 101}
	th, _ := g.AddNode(target)
	ph, _ := g.AddNode(pinned)
	g.AddEdge(th, ph, NewEdge(EdgeCalls))

	slice := g.SliceContext(th, 1500, 0, map[SymbolKind]bool{KindInterface: true})
	require.Len(t, slice.Nodes, 2)
	var pinnedNode *ContextNode
	for i := range slice.Nodes {
		if slice.Nodes[i].NodeInfo.ID == "p" {
			pinnedNode = &slice.Nodes[i]
		}
	}
	require.NotNil(t, pinnedNode)
	assert.True(t, pinnedNode.Pinned)
}

func TestSliceContextPrioritizesHigherCentrality(t *testing.T) {
	g := New()
	target, _ := g.AddNode(sym("t", "Target", "f.go", KindFunction))
	low, _ := g.AddNode(sym("low", "Low", "f.go", KindFunction))
	high, _ := g.AddNode(sym("high", "High", "f.go", KindFunction))
	g.AddEdge(target, low, NewEdge(EdgeCalls))
	g.AddEdge(target, high, NewEdge(EdgeCalls))
	g.SetCentrality(map[NodeHandle]float64{target: 0.1, low: 0.1, high: 0.9})

	slice := g.SliceContext(target, 100000, 1, nil)
	require.Len(t, slice.Nodes, 3)
	// First non-target node should be the higher-centrality one.
	assert.Equal(t, "high", slice.Nodes[1].NodeInfo.ID)
}
