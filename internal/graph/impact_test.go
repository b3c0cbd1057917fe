package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildChain(t *testing.T, n int) (*Graph, []NodeHandle) {
	t.Helper()
	g := New()
	handles := make([]NodeHandle, n)
	for i := 0; i < n; i++ {
		h, err := g.AddNode(sym(string(rune('a'+i)), string(rune('A'+i)), "f.go", KindFunction))
		require.NoError(t, err)
		handles[i] = h
	}
	// handles[i] calls handles[i+1]: downstream chain from handles[0]
	for i := 0; i < n-1; i++ {
		g.AddEdge(handles[i], handles[i+1], NewEdge(EdgeCalls))
	}
	return g, handles
}

func TestAnalyzeImpactDirectSeverity(t *testing.T) {
	g, h := buildChain(t, 2)
	result := g.AnalyzeImpact(h[0], 0)

	require.Len(t, result.Downstream, 1)
	assert.Equal(t, SeverityDirect, result.Downstream[0].Severity)
	assert.Equal(t, 1, result.Downstream[0].HopDistance)
	assert.Equal(t, EdgeCalls, result.Downstream[0].EntryEdge)
	assert.Equal(t, DirectionDownstream, result.Downstream[0].Direction)
}

func TestAnalyzeImpactTransitiveAndDistantSeverity(t *testing.T) {
	// chain of 6: hop1=direct, hop2-3=transitive, hop4+=distant
	g, h := buildChain(t, 6)
	result := g.AnalyzeImpact(h[0], 0)

	byHop := map[int]ImpactSeverity{}
	for _, n := range result.Downstream {
		byHop[n.HopDistance] = n.Severity
	}
	assert.Equal(t, SeverityDirect, byHop[1])
	assert.Equal(t, SeverityTransitive, byHop[2])
	assert.Equal(t, SeverityTransitive, byHop[3])
	assert.Equal(t, SeverityDistant, byHop[4])
	assert.Equal(t, SeverityDistant, byHop[5])
}

func TestAnalyzeImpactMaxDepthZeroIsUnbounded(t *testing.T) {
	g, h := buildChain(t, 10)
	result := g.AnalyzeImpact(h[0], 0)
	assert.Len(t, result.Downstream, 9)
}

func TestAnalyzeImpactRespectsMaxDepth(t *testing.T) {
	g, h := buildChain(t, 10)
	result := g.AnalyzeImpact(h[0], 2)
	assert.Len(t, result.Downstream, 2)
}

func TestAnalyzeImpactUpstreamIsCallers(t *testing.T) {
	g, h := buildChain(t, 3)
	result := g.AnalyzeImpact(h[2], 0)
	require.Len(t, result.Upstream, 2)
	for _, n := range result.Upstream {
		assert.Equal(t, DirectionUpstream, n.Direction)
	}
}

func TestAnalyzeImpactEntryEdgeFirstSeenWins(t *testing.T) {
	g := New()
	target, _ := g.AddNode(sym("t", "Target", "f.go", KindFunction))
	mid, _ := g.AddNode(sym("m", "Mid", "f.go", KindFunction))
	far, _ := g.AddNode(sym("far", "Far", "f.go", KindFunction))

	// far is reached directly from target via Imports (depth 1, fast path)
	// and also via target->mid->far through Calls (depth 2, slower path).
	// far's entry edge must be the one from its first-seen path (Imports).
	g.AddEdge(target, far, NewEdge(EdgeImports))
	g.AddEdge(target, mid, NewEdge(EdgeCalls))
	g.AddEdge(mid, far, NewEdge(EdgeCalls))

	result := g.AnalyzeImpact(target, 0)
	var farNode *AffectedNode
	for i := range result.Downstream {
		if result.Downstream[i].NodeInfo.ID == "far" {
			farNode = &result.Downstream[i]
		}
	}
	require.NotNil(t, farNode)
	assert.Equal(t, EdgeImports, farNode.EntryEdge)
	assert.Equal(t, 1, farNode.HopDistance)
}

func TestAnalyzeImpactMissingTargetReturnsEmpty(t *testing.T) {
	g := New()
	result := g.AnalyzeImpact(NodeHandle(999), 0)
	assert.Equal(t, 0, result.TotalAffected)
}

func TestAllAffectedSortedBySeverityThenHopThenID(t *testing.T) {
	g, h := buildChain(t, 6)
	result := g.AnalyzeImpact(h[0], 0)
	all := result.AllAffected()

	for i := 1; i < len(all); i++ {
		prev, cur := all[i-1], all[i]
		if prev.Severity != cur.Severity {
			assert.Less(t, prev.Severity, cur.Severity)
			continue
		}
		if prev.HopDistance != cur.HopDistance {
			assert.Less(t, prev.HopDistance, cur.HopDistance)
			continue
		}
		assert.LessOrEqual(t, prev.NodeInfo.ID, cur.NodeInfo.ID)
	}
}
