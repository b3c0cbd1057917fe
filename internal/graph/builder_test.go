package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilderResolvesByFQNFirst(t *testing.T) {
	b := NewBuilder()
	_, err := b.AddNodes([]Symbol{
		{ID: "a", Name: "run", QualifiedName: "pkg.run", File: "f.go", Kind: KindFunction, References: []string{"pkg.helper"}},
		{ID: "b", Name: "helper", QualifiedName: "pkg.helper", File: "f.go", Kind: KindFunction},
		{ID: "c", Name: "helper", QualifiedName: "other.helper", File: "g.go", Kind: KindFunction},
	})
	require.NoError(t, err)

	g := b.Build()
	from, _ := g.GetIndex("a")
	callees := g.GetCallees(from)
	require.Len(t, callees, 1)
	assert.Equal(t, "b", callees[0].ID)
}

func TestBuilderFallsBackToBareName(t *testing.T) {
	b := NewBuilder()
	_, err := b.AddNodes([]Symbol{
		{ID: "a", Name: "run", File: "f.go", Kind: KindFunction, References: []string{"helper"}},
		{ID: "b", Name: "helper", File: "f.go", Kind: KindFunction},
	})
	require.NoError(t, err)

	g := b.Build()
	from, _ := g.GetIndex("a")
	callees := g.GetCallees(from)
	require.Len(t, callees, 1)
	assert.Equal(t, "b", callees[0].ID)
}

func TestBuilderDropsUnresolvedReferencesSilently(t *testing.T) {
	b := NewBuilder()
	_, err := b.AddNodes([]Symbol{
		{ID: "a", Name: "run", File: "f.go", Kind: KindFunction, References: []string{"nowhere"}},
	})
	require.NoError(t, err)

	g := b.Build()
	from, _ := g.GetIndex("a")
	assert.Empty(t, g.GetCallees(from))
	assert.Equal(t, 0, g.EdgeCount())
}

// TestCrossFileResolution mirrors the cross-file resolution case: a
// symbol in one file references a fully-qualified symbol defined in
// another file, added in a separate AddNodes batch (as happens across
// multiple extracted files feeding one builder).
func TestCrossFileResolution(t *testing.T) {
	b := NewBuilder()
	_, err := b.AddNodes([]Symbol{
		{ID: "caller", Name: "Caller", QualifiedName: "pkgA.Caller", File: "a.go", Kind: KindFunction, References: []string{"pkgB.Callee"}},
	})
	require.NoError(t, err)
	_, err = b.AddNodes([]Symbol{
		{ID: "callee", Name: "Callee", QualifiedName: "pkgB.Callee", File: "b.go", Kind: KindFunction},
	})
	require.NoError(t, err)

	g := b.Build()
	from, _ := g.GetIndex("caller")
	to, _ := g.GetIndex("callee")

	callees := g.GetCallees(from)
	require.Len(t, callees, 1)
	assert.Equal(t, "callee", callees[0].ID)

	callers := g.GetCallers(to)
	require.Len(t, callers, 1)
	assert.Equal(t, "caller", callers[0].ID)
}

func TestBuilderNeverAddsSelfEdge(t *testing.T) {
	b := NewBuilder()
	_, err := b.AddNodes([]Symbol{
		{ID: "a", Name: "recurse", QualifiedName: "pkg.recurse", File: "f.go", Kind: KindFunction, References: []string{"pkg.recurse"}},
	})
	require.NoError(t, err)

	g := b.Build()
	assert.Equal(t, 0, g.EdgeCount())
}

func TestResolveEdgesSubsetScopesBareNameFallback(t *testing.T) {
	g := New()
	existing, err := g.AddNode(Symbol{ID: "old", Name: "helper", File: "old.go", Kind: KindFunction})
	require.NoError(t, err)

	b := NewBuilderWithGraph(g)
	handles, err := b.AddNodes([]Symbol{
		{ID: "new", Name: "caller", File: "new.go", Kind: KindFunction, References: []string{"helper"}},
	})
	require.NoError(t, err)

	fallback := map[string]NodeHandle{"caller": handles[0]}
	b.ResolveEdgesSubset(handles, fallback)

	from := handles[0]
	assert.Empty(t, g.GetCallees(from), "helper is not in the new-nodes-only fallback map so it must not resolve")
	_ = existing
}
