// Package bridge implements the stdin/stdout agent surface: a fixed
// two-tool catalogue rendering a Markdown "Architectural Brief" for a
// resolved node, grounded on original_source/crates/arbor-mcp/src/
// lib.rs's generate_context, adapted to the teacher's modelcontext
// protocol/go-sdk wiring (internal/mcp/server.go's mcp.NewServer/
// AddTool pattern).
package bridge

import (
	"fmt"
	"strings"

	"github.com/arbor-dev/arbor/internal/graph"
)

// RenderBrief builds the Markdown brief for target: a metadata table,
// then a "Dependencies (calls)" table of its callees and a "Used by
// (callers)" table of its callers, each row annotated with the
// referenced node's centrality to three decimal places.
func RenderBrief(g *graph.Graph, h graph.NodeHandle) (string, error) {
	node, ok := g.Get(h)
	if !ok {
		return "", fmt.Errorf("node not found")
	}

	var b strings.Builder

	fmt.Fprintf(&b, "# Architectural Brief: `%s`\n\n", node.Name)
	b.WriteString("| Property | Value |\n")
	b.WriteString("|----------|-------|\n")
	fmt.Fprintf(&b, "| **Type** | %s |\n", node.Kind)
	fmt.Fprintf(&b, "| **File** | `%s` |\n", node.File)
	fmt.Fprintf(&b, "| **Impact Level** | %.3f |\n", g.Centrality(h))
	if node.Signature != "" {
		fmt.Fprintf(&b, "| **Signature** | `%s` |\n", node.Signature)
	}

	b.WriteString("\n## Dependencies (calls)\n\n")
	callees := g.GetCallees(h)
	if len(callees) == 0 {
		b.WriteString("*None - this is a leaf node.*\n")
	} else {
		writeReferenceTable(&b, g, callees)
	}

	b.WriteString("\n## Used by (callers)\n\n")
	callers := g.GetCallers(h)
	if len(callers) == 0 {
		b.WriteString("*None - potential entry point or dead code.*\n")
	} else {
		writeReferenceTable(&b, g, callers)
	}

	return b.String(), nil
}

func writeReferenceTable(b *strings.Builder, g *graph.Graph, symbols []*graph.Symbol) {
	b.WriteString("| Symbol | Type | Impact | File |\n")
	b.WriteString("|--------|------|--------|------|\n")
	for _, s := range symbols {
		impact := 0.0
		if h, ok := g.GetIndex(s.ID); ok {
			impact = g.Centrality(h)
		}
		fmt.Fprintf(b, "| `%s` | %s | %.3f | `%s` |\n", s.Name, s.Kind, impact, s.File)
	}
}

// ResolveNode finds the single node a symbol identifier names, either
// as an exact ID or, failing that, the first bare-name match — the
// same two-step lookup as the original's generate_context.
func ResolveNode(g *graph.Graph, identifier string) (graph.NodeHandle, bool) {
	if h, ok := g.GetIndex(identifier); ok {
		return h, true
	}
	candidates := g.FindByName(identifier)
	if len(candidates) == 0 {
		return 0, false
	}
	return g.GetIndex(candidates[0].ID)
}
