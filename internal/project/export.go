package project

import "github.com/arbor-dev/arbor/internal/graph"

// ExportStats is the compact counter pair the on-disk export format
// carries, per the external interface's graph export wire format.
type ExportStats struct {
	NodeCount int `json:"nodeCount"`
	EdgeCount int `json:"edgeCount"`
}

// ExportDocument is the on-disk shape written by `arbor export` (and
// optionally by `arbor index --output`): {version, stats, nodes}.
type ExportDocument struct {
	Version string           `json:"version"`
	Stats   ExportStats      `json:"stats"`
	Nodes   []graph.NodeInfo `json:"nodes"`
}

// Export flattens g into the on-disk export document.
func Export(g *graph.Graph) ExportDocument {
	doc := ExportDocument{
		Version: "1.0",
		Stats:   ExportStats{NodeCount: g.NodeCount(), EdgeCount: g.EdgeCount()},
	}
	for _, h := range g.Handles() {
		if info, ok := g.NodeInfo(h); ok {
			doc.Nodes = append(doc.Nodes, info)
		}
	}
	return doc
}
