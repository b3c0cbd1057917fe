// Package graph implements the Arbor code graph: the typed directed
// multigraph of symbols and edges, its indexes, and the analytical
// queries (ranking, blast-radius, context slicing) that run over it.
package graph

// SymbolKind enumerates the kinds of code entities Arbor tracks.
type SymbolKind string

const (
	KindFunction    SymbolKind = "Function"
	KindMethod      SymbolKind = "Method"
	KindClass       SymbolKind = "Class"
	KindStruct      SymbolKind = "Struct"
	KindInterface   SymbolKind = "Interface"
	KindEnum        SymbolKind = "Enum"
	KindConstant    SymbolKind = "Constant"
	KindVariable    SymbolKind = "Variable"
	KindField       SymbolKind = "Field"
	KindConstructor SymbolKind = "Constructor"
	KindModule      SymbolKind = "Module"
	KindImport      SymbolKind = "Import"
	KindTypeAlias   SymbolKind = "TypeAlias"
)

// Visibility enumerates symbol access levels.
type Visibility string

const (
	VisibilityPublic    Visibility = "Public"
	VisibilityProtected Visibility = "Protected"
	VisibilityPrivate   Visibility = "Private"
	VisibilityInternal  Visibility = "Internal"
)

// EdgeKind enumerates the relationship types between two symbols.
type EdgeKind string

const (
	EdgeCalls          EdgeKind = "Calls"
	EdgeImports        EdgeKind = "Imports"
	EdgeExtends        EdgeKind = "Extends"
	EdgeImplements     EdgeKind = "Implements"
	EdgeUsesType       EdgeKind = "UsesType"
	EdgeReferences     EdgeKind = "References"
	EdgeContains       EdgeKind = "Contains"
	EdgeFlowsTo        EdgeKind = "FlowsTo"
	EdgeDataDependency EdgeKind = "DataDependency"
)

// Symbol is a node in the code graph: one extracted code entity.
type Symbol struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	QualifiedName string     `json:"qualifiedName"`
	Kind          SymbolKind `json:"kind"`
	File          string     `json:"file"`
	LineStart     int        `json:"lineStart"`
	LineEnd       int        `json:"lineEnd"`
	Column        int        `json:"column"`
	ByteStart     int        `json:"byteStart"`
	ByteEnd       int        `json:"byteEnd"`
	Visibility    Visibility `json:"visibility"`
	Signature     string     `json:"signature,omitempty"`
	// References holds unresolved target names emitted by the
	// extractor; the builder turns these into edges, then the field
	// is no longer consulted by the graph core.
	References []string `json:"references,omitempty"`
}

// Edge is a resolved relationship between two live nodes.
type Edge struct {
	Kind EdgeKind `json:"kind"`
	File string   `json:"file,omitempty"`
	Line int      `json:"line,omitempty"`
}

// NewEdge creates an edge with no location info.
func NewEdge(kind EdgeKind) Edge {
	return Edge{Kind: kind}
}

// WithLocation returns a copy of the edge carrying origin file/line.
func (e Edge) WithLocation(file string, line int) Edge {
	e.File = file
	e.Line = line
	return e
}

// ExportedEdge is the flattened shape used for snapshots and the
// broadcast surface's graph export.
type ExportedEdge struct {
	Source string   `json:"source"`
	Target string   `json:"target"`
	Kind   EdgeKind `json:"kind"`
	File   string   `json:"file,omitempty"`
	Line   int      `json:"line,omitempty"`
}

// Relation is an unresolved edge emitted directly by the extractor,
// prior to any graph insertion (distinct from Symbol.References, which
// is the same concept carried on the symbol itself for the builder).
type Relation struct {
	FromID string
	ToName string
	Kind   EdgeKind
	Line   int
}

// NodeInfo is the read-shaped projection of a Symbol used across the
// protocol surfaces, annotated with its current centrality score.
type NodeInfo struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	QualifiedName string     `json:"qualifiedName"`
	Kind          SymbolKind `json:"kind"`
	File          string     `json:"file"`
	LineStart     int        `json:"lineStart"`
	LineEnd       int        `json:"lineEnd"`
	Signature     string     `json:"signature,omitempty"`
	Centrality    float64    `json:"centrality"`
}

func nodeInfoFrom(s *Symbol, centrality float64) NodeInfo {
	return NodeInfo{
		ID:            s.ID,
		Name:          s.Name,
		QualifiedName: s.QualifiedName,
		Kind:          s.Kind,
		File:          s.File,
		LineStart:     s.LineStart,
		LineEnd:       s.LineEnd,
		Signature:     s.Signature,
		Centrality:    centrality,
	}
}

// Stats reports graph-wide counters for the info endpoint.
type Stats struct {
	NodeCount int `json:"nodeCount"`
	EdgeCount int `json:"edgeCount"`
	Files     int `json:"files"`
}
