// Package broadcast implements the visualizer-facing fan-out surface
// of C8: a bounded channel per subscriber carrying GraphUpdate,
// FocusNode, and IndexerStatus messages, grounded on sync_server.rs's
// broadcast-channel usage translated to plain Go channels and
// goroutines (no tokio).
package broadcast

import "github.com/arbor-dev/arbor/internal/graph"

// MessageType tags the payload carried by one Message.
type MessageType string

const (
	TypeGraphUpdate   MessageType = "GraphUpdate"
	TypeFocusNode     MessageType = "FocusNode"
	TypeIndexerStatus MessageType = "IndexerStatus"
)

// Message is the tagged union every broadcast subscriber receives.
type Message struct {
	Type    MessageType `json:"type"`
	Payload interface{} `json:"payload"`
}

// GraphUpdate reports the graph's current shape. IsDelta is false only
// for the snapshot a new subscriber receives on connect; every
// subsequent update (one per committed re-index) sets it true and
// names the files that changed.
type GraphUpdate struct {
	IsDelta      bool                 `json:"isDelta"`
	NodeCount    int                  `json:"nodeCount"`
	EdgeCount    int                  `json:"edgeCount"`
	FileCount    int                  `json:"fileCount"`
	ChangedFiles []string             `json:"changedFiles,omitempty"`
	Timestamp    int64                `json:"timestamp"`
	Nodes        []graph.NodeInfo     `json:"nodes,omitempty"`
	Edges        []graph.ExportedEdge `json:"edges,omitempty"`
}

// FocusNode asks the visualizer to spotlight one node, emitted after a
// bridge tool invocation names a target.
type FocusNode struct {
	NodeID string `json:"nodeId"`
}

// IndexerStatus reports incremental-indexer progress, emitted once per
// progress tick.
type IndexerStatus struct {
	Indexing  bool `json:"indexing"`
	Pending   int  `json:"pending"`
	NodeCount int  `json:"nodeCount"`
	EdgeCount int  `json:"edgeCount"`
}
