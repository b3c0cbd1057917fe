package broadcast

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/arbor-dev/arbor/internal/debug"
	"github.com/arbor-dev/arbor/internal/graph"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Server serves the broadcast WebSocket surface: on connect it sends a
// non-delta GraphUpdate snapshot, then forwards every Message the hub
// publishes. Client messages are read and discarded except for
// ping/pong, which gorilla/websocket answers automatically.
type Server struct {
	hub    *Hub
	shared *graph.Shared
}

// NewServer builds a Server fronting hub with snapshots read from
// shared.
func NewServer(hub *Hub, shared *graph.Shared) *Server {
	return &Server{hub: hub, shared: shared}
}

// Handler returns the http.HandlerFunc to mount at the broadcast port.
func (s *Server) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			debug.LogBroadcast("upgrade failed: %v\n", err)
			return
		}
		defer conn.Close()

		id, messages, unsubscribe := s.hub.Subscribe()
		defer unsubscribe()
		debug.LogBroadcast("subscriber %s connected\n", id)

		if err := conn.WriteJSON(s.snapshot()); err != nil {
			return
		}

		done := make(chan struct{})
		go s.drainClient(conn, done)

		for {
			select {
			case <-done:
				return
			case msg, ok := <-messages:
				if !ok {
					return
				}
				if err := conn.WriteJSON(msg); err != nil {
					return
				}
			}
		}
	}
}

// drainClient reads and discards whatever the client sends; closes
// done when the connection errors or the client disconnects.
func (s *Server) drainClient(conn *websocket.Conn, done chan struct{}) {
	defer close(done)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (s *Server) snapshot() Message {
	var update GraphUpdate
	s.shared.Read(func(g *graph.Graph) {
		stats := g.Stats()
		update = GraphUpdate{
			IsDelta:   false,
			NodeCount: stats.NodeCount,
			EdgeCount: stats.EdgeCount,
			FileCount: stats.Files,
			Timestamp: time.Now().Unix(),
			Edges:     g.ExportEdges(),
		}
		for _, h := range g.Handles() {
			if info, ok := g.NodeInfo(h); ok {
				update.Nodes = append(update.Nodes, info)
			}
		}
	})
	return Message{Type: TypeGraphUpdate, Payload: update}
}

// PublishDelta wraps a committed re-index as a delta GraphUpdate naming
// changedFiles and hands it to the hub.
func (s *Server) PublishDelta(changedFiles []string) {
	var update GraphUpdate
	s.shared.Read(func(g *graph.Graph) {
		stats := g.Stats()
		update = GraphUpdate{
			IsDelta:      true,
			NodeCount:    stats.NodeCount,
			EdgeCount:    stats.EdgeCount,
			FileCount:    stats.Files,
			ChangedFiles: changedFiles,
			Timestamp:    time.Now().Unix(),
		}
	})
	s.hub.Publish(Message{Type: TypeGraphUpdate, Payload: update})
}

// PublishFocus emits a FocusNode message naming nodeID (spotlight).
func (s *Server) PublishFocus(nodeID string) {
	s.hub.Publish(Message{Type: TypeFocusNode, Payload: FocusNode{NodeID: nodeID}})
}

// PublishStatus emits an IndexerStatus progress tick.
func (s *Server) PublishStatus(status IndexerStatus) {
	s.hub.Publish(Message{Type: TypeIndexerStatus, Payload: status})
}

