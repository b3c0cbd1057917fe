package rpc

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/arbor-dev/arbor/internal/debug"
	"github.com/arbor-dev/arbor/internal/graph"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Server serves the query surface: one JSON-RPC 2.0 request per
// WebSocket message, one response per request, no fan-out.
type Server struct {
	shared    *graph.Shared
	languages []string
}

// NewServer builds a query Server reading from shared, reporting
// languages in graph.info replies.
func NewServer(shared *graph.Shared, languages []string) *Server {
	return &Server{shared: shared, languages: languages}
}

// Handler returns the http.HandlerFunc to mount at the query port.
func (s *Server) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			debug.LogIndexing("rpc upgrade failed: %v\n", err)
			return
		}
		defer conn.Close()

		for {
			_, raw, err := conn.ReadMessage()
			if err != nil {
				return
			}

			resp := s.handle(raw)
			if err := conn.WriteJSON(resp); err != nil {
				return
			}
		}
	}
}

func (s *Server) handle(raw []byte) Response {
	var req Request
	if err := json.Unmarshal(raw, &req); err != nil {
		return errorResponse(nil, codeParseError, "parse error: "+err.Error())
	}
	return dispatch(s.shared, s.languages, req)
}
