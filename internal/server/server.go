// Package server wires the protocol surfaces together into the
// long-running process `serve` starts: the query RPC and broadcast
// WebSocket listeners and the incremental indexer. The stdin/stdout
// agent bridge is not wired here (see Server). Grounded on the
// teacher's internal/server.IndexServer lifecycle (Start spins a
// background build, then serves; graceful shutdown on signal) adapted
// from a single Unix-socket RPC server to Arbor's two HTTP/WebSocket
// listeners plus the filesystem watcher.
package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/arbor-dev/arbor/internal/broadcast"
	"github.com/arbor-dev/arbor/internal/config"
	"github.com/arbor-dev/arbor/internal/debug"
	"github.com/arbor-dev/arbor/internal/extract"
	"github.com/arbor-dev/arbor/internal/graph"
	"github.com/arbor-dev/arbor/internal/index"
	"github.com/arbor-dev/arbor/internal/project"
	"github.com/arbor-dev/arbor/internal/rpc"
)

// Server owns one project's live graph and every listener built over
// it: query RPC, visualizer broadcast, and the background incremental
// indexer. It does not itself own the agent bridge, which runs over
// stdin/stdout rather than a listening socket — callers that want both
// construct a Server for its Shared handle and broadcast.Server, then
// build a bridge.Bridge separately wired to the same handle.
type Server struct {
	cfg       *config.Config
	shared    *graph.Shared
	hub       *broadcast.Hub
	Broadcast *broadcast.Server
	rpc       *rpc.Server
	indexer   *index.Indexer

	queryHTTP     *http.Server
	broadcastHTTP *http.Server
}

// New performs the initial full build of root and wires every
// component over the resulting graph. Headless binds both listeners
// to all interfaces instead of loopback, overriding cfg.Server.BindAddress.
func New(root string, cfg *config.Config, headless bool) (*Server, error) {
	result, err := project.Build(root, cfg)
	if err != nil {
		return nil, fmt.Errorf("initial build: %w", err)
	}

	shared := graph.NewShared(result.Graph)
	hub := broadcast.NewHub()
	broadcastSrv := broadcast.NewServer(hub, shared)
	rpcSrv := rpc.NewServer(shared, cfg.Languages)

	bind := cfg.Server.BindAddress
	if headless {
		bind = "0.0.0.0"
	}

	s := &Server{
		cfg:       cfg,
		shared:    shared,
		hub:       hub,
		Broadcast: broadcastSrv,
		rpc:       rpcSrv,
		queryHTTP: &http.Server{
			Addr:    fmt.Sprintf("%s:%d", bind, cfg.Server.QueryPort),
			Handler: rpcSrv.Handler(),
		},
		broadcastHTTP: &http.Server{
			Addr:    fmt.Sprintf("%s:%d", bind, cfg.Server.BroadcastPort),
			Handler: broadcastSrv.Handler(),
		},
	}

	s.indexer = index.New(root, cfg, shared, extract.New(), func(d index.Delta) {
		if d.Err != nil {
			debug.LogIndexing("reindex %s failed: %v\n", d.Path, d.Err)
			return
		}
		broadcastSrv.PublishDelta([]string{d.Path})
	})

	return s, nil
}

// Shared exposes the live graph handle, for the bridge or CLI commands
// that need to query the same graph this server is serving.
func (s *Server) Shared() *graph.Shared { return s.shared }

// Start begins the background indexer and both HTTP listeners. It
// returns once both listeners are accepting connections; call Stop to
// shut everything down.
func (s *Server) Start(ctx context.Context) error {
	if err := s.indexer.Start(ctx); err != nil {
		return fmt.Errorf("starting indexer: %w", err)
	}

	errCh := make(chan error, 2)
	go func() { errCh <- s.queryHTTP.ListenAndServe() }()
	go func() { errCh <- s.broadcastHTTP.ListenAndServe() }()

	go func() {
		for err := range errCh {
			if err != nil && err != http.ErrServerClosed {
				debug.LogIndexing("listener error: %v\n", err)
			}
		}
	}()

	debug.LogIndexing("query surface on %s, broadcast surface on %s\n", s.queryHTTP.Addr, s.broadcastHTTP.Addr)
	return nil
}

// Stop gracefully shuts down both listeners and the indexer.
func (s *Server) Stop(ctx context.Context) error {
	_ = s.queryHTTP.Shutdown(ctx)
	_ = s.broadcastHTTP.Shutdown(ctx)
	return s.indexer.Stop()
}
