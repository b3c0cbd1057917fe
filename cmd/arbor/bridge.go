package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/urfave/cli/v2"

	"github.com/arbor-dev/arbor/internal/bridge"
	"github.com/arbor-dev/arbor/internal/broadcast"
	"github.com/arbor-dev/arbor/internal/debug"
	"github.com/arbor-dev/arbor/internal/extract"
	"github.com/arbor-dev/arbor/internal/graph"
	"github.com/arbor-dev/arbor/internal/index"
	"github.com/arbor-dev/arbor/internal/project"
)

// bridgeCommand runs the stdin/stdout agent surface. It always starts
// the incremental indexer alongside the two MCP tools, so the graph
// stays live for the whole session; `serve` and `viz` run the same
// indexer behind their WebSocket listeners.
var bridgeCommand = &cli.Command{
	Name:      "bridge",
	Usage:     "run the stdin/stdout agent bridge (get_logic_path, analyze_impact) against a continuously updated graph",
	ArgsUsage: "[path]",
	Flags: []cli.Flag{
		&cli.BoolFlag{Name: "viz", Usage: "also serve the visualizer broadcast surface"},
	},
	Action: func(c *cli.Context) error {
		debug.SetBridgeMode(true)

		root, err := targetPath(c)
		if err != nil {
			return err
		}
		cfg, err := loadOrInitConfig(root)
		if err != nil {
			return err
		}
		if cfg.Server.QueryPort == 7432 {
			cfg.Server.QueryPort, cfg.Server.BroadcastPort = 7433, 8081
		}

		result, err := project.Build(root, cfg)
		if err != nil {
			return err
		}
		shared := graph.NewShared(result.Graph)

		hub := broadcast.NewHub()
		broadcastSrv := broadcast.NewServer(hub, shared)

		idx := index.New(root, cfg, shared, extract.New(), func(d index.Delta) {
			if d.Err != nil {
				debug.LogIndexing("reindex %s failed: %v\n", d.Path, d.Err)
				return
			}
			broadcastSrv.PublishDelta([]string{d.Path})
		})

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		if err := idx.Start(ctx); err != nil {
			return err
		}
		defer idx.Stop()

		b := bridge.New(shared)
		b.OnFocus = func(nodeID string) { broadcastSrv.PublishFocus(nodeID) }

		if c.Bool("viz") {
			addr := fmt.Sprintf("%s:%d", cfg.Server.BindAddress, cfg.Server.BroadcastPort)
			httpSrv := &http.Server{Addr: addr, Handler: broadcastSrv.Handler()}
			go func() {
				if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					debug.LogBroadcast("broadcast listener error: %v\n", err)
				}
			}()
			defer httpSrv.Close()
		}

		return b.Run(ctx)
	},
}
