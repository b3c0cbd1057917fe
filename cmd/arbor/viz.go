package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/arbor-dev/arbor/internal/broadcast"
	"github.com/arbor-dev/arbor/internal/debug"
	"github.com/arbor-dev/arbor/internal/extract"
	"github.com/arbor-dev/arbor/internal/graph"
	"github.com/arbor-dev/arbor/internal/index"
	"github.com/arbor-dev/arbor/internal/project"
)

// vizCommand starts only the visualizer broadcast surface over a
// continuously updated graph. Where the visualizer's own UI is served
// from (a bundled static directory, a separate dev server, a CDN
// build) is deployment policy left unspecified; this command's job
// ends at producing the WebSocket endpoint the UI connects to.
var vizCommand = &cli.Command{
	Name:      "viz",
	Usage:     "serve the visualizer broadcast WebSocket for the target repository",
	ArgsUsage: "[path]",
	Action: func(c *cli.Context) error {
		root, err := targetPath(c)
		if err != nil {
			return err
		}
		cfg, err := loadOrInitConfig(root)
		if err != nil {
			return err
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

		addr := fmt.Sprintf("%s:%d", cfg.Server.BindAddress, cfg.Server.BroadcastPort)
		httpSrv := &http.Server{Addr: addr, Handler: broadcastSrv.Handler()}
		go func() {
			if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				debug.LogBroadcast("broadcast listener error: %v\n", err)
			}
		}()

		fmt.Printf("visualizer broadcast listening on ws://%s\n", addr)

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		<-sigCh
		return httpSrv.Close()
	},
}
