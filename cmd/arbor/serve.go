package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/arbor-dev/arbor/internal/server"
)

var serveCommand = &cli.Command{
	Name:      "serve",
	Usage:     "run the query RPC and broadcast WebSocket surfaces over a live, incrementally-updated graph",
	ArgsUsage: "[path]",
	Flags: []cli.Flag{
		&cli.IntFlag{Name: "port", Usage: "override the query RPC port"},
		&cli.BoolFlag{Name: "headless", Usage: "bind to all interfaces instead of loopback"},
	},
	Action: func(c *cli.Context) error {
		root, err := targetPath(c)
		if err != nil {
			return err
		}
		cfg, err := loadOrInitConfig(root)
		if err != nil {
			return err
		}
		if port := c.Int("port"); port != 0 {
			cfg.Server.QueryPort = port
		}

		srv, err := server.New(root, cfg, c.Bool("headless"))
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		if err := srv.Start(ctx); err != nil {
			return err
		}
		fmt.Printf("arbor serving %s\n", root)

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		<-sigCh
		fmt.Println("\nshutting down...")

		stopCtx, stopCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer stopCancel()
		return srv.Stop(stopCtx)
	},
}
