package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/arbor-dev/arbor/internal/config"
)

var statusCommand = &cli.Command{
	Name:      "status",
	Usage:     "report configuration and the last indexed snapshot's size",
	ArgsUsage: "[path]",
	Action: func(c *cli.Context) error {
		root, err := targetPath(c)
		if err != nil {
			return err
		}

		if !config.Exists(root) {
			fmt.Printf("%s: not initialized (run `arbor init`)\n", root)
			return nil
		}

		cfg, err := config.Load(root)
		if err != nil {
			return err
		}
		fmt.Printf("root: %s\n", root)
		fmt.Printf("languages: %v\n", cfg.Languages)
		fmt.Printf("query port: %d, broadcast port: %d, bind: %s\n",
			cfg.Server.QueryPort, cfg.Server.BroadcastPort, cfg.Server.BindAddress)
		fmt.Printf("debounce: %dms, watch mode: %v\n", cfg.Indexer.DebounceMs, cfg.Indexer.WatchMode)

		g, err := loadGraph(root)
		if err != nil {
			return err
		}
		stats := g.Stats()
		fmt.Printf("graph: %d nodes, %d edges, %d files\n", stats.NodeCount, stats.EdgeCount, stats.Files)
		return nil
	},
}
