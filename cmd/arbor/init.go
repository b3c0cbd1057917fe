package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/arbor-dev/arbor/internal/project"
)

var initCommand = &cli.Command{
	Name:      "init",
	Usage:     "write a fresh .arbor/config.json for the target repository",
	ArgsUsage: "[path]",
	Action: func(c *cli.Context) error {
		root, err := targetPath(c)
		if err != nil {
			return err
		}
		if project.Detect(root) {
			fmt.Printf("already initialized: %s\n", root)
			return nil
		}
		cfg, err := project.Init(root, false)
		if err != nil {
			return err
		}
		fmt.Printf("initialized %s\n", root)
		fmt.Printf("languages: %v\n", cfg.Languages)
		fmt.Printf("query port %d, broadcast port %d\n", cfg.Server.QueryPort, cfg.Server.BroadcastPort)
		return nil
	},
}
