package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/arbor-dev/arbor/internal/config"
	"github.com/arbor-dev/arbor/internal/project"
	"github.com/arbor-dev/arbor/internal/snapshot"
)

// snapshotDir is where the badger-backed snapshot store lives under
// an initialized repository's .arbor directory.
func snapshotDir(root string) string {
	return filepath.Join(config.Dir(root), "snapshot")
}

var indexCommand = &cli.Command{
	Name:      "index",
	Usage:     "build the code graph and persist it to the snapshot store",
	ArgsUsage: "[path]",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "also write the graph export to this file"},
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

		result, err := project.Build(root, cfg)
		if err != nil {
			return err
		}
		fmt.Printf("indexed %s: %d files, %d nodes, %d edges\n",
			root, result.FilesSeen, result.Graph.NodeCount(), result.Graph.EdgeCount())
		for _, e := range result.Errors {
			fmt.Fprintf(os.Stderr, "warning: %v\n", e)
		}

		store, err := snapshot.Open(snapshotDir(root))
		if err != nil {
			return fmt.Errorf("opening snapshot store: %w", err)
		}
		defer store.Close()
		if err := store.Save(result.Graph); err != nil {
			return fmt.Errorf("saving snapshot: %w", err)
		}

		if out := c.String("output"); out != "" {
			doc := project.Export(result.Graph)
			data, err := json.MarshalIndent(doc, "", "  ")
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return err
			}
			fmt.Printf("wrote export to %s\n", out)
		}

		return nil
	},
}

// loadOrInitConfig loads the repository's config, initializing a
// default one if none exists yet.
func loadOrInitConfig(root string) (*config.Config, error) {
	if config.Exists(root) {
		return config.Load(root)
	}
	return project.Init(root, false)
}
