package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/arbor-dev/arbor/internal/debug"
	"github.com/arbor-dev/arbor/internal/version"
)

func main() {
	app := &cli.App{
		Name:                   "arbor",
		Usage:                  "code-intelligence graph server for AI coding agents",
		Version:                version.Version,
		UseShortOptionHandling: true,
		Commands: []*cli.Command{
			initCommand,
			indexCommand,
			queryCommand,
			serveCommand,
			vizCommand,
			bridgeCommand,
			statusCommand,
			exportCommand,
			refactorCommand,
			explainCommand,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "arbor:", err)
		os.Exit(1)
	}
}

// targetPath returns the positional path argument, defaulting to the
// current directory.
func targetPath(c *cli.Context) (string, error) {
	root := c.Args().First()
	if root == "" {
		root = "."
	}
	abs, err := resolveAbs(root)
	if err != nil {
		return "", fmt.Errorf("resolving path %q: %w", root, err)
	}
	return abs, nil
}

func init() {
	debug.SetBridgeMode(false)
}
