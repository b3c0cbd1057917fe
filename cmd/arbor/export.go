package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/arbor-dev/arbor/internal/project"
)

var exportCommand = &cli.Command{
	Name:      "export",
	Usage:     "write the graph export document to stdout or a file",
	ArgsUsage: "[path]",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "write to this file instead of stdout"},
	},
	Action: func(c *cli.Context) error {
		root, err := targetPath(c)
		if err != nil {
			return err
		}
		g, err := loadGraph(root)
		if err != nil {
			return err
		}

		doc := project.Export(g)
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return err
		}

		if out := c.String("output"); out != "" {
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return err
			}
			fmt.Printf("wrote export to %s\n", out)
			return nil
		}
		fmt.Println(string(data))
		return nil
	},
}
