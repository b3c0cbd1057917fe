package main

import (
	"fmt"
	"sort"

	"github.com/urfave/cli/v2"

	"github.com/arbor-dev/arbor/pkg/pathutil"
)

var queryCommand = &cli.Command{
	Name:      "query",
	Usage:     "search the indexed graph by name or qualified name",
	ArgsUsage: "<text>",
	Flags: []cli.Flag{
		&cli.IntFlag{Name: "limit", Value: 20, Usage: "maximum number of results"},
	},
	Action: func(c *cli.Context) error {
		text := c.Args().First()
		if text == "" {
			return fmt.Errorf("query requires search text")
		}
		root, err := resolveAbs(".")
		if err != nil {
			return err
		}
		g, err := loadGraph(root)
		if err != nil {
			return err
		}

		matches := g.Search(text)
		sort.Slice(matches, func(i, j int) bool {
			hi, _ := g.GetIndex(matches[i].ID)
			hj, _ := g.GetIndex(matches[j].ID)
			return g.Centrality(hi) > g.Centrality(hj)
		})

		limit := c.Int("limit")
		for i, s := range matches {
			if i >= limit {
				break
			}
			h, _ := g.GetIndex(s.ID)
			fmt.Printf("%-6.3f  %-10s  %s  (%s:%d)\n", g.Centrality(h), s.Kind, s.Name, pathutil.ToRelative(s.File, root), s.LineStart)
		}
		if len(matches) == 0 {
			fmt.Println("no matches")
		}
		return nil
	},
}
