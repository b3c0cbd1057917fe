package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/urfave/cli/v2"

	"github.com/arbor-dev/arbor/internal/arborerrors"
	"github.com/arbor-dev/arbor/internal/bridge"
	"github.com/arbor-dev/arbor/pkg/pathutil"
)

// explainCommand treats its question as a discover query, takes the
// top hit, and slices a token-budgeted neighborhood around it the
// same way the query RPC's context method does, rendering the result
// as the agent bridge's Markdown brief or, with --json, the raw
// ContextSlice.
var explainCommand = &cli.Command{
	Name:      "explain",
	Usage:     "resolve <question> to a node and render its token-budgeted context",
	ArgsUsage: "<question>",
	Flags: []cli.Flag{
		&cli.IntFlag{Name: "tokens", Value: 4000, Usage: "context token budget"},
		&cli.BoolFlag{Name: "why", Usage: "also print why each node was included or pinned"},
		&cli.BoolFlag{Name: "json", Usage: "emit the raw context slice instead of a Markdown brief"},
	},
	Action: func(c *cli.Context) error {
		question := c.Args().First()
		if question == "" {
			return fmt.Errorf("explain requires a question")
		}
		root, err := resolveAbs(".")
		if err != nil {
			return err
		}
		g, err := loadGraph(root)
		if err != nil {
			return err
		}

		matches := g.Search(question)
		if len(matches) == 0 {
			return arborerrors.NewInputMissingError("node", question)
		}
		sort.Slice(matches, func(i, j int) bool {
			hi, _ := g.GetIndex(matches[i].ID)
			hj, _ := g.GetIndex(matches[j].ID)
			return g.Centrality(hi) > g.Centrality(hj)
		})
		h, ok := g.GetIndex(matches[0].ID)
		if !ok {
			return arborerrors.NewInputMissingError("node", question)
		}

		slice := g.SliceContext(h, c.Int("tokens"), 0, nil)

		if c.Bool("json") {
			return json.NewEncoder(os.Stdout).Encode(slice)
		}

		brief, err := bridge.RenderBrief(g, h)
		if err != nil {
			return err
		}
		fmt.Println(brief)

		if c.Bool("why") {
			fmt.Printf("context: %d/%d tokens, truncated by %s, %dms\n\n",
				slice.TotalTokens, slice.MaxTokens, slice.TruncationReason, slice.QueryTimeMs)
			for _, n := range slice.Nodes {
				pinned := ""
				if n.Pinned {
					pinned = " pinned"
				}
				fmt.Printf("  depth %d  ~%d tok%s  %s  %s\n", n.Depth, n.TokenEstimate, pinned, n.NodeInfo.Name, pathutil.ToRelative(n.NodeInfo.File, root))
			}
		}
		return nil
	},
}
