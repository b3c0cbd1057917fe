package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/hbollon/go-edlib"
	"github.com/urfave/cli/v2"

	"github.com/arbor-dev/arbor/internal/arborerrors"
	"github.com/arbor-dev/arbor/internal/graph"
	"github.com/arbor-dev/arbor/pkg/pathutil"
)

var refactorCommand = &cli.Command{
	Name:      "refactor",
	Usage:     "resolve <target> to a node and render its blast radius",
	ArgsUsage: "<target>",
	Flags: []cli.Flag{
		&cli.IntFlag{Name: "depth", Value: 5, Usage: "maximum BFS hop distance"},
		&cli.BoolFlag{Name: "why", Usage: "also print each affected node's entry edge kind"},
		&cli.BoolFlag{Name: "json", Usage: "emit raw JSON instead of a rendered report"},
	},
	Action: func(c *cli.Context) error {
		target := c.Args().First()
		if target == "" {
			return fmt.Errorf("refactor requires a target")
		}
		root, err := resolveAbs(".")
		if err != nil {
			return err
		}
		g, err := loadGraph(root)
		if err != nil {
			return err
		}

		candidates := g.Search(target)
		if len(candidates) == 0 {
			return arborerrors.NewInputMissingError("node", target)
		}

		if len(candidates) > 1 && !c.Bool("json") {
			exact := bestMatch(target, candidates)
			if exact == nil {
				names := make([]string, 0, len(candidates))
				for _, s := range candidates {
					names = append(names, s.Name)
				}
				return fmt.Errorf("%q is ambiguous across %d candidates: %v (use --json to see them all)",
					target, len(candidates), names)
			}
			candidates = []*graph.Symbol{exact}
		}
		if len(candidates) > 1 {
			if err := json.NewEncoder(os.Stdout).Encode(candidates); err != nil {
				return err
			}
			return nil
		}

		h, ok := g.GetIndex(candidates[0].ID)
		if !ok {
			return arborerrors.NewInputMissingError("node", target)
		}

		analysis := g.AnalyzeImpact(h, c.Int("depth"))

		if c.Bool("json") {
			return json.NewEncoder(os.Stdout).Encode(analysis)
		}

		renderImpact(analysis, root, c.Bool("why"))
		return nil
	},
}

// bestMatch picks the single candidate whose name is most similar to
// target by Jaro-Winkler similarity, or nil if that best score is below
// 0.85. The runner-up's score is not consulted; among equal scores the
// first candidate wins.
func bestMatch(target string, candidates []*graph.Symbol) *graph.Symbol {
	type scored struct {
		sym   *graph.Symbol
		score float32
	}
	scores := make([]scored, 0, len(candidates))
	for _, s := range candidates {
		sim, err := edlib.StringsSimilarity(target, s.Name, edlib.JaroWinkler)
		if err != nil {
			continue
		}
		scores = append(scores, scored{sym: s, score: sim})
	}
	if len(scores) == 0 {
		return nil
	}
	best := scores[0]
	for _, s := range scores[1:] {
		if s.score > best.score {
			best = s
		}
	}
	if best.score < 0.85 {
		return nil
	}
	return best.sym
}

func renderImpact(analysis graph.ImpactAnalysis, root string, why bool) {
	fmt.Printf("target: %s (%s) in %s\n", analysis.Target.Name, analysis.Target.Kind, pathutil.ToRelative(analysis.Target.File, root))
	fmt.Printf("total affected: %d (depth %d, %dms)\n\n", analysis.TotalAffected, analysis.MaxDepth, analysis.QueryTimeMs)

	printAffected("downstream (target depends on)", analysis.Downstream, root, why)
	printAffected("upstream (depends on target)", analysis.Upstream, root, why)
}

func printAffected(label string, nodes []graph.AffectedNode, root string, why bool) {
	fmt.Printf("%s:\n", label)
	if len(nodes) == 0 {
		fmt.Println("  none")
		return
	}
	for _, n := range nodes {
		file := pathutil.ToRelative(n.NodeInfo.File, root)
		if why {
			fmt.Printf("  [%s] hop %d  %s  (via %s)  %s\n", n.Severity, n.HopDistance, n.NodeInfo.Name, n.EntryEdge, file)
		} else {
			fmt.Printf("  [%s] hop %d  %s  %s\n", n.Severity, n.HopDistance, n.NodeInfo.Name, file)
		}
	}
}
