package graph

import (
	"math"
	"sort"
	"time"
)

// ImpactSeverity classifies an affected node by hop distance from the
// target. Never construct directly — always derive via severityFromHops.
type ImpactSeverity int

const (
	SeverityDirect ImpactSeverity = iota
	SeverityTransitive
	SeverityDistant
)

func (s ImpactSeverity) String() string {
	switch s {
	case SeverityDirect:
		return "direct"
	case SeverityTransitive:
		return "transitive"
	default:
		return "distant"
	}
}

// severityFromHops derives severity from hop distance: 0-1 Direct,
// 2-3 Transitive, 4+ Distant.
func severityFromHops(hops int) ImpactSeverity {
	switch {
	case hops <= 1:
		return SeverityDirect
	case hops <= 3:
		return SeverityTransitive
	default:
		return SeverityDistant
	}
}

// ImpactDirection distinguishes callers-of-target from target's-callees.
type ImpactDirection string

const (
	DirectionUpstream   ImpactDirection = "upstream"
	DirectionDownstream ImpactDirection = "downstream"
)

// AffectedNode is one node reached during a blast-radius traversal.
type AffectedNode struct {
	NodeInfo    NodeInfo
	Severity    ImpactSeverity
	HopDistance int
	EntryEdge   EdgeKind
	Direction   ImpactDirection
}

// ImpactAnalysis is the full result of analyze_impact.
type ImpactAnalysis struct {
	Target        NodeInfo
	Upstream      []AffectedNode
	Downstream    []AffectedNode
	TotalAffected int
	MaxDepth      int
	QueryTimeMs   int64
}

// AnalyzeImpact performs bidirectional BFS blast-radius analysis from
// target. maxDepth == 0 means unbounded.
func (g *Graph) AnalyzeImpact(target NodeHandle, maxDepth int) ImpactAnalysis {
	start := time.Now()

	targetInfo, ok := g.NodeInfo(target)
	if !ok {
		return ImpactAnalysis{MaxDepth: maxDepth}
	}

	effectiveDepth := maxDepth
	if effectiveDepth == 0 {
		effectiveDepth = math.MaxInt32
	}

	upstream := g.bfsImpact(target, true, effectiveDepth)
	downstream := g.bfsImpact(target, false, effectiveDepth)

	return ImpactAnalysis{
		Target:        targetInfo,
		Upstream:      upstream,
		Downstream:    downstream,
		TotalAffected: len(upstream) + len(downstream),
		MaxDepth:      maxDepth,
		QueryTimeMs:   time.Since(start).Milliseconds(),
	}
}

type bfsEntry struct {
	handle    NodeHandle
	depth     int
	entryEdge EdgeKind
}

// bfsImpact performs one directional BFS: incoming edges (upstream,
// callers of target) or outgoing edges (downstream, target's callees).
func (g *Graph) bfsImpact(target NodeHandle, incoming bool, maxDepth int) []AffectedNode {
	var result []AffectedNode
	visited := map[NodeHandle]bool{target: true}
	entryEdges := make(map[NodeHandle]EdgeKind)

	neighbors := func(h NodeHandle) []struct {
		other NodeHandle
		kind  EdgeKind
	} {
		var out []struct {
			other NodeHandle
			kind  EdgeKind
		}
		if incoming {
			for _, rec := range g.incoming[h] {
				out = append(out, struct {
					other NodeHandle
					kind  EdgeKind
				}{rec.from, rec.edge.Kind})
			}
		} else {
			for _, rec := range g.outgoing[h] {
				out = append(out, struct {
					other NodeHandle
					kind  EdgeKind
				}{rec.to, rec.edge.Kind})
			}
		}
		return out
	}

	var queue []bfsEntry
	for _, nb := range neighbors(target) {
		if !visited[nb.other] {
			queue = append(queue, bfsEntry{nb.other, 1, nb.kind})
			if _, seen := entryEdges[nb.other]; !seen {
				entryEdges[nb.other] = nb.kind
			}
		}
	}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if cur.depth > maxDepth || visited[cur.handle] {
			continue
		}
		visited[cur.handle] = true

		if info, ok := g.NodeInfo(cur.handle); ok {
			direction := DirectionDownstream
			if incoming {
				direction = DirectionUpstream
			}
			result = append(result, AffectedNode{
				NodeInfo:    info,
				Severity:    severityFromHops(cur.depth),
				HopDistance: cur.depth,
				EntryEdge:   cur.entryEdge,
				Direction:   direction,
			})
		}

		if cur.depth < maxDepth {
			for _, nb := range neighbors(cur.handle) {
				if visited[nb.other] {
					continue
				}
				next := cur.entryEdge
				if e, seen := entryEdges[nb.other]; seen {
					next = e
				} else {
					entryEdges[nb.other] = nb.kind
				}
				queue = append(queue, bfsEntry{nb.other, cur.depth + 1, next})
			}
		}
	}

	sortAffected(result)
	return result
}

func sortAffected(nodes []AffectedNode) {
	sort.Slice(nodes, func(i, j int) bool {
		a, b := nodes[i], nodes[j]
		if a.Severity != b.Severity {
			return a.Severity < b.Severity
		}
		if a.HopDistance != b.HopDistance {
			return a.HopDistance < b.HopDistance
		}
		return a.NodeInfo.ID < b.NodeInfo.ID
	})
}

// AllAffected returns upstream+downstream sorted by (severity, hop, id).
func (ia ImpactAnalysis) AllAffected() []AffectedNode {
	all := make([]AffectedNode, 0, len(ia.Upstream)+len(ia.Downstream))
	all = append(all, ia.Upstream...)
	all = append(all, ia.Downstream...)
	sortAffected(all)
	return all
}
