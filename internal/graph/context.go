package graph

import (
	"sort"
	"time"
)

// TruncationReason explains why context slicing stopped growing.
type TruncationReason string

const (
	TruncationBudget       TruncationReason = "Budget"
	TruncationDepthReached TruncationReason = "DepthReached"
	TruncationExhausted    TruncationReason = "Exhausted"
)

// ContextNode is one node included in a context slice.
type ContextNode struct {
	NodeInfo      NodeInfo
	Depth         int
	TokenEstimate int
	Pinned        bool
}

// ContextSlice is the result of slice_context.
type ContextSlice struct {
	Target           NodeInfo
	Nodes            []ContextNode
	TotalTokens      int
	MaxTokens        int
	TruncationReason TruncationReason
	QueryTimeMs      int64
}

func estimateTokens(s *Symbol) int {
	lines := s.LineEnd - s.LineStart
	if lines < 0 {
		lines = 0
	}
	return lines * 40 / 4
}

// SliceContext builds a token-budgeted neighborhood around target,
// seeding with the target itself, then expanding outward (both
// directions) in order of decreasing centrality, honoring pinned
// kinds that are included regardless of budget.
func (g *Graph) SliceContext(target NodeHandle, maxTokens, maxDepth int, pinnedKinds map[SymbolKind]bool) ContextSlice {
	start := time.Now()

	targetSym, ok := g.Get(target)
	if !ok {
		return ContextSlice{MaxTokens: maxTokens}
	}
	targetInfo, _ := g.NodeInfo(target)

	type candidate struct {
		handle NodeHandle
		depth  int
	}

	visited := map[NodeHandle]bool{target: true}
	var frontier []candidate

	enqueueNeighbors := func(h NodeHandle, depth int) {
		for _, rec := range g.outgoing[h] {
			if !visited[rec.to] {
				frontier = append(frontier, candidate{rec.to, depth})
			}
		}
		for _, rec := range g.incoming[h] {
			if !visited[rec.from] {
				frontier = append(frontier, candidate{rec.from, depth})
			}
		}
	}

	nodes := []ContextNode{{
		NodeInfo:      targetInfo,
		Depth:         0,
		TokenEstimate: estimateTokens(targetSym),
		Pinned:        pinnedKinds[targetSym.Kind],
	}}
	totalTokens := nodes[0].TokenEstimate

	enqueueNeighbors(target, 1)
	depthReached := false
	exhausted := false
	reason := TruncationExhausted

	for depth := 1; depth <= maxDepth || maxDepth == 0; depth++ {
		var thisLevel []candidate
		var nextFrontier []candidate
		for _, c := range frontier {
			if c.depth == depth {
				thisLevel = append(thisLevel, c)
			} else {
				nextFrontier = append(nextFrontier, c)
			}
		}
		frontier = nextFrontier

		if len(thisLevel) == 0 {
			if len(frontier) == 0 {
				exhausted = true
				break
			}
			continue
		}

		// Dedup and sort by decreasing centrality as traversal priority.
		seen := map[NodeHandle]bool{}
		unique := thisLevel[:0]
		for _, c := range thisLevel {
			if visited[c.handle] || seen[c.handle] {
				continue
			}
			seen[c.handle] = true
			unique = append(unique, c)
		}
		sort.Slice(unique, func(i, j int) bool {
			return g.Centrality(unique[i].handle) > g.Centrality(unique[j].handle)
		})

		budgetHit := false
		for _, c := range unique {
			if visited[c.handle] {
				continue
			}
			visited[c.handle] = true
			sym, ok := g.Get(c.handle)
			if !ok {
				continue
			}
			info, _ := g.NodeInfo(c.handle)
			pinned := pinnedKinds[sym.Kind]
			tokens := estimateTokens(sym)

			if !pinned && totalTokens+tokens > maxTokens {
				budgetHit = true
				continue
			}

			totalTokens += tokens
			nodes = append(nodes, ContextNode{
				NodeInfo:      info,
				Depth:         c.depth,
				TokenEstimate: tokens,
				Pinned:        pinned,
			})
			enqueueNeighbors(c.handle, c.depth+1)
		}

		if budgetHit {
			reason = TruncationBudget
			break
		}

		if maxDepth != 0 && depth == maxDepth {
			depthReached = true
			break
		}
	}

	if depthReached {
		reason = TruncationDepthReached
	} else if exhausted {
		reason = TruncationExhausted
	}

	return ContextSlice{
		Target:           targetInfo,
		Nodes:            nodes,
		TotalTokens:      totalTokens,
		MaxTokens:        maxTokens,
		TruncationReason: reason,
		QueryTimeMs:      time.Since(start).Milliseconds(),
	}
}
