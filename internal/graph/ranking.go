package graph

// RankingOptions configures the PageRank-style centrality computation.
type RankingOptions struct {
	Iterations int
	Damping    float64
}

// DefaultRankingOptions matches the spec's defaults: 20 iterations,
// damping 0.85.
func DefaultRankingOptions() RankingOptions {
	return RankingOptions{Iterations: 20, Damping: 0.85}
}

// ComputeCentrality computes eigenvector-based (PageRank) centrality
// over the graph's current node/edge set. It is pure read-only with
// respect to the graph: callers invoke it under a read lock and write
// the result back via SetCentrality under a write lock.
func ComputeCentrality(g *Graph, opts RankingOptions) map[NodeHandle]float64 {
	handles := g.Handles()
	n := len(handles)
	if n == 0 {
		return map[NodeHandle]float64{}
	}

	outDegree := make(map[NodeHandle]int, n)
	for _, h := range handles {
		outDegree[h] = len(g.outgoing[h])
	}

	score := make(map[NodeHandle]float64, n)
	init := 1.0 / float64(n)
	for _, h := range handles {
		score[h] = init
	}

	d := opts.Damping
	base := (1 - d) / float64(n)

	for iter := 0; iter < opts.Iterations; iter++ {
		next := make(map[NodeHandle]float64, n)
		for _, h := range handles {
			next[h] = base
		}

		var danglingMass float64
		for _, h := range handles {
			if outDegree[h] == 0 {
				danglingMass += score[h]
				continue
			}
			share := d * score[h] / float64(outDegree[h])
			for _, rec := range g.outgoing[h] {
				next[rec.to] += share
			}
		}

		if danglingMass > 0 {
			per := d * danglingMass / float64(n)
			for _, h := range handles {
				next[h] += per
			}
		}

		score = next
	}

	return score
}
