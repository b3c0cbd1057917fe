package rpc

import (
	"encoding/json"
	"sort"

	"github.com/arbor-dev/arbor/internal/arborerrors"
	"github.com/arbor-dev/arbor/internal/graph"
	"github.com/arbor-dev/arbor/internal/version"
)

// dispatch runs one already-parsed Request against shared and returns
// its Response. Coded errors (arborerrors) are translated to their
// wire code; anything else becomes an application error per §4.7.
func dispatch(shared *graph.Shared, languages []string, req Request) Response {
	switch req.Method {
	case "graph.info":
		return graphInfo(shared, languages, req.ID)
	case "discover":
		return discover(shared, req)
	case "impact":
		return impact(shared, req)
	case "context":
		return contextMethod(shared, req)
	case "search":
		return search(shared, req)
	case "node.get":
		return nodeGet(shared, req)
	default:
		return errorResponse(req.ID, codeMethodNotFound, "method not found: "+req.Method)
	}
}

func coded(req Request, err error) Response {
	if c, ok := err.(arborerrors.Coded); ok {
		return errorResponse(req.ID, c.Code(), c.Error())
	}
	return errorResponse(req.ID, -32001, err.Error())
}

func graphInfo(shared *graph.Shared, languages []string, id interface{}) Response {
	var stats graph.Stats
	shared.Read(func(g *graph.Graph) { stats = g.Stats() })
	return resultResponse(id, map[string]interface{}{
		"stats":     stats,
		"languages": languages,
		"version":   version.Version,
	})
}

type discoverParams struct {
	Query string `json:"query"`
	Limit int    `json:"limit"`
}

func discover(shared *graph.Shared, req Request) Response {
	var p discoverParams
	if err := json.Unmarshal(req.Params, &p); err != nil {
		return errorResponse(req.ID, codeInvalidParams, "invalid params: "+err.Error())
	}
	if p.Limit <= 0 {
		p.Limit = 20
	}

	var results []graph.NodeInfo
	shared.Read(func(g *graph.Graph) {
		matches := g.Search(p.Query)
		sort.Slice(matches, func(i, j int) bool {
			hi, _ := g.GetIndex(matches[i].ID)
			hj, _ := g.GetIndex(matches[j].ID)
			return g.Centrality(hi) > g.Centrality(hj)
		})
		for i, s := range matches {
			if i >= p.Limit {
				break
			}
			if h, ok := g.GetIndex(s.ID); ok {
				if info, ok := g.NodeInfo(h); ok {
					results = append(results, info)
				}
			}
		}
	})
	return resultResponse(req.ID, results)
}

type impactParams struct {
	Node  string `json:"node"`
	Depth int    `json:"depth"`
}

func impact(shared *graph.Shared, req Request) Response {
	var p impactParams
	if err := json.Unmarshal(req.Params, &p); err != nil {
		return errorResponse(req.ID, codeInvalidParams, "invalid params: "+err.Error())
	}

	var result *graph.ImpactAnalysis
	var resolveErr error
	shared.Read(func(g *graph.Graph) {
		h, ok := resolveHandle(g, p.Node)
		if !ok {
			resolveErr = arborerrors.NewInputMissingError("node", p.Node)
			return
		}
		analysis := g.AnalyzeImpact(h, p.Depth)
		result = &analysis
	})
	if resolveErr != nil {
		return coded(req, resolveErr)
	}
	return resultResponse(req.ID, result)
}

type contextParams struct {
	Task      string `json:"task"`
	MaxTokens int    `json:"maxTokens"`
}

func contextMethod(shared *graph.Shared, req Request) Response {
	var p contextParams
	if err := json.Unmarshal(req.Params, &p); err != nil {
		return errorResponse(req.ID, codeInvalidParams, "invalid params: "+err.Error())
	}
	if p.MaxTokens <= 0 {
		p.MaxTokens = 4000
	}

	var result *graph.ContextSlice
	var resolveErr error
	shared.Read(func(g *graph.Graph) {
		matches := g.Search(p.Task)
		if len(matches) == 0 {
			resolveErr = arborerrors.NewInputMissingError("node", p.Task)
			return
		}
		h, ok := g.GetIndex(matches[0].ID)
		if !ok {
			resolveErr = arborerrors.NewInputMissingError("node", p.Task)
			return
		}
		slice := g.SliceContext(h, p.MaxTokens, 0, nil)
		result = &slice
	})
	if resolveErr != nil {
		return coded(req, resolveErr)
	}
	return resultResponse(req.ID, result)
}

type searchParams struct {
	Query string           `json:"query"`
	Kind  graph.SymbolKind `json:"kind,omitempty"`
	Limit int              `json:"limit"`
}

func search(shared *graph.Shared, req Request) Response {
	var p searchParams
	if err := json.Unmarshal(req.Params, &p); err != nil {
		return errorResponse(req.ID, codeInvalidParams, "invalid params: "+err.Error())
	}
	if p.Limit <= 0 {
		p.Limit = 20
	}

	var results []graph.NodeInfo
	shared.Read(func(g *graph.Graph) {
		matches := g.Search(p.Query)
		for _, s := range matches {
			if p.Kind != "" && s.Kind != p.Kind {
				continue
			}
			if len(results) >= p.Limit {
				break
			}
			if h, ok := g.GetIndex(s.ID); ok {
				if info, ok := g.NodeInfo(h); ok {
					results = append(results, info)
				}
			}
		}
	})
	return resultResponse(req.ID, results)
}

type nodeGetParams struct {
	ID string `json:"id"`
}

type nodeGetResult struct {
	Node     graph.NodeInfo `json:"node"`
	CalledBy []string       `json:"calledBy"`
	Calls    []string       `json:"calls"`
}

func nodeGet(shared *graph.Shared, req Request) Response {
	var p nodeGetParams
	if err := json.Unmarshal(req.Params, &p); err != nil {
		return errorResponse(req.ID, codeInvalidParams, "invalid params: "+err.Error())
	}

	var result *nodeGetResult
	var resolveErr error
	shared.Read(func(g *graph.Graph) {
		h, ok := g.GetIndex(p.ID)
		if !ok {
			resolveErr = arborerrors.NewInputMissingError("node", p.ID)
			return
		}
		info, _ := g.NodeInfo(h)
		res := nodeGetResult{Node: info}
		for _, s := range g.GetCallers(h) {
			res.CalledBy = append(res.CalledBy, s.ID)
		}
		for _, s := range g.GetCallees(h) {
			res.Calls = append(res.Calls, s.ID)
		}
		result = &res
	})
	if resolveErr != nil {
		return coded(req, resolveErr)
	}
	return resultResponse(req.ID, result)
}

func resolveHandle(g *graph.Graph, identifier string) (graph.NodeHandle, bool) {
	if h, ok := g.GetIndex(identifier); ok {
		return h, true
	}
	candidates := g.FindByName(identifier)
	if len(candidates) == 0 {
		return 0, false
	}
	return g.GetIndex(candidates[0].ID)
}
