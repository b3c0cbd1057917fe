package bridge

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/arbor-dev/arbor/internal/arborerrors"
	"github.com/arbor-dev/arbor/internal/debug"
	"github.com/arbor-dev/arbor/internal/graph"
	"github.com/arbor-dev/arbor/internal/version"
)

// Bridge is the stdin/stdout agent surface described by §4.7's "Agent
// bridge": a fixed two-tool catalogue (get_logic_path, analyze_impact)
// dispatched over JSON-RPC via the teacher's modelcontextprotocol/
// go-sdk wiring. OnFocus, if set, is called with the resolved node's
// id after every tool invocation so the caller can emit a FocusNode on
// the broadcast surface (spotlight).
type Bridge struct {
	shared  *graph.Shared
	server  *mcp.Server
	OnFocus func(nodeID string)
}

// New builds a Bridge over shared, registering both tools.
func New(shared *graph.Shared) *Bridge {
	b := &Bridge{shared: shared}
	b.server = mcp.NewServer(&mcp.Implementation{
		Name:    "arbor-bridge",
		Version: version.Version,
	}, nil)

	b.server.AddTool(&mcp.Tool{
		Name:        "get_logic_path",
		Description: "Traces the call graph to find dependencies and usage of a function or class.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"start_node": {Type: "string", Description: "Name or id of the function or class to trace"},
			},
			Required: []string{"start_node"},
		},
	}, b.handleGetLogicPath)

	b.server.AddTool(&mcp.Tool{
		Name:        "analyze_impact",
		Description: "Analyzes the impact (blast radius) of changing a specific node.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"node_id": {Type: "string", Description: "Id or name of the node to analyze"},
			},
			Required: []string{"node_id"},
		},
	}, b.handleAnalyzeImpact)

	return b
}

// Run serves requests over stdin/stdout until ctx is cancelled or the
// transport closes.
func (b *Bridge) Run(ctx context.Context) error {
	return b.server.Run(ctx, &mcp.StdioTransport{})
}

func (b *Bridge) handleGetLogicPath(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		StartNode string `json:"start_node"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
		return errorResult(arborerrors.NewProtocolError("get_logic_path", err.Error()))
	}
	return b.brief(args.StartNode)
}

func (b *Bridge) handleAnalyzeImpact(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		NodeID string `json:"node_id"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
		return errorResult(arborerrors.NewProtocolError("analyze_impact", err.Error()))
	}
	return b.brief(args.NodeID)
}

func (b *Bridge) brief(identifier string) (*mcp.CallToolResult, error) {
	var text string
	var resolveErr error
	var focusID string

	b.shared.Read(func(g *graph.Graph) {
		h, ok := ResolveNode(g, identifier)
		if !ok {
			resolveErr = arborerrors.NewInputMissingError("node", identifier)
			return
		}
		rendered, err := RenderBrief(g, h)
		if err != nil {
			resolveErr = err
			return
		}
		text = rendered
		if s, ok := g.Get(h); ok {
			focusID = s.ID
		}
	})

	if resolveErr != nil {
		debug.LogBridge("resolve failed for %q: %v\n", identifier, resolveErr)
		return errorResult(resolveErr)
	}

	if b.OnFocus != nil && focusID != "" {
		b.OnFocus(focusID)
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}, nil
}

func errorResult(err error) (*mcp.CallToolResult, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("error: %v", err)}},
		IsError: true,
	}, nil
}
