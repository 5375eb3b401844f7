package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/abdidvp/archguard/internal/domain"
)

// registerTools registers all archguard MCP tools on the given server.
func registerTools(s *server.MCPServer, h *handlers) {
	// 1. archguard_check
	s.AddTool(
		mcplib.NewTool("archguard_check",
			mcplib.WithDescription("Runs every architecture guardrail (dependency edges, API bans, isolation builds) and returns the report as JSON"),
			mcplib.WithString("group", mcplib.Description("Only return the named check group")),
		),
		h.handleCheck,
	)

	// 2. archguard_graph
	s.AddTool(
		mcplib.NewTool("archguard_graph",
			mcplib.WithDescription("Returns the workspace packages and their direct dependencies as JSON"),
		),
		h.handleGraph,
	)

	// 3. archguard_baseline_plan
	s.AddTool(
		mcplib.NewTool("archguard_baseline_plan",
			mcplib.WithDescription("Lists the API-ban baseline entries that can be lowered to current usage. Read-only; run `archguard baseline tighten` to apply"),
		),
		h.handleBaselinePlan,
	)
}

type checkResult struct {
	*domain.Report
	Passed bool `json:"passed"`
}

func (h *handlers) handleCheck(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	policy, err := h.loader.Load(h.root, h.configPath)
	if err != nil {
		return errorResult(fmt.Sprintf("loading policy failed: %v", err)), nil
	}

	report, err := h.svc.Run(ctx, h.root, policy)
	if err != nil {
		return errorResult(fmt.Sprintf("check failed: %v", err)), nil
	}

	if group, _ := request.GetArguments()["group"].(string); group != "" {
		filtered := &domain.Report{WorkspaceRoot: report.WorkspaceRoot, Commit: report.Commit}
		for _, g := range report.Groups {
			if g.Name == group {
				filtered.Groups = append(filtered.Groups, g)
			}
		}
		if len(filtered.Groups) == 0 {
			return errorResult(fmt.Sprintf("unknown check group %q", group)), nil
		}
		report = filtered
	}

	return jsonResult(checkResult{Report: report, Passed: !report.Failed()})
}

func (h *handlers) handleGraph(ctx context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	policy, err := h.loader.Load(h.root, h.configPath)
	if err != nil {
		return errorResult(fmt.Sprintf("loading policy failed: %v", err)), nil
	}

	graph, err := h.svc.LoadGraph(ctx, h.root, policy)
	if err != nil {
		return errorResult(fmt.Sprintf("graph failed: %v", err)), nil
	}

	pkgs := make([]domain.Package, 0, len(graph.Packages))
	for _, name := range graph.Names() {
		p, _ := graph.Lookup(name)
		pkgs = append(pkgs, p)
	}
	return jsonResult(pkgs)
}

func (h *handlers) handleBaselinePlan(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	policy, err := h.loader.Load(h.root, h.configPath)
	if err != nil {
		return errorResult(fmt.Sprintf("loading policy failed: %v", err)), nil
	}

	_, changes, err := h.ratchet.Tighten(h.root, policy)
	if err != nil {
		return errorResult(fmt.Sprintf("baseline plan failed: %v", err)), nil
	}

	return jsonResult(domain.RatchetPlan{Changes: changes})
}

// jsonResult marshals v as indented JSON text content.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// errorResult returns an error content result.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
