package mcp

import (
	"context"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/abdidvp/archguard/internal/adapters/outbound/config"
)

const policyURI = "archguard://policy"

// registerResources registers all archguard MCP resources on the given server.
func registerResources(s *server.MCPServer, h *handlers) {
	s.AddResource(
		mcplib.NewResource(
			policyURI,
			"Guardrails Policy",
			mcplib.WithResourceDescription("Effective guardrails policy (edge rules, API bans and baselines, isolation rules)"),
			mcplib.WithMIMEType("application/yaml"),
		),
		h.handlePolicyResource,
	)
}

func (h *handlers) handlePolicyResource(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
	policy, err := h.loader.Load(h.root, h.configPath)
	if err != nil {
		return nil, fmt.Errorf("loading policy: %w", err)
	}

	data, err := config.Marshal(policy)
	if err != nil {
		return nil, fmt.Errorf("marshaling policy: %w", err)
	}

	return []mcplib.ResourceContents{
		mcplib.TextResourceContents{
			URI:      policyURI,
			MIMEType: "application/yaml",
			Text:     string(data),
		},
	}, nil
}
