package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/abdidvp/archguard/internal/application"
	"github.com/abdidvp/archguard/internal/domain"
)

// NewArchguardMCPServer creates an MCP server exposing the guardrails
// checks for the workspace at root. The policy is reloaded on every call so
// edits to the policy file are picked up without a restart.
func NewArchguardMCPServer(
	root, configPath string,
	loader domain.PolicyLoader,
	svc *application.CheckService,
	ratchet *application.RatchetService,
) *server.MCPServer {
	s := server.NewMCPServer(
		"archguard",
		"0.1.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	h := &handlers{root: root, configPath: configPath, loader: loader, svc: svc, ratchet: ratchet}
	registerTools(s, h)
	registerResources(s, h)

	return s
}

type handlers struct {
	root       string
	configPath string
	loader     domain.PolicyLoader
	svc        *application.CheckService
	ratchet    *application.RatchetService
}
