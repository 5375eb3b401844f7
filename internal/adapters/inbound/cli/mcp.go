package cli

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	mcpadapter "github.com/abdidvp/archguard/internal/adapters/inbound/mcp"
	"github.com/abdidvp/archguard/internal/adapters/outbound/scanner"
	"github.com/abdidvp/archguard/internal/application"
)

func newMCPCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server commands",
		Long:  "Commands for running the archguard MCP (Model Context Protocol) server.",
	}
	cmd.AddCommand(newMCPServeCmd(opts))
	return cmd
}

func newMCPServeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start archguard MCP server (stdio)",
		Long:  "Start the archguard MCP server using stdio transport so coding assistants can run the guardrails and read the policy.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := opts.openWorkspace()
			if err != nil {
				return err
			}
			ratchet := application.NewRatchetService(scanner.New())
			s := mcpadapter.NewArchguardMCPServer(ws.root, ws.configPath, ws.loader, ws.svc, ratchet)
			return server.ServeStdio(s)
		},
	}
}
