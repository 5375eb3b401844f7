package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abdidvp/archguard/internal/adapters/outbound/tui"
	"github.com/abdidvp/archguard/internal/domain"
)

func newGraphCmd(opts *options) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Show the workspace dependency graph",
		Long:  "Load the direct dependency graph of the workspace and mark the edges the policy forbids or requires.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := opts.openWorkspace()
			if err != nil {
				return err
			}
			policy, err := ws.policy()
			if err != nil {
				return err
			}

			graph, err := ws.svc.LoadGraph(cmd.Context(), ws.root, policy)
			if err != nil {
				return err
			}

			if jsonOutput {
				return renderGraphJSON(cmd, graph)
			}

			fmt.Fprint(cmd.OutOrStdout(), tui.RenderGraph(graph, policy))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

func renderGraphJSON(cmd *cobra.Command, graph *domain.DependencyGraph) error {
	pkgs := make([]domain.Package, 0, len(graph.Packages))
	for _, name := range graph.Names() {
		p, _ := graph.Lookup(name)
		pkgs = append(pkgs, p)
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(pkgs)
}
