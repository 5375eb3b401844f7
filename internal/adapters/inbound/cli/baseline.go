package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abdidvp/archguard/internal/adapters/outbound/config"
	"github.com/abdidvp/archguard/internal/adapters/outbound/scanner"
	"github.com/abdidvp/archguard/internal/application"
	"github.com/abdidvp/archguard/internal/domain"
)

func newBaselineCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "baseline",
		Short: "Manage API-ban baselines",
	}
	cmd.AddCommand(newBaselineTightenCmd(opts))
	return cmd
}

func newBaselineTightenCmd(opts *options) *cobra.Command {
	var (
		dryRun     bool
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "tighten",
		Short: "Lower API-ban baselines to current usage",
		Long: "Scan every API-ban group and lower each baseline entry to the number of matches left in the tree. " +
			"Entries for files that no longer use the token are removed. Baselines are never raised. " +
			"The policy file is rewritten unless --dry-run is given.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := opts.openWorkspace()
			if err != nil {
				return err
			}
			policy, err := ws.policy()
			if err != nil {
				return err
			}

			tightened, changes, err := application.NewRatchetService(scanner.New()).Tighten(ws.root, policy)
			if err != nil {
				return fmt.Errorf("tightening baselines: %w", err)
			}

			plan := &domain.RatchetPlan{
				Changes:    changes,
				PolicyPath: config.Path(ws.root, ws.configPath),
			}
			if !dryRun && len(changes) > 0 {
				data, err := config.Marshal(tightened)
				if err != nil {
					return err
				}
				if err := os.WriteFile(plan.PolicyPath, data, 0644); err != nil {
					return fmt.Errorf("writing policy: %w", err)
				}
				plan.Applied = true
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(plan)
			}
			renderRatchetPlan(cmd, plan)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show the changes without writing the policy")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

func renderRatchetPlan(cmd *cobra.Command, plan *domain.RatchetPlan) {
	out := cmd.OutOrStdout()
	if len(plan.Changes) == 0 {
		fmt.Fprintln(out, "No baseline can be lowered.")
		return
	}

	for _, c := range plan.Changes {
		if c.Dropped() {
			fmt.Fprintf(out, "%s: dropped %s baseline for %s (was %d)\n", c.Group, c.Token, c.Path, c.From)
			continue
		}
		fmt.Fprintf(out, "%s: lowered %s baseline for %s (%d -> %d)\n", c.Group, c.Token, c.Path, c.From, c.To)
	}
	if plan.Applied {
		fmt.Fprintf(out, "Updated %s\n", plan.PolicyPath)
	}
}
