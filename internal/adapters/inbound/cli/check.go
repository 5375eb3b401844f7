package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abdidvp/archguard/internal/adapters/outbound/tui"
	"github.com/abdidvp/archguard/internal/domain"
)

func newCheckCmd(opts *options) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Run every architecture guardrail",
		Long:  "Run the crate edge rules, API bans, isolation builds and manifest version checks. Exits 1 if any check group fails.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, opts, jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

func runCheck(cmd *cobra.Command, opts *options, jsonOutput bool) error {
	ws, err := opts.openWorkspace()
	if err != nil {
		return err
	}
	policy, err := ws.policy()
	if err != nil {
		return err
	}

	report, err := ws.svc.Run(cmd.Context(), ws.root, policy)
	if err != nil {
		return err
	}

	if jsonOutput {
		if err := renderCheckJSON(cmd, report); err != nil {
			return err
		}
	} else {
		fmt.Fprint(cmd.OutOrStdout(), tui.RenderReport(report))
	}

	if report.Failed() {
		return domain.ErrGuardrailsFailed
	}
	return nil
}

func renderCheckJSON(cmd *cobra.Command, report *domain.Report) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		*domain.Report
		Passed bool `json:"passed"`
	}{report, !report.Failed()})
}
