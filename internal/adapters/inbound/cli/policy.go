package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abdidvp/archguard/internal/adapters/outbound/config"
)

func newPolicyCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "policy",
		Short: "Print the effective policy as YAML",
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

			data, err := config.Marshal(policy)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}
