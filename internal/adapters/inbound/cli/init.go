package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abdidvp/archguard/internal/adapters/outbound/config"
	"github.com/abdidvp/archguard/internal/domain"
)

const configHeader = "# archguard policy\n# Run `archguard policy` to print the effective policy.\n\n"

func newInitCmd(opts *options) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a .archguard.yaml policy file",
		Long:  "Write the built-in policy to .archguard.yaml in the workspace root as a starting point.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := opts.openWorkspace()
			if err != nil {
				return err
			}

			dest := filepath.Join(ws.root, config.FileName)

			if !force {
				if _, err := os.Stat(dest); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", config.FileName)
				}
			}

			data, err := config.Marshal(domain.DefaultPolicy())
			if err != nil {
				return err
			}

			if err := os.WriteFile(dest, append([]byte(configHeader), data...), 0644); err != nil {
				return fmt.Errorf("writing policy: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", config.FileName)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing .archguard.yaml")

	return cmd
}
