package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/abdidvp/archguard/internal/adapters/outbound/tui"
)

var (
	version = "dev"
	commit  = "none"
)

// options are the persistent flags shared by every command.
type options struct {
	root         string
	configPath   string
	metadataFile string
	verbose      bool
	noColor      bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "archguard",
		Short: "Enforce architecture guardrails in a Cargo workspace",
		Long: "archguard checks crate dependency edges, banned API usage against a ratcheting baseline, " +
			"and feature isolation builds. Run without a subcommand to execute every check.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if opts.verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))

			if opts.noColor || os.Getenv("NO_COLOR") != "" {
				tui.DisableColor()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, opts, false)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.root, "root", "", "Workspace root (defaults to $ARCHGUARD_ROOT, then the enclosing git work tree, then the current directory)")
	flags.StringVar(&opts.configPath, "config", "", "Policy file (defaults to <root>/.archguard.yaml, then the built-in policy)")
	flags.StringVar(&opts.metadataFile, "metadata-file", "", "Read recorded `cargo metadata` JSON instead of running cargo")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Log diagnostics to stderr")
	flags.BoolVar(&opts.noColor, "no-color", false, "Disable colored output")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newCheckCmd(opts))
	cmd.AddCommand(newGraphCmd(opts))
	cmd.AddCommand(newPolicyCmd(opts))
	cmd.AddCommand(newInitCmd(opts))
	cmd.AddCommand(newBaselineCmd(opts))
	cmd.AddCommand(newMCPCmd(opts))
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

// Execute runs the root command; an interrupt cancels in-flight cargo calls.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return newRootCmd().ExecuteContext(ctx)
}
