// Package cli implements the esgpulse command line.
package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/spacesedan/esgpulse/config"
	"github.com/spacesedan/esgpulse/internal/logging"
)

type rootOptions struct {
	env      string
	logLevel string
	settings config.Settings
}

// NewRootCmd builds the command tree. Settings are resolved once, before
// any subcommand runs.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "esgpulse",
		Short: "ESG news sentiment and category analysis",
		Long: `esgpulse scores news articles for sentiment and assigns them to the
Environmental, Social and Governance dimensions.

Settings come from the environment, config/envs/.env.<env> and an optional
esgpulse.yaml in ./config or the working directory.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config.LoadEnv(opts.env)
			s, err := config.Load()
			if err != nil {
				return err
			}
			if opts.logLevel != "" {
				s.LogLevel = opts.logLevel
			}
			logging.InitLoggerTo(cmd.ErrOrStderr(), s.LogLevel)
			opts.settings = s
			return nil
		},
	}

	root.PersistentFlags().StringVar(&opts.env, "env", os.Getenv("APP_ENV"), "environment file to load (config/envs/.env.<env>)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "override LOG_LEVEL")

	root.AddCommand(newAnalyzeCmd(opts), newFetchCmd(opts), newConfigCmd(opts))
	return root
}

// Execute runs the root command
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}
