package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newConfigCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect esgpulse configuration",
		Long: `Configuration hierarchy (highest to lowest priority):
1. Environment variables
2. config/envs/.env.<env>
3. esgpulse.yaml
4. Defaults`,
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration with secrets masked",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if opts.settings.ConfigFile != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "Configuration file: %s\n\n", opts.settings.ConfigFile)
			}

			data, err := yaml.Marshal(opts.settings.Masked())
			if err != nil {
				return fmt.Errorf("error marshaling config: %w", err)
			}
			_, err = out.Write(data)
			return err
		},
	}

	cmd.AddCommand(show)
	return cmd
}
