package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/spacesedan/esgpulse/internal/app"
)

func newAnalyzeCmd(opts *rootOptions) *cobra.Command {
	var (
		title     string
		content   string
		file      string
		localOnly bool
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze one article and print the result as JSON",
		Example: `  esgpulse analyze --title "Utility retires coal plant" --file article.txt
  esgpulse analyze --title "Board shake-up" --content "..." --local`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if file != "" {
				raw, err := os.ReadFile(file)
				if err != nil {
					return fmt.Errorf("failed to read %s: %w", file, err)
				}
				content = string(raw)
			}
			if title == "" || content == "" {
				return errors.New("both --title and --content (or --file) are required")
			}

			analyzer, _, err := app.NewAnalyzer(opts.settings, localOnly)
			if err != nil {
				return err
			}
			result, err := analyzer.Analyze(cmd.Context(), title, content)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "article title")
	cmd.Flags().StringVar(&content, "content", "", "article body")
	cmd.Flags().StringVar(&file, "file", "", "read the article body from a file")
	cmd.Flags().BoolVar(&localOnly, "local", false, "skip remote inference")
	cmd.MarkFlagsMutuallyExclusive("content", "file")
	return cmd
}
