package cli

import (
	"encoding/json"
	"errors"

	"github.com/spf13/cobra"

	"github.com/spacesedan/esgpulse/internal/app"
	"github.com/spacesedan/esgpulse/internal/ingest"
	"github.com/spacesedan/esgpulse/internal/models"
)

func newFetchCmd(opts *rootOptions) *cobra.Command {
	var req models.FetchRequest

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch news, analyze new articles and store them",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.New(cmd.Context(), opts.settings)
			if err != nil {
				return err
			}
			defer a.Close(cmd.Context())

			if !a.News.Configured() {
				return errors.New("NEWS_API_KEY is not configured")
			}

			report, err := a.Ingest.FetchAndAnalyze(cmd.Context(), req)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		},
	}

	cmd.Flags().StringVar(&req.Company, "company", "", "company name or ticker")
	cmd.Flags().StringVar(&req.Topic, "topic", "", "environmental, social or governance")
	cmd.Flags().IntVar(&req.Limit, "limit", ingest.DEFAULT_FETCH_SIZE, "articles to fetch")
	cmd.MarkFlagsMutuallyExclusive("company", "topic")
	return cmd
}
