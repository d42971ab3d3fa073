package news

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/spacesedan/esgpulse/internal/models"
)

func TestEnricher_Enrich(t *testing.T) {
	full := strings.Repeat("The full article body describes the emissions plan. ", 5)

	tests := []struct {
		name     string
		article  models.NewsArticle
		page     string
		fetchErr error
		replaced bool
	}{
		{
			name:     "truncated body is replaced",
			article:  models.NewsArticle{URL: "https://x/1", Content: "The full article", Truncated: true},
			page:     full,
			replaced: true,
		},
		{
			name:     "short body is replaced",
			article:  models.NewsArticle{URL: "https://x/2", Content: "Short"},
			page:     full,
			replaced: true,
		},
		{
			name:    "complete body is kept",
			article: models.NewsArticle{URL: "https://x/3", Content: strings.Repeat("a", 60)},
			page:    full,
		},
		{
			name:    "no url",
			article: models.NewsArticle{Content: "Short", Truncated: true},
			page:    full,
		},
		{
			name:     "fetch failure keeps body",
			article:  models.NewsArticle{URL: "https://x/4", Content: "Short", Truncated: true},
			fetchErr: errors.New("timeout"),
		},
		{
			name:    "page shorter than body",
			article: models.NewsArticle{URL: "https://x/5", Content: "Somewhat longer clipped body", Truncated: true},
			page:    "Cookie banner",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEnricherWithFetcher(func(ctx context.Context, pageURL string) (string, error) {
				return tt.page, tt.fetchErr
			})

			a := tt.article
			got := e.Enrich(context.Background(), &a)
			if got != tt.replaced {
				t.Fatalf("Enrich() = %v, want %v", got, tt.replaced)
			}
			if tt.replaced && (a.Content != strings.TrimSpace(full) || a.Truncated) {
				t.Errorf("content = %q truncated = %v", a.Content, a.Truncated)
			}
			if !tt.replaced && a.Content != tt.article.Content {
				t.Errorf("content changed to %q", a.Content)
			}
		})
	}
}
