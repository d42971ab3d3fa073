package news

import (
	"context"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-shiori/go-readability"

	"github.com/spacesedan/esgpulse/internal/models"
	"github.com/spacesedan/esgpulse/internal/sentiment"
)

const (
	ENRICH_TIMEOUT = 30 * time.Second
	// MIN_CONTENT_LENGTH is the shortest body worth analyzing.
	MIN_CONTENT_LENGTH = 50
)

// PageFetcher returns the readable text of a web page.
type PageFetcher func(ctx context.Context, pageURL string) (string, error)

// Enricher replaces clipped provider bodies with the full page text.
type Enricher struct {
	fetch PageFetcher
}

func NewEnricher(timeout time.Duration) *Enricher {
	if timeout <= 0 {
		timeout = ENRICH_TIMEOUT
	}
	return &Enricher{fetch: readabilityFetcher(timeout)}
}

func NewEnricherWithFetcher(fetch PageFetcher) *Enricher {
	return &Enricher{fetch: fetch}
}

func readabilityFetcher(timeout time.Duration) PageFetcher {
	return func(ctx context.Context, pageURL string) (string, error) {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		article, err := readability.FromURL(pageURL, timeout)
		if err != nil {
			return "", err
		}
		return article.TextContent, nil
	}
}

// Enrich reports whether the article body was replaced. Articles that are
// complete, have no URL, or whose page cannot be read are left alone.
func (e *Enricher) Enrich(ctx context.Context, a *models.NewsArticle) bool {
	if a.URL == "" {
		return false
	}
	current := utf8.RuneCountInString(a.Content)
	if !a.Truncated && current >= MIN_CONTENT_LENGTH {
		return false
	}

	text, err := e.fetch(ctx, a.URL)
	if err != nil {
		slog.Warn("[Enricher] Failed to read article page",
			slog.String("url", a.URL),
			slog.String("error", err.Error()))
		return false
	}

	text = strings.Join(strings.Fields(sentiment.RemoveLinks(text)), " ")
	if utf8.RuneCountInString(text) <= current {
		return false
	}

	a.Content = text
	a.Truncated = false
	slog.Debug("[Enricher] Replaced truncated body",
		slog.String("url", a.URL),
		slog.Int("length", utf8.RuneCountInString(text)))
	return true
}
