package ingest

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/spacesedan/esgpulse/internal/analysis"
	"github.com/spacesedan/esgpulse/internal/clients"
	"github.com/spacesedan/esgpulse/internal/models"
	"github.com/spacesedan/esgpulse/internal/news"
)

// outcome of one fetched article; at most one field is set.
type outcome struct {
	article *models.FetchedArticle
	err     *models.FetchError
}

// FetchAndAnalyze pulls a page of news and analyzes every article that is
// long enough and not stored yet. Report entries keep provider order.
func (s *Service) FetchAndAnalyze(ctx context.Context, req models.FetchRequest) (*models.FetchReport, error) {
	if s.news == nil {
		return nil, clients.ErrNewsAPINotConfigured
	}

	limit := req.Limit
	if limit <= 0 {
		limit = DEFAULT_FETCH_SIZE
	}
	opts := news.PageOptions{Page: 1, PageSize: limit}

	var (
		page *models.NewsPage
		err  error
	)
	switch {
	case req.Company != "":
		page, err = s.news.CompanyNews(ctx, req.Company, opts)
	default:
		page, err = s.news.ESGNews(ctx, req.Topic, opts)
	}
	if err != nil {
		return nil, err
	}

	slog.Info("[Ingest] Fetched articles",
		slog.String("company", req.Company),
		slog.String("topic", req.Topic),
		slog.Int("count", len(page.Articles)))

	outcomes := make([]outcome, len(page.Articles))
	batch := &batchClaims{seen: map[string]bool{}}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i := range page.Articles {
		article := page.Articles[i]
		g.Go(func() error {
			outcomes[i] = s.processArticle(gctx, batch, article)
			return nil
		})
	}
	_ = g.Wait()

	report := &models.FetchReport{
		Articles:     []models.FetchedArticle{},
		TotalFetched: len(page.Articles),
	}
	for _, o := range outcomes {
		switch {
		case o.article != nil:
			report.Articles = append(report.Articles, *o.article)
		case o.err != nil:
			report.Errors = append(report.Errors, *o.err)
		}
	}

	slog.Info("[Ingest] Fetch and analyze finished",
		slog.Int("analyzed", len(report.Articles)),
		slog.Int("errors", len(report.Errors)))
	return report, nil
}

// batchClaims stops two articles of the same batch with the same key from
// being analyzed side by side.
type batchClaims struct {
	mu   sync.Mutex
	seen map[string]bool
}

func (b *batchClaims) claim(key string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.seen[key] {
		return false
	}
	b.seen[key] = true
	return true
}

func (s *Service) processArticle(ctx context.Context, batch *batchClaims, na models.NewsArticle) outcome {
	if err := ctx.Err(); err != nil {
		return failed(na.Title, err)
	}

	if s.enricher != nil {
		s.enricher.Enrich(ctx, &na)
	}
	if utf8.RuneCountInString(na.Content) < MIN_CONTENT_LENGTH {
		slog.Debug("[Ingest] Skipping short article", slog.String("title", na.Title))
		return outcome{}
	}

	existing, err := s.store.FindDuplicate(ctx, na.URL, na.Title)
	if err != nil {
		return failed(na.Title, err)
	}
	if existing != nil {
		return outcome{article: fetched(existing, na, true)}
	}

	key := claimKey(na)
	if !batch.claim(key) {
		return failed(na.Title, ErrAlreadyInProgress)
	}
	if s.claimer != nil {
		ok, err := s.claimer.Claim(ctx, NEWS_SOURCE, key)
		if err != nil {
			slog.Warn("[Ingest] Claim failed, continuing without it",
				slog.String("title", na.Title),
				slog.String("error", err.Error()))
		} else if !ok {
			return failed(na.Title, ErrAlreadyInProgress)
		}
	}
	// once stored the article is caught as a duplicate; a later delete
	// must not leave it blocked by a stale claim
	defer s.release(key)

	in := models.ArticleInput{
		Title:       na.Title,
		Content:     na.Content,
		URL:         na.URL,
		Source:      na.Source,
		PublishedAt: na.PublishedAt,
	}

	a, err := s.analyzeAndStore(ctx, s.analyzer, in)
	if errors.Is(err, analysis.ErrConfiguration) {
		s.configWarning.Do(func() {
			slog.Error("[Ingest] Inference credentials rejected, analyzing locally",
				slog.String("error", err.Error()))
		})
		a, err = s.analyzeAndStore(ctx, s.analyzer.LocalOnly(), in)
	}
	if err != nil {
		return failed(na.Title, err)
	}

	return outcome{article: fetched(a, na, false)}
}

func (s *Service) release(key string) {
	if s.claimer == nil {
		return
	}
	// the batch context may already be cancelled
	if err := s.claimer.Release(context.Background(), NEWS_SOURCE, key); err != nil {
		slog.Warn("[Ingest] Failed to release claim", slog.String("error", err.Error()))
	}
}

func claimKey(na models.NewsArticle) string {
	if na.URL != "" {
		return na.URL
	}
	return "title:" + na.Title
}

func failed(title string, err error) outcome {
	return outcome{err: &models.FetchError{Title: title, Error: err.Error()}}
}

func fetched(a *models.Article, na models.NewsArticle, exists bool) *models.FetchedArticle {
	return &models.FetchedArticle{
		ID:             a.ID,
		Title:          a.Title,
		Sentiment:      a.Sentiment,
		SentimentScore: a.SentimentScore,
		Category:       a.Category,
		ESGScores:      a.ESGScores,
		Source:         na.Source,
		PublishedAt:    na.PublishedAt,
		URL:            a.URL,
		AlreadyExists:  exists,
	}
}
