// Package ingest analyzes articles and stores the results, either one
// submitted article at a time or in batches pulled from the news provider.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/spacesedan/esgpulse/internal/analysis"
	"github.com/spacesedan/esgpulse/internal/db"
	"github.com/spacesedan/esgpulse/internal/models"
	"github.com/spacesedan/esgpulse/internal/news"
)

const (
	MIN_TITLE_LENGTH   = 5
	MIN_CONTENT_LENGTH = news.MIN_CONTENT_LENGTH
	DEFAULT_FETCH_SIZE = 5
	NEWS_SOURCE        = "newsapi"
)

// ValidationError rejects a submitted article before any analysis runs.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

var ErrAlreadyInProgress = errors.New("article is already being analyzed")

// Claimer hands out exclusive, expiring claims so that parallel ingest
// runs do not analyze the same article twice.
type Claimer interface {
	Claim(ctx context.Context, source, key string) (bool, error)
	Release(ctx context.Context, source, key string) error
}

type Publisher interface {
	PublishAnalyzed(ctx context.Context, a *models.Article) error
}

type NewsSource interface {
	CompanyNews(ctx context.Context, company string, opts news.PageOptions) (*models.NewsPage, error)
	ESGNews(ctx context.Context, topic string, opts news.PageOptions) (*models.NewsPage, error)
}

type Enricher interface {
	Enrich(ctx context.Context, a *models.NewsArticle) bool
}

// Scorer gives an auxiliary sentiment score in [-1, 1].
type Scorer interface {
	Score(text string) float64
}

type Service struct {
	analyzer *analysis.Analyzer
	store    db.Store
	scorer   Scorer

	news        NewsSource
	enricher    Enricher
	claimer     Claimer
	publisher   Publisher
	concurrency int
	now         func() time.Time

	configWarning sync.Once
}

type Option func(*Service)

func WithNewsSource(src NewsSource) Option {
	return func(s *Service) { s.news = src }
}

func WithEnricher(e Enricher) Option {
	return func(s *Service) { s.enricher = e }
}

func WithClaimer(c Claimer) Option {
	return func(s *Service) { s.claimer = c }
}

func WithPublisher(p Publisher) Option {
	return func(s *Service) { s.publisher = p }
}

func WithConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

func NewService(analyzer *analysis.Analyzer, store db.Store, scorer Scorer, opts ...Option) *Service {
	s := &Service{
		analyzer:    analyzer,
		store:       store,
		scorer:      scorer,
		concurrency: 1,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) NewsConfigured() bool {
	if s.news == nil {
		return false
	}
	if c, ok := s.news.(interface{ Configured() bool }); ok {
		return c.Configured()
	}
	return true
}

func validateInput(in models.ArticleInput) error {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Content) == "" {
		return &ValidationError{Field: "title,content", Reason: "Both title and content are required"}
	}
	if utf8.RuneCountInString(in.Title) < MIN_TITLE_LENGTH {
		return &ValidationError{Field: "title", Reason: fmt.Sprintf("Title must be at least %d characters", MIN_TITLE_LENGTH)}
	}
	if utf8.RuneCountInString(in.Content) < MIN_CONTENT_LENGTH {
		return &ValidationError{Field: "content", Reason: fmt.Sprintf("Content must be at least %d characters for accurate analysis", MIN_CONTENT_LENGTH)}
	}
	return nil
}

// AnalyzeArticle validates, analyzes and stores one submitted article.
// Rejected input returns a *ValidationError. Missing inference credentials
// surface as analysis.ErrConfiguration.
func (s *Service) AnalyzeArticle(ctx context.Context, in models.ArticleInput) (*models.Article, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	slog.Info("[Ingest] Analyzing article", slog.String("title", preview(in.Title, 50)))
	a, err := s.analyzeAndStore(ctx, s.analyzer, in)
	if err != nil {
		return nil, err
	}

	slog.Info("[Ingest] Article saved", slog.String("id", a.ID))
	return a, nil
}

func (s *Service) analyzeAndStore(ctx context.Context, analyzer *analysis.Analyzer, in models.ArticleInput) (*models.Article, error) {
	result, err := analyzer.Analyze(ctx, in.Title, in.Content)
	if err != nil {
		return nil, err
	}

	a := models.NewArticle(in, result, s.now().UTC())
	if s.scorer != nil {
		a.VaderScore = s.scorer.Score(in.Title + ". " + in.Content)
	}
	if err := a.Validate(); err != nil {
		slog.Error("[Ingest] Analysis produced an invalid record", slog.String("error", err.Error()))
		return nil, analysis.ErrAnalysisFailed
	}

	if err := s.store.Insert(ctx, a); err != nil {
		return nil, fmt.Errorf("failed to save article: %w", err)
	}

	if s.publisher != nil {
		if err := s.publisher.PublishAnalyzed(ctx, a); err != nil {
			slog.Warn("[Ingest] Failed to publish article event",
				slog.String("id", a.ID),
				slog.String("error", err.Error()))
		}
	}
	return a, nil
}

func preview(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "..."
}
