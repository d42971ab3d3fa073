// Package news turns NewsAPI results into articles ready for analysis.
package news

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spacesedan/esgpulse/internal/clients"
	"github.com/spacesedan/esgpulse/internal/models"
	"github.com/spacesedan/esgpulse/internal/sentiment"
)

const DEFAULT_PAGE_SIZE = 10

// Provider is the subset of the NewsAPI client the service needs.
type Provider interface {
	Configured() bool
	Everything(ctx context.Context, q clients.EverythingQuery) (*models.NewsAPIResponse, error)
	TopHeadlines(ctx context.Context, q clients.HeadlinesQuery) (*models.NewsAPIResponse, error)
}

type PageOptions struct {
	Page     int
	PageSize int
}

func (p PageOptions) normalized() PageOptions {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = DEFAULT_PAGE_SIZE
	}
	if p.PageSize > clients.NEWS_API_MAX_PAGE_SIZE {
		p.PageSize = clients.NEWS_API_MAX_PAGE_SIZE
	}
	return p
}

type SearchOptions struct {
	PageOptions
	From time.Time
	To   time.Time
}

type Service struct {
	provider Provider
	now      func() time.Time
}

func NewService(provider Provider) *Service {
	return &Service{provider: provider, now: time.Now}
}

func (s *Service) Configured() bool {
	return s.provider != nil && s.provider.Configured()
}

func (s *Service) Companies() []models.Company {
	return Companies()
}

// CompanyNews searches ESG coverage for a catalogue company, or for any
// free-form company name.
func (s *Service) CompanyNews(ctx context.Context, company string, opts PageOptions) (*models.NewsPage, error) {
	opts = opts.normalized()
	resp, err := s.everything(ctx, clients.EverythingQuery{
		Query:    CompanyQuery(company),
		SortBy:   "publishedAt",
		Page:     opts.Page,
		PageSize: opts.PageSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch news: %w", err)
	}

	slog.Info("[NewsService] Fetched company news",
		slog.String("company", company),
		slog.Int("count", len(resp.Articles)))
	return s.page(resp, company, opts), nil
}

// ESGNews searches general ESG coverage, optionally narrowed to
// environmental, social or governance.
func (s *Service) ESGNews(ctx context.Context, topic string, opts PageOptions) (*models.NewsPage, error) {
	opts = opts.normalized()
	resp, err := s.everything(ctx, clients.EverythingQuery{
		Query:    TopicQuery(topic),
		SortBy:   "publishedAt",
		Page:     opts.Page,
		PageSize: opts.PageSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch news: %w", err)
	}

	slog.Info("[NewsService] Fetched ESG news",
		slog.String("topic", topic),
		slog.Int("count", len(resp.Articles)))
	return s.page(resp, "", opts), nil
}

// TopHeadlines keeps only the ESG related headlines. TotalResults counts
// the kept ones.
func (s *Service) TopHeadlines(ctx context.Context, country, category string, pageSize int) (*models.NewsPage, error) {
	if !s.Configured() {
		return nil, clients.ErrNewsAPINotConfigured
	}
	if pageSize < 1 {
		pageSize = DEFAULT_PAGE_SIZE
	}

	resp, err := s.provider.TopHeadlines(ctx, clients.HeadlinesQuery{
		Country:  country,
		Category: category,
		PageSize: pageSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch headlines: %w", err)
	}

	articles := make([]models.NewsArticle, 0, len(resp.Articles))
	for _, a := range resp.Articles {
		if IsESGRelevant(a.Title + " " + a.Description) {
			articles = append(articles, s.FormatArticle(a, ""))
		}
	}
	return &models.NewsPage{Articles: articles, TotalResults: len(articles)}, nil
}

func (s *Service) Search(ctx context.Context, query string, opts SearchOptions) (*models.NewsPage, error) {
	page := opts.PageOptions.normalized()
	resp, err := s.everything(ctx, clients.EverythingQuery{
		Query:    query,
		SortBy:   "relevancy",
		From:     opts.From,
		To:       opts.To,
		Page:     page.Page,
		PageSize: page.PageSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search news: %w", err)
	}
	return s.page(resp, "", page), nil
}

func (s *Service) everything(ctx context.Context, q clients.EverythingQuery) (*models.NewsAPIResponse, error) {
	if !s.Configured() {
		return nil, clients.ErrNewsAPINotConfigured
	}
	return s.provider.Everything(ctx, q)
}

func (s *Service) page(resp *models.NewsAPIResponse, company string, opts PageOptions) *models.NewsPage {
	articles := make([]models.NewsArticle, 0, len(resp.Articles))
	for _, a := range resp.Articles {
		articles = append(articles, s.FormatArticle(a, company))
	}
	return &models.NewsPage{
		Articles:     articles,
		TotalResults: resp.TotalResults,
		Page:         opts.Page,
		PageSize:     opts.PageSize,
	}
}

// FormatArticle normalises a provider article. The body falls back to the
// description, loses the truncation marker and is reduced to plain text.
func (s *Service) FormatArticle(a models.NewsAPIArticle, company string) models.NewsArticle {
	body := a.Content
	if body == "" {
		body = a.Description
	}
	body, truncated := sentiment.StripTruncationMarker(body)

	out := models.NewsArticle{
		Title:       orDefault(a.Title, "Untitled"),
		Content:     sentiment.ConvertMarkdownToText(body),
		Description: a.Description,
		URL:         a.URL,
		Source:      orDefault(a.Source.Name, "Unknown"),
		Author:      orDefault(a.Author, "Unknown"),
		PublishedAt: orDefault(a.PublishedAt, s.now().UTC().Format(time.RFC3339)),
		Truncated:   truncated,
	}
	if a.URLToImage != "" {
		img := a.URLToImage
		out.ImageURL = &img
	}
	if company != "" {
		c := company
		out.Company = &c
	}
	return out
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
