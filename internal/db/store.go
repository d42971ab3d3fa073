package db

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/spacesedan/esgpulse/internal/models"
)

var (
	ErrNotFound  = errors.New("article not found")
	ErrInvalidID = errors.New("invalid article id")
)

const (
	DEFAULT_LIST_LIMIT = 20
	DEFAULT_TREND_DAYS = 30
	RECENT_WINDOW      = 7 * 24 * time.Hour
)

// sortable fields of List
var sortFields = map[string]bool{
	"analyzedAt":     true,
	"sentimentScore": true,
	"title":          true,
	"createdAt":      true,
}

type ListFilter struct {
	Sentiment models.SentimentLabel
	Category  models.ESGCategory
	SortBy    string
	Order     string
	Limit     int
	Skip      int
}

// Normalized fills defaults: 20 results, newest analyzedAt first. Limit is
// capped so that Skip+Limit never overflows.
func (f ListFilter) Normalized() ListFilter {
	if !sortFields[f.SortBy] {
		f.SortBy = "analyzedAt"
	}
	if f.Order != "asc" {
		f.Order = "desc"
	}
	if f.Limit <= 0 {
		f.Limit = DEFAULT_LIST_LIMIT
	}
	if f.Skip < 0 {
		f.Skip = 0
	}
	// skip+limit must stay representable
	f.Limit = min(f.Limit, math.MaxInt-f.Skip)
	return f
}

// Store persists analyzed articles.
type Store interface {
	// Insert assigns an ID when the article has none.
	Insert(ctx context.Context, a *models.Article) error
	Get(ctx context.Context, id string) (*models.Article, error)
	Delete(ctx context.Context, id string) error
	// FindDuplicate returns the first stored article with the same URL or
	// the exact same title, or nil when there is none. An empty URL only
	// matches by title.
	FindDuplicate(ctx context.Context, url, title string) (*models.Article, error)
	// List omits article content.
	List(ctx context.Context, f ListFilter) (*models.ArticlePage, error)
	Stats(ctx context.Context, now time.Time) (*models.ArticleStats, error)
	Trends(ctx context.Context, now time.Time, days int) ([]models.TrendDay, error)
	Close(ctx context.Context) error
}
