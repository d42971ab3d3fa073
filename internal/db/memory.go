package db

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spacesedan/esgpulse/internal/models"
)

// MemoryStore keeps articles in process, in insertion order.
type MemoryStore struct {
	mu       sync.RWMutex
	articles []models.Article
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Insert(ctx context.Context, a *models.Article) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.articles = append(m.articles, cloneArticle(*a))
	return nil
}

func (m *MemoryStore) Get(ctx context.Context, id string) (*models.Article, error) {
	if err := validUUID(id); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	for i := range m.articles {
		if m.articles[i].ID == id {
			a := cloneArticle(m.articles[i])
			return &a, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	if err := validUUID(id); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.articles {
		if m.articles[i].ID == id {
			m.articles = append(m.articles[:i], m.articles[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (m *MemoryStore) FindDuplicate(ctx context.Context, url, title string) (*models.Article, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return findDuplicate(m.articles, url, title), nil
}

func (m *MemoryStore) List(ctx context.Context, f ListFilter) (*models.ArticlePage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return listArticles(m.articles, f), nil
}

func (m *MemoryStore) Stats(ctx context.Context, now time.Time) (*models.ArticleStats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return computeStats(m.articles, now), nil
}

func (m *MemoryStore) Trends(ctx context.Context, now time.Time, days int) ([]models.TrendDay, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return computeTrends(m.articles, now, days), nil
}

func (m *MemoryStore) Close(ctx context.Context) error { return nil }

func cloneArticle(a models.Article) models.Article {
	a.Keywords = append([]string(nil), a.Keywords...)
	return a
}

func validUUID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrInvalidID
	}
	return nil
}
