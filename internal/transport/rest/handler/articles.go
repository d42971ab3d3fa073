package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/spacesedan/esgpulse/internal/db"
	"github.com/spacesedan/esgpulse/internal/models"
)

type ArticleHandler struct {
	store db.Store
	now   func() time.Time
}

func NewArticleHandler(store db.Store) *ArticleHandler {
	return &ArticleHandler{store: store, now: time.Now}
}

// List handles GET /api/articles
func (h *ArticleHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := db.ListFilter{
		Sentiment: models.SentimentLabel(r.URL.Query().Get("sentiment")),
		Category:  models.ESGCategory(r.URL.Query().Get("category")),
		SortBy:    r.URL.Query().Get("sortBy"),
		Order:     r.URL.Query().Get("order"),
		Limit:     queryInt(r, "limit", db.DEFAULT_LIST_LIMIT),
		Skip:      queryInt(r, "skip", 0),
	}

	page, err := h.store.List(r.Context(), filter)
	if err != nil {
		h.storeError(w, "Failed to fetch articles", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"articles":   page.Articles,
		"pagination": page.Pagination,
	})
}

// Stats handles GET /api/articles/stats
func (h *ArticleHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.store.Stats(r.Context(), h.now().UTC())
	if err != nil {
		h.storeError(w, "Failed to fetch statistics", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "stats": stats})
}

// Trends handles GET /api/articles/trends
func (h *ArticleHandler) Trends(w http.ResponseWriter, r *http.Request) {
	days := queryInt(r, "days", db.DEFAULT_TREND_DAYS)
	trends, err := h.store.Trends(r.Context(), h.now().UTC(), days)
	if err != nil {
		h.storeError(w, "Failed to fetch trends", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "trends": trends})
}

// Get handles GET /api/articles/{id}
func (h *ArticleHandler) Get(w http.ResponseWriter, r *http.Request) {
	a, err := h.store.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.storeError(w, "Failed to fetch article", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "article": a})
}

// Delete handles DELETE /api/articles/{id}
func (h *ArticleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.store.Delete(r.Context(), id); err != nil {
		h.storeError(w, "Failed to delete article", err)
		return
	}
	slog.Info("[HTTP] Article deleted", slog.String("id", id))
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Article deleted successfully"})
}

func (h *ArticleHandler) storeError(w http.ResponseWriter, title string, err error) {
	switch {
	case errors.Is(err, db.ErrNotFound):
		writeError(w, http.StatusNotFound, "Article not found", "No article exists with that ID")
	case errors.Is(err, db.ErrInvalidID):
		writeError(w, http.StatusBadRequest, "Invalid ID", "The provided ID is not valid")
	default:
		slog.Error("[HTTP] Store error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, title, err.Error())
	}
}
