package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/mux"

	"github.com/spacesedan/esgpulse/internal/clients"
	"github.com/spacesedan/esgpulse/internal/ingest"
	"github.com/spacesedan/esgpulse/internal/models"
	"github.com/spacesedan/esgpulse/internal/news"
)

type NewsHandler struct {
	news    *news.Service
	ingest  *ingest.Service
	remote  bool
	healthy *atomic.Bool
}

// NewNewsHandler reports remote as the inference state in /status; healthy
// may be nil when no monitor runs.
func NewNewsHandler(newsSvc *news.Service, ingestSvc *ingest.Service, remote bool, healthy *atomic.Bool) *NewsHandler {
	return &NewsHandler{news: newsSvc, ingest: ingestSvc, remote: remote, healthy: healthy}
}

type newsResponse struct {
	Success bool   `json:"success"`
	Company string `json:"company,omitempty"`
	Query   string `json:"query,omitempty"`
	*models.NewsPage
}

type fetchResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	*models.FetchReport
}

func pageOptions(r *http.Request) news.PageOptions {
	return news.PageOptions{
		Page:     queryInt(r, "page", 1),
		PageSize: queryInt(r, "pageSize", news.DEFAULT_PAGE_SIZE),
	}
}

// Companies handles GET /api/news/companies
func (h *NewsHandler) Companies(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "companies": h.news.Companies()})
}

// Company handles GET /api/news/company/{name}
func (h *NewsHandler) Company(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	page, err := h.news.CompanyNews(r.Context(), name, pageOptions(r))
	if err != nil {
		newsError(w, "Failed to fetch company news", err)
		return
	}
	writeJSON(w, http.StatusOK, newsResponse{Success: true, Company: name, NewsPage: page})
}

// ESG handles GET /api/news/esg
func (h *NewsHandler) ESG(w http.ResponseWriter, r *http.Request) {
	page, err := h.news.ESGNews(r.Context(), r.URL.Query().Get("topic"), pageOptions(r))
	if err != nil {
		newsError(w, "Failed to fetch ESG news", err)
		return
	}
	writeJSON(w, http.StatusOK, newsResponse{Success: true, NewsPage: page})
}

// Headlines handles GET /api/news/headlines
func (h *NewsHandler) Headlines(w http.ResponseWriter, r *http.Request) {
	page, err := h.news.TopHeadlines(r.Context(),
		queryString(r, "country", "us"),
		queryString(r, "category", "business"),
		queryInt(r, "pageSize", news.DEFAULT_PAGE_SIZE))
	if err != nil {
		newsError(w, "Failed to fetch headlines", err)
		return
	}
	writeJSON(w, http.StatusOK, newsResponse{Success: true, NewsPage: page})
}

// Search handles GET /api/news/search
func (h *NewsHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeError(w, http.StatusBadRequest, "Missing query", "Please provide a search query (q parameter)")
		return
	}

	from, err := parseDate(r.URL.Query().Get("from"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date", err.Error())
		return
	}
	to, err := parseDate(r.URL.Query().Get("to"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date", err.Error())
		return
	}

	page, err := h.news.Search(r.Context(), q, news.SearchOptions{PageOptions: pageOptions(r), From: from, To: to})
	if err != nil {
		newsError(w, "Failed to search news", err)
		return
	}
	writeJSON(w, http.StatusOK, newsResponse{Success: true, Query: q, NewsPage: page})
}

// FetchAndAnalyze handles POST /api/news/fetch-and-analyze
func (h *NewsHandler) FetchAndAnalyze(w http.ResponseWriter, r *http.Request) {
	var req models.FetchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "Invalid request body", "Body must be a JSON object")
		return
	}

	report, err := h.ingest.FetchAndAnalyze(r.Context(), req)
	if err != nil {
		newsError(w, "Failed to fetch and analyze news", err)
		return
	}

	writeJSON(w, http.StatusOK, fetchResponse{
		Success:     true,
		Message:     fmt.Sprintf("Analyzed %d articles", len(report.Articles)),
		FetchReport: report,
	})
}

// Status handles GET /api/news/status
func (h *NewsHandler) Status(w http.ResponseWriter, r *http.Request) {
	configured := h.news.Configured()
	message := "News API is configured and ready"
	if !configured {
		message = "News API key not configured. Add NEWS_API_KEY to the environment."
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":           true,
		"newsApiConfigured": configured,
		"message":           message,
		"inference": map[string]bool{
			"remoteEnabled": h.remote,
			"healthy":       h.healthy != nil && h.healthy.Load(),
		},
	})
}

func parseDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	for _, layout := range []string{time.RFC3339, time.DateOnly} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse %q, use YYYY-MM-DD or RFC 3339", raw)
}

func newsError(w http.ResponseWriter, title string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, clients.ErrNewsAPINotConfigured):
		status = http.StatusServiceUnavailable
	case errors.Is(err, clients.ErrNewsAPIRateLimited):
		status = http.StatusTooManyRequests
	}
	slog.Warn("[HTTP] News request failed", slog.Int("status", status), slog.String("error", err.Error()))
	writeError(w, status, title, err.Error())
}
