package rest

import (
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/mux"

	"github.com/spacesedan/esgpulse/internal/db"
	"github.com/spacesedan/esgpulse/internal/ingest"
	"github.com/spacesedan/esgpulse/internal/news"
	"github.com/spacesedan/esgpulse/internal/transport/rest/handler"
)

// Container holds all dependencies for the router
type Container struct {
	Ingest           *ingest.Service
	Store            db.Store
	News             *news.Service
	RemoteEnabled    bool
	InferenceHealthy *atomic.Bool
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()
	r.Use(corsMiddleware, logMiddleware)

	analyzeHandler := handler.NewAnalyzeHandler(c.Ingest)
	articleHandler := handler.NewArticleHandler(c.Store)
	newsHandler := handler.NewNewsHandler(c.News, c.Ingest, c.RemoteEnabled, c.InferenceHealthy)

	r.HandleFunc("/health", handler.Health(c.InferenceHealthy)).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/analyze", analyzeHandler.Analyze).Methods("POST", "OPTIONS")

	// stats and trends are registered before {id}
	api.HandleFunc("/articles", articleHandler.List).Methods("GET", "OPTIONS")
	api.HandleFunc("/articles/stats", articleHandler.Stats).Methods("GET", "OPTIONS")
	api.HandleFunc("/articles/trends", articleHandler.Trends).Methods("GET", "OPTIONS")
	api.HandleFunc("/articles/{id}", articleHandler.Get).Methods("GET", "OPTIONS")
	api.HandleFunc("/articles/{id}", articleHandler.Delete).Methods("DELETE", "OPTIONS")

	api.HandleFunc("/news/companies", newsHandler.Companies).Methods("GET", "OPTIONS")
	api.HandleFunc("/news/company/{name}", newsHandler.Company).Methods("GET", "OPTIONS")
	api.HandleFunc("/news/esg", newsHandler.ESG).Methods("GET", "OPTIONS")
	api.HandleFunc("/news/headlines", newsHandler.Headlines).Methods("GET", "OPTIONS")
	api.HandleFunc("/news/search", newsHandler.Search).Methods("GET", "OPTIONS")
	api.HandleFunc("/news/fetch-and-analyze", newsHandler.FetchAndAnalyze).Methods("POST", "OPTIONS")
	api.HandleFunc("/news/status", newsHandler.Status).Methods("GET", "OPTIONS")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		slog.Debug("[HTTP] Request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", rec.status),
			slog.Duration("took", time.Since(start)))
	})
}
