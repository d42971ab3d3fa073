package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/spacesedan/esgpulse/internal/analysis"
	"github.com/spacesedan/esgpulse/internal/ingest"
	"github.com/spacesedan/esgpulse/internal/models"
)

type AnalyzeHandler struct {
	ingest *ingest.Service
}

func NewAnalyzeHandler(svc *ingest.Service) *AnalyzeHandler {
	return &AnalyzeHandler{ingest: svc}
}

type analyzedArticle struct {
	ID             string                `json:"id"`
	Title          string                `json:"title"`
	Sentiment      models.SentimentLabel `json:"sentiment"`
	SentimentScore float64               `json:"sentimentScore"`
	VaderScore     float64               `json:"vaderScore"`
	Category       models.ESGCategory    `json:"category"`
	ESGScores      models.ESGScores      `json:"esgScores"`
	Keywords       []string              `json:"keywords"`
	Summary        string                `json:"summary"`
	AnalysisSource models.AnalysisSource `json:"analysisSource"`
	AnalyzedAt     time.Time             `json:"analyzedAt"`
}

var validationTitles = map[string]string{
	"title,content": "Missing required fields",
	"title":         "Title too short",
	"content":       "Content too short",
}

// Analyze handles POST /api/analyze
func (h *AnalyzeHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var in models.ArticleInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", "Body must be a JSON object with title and content")
		return
	}

	a, err := h.ingest.AnalyzeArticle(r.Context(), in)
	if err != nil {
		var verr *ingest.ValidationError
		switch {
		case errors.As(err, &verr):
			writeError(w, http.StatusBadRequest, validationTitles[verr.Field], verr.Reason)
		case errors.Is(err, analysis.ErrConfiguration):
			slog.Error("[HTTP] Analysis rejected by configuration", slog.String("error", err.Error()))
			writeError(w, http.StatusInternalServerError, "Configuration Error",
				"AI service not properly configured. Please contact administrator.")
		default:
			slog.Error("[HTTP] Analysis failed", slog.String("error", err.Error()))
			writeError(w, http.StatusInternalServerError, "Analysis Failed", analysis.ErrAnalysisFailed.Error())
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"article": analyzedArticle{
			ID:             a.ID,
			Title:          a.Title,
			Sentiment:      a.Sentiment,
			SentimentScore: a.SentimentScore,
			VaderScore:     a.VaderScore,
			Category:       a.Category,
			ESGScores:      a.ESGScores,
			Keywords:       a.Keywords,
			Summary:        a.Summary,
			AnalysisSource: a.AnalysisSource,
			AnalyzedAt:     a.AnalyzedAt,
		},
	})
}
