package clients

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/spacesedan/esgpulse/internal/analysis"
	"github.com/spacesedan/esgpulse/internal/models"
)

func newTestHFClient(t *testing.T, handler http.HandlerFunc) *HuggingFaceClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewHuggingFaceClient(HuggingFaceConfig{Token: "hf_test", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("NewHuggingFaceClient: %v", err)
	}
	return c
}

func TestNewHuggingFaceClient_MissingToken(t *testing.T) {
	_, err := NewHuggingFaceClient(HuggingFaceConfig{Token: "  "})
	if !errors.Is(err, analysis.ErrConfiguration) {
		t.Fatalf("err = %v, want ErrConfiguration", err)
	}
}

func TestPredictSentiment_ResponseShapes(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		label string
		score float64
	}{
		{"nested", `[[{"label":"POSITIVE","score":0.98},{"label":"NEGATIVE","score":0.02}]]`, "POSITIVE", 0.98},
		{"flat", `[{"label":"NEGATIVE","score":0.7}]`, "NEGATIVE", 0.7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestHFClient(t, func(w http.ResponseWriter, r *http.Request) {
				if got := r.Header.Get("Authorization"); got != "Bearer hf_test" {
					t.Errorf("Authorization = %q", got)
				}
				if !strings.HasSuffix(r.URL.Path, "/"+HF_SENTIMENT_MODEL) {
					t.Errorf("path = %q", r.URL.Path)
				}
				var req models.SentimentRequest
				if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Inputs != "hello" {
					t.Errorf("request = %+v, %v", req, err)
				}
				w.Write([]byte(tt.body))
			})

			pred, err := c.PredictSentiment(context.Background(), "hello")
			if err != nil {
				t.Fatalf("PredictSentiment: %v", err)
			}
			if pred.Label != tt.label || pred.Score == nil || *pred.Score != tt.score {
				t.Errorf("prediction = %+v", pred)
			}
		})
	}
}

func TestPredictSentiment_Failures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"unauthorized", http.StatusUnauthorized, `{"error":"Invalid token"}`, analysis.ErrConfiguration},
		{"forbidden", http.StatusForbidden, `{}`, analysis.ErrConfiguration},
		{"model loading", http.StatusServiceUnavailable, `{"error":"Model is loading","estimated_time":20}`, analysis.ErrRemoteUnavailable},
		{"empty array", http.StatusOK, `[]`, analysis.ErrRemoteUnavailable},
		{"empty nested array", http.StatusOK, `[[]]`, analysis.ErrRemoteUnavailable},
		{"not json", http.StatusOK, `<html>`, analysis.ErrRemoteUnavailable},
		{"scalar element", http.StatusOK, `[1]`, analysis.ErrRemoteUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestHFClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			_, err := c.PredictSentiment(context.Background(), "hello")
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestZeroShot(t *testing.T) {
	c := newTestHFClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req models.ZeroShotRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode: %v", err)
			return
		}
		if len(req.Parameters.CandidateLabels) != 3 {
			t.Errorf("labels = %v", req.Parameters.CandidateLabels)
		}
		json.NewEncoder(w).Encode(models.ZeroShotResponse{
			Sequence: req.Inputs,
			Labels:   req.Parameters.CandidateLabels,
			Scores:   []float64{0.7, 0.2, 0.1},
		})
	})

	labels := analysis.ESGCandidateLabels[:]
	resp, err := c.ZeroShot(context.Background(), "solar", labels)
	if err != nil {
		t.Fatalf("ZeroShot: %v", err)
	}
	if len(resp.Scores) != 3 || resp.Scores[0] != 0.7 {
		t.Errorf("scores = %v", resp.Scores)
	}
}

func TestZeroShot_MissingScores(t *testing.T) {
	c := newTestHFClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"sequence":"x","labels":[]}`))
	})

	_, err := c.ZeroShot(context.Background(), "x", []string{"a"})
	if !errors.Is(err, analysis.ErrRemoteUnavailable) {
		t.Fatalf("err = %v, want ErrRemoteUnavailable", err)
	}
}

func TestHealthCheck(t *testing.T) {
	tests := []struct {
		status int
		want   bool
	}{
		{http.StatusOK, true},
		{http.StatusMethodNotAllowed, true},
		{http.StatusUnauthorized, false},
		{http.StatusBadGateway, false},
	}

	for _, tt := range tests {
		c := newTestHFClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
		})
		if got := c.HealthCheck(context.Background()); got != tt.want {
			t.Errorf("HealthCheck() with status %d = %v, want %v", tt.status, got, tt.want)
		}
	}
}
