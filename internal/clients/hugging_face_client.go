package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/spacesedan/esgpulse/internal/analysis"
	"github.com/spacesedan/esgpulse/internal/models"
)

const (
	HF_INFERENCE_BASE_URL = "https://api-inference.huggingface.co/models"
	HF_SENTIMENT_MODEL    = "distilbert-base-uncased-finetuned-sst-2-english"
	HF_ZERO_SHOT_MODEL    = "facebook/bart-large-mnli"
	HF_REQUEST_TIMEOUT    = 15 * time.Second
)

type HuggingFaceConfig struct {
	Token   string
	BaseURL string
	Timeout time.Duration
}

// HuggingFaceClient calls the hosted inference API. It implements
// analysis.InferenceClient. Calls are never retried.
type HuggingFaceClient struct {
	Client  *http.Client
	BaseURL string
	token   string
}

// NewHuggingFaceClient fails with analysis.ErrConfiguration when no token is
// given.
func NewHuggingFaceClient(cfg HuggingFaceConfig) (*HuggingFaceClient, error) {
	if strings.TrimSpace(cfg.Token) == "" {
		return nil, fmt.Errorf("[HuggingFaceClient] %w: HUGGINGFACE_TOKEN is empty", analysis.ErrConfiguration)
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = HF_INFERENCE_BASE_URL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = HF_REQUEST_TIMEOUT
	}

	slog.Info("[HuggingFaceClient] Initializing Client",
		slog.String("base_url", baseURL),
		slog.Duration("timeout", timeout))

	return &HuggingFaceClient{
		Client:  &http.Client{Timeout: timeout},
		BaseURL: baseURL,
		token:   cfg.Token,
	}, nil
}

// PredictSentiment returns the top prediction of the sentiment model. The
// provider answers with an array whose first element is either the
// prediction or a nested array of predictions.
func (h *HuggingFaceClient) PredictSentiment(ctx context.Context, text string) (models.SentimentPrediction, error) {
	start := time.Now()

	var raw []json.RawMessage
	if err := h.postJSON(ctx, h.modelURL(HF_SENTIMENT_MODEL), models.SentimentRequest{Inputs: text}, &raw); err != nil {
		slog.Warn("[HuggingFaceClient] Sentiment request failed",
			slog.Duration("elapsed", time.Since(start)),
			slog.String("error", err.Error()))
		return models.SentimentPrediction{}, err
	}

	pred, err := firstPrediction(raw)
	if err != nil {
		return models.SentimentPrediction{}, err
	}

	slog.Debug("[HuggingFaceClient] Sentiment request successful",
		slog.String("label", pred.Label),
		slog.Duration("elapsed", time.Since(start)))
	return pred, nil
}

// ZeroShot scores text against the candidate labels.
func (h *HuggingFaceClient) ZeroShot(ctx context.Context, text string, labels []string) (models.ZeroShotResponse, error) {
	start := time.Now()

	req := models.ZeroShotRequest{
		Inputs:     text,
		Parameters: models.ZeroShotParameters{CandidateLabels: labels},
	}

	var resp models.ZeroShotResponse
	if err := h.postJSON(ctx, h.modelURL(HF_ZERO_SHOT_MODEL), req, &resp); err != nil {
		slog.Warn("[HuggingFaceClient] Zero-shot request failed",
			slog.Duration("elapsed", time.Since(start)),
			slog.String("error", err.Error()))
		return models.ZeroShotResponse{}, err
	}
	if resp.Scores == nil {
		return models.ZeroShotResponse{}, fmt.Errorf("%w: zero-shot response has no scores", analysis.ErrRemoteUnavailable)
	}

	slog.Debug("[HuggingFaceClient] Zero-shot request successful",
		slog.Duration("elapsed", time.Since(start)))
	return resp, nil
}

// HealthCheck reports whether the sentiment model endpoint is reachable
// and accepts the configured token.
func (h *HuggingFaceClient) HealthCheck(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.modelURL(HF_SENTIMENT_MODEL), nil)
	if err != nil {
		return false
	}
	h.setHeaders(req)

	resp, err := h.Client.Do(req)
	if err != nil {
		slog.Warn("[HuggingFaceClient] Health check failed", slog.String("error", err.Error()))
		return false
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	switch {
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return false
	case resp.StatusCode >= 500:
		return false
	}
	return true
}

func (h *HuggingFaceClient) modelURL(model string) string {
	return h.BaseURL + "/" + model
}

func (h *HuggingFaceClient) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+h.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", USER_AGENT)
}

// postJSON sends input and decodes a 2xx body into output. Rejected
// credentials map to ErrConfiguration; every other failure maps to
// ErrRemoteUnavailable.
func (h *HuggingFaceClient) postJSON(ctx context.Context, endpoint string, input interface{}, output interface{}) error {
	body, err := json.Marshal(input)
	if err != nil {
		return fmt.Errorf("failed to marshal input: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	h.setHeaders(req)

	resp, err := h.Client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", analysis.ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: failed to read response: %v", analysis.ErrRemoteUnavailable, err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		slog.Error("[HuggingFaceClient] Token rejected",
			slog.String("endpoint", endpoint),
			slog.Int("status", resp.StatusCode))
		return fmt.Errorf("%w: status %d", analysis.ErrConfiguration, resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return fmt.Errorf("%w: status %d: %s", analysis.ErrRemoteUnavailable, resp.StatusCode, providerMessage(respBody))
	}

	if err := json.Unmarshal(respBody, output); err != nil {
		slog.Warn("[HuggingFaceClient] Failed to unmarshal response",
			slog.String("endpoint", endpoint),
			getPreview(respBody),
			slog.Int("raw_response_length", len(respBody)))
		return fmt.Errorf("%w: failed to unmarshal response: %v", analysis.ErrRemoteUnavailable, err)
	}
	return nil
}

func firstPrediction(raw []json.RawMessage) (models.SentimentPrediction, error) {
	if len(raw) == 0 {
		return models.SentimentPrediction{}, fmt.Errorf("%w: empty sentiment response", analysis.ErrRemoteUnavailable)
	}

	first := bytes.TrimSpace(raw[0])
	if len(first) > 0 && first[0] == '[' {
		var nested []models.SentimentPrediction
		if err := json.Unmarshal(first, &nested); err != nil {
			return models.SentimentPrediction{}, fmt.Errorf("%w: malformed sentiment response: %v", analysis.ErrRemoteUnavailable, err)
		}
		if len(nested) == 0 {
			return models.SentimentPrediction{}, fmt.Errorf("%w: empty sentiment response", analysis.ErrRemoteUnavailable)
		}
		return nested[0], nil
	}

	if len(first) == 0 || first[0] != '{' {
		return models.SentimentPrediction{}, fmt.Errorf("%w: unexpected sentiment element %s", analysis.ErrRemoteUnavailable, getPreview(first).Value)
	}

	var pred models.SentimentPrediction
	if err := json.Unmarshal(first, &pred); err != nil {
		return models.SentimentPrediction{}, fmt.Errorf("%w: malformed sentiment response: %v", analysis.ErrRemoteUnavailable, err)
	}
	return pred, nil
}

func providerMessage(body []byte) string {
	var e models.InferenceError
	if err := json.Unmarshal(body, &e); err == nil && e.Error != "" {
		return e.Error
	}
	return getPreview(body).Value.String()
}

func getPreview(respBody []byte) slog.Attr {
	raw := string(respBody)
	if len(raw) > 50 {
		raw = raw[:50]
	}
	return slog.String("raw_response", raw)
}
