package clients

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/spacesedan/esgpulse/internal/models"
)

const (
	NEWS_API_BASE_URL      = "https://newsapi.org/v2"
	NEWS_API_MAX_PAGE_SIZE = 100
	NEWS_API_DEFAULT_RPS   = 1.0
	NEWS_API_CACHE_TTL     = 5 * time.Minute
	NEWS_API_TIMEOUT       = 10 * time.Second
)

var (
	ErrNewsAPINotConfigured = errors.New("news API key is not configured")
	ErrNewsAPIUnauthorized  = errors.New("invalid news API key")
	ErrNewsAPIRateLimited   = errors.New("news API rate limit exceeded, please try again later")
)

type NewsAPIConfig struct {
	APIKey   string
	BaseURL  string
	RPS      float64
	CacheTTL time.Duration
}

// NewsAPIClient wraps the NewsAPI v2 REST endpoints with a client side rate
// limit and a short lived response cache. Server errors are retried with
// exponential backoff.
type NewsAPIClient struct {
	Client  *http.Client
	APIKey  string
	BaseURL string

	limiter *rate.Limiter
	cache   *gocache.Cache
	backoff time.Duration
}

type EverythingQuery struct {
	Query    string
	Language string
	SortBy   string
	From     time.Time
	To       time.Time
	PageSize int
	Page     int
}

type HeadlinesQuery struct {
	Country  string
	Category string
	PageSize int
}

func NewNewsAPIClient(cfg NewsAPIConfig) *NewsAPIClient {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = NEWS_API_BASE_URL
	}
	rps := cfg.RPS
	if rps <= 0 {
		rps = NEWS_API_DEFAULT_RPS
	}
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = NEWS_API_CACHE_TTL
	}

	if cfg.APIKey == "" {
		slog.Warn("[NewsAPIClient] API key is missing, news endpoints are disabled")
	}

	return &NewsAPIClient{
		Client:  &http.Client{Timeout: NEWS_API_TIMEOUT},
		APIKey:  cfg.APIKey,
		BaseURL: baseURL,
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
		cache:   gocache.New(ttl, 2*ttl),
		backoff: INITIAL_BACKOFF,
	}
}

func (n *NewsAPIClient) Configured() bool {
	return n != nil && n.APIKey != ""
}

// Everything searches all indexed articles.
func (n *NewsAPIClient) Everything(ctx context.Context, q EverythingQuery) (*models.NewsAPIResponse, error) {
	params := url.Values{}
	params.Set("q", q.Query)
	params.Set("language", defaultString(q.Language, "en"))
	params.Set("sortBy", defaultString(q.SortBy, "publishedAt"))
	params.Set("pageSize", strconv.Itoa(clampPageSize(q.PageSize)))
	if q.Page > 1 {
		params.Set("page", strconv.Itoa(q.Page))
	}
	if !q.From.IsZero() {
		params.Set("from", q.From.UTC().Format("2006-01-02"))
	}
	if !q.To.IsZero() {
		params.Set("to", q.To.UTC().Format("2006-01-02"))
	}
	return n.get(ctx, "/everything", params)
}

// TopHeadlines lists breaking headlines for a country and category.
func (n *NewsAPIClient) TopHeadlines(ctx context.Context, q HeadlinesQuery) (*models.NewsAPIResponse, error) {
	params := url.Values{}
	params.Set("country", defaultString(q.Country, "us"))
	params.Set("category", defaultString(q.Category, "business"))
	params.Set("pageSize", strconv.Itoa(clampPageSize(q.PageSize)))
	return n.get(ctx, "/top-headlines", params)
}

type retryableError struct {
	err error
}

func (r retryableError) Error() string { return r.err.Error() }
func (r retryableError) Unwrap() error { return r.err }

func (n *NewsAPIClient) get(ctx context.Context, path string, params url.Values) (*models.NewsAPIResponse, error) {
	if !n.Configured() {
		return nil, ErrNewsAPINotConfigured
	}

	cacheKey := path + "?" + params.Encode()
	if cached, ok := n.cache.Get(cacheKey); ok {
		slog.Debug("[NewsAPIClient] Cache hit", slog.String("key", cacheKey))
		return cached.(*models.NewsAPIResponse), nil
	}

	params.Set("apiKey", n.APIKey)
	endpoint := n.BaseURL + path + "?" + params.Encode()

	var lastErr error
	backoff := n.backoff

	for attempt := 1; attempt <= MAX_RETRIES; attempt++ {
		if err := n.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		slog.Info("[NewsAPIClient] Fetching articles",
			slog.String("path", path),
			slog.Int("attempt", attempt))

		response, err := n.do(ctx, endpoint)
		if err == nil {
			n.cache.Set(cacheKey, response, gocache.DefaultExpiration)
			slog.Info("[NewsAPIClient] Successfully fetched articles",
				slog.String("path", path),
				slog.Int("count", len(response.Articles)))
			return response, nil
		}

		var retryable retryableError
		if !errors.As(err, &retryable) || ctx.Err() != nil {
			return nil, err
		}
		lastErr = err

		if attempt == MAX_RETRIES {
			break
		}

		slog.Warn("[NewsAPIClient] Request failed, retrying...",
			slog.String("error", err.Error()),
			slog.Duration("backoff", backoff),
			slog.Int("attempt", attempt))

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
		if backoff > MAX_BACKOFF {
			backoff = MAX_BACKOFF
		}
	}

	slog.Error("[NewsAPIClient] Failed after max retries", slog.String("path", path))
	return nil, fmt.Errorf("[NewsAPIClient] failed after %d attempts: %w", MAX_RETRIES, lastErr)
}

func (n *NewsAPIClient) do(ctx context.Context, endpoint string) (*models.NewsAPIResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", USER_AGENT)

	res, err := n.Client.Do(req)
	if err != nil {
		slog.Error("[NewsAPIClient] Request failed", slog.String("error", err.Error()))
		return nil, retryableError{err: err}
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		slog.Error("[NewsAPIClient] Failed to read response body", slog.String("error", err.Error()))
		return nil, retryableError{err: err}
	}

	var response models.NewsAPIResponse
	decodeErr := json.Unmarshal(body, &response)

	switch {
	case res.StatusCode == http.StatusOK:
		if decodeErr != nil {
			slog.Error("[NewsAPIClient] Failed to parse JSON response", slog.String("error", decodeErr.Error()))
			return nil, decodeErr
		}
		if response.Status != "ok" {
			return nil, fmt.Errorf("[NewsAPIClient] %s", defaultString(response.Message, "failed to fetch news"))
		}
		return &response, nil
	case res.StatusCode == http.StatusBadRequest:
		slog.Warn("[NewsAPIClient] Bad request: check query parameters", slog.String("message", response.Message))
		return nil, fmt.Errorf("[NewsAPIClient] bad request: %s", defaultString(response.Message, "check query parameters"))
	case res.StatusCode == http.StatusUnauthorized:
		slog.Error("[NewsAPIClient] Invalid API Key, check credentials")
		return nil, ErrNewsAPIUnauthorized
	case res.StatusCode == http.StatusForbidden:
		slog.Error("[NewsAPIClient] Access forbidden, check API key permissions")
		return nil, errors.New("[NewsAPIClient] API key lacks required permissions")
	case res.StatusCode == http.StatusTooManyRequests:
		slog.Warn("[NewsAPIClient] Rate limit exceeded")
		return nil, ErrNewsAPIRateLimited
	case res.StatusCode >= 500:
		slog.Warn("[NewsAPIClient] Server Error", slog.Int("statusCode", res.StatusCode))
		return nil, retryableError{err: fmt.Errorf("[NewsAPIClient] server error: status %d", res.StatusCode)}
	default:
		slog.Warn("[NewsAPIClient] Unexpected Response", slog.Int("statusCode", res.StatusCode))
		return nil, fmt.Errorf("[NewsAPIClient] unexpected status code %d", res.StatusCode)
	}
}

func clampPageSize(size int) int {
	if size <= 0 || size > NEWS_API_MAX_PAGE_SIZE {
		return NEWS_API_MAX_PAGE_SIZE
	}
	return size
}

func defaultString(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
