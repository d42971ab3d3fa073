package clients

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func newTestNewsClient(t *testing.T, handler http.HandlerFunc) *NewsAPIClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewNewsAPIClient(NewsAPIConfig{APIKey: "news-key", BaseURL: srv.URL, RPS: 1000})
	c.backoff = time.Millisecond
	return c
}

func TestNewsAPIClient_Everything(t *testing.T) {
	c := newTestNewsClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if r.URL.Path != "/everything" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if q.Get("apiKey") != "news-key" || q.Get("q") != "tesla" || q.Get("pageSize") != "100" || q.Get("language") != "en" {
			t.Errorf("query = %v", q)
		}
		w.Write([]byte(`{"status":"ok","totalResults":1,"articles":[{"source":{"id":null,"name":"Reuters"},"title":"T","url":"https://x/1","publishedAt":"2024-01-02T00:00:00Z"}]}`))
	})

	resp, err := c.Everything(context.Background(), EverythingQuery{Query: "tesla", PageSize: 500})
	if err != nil {
		t.Fatalf("Everything: %v", err)
	}
	if resp.TotalResults != 1 || len(resp.Articles) != 1 || resp.Articles[0].Source.Name != "Reuters" {
		t.Errorf("response = %+v", resp)
	}
}

func TestNewsAPIClient_CachesResponses(t *testing.T) {
	var hits atomic.Int32
	c := newTestNewsClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(`{"status":"ok","totalResults":0,"articles":[]}`))
	})

	q := HeadlinesQuery{Category: "business", PageSize: 10}
	for i := 0; i < 3; i++ {
		if _, err := c.TopHeadlines(context.Background(), q); err != nil {
			t.Fatalf("TopHeadlines: %v", err)
		}
	}
	if hits.Load() != 1 {
		t.Errorf("server hits = %d, want 1", hits.Load())
	}
}

func TestNewsAPIClient_RetriesServerErrors(t *testing.T) {
	var hits atomic.Int32
	c := newTestNewsClient(t, func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"status":"ok","totalResults":0,"articles":[]}`))
	})

	if _, err := c.TopHeadlines(context.Background(), HeadlinesQuery{}); err != nil {
		t.Fatalf("TopHeadlines: %v", err)
	}
	if hits.Load() != 3 {
		t.Errorf("server hits = %d, want 3", hits.Load())
	}
}

func TestNewsAPIClient_GivesUpAfterMaxRetries(t *testing.T) {
	var hits atomic.Int32
	c := newTestNewsClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	})

	if _, err := c.TopHeadlines(context.Background(), HeadlinesQuery{}); err == nil {
		t.Fatal("expected error")
	}
	if hits.Load() != MAX_RETRIES {
		t.Errorf("server hits = %d, want %d", hits.Load(), MAX_RETRIES)
	}
}

func TestNewsAPIClient_StatusErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"unauthorized", http.StatusUnauthorized, `{"status":"error","code":"apiKeyInvalid"}`, ErrNewsAPIUnauthorized},
		{"rate limited", http.StatusTooManyRequests, `{"status":"error","code":"rateLimited"}`, ErrNewsAPIRateLimited},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var hits atomic.Int32
			c := newTestNewsClient(t, func(w http.ResponseWriter, r *http.Request) {
				hits.Add(1)
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			_, err := c.Everything(context.Background(), EverythingQuery{Query: "x"})
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
			if hits.Load() != 1 {
				t.Errorf("server hits = %d, want 1", hits.Load())
			}
		})
	}
}

func TestNewsAPIClient_ErrorStatusInBody(t *testing.T) {
	c := newTestNewsClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"error","message":"parameter missing"}`))
	})

	_, err := c.Everything(context.Background(), EverythingQuery{Query: "x"})
	if err == nil || err.Error() != "[NewsAPIClient] parameter missing" {
		t.Fatalf("err = %v", err)
	}
}

func TestNewsAPIClient_NotConfigured(t *testing.T) {
	c := NewNewsAPIClient(NewsAPIConfig{})
	if c.Configured() {
		t.Fatal("client without key reports configured")
	}
	if _, err := c.Everything(context.Background(), EverythingQuery{Query: "x"}); !errors.Is(err, ErrNewsAPINotConfigured) {
		t.Fatalf("err = %v, want ErrNewsAPINotConfigured", err)
	}
}
