package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/spacesedan/esgpulse/config"
	"github.com/spacesedan/esgpulse/internal/db"
)

func settings() config.Settings {
	return config.Settings{
		Port:                8080,
		StoreDriver:         config.STORE_MEMORY,
		InferenceTimeout:    time.Second,
		IngestConcurrency:   2,
		IngestInterval:      time.Hour,
		HealthcheckInterval: time.Second,
	}
}

func TestNew_WithoutCredentials(t *testing.T) {
	a, err := New(context.Background(), settings())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer a.Close(context.Background())

	if a.Inference != nil || a.Analyzer.RemoteEnabled() {
		t.Error("remote inference enabled without a token")
	}
	if a.News.Configured() {
		t.Error("news configured without a key")
	}
	if _, ok := a.Store.(*db.MemoryStore); !ok {
		t.Errorf("store = %T", a.Store)
	}

	// returns at once when there is nothing to monitor
	a.MonitorInference(context.Background())

	srv := httptest.NewServer(a.Router())
	defer srv.Close()
	res, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Errorf("health status = %d", res.StatusCode)
	}
}

func TestNew_RemoteAndLocalOnly(t *testing.T) {
	s := settings()
	s.HuggingFaceToken = "hf_test"

	a, err := New(context.Background(), s)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if a.Inference == nil || !a.Analyzer.RemoteEnabled() || !a.InferenceHealthy.Load() {
		t.Error("remote inference not wired with a token")
	}

	store := db.NewMemoryStore()
	local, err := New(context.Background(), s, WithLocalOnly(), WithStore(store))
	if err != nil {
		t.Fatalf("New(local): %v", err)
	}
	if local.Analyzer.RemoteEnabled() || local.Store != db.Store(store) {
		t.Error("options not applied")
	}
}

func TestNew_UnknownDriver(t *testing.T) {
	s := settings()
	s.StoreDriver = "sqlite"
	if _, err := New(context.Background(), s); err == nil {
		t.Fatal("expected an error")
	}
}
