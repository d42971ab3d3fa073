package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	s, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if s.Port != 8080 || s.StoreDriver != STORE_MEMORY || s.MongoDatabase != "esgpulse" {
		t.Errorf("unexpected defaults: %+v", s)
	}
	if s.InferenceTimeout != 15*time.Second || s.IngestInterval != 6*time.Hour {
		t.Errorf("unexpected durations: %v %v", s.InferenceTimeout, s.IngestInterval)
	}
	if s.KafkaTopic != "esg-articles-analyzed" || s.IngestConcurrency != 1 {
		t.Errorf("unexpected defaults: %+v", s)
	}
	if s.ConfigFile != "" {
		t.Errorf("ConfigFile = %q, want none", s.ConfigFile)
	}
}

func TestLoad_Environment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PORT", "9090")
	t.Setenv("HUGGINGFACE_TOKEN", "hf_abc")
	t.Setenv("INFERENCE_TIMEOUT", "3s")
	t.Setenv("NEWS_ENRICH_CONTENT", "true")
	t.Setenv("INGEST_CONCURRENCY", "4")

	s, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Port != 9090 || s.HuggingFaceToken != "hf_abc" || s.InferenceTimeout != 3*time.Second {
		t.Errorf("environment not applied: %+v", s)
	}
	if !s.NewsEnrichContent || s.IngestConcurrency != 4 {
		t.Errorf("environment not applied: %+v", s)
	}
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("STORE_DRIVER", "postgres")

	_, err := Load()
	if err == nil || !strings.Contains(err.Error(), "STORE_DRIVER") {
		t.Fatalf("err = %v, want STORE_DRIVER error", err)
	}
}

func TestValidate(t *testing.T) {
	valid := Settings{
		Port:                8080,
		StoreDriver:         STORE_MEMORY,
		InferenceTimeout:    time.Second,
		IngestConcurrency:   1,
		IngestInterval:      time.Hour,
		HealthcheckInterval: time.Second,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid settings rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Settings)
	}{
		{"zero port", func(s *Settings) { s.Port = 0 }},
		{"zero timeout", func(s *Settings) { s.InferenceTimeout = 0 }},
		{"mongo without uri", func(s *Settings) { s.StoreDriver = STORE_MONGO }},
		{"zero concurrency", func(s *Settings) { s.IngestConcurrency = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid
			tt.mutate(&s)
			if err := s.Validate(); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestMasked(t *testing.T) {
	s := Settings{HuggingFaceToken: "hf_secret", NewsAPIKey: "", MongoURI: "mongodb://u:p@h"}
	m := s.Masked()

	if m.HuggingFaceToken == "hf_secret" || m.MongoURI == s.MongoURI {
		t.Error("secrets were not masked")
	}
	if m.NewsAPIKey != "" {
		t.Errorf("empty secret masked to %q", m.NewsAPIKey)
	}
	if s.HuggingFaceToken != "hf_secret" {
		t.Error("Masked modified the receiver")
	}
}
