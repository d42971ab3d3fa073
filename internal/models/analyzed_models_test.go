package models

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func validArticle() *Article {
	return &Article{
		Title:          "Solar farm opens",
		Content:        "A new solar farm opened this week.",
		Sentiment:      SentimentPositive,
		SentimentScore: 0.5,
		Category:       CategoryEnvironmental,
		ESGScores:      ESGScores{Environmental: 0.8, Social: 0.2},
	}
}

func TestArticle_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(a *Article)
		wantErr string
	}{
		{name: "valid", mutate: func(a *Article) {}},
		{name: "empty title", mutate: func(a *Article) { a.Title = "  " }, wantErr: "title is required"},
		{name: "bad sentiment", mutate: func(a *Article) { a.Sentiment = "mixed" }, wantErr: "sentiment"},
		{name: "score too high", mutate: func(a *Article) { a.SentimentScore = 1.5 }, wantErr: "sentimentScore"},
		{name: "bad category", mutate: func(a *Article) { a.Category = "Economic" }, wantErr: "category"},
		{name: "negative esg", mutate: func(a *Article) { a.ESGScores.Governance = -0.1 }, wantErr: "esg score"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := validArticle()
			tt.mutate(a)
			err := a.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestArticle_DominantCategory(t *testing.T) {
	tests := []struct {
		scores ESGScores
		want   ESGCategory
	}{
		{ESGScores{}, CategoryOther},
		{ESGScores{Environmental: 0.2, Social: 0.5, Governance: 0.3}, CategorySocial},
		{ESGScores{Environmental: 0.4, Social: 0.4, Governance: 0.2}, CategoryEnvironmental},
		{ESGScores{Social: 0.1, Governance: 0.9}, CategoryGovernance},
	}

	for _, tt := range tests {
		a := &Article{ESGScores: tt.scores}
		if got := a.DominantCategory(); got != tt.want {
			t.Errorf("DominantCategory(%+v) = %s, want %s", tt.scores, got, tt.want)
		}
	}
}

func TestNewArticle_TrimsAndStamps(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	in := ArticleInput{Title: "  Board shake-up  ", Content: "body", URL: " https://example.com/a "}
	r := AnalysisResult{
		Sentiment: SentimentNeutral,
		Category:  CategoryGovernance,
		Keywords:  []string{" board "},
		Summary:   " summary ",
		Source:    SourceLocal,
	}

	a := NewArticle(in, r, now)
	if a.Title != "Board shake-up" || a.URL != "https://example.com/a" {
		t.Errorf("fields not trimmed: %q %q", a.Title, a.URL)
	}
	if a.Keywords[0] != "board" || a.Summary != "summary" {
		t.Errorf("analysis fields not trimmed: %v %q", a.Keywords, a.Summary)
	}
	if !a.AnalyzedAt.Equal(now) || !a.CreatedAt.Equal(now) {
		t.Errorf("timestamps not set")
	}
	if a.AnalysisSource != SourceLocal {
		t.Errorf("AnalysisSource = %s", a.AnalysisSource)
	}
}

func TestTrendDay_MarshalJSON(t *testing.T) {
	day := NewTrendDay("2026-03-01")
	day.Categories[CategorySocial] = TrendCell{Count: 2, Sentiment: 0.25}

	raw, err := json.Marshal(day)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var got map[string]json.RawMessage
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(got) != 6 {
		t.Fatalf("expected date plus five categories, got %d keys", len(got))
	}
	if string(got["Social"]) != `{"count":2,"sentiment":0.25}` {
		t.Errorf("Social = %s", got["Social"])
	}
}
