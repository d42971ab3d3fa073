package analysis

import (
	"math"
	"strings"
	"testing"

	"github.com/spacesedan/esgpulse/internal/lexicon"
	"github.com/spacesedan/esgpulse/internal/models"
)

func newLocal() *LocalAnalyzer {
	return NewLocalAnalyzer(lexicon.Default())
}

func TestLocalAnalyzer_Sentiment(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantLabel models.SentimentLabel
		wantScore float64
	}{
		{
			name:      "five positive one negative",
			text:      "Good, great and excellent success brought profit despite one loss.",
			wantLabel: models.SentimentPositive,
			wantScore: 4.0 / 6.0,
		},
		{
			name:      "no sentiment terms",
			text:      "The meeting is scheduled for Tuesday afternoon.",
			wantLabel: models.SentimentNeutral,
			wantScore: 0,
		},
		{
			name:      "all negative",
			text:      "Fraud, scandal and a lawsuit.",
			wantLabel: models.SentimentNegative,
			wantScore: -1,
		},
		{
			name:      "balanced is neutral",
			text:      "Growth and decline.",
			wantLabel: models.SentimentNeutral,
			wantScore: 0,
		},
		{
			name:      "case insensitive",
			text:      "GOOD news",
			wantLabel: models.SentimentPositive,
			wantScore: 1,
		},
		{
			name:      "empty text",
			text:      "",
			wantLabel: models.SentimentNeutral,
			wantScore: 0,
		},
	}

	a := newLocal()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := a.Sentiment(tt.text)
			if got.Label != tt.wantLabel {
				t.Errorf("label = %s, want %s", got.Label, tt.wantLabel)
			}
			if math.Abs(got.Score-tt.wantScore) > 1e-9 {
				t.Errorf("score = %v, want %v", got.Score, tt.wantScore)
			}
		})
	}
}

func TestLocalAnalyzer_Sentiment_TermInBothLists(t *testing.T) {
	lex := lexicon.New(lexicon.Terms{
		Positive: []string{"bold", "bright"},
		Negative: []string{"bold"},
	})
	a := NewLocalAnalyzer(lex)

	// bold counts on both sides, bright once: (2-1)/3.
	got := a.Sentiment("bold bright")
	if math.Abs(got.Score-1.0/3.0) > 1e-9 {
		t.Fatalf("score = %v, want 1/3", got.Score)
	}
	if got.Label != models.SentimentPositive {
		t.Errorf("label = %s", got.Label)
	}
}

func TestLocalAnalyzer_ESG(t *testing.T) {
	a := newLocal()

	t.Run("environmental dominant", func(t *testing.T) {
		text := strings.Repeat("solar ", 8) + "volunteer"
		got := a.ESG(text)

		if math.Abs(got.Scores.Environmental-8.0/9.0) > 1e-9 {
			t.Errorf("environmental = %v, want 8/9", got.Scores.Environmental)
		}
		if math.Abs(got.Scores.Social-1.0/9.0) > 1e-9 {
			t.Errorf("social = %v, want 1/9", got.Scores.Social)
		}
		if got.Scores.Governance != 0 {
			t.Errorf("governance = %v, want 0", got.Scores.Governance)
		}
		if got.Category != models.CategoryEnvironmental {
			t.Errorf("category = %s, want Environmental", got.Category)
		}
	})

	t.Run("no terms is Other with zero scores", func(t *testing.T) {
		got := a.ESG("Quarterly numbers out on Monday.")
		if got.Scores != (models.ESGScores{}) {
			t.Errorf("scores = %+v, want zero", got.Scores)
		}
		if got.Category != models.CategoryOther {
			t.Errorf("category = %s, want Other", got.Category)
		}
	})

	t.Run("substring matches count", func(t *testing.T) {
		// "economy" contains "eco".
		got := a.ESG("the economy")
		if got.Scores.Environmental != 1 {
			t.Errorf("environmental = %v, want 1", got.Scores.Environmental)
		}
	})

	t.Run("scores sum to one", func(t *testing.T) {
		got := a.ESG("Carbon emissions, employee safety and board oversight were discussed.")
		sum := got.Scores.Environmental + got.Scores.Social + got.Scores.Governance
		if math.Abs(sum-1) > 1e-9 {
			t.Errorf("sum = %v, want 1", sum)
		}
		if got.Category != Categorize(got.Scores, LocalRelevance) {
			t.Errorf("category %s not derived from scores", got.Category)
		}
	})
}
