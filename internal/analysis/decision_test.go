package analysis

import (
	"testing"

	"github.com/spacesedan/esgpulse/internal/models"
)

func TestLabelForScore(t *testing.T) {
	tests := []struct {
		score float64
		want  models.SentimentLabel
	}{
		{1, models.SentimentPositive},
		{0.16, models.SentimentPositive},
		{0.15, models.SentimentNeutral},
		{0, models.SentimentNeutral},
		{-0.15, models.SentimentNeutral},
		{-0.16, models.SentimentNegative},
		{-1, models.SentimentNegative},
	}

	for _, tt := range tests {
		if got := LabelForScore(tt.score); got != tt.want {
			t.Errorf("LabelForScore(%v) = %s, want %s", tt.score, got, tt.want)
		}
	}
}

func TestCategorize(t *testing.T) {
	tests := []struct {
		name      string
		scores    models.ESGScores
		relevance float64
		want      models.ESGCategory
	}{
		{
			name:      "single dominant dimension",
			scores:    models.ESGScores{Environmental: 8.0 / 9.0, Social: 1.0 / 9.0},
			relevance: LocalRelevance,
			want:      models.CategoryEnvironmental,
		},
		{
			name:      "no winner but two relevant becomes Multiple",
			scores:    models.ESGScores{Environmental: 0.35, Social: 0.30, Governance: 0.35},
			relevance: LocalRelevance,
			want:      models.CategoryMultiple,
		},
		{
			name:      "Multiple overrides a winner below 0.6",
			scores:    models.ESGScores{Environmental: 0.3, Social: 0.5, Governance: 0.2},
			relevance: LocalRelevance,
			want:      models.CategoryMultiple,
		},
		{
			name:      "winner at 0.6 is not overridden",
			scores:    models.ESGScores{Environmental: 0.6, Social: 0.3, Governance: 0.1},
			relevance: LocalRelevance,
			want:      models.CategoryEnvironmental,
		},
		{
			name:      "even split is Multiple",
			scores:    models.ESGScores{Environmental: 0.5, Social: 0.5},
			relevance: LocalRelevance,
			want:      models.CategoryMultiple,
		},
		{
			name:      "social and governance split under remote threshold",
			scores:    models.ESGScores{Social: 0.45, Governance: 0.45, Environmental: 0.1},
			relevance: RemoteRelevance,
			want:      models.CategoryMultiple,
		},
		{
			name:      "governance wins alone",
			scores:    models.ESGScores{Environmental: 0.1, Social: 0.2, Governance: 0.7},
			relevance: LocalRelevance,
			want:      models.CategoryGovernance,
		},
		{
			name:      "all zero is Other",
			scores:    models.ESGScores{},
			relevance: LocalRelevance,
			want:      models.CategoryOther,
		},
		{
			name:      "remote threshold keeps single winner",
			scores:    models.ESGScores{Environmental: 0.5, Social: 0.3, Governance: 0.2},
			relevance: RemoteRelevance,
			want:      models.CategoryEnvironmental,
		},
		{
			name:      "same scores under local threshold are Multiple",
			scores:    models.ESGScores{Environmental: 0.5, Social: 0.3, Governance: 0.2},
			relevance: LocalRelevance,
			want:      models.CategoryMultiple,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Categorize(tt.scores, tt.relevance); got != tt.want {
				t.Errorf("Categorize(%+v, %v) = %s, want %s", tt.scores, tt.relevance, got, tt.want)
			}
		})
	}
}

func TestCategorize_TieBreakOrder(t *testing.T) {
	// Ties above 0.6 cannot happen with normalised scores, so the tie-break
	// is visible only when the Multiple override does not apply.
	scores := models.ESGScores{Environmental: 0.45, Social: 0.45, Governance: 0.1}
	if got := Categorize(scores, 0.5); got != models.CategoryEnvironmental {
		t.Errorf("got %s, want Environmental", got)
	}

	scores = models.ESGScores{Social: 0.45, Governance: 0.45, Environmental: 0.1}
	if got := Categorize(scores, 0.5); got != models.CategorySocial {
		t.Errorf("got %s, want Social", got)
	}
}
