package analysis

import (
	"regexp"
	"strings"

	"github.com/spacesedan/esgpulse/internal/lexicon"
	"github.com/spacesedan/esgpulse/internal/models"
)

var nonWordRun = regexp.MustCompile(`\W+`)

// LocalAnalyzer scores sentiment and ESG relevance from the lexicon alone.
// It never touches the network.
type LocalAnalyzer struct {
	lex *lexicon.Lexicon
}

func NewLocalAnalyzer(lex *lexicon.Lexicon) *LocalAnalyzer {
	return &LocalAnalyzer{lex: lex}
}

// Sentiment counts positive and negative tokens and scores the balance
// between them. A token found in both lists counts on both sides.
func (a *LocalAnalyzer) Sentiment(text string) models.SentimentResult {
	var positive, negative int
	for _, token := range nonWordRun.Split(strings.ToLower(text), -1) {
		if a.lex.IsPositive(token) {
			positive++
		}
		if a.lex.IsNegative(token) {
			negative++
		}
	}

	total := positive + negative
	if total == 0 {
		return models.SentimentResult{Label: models.SentimentNeutral, Score: 0}
	}

	score := clamp(float64(positive-negative)/float64(total), -1, 1)
	return models.SentimentResult{Label: LabelForScore(score), Score: score}
}

// ESG counts substring occurrences of each dimension's terms and
// normalises them by the combined count.
func (a *LocalAnalyzer) ESG(text string) models.ESGResult {
	lower := strings.ToLower(text)

	var counts [3]int
	for i, d := range lexicon.Dimensions {
		counts[i] = a.lex.CountDimension(d, lower)
	}

	total := counts[0] + counts[1] + counts[2]
	if total == 0 {
		total = 1
	}

	scores := models.ESGScores{
		Environmental: float64(counts[0]) / float64(total),
		Social:        float64(counts[1]) / float64(total),
		Governance:    float64(counts[2]) / float64(total),
	}
	return models.ESGResult{Scores: scores, Category: Categorize(scores, LocalRelevance)}
}
