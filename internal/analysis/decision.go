package analysis

import (
	"math"

	"github.com/spacesedan/esgpulse/internal/models"
)

const (
	positiveThreshold  = 0.15
	negativeThreshold  = -0.15
	dominanceThreshold = 0.4
	mixedCeiling       = 0.6

	// LocalRelevance and RemoteRelevance are the per-dimension scores above
	// which a dimension counts as substantially represented.
	LocalRelevance  = 0.25
	RemoteRelevance = 0.35
)

// LabelForScore maps a sentiment score to its label. Scores inside the
// (-0.15, 0.15) band stay neutral.
func LabelForScore(score float64) models.SentimentLabel {
	switch {
	case score > positiveThreshold:
		return models.SentimentPositive
	case score < negativeThreshold:
		return models.SentimentNegative
	default:
		return models.SentimentNeutral
	}
}

// Categorize derives the ESG category from scores.
//
// A dimension wins when its score is above 0.4, with ties going to
// environmental, then social, then governance. If more than one dimension
// is above relevance and nothing reaches 0.6, the result is Multiple even
// when a single winner was found.
func Categorize(s models.ESGScores, relevance float64) models.ESGCategory {
	maxScore := math.Max(s.Environmental, math.Max(s.Social, s.Governance))

	category := models.CategoryOther
	if maxScore > dominanceThreshold {
		switch maxScore {
		case s.Environmental:
			category = models.CategoryEnvironmental
		case s.Social:
			category = models.CategorySocial
		default:
			category = models.CategoryGovernance
		}
	}

	relevant := 0
	for _, v := range s.Values() {
		if v > relevance {
			relevant++
		}
	}
	if relevant > 1 && maxScore < mixedCeiling {
		category = models.CategoryMultiple
	}

	return category
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(lo, math.Min(hi, v))
}
