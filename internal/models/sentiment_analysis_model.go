package models

type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "positive"
	SentimentNegative SentimentLabel = "negative"
	SentimentNeutral  SentimentLabel = "neutral"
)

// Valid reports whether l is one of the three known labels.
func (l SentimentLabel) Valid() bool {
	switch l {
	case SentimentPositive, SentimentNegative, SentimentNeutral:
		return true
	}
	return false
}

type ESGCategory string

const (
	CategoryEnvironmental ESGCategory = "Environmental"
	CategorySocial        ESGCategory = "Social"
	CategoryGovernance    ESGCategory = "Governance"
	CategoryMultiple      ESGCategory = "Multiple"
	CategoryOther         ESGCategory = "Other"
)

// Categories lists every category in display order.
var Categories = []ESGCategory{
	CategoryEnvironmental,
	CategorySocial,
	CategoryGovernance,
	CategoryMultiple,
	CategoryOther,
}

func (c ESGCategory) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// AnalysisSource records which strategy produced the sentiment and ESG figures.
type AnalysisSource string

const (
	SourceRemote AnalysisSource = "remote"
	SourceLocal  AnalysisSource = "local"
)

type SentimentResult struct {
	Label SentimentLabel `json:"label"`
	Score float64        `json:"score"`
}

type ESGScores struct {
	Environmental float64 `json:"environmental" bson:"environmental" dynamodbav:"environmental"`
	Social        float64 `json:"social" bson:"social" dynamodbav:"social"`
	Governance    float64 `json:"governance" bson:"governance" dynamodbav:"governance"`
}

// Values returns the scores in environmental, social, governance order.
func (s ESGScores) Values() [3]float64 {
	return [3]float64{s.Environmental, s.Social, s.Governance}
}

type ESGResult struct {
	Scores   ESGScores   `json:"scores"`
	Category ESGCategory `json:"category"`
}

// AnalysisResult is the output of one analysis run. It is created once and
// never modified afterwards.
type AnalysisResult struct {
	Sentiment      SentimentLabel `json:"sentiment"`
	SentimentScore float64        `json:"sentimentScore"`
	ESGScores      ESGScores      `json:"esgScores"`
	Category       ESGCategory    `json:"category"`
	Keywords       []string       `json:"keywords"`
	Summary        string         `json:"summary"`
	Source         AnalysisSource `json:"source"`
}
