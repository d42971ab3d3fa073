package models

type SentimentRequest struct {
	Inputs string `json:"inputs"`
}

// SentimentPrediction is one label/score pair from a text-classification
// model. Score is a pointer so a missing field can be told apart from zero.
type SentimentPrediction struct {
	Label string   `json:"label"`
	Score *float64 `json:"score"`
}

type (
	ZeroShotRequest struct {
		Inputs     string             `json:"inputs"`
		Parameters ZeroShotParameters `json:"parameters"`
	}
	ZeroShotParameters struct {
		CandidateLabels []string `json:"candidate_labels"`
	}
)

type ZeroShotResponse struct {
	Sequence string    `json:"sequence"`
	Labels   []string  `json:"labels"`
	Scores   []float64 `json:"scores"`
}

type InferenceError struct {
	Error         string  `json:"error"`
	EstimatedTime float64 `json:"estimated_time,omitempty"`
}
