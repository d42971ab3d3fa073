package analysis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/spacesedan/esgpulse/internal/models"
)

const (
	// DefaultRemoteTimeout bounds the combined remote task.
	DefaultRemoteTimeout = 15 * time.Second

	// RemoteInputLimit is the number of characters sent to the provider.
	RemoteInputLimit = 512

	defaultConfidence = 0.5

	// esgSumTolerance absorbs rounding in provider probabilities.
	esgSumTolerance = 1e-6
)

// ESGCandidateLabels are the zero-shot labels, in environmental, social,
// governance order.
var ESGCandidateLabels = [3]string{
	"environmental sustainability climate carbon emissions",
	"social responsibility human rights labor diversity",
	"corporate governance ethics compliance transparency",
}

// InferenceClient is the wire-level view of a model host.
type InferenceClient interface {
	PredictSentiment(ctx context.Context, text string) (models.SentimentPrediction, error)
	ZeroShot(ctx context.Context, text string, labels []string) (models.ZeroShotResponse, error)
}

// RemoteAnalyzer turns raw model predictions into sentiment and ESG results.
type RemoteAnalyzer struct {
	client  InferenceClient
	timeout time.Duration
}

func NewRemoteAnalyzer(client InferenceClient, timeout time.Duration) *RemoteAnalyzer {
	if timeout <= 0 {
		timeout = DefaultRemoteTimeout
	}
	return &RemoteAnalyzer{client: client, timeout: timeout}
}

// Analyze runs both remote sub-tasks concurrently and waits for both to
// settle. It succeeds only if both do; a single failure fails the pair.
// Both sub-errors are kept so ErrConfiguration is visible whichever call
// reported it.
func (r *RemoteAnalyzer) Analyze(ctx context.Context, text string) (models.SentimentResult, models.ESGResult, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var (
		sentiment    models.SentimentResult
		esg          models.ESGResult
		sentimentErr error
		esgErr       error
		g            errgroup.Group
	)

	g.Go(func() error {
		sentimentErr = recovered(func() error {
			var err error
			sentiment, err = r.Sentiment(ctx, text)
			return err
		})()
		return nil
	})
	g.Go(func() error {
		esgErr = recovered(func() error {
			var err error
			esg, err = r.ESG(ctx, text)
			return err
		})()
		return nil
	})
	_ = g.Wait()

	if err := errors.Join(sentimentErr, esgErr); err != nil {
		return models.SentimentResult{}, models.ESGResult{}, err
	}
	return sentiment, esg, nil
}

// recovered turns a panic in a remote sub-task into ErrRemoteUnavailable.
func recovered(fn func() error) func() error {
	return func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("%w: panic: %v", ErrRemoteUnavailable, r)
			}
		}()
		return fn()
	}
}

// Sentiment maps a binary classifier prediction onto a signed score.
// Unknown labels are neutral. A missing confidence counts as 0.5.
func (r *RemoteAnalyzer) Sentiment(ctx context.Context, text string) (models.SentimentResult, error) {
	pred, err := r.client.PredictSentiment(ctx, text)
	if err != nil {
		return models.SentimentResult{}, err
	}

	confidence := defaultConfidence
	if pred.Score != nil && *pred.Score != 0 {
		confidence = *pred.Score
	}

	var score float64
	switch strings.ToLower(pred.Label) {
	case string(models.SentimentPositive):
		score = confidence
	case string(models.SentimentNegative):
		score = -confidence
	default:
		return models.SentimentResult{Label: models.SentimentNeutral, Score: 0}, nil
	}

	score = clamp(score, -1, 1)
	return models.SentimentResult{Label: LabelForScore(score), Score: score}, nil
}

// ESG asks the zero-shot classifier to rate the three ESG labels.
func (r *RemoteAnalyzer) ESG(ctx context.Context, text string) (models.ESGResult, error) {
	resp, err := r.client.ZeroShot(ctx, text, ESGCandidateLabels[:])
	if err != nil {
		return models.ESGResult{}, err
	}

	scores, err := alignZeroShotScores(resp)
	if err != nil {
		return models.ESGResult{}, err
	}
	return models.ESGResult{Scores: scores, Category: Categorize(scores, RemoteRelevance)}, nil
}

// alignZeroShotScores maps provider scores onto the three dimensions. When
// the provider echoes the labels they decide the mapping, since some hosts
// sort labels by score. Otherwise scores are taken in request order.
func alignZeroShotScores(resp models.ZeroShotResponse) (models.ESGScores, error) {
	if len(resp.Scores) != len(ESGCandidateLabels) {
		return models.ESGScores{}, fmt.Errorf("%w: expected %d zero-shot scores, got %d",
			ErrRemoteUnavailable, len(ESGCandidateLabels), len(resp.Scores))
	}

	ordered := resp.Scores
	if len(resp.Labels) == len(resp.Scores) {
		byLabel := make(map[string]float64, len(resp.Labels))
		for i, label := range resp.Labels {
			byLabel[label] = resp.Scores[i]
		}
		aligned := make([]float64, 0, len(ESGCandidateLabels))
		for _, label := range ESGCandidateLabels {
			v, ok := byLabel[label]
			if !ok {
				break
			}
			aligned = append(aligned, v)
		}
		if len(aligned) == len(ESGCandidateLabels) {
			ordered = aligned
		}
	}

	scores := models.ESGScores{
		Environmental: clamp(ordered[0], 0, 1),
		Social:        clamp(ordered[1], 0, 1),
		Governance:    clamp(ordered[2], 0, 1),
	}
	// multi-label hosts score each label independently
	if sum := scores.Environmental + scores.Social + scores.Governance; sum > 1+esgSumTolerance {
		return models.ESGScores{}, fmt.Errorf("%w: zero-shot scores sum to %v", ErrRemoteUnavailable, sum)
	}
	return scores, nil
}

// truncateRunes returns at most n characters of s.
func truncateRunes(s string, n int) string {
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
