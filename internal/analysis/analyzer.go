// Package analysis turns article text into sentiment, ESG, keyword and
// summary results. Remote model inference is preferred; the lexicon-based
// local heuristics take over whenever the remote path fails.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spacesedan/esgpulse/internal/lexicon"
	"github.com/spacesedan/esgpulse/internal/models"
)

// Analyzer is safe for concurrent use.
type Analyzer struct {
	local    *LocalAnalyzer
	keywords *KeywordExtractor
	remote   *RemoteAnalyzer
}

type Option func(*Analyzer)

// WithRemote enables the remote path. A nil client leaves it disabled.
func WithRemote(client InferenceClient, timeout time.Duration) Option {
	return func(a *Analyzer) {
		if client == nil {
			return
		}
		a.remote = NewRemoteAnalyzer(client, timeout)
	}
}

func New(lex *lexicon.Lexicon, opts ...Option) *Analyzer {
	a := &Analyzer{
		local:    NewLocalAnalyzer(lex),
		keywords: NewKeywordExtractor(lex),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// LocalOnly returns a copy of a with the remote path disabled.
func (a *Analyzer) LocalOnly() *Analyzer {
	return &Analyzer{local: a.local, keywords: a.keywords}
}

func (a *Analyzer) RemoteEnabled() bool {
	return a.remote != nil
}

// Analyze produces the full result for one article.
//
// Sentiment and ESG come from the remote provider when both remote calls
// succeed. Otherwise both are recomputed locally from the full text.
// Keywords and summary are always local. The returned error is either
// ErrConfiguration (wrapped) or ErrAnalysisFailed.
func (a *Analyzer) Analyze(ctx context.Context, title, content string) (result models.AnalysisResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("[Analyzer] Analysis panicked", slog.Any("panic", r))
			result, err = models.AnalysisResult{}, ErrAnalysisFailed
		}
	}()

	fullText := title + ". " + content

	var (
		sentiment models.SentimentResult
		esg       models.ESGResult
		source    = models.SourceLocal
		remoteOK  bool
	)

	if a.remote != nil {
		start := time.Now()
		s, e, rerr := a.remote.Analyze(ctx, truncateRunes(fullText, RemoteInputLimit))
		switch {
		case rerr == nil:
			sentiment, esg, source, remoteOK = s, e, models.SourceRemote, true
		case errors.Is(rerr, ErrConfiguration):
			slog.Error("[Analyzer] Inference provider rejected credentials",
				slog.String("error", rerr.Error()))
			return models.AnalysisResult{}, fmt.Errorf("remote analysis: %w", rerr)
		default:
			slog.Warn("[Analyzer] Remote inference unavailable, using local analysis",
				slog.String("error", rerr.Error()),
				slog.Duration("elapsed", time.Since(start)))
		}
	}

	if !remoteOK {
		sentiment = a.local.Sentiment(fullText)
		esg = a.local.ESG(fullText)
	}

	result = models.AnalysisResult{
		Sentiment:      sentiment.Label,
		SentimentScore: sentiment.Score,
		ESGScores:      esg.Scores,
		Category:       esg.Category,
		Keywords:       a.keywords.Extract(fullText),
		Summary:        Summarize(fullText),
		Source:         source,
	}

	if verr := checkResult(result); verr != nil {
		slog.Error("[Analyzer] Assembled result failed checks", slog.String("error", verr.Error()))
		return models.AnalysisResult{}, ErrAnalysisFailed
	}
	return result, nil
}

// checkResult guards the invariants every caller relies on.
func checkResult(r models.AnalysisResult) error {
	if r.SentimentScore < -1 || r.SentimentScore > 1 {
		return fmt.Errorf("sentiment score %v out of range", r.SentimentScore)
	}
	if LabelForScore(r.SentimentScore) != r.Sentiment {
		return fmt.Errorf("label %s inconsistent with score %v", r.Sentiment, r.SentimentScore)
	}
	if sum := r.ESGScores.Environmental + r.ESGScores.Social + r.ESGScores.Governance; sum > 1+esgSumTolerance {
		return fmt.Errorf("esg scores sum to %v", sum)
	}
	if !r.Category.Valid() {
		return fmt.Errorf("unknown category %q", r.Category)
	}
	if len(r.Keywords) == 0 || len(r.Keywords) > MaxKeywords {
		return fmt.Errorf("keyword count %d out of range", len(r.Keywords))
	}
	if r.Summary == "" {
		return errors.New("empty summary")
	}
	return nil
}
