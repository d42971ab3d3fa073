package models

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// Article is a persisted, analyzed news article.
type Article struct {
	ID             string         `json:"id" bson:"_id" dynamodbav:"id"`
	Title          string         `json:"title" bson:"title" dynamodbav:"title"`
	Content        string         `json:"content,omitempty" bson:"content" dynamodbav:"content"`
	URL            string         `json:"url" bson:"url" dynamodbav:"url"`
	Source         string         `json:"source,omitempty" bson:"source,omitempty" dynamodbav:"source,omitempty"`
	PublishedAt    string         `json:"publishedAt,omitempty" bson:"publishedAt,omitempty" dynamodbav:"publishedAt,omitempty"`
	Sentiment      SentimentLabel `json:"sentiment" bson:"sentiment" dynamodbav:"sentiment"`
	SentimentScore float64        `json:"sentimentScore" bson:"sentimentScore" dynamodbav:"sentimentScore"`
	VaderScore     float64        `json:"vaderScore" bson:"vaderScore" dynamodbav:"vaderScore"`
	AnalysisSource AnalysisSource `json:"analysisSource" bson:"analysisSource" dynamodbav:"analysisSource"`
	Category       ESGCategory    `json:"category" bson:"category" dynamodbav:"category"`
	ESGScores      ESGScores      `json:"esgScores" bson:"esgScores" dynamodbav:"esgScores"`
	Keywords       []string       `json:"keywords" bson:"keywords" dynamodbav:"keywords"`
	Summary        string         `json:"summary" bson:"summary" dynamodbav:"summary"`
	AnalyzedAt     time.Time      `json:"analyzedAt" bson:"analyzedAt" dynamodbav:"analyzedAt"`
	CreatedAt      time.Time      `json:"createdAt" bson:"createdAt" dynamodbav:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt" bson:"updatedAt" dynamodbav:"updatedAt"`
}

// ArticleInput is what a caller submits for analysis.
type ArticleInput struct {
	Title       string `json:"title"`
	Content     string `json:"content"`
	URL         string `json:"url"`
	Source      string `json:"source,omitempty"`
	PublishedAt string `json:"publishedAt,omitempty"`
}

// NewArticle builds a record from an input and its analysis. Titles and
// summaries are trimmed the same way they are on the way in.
func NewArticle(in ArticleInput, r AnalysisResult, now time.Time) *Article {
	keywords := make([]string, 0, len(r.Keywords))
	for _, k := range r.Keywords {
		keywords = append(keywords, strings.TrimSpace(k))
	}

	return &Article{
		Title:          strings.TrimSpace(in.Title),
		Content:        in.Content,
		URL:            strings.TrimSpace(in.URL),
		Source:         in.Source,
		PublishedAt:    in.PublishedAt,
		Sentiment:      r.Sentiment,
		SentimentScore: r.SentimentScore,
		AnalysisSource: r.Source,
		Category:       r.Category,
		ESGScores:      r.ESGScores,
		Keywords:       keywords,
		Summary:        strings.TrimSpace(r.Summary),
		AnalyzedAt:     now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// Validate checks the record-level integrity rules before it is stored.
func (a *Article) Validate() error {
	var errs []error
	if strings.TrimSpace(a.Title) == "" {
		errs = append(errs, errors.New("title is required"))
	}
	if a.Content == "" {
		errs = append(errs, errors.New("content is required"))
	}
	if !a.Sentiment.Valid() {
		errs = append(errs, fmt.Errorf("sentiment %q is not one of positive, negative, neutral", a.Sentiment))
	}
	if math.IsNaN(a.SentimentScore) || a.SentimentScore < -1 || a.SentimentScore > 1 {
		errs = append(errs, fmt.Errorf("sentimentScore %v out of range [-1, 1]", a.SentimentScore))
	}
	if !a.Category.Valid() {
		errs = append(errs, fmt.Errorf("category %q is not a known ESG category", a.Category))
	}
	for i, v := range a.ESGScores.Values() {
		if math.IsNaN(v) || v < 0 || v > 1 {
			errs = append(errs, fmt.Errorf("esg score %d (%v) out of range [0, 1]", i, v))
		}
	}
	return errors.Join(errs...)
}

// DominantCategory is the dimension with the highest score, or Other when
// every score is zero. Ties resolve environmental, social, governance.
func (a *Article) DominantCategory() ESGCategory {
	s := a.ESGScores
	max := math.Max(s.Environmental, math.Max(s.Social, s.Governance))
	switch {
	case max == 0:
		return CategoryOther
	case s.Environmental == max:
		return CategoryEnvironmental
	case s.Social == max:
		return CategorySocial
	case s.Governance == max:
		return CategoryGovernance
	}
	return CategoryMultiple
}

// WithoutContent returns a shallow copy with the body dropped, used for
// listings.
func (a Article) WithoutContent() Article {
	a.Content = ""
	return a
}

// ArticleEvent is the message published after an article is stored.
type ArticleEvent struct {
	ArticleID      string         `json:"article_id"`
	Title          string         `json:"title"`
	URL            string         `json:"url"`
	Sentiment      SentimentLabel `json:"sentiment"`
	SentimentScore float64        `json:"sentiment_score"`
	VaderScore     float64        `json:"vader_score"`
	Category       ESGCategory    `json:"category"`
	ESGScores      ESGScores      `json:"esg_scores"`
	Keywords       []string       `json:"keywords"`
	AnalysisSource AnalysisSource `json:"analysis_source"`
	AnalyzedAt     time.Time      `json:"analyzed_at"`
}

func NewArticleEvent(a *Article) ArticleEvent {
	return ArticleEvent{
		ArticleID:      a.ID,
		Title:          a.Title,
		URL:            a.URL,
		Sentiment:      a.Sentiment,
		SentimentScore: a.SentimentScore,
		VaderScore:     a.VaderScore,
		Category:       a.Category,
		ESGScores:      a.ESGScores,
		Keywords:       a.Keywords,
		AnalysisSource: a.AnalysisSource,
		AnalyzedAt:     a.AnalyzedAt,
	}
}
