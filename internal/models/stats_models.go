package models

import "encoding/json"

type ArticlePage struct {
	Articles   []Article  `json:"articles"`
	Pagination Pagination `json:"pagination"`
}

type Pagination struct {
	Total   int64 `json:"total"`
	Limit   int   `json:"limit"`
	Skip    int   `json:"skip"`
	HasMore bool  `json:"hasMore"`
}

type CategoryStat struct {
	Count        int64   `json:"count"`
	AvgSentiment float64 `json:"avgSentiment"`
}

type ArticleStats struct {
	TotalArticles         int64                        `json:"totalArticles"`
	RecentArticles        int64                        `json:"recentArticles"`
	AverageSentiment      float64                      `json:"averageSentiment"`
	SentimentDistribution map[SentimentLabel]int64     `json:"sentimentDistribution"`
	CategoryDistribution  map[ESGCategory]CategoryStat `json:"categoryDistribution"`
}

type TrendCell struct {
	Count     int64   `json:"count"`
	Sentiment float64 `json:"sentiment"`
}

// TrendDay holds one calendar day of per-category counts.
type TrendDay struct {
	Date       string                    `json:"date"`
	Categories map[ESGCategory]TrendCell `json:"categories"`
}

func NewTrendDay(date string) TrendDay {
	cells := make(map[ESGCategory]TrendCell, len(Categories))
	for _, c := range Categories {
		cells[c] = TrendCell{}
	}
	return TrendDay{Date: date, Categories: cells}
}

// MarshalJSON flattens the categories next to the date, one key per category.
func (d TrendDay) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(d.Categories)+1)
	out["date"] = d.Date
	for c, cell := range d.Categories {
		out[string(c)] = cell
	}
	return json.Marshal(out)
}
