package db

import (
	"sort"
	"strings"
	"time"

	"github.com/spacesedan/esgpulse/internal/models"
)

const trendDateFormat = "2006-01-02"

// The helpers below answer List, Stats and Trends over an in-memory slice.
// Stores without server-side aggregation use them after loading the
// articles.

func matchesFilter(a *models.Article, f ListFilter) bool {
	if f.Sentiment != "" && a.Sentiment != f.Sentiment {
		return false
	}
	if f.Category != "" && a.Category != f.Category {
		return false
	}
	return true
}

func compareBy(field string) func(a, b *models.Article) int {
	switch field {
	case "sentimentScore":
		return func(a, b *models.Article) int { return compareFloat(a.SentimentScore, b.SentimentScore) }
	case "title":
		return func(a, b *models.Article) int { return strings.Compare(a.Title, b.Title) }
	case "createdAt":
		return func(a, b *models.Article) int { return a.CreatedAt.Compare(b.CreatedAt) }
	default:
		return func(a, b *models.Article) int { return a.AnalyzedAt.Compare(b.AnalyzedAt) }
	}
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func listArticles(all []models.Article, f ListFilter) *models.ArticlePage {
	f = f.Normalized()

	matched := make([]models.Article, 0, len(all))
	for i := range all {
		if matchesFilter(&all[i], f) {
			matched = append(matched, all[i])
		}
	}

	cmp := compareBy(f.SortBy)
	sort.SliceStable(matched, func(i, j int) bool {
		c := cmp(&matched[i], &matched[j])
		if f.Order == "asc" {
			return c < 0
		}
		return c > 0
	})

	total := int64(len(matched))
	start := min(f.Skip, len(matched))
	end := start + min(f.Limit, len(matched)-start)

	page := make([]models.Article, 0, end-start)
	for _, a := range matched[start:end] {
		page = append(page, a.WithoutContent())
	}

	return &models.ArticlePage{
		Articles:   page,
		Pagination: newPagination(total, f),
	}
}

func newPagination(total int64, f ListFilter) models.Pagination {
	return models.Pagination{
		Total:   total,
		Limit:   f.Limit,
		Skip:    f.Skip,
		HasMore: total > int64(f.Skip+f.Limit),
	}
}

func findDuplicate(all []models.Article, url, title string) *models.Article {
	for i := range all {
		if (url != "" && all[i].URL == url) || all[i].Title == title {
			a := all[i]
			return &a
		}
	}
	return nil
}

func computeStats(all []models.Article, now time.Time) *models.ArticleStats {
	stats := &models.ArticleStats{
		TotalArticles:         int64(len(all)),
		SentimentDistribution: map[models.SentimentLabel]int64{},
		CategoryDistribution:  map[models.ESGCategory]models.CategoryStat{},
	}

	cutoff := now.Add(-RECENT_WINDOW)
	sums := map[models.ESGCategory]float64{}
	var total float64

	for i := range all {
		a := &all[i]
		total += a.SentimentScore
		if !a.AnalyzedAt.Before(cutoff) {
			stats.RecentArticles++
		}
		stats.SentimentDistribution[a.Sentiment]++

		cs := stats.CategoryDistribution[a.Category]
		cs.Count++
		stats.CategoryDistribution[a.Category] = cs
		sums[a.Category] += a.SentimentScore
	}

	if len(all) > 0 {
		stats.AverageSentiment = total / float64(len(all))
	}
	for c, cs := range stats.CategoryDistribution {
		cs.AvgSentiment = sums[c] / float64(cs.Count)
		stats.CategoryDistribution[c] = cs
	}
	return stats
}

// trendRow is one (day, category) group.
type trendRow struct {
	Date         string
	Category     models.ESGCategory
	Count        int64
	AvgSentiment float64
}

func computeTrends(all []models.Article, now time.Time, days int) []models.TrendDay {
	cutoff := trendCutoff(now, days)

	type key struct {
		date     string
		category models.ESGCategory
	}
	counts := map[key]int64{}
	sums := map[key]float64{}

	for i := range all {
		a := &all[i]
		if a.AnalyzedAt.Before(cutoff) {
			continue
		}
		k := key{date: a.AnalyzedAt.UTC().Format(trendDateFormat), category: a.Category}
		counts[k]++
		sums[k] += a.SentimentScore
	}

	rows := make([]trendRow, 0, len(counts))
	for k, n := range counts {
		rows = append(rows, trendRow{Date: k.date, Category: k.category, Count: n, AvgSentiment: sums[k] / float64(n)})
	}
	return buildTrendDays(rows)
}

func trendCutoff(now time.Time, days int) time.Time {
	if days <= 0 {
		days = DEFAULT_TREND_DAYS
	}
	return now.AddDate(0, 0, -days)
}

// buildTrendDays folds grouped rows into one entry per day, every category
// present, oldest day first.
func buildTrendDays(rows []trendRow) []models.TrendDay {
	byDate := map[string]models.TrendDay{}
	for _, r := range rows {
		day, ok := byDate[r.Date]
		if !ok {
			day = models.NewTrendDay(r.Date)
			byDate[r.Date] = day
		}
		day.Categories[r.Category] = models.TrendCell{Count: r.Count, Sentiment: r.AvgSentiment}
	}

	out := make([]models.TrendDay, 0, len(byDate))
	for _, day := range byDate {
		out = append(out, day)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}
