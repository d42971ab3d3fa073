package ingest

import (
	"context"
	"log/slog"
	"time"

	"github.com/spacesedan/esgpulse/internal/models"
	"github.com/spacesedan/esgpulse/internal/news"
)

// DefaultRequests covers every ESG topic and every catalogue company.
func DefaultRequests(limit int) []models.FetchRequest {
	reqs := make([]models.FetchRequest, 0, len(news.Topics)+len(news.Companies()))
	for _, topic := range news.Topics {
		reqs = append(reqs, models.FetchRequest{Topic: topic, Limit: limit})
	}
	for _, c := range news.Companies() {
		reqs = append(reqs, models.FetchRequest{Company: c.Name, Limit: limit})
	}
	return reqs
}

// RunOnce runs every request in order. A failing request is logged and the
// rest still run. It returns the number of newly stored articles.
func (s *Service) RunOnce(ctx context.Context, reqs []models.FetchRequest) int {
	stored := 0
	for _, req := range reqs {
		if ctx.Err() != nil {
			break
		}
		report, err := s.FetchAndAnalyze(ctx, req)
		if err != nil {
			slog.Error("[Scheduler] Fetch failed",
				slog.String("company", req.Company),
				slog.String("topic", req.Topic),
				slog.String("error", err.Error()))
			continue
		}
		for _, a := range report.Articles {
			if !a.AlreadyExists {
				stored++
			}
		}
	}
	return stored
}

// RunEvery does an initial run and then one per tick until ctx is done.
// Ticks that fire during a run are dropped.
func (s *Service) RunEvery(ctx context.Context, interval time.Duration, reqs []models.FetchRequest) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	run := func() {
		start := time.Now()
		stored := s.RunOnce(ctx, reqs)
		slog.Info("[Scheduler] Run finished",
			slog.Int("stored", stored),
			slog.Duration("took", time.Since(start)))
	}

	run()
	for {
		select {
		case <-ctx.Done():
			slog.Info("[Scheduler] Shutting down")
			return
		case <-ticker.C:
			run()
		}
	}
}
