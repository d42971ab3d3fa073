package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spacesedan/esgpulse/config"
	"github.com/spacesedan/esgpulse/internal/app"
	"github.com/spacesedan/esgpulse/internal/ingest"
	"github.com/spacesedan/esgpulse/internal/logging"
)

func main() {
	config.LoadEnv(os.Getenv("APP_ENV"))
	settings, err := config.Load()
	logging.InitLogger(settings.LogLevel)
	if err != nil {
		slog.Error("[Ingester] Invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Handle graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, settings)
	if err != nil {
		slog.Error("[Ingester] Failed to initialize", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer a.Close(context.Background())

	if !a.News.Configured() {
		slog.Error("[Ingester] NEWS_API_KEY is not configured, nothing to ingest")
		a.Close(context.Background())
		os.Exit(1)
	}

	slog.Info("[Ingester] Starting", slog.Duration("interval", settings.IngestInterval))
	a.Ingest.RunEvery(ctx, settings.IngestInterval, ingest.DefaultRequests(ingest.DEFAULT_FETCH_SIZE))
}
