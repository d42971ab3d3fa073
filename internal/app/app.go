// Package app wires settings into the running services shared by the API
// server, the ingester and the CLI.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/spacesedan/esgpulse/config"
	"github.com/spacesedan/esgpulse/internal/analysis"
	"github.com/spacesedan/esgpulse/internal/clients"
	"github.com/spacesedan/esgpulse/internal/db"
	"github.com/spacesedan/esgpulse/internal/ingest"
	"github.com/spacesedan/esgpulse/internal/lexicon"
	"github.com/spacesedan/esgpulse/internal/monitoring"
	"github.com/spacesedan/esgpulse/internal/news"
	"github.com/spacesedan/esgpulse/internal/sentiment"
	"github.com/spacesedan/esgpulse/internal/transport/rest"
)

type App struct {
	Settings config.Settings
	Store    db.Store
	Analyzer *analysis.Analyzer
	News     *news.Service
	Ingest   *ingest.Service

	// nil when no token is configured
	Inference        *clients.HuggingFaceClient
	InferenceHealthy atomic.Bool

	closers []func(ctx context.Context)
}

type Option func(*buildOptions)

type buildOptions struct {
	localOnly bool
	store     db.Store
}

// WithLocalOnly never builds the inference client.
func WithLocalOnly() Option {
	return func(o *buildOptions) { o.localOnly = true }
}

// WithStore skips store selection and uses the given one.
func WithStore(store db.Store) Option {
	return func(o *buildOptions) { o.store = store }
}

// New builds every component the settings enable. Optional integrations
// (Valkey, Kafka) that fail to connect are logged and left out; a store
// that fails to connect is an error.
func New(ctx context.Context, s config.Settings, opts ...Option) (*App, error) {
	var o buildOptions
	for _, opt := range opts {
		opt(&o)
	}

	a := &App{Settings: s}

	store := o.store
	if store == nil {
		var err error
		if store, err = newStore(ctx, s); err != nil {
			return nil, err
		}
	}
	a.Store = store
	a.closers = append(a.closers, func(ctx context.Context) {
		if err := store.Close(ctx); err != nil {
			slog.Warn("[App] Failed to close store", slog.String("error", err.Error()))
		}
	})

	analyzer, hf, err := NewAnalyzer(s, o.localOnly)
	if err != nil {
		a.Close(ctx)
		return nil, err
	}
	a.Analyzer = analyzer
	if hf != nil {
		a.Inference = hf
		a.InferenceHealthy.Store(true)
	}

	a.News = news.NewService(clients.NewNewsAPIClient(clients.NewsAPIConfig{
		APIKey:   s.NewsAPIKey,
		BaseURL:  s.NewsAPIBaseURL,
		RPS:      s.NewsAPIRPS,
		CacheTTL: s.NewsCacheTTL,
	}))

	ingestOpts := []ingest.Option{
		ingest.WithNewsSource(a.News),
		ingest.WithConcurrency(s.IngestConcurrency),
	}
	if s.NewsEnrichContent {
		ingestOpts = append(ingestOpts, ingest.WithEnricher(news.NewEnricher(news.ENRICH_TIMEOUT)))
	}
	if s.ValkeyAddress != "" {
		vc, err := clients.NewValkeyClient(ctx, clients.ValkeyConfig{
			Address:  s.ValkeyAddress,
			Password: s.ValkeyPassword,
			TLS:      s.ValkeyTLS,
		})
		if err != nil {
			slog.Warn("[App] Valkey unavailable, ingest runs without claims", slog.String("error", err.Error()))
		} else {
			ingestOpts = append(ingestOpts, ingest.WithClaimer(vc))
			a.closers = append(a.closers, func(context.Context) { vc.Close() })
		}
	}
	if s.KafkaBroker != "" {
		kp, err := clients.NewKafkaPublisher(s.KafkaBroker, s.KafkaTopic)
		if err != nil {
			slog.Warn("[App] Kafka unavailable, analyzed articles are not published", slog.String("error", err.Error()))
		} else {
			ingestOpts = append(ingestOpts, ingest.WithPublisher(kp))
			a.closers = append(a.closers, func(context.Context) { kp.Close() })
		}
	}
	a.Ingest = ingest.NewService(a.Analyzer, a.Store, sentiment.NewVader(), ingestOpts...)

	slog.Info("[App] Initialized",
		slog.String("store", s.StoreDriver),
		slog.Bool("remote_inference", a.Analyzer.RemoteEnabled()),
		slog.Bool("news", a.News.Configured()))
	return a, nil
}

// NewAnalyzer builds the analyzer, with the remote path when a token is
// configured. The returned client is nil when analysis is local only.
func NewAnalyzer(s config.Settings, localOnly bool) (*analysis.Analyzer, *clients.HuggingFaceClient, error) {
	if localOnly {
		return analysis.New(lexicon.Default()), nil, nil
	}

	hf, err := clients.NewHuggingFaceClient(clients.HuggingFaceConfig{
		Token:   s.HuggingFaceToken,
		BaseURL: s.InferenceBaseURL,
		Timeout: s.InferenceTimeout,
	})
	switch {
	case errors.Is(err, analysis.ErrConfiguration):
		slog.Warn("[App] No inference token, using local analysis only")
		return analysis.New(lexicon.Default()), nil, nil
	case err != nil:
		return nil, nil, err
	}
	return analysis.New(lexicon.Default(), analysis.WithRemote(hf, s.InferenceTimeout)), hf, nil
}

func newStore(ctx context.Context, s config.Settings) (db.Store, error) {
	switch s.StoreDriver {
	case config.STORE_MONGO:
		client, err := clients.ConnectMongo(ctx, s.MongoURI)
		if err != nil {
			return nil, err
		}
		store := db.NewMongoStore(client, s.MongoDatabase)
		if err := store.EnsureIndexes(ctx); err != nil {
			slog.Warn("[App] Failed to create indexes", slog.String("error", err.Error()))
		}
		return store, nil
	case config.STORE_DYNAMODB:
		client, err := clients.NewDynamoDBClient(ctx, clients.AWSConfig{Region: s.AWSRegion, Endpoint: s.AWSEndpoint})
		if err != nil {
			return nil, err
		}
		return db.NewDynamoStore(client, s.DynamoDBTable), nil
	case config.STORE_MEMORY, "":
		return db.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", s.StoreDriver)
	}
}

func (a *App) Router() http.Handler {
	return rest.NewRouter(&rest.Container{
		Ingest:           a.Ingest,
		Store:            a.Store,
		News:             a.News,
		RemoteEnabled:    a.Analyzer.RemoteEnabled(),
		InferenceHealthy: &a.InferenceHealthy,
	})
}

// MonitorInference blocks polling the inference provider until ctx is done.
// It returns at once when remote inference is off.
func (a *App) MonitorInference(ctx context.Context) {
	if a.Inference == nil {
		return
	}
	monitoring.MonitorInferenceHealth(ctx, a.Inference, &a.InferenceHealthy, a.Settings.HealthcheckInterval)
}

// Close releases connections in reverse order of creation.
func (a *App) Close(ctx context.Context) {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i](ctx)
	}
}
