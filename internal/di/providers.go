package di

import (
	"context"
	"fmt"
	"time"

	"EdgeLab/internal/domain/repository"
	domsvc "EdgeLab/internal/domain/service"
	"EdgeLab/internal/handler/api"
	internalrepo "EdgeLab/internal/repository"
	icache "EdgeLab/internal/service/cache"
	"EdgeLab/internal/service/csvsource"
	"EdgeLab/internal/service/tiingo"
	"EdgeLab/internal/services/model"
	"EdgeLab/internal/usecase"
	pkgcache "EdgeLab/pkg/cache"
	pkgch "EdgeLab/pkg/clickhouse"
	"EdgeLab/pkg/config"
	applogger "EdgeLab/pkg/logger"
	"EdgeLab/pkg/metrics"
	"EdgeLab/pkg/server"
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvidePriceProvider picks the configured provider and, when caching is
// enabled, decorates it with the series cache.
func ProvidePriceProvider(cfg *config.Config, l *applogger.Logger) (repository.PriceProvider, error) {
	var base repository.PriceProvider
	switch cfg.Provider.Type {
	case "csv":
		base = csvsource.New(cfg.Provider.CSVPath)
	default:
		base = tiingo.New(cfg.Provider.BaseURL, cfg.Provider.APIKey, cfg.Provider.Timeout, cfg.Provider.RateLimit)
	}

	if !cfg.Cache.Enabled {
		return base, nil
	}

	var c pkgcache.Service
	rc, err := pkgcache.NewRedisCache(
		pkgcache.WithRedisHost(cfg.Cache.Redis.Host),
		pkgcache.WithRedisPort(cfg.Cache.Redis.Port),
		pkgcache.WithRedisPassword(cfg.Cache.Redis.Password),
		pkgcache.WithRedisDB(cfg.Cache.Redis.DB),
		pkgcache.WithRedisPrefix(cfg.Cache.Prefix),
	)
	if err != nil {
		l.Warn("redis unavailable, using in-memory series cache", applogger.Error(err))
		c = pkgcache.NewMemoryCache()
	} else {
		c = rc
	}
	return icache.NewCachedProvider(base, c, cfg.Cache.TTL, l), nil
}

// ProvideClassifier builds the default random-forest classifier.
func ProvideClassifier(cfg *config.Config) domsvc.Classifier {
	return model.NewForest(model.ForestConfig{
		Trees:    cfg.Model.Trees,
		MaxDepth: cfg.Model.MaxDepth,
		MinLeaf:  cfg.Model.MinLeaf,
		Seed:     cfg.Model.Seed,
	})
}

// ProvidePipeline wires the pipeline use case.
func ProvidePipeline(cfg *config.Config, l *applogger.Logger, provider repository.PriceProvider, classifier domsvc.Classifier, m repository.Metrics) *usecase.Pipeline {
	return usecase.NewPipeline(cfg, l, provider, classifier, m)
}

// ProvideRunStore creates the ClickHouse run archive, or nil when
// archiving is disabled.
func ProvideRunStore(cfg *config.Config, l *applogger.Logger) (repository.RunStore, error) {
	if !cfg.Archive.Enabled {
		return nil, nil
	}

	ch := cfg.Archive.ClickHouse
	client, err := pkgch.NewClient(
		pkgch.WithHost(ch.Host),
		pkgch.WithPort(ch.Port),
		pkgch.WithDatabase(ch.Database),
		pkgch.WithCredentials(ch.User, ch.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithTimeouts(ch.DialTimeout, ch.ReadTimeout, ch.WriteTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.InitSchema(ctx, internalrepo.Schema); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}

	store := internalrepo.NewCHRunStore(client)
	store.SetLogger(l)
	return store, nil
}

// ProvideRunsHandler creates the results HTTP handler.
func ProvideRunsHandler(l *applogger.Logger) *api.RunsEchoHandler {
	return api.NewRunsEchoHandler(l)
}

// ProvideApp assembles the application.
func ProvideApp(cfg *config.Config, l *applogger.Logger, pipeline *usecase.Pipeline, store repository.RunStore, handler *api.RunsEchoHandler) *server.App {
	return server.New(cfg, l, pipeline, store, handler)
}
