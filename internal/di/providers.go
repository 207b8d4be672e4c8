package di

import (
	"fmt"

	"BitSense/internal/domain/repository"
	"BitSense/internal/handler/api"
	"BitSense/internal/service/predictapi"
	"BitSense/internal/usecase"
	"BitSense/pkg/cache"
	"BitSense/pkg/config"
	xhttp "BitSense/pkg/http"
	applogger "BitSense/pkg/logger"
	"BitSense/pkg/metrics"
	"BitSense/pkg/server"
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

// ProvideSnapshotStore builds the configured snapshot backend, wrapped in the
// in-memory read layer unless the backend already is one.
func ProvideSnapshotStore(cfg *config.Config, log *applogger.Logger) (cache.Store, error) {
	var (
		store cache.Store
		err   error
	)
	switch cfg.Snapshots.Backend {
	case "memory":
		store = cache.NewMemoryStore()
	case "redis":
		store, err = cache.NewRedisStore(
			cache.WithRedisAddr(cfg.Snapshots.Redis.Addr),
			cache.WithRedisPassword(cfg.Snapshots.Redis.Password),
			cache.WithRedisDB(cfg.Snapshots.Redis.DB),
		)
	default:
		store, err = cache.NewSQLiteStore(cfg.SnapshotPath())
	}
	if err != nil {
		return nil, fmt.Errorf("snapshot store %q: %w", cfg.Snapshots.Backend, err)
	}

	if cfg.Snapshots.Layered && cfg.Snapshots.Backend != "memory" {
		store = cache.NewLayeredStore(store)
	}
	log.Debug("snapshot store ready", applogger.String("backend", cfg.Snapshots.Backend))
	return store, nil
}

// ProvideFeed creates the resilient upstream client.
func ProvideFeed(cfg *config.Config, log *applogger.Logger, m repository.Metrics) repository.Feed {
	return predictapi.New(cfg.API.BaseURL, cfg.API.Timeout, log, predictapi.WithMetrics(m))
}

// ProvideRefresher creates the board refresher.
func ProvideRefresher(
	feed repository.Feed,
	store cache.Store,
	m repository.Metrics,
	log *applogger.Logger,
	cfg *config.Config,
) *usecase.Refresher {
	return usecase.NewRefresher(feed, store, m, log, usecase.RefreshConfig{
		Symbol:          cfg.Refresh.Symbol,
		Interval:        cfg.Refresh.Interval,
		StaleAfter:      cfg.Refresh.StaleAfter,
		PriceHours:      cfg.Refresh.PriceHours,
		PriceLimit:      cfg.Refresh.PriceLimit,
		SentimentHours:  cfg.Refresh.SentimentHours,
		PredictionLimit: cfg.Refresh.PredictionLimit,
		TimelineHours:   cfg.Refresh.TimelineHours,
	})
}

// ProvideStream creates the websocket hub and subscribes it to refreshes.
// With the board server disabled no client ever connects and broadcasts are
// no-ops.
func ProvideStream(refresher *usecase.Refresher, log *applogger.Logger) *api.Stream {
	stream := api.NewStream(log)
	refresher.OnUpdate(stream.Broadcast)
	return stream
}

// ProvideBoardHandler creates the board HTTP handler.
func ProvideBoardHandler(log *applogger.Logger, refresher *usecase.Refresher, stream *api.Stream) *api.BoardHandler {
	return api.NewBoardHandler(log, refresher, stream)
}

// ProvideServer creates the board HTTP server, or nil when disabled.
func ProvideServer(cfg *config.Config, h *api.BoardHandler, log *applogger.Logger) *xhttp.Server {
	if !cfg.Server.Enabled {
		return nil
	}
	return xhttp.NewServer(h,
		xhttp.WithHost(cfg.Server.Host),
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout),
		xhttp.WithLogger(log),
	)
}

// ProvideApp creates the application.
func ProvideApp(
	cfg *config.Config,
	log *applogger.Logger,
	refresher *usecase.Refresher,
	store cache.Store,
	stream *api.Stream,
	srv *xhttp.Server,
) *server.App {
	return server.New(cfg, log, refresher, store, stream, srv)
}
