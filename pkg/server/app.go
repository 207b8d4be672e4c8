package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"BitSense/internal/handler/api"
	"BitSense/internal/ui"
	"BitSense/internal/usecase"
	"BitSense/pkg/cache"
	"BitSense/pkg/config"
	xhttp "BitSense/pkg/http"
	applogger "BitSense/pkg/logger"
)

// App encapsulates the application lifecycle. The refresher always runs; the
// board server and the terminal dashboard are optional per command.
type App struct {
	cfg        *config.Config
	log        *applogger.Logger
	refresher  *usecase.Refresher
	store      cache.Store
	stream     *api.Stream
	httpServer *xhttp.Server
	dashboard  *ui.Dashboard
}

// New creates a new App instance with all dependencies. httpServer and stream
// may be nil when the board server is disabled.
func New(
	cfg *config.Config,
	log *applogger.Logger,
	refresher *usecase.Refresher,
	store cache.Store,
	stream *api.Stream,
	httpServer *xhttp.Server,
) *App {
	if log == nil {
		log = applogger.Nop()
	}
	return &App{
		cfg:        cfg,
		log:        log,
		refresher:  refresher,
		store:      store,
		stream:     stream,
		httpServer: httpServer,
	}
}

// SetDashboard attaches the TUI. Run then blocks on it instead of on signals.
func (a *App) SetDashboard(d *ui.Dashboard) { a.dashboard = d }

// Refresher exposes the board refresher for UI wiring.
func (a *App) Refresher() *usecase.Refresher { return a.refresher }

// Logger exposes the configured application logger.
func (a *App) Logger() *applogger.Logger { return a.log }

// Run starts the application and blocks until interrupted or, in dashboard
// mode, until the user quits the TUI.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Signals cancel the context so the TUI and the refresh loop unwind
	// together.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			a.log.Info("shutdown signal received")
			cancel()
		case <-ctx.Done():
		}
	}()

	if err := a.refresher.Start(ctx); err != nil {
		return fmt.Errorf("start refresher: %w", err)
	}

	if a.httpServer != nil {
		if err := a.httpServer.Start(); err != nil {
			a.refresher.Stop()
			return fmt.Errorf("start board server: %w", err)
		}
	}

	if a.dashboard != nil {
		if err := a.dashboard.Run(ctx); err != nil {
			a.log.Error("dashboard error", applogger.Error(err))
		}
	} else {
		<-ctx.Done()
	}

	return a.shutdown()
}

// shutdown stops services in dependency order: no more refreshes, then the
// HTTP surface, then the stream clients, then the snapshot store.
func (a *App) shutdown() error {
	a.log.Info("shutting down")

	a.refresher.Stop()

	if a.httpServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := a.httpServer.Stop(shutdownCtx); err != nil {
			a.log.Error("http shutdown error", applogger.Error(err))
		}
	}

	if a.stream != nil {
		a.stream.Close()
	}

	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.log.Warn("snapshot store close error", applogger.Error(err))
		}
	}

	a.log.Info("shutdown complete")
	return nil
}
