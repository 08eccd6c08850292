package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/yanqian/forecast-advisor/internal/infra/config"
)

// Refresher re-fetches the cached forecast.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// App encapsulates the HTTP server lifecycle and the background forecast refresher.
type App struct {
	cfg       *config.Config
	logger    *slog.Logger
	server    *http.Server
	refresher Refresher
}

// NewApp is used by Wire to build the runnable app.
func NewApp(cfg *config.Config, logger *slog.Logger, server *http.Server, refresher Refresher) *App {
	return &App{cfg: cfg, logger: logger.With("component", "bootstrap"), server: server, refresher: refresher}
}

// Run starts the HTTP server and blocks until shutdown.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	refreshCtx, stopRefresh := context.WithCancel(ctx)
	defer stopRefresh()
	refreshDone := make(chan struct{})
	go func() {
		defer close(refreshDone)
		a.refreshLoop(refreshCtx, a.cfg.Forecast.RefreshInterval)
	}()

	go func() {
		a.logger.Info("http server starting", "address", a.cfg.HTTP.Address)
		if err := a.server.ListenAndServe(); err != nil {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		a.logger.Info("shutdown signal received")
		stopRefresh()
		<-refreshDone
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	case err := <-errCh:
		stopRefresh()
		<-refreshDone
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// refreshLoop warms the cache once and then on every tick. A zero interval disables it.
func (a *App) refreshLoop(ctx context.Context, interval time.Duration) {
	if interval <= 0 || a.refresher == nil {
		a.logger.Info("forecast refresher disabled")
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	a.refresh(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.refresh(ctx)
		}
	}
}

func (a *App) refresh(ctx context.Context) {
	start := time.Now()
	if err := a.refresher.Refresh(ctx); err != nil {
		if ctx.Err() != nil {
			return
		}
		a.logger.Warn("forecast refresh failed", "error", err)
		return
	}
	a.logger.Info("forecast refreshed", "latency_ms", time.Since(start).Milliseconds())
}
