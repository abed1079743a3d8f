package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/yigiitcoskun/us-economic-insights/internal/domain/models"
	"github.com/yigiitcoskun/us-economic-insights/internal/usecase"
	"github.com/yigiitcoskun/us-economic-insights/pkg/config"
	xhttp "github.com/yigiitcoskun/us-economic-insights/pkg/http"
	applogger "github.com/yigiitcoskun/us-economic-insights/pkg/logger"
)

// Resource is an infrastructure client released on shutdown.
type Resource struct {
	Name  string
	Close func() error
}

// App encapsulates the entire application lifecycle.
type App struct {
	cfg        *config.Config
	l          *applogger.Logger
	analysis   *usecase.AnalysisUseCase
	handlers   []xhttp.Handler
	resources  []Resource
	httpServer *xhttp.Server
}

// New creates a new App instance with all dependencies.
func New(cfg *config.Config, l *applogger.Logger, analysis *usecase.AnalysisUseCase, handlers []xhttp.Handler, resources ...Resource) *App {
	if l == nil {
		l = applogger.Nop()
	}
	return &App{
		cfg:       cfg,
		l:         l,
		analysis:  analysis,
		handlers:  handlers,
		resources: resources,
	}
}

// Analysis exposes the analysis use case for one-shot commands.
func (a *App) Analysis() *usecase.AnalysisUseCase { return a.analysis }

// RunOnce performs a single analysis and releases resources afterwards.
func (a *App) RunOnce(ctx context.Context, p usecase.RunParams) (*models.Run, error) {
	defer a.closeResources()
	run, err := a.analysis.Run(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("analysis run: %w", err)
	}
	return run, nil
}

// Run starts the HTTP API and blocks until ctx is done or an interrupt arrives.
func (a *App) Run(ctx context.Context) error {
	metricsPath := ""
	if a.cfg.Metrics.Enabled {
		metricsPath = a.cfg.Metrics.Path
	}
	a.httpServer = xhttp.NewServer(a.handlers,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
		xhttp.WithMetricsPath(metricsPath),
		xhttp.WithTrustedProxies(a.cfg.Server.TrustedProxies...),
		xhttp.WithLogger(a.l),
	)

	if err := a.httpServer.Start(); err != nil {
		a.l.Error("http server start error", applogger.Error(err))
		return err
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case <-sigCh:
		a.l.Info("shutdown signal received")
	case <-ctx.Done():
		a.l.Info("context cancelled, shutting down")
	}
	return a.shutdown()
}

// shutdown gracefully stops all services.
func (a *App) shutdown() error {
	a.l.Info("shutting down...")

	var stopErr error
	if a.httpServer != nil {
		if err := a.httpServer.Stop(context.Background()); err != nil {
			a.l.Error("http shutdown error", applogger.Error(err))
			stopErr = err
		}
	}
	a.closeResources()

	a.l.Info("shutdown complete")
	return stopErr
}

func (a *App) closeResources() {
	for _, r := range a.resources {
		if r.Close == nil {
			continue
		}
		if err := r.Close(); err != nil {
			a.l.Warn("resource close error", applogger.String("resource", r.Name), applogger.Error(err))
		}
	}
	a.resources = nil
}
