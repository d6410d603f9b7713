package server

import (
	"context"
	"fmt"

	"QuoteDesk/pkg/config"
	xhttp "QuoteDesk/pkg/http"
	applogger "QuoteDesk/pkg/logger"
	"QuoteDesk/pkg/util"
)

// App encapsulates the application lifecycle.
type App struct {
	cfg        *config.Config
	logger     *applogger.Logger
	httpServer *xhttp.Server
	events     bool
}

// New creates a new App instance with all dependencies.
func New(cfg *config.Config, logger *applogger.Logger, httpServer *xhttp.Server, events bool) *App {
	return &App{
		cfg:        cfg,
		logger:     logger,
		httpServer: httpServer,
		events:     events,
	}
}

// Run starts the HTTP server and blocks until ctx is cancelled, then shuts
// the server down gracefully.
func (a *App) Run(ctx context.Context) error {
	a.logger.Info("starting quotedesk",
		applogger.String("env", a.cfg.Environment),
		applogger.Int("port", a.cfg.Server.Port),
		applogger.String("polygon_base_url", a.cfg.Polygon.BaseURL),
		applogger.String("polygon_api_key", util.MaskSecret(a.cfg.Polygon.APIKey)),
		applogger.String("timezone", a.cfg.Market.Timezone),
		applogger.Bool("rate_limit", a.cfg.RateLimit.Enabled),
		applogger.Bool("metrics", a.cfg.Metrics.Enabled),
		applogger.Bool("events", a.events),
	)

	if err := a.httpServer.Start(); err != nil {
		return fmt.Errorf("http server start: %w", err)
	}

	<-ctx.Done()
	a.logger.Info("shutdown signal received")
	return a.shutdown()
}

func (a *App) shutdown() error {
	// the signal context is already done, shut down on a fresh one
	if err := a.httpServer.Stop(context.Background()); err != nil {
		a.logger.Error("http shutdown error", applogger.Error(err))
		return err
	}
	a.logger.Info("shutdown complete")
	return nil
}
