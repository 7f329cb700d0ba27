package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"sptrans.olhovivo.dev/internal/appconf"
	"sptrans.olhovivo.dev/internal/logging"
	"sptrans.olhovivo.dev/internal/metrics"
	"sptrans.olhovivo.dev/olhovivo"
)

// Application holds the dependencies for our HTTP handlers, helpers,
// and middleware.
type Application struct {
	Config  appconf.Config
	Logger  *slog.Logger
	Client  *olhovivo.Client
	Metrics *metrics.Collector
	// Clock returns the current time in the configured zone.
	Clock func() time.Time
}

// New wires an Application from cfg. The client is not authenticated yet.
func New(cfg appconf.Config, logger *slog.Logger) (*Application, error) {
	if logger == nil {
		logger = slog.Default()
	}

	loc := cfg.Location()
	clock := func() time.Time { return time.Now().In(loc) }
	collector := metrics.NewCollector()

	clientCfg := olhovivo.DefaultConfig()
	clientCfg.BaseURL = cfg.Upstream.BaseURL
	clientCfg.Timeout = cfg.Upstream.Timeout
	clientCfg.Logger = logger
	clientCfg.Now = clock
	clientCfg.Observer = collector

	client, err := olhovivo.NewClient(clientCfg)
	if err != nil {
		return nil, fmt.Errorf("creating olho vivo client: %w", err)
	}

	return &Application{
		Config:  cfg,
		Logger:  logger,
		Client:  client,
		Metrics: collector,
		Clock:   clock,
	}, nil
}

// Authenticate opens the upstream session with the configured token.
func (app *Application) Authenticate(ctx context.Context) error {
	start := time.Now()
	if err := app.Client.Authenticate(ctx, app.Config.Upstream.Token); err != nil {
		logging.LogError(app.Logger, "upstream authentication failed", err,
			slog.String("component", "application"))
		return err
	}
	logging.LogOperation(app.Logger, "upstream_session_opened",
		slog.String("base_url", app.Config.Upstream.BaseURL),
		slog.Duration("duration", time.Since(start)))
	return nil
}

// Now returns the current time, falling back to time.Now when no clock is set.
func (app *Application) Now() time.Time {
	if app.Clock == nil {
		return time.Now()
	}
	return app.Clock()
}
