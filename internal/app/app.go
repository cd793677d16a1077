// Package app wires the dashboard together: configuration, logging, the
// data store, services, and the HTTP server with its middleware chain.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/lunafeifei-creator/UAE-Telecom-Dashboard/internal/config"
	"github.com/lunafeifei-creator/UAE-Telecom-Dashboard/internal/dataprocessing"
	apierrors "github.com/lunafeifei-creator/UAE-Telecom-Dashboard/internal/errors"
	"github.com/lunafeifei-creator/UAE-Telecom-Dashboard/internal/infrastructure"
	custommiddleware "github.com/lunafeifei-creator/UAE-Telecom-Dashboard/internal/middleware"
	"github.com/lunafeifei-creator/UAE-Telecom-Dashboard/internal/services"
	handlers "github.com/lunafeifei-creator/UAE-Telecom-Dashboard/internal/transport/http"
)

// Version is the service version reported on the health endpoint.
// Overridable at build time with -ldflags "-X ...app.Version=v1.2.3".
var Version = "dev"

// Application is the composed dashboard service.
type Application struct {
	Config           *config.Config
	Router           *chi.Mux
	Server           *http.Server
	Store            *dataprocessing.Store
	DashboardService *services.DashboardService
	HealthService    *services.HealthService
	Logger           *slog.Logger
}

// New builds the application from configuration. Missing source
// files are fatal here: the dashboard must not start against a partial
// dataset.
func New() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("application starting",
		slog.String("version", Version),
		slog.String("data_dir", cfg.Data.Dir),
	)

	if err := cfg.ValidateSourceFiles(); err != nil {
		return nil, apierrors.NewConfigError("source files missing", err)
	}

	sources := cfg.Data.SourceFiles()
	store := dataprocessing.NewStore(sources,
		dataprocessing.NewLoader(logger),
		dataprocessing.NewPipeline(logger),
		logger,
	)

	app := &Application{
		Config:           cfg,
		Store:            store,
		DashboardService: services.NewDashboardService(store, logger),
		HealthService:    services.NewHealthService(Version, sources, store, logger),
		Logger:           logger,
	}

	app.setupRouter()

	app.Server = &http.Server{
		Addr:           fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:        app.Router,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	return app, nil
}

// setupRouter configures the HTTP router and middleware chain.
func (a *Application) setupRouter() {
	r := chi.NewRouter()

	errorHandler := apierrors.NewErrorHandler(a.Logger, false)

	r.Use(custommiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(custommiddleware.StructuredLogger(a.Logger))
	r.Use(custommiddleware.Recoverer(a.Logger))
	r.Use(chimiddleware.Timeout(60 * time.Second))

	if a.Config.Security.EnableCORS {
		r.Use(custommiddleware.CORS(custommiddleware.CORSConfig{
			AllowedOrigins: a.Config.Security.AllowedOrigins,
			Logger:         a.Logger,
		}))
	}
	if a.Config.Security.RateLimit.Enabled {
		r.Use(custommiddleware.NewRateLimiter(
			a.Config.Security.RateLimit.RPS,
			a.Config.Security.RateLimit.Burst,
			a.Logger,
		).Handler)
	}

	r.NotFound(errorHandler.NotFound)
	r.MethodNotAllowed(errorHandler.MethodNotAllowed)

	dashboardHandler := handlers.NewDashboardHandler(a.DashboardService, a.Logger, errorHandler)
	exportHandler := handlers.NewExportHandler(a.DashboardService, a.Logger, errorHandler)
	healthHandler := handlers.NewHealthHandler(a.HealthService, a.Logger)

	r.Route("/api", func(r chi.Router) {
		r.Mount("/dashboard", dashboardHandler.Routes())
		r.Mount("/export", exportHandler.Routes())
		r.Mount("/health", healthHandler.Routes())
	})

	a.Router = r
}

// Run starts the HTTP server and blocks until the context is cancelled or a
// termination signal arrives, then shuts down gracefully.
func (a *Application) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		a.Logger.Info("server listening", slog.String("addr", a.Server.Addr))
		if err := a.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Warm the cache so the first request doesn't pay the load cost.
	// Failures here are not fatal: the source files were validated at
	// startup and the store retries on the next request.
	go func() {
		if _, err := a.Store.Get(ctx); err != nil {
			a.Logger.Warn("dataset preload failed", slog.String("error", err.Error()))
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	return a.Stop(context.Background())
}

// Stop gracefully shuts down the HTTP server.
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "shutting down")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	if err := infrastructure.CloseLogFile(); err != nil {
		a.Logger.Warn("failed to close log file", slog.String("error", err.Error()))
	}

	a.Logger.InfoContext(ctx, "shutdown complete")
	return nil
}
