// Package app assembles the preview server: configuration, logging,
// telemetry, services and the chi router serving both the static site
// and the JSON API.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/AAlmeidaM/extremadura-en-datos/internal/config"
	"github.com/AAlmeidaM/extremadura-en-datos/internal/infrastructure"
	"github.com/AAlmeidaM/extremadura-en-datos/internal/ine"
	"github.com/AAlmeidaM/extremadura-en-datos/internal/middleware"
	"github.com/AAlmeidaM/extremadura-en-datos/internal/services"
	transporthttp "github.com/AAlmeidaM/extremadura-en-datos/internal/transport/http"
)

// Version is stamped by the release build.
var Version = "v1.2.0"

// Application holds the wired preview server.
type Application struct {
	Config *config.Config
	Logger *slog.Logger
	Server *http.Server

	otel *infrastructure.OTelProviders
}

// NewApplication wires configuration, logging, telemetry, services and
// the router into a runnable application.
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	return NewApplicationWithConfig(cfg)
}

// NewApplicationWithConfig wires the application around an existing
// configuration, used by tests.
func NewApplicationWithConfig(cfg *config.Config) (*Application, error) {
	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("initialize logger: %w", err)
	}

	otelProviders, err := infrastructure.InitializeOTel(nil, logger)
	if err != nil {
		return nil, fmt.Errorf("initialize telemetry: %w", err)
	}

	a := &Application{
		Config: cfg,
		Logger: logger,
		otel:   otelProviders,
	}

	client := ine.NewClient(logger,
		ine.WithBaseURL(cfg.INE.BaseURL),
		ine.WithLanguage(cfg.INE.Language),
		ine.WithTimeout(cfg.INE.Timeout),
		ine.WithRateLimit(cfg.INE.RateRPS, cfg.INE.RateBurst),
	)

	dataService := services.NewDataService(cfg, client, logger)
	healthService := services.NewHealthService(Version, cfg.Paths, logger)

	a.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      a.router(dataService, healthService),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return a, nil
}

// router builds the middleware chain and mounts the API and the static
// site.
func (a *Application) router(dataService transporthttp.DataServiceInterface, healthService transporthttp.HealthServiceInterface) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.StructuredLogger(a.Logger))
	r.Use(middleware.Recoverer(a.Logger))
	r.Use(chimiddleware.Timeout(a.Config.Server.ReadTimeout))

	r.Route("/api", func(r chi.Router) {
		r.Mount("/data", transporthttp.NewDataHandler(dataService, a.Logger).Routes())
		r.Mount("/health", transporthttp.NewHealthHandler(healthService, a.Logger).Routes())
	})

	if a.otel.PrometheusHTTP != nil {
		r.Handle("/metrics", a.otel.PrometheusHTTP)
	}

	// The generated site: index.html plus the card images.
	r.Group(func(r chi.Router) {
		r.Use(chimiddleware.Compress(5))
		r.Handle("/*", http.FileServer(http.Dir(a.Config.Paths.SiteDir)))
	})

	return r
}

// Start runs the server until the context is cancelled, then shuts it
// down gracefully.
func (a *Application) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info("Preview server listening",
			slog.String("addr", a.Server.Addr),
			slog.String("site_dir", a.Config.Paths.SiteDir))

		if err := a.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.Server.ShutdownTimeout)
	defer cancel()

	a.Logger.Info("Shutting down preview server")
	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	if err := a.otel.Shutdown(shutdownCtx); err != nil {
		a.Logger.Warn("Telemetry shutdown failed", slog.String("error", err.Error()))
	}
	return infrastructure.CloseLogFile()
}
