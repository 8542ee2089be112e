// Command update refreshes the regional datasets: it reads the indicator
// catalog, downloads every table from the INE Tempus 3 service and saves
// the normalized series as JSON and CSV.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"github.com/AAlmeidaM/extremadura-en-datos/internal/catalog"
	"github.com/AAlmeidaM/extremadura-en-datos/internal/config"
	"github.com/AAlmeidaM/extremadura-en-datos/internal/exporter"
	"github.com/AAlmeidaM/extremadura-en-datos/internal/infrastructure"
	"github.com/AAlmeidaM/extremadura-en-datos/internal/ine"
	"github.com/AAlmeidaM/extremadura-en-datos/internal/updater"
)

func main() {
	catalogPath := flag.String("catalog", "", "catalog workbook path (defaults to the configured one)")
	outDir := flag.String("out", "", "directory for dataset files (defaults to the configured data dir)")
	last := flag.Int("last", 0, "fetch only the last N periods; 0 fetches the full series")
	dryRun := flag.Bool("dry-run", false, "fetch and normalize but write nothing")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *catalogPath != "" {
		cfg.Site.Catalog = *catalogPath
	}
	if *outDir != "" {
		cfg.Paths.DataDir = *outDir
	}

	cfg.Logging.FilePath = cfg.Paths.LogPath("update.log")
	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer infrastructure.CloseLogFile()

	if err := cfg.Paths.EnsureDirectories(); err != nil {
		logger.Error("Failed to create directories", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = infrastructure.WithRunID(ctx, uuid.New().String())

	otelProviders, err := infrastructure.InitializeOTel(nil, logger)
	if err != nil {
		logger.Error("Failed to initialize telemetry", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer otelProviders.Shutdown(context.Background())

	metrics, err := infrastructure.CreatePipelineMetrics(otelProviders.Meter)
	if err != nil {
		logger.Error("Failed to create pipeline metrics", slog.String("error", err.Error()))
		os.Exit(1)
	}

	entries, err := catalog.Load(cfg.Site.Catalog)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to load catalog",
			slog.String("catalog", cfg.Site.Catalog),
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	client := ine.NewClient(logger,
		ine.WithBaseURL(cfg.INE.BaseURL),
		ine.WithLanguage(cfg.INE.Language),
		ine.WithTimeout(cfg.INE.Timeout),
		ine.WithRateLimit(cfg.INE.RateRPS, cfg.INE.RateBurst),
	)

	pipeline := updater.New(client,
		exporter.NewDatasetWriter(cfg.Paths.DataDir, logger),
		logger,
		updater.WithRegion(cfg.Site.Region),
		updater.WithLastPeriods(*last),
		updater.WithDryRun(*dryRun),
		updater.WithMetrics(metrics),
	)

	sum, err := pipeline.Run(ctx, entries)
	if err != nil {
		logger.ErrorContext(ctx, "Update aborted", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if sum.Processed == 0 {
		logger.ErrorContext(ctx, "No table could be updated",
			slog.Int("skipped", sum.Skipped))
		os.Exit(1)
	}
}
