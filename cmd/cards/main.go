// Command cards builds the static site: one status card per saved
// dataset plus the HTML index that lists them.
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

	"github.com/AAlmeidaM/extremadura-en-datos/internal/cards"
	"github.com/AAlmeidaM/extremadura-en-datos/internal/catalog"
	"github.com/AAlmeidaM/extremadura-en-datos/internal/config"
	"github.com/AAlmeidaM/extremadura-en-datos/internal/generator"
	"github.com/AAlmeidaM/extremadura-en-datos/internal/infrastructure"
)

func main() {
	catalogPath := flag.String("catalog", "", "catalog workbook path (defaults to the configured one)")
	category := flag.String("category", "", "category filter (defaults to the configured one)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *catalogPath != "" {
		cfg.Site.Catalog = *catalogPath
	}
	if *category != "" {
		cfg.Site.Category = *category
	}

	cfg.Logging.FilePath = cfg.Paths.LogPath("cards.log")
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

	entries := loadEntries(ctx, cfg, logger)
	if len(entries) == 0 {
		logger.ErrorContext(ctx, "No indicators to render")
		os.Exit(1)
	}

	renderer, err := cards.NewRenderer(cfg.Site.Footer)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to create renderer", slog.String("error", err.Error()))
		os.Exit(1)
	}

	gen := generator.New(cfg.Paths, renderer, logger, generator.WithMetrics(metrics))
	sum, err := gen.Run(ctx, entries, generator.Page{
		Title:    cfg.Site.Title,
		Subtitle: cfg.Site.Region + " · datos INE",
	})
	if err != nil {
		logger.ErrorContext(ctx, "Card generation aborted", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if sum.Rendered == 0 {
		logger.ErrorContext(ctx, "No card could be rendered",
			slog.Int("skipped", sum.Skipped))
		os.Exit(1)
	}
}

// loadEntries reads the catalog and applies the category filter. When the
// workbook is missing or the filter matches nothing it falls back to the
// datasets already on disk, so the site can always be rebuilt.
func loadEntries(ctx context.Context, cfg *config.Config, logger *slog.Logger) []catalog.Entry {
	entries, err := catalog.Load(cfg.Site.Catalog)
	if err != nil {
		logger.WarnContext(ctx, "Catalog workbook unavailable, using dataset directory",
			slog.String("catalog", cfg.Site.Catalog),
			slog.String("error", err.Error()))
		return fallbackEntries(ctx, cfg, logger)
	}

	filtered := catalog.FilterCategory(entries, cfg.Site.Category)
	if len(filtered) == 0 {
		logger.WarnContext(ctx, "Category filter matched nothing, using dataset directory",
			slog.String("category", cfg.Site.Category))
		return fallbackEntries(ctx, cfg, logger)
	}
	return filtered
}

func fallbackEntries(ctx context.Context, cfg *config.Config, logger *slog.Logger) []catalog.Entry {
	entries, err := catalog.FallbackFromJSON(cfg.Paths.DataDir)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to list datasets",
			slog.String("data_dir", cfg.Paths.DataDir),
			slog.String("error", err.Error()))
		return nil
	}
	return entries
}
