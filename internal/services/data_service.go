// Package services holds the business logic behind the preview server:
// listing indicators, reading saved datasets and reporting health.
package services

import (
	"context"
	"log/slog"
	"os"
	"time"

	apierrors "github.com/AAlmeidaM/extremadura-en-datos/internal/errors"

	"github.com/AAlmeidaM/extremadura-en-datos/internal/catalog"
	"github.com/AAlmeidaM/extremadura-en-datos/internal/config"
	"github.com/AAlmeidaM/extremadura-en-datos/internal/ine"
	"github.com/AAlmeidaM/extremadura-en-datos/internal/series"
)

// DataService provides read access to the catalog and the saved datasets.
type DataService struct {
	cfg      *config.Config
	calendar CalendarFetcher
	logger   *slog.Logger
}

// CalendarFetcher is the part of the INE client the service needs.
type CalendarFetcher interface {
	Calendar(ctx context.Context, calendarURL string) ([]ine.ReleaseEvent, error)
}

// NewDataService creates a data service.
func NewDataService(cfg *config.Config, calendar CalendarFetcher, logger *slog.Logger) *DataService {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("DataService initialized",
		slog.String("data_dir", cfg.Paths.DataDir),
		slog.String("catalog", cfg.Site.Catalog))

	return &DataService{
		cfg:      cfg,
		calendar: calendar,
		logger:   logger,
	}
}

// Indicator is one catalog entry enriched with its latest observation.
type Indicator struct {
	TableID     string   `json:"table_id"`
	Title       string   `json:"title"`
	Category    string   `json:"category,omitempty"`
	Periodicity string   `json:"periodicity,omitempty"`
	LastPeriod  string   `json:"last_period,omitempty"`
	LastValue   *float64 `json:"last_value,omitempty"`
	DeltaPct    *float64 `json:"delta_pct,omitempty"`
	HasDataset  bool     `json:"has_dataset"`
}

// ListIndicators returns every catalog entry with, where a dataset exists,
// the latest observation and the change against the previous period.
func (ds *DataService) ListIndicators(ctx context.Context) ([]Indicator, error) {
	entries, err := ds.loadCatalog()
	if err != nil {
		return nil, err
	}

	indicators := make([]Indicator, 0, len(entries))
	for _, entry := range entries {
		ind := Indicator{
			TableID:     entry.TableID,
			Title:       entry.Title(),
			Category:    entry.Category,
			Periodicity: entry.Periodicity,
		}

		if dataset, err := ds.readDataset(entry.TableID); err == nil {
			ind.HasDataset = true
			if last, ok := dataset.Last(); ok {
				ind.LastPeriod = last.Period
				ind.LastValue = &last.Value
			}
			if pct, ok := dataset.Delta(); ok {
				ind.DeltaPct = &pct
			}
		}

		indicators = append(indicators, ind)
	}

	ds.logger.DebugContext(ctx, "Indicators listed",
		slog.Int("count", len(indicators)))

	return indicators, nil
}

// GetDataset returns the saved observations for one table.
func (ds *DataService) GetDataset(ctx context.Context, tableID string) (series.Dataset, error) {
	dataset, err := ds.readDataset(tableID)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apierrors.DatasetNotFoundError(tableID)
		}
		return nil, apierrors.DatasetCorruptedError(tableID, err)
	}
	return dataset, nil
}

// UpcomingReleases returns the INE publication calendar entries from today
// onwards, capped at limit when limit is positive.
func (ds *DataService) UpcomingReleases(ctx context.Context, limit int) ([]ine.ReleaseEvent, error) {
	events, err := ds.calendar.Calendar(ctx, ds.cfg.INE.CalendarURL)
	if err != nil {
		return nil, apierrors.CalendarUnavailableError(err)
	}

	today := time.Now().Truncate(24 * time.Hour)
	upcoming := make([]ine.ReleaseEvent, 0, len(events))
	for _, ev := range events {
		if ev.Date.Before(today) {
			continue
		}
		upcoming = append(upcoming, ev)
		if limit > 0 && len(upcoming) == limit {
			break
		}
	}
	return upcoming, nil
}

// loadCatalog reads the workbook and applies the category filter. When
// the workbook is missing or the filter matches nothing it falls back to
// the dataset directory, the same policy the card generator follows, so
// the indicator list and the generated site agree.
func (ds *DataService) loadCatalog() ([]catalog.Entry, error) {
	entries, err := catalog.Load(ds.cfg.Site.Catalog)
	if err != nil {
		ds.logger.Warn("Catalog workbook unavailable, using dataset directory",
			slog.String("catalog", ds.cfg.Site.Catalog),
			slog.String("error", err.Error()))
		return ds.fallbackEntries()
	}

	filtered := catalog.FilterCategory(entries, ds.cfg.Site.Category)
	if len(filtered) == 0 {
		ds.logger.Warn("Category filter matched nothing, using dataset directory",
			slog.String("category", ds.cfg.Site.Category))
		return ds.fallbackEntries()
	}
	return filtered, nil
}

func (ds *DataService) fallbackEntries() ([]catalog.Entry, error) {
	entries, err := catalog.FallbackFromJSON(ds.cfg.Paths.DataDir)
	if err != nil {
		return nil, apierrors.CatalogUnavailableError(err)
	}
	return entries, nil
}

func (ds *DataService) readDataset(tableID string) (series.Dataset, error) {
	data, err := os.ReadFile(ds.cfg.Paths.DatasetPath(tableID))
	if err != nil {
		return nil, err
	}
	return series.Decode(data)
}
