package services

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	apierrors "github.com/AAlmeidaM/extremadura-en-datos/internal/errors"

	"github.com/AAlmeidaM/extremadura-en-datos/internal/config"
	"github.com/AAlmeidaM/extremadura-en-datos/internal/ine"
)

type stubCalendar struct {
	events []ine.ReleaseEvent
	err    error
}

func (s *stubCalendar) Calendar(ctx context.Context, calendarURL string) ([]ine.ReleaseEvent, error) {
	return s.events, s.err
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	base := t.TempDir()

	cfg := config.Default()
	cfg.Site.Catalog = filepath.Join(base, "missing.xlsx")
	cfg.Paths = config.PathsConfig{
		DataDir:  filepath.Join(base, "docs", "data"),
		SiteDir:  filepath.Join(base, "docs"),
		CardsDir: filepath.Join(base, "docs", "cards"),
		LogsDir:  filepath.Join(base, "logs"),
	}
	require.NoError(t, cfg.Paths.EnsureDirectories())
	return cfg
}

func writeDataset(t *testing.T, cfg *config.Config, tableID, payload string) {
	t.Helper()
	require.NoError(t, os.WriteFile(cfg.Paths.DatasetPath(tableID), []byte(payload), 0644))
}

func TestListIndicatorsFromDatasetFallback(t *testing.T) {
	cfg := testConfig(t)
	writeDataset(t, cfg, "50902", `[{"period":"2024M01","value":100},{"period":"2024M02","value":110}]`)
	writeDataset(t, cfg, "50913", `[{"period":"2024M02","value":42.5}]`)

	svc := NewDataService(cfg, &stubCalendar{}, slog.Default())
	indicators, err := svc.ListIndicators(context.Background())
	require.NoError(t, err)
	require.Len(t, indicators, 2)

	first := indicators[0]
	assert.Equal(t, "50902", first.TableID)
	assert.True(t, first.HasDataset)
	assert.Equal(t, "2024M02", first.LastPeriod)
	require.NotNil(t, first.LastValue)
	assert.Equal(t, 110.0, *first.LastValue)
	require.NotNil(t, first.DeltaPct)
	assert.InDelta(t, 10.0, *first.DeltaPct, 1e-9)

	// Single observation: value but no delta.
	second := indicators[1]
	require.NotNil(t, second.LastValue)
	assert.Nil(t, second.DeltaPct)
}

func TestListIndicatorsCategoryMissFallsBackToDatasets(t *testing.T) {
	cfg := testConfig(t)
	writeDataset(t, cfg, "50902", `[{"period":"2024M01","value":100}]`)

	// Workbook exists but nothing matches the configured category; the
	// fallback must be the dataset directory, like the card generator.
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"URL", "Categoría", "Métricas", "Periodicidad"},
		{"https://www.ine.es/jaxiT3/Tabla.htm?t=24079", "Demografía", "Población residente", "Anual"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	cfg.Site.Catalog = filepath.Join(t.TempDir(), "catalogo.xlsx")
	require.NoError(t, f.SaveAs(cfg.Site.Catalog))
	require.NoError(t, f.Close())
	cfg.Site.Category = "industria"

	svc := NewDataService(cfg, &stubCalendar{}, slog.Default())
	indicators, err := svc.ListIndicators(context.Background())
	require.NoError(t, err)

	require.Len(t, indicators, 1)
	assert.Equal(t, "50902", indicators[0].TableID)
	assert.True(t, indicators[0].HasDataset)
}

func TestGetDataset(t *testing.T) {
	cfg := testConfig(t)
	writeDataset(t, cfg, "50902", `[{"period":"2024M01","value":100}]`)

	svc := NewDataService(cfg, &stubCalendar{}, slog.Default())

	ds, err := svc.GetDataset(context.Background(), "50902")
	require.NoError(t, err)
	require.Len(t, ds, 1)
	assert.Equal(t, "2024M01", ds[0].Period)
}

func TestGetDatasetNotFound(t *testing.T) {
	cfg := testConfig(t)
	svc := NewDataService(cfg, &stubCalendar{}, slog.Default())

	_, err := svc.GetDataset(context.Background(), "99999")
	require.Error(t, err)

	apiErr, ok := err.(*apierrors.APIError)
	require.True(t, ok)
	assert.Equal(t, "DATASET_NOT_FOUND", apiErr.ErrorCode)
}

func TestGetDatasetCorrupted(t *testing.T) {
	cfg := testConfig(t)
	writeDataset(t, cfg, "50902", `{"rows": 3}`)

	svc := NewDataService(cfg, &stubCalendar{}, slog.Default())

	_, err := svc.GetDataset(context.Background(), "50902")
	require.Error(t, err)

	apiErr, ok := err.(*apierrors.APIError)
	require.True(t, ok)
	assert.Equal(t, "DATASET_CORRUPTED", apiErr.ErrorCode)
}

func TestUpcomingReleases(t *testing.T) {
	cfg := testConfig(t)
	now := time.Now()
	cal := &stubCalendar{events: []ine.ReleaseEvent{
		{Title: "IPC enero", Date: now.AddDate(0, 0, -30)},
		{Title: "IPI marzo", Date: now.AddDate(0, 0, 2)},
		{Title: "EPA primer trimestre", Date: now.AddDate(0, 0, 10)},
	}}

	svc := NewDataService(cfg, cal, slog.Default())

	events, err := svc.UpcomingReleases(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "IPI marzo", events[0].Title)

	limited, err := svc.UpcomingReleases(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestUpcomingReleasesUnavailable(t *testing.T) {
	cfg := testConfig(t)
	svc := NewDataService(cfg, &stubCalendar{err: assert.AnError}, slog.Default())

	_, err := svc.UpcomingReleases(context.Background(), 0)
	require.Error(t, err)

	apiErr, ok := err.(*apierrors.APIError)
	require.True(t, ok)
	assert.Equal(t, "CALENDAR_UNAVAILABLE", apiErr.ErrorCode)
}
