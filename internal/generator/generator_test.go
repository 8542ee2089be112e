package generator

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AAlmeidaM/extremadura-en-datos/internal/cards"
	"github.com/AAlmeidaM/extremadura-en-datos/internal/catalog"
	"github.com/AAlmeidaM/extremadura-en-datos/internal/config"
)

func testPaths(t *testing.T) config.PathsConfig {
	t.Helper()
	base := t.TempDir()
	p := config.PathsConfig{
		DataDir:  filepath.Join(base, "docs", "data"),
		SiteDir:  filepath.Join(base, "docs"),
		CardsDir: filepath.Join(base, "docs", "cards"),
		LogsDir:  filepath.Join(base, "logs"),
	}
	require.NoError(t, p.EnsureDirectories())
	return p
}

func writeDataset(t *testing.T, p config.PathsConfig, tableID, payload string) {
	t.Helper()
	require.NoError(t, os.WriteFile(p.DatasetPath(tableID), []byte(payload), 0644))
}

func newGenerator(t *testing.T, p config.PathsConfig) *Generator {
	t.Helper()
	renderer, err := cards.NewRenderer("Extremadura en Datos")
	require.NoError(t, err)
	return New(p, renderer, slog.Default())
}

func TestRunRendersCardsAndIndex(t *testing.T) {
	p := testPaths(t)
	writeDataset(t, p, "50902", `[{"period":"2024M01","value":100},{"period":"2024M02","value":110}]`)
	writeDataset(t, p, "50913", `[{"period":"2024M02","value":42.5}]`)

	g := newGenerator(t, p)
	sum, err := g.Run(context.Background(), []catalog.Entry{
		{TableID: "50902", Metric: "Índice de Producción Industrial"},
		{TableID: "50913"},
	}, Page{Title: "Industria y Empresa", Subtitle: "Extremadura"})
	require.NoError(t, err)

	assert.Equal(t, 2, sum.Rendered)
	assert.Equal(t, 0, sum.Skipped)

	for _, id := range []string{"50902", "50913"} {
		info, err := os.Stat(p.CardPath(id))
		require.NoError(t, err)
		assert.NotZero(t, info.Size())
	}

	html, err := os.ReadFile(p.IndexPath())
	require.NoError(t, err)
	assert.Contains(t, string(html), `src="cards/50902.png"`)
	assert.Contains(t, string(html), "Índice de Producción Industrial")
	assert.Contains(t, string(html), "Tabla 50913")
}

func TestRunSkipsMissingAndMalformedDatasets(t *testing.T) {
	p := testPaths(t)
	writeDataset(t, p, "100", `[{"period":"2024M01","value":1}]`)
	writeDataset(t, p, "200", `{"rows": 3}`)

	g := newGenerator(t, p)
	sum, err := g.Run(context.Background(), []catalog.Entry{
		{TableID: "100"},
		{TableID: "200"}, // unrecognized shape
		{TableID: "300"}, // file does not exist
	}, Page{Title: "t"})
	require.NoError(t, err)

	assert.Equal(t, 1, sum.Rendered)
	assert.Equal(t, 2, sum.Skipped)

	// The index only lists the card that was produced.
	html, err := os.ReadFile(p.IndexPath())
	require.NoError(t, err)
	assert.Contains(t, string(html), "cards/100.png")
	assert.NotContains(t, string(html), "cards/200.png")
	assert.NotContains(t, string(html), "cards/300.png")
}

func TestRunKeepsIndexWhenNothingRendered(t *testing.T) {
	p := testPaths(t)
	require.NoError(t, os.WriteFile(p.IndexPath(), []byte("<!doctype html>previous good index"), 0644))

	g := newGenerator(t, p)
	sum, err := g.Run(context.Background(), []catalog.Entry{
		{TableID: "200"}, // file does not exist
	}, Page{Title: "t"})
	require.NoError(t, err)
	assert.Equal(t, 0, sum.Rendered)

	html, err := os.ReadFile(p.IndexPath())
	require.NoError(t, err)
	assert.Equal(t, "<!doctype html>previous good index", string(html))
}

func TestRunIsIdempotent(t *testing.T) {
	p := testPaths(t)
	writeDataset(t, p, "100", `[{"period":"2024M01","value":1},{"period":"2024M02","value":2}]`)

	g := newGenerator(t, p)
	entries := []catalog.Entry{{TableID: "100"}}

	_, err := g.Run(context.Background(), entries, Page{Title: "t"})
	require.NoError(t, err)
	first, err := os.ReadFile(p.CardPath("100"))
	require.NoError(t, err)
	firstIndex, err := os.ReadFile(p.IndexPath())
	require.NoError(t, err)

	_, err = g.Run(context.Background(), entries, Page{Title: "t"})
	require.NoError(t, err)
	second, err := os.ReadFile(p.CardPath("100"))
	require.NoError(t, err)
	secondIndex, err := os.ReadFile(p.IndexPath())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, firstIndex, secondIndex)
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	p := testPaths(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	g := newGenerator(t, p)
	_, err := g.Run(ctx, []catalog.Entry{{TableID: "100"}}, Page{})
	assert.ErrorIs(t, err, context.Canceled)
}
