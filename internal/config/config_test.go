package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, validate.Struct(cfg))

	assert.Equal(t, "ES", cfg.INE.Language)
	assert.Equal(t, "Extremadura", cfg.Site.Region)
	assert.Equal(t, "docs/data", cfg.Paths.DataDir)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("EED_INE_LANGUAGE", "EN")
	t.Setenv("EED_SITE_REGION", "Andalucía")
	t.Setenv("EED_SERVER_PORT", "9999")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "EN", cfg.INE.Language)
	assert.Equal(t, "Andalucía", cfg.Site.Region)
	assert.Equal(t, 9999, cfg.Server.Port)
	// Untouched fields keep their defaults.
	assert.Equal(t, 30*time.Second, cfg.INE.Timeout)
}

func TestLoadRejectsInvalidEnv(t *testing.T) {
	t.Setenv("EED_INE_LANGUAGE", "FR")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation")
}

func TestLoadFromFileOverlay(t *testing.T) {
	cfg := Default()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("site:\n  category: empleo\n"), 0644))

	require.NoError(t, loadFromFile(path, cfg))

	assert.Equal(t, "empleo", cfg.Site.Category)
	// Keys absent from the file keep their defaults.
	assert.Equal(t, "Extremadura", cfg.Site.Region)
}

func TestEnsureDirectories(t *testing.T) {
	base := t.TempDir()
	p := PathsConfig{
		DataDir:  filepath.Join(base, "docs", "data"),
		SiteDir:  filepath.Join(base, "docs"),
		CardsDir: filepath.Join(base, "docs", "cards"),
		LogsDir:  filepath.Join(base, "logs"),
	}

	require.NoError(t, p.EnsureDirectories())
	for _, dir := range []string{p.DataDir, p.SiteDir, p.CardsDir, p.LogsDir} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}

func TestPathHelpers(t *testing.T) {
	p := PathsConfig{DataDir: "docs/data", SiteDir: "docs", CardsDir: "docs/cards", LogsDir: "logs"}

	assert.Equal(t, filepath.Join("docs", "index.html"), p.IndexPath())
	assert.Equal(t, filepath.Join("docs", "cards", "50902.png"), p.CardPath("50902"))
	assert.Equal(t, filepath.Join("docs", "data", "50902.json"), p.DatasetPath("50902"))
	assert.Equal(t, filepath.Join("logs", "update.log"), p.LogPath("update.log"))
}
