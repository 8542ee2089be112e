package services

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthCheckHealthy(t *testing.T) {
	cfg := testConfig(t)
	writeDataset(t, cfg, "50902", `[]`)
	require.NoError(t, os.WriteFile(cfg.Paths.CardPath("50902"), []byte("png"), 0644))

	hs := NewHealthService("v1.2.0", cfg.Paths, slog.Default())
	status := hs.Check(context.Background())

	assert.Equal(t, "healthy", status.Status)
	assert.Equal(t, "v1.2.0", status.Version)
	assert.Equal(t, 1, status.Artifacts["datasets"])
	assert.Equal(t, 1, status.Artifacts["cards"])
	assert.NotEmpty(t, status.Runtime["go_version"])
}

func TestHealthCheckDegradedWhenDirsMissing(t *testing.T) {
	cfg := testConfig(t)
	cfg.Paths.DataDir = cfg.Paths.DataDir + "-nope"

	hs := NewHealthService("v1.2.0", cfg.Paths, slog.Default())
	status := hs.Check(context.Background())

	assert.Equal(t, "degraded", status.Status)
	assert.Equal(t, 0, status.Artifacts["datasets"])
}
