package services

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"github.com/AAlmeidaM/extremadura-en-datos/internal/config"
	"github.com/AAlmeidaM/extremadura-en-datos/internal/files"
)

// HealthService reports server and artifact health.
type HealthService struct {
	version   string
	paths     config.PathsConfig
	startTime time.Time
	logger    *slog.Logger
}

// HealthStatus represents the health status response
type HealthStatus struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime,omitempty"`
	Artifacts map[string]int         `json:"artifacts,omitempty"`
}

// NewHealthService creates a health service.
func NewHealthService(version string, paths config.PathsConfig, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthService{
		version:   version,
		paths:     paths,
		startTime: time.Now(),
		logger:    logger,
	}
}

// Check reports liveness plus how many datasets and cards are on disk.
// Missing artifact directories degrade the status instead of failing it:
// the server can still serve whatever exists.
func (hs *HealthService) Check(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now(),
		Version:   hs.version,
		Runtime: map[string]interface{}{
			"go_version":     runtime.Version(),
			"os":             runtime.GOOS,
			"arch":           runtime.GOARCH,
			"uptime_seconds": time.Since(hs.startTime).Seconds(),
		},
		Artifacts: map[string]int{},
	}

	discovery := files.NewDiscovery("")

	datasets, err := discovery.FindJSONFiles(hs.paths.DataDir)
	if err != nil {
		hs.logger.WarnContext(ctx, "Data directory unavailable",
			slog.String("dir", hs.paths.DataDir),
			slog.String("error", err.Error()))
		status.Status = "degraded"
	}
	status.Artifacts["datasets"] = len(datasets)

	cardImages, err := discovery.FindPNGFiles(hs.paths.CardsDir)
	if err != nil {
		hs.logger.WarnContext(ctx, "Cards directory unavailable",
			slog.String("dir", hs.paths.CardsDir),
			slog.String("error", err.Error()))
		status.Status = "degraded"
	}
	status.Artifacts["cards"] = len(cardImages)

	return status
}
