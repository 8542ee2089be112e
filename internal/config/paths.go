package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureDirectories creates every output directory the pipelines write to.
func (p PathsConfig) EnsureDirectories() error {
	for _, dir := range []string{p.DataDir, p.SiteDir, p.CardsDir, p.LogsDir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// IndexPath is where the generated HTML index lives.
func (p PathsConfig) IndexPath() string {
	return filepath.Join(p.SiteDir, "index.html")
}

// CardPath is where the card image for a table lives.
func (p PathsConfig) CardPath(tableID string) string {
	return filepath.Join(p.CardsDir, tableID+".png")
}

// DatasetPath is the conventional JSON dataset location for a table.
func (p PathsConfig) DatasetPath(tableID string) string {
	return filepath.Join(p.DataDir, tableID+".json")
}

// LogPath resolves a log file name inside the logs directory.
func (p PathsConfig) LogPath(name string) string {
	return filepath.Join(p.LogsDir, name)
}
