package exporter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/AAlmeidaM/extremadura-en-datos/internal/series"
)

// DatasetWriter persists normalized datasets under the data directory,
// one JSON and one CSV file per table. Re-running overwrites in place, so
// unchanged inputs produce byte-identical outputs.
type DatasetWriter struct {
	dataDir string
	logger  *slog.Logger
}

// NewDatasetWriter creates a writer rooted at dataDir.
func NewDatasetWriter(dataDir string, logger *slog.Logger) *DatasetWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &DatasetWriter{dataDir: dataDir, logger: logger}
}

// JSONPath returns the conventional dataset path for a table.
func (w *DatasetWriter) JSONPath(tableID string) string {
	return filepath.Join(w.dataDir, tableID+".json")
}

// CSVPath returns the CSV sibling of JSONPath.
func (w *DatasetWriter) CSVPath(tableID string) string {
	return filepath.Join(w.dataDir, tableID+".csv")
}

// Write saves the dataset in both formats.
func (w *DatasetWriter) Write(tableID string, ds series.Dataset) error {
	if err := os.MkdirAll(w.dataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	if err := w.writeJSON(tableID, ds); err != nil {
		return err
	}
	if err := w.writeCSV(tableID, ds); err != nil {
		return err
	}

	w.logger.Info("Dataset saved",
		slog.String("table_id", tableID),
		slog.Int("observations", len(ds)),
		slog.String("json_path", w.JSONPath(tableID)))

	return nil
}

// writeJSON writes the flat record-list layout, the same shape the card
// generator's decoder accepts.
func (w *DatasetWriter) writeJSON(tableID string, ds series.Dataset) error {
	if ds == nil {
		ds = series.Dataset{}
	}

	data, err := json.MarshalIndent(ds, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal dataset %s: %w", tableID, err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(w.JSONPath(tableID), data, 0644); err != nil {
		return fmt.Errorf("write dataset %s: %w", tableID, err)
	}
	return nil
}

func (w *DatasetWriter) writeCSV(tableID string, ds series.Dataset) error {
	f, err := os.Create(w.CSVPath(tableID))
	if err != nil {
		return fmt.Errorf("create CSV for %s: %w", tableID, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	if err := writer.Write([]string{"period", "value"}); err != nil {
		return fmt.Errorf("write CSV header for %s: %w", tableID, err)
	}
	for _, obs := range ds {
		row := []string{obs.Period, strconv.FormatFloat(obs.Value, 'f', -1, 64)}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write CSV row for %s: %w", tableID, err)
		}
	}

	return nil
}
