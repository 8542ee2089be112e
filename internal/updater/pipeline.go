// Package updater implements the data refresh pipeline: it walks the
// indicator catalog, downloads each table from the Tempus 3 service,
// keeps the regional slice and saves the normalized series to disk.
package updater

import (
	"context"
	"log/slog"
	"time"

	"github.com/AAlmeidaM/extremadura-en-datos/internal/catalog"
	"github.com/AAlmeidaM/extremadura-en-datos/internal/exporter"
	"github.com/AAlmeidaM/extremadura-en-datos/internal/infrastructure"
	"github.com/AAlmeidaM/extremadura-en-datos/internal/ine"
	"github.com/AAlmeidaM/extremadura-en-datos/internal/series"
)

// Pipeline fetches catalog tables and persists their regional series.
type Pipeline struct {
	client  TableFetcher
	writer  *exporter.DatasetWriter
	metrics *infrastructure.PipelineMetrics
	logger  *slog.Logger
	region  string
	nult    int
	dryRun  bool
}

// TableFetcher is the part of the INE client the pipeline needs.
// *ine.Client satisfies it; tests substitute a stub.
type TableFetcher interface {
	TableData(ctx context.Context, tableID string, opts ine.TableDataOptions) ([]series.Record, error)
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithRegion sets the community the pipeline keeps; default Extremadura.
func WithRegion(region string) Option {
	return func(p *Pipeline) { p.region = region }
}

// WithLastPeriods limits each request to the last n periods.
func WithLastPeriods(n int) Option {
	return func(p *Pipeline) { p.nult = n }
}

// WithDryRun fetches and normalizes but writes nothing.
func WithDryRun(dry bool) Option {
	return func(p *Pipeline) { p.dryRun = dry }
}

// WithMetrics attaches pipeline instruments.
func WithMetrics(m *infrastructure.PipelineMetrics) Option {
	return func(p *Pipeline) { p.metrics = m }
}

// New creates a refresh pipeline.
func New(client TableFetcher, writer *exporter.DatasetWriter, logger *slog.Logger, opts ...Option) *Pipeline {
	p := &Pipeline{
		client: client,
		writer: writer,
		logger: logger,
		region: "Extremadura",
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	return p
}

// Summary tallies one pipeline run.
type Summary struct {
	Processed int
	Skipped   int
}

// Run refreshes every catalog entry. A failing table is logged and
// skipped; the run only stops when the context is cancelled.
func (p *Pipeline) Run(ctx context.Context, entries []catalog.Entry) (Summary, error) {
	var sum Summary

	p.logger.InfoContext(ctx, "Starting data update",
		slog.Int("table_count", len(entries)),
		slog.String("region", p.region),
		slog.Bool("dry_run", p.dryRun))

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return sum, err
		}

		if err := p.processTable(ctx, entry); err != nil {
			sum.Skipped++
			p.logger.WarnContext(ctx, "Table skipped",
				slog.String("table_id", entry.TableID),
				slog.String("error", err.Error()))
			continue
		}
		sum.Processed++
	}

	p.logger.InfoContext(ctx, "Data update finished",
		slog.Int("processed", sum.Processed),
		slog.Int("skipped", sum.Skipped))

	return sum, nil
}

func (p *Pipeline) processTable(ctx context.Context, entry catalog.Entry) error {
	start := time.Now()

	records, err := p.client.TableData(ctx, entry.TableID, ine.TableDataOptions{
		Nult: p.nult,
		Tip:  entry.Tip(),
	})
	if p.metrics != nil {
		p.metrics.RecordTableFetch(ctx, entry.TableID, time.Since(start), err == nil)
	}
	if err != nil {
		return err
	}

	regional := series.FilterRegion(records, p.region)
	ds := series.FromRecords(regional)
	if len(ds) == 0 {
		return errEmptyDataset{entry.TableID}
	}

	p.logger.DebugContext(ctx, "Table normalized",
		slog.String("table_id", entry.TableID),
		slog.Int("record_count", len(records)),
		slog.Int("observation_count", len(ds)))

	if p.dryRun {
		return nil
	}
	return p.writer.Write(entry.TableID, ds)
}

type errEmptyDataset struct {
	tableID string
}

func (e errEmptyDataset) Error() string {
	return "table " + e.tableID + " produced no usable observations"
}
