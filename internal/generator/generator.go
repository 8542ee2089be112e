// Package generator implements the site build pipeline: it reads the
// saved datasets, renders one status card per indicator and writes the
// HTML index that ties them together.
package generator

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/AAlmeidaM/extremadura-en-datos/internal/cards"
	"github.com/AAlmeidaM/extremadura-en-datos/internal/catalog"
	"github.com/AAlmeidaM/extremadura-en-datos/internal/config"
	"github.com/AAlmeidaM/extremadura-en-datos/internal/infrastructure"
	"github.com/AAlmeidaM/extremadura-en-datos/internal/series"
)

// Generator turns datasets into cards plus an index page.
type Generator struct {
	paths    config.PathsConfig
	renderer *cards.Renderer
	metrics  *infrastructure.PipelineMetrics
	logger   *slog.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithMetrics attaches pipeline instruments.
func WithMetrics(m *infrastructure.PipelineMetrics) Option {
	return func(g *Generator) { g.metrics = m }
}

// New creates a site generator writing into the configured paths.
func New(paths config.PathsConfig, renderer *cards.Renderer, logger *slog.Logger, opts ...Option) *Generator {
	g := &Generator{
		paths:    paths,
		renderer: renderer,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.logger == nil {
		g.logger = slog.Default()
	}
	return g
}

// Summary tallies one generator run.
type Summary struct {
	Rendered int
	Skipped  int
}

// Page holds the index page headings.
type Page struct {
	Title    string
	Subtitle string
}

// Run renders a card for every entry whose dataset file exists and can be
// decoded, then writes the index listing the cards that were produced.
// Missing or malformed datasets are logged and skipped.
func (g *Generator) Run(ctx context.Context, entries []catalog.Entry, page Page) (Summary, error) {
	var sum Summary
	var items []cards.IndexItem

	g.logger.InfoContext(ctx, "Starting card generation",
		slog.Int("table_count", len(entries)))

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return sum, err
		}

		if err := g.renderCard(ctx, entry); err != nil {
			sum.Skipped++
			g.logger.WarnContext(ctx, "Card skipped",
				slog.String("table_id", entry.TableID),
				slog.String("error", err.Error()))
			continue
		}

		sum.Rendered++
		if g.metrics != nil {
			g.metrics.CardsRendered.Add(ctx, 1)
		}
		items = append(items, cards.IndexItem{
			File:  relativeCardPath(g.paths, entry.TableID),
			Label: entry.Title(),
		})
	}

	// A run that produced nothing keeps whatever index is already there.
	if sum.Rendered > 0 {
		if err := cards.WriteIndex(g.paths.IndexPath(), cards.IndexPage{
			Title:    page.Title,
			Subtitle: page.Subtitle,
			Items:    items,
		}); err != nil {
			return sum, err
		}
	}

	g.logger.InfoContext(ctx, "Card generation finished",
		slog.Int("rendered", sum.Rendered),
		slog.Int("skipped", sum.Skipped))

	return sum, nil
}

func (g *Generator) renderCard(ctx context.Context, entry catalog.Entry) error {
	data, err := os.ReadFile(g.paths.DatasetPath(entry.TableID))
	if err != nil {
		return err
	}

	ds, err := series.Decode(data)
	if err != nil {
		return err
	}

	last, ok := ds.Last()
	if !ok {
		return errNoObservations{entry.TableID}
	}

	card := cards.Card{
		Title:      entry.Title(),
		LastPeriod: last.Period,
		LastValue:  last.Value,
	}
	if pct, ok := ds.Delta(); ok {
		card.Delta = &pct
	}

	g.logger.DebugContext(ctx, "Card rendered",
		slog.String("table_id", entry.TableID),
		slog.String("last_period", last.Period))

	return g.renderer.RenderFile(card, g.paths.CardPath(entry.TableID))
}

// relativeCardPath is the image path as seen from the index page.
func relativeCardPath(p config.PathsConfig, tableID string) string {
	rel, err := filepath.Rel(p.SiteDir, p.CardPath(tableID))
	if err != nil {
		return p.CardPath(tableID)
	}
	return filepath.ToSlash(rel)
}

type errNoObservations struct {
	tableID string
}

func (e errNoObservations) Error() string {
	return "dataset " + e.tableID + " has no observations"
}
