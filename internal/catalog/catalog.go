package catalog

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/AAlmeidaM/extremadura-en-datos/internal/files"
	"github.com/AAlmeidaM/extremadura-en-datos/internal/series"
)

// Entry is one row of the indicator catalog: a published INE table plus
// the metadata used to fetch and label it.
type Entry struct {
	TableID     string
	URL         string
	Category    string
	Metric      string
	Periodicity string
}

// Tip maps the catalog periodicity to the Tempus 3 `tip` parameter.
// Unknown periodicities return "" and the full series is requested.
func (e Entry) Tip() string {
	switch {
	case strings.Contains(series.FoldText(e.Periodicity), "mensual"):
		return "M"
	case strings.Contains(series.FoldText(e.Periodicity), "trimestral"):
		return "T"
	case strings.Contains(series.FoldText(e.Periodicity), "anual"):
		return "A"
	default:
		return ""
	}
}

// Title is the card heading for the entry.
func (e Entry) Title() string {
	if e.Metric != "" {
		return e.Metric
	}
	return "Tabla " + e.TableID
}

var tableIDRe = regexp.MustCompile(`[?&]t=(\d+)`)

// ExtractTableID pulls the `t` query parameter out of an INEbase URL.
func ExtractTableID(url string) string {
	if m := tableIDRe.FindStringSubmatch(url); m != nil {
		return m[1]
	}
	return ""
}

// Load reads the catalog workbook and returns one entry per row that
// carries a resolvable table id. The header row is located dynamically by
// looking for the URL column, the catalog template keeps it on the third
// row. Rows without an id are skipped with a warning.
func Load(path string) ([]Entry, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("catalog %s has no sheets", path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog sheet: %w", err)
	}

	headerRow, columns := findHeader(rows)
	if headerRow < 0 {
		return nil, fmt.Errorf("catalog %s has no header row with a URL column", path)
	}

	var entries []Entry
	for _, row := range rows[headerRow+1:] {
		url := cellNamed(row, columns, "url")
		if url == "" {
			continue
		}

		id := ExtractTableID(url)
		if id == "" {
			slog.Warn("No table id found in catalog URL", slog.String("url", url))
			continue
		}

		entries = append(entries, Entry{
			TableID:     id,
			URL:         url,
			Category:    cellNamed(row, columns, "categoria"),
			Metric:      cellNamed(row, columns, "metricas"),
			Periodicity: cellNamed(row, columns, "periodicidad"),
		})
	}

	return entries, nil
}

// FilterCategory keeps entries whose category contains the given term,
// accent- and case-insensitively. An empty term keeps everything.
func FilterCategory(entries []Entry, term string) []Entry {
	want := series.FoldText(term)
	if want == "" {
		return entries
	}

	var out []Entry
	for _, e := range entries {
		if strings.Contains(series.FoldText(e.Category), want) {
			out = append(out, e)
		}
	}
	return out
}

// FallbackFromJSON builds catalog entries from the dataset files already
// present in dataDir. Used when the workbook is missing or the category
// filter matches nothing, so a site can still be produced from whatever
// data exists.
func FallbackFromJSON(dataDir string) ([]Entry, error) {
	found, err := files.NewDiscovery("").FindJSONFiles(dataDir)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(found))
	for _, f := range found {
		entries = append(entries, Entry{TableID: f.Stem})
	}
	return entries, nil
}

// findHeader scans the leading rows for the catalog header and maps the
// known column names to their positions.
func findHeader(rows [][]string) (int, map[string]int) {
	for i, row := range rows {
		if i > 8 {
			break
		}
		columns := make(map[string]int)
		for j, header := range row {
			switch series.FoldText(header) {
			case "url":
				columns["url"] = j
			case "categoria":
				columns["categoria"] = j
			case "metricas", "metrica":
				columns["metricas"] = j
			case "periodicidad":
				columns["periodicidad"] = j
			}
		}
		if _, ok := columns["url"]; ok {
			return i, columns
		}
	}
	return -1, nil
}

func cellNamed(row []string, columns map[string]int, name string) string {
	idx, ok := columns[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
