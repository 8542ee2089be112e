package series

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Record is one raw observation as decoded from JSON: dimension names,
// period and value keyed however the producing system chose to.
type Record map[string]interface{}

// regionKeyHints identify the autonomous-community dimension across INE
// tables, whose exact column name varies.
var regionKeyHints = []string{"comunidad", "autonom", "ccaa"}

var accentFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// FoldText lowercases a string and strips diacritics so that values like
// "Categoría" and "categoria" compare equal.
func FoldText(s string) string {
	folded, _, err := transform.String(accentFolder, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(strings.TrimSpace(folded))
}

// FromRecords normalizes raw records into a Dataset: the period key may be
// any of period/Periodo/Fecha and the value key value/Valor, matched
// case-insensitively. Records whose period or value cannot be normalized
// are dropped. The result is sorted ascending by period.
func FromRecords(records []Record) Dataset {
	out := make(Dataset, 0, len(records))
	for _, rec := range records {
		period := NormalizePeriod(fieldValue(rec, "fecha", "periodo", "period"))
		value, ok := NormalizeValue(fieldValue(rec, "valor", "value"))
		if period == "" || !ok {
			continue
		}
		out = append(out, Observation{Period: period, Value: value})
	}
	out.sortByPeriod()
	return out
}

// FilterRegion keeps the records whose autonomous-community dimension
// equals region. The dimension key is located by fuzzy, accent-insensitive
// match; records without such a dimension pass through unchanged.
func FilterRegion(records []Record, region string) []Record {
	want := FoldText(region)
	out := make([]Record, 0, len(records))
	for _, rec := range records {
		key, found := regionKey(rec)
		if !found {
			out = append(out, rec)
			continue
		}
		if v, ok := rec[key].(string); ok && FoldText(v) == want {
			out = append(out, rec)
		}
	}
	return out
}

func regionKey(rec Record) (string, bool) {
	for k := range rec {
		folded := FoldText(k)
		for _, hint := range regionKeyHints {
			if strings.Contains(folded, hint) {
				return k, true
			}
		}
	}
	return "", false
}

func fieldValue(rec Record, names ...string) interface{} {
	for _, name := range names {
		for k, v := range rec {
			if strings.EqualFold(strings.TrimSpace(k), name) && v != nil {
				return v
			}
		}
	}
	return nil
}
