package series

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// NormalizeValue coerces a value of unknown type into a float64. The
// second return is false when the value is absent or unparseable; that is
// never an error, the record is simply dropped by the caller.
//
// String values follow the Spanish convention: "." is a thousands
// separator and "," the decimal mark, so "1.234,56" parses to 1234.56.
func NormalizeValue(v interface{}) (float64, bool) {
	switch x := v.(type) {
	case nil:
		return 0, false
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return 0, false
		}
		return x, true
	case float32:
		return NormalizeValue(float64(x))
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return NormalizeValue(x.String())
		}
		return NormalizeValue(f)
	case string:
		return parseValueString(x)
	default:
		return 0, false
	}
}

func parseValueString(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "nan", "na", "none":
		return 0, false
	}

	// Thousands separators first, then the decimal comma.
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
