package series

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// epochThreshold separates epoch-millisecond timestamps from other numeric
// period encodings such as plain years.
const epochThreshold = 10_000_000

var (
	ineMonthRe   = regexp.MustCompile(`^(\d{4})\s*[Mm]\s*(\d{1,2})$`)
	ineQuarterRe = regexp.MustCompile(`^(\d{4})\s*[Tt]\s*(\d)$`)
	monthYearRe  = regexp.MustCompile(`^(\d{1,2})[/-](\d{4})$`)
	yearMonthRe  = regexp.MustCompile(`^(\d{4})[/-](\d{1,2})$`)
	fullDateRe   = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)
)

// genericLayouts is the last-resort parse order for free-form date strings.
// Day-first layouts come before month-first ones, matching Spanish sources.
var genericLayouts = []string{
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"January 2006",
	"Jan 2006",
	"2006",
}

// NormalizePeriod maps any supported period encoding to the canonical
// "YYYY-MM" form. Numeric inputs above epochThreshold are interpreted as
// epoch milliseconds; other inputs fall through the string patterns in
// fixed priority order. Unrecognized strings are returned unchanged, the
// caller decides whether a non-canonical period is usable.
func NormalizePeriod(v interface{}) string {
	switch p := v.(type) {
	case nil:
		return ""
	case time.Time:
		return p.UTC().Format("2006-01")
	case json.Number:
		if f, err := p.Float64(); err == nil {
			return normalizeNumericPeriod(f)
		}
		return normalizePeriodString(p.String())
	case float64:
		return normalizeNumericPeriod(p)
	case int:
		return normalizeNumericPeriod(float64(p))
	case int64:
		return normalizeNumericPeriod(float64(p))
	case string:
		return normalizePeriodString(p)
	default:
		return normalizePeriodString(fmt.Sprintf("%v", p))
	}
}

func normalizeNumericPeriod(f float64) string {
	if f > epochThreshold {
		return time.UnixMilli(int64(f)).UTC().Format("2006-01")
	}
	// Small numbers are year-like encodings, handle them as strings.
	return normalizePeriodString(strconv.FormatFloat(f, 'f', -1, 64))
}

func normalizePeriodString(s string) string {
	s = strings.TrimSpace(s)

	if m := ineMonthRe.FindStringSubmatch(s); m != nil {
		return formatYearMonth(m[1], m[2])
	}
	// INE quarterly codes map to the first month of the quarter.
	if m := ineQuarterRe.FindStringSubmatch(s); m != nil {
		if q, err := strconv.Atoi(m[2]); err == nil && q >= 1 && q <= 4 {
			return fmt.Sprintf("%s-%02d", m[1], (q-1)*3+1)
		}
		return s
	}
	if m := monthYearRe.FindStringSubmatch(s); m != nil {
		return formatYearMonth(m[2], m[1])
	}
	if m := yearMonthRe.FindStringSubmatch(s); m != nil {
		return formatYearMonth(m[1], m[2])
	}
	if m := fullDateRe.FindStringSubmatch(s); m != nil {
		return m[1] + "-" + m[2]
	}

	for _, layout := range genericLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01")
		}
	}

	// Silent fallback: the original string, unchanged.
	return s
}

func formatYearMonth(year, month string) string {
	y, err := strconv.Atoi(year)
	if err != nil {
		return year + "-" + month
	}
	m, err := strconv.Atoi(month)
	if err != nil {
		return year + "-" + month
	}
	return fmt.Sprintf("%04d-%02d", y, m)
}
