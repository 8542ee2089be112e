package cards

import (
	"strconv"
	"strings"
)

// FormatValue renders a float in the Spanish convention: "." as thousands
// separator, "," as decimal mark, two decimals. 1234.56 becomes "1.234,56".
func FormatValue(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	intPart, fracPart, _ := strings.Cut(s, ".")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(digit)
	}
	b.WriteByte(',')
	b.WriteString(fracPart)

	return b.String()
}

// FormatDelta renders a percentage change with two decimals and a decimal
// comma, e.g. "10,00%".
func FormatDelta(pct float64) string {
	return strings.Replace(strconv.FormatFloat(pct, 'f', 2, 64), ".", ",", 1) + "%"
}
