package series

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePeriod(t *testing.T) {
	tests := []struct {
		name     string
		input    interface{}
		expected string
	}{
		{
			name:     "INE monthly code",
			input:    "2024M01",
			expected: "2024-01",
		},
		{
			name:     "INE monthly code lowercase with spaces",
			input:    "2024 m 1",
			expected: "2024-01",
		},
		{
			name:     "epoch milliseconds",
			input:    json.Number("1705276800000"), // 2024-01-15 UTC
			expected: "2024-01",
		},
		{
			name:     "epoch milliseconds as float",
			input:    float64(1705276800000),
			expected: "2024-01",
		},
		{
			name:     "INE quarterly code first quarter",
			input:    "2024T1",
			expected: "2024-01",
		},
		{
			name:     "INE quarterly code third quarter",
			input:    "2025T3",
			expected: "2025-07",
		},
		{
			name:     "INE quarterly code lowercase with spaces",
			input:    "2025 t 4",
			expected: "2025-10",
		},
		{
			name:     "quarter out of range passes through",
			input:    "2025T5",
			expected: "2025T5",
		},
		{
			name:     "month slash year",
			input:    "9/2023",
			expected: "2023-09",
		},
		{
			name:     "month dash year",
			input:    "09-2023",
			expected: "2023-09",
		},
		{
			name:     "year slash month",
			input:    "2023/9",
			expected: "2023-09",
		},
		{
			name:     "full ISO date keeps month only",
			input:    "2024-01-15",
			expected: "2024-01",
		},
		{
			name:     "day-first free-form date",
			input:    "15/01/2024",
			expected: "2024-01",
		},
		{
			name:     "bare year",
			input:    "2022",
			expected: "2022-01",
		},
		{
			name:     "unrecognized string passes through",
			input:    "cuarto trimestre",
			expected: "cuarto trimestre",
		},
		{
			name:     "nil yields empty",
			input:    nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizePeriod(tt.input))
		})
	}
}

func TestNormalizePeriodSameMonthAcrossEncodings(t *testing.T) {
	// All encodings of January 2024 must collapse to the same canonical form.
	encodings := []interface{}{
		"2024M01",
		"2024M1",
		"2024T1",
		"01/2024",
		"1-2024",
		"2024/01",
		"2024-01-15",
		json.Number("1705276800000"),
	}

	for _, enc := range encodings {
		assert.Equal(t, "2024-01", NormalizePeriod(enc), "encoding %v", enc)
	}
}
