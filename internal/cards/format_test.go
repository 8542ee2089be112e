package cards

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatValue(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected string
	}{
		{
			name:     "thousands and decimals",
			input:    1234.56,
			expected: "1.234,56",
		},
		{
			name:     "millions",
			input:    1234567.8,
			expected: "1.234.567,80",
		},
		{
			name:     "no grouping needed",
			input:    97.8,
			expected: "97,80",
		},
		{
			name:     "exactly three digits",
			input:    123.0,
			expected: "123,00",
		},
		{
			name:     "four digits",
			input:    1000.0,
			expected: "1.000,00",
		},
		{
			name:     "negative",
			input:    -1234.5,
			expected: "-1.234,50",
		},
		{
			name:     "zero",
			input:    0,
			expected: "0,00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatValue(tt.input))
		})
	}
}

func TestFormatDelta(t *testing.T) {
	assert.Equal(t, "10,00%", FormatDelta(10))
	assert.Equal(t, "-2,35%", FormatDelta(-2.351))
	assert.Equal(t, "0,00%", FormatDelta(0))
}
