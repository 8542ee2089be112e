package exporter

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AAlmeidaM/extremadura-en-datos/internal/series"
)

func TestWriteRoundTrip(t *testing.T) {
	dir := t.TempDir()
	w := NewDatasetWriter(dir, nil)

	ds := series.Dataset{
		{Period: "2024-01", Value: 97.8},
		{Period: "2024-02", Value: 1234.56},
	}
	require.NoError(t, w.Write("50902", ds))

	// The JSON file is in the flat layout the card decoder accepts.
	payload, err := os.ReadFile(w.JSONPath("50902"))
	require.NoError(t, err)

	decoded, err := series.Decode(payload)
	require.NoError(t, err)
	assert.Equal(t, ds, decoded)

	csvData, err := os.ReadFile(w.CSVPath("50902"))
	require.NoError(t, err)
	assert.Equal(t, "period,value\n2024-01,97.8\n2024-02,1234.56\n", string(csvData))
}

func TestWriteEmptyDataset(t *testing.T) {
	w := NewDatasetWriter(t.TempDir(), nil)
	require.NoError(t, w.Write("123", nil))

	payload, err := os.ReadFile(w.JSONPath("123"))
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(payload))
}

func TestWriteIdempotent(t *testing.T) {
	w := NewDatasetWriter(t.TempDir(), nil)
	ds := series.Dataset{{Period: "2024-01", Value: 1}}

	require.NoError(t, w.Write("1", ds))
	first, err := os.ReadFile(w.JSONPath("1"))
	require.NoError(t, err)

	require.NoError(t, w.Write("1", ds))
	second, err := os.ReadFile(w.JSONPath("1"))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
