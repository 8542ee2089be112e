// Package series normalizes INE time-series data into canonical monthly
// observations and derives the headline figures shown on the site.
//
// # Architecture
//
// The package is organized around three small steps:
//
// 1. Period/value normalization: heterogeneous period encodings (epoch
// milliseconds, "2024M01", "01/2024", "2024-01-15", free-form dates) and
// value encodings (numbers, European "1.234,56" strings, NaN markers) are
// mapped to "YYYY-MM" strings and float64 values.
//
// 2. Shape detection: the per-table JSON files appear in several layouts
// depending on how they were produced (flat record lists, a "Data" wrapper
// object, or a list of series objects). Decode recognizes them all and
// returns one ordered Dataset.
//
// 3. Delta computation: the percentage change between the two most recent
// observations, or an explicit "no prior data" result.
//
// # Error Handling
//
// Individual records that cannot be normalized are dropped silently; only
// a whole payload with an unrecognized layout is reported as an error so
// the caller can warn and skip the table.
package series
