// Package utils holds small value-conversion helpers shared by the graph model
// and the row transformation. Values arrive from JSON (float64), SQL drivers
// (int64, []byte) and Go callers (int), and these helpers give them one
// canonical form.
package utils
