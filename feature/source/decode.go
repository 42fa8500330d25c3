package source

import (
	"encoding/json"
	"errors"
	"fmt"

	"netviz/core/graph"
	"netviz/core/transform"
)

var (
	// ErrUnknownQuery is returned for a query name that is not configured.
	ErrUnknownQuery = errors.New("unknown query")
	// ErrNotConfigured is returned when a source is disabled.
	ErrNotConfigured = errors.New("source not configured")
)

// Submitter accepts snapshots for asynchronous reconciliation.
type Submitter interface {
	Submit(snap graph.Snapshot) (coalesced bool, err error)
}

// Decode parses a snapshot or SPARQL results document.
func Decode(data []byte) (graph.Snapshot, error) {
	var shape struct {
		Head    json.RawMessage `json:"head"`
		Results json.RawMessage `json:"results"`
	}
	if err := json.Unmarshal(data, &shape); err != nil {
		return graph.Snapshot{}, fmt.Errorf("decode document: %w", err)
	}
	if shape.Head != nil && shape.Results != nil {
		return transform.DecodeResults(data)
	}
	var snap graph.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return graph.Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return snap, nil
}
