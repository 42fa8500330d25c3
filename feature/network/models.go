package network

import (
	"errors"

	"netviz/core/reconcile"
	"netviz/core/render"
)

// Load sources.
const (
	SourceStorage  = "storage"
	SourceDatabase = "database"
	SourceTable    = "table"
)

// ErrUnknownSource is returned when a load request names no known source.
var ErrUnknownSource = errors.New("unknown source")

// LoadRequest selects a snapshot to load.
type LoadRequest struct {
	// Source is storage, database or table.
	Source string `json:"source"`
	// Object is the storage object key.
	Object string `json:"object,omitempty"`
	// Query is the configured query name.
	Query string `json:"query,omitempty"`
	// Table is the table name.
	Table string `json:"table,omitempty"`
}

// SaveRequest names the storage object for the current snapshot.
type SaveRequest struct {
	Object string `json:"object"`
}

// EventsRequest lists the events to bind.
type EventsRequest struct {
	Events []string `json:"events"`
}

// EventsResponse lists the bound events and recent interactions.
type EventsResponse struct {
	Events []render.EventName `json:"events"`
	Recent []render.Event     `json:"recent"`
}

// ApplyResponse reports a synchronous reconciliation.
type ApplyResponse struct {
	Applied reconcile.AppliedOps `json:"applied"`
	Total   int                  `json:"total"`
}

// QueuedResponse reports an asynchronous submission.
type QueuedResponse struct {
	Queued    bool `json:"queued"`
	Coalesced bool `json:"coalesced"`
}
