package render

import (
	"errors"

	"netviz/core/dataset"
)

var (
	// ErrConfigurationRejected reports options or bindings the engine refused.
	ErrConfigurationRejected = errors.New("configuration rejected")
	// ErrDisposed reports a call on a disposed host.
	ErrDisposed = errors.New("host disposed")
)

// Engine draws the contents of a live store.
type Engine interface {
	// Attach hands the engine the store it renders. The engine subscribes
	// to store events to redraw incrementally.
	Attach(store *dataset.Store) error
	// SetOptions replaces the display options wholesale.
	SetOptions(opts Options) error
	// On binds handler to the event.
	On(name EventName, handler *Handler) error
	// Off unbinds handler from the event.
	Off(name EventName, handler *Handler) error
	// Close releases the engine.
	Close() error
}
