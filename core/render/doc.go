// Package render hosts a rendering engine over a live node/edge store.
//
// A Host owns exactly one dataset.Store and one Engine for the lifetime of a
// visualization and mediates three independent lifecycles:
//
//   - Data: OnSnapshot reconciles a new snapshot into the store. The engine
//     observes the resulting store events and redraws incrementally.
//   - Options: OnConfigChange replaces the engine's display options
//     wholesale whenever they differ from the active ones.
//   - Event bindings: OnConfigChange unbinds handlers that left the binding
//     set, then binds handlers that joined it. A handler bound under the
//     same event name before and after is never touched.
//
// OnDispose unbinds every handler and closes the engine. Every transition
// holds the host lock, so the engine never sees two transitions interleave.
//
// # Ordering
//
// Snapshots arriving from concurrent producers go through a Pump, which
// reconciles them one at a time in arrival order and collapses a backlog to
// the latest pending snapshot.
//
// # Observers
//
// Observers are optional callbacks. Each handle observer runs once at
// construction. After that, OnNetwork and OnModelChanged run once per
// reconciliation that applied at least one operation. OnNodes runs only when
// node operations were applied, and OnEdges only for edge operations.
// Observers run on the reconciling goroutine and may use the read-only
// accessors, but must not start another transition.
package render
