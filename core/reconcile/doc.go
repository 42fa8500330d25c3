// Package reconcile converges a live node/edge store onto a new snapshot with
// the minimum number of operations.
//
// The reconcile system has three parts:
//
// 1. Diff: an id-indexed, linear three-way partition of two collections into
//    removed, added and changed elements. Everything else is unchanged and
//    produces no operation, so reconciling a snapshot against itself is a
//    no-op.
//
// 2. Plan: diffs nodes, then edges, and orders the resulting actions.
//    Removals come first (edges before nodes), then additions (nodes before
//    edges), then updates. Planning never touches the store.
//
// 3. Apply: runs a plan inside a single dataset batch. Updates mutate the
//    live element in place so renderer state keyed by its live identity
//    survives. If anything fails the batch is rolled back and the store stays
//    at its previous generation.
//
// # Usage
//
//	ops, err := reconcile.Reconcile(store, store.Snapshot(), next)
//	if errors.Is(err, reconcile.ErrInvalidModel) {
//	    // the snapshot repeats an id; nothing was applied
//	}
//
// Both collections of a snapshot are validated before anything is applied:
// a duplicate id in either one rejects the whole snapshot.
package reconcile
