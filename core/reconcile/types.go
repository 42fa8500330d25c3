package reconcile

import (
	"errors"

	"netviz/core/graph"
)

var (
	// ErrInvalidModel is returned when a collection repeats an element id.
	ErrInvalidModel = errors.New("invalid model")

	// ErrStoreOutOfSync is returned when a plan does not fit the store it is
	// applied to, e.g. it removes an id the store does not hold.
	ErrStoreOutOfSync = errors.New("store out of sync with plan baseline")
)

// DiffResult is the classified comparison of two collections of one kind.
// The four id sets are pairwise disjoint and together cover both inputs.
type DiffResult struct {
	// Kind is the element kind of both collections.
	Kind graph.Kind `json:"kind"`

	// Removed holds ids present only in the prior collection, in prior order.
	Removed []string `json:"removed"`

	// Added holds elements present only in the next collection, in next order.
	Added []graph.Element `json:"added"`

	// Changed holds next-generation values of ids present in both whose
	// attributes differ.
	Changed []graph.Element `json:"changed"`

	// Unchanged holds ids present in both with equal attributes.
	Unchanged []string `json:"unchanged"`
}

// Empty reports whether the diff requires no operation.
func (d DiffResult) Empty() bool {
	return len(d.Removed) == 0 && len(d.Added) == 0 && len(d.Changed) == 0
}

// ActionType represents the type of store mutation.
type ActionType string

const (
	// ActionRemove deletes ids from the store.
	ActionRemove ActionType = "remove"
	// ActionAdd inserts new elements.
	ActionAdd ActionType = "add"
	// ActionUpdate replaces the attributes of live elements in place.
	ActionUpdate ActionType = "update"
)

// Action is one planned store operation covering every id of one kind.
type Action struct {
	// Type specifies the operation.
	Type ActionType `json:"type"`

	// Kind is the collection the operation targets.
	Kind graph.Kind `json:"kind"`

	// Keys lists the affected ids.
	Keys []string `json:"keys"`

	// Elements carries the new values for add and update actions.
	Elements []graph.Element `json:"elements,omitempty"`
}

// ReconcilePlan contains both diffs and the ordered actions derived from them.
type ReconcilePlan struct {
	// Nodes is the node collection diff.
	Nodes DiffResult `json:"nodes"`

	// Edges is the edge collection diff.
	Edges DiffResult `json:"edges"`

	// Actions lists the operations in application order.
	Actions []Action `json:"actions"`

	// Summary provides aggregate counts.
	Summary PlanSummary `json:"summary"`
}

// PlanSummary provides aggregate statistics for a reconcile plan.
type PlanSummary struct {
	// PriorNodes and PriorEdges count the baseline collections.
	PriorNodes int `json:"prior_nodes"`
	PriorEdges int `json:"prior_edges"`

	// NextNodes and NextEdges count the incoming collections.
	NextNodes int `json:"next_nodes"`
	NextEdges int `json:"next_edges"`

	// Removals, Additions and Updates count element operations across both kinds.
	Removals  int `json:"removals"`
	Additions int `json:"additions"`
	Updates   int `json:"updates"`

	// Unchanged counts elements that need no operation.
	Unchanged int `json:"unchanged"`
}

// AppliedOps records how many elements each applied operation touched.
type AppliedOps struct {
	NodesRemoved int `json:"nodes_removed"`
	NodesAdded   int `json:"nodes_added"`
	NodesChanged int `json:"nodes_changed"`
	EdgesRemoved int `json:"edges_removed"`
	EdgesAdded   int `json:"edges_added"`
	EdgesChanged int `json:"edges_changed"`
}

// NodesTouched reports whether any node operation was applied.
func (o AppliedOps) NodesTouched() bool {
	return o.NodesRemoved+o.NodesAdded+o.NodesChanged > 0
}

// EdgesTouched reports whether any edge operation was applied.
func (o AppliedOps) EdgesTouched() bool {
	return o.EdgesRemoved+o.EdgesAdded+o.EdgesChanged > 0
}

// Empty reports whether nothing was applied.
func (o AppliedOps) Empty() bool {
	return !o.NodesTouched() && !o.EdgesTouched()
}

// Total returns the number of element operations.
func (o AppliedOps) Total() int {
	return o.NodesRemoved + o.NodesAdded + o.NodesChanged + o.EdgesRemoved + o.EdgesAdded + o.EdgesChanged
}
