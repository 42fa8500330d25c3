package reconcile

import (
	"fmt"

	"netviz/core/dataset"
	"netviz/core/graph"
)

// Plan diffs two snapshots and returns the ordered actions that converge the
// prior generation onto the next one. It does NOT touch any store; use
// ApplyPlan for that.
func Plan(prior, next graph.Snapshot) (*ReconcilePlan, error) {
	nodes, edges, err := DiffSnapshots(prior, next)
	if err != nil {
		return nil, err
	}

	plan := &ReconcilePlan{
		Nodes:   nodes,
		Edges:   edges,
		Actions: buildActions(nodes, edges),
	}
	plan.Summary = PlanSummary{
		PriorNodes: prior.Nodes.Len(),
		PriorEdges: prior.Edges.Len(),
		NextNodes:  next.Nodes.Len(),
		NextEdges:  next.Edges.Len(),
		Removals:   len(nodes.Removed) + len(edges.Removed),
		Additions:  len(nodes.Added) + len(edges.Added),
		Updates:    len(nodes.Changed) + len(edges.Changed),
		Unchanged:  len(nodes.Unchanged) + len(edges.Unchanged),
	}
	return plan, nil
}

// buildActions orders removals before additions before updates. Edges are
// removed before the nodes they may reference and added after them.
func buildActions(nodes, edges DiffResult) []Action {
	var actions []Action

	if len(edges.Removed) > 0 {
		actions = append(actions, Action{Type: ActionRemove, Kind: graph.KindEdge, Keys: edges.Removed})
	}
	if len(nodes.Removed) > 0 {
		actions = append(actions, Action{Type: ActionRemove, Kind: graph.KindNode, Keys: nodes.Removed})
	}
	if len(nodes.Added) > 0 {
		actions = append(actions, Action{Type: ActionAdd, Kind: graph.KindNode, Keys: keysOf(nodes.Added), Elements: nodes.Added})
	}
	if len(edges.Added) > 0 {
		actions = append(actions, Action{Type: ActionAdd, Kind: graph.KindEdge, Keys: keysOf(edges.Added), Elements: edges.Added})
	}
	if len(nodes.Changed) > 0 {
		actions = append(actions, Action{Type: ActionUpdate, Kind: graph.KindNode, Keys: keysOf(nodes.Changed), Elements: nodes.Changed})
	}
	if len(edges.Changed) > 0 {
		actions = append(actions, Action{Type: ActionUpdate, Kind: graph.KindEdge, Keys: keysOf(edges.Changed), Elements: edges.Changed})
	}

	return actions
}

// ApplyPlan executes the actions of a plan against the store in one batch.
// Either every action is applied or none is.
func ApplyPlan(store *dataset.Store, plan *ReconcilePlan) (AppliedOps, error) {
	var ops AppliedOps
	if plan == nil || len(plan.Actions) == 0 {
		return ops, nil
	}

	err := store.Batch(func(tx *dataset.Tx) error {
		for _, action := range plan.Actions {
			var err error
			switch action.Type {
			case ActionRemove:
				err = tx.Remove(action.Kind, action.Keys...)
			case ActionAdd:
				err = tx.Add(action.Kind, action.Elements...)
			case ActionUpdate:
				err = tx.Update(action.Kind, action.Elements...)
			default:
				err = fmt.Errorf("unknown action type %q", action.Type)
			}
			if err != nil {
				return fmt.Errorf("%w: %s %s: %w", ErrStoreOutOfSync, action.Type, action.Kind, err)
			}
			ops.count(action)
		}
		return nil
	})
	if err != nil {
		return AppliedOps{}, err
	}

	return ops, nil
}

// Reconcile plans and applies in one step. On error the store is unchanged.
func Reconcile(store *dataset.Store, prior, next graph.Snapshot) (AppliedOps, error) {
	plan, err := Plan(prior, next)
	if err != nil {
		return AppliedOps{}, err
	}
	return ApplyPlan(store, plan)
}

func (o *AppliedOps) count(a Action) {
	n := len(a.Keys)
	switch {
	case a.Kind == graph.KindNode && a.Type == ActionRemove:
		o.NodesRemoved += n
	case a.Kind == graph.KindNode && a.Type == ActionAdd:
		o.NodesAdded += n
	case a.Kind == graph.KindNode && a.Type == ActionUpdate:
		o.NodesChanged += n
	case a.Kind == graph.KindEdge && a.Type == ActionRemove:
		o.EdgesRemoved += n
	case a.Kind == graph.KindEdge && a.Type == ActionAdd:
		o.EdgesAdded += n
	case a.Kind == graph.KindEdge && a.Type == ActionUpdate:
		o.EdgesChanged += n
	}
}

func keysOf(elems []graph.Element) []string {
	keys := make([]string, len(elems))
	for i, e := range elems {
		keys[i] = e.ID
	}
	return keys
}
