package reconcile

import (
	"fmt"

	"netviz/core/graph"
)

// Diff partitions the ids of two collections into removed, added, changed
// and unchanged. It runs in time linear in the combined collection sizes.
//
// A collection that repeats an id is rejected with ErrInvalidModel rather
// than guessing which instance wins.
func Diff(prior, next *graph.Collection) (DiffResult, error) {
	kind, err := diffKind(prior, next)
	if err != nil {
		return DiffResult{}, err
	}
	if err := validate("prior", kind, prior); err != nil {
		return DiffResult{}, err
	}
	if err := validate("next", kind, next); err != nil {
		return DiffResult{}, err
	}

	result := DiffResult{
		Kind:      kind,
		Removed:   []string{},
		Added:     []graph.Element{},
		Changed:   []graph.Element{},
		Unchanged: []string{},
	}

	for _, id := range prior.IDs() {
		if !next.Has(id) {
			result.Removed = append(result.Removed, id)
		}
	}

	for _, elem := range next.Elements() {
		old, existed := prior.Get(elem.ID)
		switch {
		case !existed:
			result.Added = append(result.Added, elem)
		case !graph.Equal(old, elem):
			result.Changed = append(result.Changed, elem)
		default:
			result.Unchanged = append(result.Unchanged, elem.ID)
		}
	}

	return result, nil
}

// DiffSnapshots diffs the node collections, then the edge collections.
func DiffSnapshots(prior, next graph.Snapshot) (nodes, edges DiffResult, err error) {
	nodes, err = Diff(orEmpty(prior.Nodes, graph.KindNode), orEmpty(next.Nodes, graph.KindNode))
	if err != nil {
		return DiffResult{}, DiffResult{}, err
	}
	edges, err = Diff(orEmpty(prior.Edges, graph.KindEdge), orEmpty(next.Edges, graph.KindEdge))
	if err != nil {
		return DiffResult{}, DiffResult{}, err
	}
	return nodes, edges, nil
}

func diffKind(prior, next *graph.Collection) (graph.Kind, error) {
	pk, nk := prior.Kind(), next.Kind()
	switch {
	case pk == "":
		return nk, nil
	case nk == "" || pk == nk:
		return pk, nil
	}
	return "", fmt.Errorf("%w: cannot diff %s collection against %s collection", ErrInvalidModel, pk, nk)
}

func validate(side string, kind graph.Kind, c *graph.Collection) error {
	if dups := c.Duplicates(); len(dups) > 0 {
		return fmt.Errorf("%w: %s %s collection repeats id %q", ErrInvalidModel, side, kind, dups[0])
	}
	return nil
}

func orEmpty(c *graph.Collection, kind graph.Kind) *graph.Collection {
	if c == nil {
		return graph.NewCollection(kind)
	}
	return c
}
