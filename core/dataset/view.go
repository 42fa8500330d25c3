package dataset

import "netviz/core/graph"

// View is a read-only handle to one DataSet of a Store.
type View interface {
	Kind() graph.Kind
	Len() int
	IDs() []string
	Get(id string) (graph.Element, bool)
	Elements() []graph.Element
	// LiveID returns the identity assigned when the element entered the store.
	LiveID(id string) (string, bool)
}

type view struct {
	store *Store
	kind  graph.Kind
}

func (v view) ds() *DataSet {
	if v.kind == graph.KindEdge {
		return v.store.edges
	}
	return v.store.nodes
}

func (v view) Kind() graph.Kind { return v.kind }

func (v view) Len() int {
	v.store.mu.RLock()
	defer v.store.mu.RUnlock()
	return len(v.ds().order)
}

func (v view) IDs() []string {
	v.store.mu.RLock()
	defer v.store.mu.RUnlock()
	return append([]string(nil), v.ds().order...)
}

func (v view) Get(id string) (graph.Element, bool) {
	v.store.mu.RLock()
	defer v.store.mu.RUnlock()
	return v.ds().get(id)
}

func (v view) Elements() []graph.Element {
	v.store.mu.RLock()
	defer v.store.mu.RUnlock()
	return v.ds().elements()
}

func (v view) LiveID(id string) (string, bool) {
	v.store.mu.RLock()
	defer v.store.mu.RUnlock()
	return v.ds().liveID(id)
}
