package dataset

import (
	"fmt"
	"sync"

	"netviz/core/graph"
)

// Listener receives committed store events.
type Listener func(Event)

// Store is the live node/edge state of one visualization.
type Store struct {
	mu        sync.RWMutex
	nodes     *DataSet
	edges     *DataSet
	listeners map[int]Listener
	nextSub   int
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		nodes:     newDataSet(graph.KindNode),
		edges:     newDataSet(graph.KindEdge),
		listeners: make(map[int]Listener),
	}
}

// Subscribe registers a listener and returns a function that removes it.
func (s *Store) Subscribe(l Listener) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.listeners[id] = l
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// Tx is the mutation handle passed to a Batch function.
type Tx struct {
	store  *Store
	events []Event
	undo   []undoUpdate
}

func (tx *Tx) set(kind graph.Kind) (*DataSet, error) {
	switch kind {
	case graph.KindNode:
		return tx.store.nodes, nil
	case graph.KindEdge:
		return tx.store.edges, nil
	}
	return nil, fmt.Errorf("unknown element kind %q", kind)
}

// Add inserts new elements. It fails without side effects if any id is live.
func (tx *Tx) Add(kind graph.Kind, elems ...graph.Element) error {
	if len(elems) == 0 {
		return nil
	}
	ds, err := tx.set(kind)
	if err != nil {
		return err
	}
	if err := ds.add(elems); err != nil {
		return err
	}
	tx.events = append(tx.events, Event{Op: OpAdd, Kind: kind, IDs: idsOf(elems), Items: cloneAll(elems)})
	return nil
}

// Remove deletes live elements. It fails without side effects if any id is missing.
func (tx *Tx) Remove(kind graph.Kind, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	ds, err := tx.set(kind)
	if err != nil {
		return err
	}
	if err := ds.remove(ids); err != nil {
		return err
	}
	tx.events = append(tx.events, Event{Op: OpRemove, Kind: kind, IDs: append([]string(nil), ids...)})
	return nil
}

// Update replaces the attributes of live elements in place, keeping their live identity.
func (tx *Tx) Update(kind graph.Kind, elems ...graph.Element) error {
	if len(elems) == 0 {
		return nil
	}
	ds, err := tx.set(kind)
	if err != nil {
		return err
	}
	undo, err := ds.update(elems)
	if err != nil {
		return err
	}
	tx.undo = append(tx.undo, undo...)
	tx.events = append(tx.events, Event{Op: OpUpdate, Kind: kind, IDs: idsOf(elems), Items: cloneAll(elems)})
	return nil
}

// Has reports whether an id is live.
func (tx *Tx) Has(kind graph.Kind, id string) bool {
	ds, err := tx.set(kind)
	return err == nil && ds.has(id)
}

// Batch runs fn with exclusive access to the store. If fn returns an error
// every change made through the Tx is undone and no event is emitted.
func (s *Store) Batch(fn func(tx *Tx) error) error {
	s.mu.Lock()
	nodesCP, edgesCP := s.nodes.checkpoint(), s.edges.checkpoint()
	tx := &Tx{store: s}

	if err := fn(tx); err != nil {
		for i := len(tx.undo) - 1; i >= 0; i-- {
			tx.undo[i].it.elem = tx.undo[i].prev
		}
		s.nodes.restore(nodesCP)
		s.edges.restore(edgesCP)
		s.mu.Unlock()
		return err
	}

	listeners := make([]Listener, 0, len(s.listeners))
	for i := 0; i < s.nextSub; i++ {
		if l, ok := s.listeners[i]; ok {
			listeners = append(listeners, l)
		}
	}
	s.mu.Unlock()

	for _, ev := range tx.events {
		for _, l := range listeners {
			l(ev)
		}
	}
	return nil
}

// Load adds every element of a snapshot to the store in one batch.
func (s *Store) Load(snap graph.Snapshot) error {
	return s.Batch(func(tx *Tx) error {
		if err := tx.Add(graph.KindNode, snap.Nodes.Elements()...); err != nil {
			return err
		}
		return tx.Add(graph.KindEdge, snap.Edges.Elements()...)
	})
}

// Snapshot returns a deep copy of the current contents.
func (s *Store) Snapshot() graph.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return graph.Snapshot{Nodes: s.nodes.collection(), Edges: s.edges.collection()}
}

// Nodes returns a read-only view of the node DataSet.
func (s *Store) Nodes() View {
	return view{store: s, kind: graph.KindNode}
}

// Edges returns a read-only view of the edge DataSet.
func (s *Store) Edges() View {
	return view{store: s, kind: graph.KindEdge}
}

func idsOf(elems []graph.Element) []string {
	ids := make([]string, len(elems))
	for i, e := range elems {
		ids[i] = e.ID
	}
	return ids
}

func cloneAll(elems []graph.Element) []graph.Element {
	out := make([]graph.Element, len(elems))
	for i, e := range elems {
		out[i] = e.Clone()
	}
	return out
}
