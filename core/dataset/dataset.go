package dataset

import (
	"errors"
	"fmt"

	"netviz/core/graph"

	"github.com/google/uuid"
)

var (
	// ErrExists is returned when adding an id that is already live.
	ErrExists = errors.New("element already exists")
	// ErrNotFound is returned when removing or updating an id that is not live.
	ErrNotFound = errors.New("element not found")
)

// Op is the kind of mutation carried by an Event.
type Op string

const (
	OpAdd    Op = "add"
	OpRemove Op = "remove"
	OpUpdate Op = "update"
)

// Event describes one committed operation.
type Event struct {
	Op   Op         `json:"op"`
	Kind graph.Kind `json:"kind"`
	IDs  []string   `json:"ids"`
	// Items holds the element values for add and update events.
	Items []graph.Element `json:"items,omitempty"`
}

// item is the live record behind an id. Its address and liveID stay fixed
// across updates.
type item struct {
	liveID string
	elem   graph.Element
}

// DataSet is the live collection of one element kind. It is not safe for use
// outside the owning Store's lock.
type DataSet struct {
	kind  graph.Kind
	order []string
	items map[string]*item
}

func newDataSet(kind graph.Kind) *DataSet {
	return &DataSet{kind: kind, items: make(map[string]*item)}
}

func (d *DataSet) add(elems []graph.Element) error {
	seen := make(map[string]struct{}, len(elems))
	for _, e := range elems {
		if _, ok := d.items[e.ID]; ok {
			return fmt.Errorf("%w: %s %q", ErrExists, d.kind, e.ID)
		}
		if _, ok := seen[e.ID]; ok {
			return fmt.Errorf("%w: %s %q added twice", ErrExists, d.kind, e.ID)
		}
		seen[e.ID] = struct{}{}
	}
	for _, e := range elems {
		d.items[e.ID] = &item{liveID: uuid.NewString(), elem: e.Clone()}
		d.order = append(d.order, e.ID)
	}
	return nil
}

func (d *DataSet) remove(ids []string) error {
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := d.items[id]; !ok {
			return fmt.Errorf("%w: %s %q", ErrNotFound, d.kind, id)
		}
		drop[id] = struct{}{}
	}
	kept := make([]string, 0, len(d.order))
	for _, id := range d.order {
		if _, gone := drop[id]; gone {
			delete(d.items, id)
			continue
		}
		kept = append(kept, id)
	}
	d.order = kept
	return nil
}

// update replaces attributes in place and returns the previous values for undo.
func (d *DataSet) update(elems []graph.Element) ([]undoUpdate, error) {
	for _, e := range elems {
		if _, ok := d.items[e.ID]; !ok {
			return nil, fmt.Errorf("%w: %s %q", ErrNotFound, d.kind, e.ID)
		}
	}
	undo := make([]undoUpdate, 0, len(elems))
	for _, e := range elems {
		it := d.items[e.ID]
		undo = append(undo, undoUpdate{it: it, prev: it.elem})
		it.elem = e.Clone()
	}
	return undo, nil
}

func (d *DataSet) has(id string) bool {
	_, ok := d.items[id]
	return ok
}

func (d *DataSet) get(id string) (graph.Element, bool) {
	it, ok := d.items[id]
	if !ok {
		return graph.Element{}, false
	}
	return it.elem.Clone(), true
}

func (d *DataSet) liveID(id string) (string, bool) {
	it, ok := d.items[id]
	if !ok {
		return "", false
	}
	return it.liveID, true
}

func (d *DataSet) elements() []graph.Element {
	out := make([]graph.Element, 0, len(d.order))
	for _, id := range d.order {
		out = append(out, d.items[id].elem.Clone())
	}
	return out
}

func (d *DataSet) collection() *graph.Collection {
	return graph.NewCollection(d.kind, d.elements()...)
}

// checkpoint captures order and membership; item contents are restored
// separately through undoUpdate records.
type checkpoint struct {
	order []string
	items map[string]*item
}

func (d *DataSet) checkpoint() checkpoint {
	cp := checkpoint{
		order: append([]string(nil), d.order...),
		items: make(map[string]*item, len(d.items)),
	}
	for id, it := range d.items {
		cp.items[id] = it
	}
	return cp
}

func (d *DataSet) restore(cp checkpoint) {
	d.order = cp.order
	d.items = cp.items
}

type undoUpdate struct {
	it   *item
	prev graph.Element
}
