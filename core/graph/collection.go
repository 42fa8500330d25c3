package graph

import (
	"errors"
	"fmt"
)

// ErrDuplicateID is returned when an element id is added to a collection twice.
var ErrDuplicateID = errors.New("duplicate element id")

// Kind tells nodes and edges apart.
type Kind string

const (
	KindNode Kind = "node"
	KindEdge Kind = "edge"
)

// Collection is an insertion-ordered, id-keyed set of elements of one kind.
//
// A collection built by NewCollection or decoded from JSON may record
// duplicate ids instead of failing; the first occurrence is kept and the
// duplicates are reported by Duplicates so the caller that owns the
// validation policy can reject the collection.
type Collection struct {
	kind  Kind
	order []string
	index map[string]Element
	dups  []string
}

// NewCollection builds a collection, recording duplicate ids rather than failing.
func NewCollection(kind Kind, elems ...Element) *Collection {
	c := &Collection{
		kind:  kind,
		order: make([]string, 0, len(elems)),
		index: make(map[string]Element, len(elems)),
	}
	for _, e := range elems {
		if _, exists := c.index[e.ID]; exists {
			c.dups = append(c.dups, e.ID)
			continue
		}
		c.order = append(c.order, e.ID)
		c.index[e.ID] = e
	}
	return c
}

// Add appends an element, failing on an id already present.
func (c *Collection) Add(e Element) error {
	if c.index == nil {
		c.index = make(map[string]Element)
	}
	if _, exists := c.index[e.ID]; exists {
		return fmt.Errorf("%w: %s %q", ErrDuplicateID, c.kind, e.ID)
	}
	c.order = append(c.order, e.ID)
	c.index[e.ID] = e
	return nil
}

// Kind returns the element kind held by the collection.
func (c *Collection) Kind() Kind {
	if c == nil {
		return ""
	}
	return c.kind
}

// Len returns the number of distinct ids.
func (c *Collection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.order)
}

// Get looks an element up by id.
func (c *Collection) Get(id string) (Element, bool) {
	if c == nil {
		return Element{}, false
	}
	e, ok := c.index[id]
	return e, ok
}

// Has reports whether the id is present.
func (c *Collection) Has(id string) bool {
	_, ok := c.Get(id)
	return ok
}

// IDs returns the ids in insertion order.
func (c *Collection) IDs() []string {
	if c == nil {
		return nil
	}
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Elements returns the elements in insertion order.
func (c *Collection) Elements() []Element {
	if c == nil {
		return nil
	}
	out := make([]Element, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.index[id])
	}
	return out
}

// Duplicates returns the ids that were seen more than once during construction.
func (c *Collection) Duplicates() []string {
	if c == nil {
		return nil
	}
	return c.dups
}

// Clone returns a deep copy.
func (c *Collection) Clone() *Collection {
	if c == nil {
		return nil
	}
	out := &Collection{
		kind:  c.kind,
		order: make([]string, len(c.order)),
		index: make(map[string]Element, len(c.index)),
		dups:  append([]string(nil), c.dups...),
	}
	copy(out.order, c.order)
	for id, e := range c.index {
		out.index[id] = e.Clone()
	}
	return out
}
