package graph

import (
	"bytes"
	"encoding/json"
	"fmt"

	"netviz/core/utils"
)

// Attribute keys shared with the browser-side renderer.
const (
	AttrFrom  = "from"
	AttrTo    = "to"
	AttrLabel = "label"
	AttrGroup = "group"
	AttrTitle = "title"
)

// Attributes is the unordered property map of an element.
type Attributes map[string]any

// Clone returns a deep copy of the attributes.
func (a Attributes) Clone() Attributes {
	if a == nil {
		return nil
	}
	out := make(Attributes, len(a))
	for k, v := range a {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, inner := range t {
			m[k] = cloneValue(inner)
		}
		return m
	case Attributes:
		return t.Clone()
	case []any:
		s := make([]any, len(t))
		for i, inner := range t {
			s[i] = cloneValue(inner)
		}
		return s
	default:
		return v
	}
}

// Element is a node or an edge.
type Element struct {
	ID    string
	Attrs Attributes
}

// NewElement builds an element from an id and attribute pairs.
func NewElement(id string, attrs Attributes) Element {
	if attrs == nil {
		attrs = Attributes{}
	}
	return Element{ID: id, Attrs: attrs}
}

// NewEdge builds an edge element between two node ids.
func NewEdge(id, from, to string, attrs Attributes) Element {
	e := NewElement(id, attrs.Clone())
	e.Attrs[AttrFrom] = from
	e.Attrs[AttrTo] = to
	return e
}

// Clone returns a deep copy of the element.
func (e Element) Clone() Element {
	return Element{ID: e.ID, Attrs: e.Attrs.Clone()}
}

// Label returns the "label" attribute as a string, or the id when absent.
func (e Element) Label() string {
	if v, ok := e.Attrs[AttrLabel]; ok && v != nil {
		return fmt.Sprint(v)
	}
	return e.ID
}

// Source returns the normalized "from" endpoint of an edge.
func (e Element) Source() string {
	return normalizeID(e.Attrs[AttrFrom])
}

// Target returns the normalized "to" endpoint of an edge.
func (e Element) Target() string {
	return normalizeID(e.Attrs[AttrTo])
}

// MarshalJSON writes the element as a flat object with the id alongside the attributes.
func (e Element) MarshalJSON() ([]byte, error) {
	flat := make(map[string]any, len(e.Attrs)+1)
	for k, v := range e.Attrs {
		flat[k] = v
	}
	flat["id"] = e.ID
	return json.Marshal(flat)
}

// UnmarshalJSON reads a flat object. A missing id leaves ID empty. Numbers
// are kept as json.Number so integer ids and values keep full precision.
func (e *Element) UnmarshalJSON(data []byte) error {
	var flat map[string]any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&flat); err != nil {
		return err
	}
	if flat == nil {
		return fmt.Errorf("element must be a JSON object")
	}
	e.ID = normalizeID(flat["id"])
	delete(flat, "id")
	e.Attrs = Attributes(flat)
	return nil
}

// normalizeID renders an id value (string or number) in canonical string form.
func normalizeID(v any) string {
	return utils.ToString(v)
}
