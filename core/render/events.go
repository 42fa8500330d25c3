package render

import (
	"fmt"
	"sort"
)

// EventName identifies an interaction event raised by the rendering engine.
type EventName string

const (
	EventClick        EventName = "click"
	EventDoubleClick  EventName = "doubleClick"
	EventContext      EventName = "oncontext"
	EventHold         EventName = "hold"
	EventRelease      EventName = "release"
	EventSelect       EventName = "select"
	EventSelectNode   EventName = "selectNode"
	EventSelectEdge   EventName = "selectEdge"
	EventDeselectNode EventName = "deselectNode"
	EventDeselectEdge EventName = "deselectEdge"
	EventDragStart    EventName = "dragStart"
	EventDragging     EventName = "dragging"
	EventDragEnd      EventName = "dragEnd"
	EventHoverNode    EventName = "hoverNode"
	EventBlurNode     EventName = "blurNode"
	EventHoverEdge    EventName = "hoverEdge"
	EventBlurEdge     EventName = "blurEdge"
	EventZoom         EventName = "zoom"
	EventStabilized   EventName = "stabilized"
)

var knownEvents = map[EventName]struct{}{
	EventClick: {}, EventDoubleClick: {}, EventContext: {}, EventHold: {},
	EventRelease: {}, EventSelect: {}, EventSelectNode: {}, EventSelectEdge: {},
	EventDeselectNode: {}, EventDeselectEdge: {}, EventDragStart: {},
	EventDragging: {}, EventDragEnd: {}, EventHoverNode: {}, EventBlurNode: {},
	EventHoverEdge: {}, EventBlurEdge: {}, EventZoom: {}, EventStabilized: {},
}

// Valid reports whether the name is a known engine event.
func (e EventName) Valid() bool {
	_, ok := knownEvents[e]
	return ok
}

// ParseEventName converts a raw name into an EventName.
func ParseEventName(raw string) (EventName, error) {
	name := EventName(raw)
	if !name.Valid() {
		return "", fmt.Errorf("unknown event %q", raw)
	}
	return name, nil
}

// Event is an interaction raised by the engine.
type Event struct {
	Name  EventName      `json:"event"`
	Nodes []string       `json:"nodes,omitempty"`
	Edges []string       `json:"edges,omitempty"`
	Data  map[string]any `json:"data,omitempty"`
}

// Handler receives engine events. Handlers are compared by pointer, so the
// same *Handler bound under the same name across configuration changes is
// left bound.
type Handler struct {
	name string
	fn   func(Event)
}

// NewHandler wraps fn as a bindable handler.
func NewHandler(name string, fn func(Event)) *Handler {
	return &Handler{name: name, fn: fn}
}

// Name returns the handler's descriptive name.
func (h *Handler) Name() string {
	if h == nil {
		return ""
	}
	return h.name
}

// Handle invokes the handler.
func (h *Handler) Handle(ev Event) {
	if h == nil || h.fn == nil {
		return
	}
	h.fn(ev)
}

// Bindings maps event names to their handler.
type Bindings map[EventName]*Handler

// Validate rejects unknown names and nil handlers.
func (b Bindings) Validate() error {
	for name, h := range b {
		if !name.Valid() {
			return fmt.Errorf("unknown event %q", name)
		}
		if h == nil {
			return fmt.Errorf("event %q: nil handler", name)
		}
	}
	return nil
}

// Names returns the bound event names in sorted order.
func (b Bindings) Names() []EventName {
	out := make([]EventName, 0, len(b))
	for name := range b {
		out = append(out, name)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Clone returns a shallow copy; handlers are shared.
func (b Bindings) Clone() Bindings {
	out := make(Bindings, len(b))
	for name, h := range b {
		out[name] = h
	}
	return out
}

// binding is a single (name, handler) pair.
type binding struct {
	name    EventName
	handler *Handler
}

// diffBindings returns the pairs to unbind from prev and to bind from next.
// A name whose handler is unchanged appears in neither list.
func diffBindings(prev, next Bindings) (unbind, bind []binding) {
	for _, name := range prev.Names() {
		if next[name] != prev[name] {
			unbind = append(unbind, binding{name: name, handler: prev[name]})
		}
	}
	for _, name := range next.Names() {
		if prev[name] != next[name] {
			bind = append(bind, binding{name: name, handler: next[name]})
		}
	}
	return unbind, bind
}
