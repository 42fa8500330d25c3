package live

import (
	"netviz/core/dataset"
	"netviz/core/graph"
	"netviz/core/render"
)

// Frame types sent to the browser.
const (
	FrameReset    = "reset"
	FrameChange   = "change"
	FrameOptions  = "options"
	FrameBindings = "bindings"
)

// Frame is one server to browser message.
type Frame struct {
	Type    string             `json:"type"`
	Change  *dataset.Event     `json:"change,omitempty"`
	Options *render.Options    `json:"options,omitempty"`
	Events  []render.EventName `json:"events,omitempty"`
	Nodes   []graph.Element    `json:"nodes,omitempty"`
	Edges   []graph.Element    `json:"edges,omitempty"`
}
