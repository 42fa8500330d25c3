package render

import (
	"fmt"
	"strings"
)

// Physics solvers understood by the browser-side network renderer.
const (
	SolverBarnesHut             = "barnesHut"
	SolverForceAtlas2Based      = "forceAtlas2Based"
	SolverRepulsion             = "repulsion"
	SolverHierarchicalRepulsion = "hierarchicalRepulsion"
)

// PhysicsOptions controls the force simulation.
type PhysicsOptions struct {
	Enabled               bool    `json:"enabled"`
	Solver                string  `json:"solver"`
	GravitationalConstant float64 `json:"gravitationalConstant"`
	SpringLength          float64 `json:"springLength"`
	Stabilization         bool    `json:"stabilization"`
}

// InteractionOptions controls user input handling.
type InteractionOptions struct {
	Hover             bool `json:"hover"`
	DragNodes         bool `json:"dragNodes"`
	ZoomView          bool `json:"zoomView"`
	NavigationButtons bool `json:"navigationButtons"`
}

// LayoutOptions controls the initial layout.
type LayoutOptions struct {
	RandomSeed   int    `json:"randomSeed"`
	Hierarchical bool   `json:"hierarchical"`
	Direction    string `json:"direction,omitempty"`
}

// Options is the complete display configuration handed to an engine.
// It is comparable, so unchanged options can be detected with ==.
type Options struct {
	Width       string             `json:"width"`
	Height      string             `json:"height"`
	Physics     PhysicsOptions     `json:"physics"`
	Interaction InteractionOptions `json:"interaction"`
	Layout      LayoutOptions      `json:"layout"`
}

// DefaultOptions returns the options used when none are configured.
func DefaultOptions() Options {
	return Options{
		Width:  "100%",
		Height: "600px",
		Physics: PhysicsOptions{
			Enabled:               true,
			Solver:                SolverBarnesHut,
			GravitationalConstant: -10000,
			SpringLength:          95,
			Stabilization:         true,
		},
		Interaction: InteractionOptions{
			Hover:     true,
			DragNodes: true,
			ZoomView:  true,
		},
	}
}

// Validate checks option values the renderer cannot interpret.
func (o Options) Validate() error {
	if strings.TrimSpace(o.Width) == "" || strings.TrimSpace(o.Height) == "" {
		return fmt.Errorf("width and height are required")
	}
	switch o.Physics.Solver {
	case SolverBarnesHut, SolverForceAtlas2Based, SolverRepulsion, SolverHierarchicalRepulsion:
	default:
		return fmt.Errorf("unknown physics solver %q", o.Physics.Solver)
	}
	if o.Physics.SpringLength < 0 {
		return fmt.Errorf("spring length must not be negative")
	}
	if o.Layout.Hierarchical {
		switch o.Layout.Direction {
		case "UD", "DU", "LR", "RL":
		default:
			return fmt.Errorf("hierarchical layout direction %q must be one of UD, DU, LR, RL", o.Layout.Direction)
		}
	}
	return nil
}
