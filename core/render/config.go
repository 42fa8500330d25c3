package render

// Config is the render configuration a host applies: display options and
// the event bindings.
type Config struct {
	Options  Options
	Bindings Bindings
}

// Defaults holds the render settings loaded at startup.
type Defaults struct {
	// Solver is the physics solver (barnesHut, forceAtlas2Based, repulsion, hierarchicalRepulsion).
	Solver string `mapstructure:"solver" default:"barnesHut"`
	// GravitationalConstant is the solver's gravity; negative values repel.
	GravitationalConstant float64 `mapstructure:"gravitational_constant" default:"-10000"`
	// Physics enables the force simulation.
	Physics bool `mapstructure:"physics" default:"true"`
	// Hover enables hover events.
	Hover bool `mapstructure:"hover" default:"true"`
	// Width is the canvas width (CSS).
	Width string `mapstructure:"width" default:"100%"`
	// Height is the canvas height (CSS).
	Height string `mapstructure:"height" default:"600px"`
}

// Options converts the startup settings into engine options on top of DefaultOptions.
func (d Defaults) Options() Options {
	opts := DefaultOptions()
	if d.Solver != "" {
		opts.Physics.Solver = d.Solver
	}
	if d.GravitationalConstant != 0 {
		opts.Physics.GravitationalConstant = d.GravitationalConstant
	}
	opts.Physics.Enabled = d.Physics
	opts.Interaction.Hover = d.Hover
	if d.Width != "" {
		opts.Width = d.Width
	}
	if d.Height != "" {
		opts.Height = d.Height
	}
	return opts
}
