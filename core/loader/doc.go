// Package loader registers API features and loads the enabled ones.
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// The network API and the metrics endpoint are each a Feature, so a
// deployment can switch them on independently.
package loader
