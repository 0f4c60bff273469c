// Package loader provides the feature loading system of the status API.
//
// Each feature implements the Feature interface, which names it, tells
// whether it is enabled and registers its routes.
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// The Manager holds the registry. Register adds a feature and LoadAll loads
// the enabled ones in registration order.
package loader
