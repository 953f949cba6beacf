package geometry

import "github.com/df07/go-bounce-raytracer/pkg/core"

// Object is anything the scene can intersect and shade
type Object interface {
	// Hit returns the nearest intersection whose distance lies in [tMin, tMax]
	Hit(ray core.Ray, tMin, tMax float64) (*Hit, bool)
	// Color returns the base material color
	Color() core.Color
}
