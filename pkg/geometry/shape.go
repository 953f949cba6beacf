package geometry

import "github.com/df07/go-bounce-raytracer/pkg/core"

// ObjectID identifies an object by its position in the scene.
// IDs are assigned at insertion time and never reused, so two objects with
// identical fields still have distinct identities.
type ObjectID int

// NoObject is the ObjectID used when nothing should be excluded
const NoObject ObjectID = -1

// Hit contains information about a ray-object intersection.
// A Hit is only valid for the bounce that produced it.
type Hit struct {
	Point    core.Vec3 // Point of intersection
	Normal   core.Vec3 // Unit surface normal, pointing away from the object
	T        float64   // Distance along the normalized ray direction
	Object   Object    // Object that was struck
	ObjectID ObjectID  // Scene identity of Object, NoObject until the scene assigns it
}

// Reflect returns the mirror direction of incoming about the surface normal:
// incoming - 2*dot(incoming, normal)*normal
func (h *Hit) Reflect(incoming core.Vec3) core.Vec3 {
	return incoming.Subtract(h.Normal.Multiply(2 * incoming.Dot(h.Normal)))
}
