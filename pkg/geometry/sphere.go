package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-bounce-raytracer/pkg/core"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center core.Vec3
	Radius float64
	Albedo core.Color
}

// NewSphere creates a new sphere. Panics if radius is not positive.
func NewSphere(center core.Vec3, radius float64, color core.Color) *Sphere {
	if !(radius > 0) {
		panic(fmt.Sprintf("geometry: sphere radius must be positive, got %v", radius))
	}
	return &Sphere{
		Center: center,
		Radius: radius,
		Albedo: color,
	}
}

// Color returns the sphere's base color
func (s *Sphere) Color() core.Color {
	return s.Albedo
}

// Hit tests if a ray intersects with the sphere.
// Distances are measured along the normalized ray direction. Passing
// math.Inf(-1) as tMin accepts intersections behind the ray origin.
func (s *Sphere) Hit(ray core.Ray, tMin, tMax float64) (*Hit, bool) {
	direction := ray.Direction.Normalize()

	// Vector from ray origin to sphere center, projected onto the ray
	oc := s.Center.Subtract(ray.Origin)
	v := oc.Dot(direction)

	// Squared half-chord length
	disc := s.Radius*s.Radius - (oc.Dot(oc) - v*v)
	if disc < 0 {
		return nil, false
	}

	d := math.Sqrt(disc)

	// Only the near root counts. From inside the sphere it lies behind the
	// origin and is rejected unless tMin allows it.
	root := v - d
	if root < tMin || root > tMax {
		return nil, false
	}

	point := ray.Origin.Add(direction.Multiply(root))
	return &Hit{
		Point:    point,
		Normal:   point.Subtract(s.Center).Normalize(),
		T:        root,
		Object:   s,
		ObjectID: NoObject,
	}, true
}
