package scene

import (
	"math"

	"github.com/df07/go-bounce-raytracer/pkg/core"
	"github.com/df07/go-bounce-raytracer/pkg/geometry"
)

// DirectionalLight lights every surface from a single direction.
// Direction is the unit vector the light travels along.
type DirectionalLight struct {
	Direction core.Vec3
	Color     core.Color
}

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	Width      int // Image width
	Height     int // Image height
	MaxBounces int // Maximum number of hit queries per pixel
}

// Scene contains all the elements needed for rendering.
// A scene is read-only once rendering starts and may be shared by any number
// of concurrent workers.
type Scene struct {
	Camera            geometry.Camera
	Objects           []geometry.Object // Objects in insertion order, indexed by ObjectID
	BackgroundColor   core.Color
	AmbientLights     []core.Color
	DirectionalLights []DirectionalLight
	SamplingConfig    SamplingConfig

	// AcceptBehindOrigin keeps intersections behind the ray origin.
	// Off by default.
	AcceptBehindOrigin bool
}

// New creates an empty scene with the given background color
func New(background core.Color) *Scene {
	return &Scene{
		Objects:         make([]geometry.Object, 0),
		BackgroundColor: background,
	}
}

// Add appends an object and returns its identity
func (s *Scene) Add(object geometry.Object) geometry.ObjectID {
	s.Objects = append(s.Objects, object)
	return geometry.ObjectID(len(s.Objects) - 1)
}

// AddAmbientLight adds a light applied regardless of surface orientation
func (s *Scene) AddAmbientLight(color core.Color) {
	s.AmbientLights = append(s.AmbientLights, color)
}

// AddDirectionalLight adds a light travelling along direction
func (s *Scene) AddDirectionalLight(direction core.Vec3, color core.Color) {
	s.DirectionalLights = append(s.DirectionalLights, DirectionalLight{
		Direction: direction.Normalize(),
		Color:     color,
	})
}

// CalculateHit returns the nearest intersection along ray, skipping the
// object identified by exclude. Pass geometry.NoObject to test every object.
// Ties keep the object that was added first.
func (s *Scene) CalculateHit(ray core.Ray, exclude geometry.ObjectID) (*geometry.Hit, bool) {
	tMin := 0.0
	if s.AcceptBehindOrigin {
		tMin = math.Inf(-1)
	}

	var nearest *geometry.Hit
	nearestDistSq := math.Inf(1)

	for i, object := range s.Objects {
		id := geometry.ObjectID(i)
		if id == exclude {
			continue
		}

		hit, isHit := object.Hit(ray, tMin, math.Inf(1))
		if !isHit {
			continue
		}

		distSq := hit.Point.Subtract(ray.Origin).LengthSquared()
		if nearest == nil || distSq < nearestDistSq {
			hit.ObjectID = id
			nearest = hit
			nearestDistSq = distSq
		}
	}

	return nearest, nearest != nil
}

// Background returns the color of rays that escape the scene
func (s *Scene) Background() core.Color {
	return s.BackgroundColor
}

// Lights returns the ambient and directional lights
func (s *Scene) Lights() ([]core.Color, []DirectionalLight) {
	return s.AmbientLights, s.DirectionalLights
}

// GetPrimitiveCount returns the total number of objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	return len(s.Objects)
}
