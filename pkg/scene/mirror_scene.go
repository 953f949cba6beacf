package scene

import (
	"github.com/df07/go-bounce-raytracer/pkg/core"
	"github.com/df07/go-bounce-raytracer/pkg/geometry"
)

// NewMirrorScene creates two large spheres facing each other with the camera
// between them, so most rays bounce until the budget runs out.
func NewMirrorScene() *Scene {
	s := New(core.NewColor(0.05, 0.05, 0.1))

	s.Camera = geometry.NewPinholeCamera(geometry.CameraConfig{
		Center: core.NewVec3(0, 0, 0),
		LookAt: core.NewVec3(0, 0, -1),
		Up:     core.NewVec3(0, 1, 0),
		VFov:   70,
	})
	s.SamplingConfig = SamplingConfig{
		Width:      400,
		Height:     400,
		MaxBounces: 25,
	}

	s.AddAmbientLight(core.Gray(0.15))
	s.AddDirectionalLight(core.NewVec3(0, -1, -0.3), core.NewColor(1.0, 0.95, 0.85))

	s.Add(geometry.NewSphere(core.NewVec3(0, 0, -6), 4, core.NewColor(0.9, 0.3, 0.25)))
	s.Add(geometry.NewSphere(core.NewVec3(0, 0, 6), 4, core.NewColor(0.25, 0.4, 0.9)))
	s.Add(geometry.NewSphere(core.NewVec3(1.2, -0.8, -1.5), 0.4, core.NewColor(0.9, 0.85, 0.3)))

	return s
}

// NewEmptyScene creates a scene without objects; every pixel is background
func NewEmptyScene() *Scene {
	s := New(core.NewColor(0.5, 0.7, 1.0))
	s.Camera = geometry.NewPinholeCamera(geometry.CameraConfig{
		Center: core.NewVec3(0, 0, 0),
		LookAt: core.NewVec3(0, 0, -1),
		Up:     core.NewVec3(0, 1, 0),
		VFov:   45,
	})
	s.SamplingConfig = SamplingConfig{
		Width:      200,
		Height:     200,
		MaxBounces: 10,
	}
	return s
}
