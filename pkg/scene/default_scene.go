package scene

import (
	"github.com/df07/go-bounce-raytracer/pkg/core"
	"github.com/df07/go-bounce-raytracer/pkg/geometry"
)

// NewDefaultScene creates three overlapping colored spheres viewed head-on
// by an orthographic camera, lit by a dim ambient light and a white light
// shining along +z.
func NewDefaultScene() *Scene {
	s := New(core.Black())

	// Parallel rays along +x; image x maps to world y and image y to world z
	s.Camera = geometry.NewOrthographicCamera(
		core.NewVec3(0, 0.5, 0.5),
		core.NewVec3(1, 0, 0),
		core.NewVec3(0, 0, -1),
		12, 12,
	)
	s.SamplingConfig = SamplingConfig{
		Width:      600,
		Height:     600,
		MaxBounces: 10,
	}

	s.AddAmbientLight(core.Gray(0.1))
	s.AddDirectionalLight(core.NewVec3(0, 0, 1), core.White())

	s.Add(geometry.NewSphere(core.NewVec3(11, 2, 0), 3, core.Red()))
	s.Add(geometry.NewSphere(core.NewVec3(9, -2, -2), 3, core.Green()))
	s.Add(geometry.NewSphere(core.NewVec3(10, 0, 3), 3, core.Blue()))

	return s
}
