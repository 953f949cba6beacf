package scene

import (
	"github.com/df07/go-bounce-raytracer/pkg/core"
	"github.com/df07/go-bounce-raytracer/pkg/geometry"
	"github.com/df07/go-bounce-raytracer/pkg/loaders"
)

// NewJSONScene loads a scene from a JSON scene file
func NewJSONScene(filename string) (*Scene, error) {
	sf, err := loaders.LoadSceneFile(filename)
	if err != nil {
		return nil, err
	}
	return FromSceneFile(sf), nil
}

// FromSceneFile converts a validated scene description into a Scene
func FromSceneFile(sf *loaders.SceneFile) *Scene {
	s := New(toColor(sf.Background))
	s.AcceptBehindOrigin = sf.AcceptBehindOrigin
	s.SamplingConfig = SamplingConfig{
		Width:      sf.Width,
		Height:     sf.Height,
		MaxBounces: sf.MaxBounces,
	}

	switch sf.Camera.Type {
	case "pinhole":
		s.Camera = geometry.NewPinholeCamera(geometry.CameraConfig{
			Center: toVec3(sf.Camera.Center),
			LookAt: toVec3(sf.Camera.LookAt),
			Up:     toVec3(sf.Camera.Up),
			VFov:   sf.Camera.VFov,
		})
	default:
		s.Camera = geometry.NewOrthographicCamera(
			toVec3(sf.Camera.Center),
			toVec3(sf.Camera.Direction),
			toVec3(sf.Camera.Up),
			sf.Camera.ViewWidth,
			sf.Camera.ViewHeight,
		)
	}

	for _, ambient := range sf.AmbientLights {
		s.AddAmbientLight(toColor(ambient))
	}
	for _, light := range sf.DirectionalLights {
		s.AddDirectionalLight(toVec3(light.Direction), toColor(light.Color))
	}
	for _, sphere := range sf.Spheres {
		s.Add(geometry.NewSphere(toVec3(sphere.Center), sphere.Radius, toColor(sphere.Color)))
	}

	return s
}

func toVec3(v loaders.Vec) core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

func toColor(v loaders.Vec) core.Color {
	return core.NewColor(v[0], v[1], v[2])
}
