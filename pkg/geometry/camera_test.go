package geometry

import (
	"testing"

	"github.com/df07/go-bounce-raytracer/pkg/core"
)

func TestOrthographicCamera_ParallelRays(t *testing.T) {
	camera := NewOrthographicCamera(
		core.NewVec3(0, 0, 0),
		core.NewVec3(1, 0, 0),
		core.NewVec3(0, 0, 1),
		12, 12,
	)

	const tolerance = 1e-9
	first := camera.GetRay(0, 0, 600, 600)
	last := camera.GetRay(599, 599, 600, 600)

	if !first.Direction.ApproxEqual(core.NewVec3(1, 0, 0), tolerance) ||
		!last.Direction.ApproxEqual(core.NewVec3(1, 0, 0), tolerance) {
		t.Errorf("Expected all rays along +x, got %v and %v", first.Direction, last.Direction)
	}

	// Origins lie on the x=0 plane and are symmetric about the center
	if first.Origin.X != 0 || last.Origin.X != 0 {
		t.Errorf("Expected origins on x=0 plane, got %v and %v", first.Origin, last.Origin)
	}
	if !first.Origin.Add(last.Origin).ApproxEqual(core.Vec3{}, tolerance) {
		t.Errorf("Expected symmetric corners, got %v and %v", first.Origin, last.Origin)
	}

	// Corner pixel centers are half a pixel inside the 12x12 view
	expected := 6 - 0.01
	if d := last.Origin.Subtract(first.Origin).Length(); d < 2*expected*1.41 || d > 2*expected*1.42 {
		t.Errorf("Unexpected diagonal span %f", d)
	}
}

func TestPinholeCamera_CenterRay(t *testing.T) {
	camera := NewPinholeCamera(CameraConfig{
		Center: core.NewVec3(0, 0, 0),
		LookAt: core.NewVec3(0, 0, -1),
		Up:     core.NewVec3(0, 1, 0),
		VFov:   90,
	})

	// Odd dimensions put a pixel center exactly on the optical axis
	ray := camera.GetRay(50, 50, 101, 101)
	if !ray.Direction.ApproxEqual(core.NewVec3(0, 0, -1), 1e-9) {
		t.Errorf("Expected center ray along -z, got %v", ray.Direction)
	}

	// Top-left pixel looks up and to the left
	corner := camera.GetRay(0, 0, 101, 101)
	if corner.Direction.X >= 0 || corner.Direction.Y <= 0 {
		t.Errorf("Expected top-left ray to point up-left, got %v", corner.Direction)
	}
}
