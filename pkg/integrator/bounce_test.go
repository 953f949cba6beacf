package integrator

import (
	"math"
	"testing"

	"github.com/df07/go-bounce-raytracer/pkg/core"
	"github.com/df07/go-bounce-raytracer/pkg/geometry"
	"github.com/df07/go-bounce-raytracer/pkg/scene"
)

// countingWorld wraps a scene and records every hit query
type countingWorld struct {
	*scene.Scene
	queries  int
	excludes []geometry.ObjectID
}

func (c *countingWorld) CalculateHit(ray core.Ray, exclude geometry.ObjectID) (*geometry.Hit, bool) {
	c.queries++
	c.excludes = append(c.excludes, exclude)
	return c.Scene.CalculateHit(ray, exclude)
}

// facingMirrors returns two spheres on the z axis with the origin between them
func facingMirrors() *scene.Scene {
	s := scene.New(core.Black())
	s.AddAmbientLight(core.White())
	s.Add(geometry.NewSphere(core.NewVec3(0, 0, -6), 4, core.Red()))
	s.Add(geometry.NewSphere(core.NewVec3(0, 0, 6), 4, core.Blue()))
	return s
}

func TestBounceIntegrator_SingleSphereNoLights(t *testing.T) {
	s := scene.New(core.Black())
	s.Add(geometry.NewSphere(core.NewVec3(11, 0, 0), 3, core.Red()))
	world := &countingWorld{Scene: s}

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0))
	hit, isHit := s.CalculateHit(ray, geometry.NoObject)
	if !isHit {
		t.Fatal("Expected the sphere to be hit")
	}
	if math.Abs(hit.Point.X-8) > 1e-9 {
		t.Errorf("Expected hit near x=8, got %v", hit.Point)
	}

	color, stats := NewBounceIntegrator(BounceConfig{MaxBounces: 10}).RayColor(ray, world)
	if color != core.Black() {
		t.Errorf("Expected black without lights, got %v", color)
	}
	if stats.Bounces != 1 || !stats.Escaped {
		t.Errorf("Expected one bounce then escape, got %+v", stats)
	}
}

func TestBounceIntegrator_HitDistinguishedFromBackground(t *testing.T) {
	background := core.NewColor(0.2, 0.4, 0.6)
	s := scene.New(background)
	s.Add(geometry.NewSphere(core.NewVec3(11, 0, 0), 3, core.Red()))

	hitRay := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0))
	missRay := core.NewRay(core.NewVec3(0, 10, 0), core.NewVec3(1, 0, 0))

	if got := RenderPixel(s, hitRay, 10); got == background {
		t.Error("Expected hit color to differ from background")
	}
	if got := RenderPixel(s, missRay, 10); got != background {
		t.Errorf("Expected background %v for a miss, got %v", background, got)
	}
}

func TestBounceIntegrator_EmptySceneIsBackground(t *testing.T) {
	background := core.NewColor(0.5, 0.7, 1.0)
	s := scene.New(background)
	s.AddAmbientLight(core.White())
	s.AddDirectionalLight(core.NewVec3(0, -1, 0), core.White())

	rays := []core.Ray{
		core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0)),
		core.NewRay(core.NewVec3(3, -2, 1), core.NewVec3(-1, 0.5, 0.2)),
		core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)),
	}
	for _, blend := range []BlendMode{BlendInterpolate, BlendAccumulate} {
		bi := NewBounceIntegrator(BounceConfig{MaxBounces: 5, Blend: blend})
		for _, ray := range rays {
			color, stats := bi.RayColor(ray, s)
			if color != background {
				t.Errorf("%v: expected background, got %v", blend, color)
			}
			if stats.HitQueries != 1 || stats.Bounces != 0 {
				t.Errorf("%v: expected a single missed query, got %+v", blend, stats)
			}
		}
	}
}

func TestBounceIntegrator_ExactlyMaxBounceQueries(t *testing.T) {
	for _, maxBounces := range []int{1, 2, 7, 25} {
		world := &countingWorld{Scene: facingMirrors()}
		ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

		_, stats := NewBounceIntegrator(BounceConfig{MaxBounces: maxBounces}).RayColor(ray, world)

		if world.queries != maxBounces {
			t.Errorf("maxBounces=%d: expected %d queries, got %d", maxBounces, maxBounces, world.queries)
		}
		if stats.HitQueries != maxBounces || stats.Bounces != maxBounces || stats.Escaped {
			t.Errorf("maxBounces=%d: unexpected stats %+v", maxBounces, stats)
		}
	}
}

func TestBounceIntegrator_ExcludesPreviousObject(t *testing.T) {
	world := &countingWorld{Scene: facingMirrors()}
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	NewBounceIntegrator(BounceConfig{MaxBounces: 4}).RayColor(ray, world)

	expected := []geometry.ObjectID{geometry.NoObject, 0, 1, 0}
	if len(world.excludes) != len(expected) {
		t.Fatalf("Expected %d queries, got %d", len(expected), len(world.excludes))
	}
	for i, id := range expected {
		if world.excludes[i] != id {
			t.Errorf("Query %d: expected exclude %d, got %d", i, id, world.excludes[i])
		}
	}
}

func TestBounceIntegrator_ZeroBudgetIsBackground(t *testing.T) {
	s := facingMirrors()
	s.BackgroundColor = core.Gray(0.3)
	world := &countingWorld{Scene: s}

	color, stats := NewBounceIntegrator(BounceConfig{MaxBounces: 0}).RayColor(
		core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), world)
	if color != core.Gray(0.3) || world.queries != 0 || stats.HitQueries != 0 {
		t.Errorf("Expected background without queries, got %v after %d queries", color, world.queries)
	}
}

func TestBounceIntegrator_DirectionalShading(t *testing.T) {
	tests := []struct {
		name      string
		direction core.Vec3
		expected  core.Color
	}{
		// Light travels +x, the same way as the camera ray: it faces the hit point
		{"facing light", core.NewVec3(1, 0, 0), core.NewColor(1.1, 0, 0)},
		// Light from behind the sphere does not reach the visible side
		{"light behind", core.NewVec3(-1, 0, 0), core.NewColor(0.1, 0, 0)},
		// Light at 60 degrees contributes cos(60°) = 0.5
		{"oblique light", core.NewVec3(0.5, math.Sqrt(3)/2, 0), core.NewColor(0.6, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := scene.New(core.Black())
			s.AddAmbientLight(core.Gray(0.1))
			s.AddDirectionalLight(tt.direction, core.White())
			s.Add(geometry.NewSphere(core.NewVec3(11, 0, 0), 3, core.Red()))

			ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0))
			got := RenderPixel(s, ray, 1)
			if !got.ApproxEqual(tt.expected, 1e-9) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestBounceIntegrator_EarlierBouncesDominate(t *testing.T) {
	// Off-axis ray so the path bounces back and forth at an angle
	ray := core.NewRay(core.NewVec3(0, 0.2, 0), core.NewVec3(0, 0, -1))

	for _, blend := range []BlendMode{BlendInterpolate, BlendAccumulate} {
		t.Run(blend.String(), func(t *testing.T) {
			world := &countingWorld{Scene: facingMirrors()}
			color, stats := NewBounceIntegrator(BounceConfig{MaxBounces: 25, Blend: blend}).RayColor(ray, world)

			if stats.Bounces < 2 {
				t.Fatalf("Expected the path to reach both mirrors, got %+v", stats)
			}
			// First hit is the red mirror; blue only appears on later bounces
			if !(color.R > color.B) {
				t.Errorf("Expected first (red) bounce to dominate, got %v", color)
			}
			if color.B <= 0 {
				t.Errorf("Expected later (blue) bounces to contribute, got %v", color)
			}
		})
	}
}

func TestBounceIntegrator_AccumulateWeightsByAttenuation(t *testing.T) {
	world := facingMirrors()
	ray := core.NewRay(core.NewVec3(0, 0.2, 0), core.NewVec3(0, 0, -1))

	one, _ := NewBounceIntegrator(BounceConfig{MaxBounces: 1, Blend: BlendAccumulate}).RayColor(ray, world)
	two, _ := NewBounceIntegrator(BounceConfig{MaxBounces: 2, Blend: BlendAccumulate}).RayColor(ray, world)

	// First bounce: red mirror under white ambient at full weight
	if !one.ApproxEqual(core.Red(), 1e-9) {
		t.Errorf("Expected pure red after one bounce, got %v", one)
	}

	// Second bounce adds blue scaled by the transmission of the first hit
	first, _ := world.CalculateHit(ray, geometry.NoObject)
	weight := transmission(ray.Direction, first.Normal)
	expected := core.NewColor(1, 0, weight)
	if !two.ApproxEqual(expected, 1e-9) {
		t.Errorf("Expected %v after two bounces, got %v", expected, two)
	}
}

func TestTransmission(t *testing.T) {
	tests := []struct {
		name      string
		direction core.Vec3
		normal    core.Vec3
		expected  float64
	}{
		{"head on", core.NewVec3(1, 0, 0), core.NewVec3(-1, 0, 0), 0},
		{"grazing", core.NewVec3(0, 1, 0), core.NewVec3(-1, 0, 0), 0.8},
		{"45 degrees", core.NewVec3(1, 1, 0), core.NewVec3(-1, 0, 0), 0.4},
		{"unnormalized direction", core.NewVec3(5, 0, 0), core.NewVec3(1, 0, 0), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := transmission(tt.direction, tt.normal)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("Expected %f, got %f", tt.expected, got)
			}
		})
	}
}

func TestParseBlendMode(t *testing.T) {
	tests := []struct {
		input   string
		want    BlendMode
		wantErr bool
	}{
		{"interpolate", BlendInterpolate, false},
		{"", BlendInterpolate, false},
		{"Accumulate", BlendAccumulate, false},
		{"average", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseBlendMode(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Unexpected error state: %v", err)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}
