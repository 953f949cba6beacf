package integrator

import (
	"github.com/df07/go-bounce-raytracer/pkg/core"
	"github.com/df07/go-bounce-raytracer/pkg/geometry"
	"github.com/df07/go-bounce-raytracer/pkg/scene"
)

// BounceConfig configures the bounce integrator
type BounceConfig struct {
	MaxBounces int       // Maximum hit queries per primary ray
	Blend      BlendMode // How bounce colors are combined
}

// BounceIntegrator follows a single mirror path per primary ray, shading
// every surface it strikes with ambient and directional light. Refraction is
// not traced; it only drains energy from the reflected path.
type BounceIntegrator struct {
	config BounceConfig
}

// NewBounceIntegrator creates a new bounce integrator
func NewBounceIntegrator(config BounceConfig) *BounceIntegrator {
	return &BounceIntegrator{config: config}
}

// RenderPixel computes the color seen along ray using the default
// interpolating blend
func RenderPixel(world World, ray core.Ray, maxBounces int) core.Color {
	color, _ := NewBounceIntegrator(BounceConfig{
		MaxBounces: maxBounces,
		Blend:      BlendInterpolate,
	}).RayColor(ray, world)
	return color
}

// RayColor computes the color for a single ray. It performs at most
// MaxBounces hit queries and returns the background color if the first one
// misses.
func (bi *BounceIntegrator) RayColor(ray core.Ray, world World) (core.Color, PathStats) {
	var stats PathStats
	ambient, directional := world.Lights()

	color := world.Background()
	scale := core.White()
	exclude := geometry.NoObject

	for i := 0; i < bi.config.MaxBounces; i++ {
		stats.HitQueries++
		hit, isHit := world.CalculateHit(ray, exclude)
		if !isHit {
			stats.Escaped = true
			break
		}
		stats.Bounces++

		local := shade(hit, ambient, directional).MultiplyColor(scale)

		switch {
		case i == 0:
			color = local
		case bi.config.Blend == BlendAccumulate:
			color = color.AddScaled(local, 1)
		default:
			color = color.ChangeTowards(local, 0.1/float64(i))
		}

		scale = scale.Multiply(transmission(ray.Direction, hit.Normal))
		ray = core.NewRay(hit.Point, hit.Reflect(ray.Direction))
		exclude = hit.ObjectID
	}

	return color, stats
}

// shade lights the struck object's base color. Directional lights only
// contribute to surfaces facing them, weighted by the cosine between the
// surface normal and the direction towards the light.
func shade(hit *geometry.Hit, ambient []core.Color, directional []scene.DirectionalLight) core.Color {
	light := core.Black()
	for _, dl := range directional {
		cosine := -dl.Direction.Dot(hit.Normal)
		if cosine > 0 {
			light = light.AddScaled(dl.Color, cosine)
		}
	}
	for _, a := range ambient {
		light = light.AddScaled(a, 1)
	}
	return hit.Object.Color().MultiplyColor(light)
}

// transmission returns the fraction of energy that continues along the
// reflected path: 1 - (0.2 + 0.8*cos²). Head-on hits pass everything into
// the surface; grazing hits keep 80%.
func transmission(direction, normal core.Vec3) float64 {
	cosine := direction.Normalize().Dot(normal)
	passThrough := 0.2 + 0.8*cosine*cosine
	return 1 - passThrough
}
