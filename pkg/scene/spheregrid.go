package scene

import (
	"math"

	"github.com/df07/go-bounce-raytracer/pkg/core"
	"github.com/df07/go-bounce-raytracer/pkg/geometry"
)

// oklchToRGB converts OKLCH color values to linear RGB
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchToRGB(l, c, h float64) core.Color {
	hRad := h * math.Pi / 180.0

	// OKLCH to OKLAB
	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	// OKLAB to LMS, cubed
	l_ := l + 0.3963377774*a + 0.2158037573*b
	m_ := l - 0.1055613458*a - 0.0638541728*b
	s_ := l - 0.0894841775*a - 1.2914855480*b
	l_ = l_ * l_ * l_
	m_ = m_ * m_ * m_
	s_ = s_ * s_ * s_

	return core.NewColor(
		+4.0767416621*l_-3.3077115913*m_+0.2309699292*s_,
		-1.2684380046*l_+2.6097574011*m_-0.3413193965*s_,
		-0.0041960863*l_-0.7034186147*m_+1.7076147010*s_,
	).Clamp(0, 1)
}

// NewSphereGridScene creates a grid of small colored spheres resting on a
// huge ground sphere
func NewSphereGridScene() *Scene {
	s := New(core.NewColor(0.5, 0.7, 1.0))

	s.Camera = geometry.NewPinholeCamera(geometry.CameraConfig{
		Center: core.NewVec3(4.5, 6, 18),
		LookAt: core.NewVec3(4.5, 0.8, 4.5),
		Up:     core.NewVec3(0, 1, 0),
		VFov:   40,
	})
	s.SamplingConfig = SamplingConfig{
		Width:      640,
		Height:     360,
		MaxBounces: 8,
	}

	s.AddAmbientLight(core.Gray(0.2))
	s.AddDirectionalLight(core.NewVec3(-0.4, -1, -0.3), core.NewColor(1.0, 0.96, 0.9))

	// Ground
	s.Add(geometry.NewSphere(core.NewVec3(4.5, -1000, 4.5), 1000, core.Gray(0.5)))

	const (
		gridSize   = 12
		targetArea = 9.0
	)
	spacing := targetArea / float64(gridSize-1)
	radius := spacing * 0.35

	// OKLCH parameters for color variation
	baseLightness := 0.65
	minChroma := 0.05
	maxChroma := 0.25

	for i := 0; i < gridSize; i++ {
		for j := 0; j < gridSize; j++ {
			x := float64(i)*spacing - targetArea/2.0 + 4.5
			z := float64(j)*spacing - targetArea/2.0 + 4.5

			// Hue across X, chroma across Z
			hue := (float64(i) / float64(gridSize-1)) * 360.0
			chroma := minChroma + (float64(j)/float64(gridSize-1))*(maxChroma-minChroma)
			lightness := baseLightness + 0.1*math.Sin(float64(i+j)*0.5)

			s.Add(geometry.NewSphere(core.NewVec3(x, radius, z), radius, oklchToRGB(lightness, chroma, hue)))
		}
	}

	return s
}
