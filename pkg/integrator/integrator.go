package integrator

import (
	"fmt"
	"strings"

	"github.com/df07/go-bounce-raytracer/pkg/core"
	"github.com/df07/go-bounce-raytracer/pkg/geometry"
	"github.com/df07/go-bounce-raytracer/pkg/scene"
)

// World is the read-only view of a scene the integrator needs.
// *scene.Scene implements it.
type World interface {
	CalculateHit(ray core.Ray, exclude geometry.ObjectID) (*geometry.Hit, bool)
	Background() core.Color
	Lights() (ambient []core.Color, directional []scene.DirectionalLight)
}

// PathStats describes the work done for a single primary ray
type PathStats struct {
	HitQueries int  // Calls to World.CalculateHit
	Bounces    int  // Queries that hit an object
	Escaped    bool // The path ended by leaving the scene
}

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	RayColor(ray core.Ray, world World) (core.Color, PathStats)
}

// BlendMode selects how each bounce's shaded color is folded into the pixel
type BlendMode int

const (
	// BlendInterpolate sets the color at the first hit and then moves it
	// towards bounce i's shaded color by 0.1/i
	BlendInterpolate BlendMode = iota
	// BlendAccumulate sums shaded colors, each weighted by the attenuation
	// carried along the path
	BlendAccumulate
)

func (m BlendMode) String() string {
	switch m {
	case BlendInterpolate:
		return "interpolate"
	case BlendAccumulate:
		return "accumulate"
	default:
		return fmt.Sprintf("BlendMode(%d)", int(m))
	}
}

// ParseBlendMode parses "interpolate" or "accumulate"
func ParseBlendMode(s string) (BlendMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "interpolate", "":
		return BlendInterpolate, nil
	case "accumulate":
		return BlendAccumulate, nil
	default:
		return 0, fmt.Errorf("unknown blend mode %q", s)
	}
}
