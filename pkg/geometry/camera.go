package geometry

import (
	"math"

	"github.com/df07/go-bounce-raytracer/pkg/core"
)

// Camera maps a pixel to the primary ray fired through it.
// x grows to the right and y grows downwards, as in image.Image.
type Camera interface {
	GetRay(x, y, width, height int) core.Ray
}

// OrthographicCamera fires parallel rays from a rectangular image plane
type OrthographicCamera struct {
	Center     core.Vec3 // Center of the image plane
	Direction  core.Vec3 // Shared direction of every ray
	Right      core.Vec3 // Unit vector along increasing x
	Down       core.Vec3 // Unit vector along increasing y
	ViewWidth  float64   // World units covered by the image width
	ViewHeight float64   // World units covered by the image height
}

// NewOrthographicCamera creates a parallel-projection camera looking along
// direction. up is only used to orient the image plane.
func NewOrthographicCamera(center, direction, up core.Vec3, viewWidth, viewHeight float64) *OrthographicCamera {
	w := direction.Normalize()
	right := w.Cross(up).Normalize()
	down := w.Cross(right).Normalize()
	return &OrthographicCamera{
		Center:     center,
		Direction:  w,
		Right:      right,
		Down:       down,
		ViewWidth:  viewWidth,
		ViewHeight: viewHeight,
	}
}

// GetRay returns the ray through the center of pixel (x, y)
func (c *OrthographicCamera) GetRay(x, y, width, height int) core.Ray {
	u := (float64(x)+0.5)/float64(width) - 0.5
	v := (float64(y)+0.5)/float64(height) - 0.5
	origin := c.Center.
		Add(c.Right.Multiply(u * c.ViewWidth)).
		Add(c.Down.Multiply(v * c.ViewHeight))
	return core.NewRay(origin, c.Direction)
}

// CameraConfig contains perspective camera configuration parameters
type CameraConfig struct {
	Center core.Vec3 // Camera position
	LookAt core.Vec3 // Point the camera is looking at
	Up     core.Vec3 // Up direction (usually 0,1,0)
	VFov   float64   // Vertical field of view in degrees
}

// PinholeCamera is a perspective camera without depth of field
type PinholeCamera struct {
	config CameraConfig
	u, v   core.Vec3 // Right and up unit vectors
	w      core.Vec3 // Unit vector pointing backwards from the view direction
}

// NewPinholeCamera creates a perspective camera
func NewPinholeCamera(config CameraConfig) *PinholeCamera {
	w := config.Center.Subtract(config.LookAt).Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)
	return &PinholeCamera{config: config, u: u, v: v, w: w}
}

// GetRay returns a normalized ray through the center of pixel (x, y)
func (c *PinholeCamera) GetRay(x, y, width, height int) core.Ray {
	aspectRatio := float64(width) / float64(height)
	halfHeight := math.Tan(c.config.VFov * math.Pi / 360.0)
	halfWidth := aspectRatio * halfHeight

	s := 2*(float64(x)+0.5)/float64(width) - 1
	t := 1 - 2*(float64(y)+0.5)/float64(height)

	direction := c.u.Multiply(s * halfWidth).
		Add(c.v.Multiply(t * halfHeight)).
		Subtract(c.w)
	return core.NewRay(c.config.Center, direction.Normalize())
}
