package loaders

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrInvalidScene is returned when a scene file parses but describes an
// unusable scene
var ErrInvalidScene = errors.New("invalid scene")

// Vec is a JSON triple, used for both positions and colors
type Vec [3]float64

// SphereCfg describes one sphere
type SphereCfg struct {
	Center Vec     `json:"center"`
	Radius float64 `json:"radius"`
	Color  Vec     `json:"color"`
}

// DirectionalLightCfg describes a light travelling along Direction
type DirectionalLightCfg struct {
	Direction Vec `json:"direction"`
	Color     Vec `json:"color"`
}

// CameraCfg selects and configures the camera.
// Type is "orthographic" or "pinhole".
type CameraCfg struct {
	Type       string  `json:"type"`
	Center     Vec     `json:"center"`
	Direction  Vec     `json:"direction,omitempty"`  // orthographic
	LookAt     Vec     `json:"lookAt,omitempty"`     // pinhole
	Up         Vec     `json:"up"`
	ViewWidth  float64 `json:"viewWidth,omitempty"`  // orthographic
	ViewHeight float64 `json:"viewHeight,omitempty"` // orthographic
	VFov       float64 `json:"vfov,omitempty"`       // pinhole
}

// SceneFile is the on-disk JSON description of a scene
type SceneFile struct {
	Name              string                `json:"name"`
	Description       string                `json:"description,omitempty"`
	Width             int                   `json:"width"`
	Height            int                   `json:"height"`
	MaxBounces        int                   `json:"maxBounces,omitempty"`
	Background        Vec                   `json:"background"`
	AmbientLights     []Vec                 `json:"ambientLights,omitempty"`
	DirectionalLights []DirectionalLightCfg `json:"directionalLights,omitempty"`
	Camera            CameraCfg             `json:"camera"`
	Spheres           []SphereCfg           `json:"spheres"`
	// AcceptBehindOrigin keeps sphere hits behind the ray origin
	AcceptBehindOrigin bool `json:"acceptBehindOrigin,omitempty"`
}

// LoadSceneFile reads and validates a JSON scene file
func LoadSceneFile(filename string) (*SceneFile, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	sf, err := ParseSceneFile(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return sf, nil
}

// ParseSceneFile decodes and validates a JSON scene description
func ParseSceneFile(r io.Reader) (*SceneFile, error) {
	var sf SceneFile
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&sf); err != nil {
		return nil, fmt.Errorf("failed to decode scene: %w", err)
	}

	if sf.MaxBounces == 0 {
		sf.MaxBounces = 10
	}
	if sf.Camera.Type == "" {
		sf.Camera.Type = "orthographic"
	}

	if err := sf.Validate(); err != nil {
		return nil, err
	}
	return &sf, nil
}

// Validate checks the constraints the renderer relies on
func (sf *SceneFile) Validate() error {
	if sf.Width <= 0 || sf.Height <= 0 {
		return fmt.Errorf("%w: image size %dx%d", ErrInvalidScene, sf.Width, sf.Height)
	}
	if sf.MaxBounces < 1 {
		return fmt.Errorf("%w: maxBounces must be at least 1, got %d", ErrInvalidScene, sf.MaxBounces)
	}
	for i, sphere := range sf.Spheres {
		if !(sphere.Radius > 0) {
			return fmt.Errorf("%w: sphere %d has non-positive radius %v", ErrInvalidScene, i, sphere.Radius)
		}
	}
	for i, light := range sf.DirectionalLights {
		if light.Direction == (Vec{}) {
			return fmt.Errorf("%w: directional light %d has zero direction", ErrInvalidScene, i)
		}
	}

	switch sf.Camera.Type {
	case "orthographic":
		if sf.Camera.Direction == (Vec{}) {
			return fmt.Errorf("%w: orthographic camera needs a direction", ErrInvalidScene)
		}
		if sf.Camera.ViewWidth <= 0 || sf.Camera.ViewHeight <= 0 {
			return fmt.Errorf("%w: orthographic camera needs a positive view size", ErrInvalidScene)
		}
	case "pinhole":
		if sf.Camera.LookAt == sf.Camera.Center {
			return fmt.Errorf("%w: pinhole camera looks at its own position", ErrInvalidScene)
		}
		if sf.Camera.VFov <= 0 || sf.Camera.VFov >= 180 {
			return fmt.Errorf("%w: vfov must be in (0, 180), got %v", ErrInvalidScene, sf.Camera.VFov)
		}
	default:
		return fmt.Errorf("%w: unknown camera type %q", ErrInvalidScene, sf.Camera.Type)
	}
	if sf.Camera.Up == (Vec{}) {
		return fmt.Errorf("%w: camera up vector is zero", ErrInvalidScene)
	}

	view := sf.Camera.Direction
	if sf.Camera.Type == "pinhole" {
		view = sf.Camera.LookAt.sub(sf.Camera.Center)
	}
	if view.cross(sf.Camera.Up) == (Vec{}) {
		return fmt.Errorf("%w: camera up vector is parallel to the view direction", ErrInvalidScene)
	}

	return nil
}

func (v Vec) sub(o Vec) Vec {
	return Vec{v[0] - o[0], v[1] - o[1], v[2] - o[2]}
}

func (v Vec) cross(o Vec) Vec {
	return Vec{
		v[1]*o[2] - v[2]*o[1],
		v[2]*o[0] - v[0]*o[2],
		v[0]*o[1] - v[1]*o[0],
	}
}
