package loaders

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const validScene = `{
	"name": "Two Spheres",
	"width": 64,
	"height": 48,
	"background": [0, 0, 0],
	"ambientLights": [[0.1, 0.1, 0.1]],
	"directionalLights": [{"direction": [0, 0, 1], "color": [1, 1, 1]}],
	"camera": {"type": "orthographic", "center": [0, 0, 0], "direction": [1, 0, 0], "up": [0, 0, -1], "viewWidth": 12, "viewHeight": 9},
	"spheres": [
		{"center": [11, 2, 0], "radius": 3, "color": [1, 0, 0]},
		{"center": [9, -2, -2], "radius": 3, "color": [0, 1, 0]}
	]
}`

func TestParseSceneFile_Valid(t *testing.T) {
	sf, err := ParseSceneFile(strings.NewReader(validScene))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if sf.Name != "Two Spheres" {
		t.Errorf("Expected name 'Two Spheres', got %q", sf.Name)
	}
	if len(sf.Spheres) != 2 {
		t.Fatalf("Expected 2 spheres, got %d", len(sf.Spheres))
	}
	if sf.Spheres[1].Center != (Vec{9, -2, -2}) {
		t.Errorf("Unexpected sphere center %v", sf.Spheres[1].Center)
	}
	if sf.MaxBounces != 10 {
		t.Errorf("Expected default maxBounces 10, got %d", sf.MaxBounces)
	}
}

func TestParseSceneFile_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		replace [2]string
	}{
		{"zero radius", [2]string{`"radius": 3, "color": [1, 0, 0]`, `"radius": 0, "color": [1, 0, 0]`}},
		{"zero light direction", [2]string{`"direction": [0, 0, 1]`, `"direction": [0, 0, 0]`}},
		{"unknown camera", [2]string{`"type": "orthographic"`, `"type": "fisheye"`}},
		{"zero width", [2]string{`"width": 64`, `"width": 0`}},
		{"zero view", [2]string{`"viewWidth": 12`, `"viewWidth": 0`}},
		{"up parallel to view", [2]string{`"up": [0, 0, -1]`, `"up": [2, 0, 0]`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := strings.Replace(validScene, tt.replace[0], tt.replace[1], 1)
			if input == validScene {
				t.Fatal("Test replacement did not apply")
			}
			_, err := ParseSceneFile(strings.NewReader(input))
			if !errors.Is(err, ErrInvalidScene) {
				t.Errorf("Expected ErrInvalidScene, got %v", err)
			}
		})
	}
}

func TestParseSceneFile_Malformed(t *testing.T) {
	_, err := ParseSceneFile(strings.NewReader(`{"width": "wide"}`))
	if err == nil {
		t.Fatal("Expected decode error")
	}
	if errors.Is(err, ErrInvalidScene) {
		t.Error("Decode errors should not be reported as ErrInvalidScene")
	}

	_, err = ParseSceneFile(strings.NewReader(`{"width": 1, "height": 1, "tiles": 3}`))
	if err == nil {
		t.Error("Expected error for unknown field")
	}
}

func TestLoadSceneFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.json")
	if err := os.WriteFile(path, []byte(validScene), 0644); err != nil {
		t.Fatal(err)
	}

	sf, err := LoadSceneFile(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if sf.Width != 64 || sf.Height != 48 {
		t.Errorf("Expected 64x48, got %dx%d", sf.Width, sf.Height)
	}

	if _, err := LoadSceneFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("Expected error for missing file")
	}
}
