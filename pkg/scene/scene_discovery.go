package scene

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/df07/go-bounce-raytracer/pkg/loaders"
)

// ErrUnknownScene is returned by Create for names that match no scene
var ErrUnknownScene = errors.New("unknown scene")

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
	Type        string `json:"type"`        // "builtin" or "json"
	FilePath    string `json:"filePath"`    // Path to JSON file (json type only)
}

var builtinScenes = []struct {
	info   SceneInfo
	create func() *Scene
}{
	{
		info: SceneInfo{
			ID:          "default",
			DisplayName: "Three Spheres",
			Description: "Red, green and blue spheres under ambient and directional light",
			Type:        "builtin",
		},
		create: NewDefaultScene,
	},
	{
		info: SceneInfo{
			ID:          "mirrors",
			DisplayName: "Facing Mirrors",
			Description: "Two spheres facing each other; rays bounce until the budget runs out",
			Type:        "builtin",
		},
		create: NewMirrorScene,
	},
	{
		info: SceneInfo{
			ID:          "spheregrid",
			DisplayName: "Sphere Grid",
			Description: "A grid of 144 colored spheres on a ground sphere",
			Type:        "builtin",
		},
		create: NewSphereGridScene,
	},
	{
		info: SceneInfo{
			ID:          "empty",
			DisplayName: "Empty",
			Description: "No objects, background only",
			Type:        "builtin",
		},
		create: NewEmptyScene,
	},
}

// ListScenes returns the built-in scenes followed by JSON scenes found in dir.
// A missing directory yields only the built-in scenes.
func ListScenes(dir string) ([]SceneInfo, error) {
	scenes := make([]SceneInfo, 0, len(builtinScenes))
	for _, b := range builtinScenes {
		scenes = append(scenes, b.info)
	}

	if dir == "" {
		return scenes, nil
	}
	if _, err := os.Stat(dir); errors.Is(err, os.ErrNotExist) {
		return scenes, nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}
	sort.Strings(files)

	for _, filePath := range files {
		info := SceneInfo{
			ID:          "json:" + strings.TrimSuffix(filepath.Base(filePath), ".json"),
			DisplayName: titleCase(strings.TrimSuffix(filepath.Base(filePath), ".json")),
			Type:        "json",
			FilePath:    filePath,
		}
		if sf, err := loaders.LoadSceneFile(filePath); err == nil {
			if sf.Name != "" {
				info.DisplayName = sf.Name
			}
			info.Description = sf.Description
		}
		scenes = append(scenes, info)
	}

	return scenes, nil
}

// Create builds a scene by built-in name, "json:<name>" within dir, or a path
// to a .json file
func Create(name, dir string) (*Scene, error) {
	for _, b := range builtinScenes {
		if b.info.ID == name {
			return b.create(), nil
		}
	}

	if id, ok := strings.CutPrefix(name, "json:"); ok && id != "" {
		return NewJSONScene(filepath.Join(dir, id+".json"))
	}
	if strings.HasSuffix(name, ".json") {
		return NewJSONScene(name)
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
}

// titleCase converts a filename-style string to title case
// e.g., "facing-mirrors" -> "Facing Mirrors"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}

	return strings.Join(words, " ")
}
