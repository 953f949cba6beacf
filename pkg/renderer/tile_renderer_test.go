package renderer

import (
	"image"
	"testing"

	"github.com/df07/go-bounce-raytracer/pkg/core"
	"github.com/df07/go-bounce-raytracer/pkg/integrator"
	"github.com/df07/go-bounce-raytracer/pkg/scene"
)

// MockIntegrator returns a fixed color and counts calls
type MockIntegrator struct {
	returnColor core.Color
	path        integrator.PathStats
	callCount   int
}

func (m *MockIntegrator) RayColor(ray core.Ray, world integrator.World) (core.Color, integrator.PathStats) {
	m.callCount++
	return m.returnColor, m.path
}

func TestTileRenderer_RenderTileBounds(t *testing.T) {
	s := scene.NewEmptyScene()
	mock := &MockIntegrator{
		returnColor: core.NewColor(0.25, 0.5, 0.75),
		path:        integrator.PathStats{HitQueries: 3, Bounces: 2},
	}
	tr := NewTileRenderer(s, s.Camera, mock, 10, 10)

	pixels := make([][]core.Color, 10)
	for y := range pixels {
		pixels[y] = make([]core.Color, 10)
	}

	bounds := image.Rect(2, 3, 6, 5)
	stats := tr.RenderTileBounds(bounds, pixels)

	if mock.callCount != 8 {
		t.Errorf("Expected 8 integrator calls, got %d", mock.callCount)
	}
	if stats.TotalPixels != 8 || stats.HitQueries != 24 || stats.Bounces != 16 {
		t.Errorf("Unexpected stats %+v", stats)
	}

	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			inside := image.Pt(x, y).In(bounds)
			if inside && pixels[y][x] != mock.returnColor {
				t.Errorf("Pixel (%d,%d) inside tile not written", x, y)
			}
			if !inside && pixels[y][x] != (core.Color{}) {
				t.Errorf("Pixel (%d,%d) outside tile was written", x, y)
			}
		}
	}
}

func TestNewTileGrid(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		tileSize      int
		expectedTiles int
	}{
		{"exact fit", 128, 64, 64, 2},
		{"partial edge tiles", 100, 70, 64, 4},
		{"single tile", 10, 10, 64, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tiles := NewTileGrid(tt.width, tt.height, tt.tileSize)
			if len(tiles) != tt.expectedTiles {
				t.Fatalf("Expected %d tiles, got %d", tt.expectedTiles, len(tiles))
			}

			area := 0
			for i, tile := range tiles {
				if tile.ID != i {
					t.Errorf("Expected tile ID %d, got %d", i, tile.ID)
				}
				if !tile.Bounds.In(image.Rect(0, 0, tt.width, tt.height)) {
					t.Errorf("Tile %d exceeds image: %v", i, tile.Bounds)
				}
				area += tile.Bounds.Dx() * tile.Bounds.Dy()
			}
			if area != tt.width*tt.height {
				t.Errorf("Tiles cover %d pixels, expected %d", area, tt.width*tt.height)
			}
		})
	}
}
