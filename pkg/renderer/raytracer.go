package renderer

import (
	"context"
	"fmt"
	"image"
	"log"
	"time"

	"github.com/df07/go-bounce-raytracer/pkg/core"
	"github.com/df07/go-bounce-raytracer/pkg/integrator"
	"github.com/df07/go-bounce-raytracer/pkg/scene"
)

// DefaultLogger implements core.Logger through the standard logger
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	log.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// Config contains rendering configuration
type Config struct {
	Width       int                  // Output image width
	Height      int                  // Output image height
	MaxBounces  int                  // Maximum hit queries per pixel
	Blend       integrator.BlendMode // How bounce colors are combined
	TileSize    int                  // Size of each tile (64x64 recommended)
	NumWorkers  int                  // Number of parallel workers (0 = use CPU count)
	Supersample int                  // Render at this multiple of the output size and downscale (1 = off)
	Gamma       float64              // Display gamma applied on export
	TileImages  bool                 // Attach a converted image of each tile to tile callbacks
}

// DefaultConfig returns sensible default values for the given scene
func DefaultConfig(s *scene.Scene) Config {
	return Config{
		Width:       s.SamplingConfig.Width,
		Height:      s.SamplingConfig.Height,
		MaxBounces:  s.SamplingConfig.MaxBounces,
		Blend:       integrator.BlendInterpolate,
		TileSize:    64,
		NumWorkers:  0,
		Supersample: 1,
		Gamma:       2.2,
	}
}

// TileCompletionResult contains information about a completed tile for callbacks
type TileCompletionResult struct {
	TileID     int             // Tile identifier
	Bounds     image.Rectangle // Tile bounds in render resolution
	TileNumber int             // Completion order (1-based)
	TotalTiles int             // Total number of tiles in the image
	Stats      RenderStats     // Statistics for just this tile
	Image      *image.RGBA     // Tile pixels at render resolution, only when Config.TileImages is set
}

// Raytracer renders a scene into an image
type Raytracer struct {
	scene  *scene.Scene
	config Config
	logger core.Logger
}

// NewRaytracer creates a new raytracer
func NewRaytracer(s *scene.Scene, config Config, logger core.Logger) *Raytracer {
	if logger == nil {
		logger = NewDefaultLogger()
	}
	return &Raytracer{
		scene:  s,
		config: config,
		logger: logger,
	}
}

// Render renders the scene using a pool of tile workers. tileCallback, if
// non-nil, is called from the calling goroutine as each tile completes.
// Rendering stops early with ctx.Err() if ctx is cancelled.
func (rt *Raytracer) Render(ctx context.Context, tileCallback func(TileCompletionResult)) (*image.RGBA, RenderStats, error) {
	if rt.config.Width <= 0 || rt.config.Height <= 0 {
		return nil, RenderStats{}, fmt.Errorf("invalid image size %dx%d", rt.config.Width, rt.config.Height)
	}
	if rt.scene.Camera == nil {
		return nil, RenderStats{}, fmt.Errorf("scene has no camera")
	}

	startTime := time.Now()
	supersample := max(1, rt.config.Supersample)
	width := rt.config.Width * supersample
	height := rt.config.Height * supersample
	tileSize := rt.config.TileSize
	if tileSize <= 0 {
		tileSize = 64
	}

	pixels := make([][]core.Color, height)
	for y := range pixels {
		pixels[y] = make([]core.Color, width)
	}

	bounce := integrator.NewBounceIntegrator(integrator.BounceConfig{
		MaxBounces: rt.config.MaxBounces,
		Blend:      rt.config.Blend,
	})
	tileRenderer := NewTileRenderer(rt.scene, rt.scene.Camera, bounce, width, height)
	tiles := NewTileGrid(width, height, tileSize)

	pool := NewWorkerPool(ctx, tileRenderer, rt.config.NumWorkers, len(tiles))
	pool.Start()
	defer pool.Stop()

	rt.logger.Printf("Rendering %dx%d (%d tiles, %d workers, %d max bounces, %s blend)\n",
		width, height, len(tiles), pool.GetNumWorkers(), rt.config.MaxBounces, rt.config.Blend)

	for i, tile := range tiles {
		pool.SubmitTask(TileTask{Tile: tile, TaskID: i, Pixels: pixels})
	}

	var stats RenderStats
	var firstErr error
	for i := 0; i < len(tiles); i++ {
		result, ok := pool.GetResult()
		if !ok {
			return nil, RenderStats{}, fmt.Errorf("worker pool closed unexpectedly")
		}
		if result.Error != nil {
			if firstErr == nil {
				firstErr = result.Error
			}
			continue
		}

		stats.Merge(result.Stats)
		if tileCallback != nil {
			tile := tiles[result.TaskID]
			completion := TileCompletionResult{
				TileID:     tile.ID,
				Bounds:     tile.Bounds,
				TileNumber: i + 1,
				TotalTiles: len(tiles),
				Stats:      result.Stats,
			}
			if rt.config.TileImages {
				completion.Image = TileImage(pixels, tile.Bounds, rt.config.Gamma)
			}
			tileCallback(completion)
		}
	}

	if firstErr != nil {
		rt.logger.Printf("Render cancelled after %v: %v\n", time.Since(startTime), firstErr)
		return nil, RenderStats{}, firstErr
	}

	img := ToImage(pixels, rt.config.Gamma)
	if supersample > 1 {
		img = Downsample(img, rt.config.Width, rt.config.Height)
	}

	stats.finalize()
	stats.Duration = time.Since(startTime)
	rt.logger.Printf("Render completed in %v (%.2f bounces/pixel, %d background pixels)\n",
		stats.Duration, stats.AverageBounces, stats.BackgroundPixels)

	return img, stats, nil
}
