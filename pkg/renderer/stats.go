package renderer

import (
	"time"

	"github.com/df07/go-bounce-raytracer/pkg/integrator"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels      int           // Total number of pixels rendered
	HitQueries       int           // Total nearest-hit queries issued
	Bounces          int           // Total queries that struck an object
	BackgroundPixels int           // Pixels whose primary ray hit nothing
	MaxBouncesUsed   int           // Most bounces taken by any single pixel
	AverageBounces   float64       // Bounces per pixel
	Duration         time.Duration // Wall time of the render
}

// AddPath records the work done for one pixel
func (rs *RenderStats) AddPath(path integrator.PathStats) {
	rs.TotalPixels++
	rs.HitQueries += path.HitQueries
	rs.Bounces += path.Bounces
	if path.Bounces == 0 {
		rs.BackgroundPixels++
	}
	rs.MaxBouncesUsed = max(rs.MaxBouncesUsed, path.Bounces)
}

// Merge folds the statistics of another tile into rs
func (rs *RenderStats) Merge(other RenderStats) {
	rs.TotalPixels += other.TotalPixels
	rs.HitQueries += other.HitQueries
	rs.Bounces += other.Bounces
	rs.BackgroundPixels += other.BackgroundPixels
	rs.MaxBouncesUsed = max(rs.MaxBouncesUsed, other.MaxBouncesUsed)
}

// finalize calculates derived statistics after all pixels are rendered
func (rs *RenderStats) finalize() {
	if rs.TotalPixels > 0 {
		rs.AverageBounces = float64(rs.Bounces) / float64(rs.TotalPixels)
	}
}
