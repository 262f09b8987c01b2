package renderer

import (
	"image"
	"time"

	"github.com/df07/go-path-tracer/pkg/core"
	"gonum.org/v1/gonum/stat"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels     int           // Total number of pixels rendered
	TotalSamples    int           // Total number of samples taken
	SamplesPerPixel int           // Samples taken per pixel
	NumWorkers      int           // Number of parallel workers used
	Elapsed         time.Duration // Wall-clock render time
	Tiles           []TileStats   // Per-tile timings, indexed by tile ID
}

// TileStats records how long a single tile took to render
type TileStats struct {
	ID       int
	Bounds   image.Rectangle
	Samples  int
	Duration time.Duration
}

// TileDurationStats returns the mean and standard deviation of tile render times in seconds
func (rs RenderStats) TileDurationStats() (mean, stdDev float64) {
	if len(rs.Tiles) == 0 {
		return 0, 0
	}
	seconds := make([]float64, len(rs.Tiles))
	for i, tile := range rs.Tiles {
		seconds[i] = tile.Duration.Seconds()
	}
	if len(seconds) == 1 {
		return seconds[0], 0
	}
	return stat.MeanStdDev(seconds, nil)
}

// SamplesPerSecond returns the overall sampling throughput
func (rs RenderStats) SamplesPerSecond() float64 {
	if rs.Elapsed <= 0 {
		return 0
	}
	return float64(rs.TotalSamples) / rs.Elapsed.Seconds()
}

// PixelStats accumulates samples for a single pixel
type PixelStats struct {
	ColorAccum  core.Vec3 // RGB accumulator for final result
	SampleCount int       // Number of samples taken
}

// AddSample adds a new color sample to the pixel statistics
func (ps *PixelStats) AddSample(color core.Vec3) {
	ps.ColorAccum = ps.ColorAccum.Add(color)
	ps.SampleCount++
}

// GetColor returns the current average color for this pixel
func (ps *PixelStats) GetColor() core.Vec3 {
	if ps.SampleCount == 0 {
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}
	return ps.ColorAccum.Multiply(1.0 / float64(ps.SampleCount))
}
