package renderer

import (
	"context"
	"time"

	"github.com/df07/go-path-tracer/pkg/core"
	"github.com/df07/go-path-tracer/pkg/integrator"
)

// TileRenderer handles the actual rendering of individual tiles using an integrator
type TileRenderer struct {
	camera          *Camera
	integrator      integrator.Integrator
	samplesPerPixel int
	maxDepth        int
}

// NewTileRenderer creates a new tile renderer
func NewTileRenderer(camera *Camera, integratorInst integrator.Integrator, samplesPerPixel, maxDepth int) *TileRenderer {
	return &TileRenderer{
		camera:          camera,
		integrator:      integratorInst,
		samplesPerPixel: samplesPerPixel,
		maxDepth:        maxDepth,
	}
}

// RenderTile renders every pixel of the tile into frame
// Tiles have non-overlapping bounds, so concurrent calls on distinct tiles are safe
func (tr *TileRenderer) RenderTile(ctx context.Context, tile *Tile, frame *Frame) (TileStats, error) {
	start := time.Now()
	sampler := tile.NewSampler()
	bounds := tile.Bounds

	for j := bounds.Min.Y; j < bounds.Max.Y; j++ {
		if err := ctx.Err(); err != nil {
			return TileStats{}, err
		}
		for i := bounds.Min.X; i < bounds.Max.X; i++ {
			frame.Set(i, j, tr.samplePixel(i, j, sampler))
		}
	}

	return TileStats{
		ID:       tile.ID,
		Bounds:   bounds,
		Samples:  bounds.Dx() * bounds.Dy() * tr.samplesPerPixel,
		Duration: time.Since(start),
	}, nil
}

// samplePixel averages samplesPerPixel path samples through pixel (i, j)
func (tr *TileRenderer) samplePixel(i, j int, sampler core.Sampler) core.Vec3 {
	var ps PixelStats
	for s := 0; s < tr.samplesPerPixel; s++ {
		ray := tr.camera.GetRay(i, j, sampler)
		ps.AddSample(tr.integrator.RayColor(ray, tr.maxDepth, sampler))
	}
	return ps.GetColor()
}
