package renderer

import (
	"context"
	"time"

	"github.com/df07/go-path-tracer/pkg/core"
	"github.com/df07/go-path-tracer/pkg/geometry"
	"github.com/df07/go-path-tracer/pkg/integrator"
)

// Config contains rendering configuration
type Config struct {
	SamplesPerPixel int        // Number of rays per pixel
	MaxDepth        int        // Maximum ray bounce depth
	Background      *core.Vec3 // Color of escaping rays (nil = sky gradient)
	Seed            int64      // Base seed; tile i samples with seed+i
	TileSize        int        // Size of each square tile in pixels
	NumWorkers      int        // Number of parallel workers (0 = use CPU count)
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		SamplesPerPixel: 10,
		MaxDepth:        10,
		Seed:            42,
		TileSize:        32,
		NumWorkers:      0,
	}
}

// withDefaults fills in non-positive sizes
func (c Config) withDefaults() Config {
	if c.SamplesPerPixel < 1 {
		c.SamplesPerPixel = 1
	}
	if c.TileSize < 1 {
		c.TileSize = DefaultConfig().TileSize
	}
	return c
}

// ProgressFunc is called after each tile completes with the number of finished and total tiles
// Calls are made from the goroutine running Render, one at a time
type ProgressFunc func(completed, total int)

// Raytracer renders a world through a camera
type Raytracer struct {
	world      geometry.Hittable
	camera     *Camera
	config     Config
	integrator integrator.Integrator
	logger     core.Logger
	progress   ProgressFunc
}

// NewRaytracer creates a new raytracer
func NewRaytracer(world geometry.Hittable, camera *Camera, config Config, logger core.Logger) *Raytracer {
	if logger == nil {
		logger = core.NopLogger{}
	}
	config = config.withDefaults()
	return &Raytracer{
		world:      world,
		camera:     camera,
		config:     config,
		integrator: integrator.NewPathTracingIntegrator(world, config.Background),
		logger:     logger,
	}
}

// SetProgressFunc registers a callback invoked as tiles complete
func (rt *Raytracer) SetProgressFunc(fn ProgressFunc) {
	rt.progress = fn
}

// Config returns the effective configuration
func (rt *Raytracer) Config() Config {
	return rt.config
}

// RayColor returns the radiance along ray, following at most depth bounces
func (rt *Raytracer) RayColor(ray core.Ray, depth int, sampler core.Sampler) core.Vec3 {
	return rt.integrator.RayColor(ray, depth, sampler)
}

// Render renders the full image in parallel tiles
// The result depends only on the scene, config, seed and tile size, never on the worker count
func (rt *Raytracer) Render(ctx context.Context) (*Frame, RenderStats, error) {
	if err := ctx.Err(); err != nil {
		return nil, RenderStats{}, err
	}

	start := time.Now()
	width, height := rt.camera.Width(), rt.camera.Height()
	frame := NewFrame(width, height)
	tiles := NewTileGrid(width, height, rt.config.TileSize, rt.config.Seed)

	tileRenderer := NewTileRenderer(rt.camera, rt.integrator, rt.config.SamplesPerPixel, rt.config.MaxDepth)
	pool := NewWorkerPool(tileRenderer, len(tiles), rt.config.NumWorkers)

	rt.logger.Printf("Rendering %dx%d, %d samples/pixel, max depth %d (%d tiles, %d workers)...\n",
		width, height, rt.config.SamplesPerPixel, rt.config.MaxDepth, len(tiles), pool.GetNumWorkers())

	pool.Start(ctx)
	for i, tile := range tiles {
		pool.SubmitTask(TileTask{Tile: tile, Frame: frame, TaskID: i})
	}

	stats := RenderStats{
		TotalPixels:     width * height,
		SamplesPerPixel: rt.config.SamplesPerPixel,
		NumWorkers:      pool.GetNumWorkers(),
		Tiles:           make([]TileStats, len(tiles)),
	}

	// Wait for all tiles, even after a failure, so no worker is left writing to the frame
	var renderErr error
	for remaining := len(tiles); remaining > 0; remaining-- {
		result, _ := pool.GetResult()
		if result.Error != nil {
			if renderErr == nil {
				renderErr = result.Error
			}
			continue
		}

		stats.Tiles[result.TaskID] = result.Stats
		stats.TotalSamples += result.Stats.Samples

		rt.logger.Printf("Tiles remaining: %d\n", remaining-1)
		if rt.progress != nil {
			rt.progress(len(tiles)-remaining+1, len(tiles))
		}
	}
	pool.Stop()

	stats.Elapsed = time.Since(start)
	if renderErr != nil {
		rt.logger.Printf("Rendering stopped: %v\n", renderErr)
		return nil, stats, renderErr
	}

	rt.logger.Printf("Done in %v (%.0f samples/sec)\n", stats.Elapsed, stats.SamplesPerSecond())
	return frame, stats, nil
}
