package scene

import (
	"github.com/df07/go-path-tracer/pkg/core"
	"github.com/df07/go-path-tracer/pkg/geometry"
	"github.com/df07/go-path-tracer/pkg/renderer"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	World          geometry.Hittable // Root of the scene graph
	CameraConfig   renderer.CameraConfig
	SamplingConfig SamplingConfig
	Background     *core.Vec3 // Color of escaping rays (nil = sky gradient)
}

// SamplingConfig contains the per-scene sampling defaults
type SamplingConfig struct {
	SamplesPerPixel int // Number of rays per pixel
	MaxDepth        int // Maximum ray bounce depth
}

// Options control how scenes are built
type Options struct {
	Seed        int64       // Seed for scene construction (random sphere placement, Perlin tables)
	TextureDirs []string    // Extra directories searched for image textures
	Logger      core.Logger // Receives texture loading warnings
}

// DefaultOptions returns sensible default values
func DefaultOptions() Options {
	return Options{
		Seed:   42,
		Logger: core.NopLogger{},
	}
}

// sampler returns the construction-time random source for these options
func (o Options) sampler() core.Sampler {
	return core.NewSeededSampler(o.Seed)
}

func (o Options) logger() core.Logger {
	if o.Logger == nil {
		return core.NopLogger{}
	}
	return o.Logger
}

// NewCamera builds the camera described by the scene's camera config
func (s *Scene) NewCamera() *renderer.Camera {
	return renderer.NewCamera(s.CameraConfig)
}

// RenderConfig returns a renderer config carrying the scene's sampling defaults and background
func (s *Scene) RenderConfig() renderer.Config {
	config := renderer.DefaultConfig()
	config.SamplesPerPixel = s.SamplingConfig.SamplesPerPixel
	config.MaxDepth = s.SamplingConfig.MaxDepth
	config.Background = s.Background
	return config
}

// applyCameraOverrides merges the first override, if any, into defaults
func applyCameraOverrides(defaults renderer.CameraConfig, cameraOverrides []renderer.CameraConfig) renderer.CameraConfig {
	if len(cameraOverrides) > 0 {
		return renderer.MergeCameraConfig(defaults, cameraOverrides[0])
	}
	return defaults
}

// newBackground returns a pointer to a background color
func newBackground(r, g, b float64) *core.Vec3 {
	c := core.NewVec3(r, g, b)
	return &c
}

func skyBackground() *core.Vec3   { return newBackground(0.70, 0.80, 1.00) }
func blackBackground() *core.Vec3 { return newBackground(0, 0, 0) }
