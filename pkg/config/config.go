package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/df07/go-path-tracer/pkg/core"
	"github.com/df07/go-path-tracer/pkg/renderer"
	"github.com/df07/go-path-tracer/pkg/scene"
)

// ErrInvalid is wrapped by every validation failure
var ErrInvalid = errors.New("invalid render config")

// Vec3 is a JSON triple
type Vec3 [3]float64

func (v Vec3) toCore() core.Vec3 { return core.NewVec3(v[0], v[1], v[2]) }

// CameraCfg overrides the scene camera; zero fields keep the scene's values
type CameraCfg struct {
	LookFrom     *Vec3   `json:"lookFrom,omitempty"`
	LookAt       *Vec3   `json:"lookAt,omitempty"`
	Up           *Vec3   `json:"up,omitempty"`
	AspectRatio  float64 `json:"aspectRatio,omitempty"`
	VFov         float64 `json:"vfov,omitempty"`
	DefocusAngle float64 `json:"defocusAngle,omitempty"`
	FocusDist    float64 `json:"focusDist,omitempty"`
}

// RenderConfig selects a scene and overrides its render settings
// Zero-valued fields keep the scene's defaults
type RenderConfig struct {
	Scene           string     `json:"scene"`
	Width           int        `json:"width,omitempty"`
	SamplesPerPixel int        `json:"spp,omitempty"`
	MaxDepth        int        `json:"maxDepth,omitempty"`
	Seed            int64      `json:"seed"`
	Workers         int        `json:"workers,omitempty"`
	TileSize        int        `json:"tileSize,omitempty"`
	Output          string     `json:"output,omitempty"`
	Profile         string     `json:"profile,omitempty"`
	TextureDirs     []string   `json:"textureDirs,omitempty"`
	Camera          *CameraCfg `json:"camera,omitempty"`

	// Background replaces the scene background; SkyGradient selects the sky gradient instead
	Background  *Vec3 `json:"background,omitempty"`
	SkyGradient bool  `json:"skyGradient,omitempty"`
}

// Default returns the config used when no file or flags are given
func Default() RenderConfig {
	return RenderConfig{
		Scene:    scene.DefaultSceneID,
		Seed:     42,
		TileSize: 32,
		Output:   "output.ppm",
	}
}

// Load reads a JSON config file on top of Default and validates it
func Load(path string) (RenderConfig, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks ranges and the scene name
func (c RenderConfig) Validate() error {
	if _, err := scene.Lookup(c.Scene); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if c.Width < 0 {
		return fmt.Errorf("%w: width must not be negative, got %d", ErrInvalid, c.Width)
	}
	if c.SamplesPerPixel < 0 {
		return fmt.Errorf("%w: spp must not be negative, got %d", ErrInvalid, c.SamplesPerPixel)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("%w: maxDepth must not be negative, got %d", ErrInvalid, c.MaxDepth)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative, got %d", ErrInvalid, c.Workers)
	}
	if c.TileSize < 0 {
		return fmt.Errorf("%w: tileSize must not be negative, got %d", ErrInvalid, c.TileSize)
	}
	if c.Output != "" {
		if _, err := renderer.FormatForFilename(c.Output); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalid, err)
		}
	}
	if c.Background != nil {
		if c.SkyGradient {
			return fmt.Errorf("%w: background and skyGradient are mutually exclusive", ErrInvalid)
		}
		for _, channel := range c.Background {
			if channel < 0 {
				return fmt.Errorf("%w: background channels must not be negative, got %v", ErrInvalid, *c.Background)
			}
		}
	}
	if cam := c.Camera; cam != nil {
		if cam.AspectRatio < 0 || cam.VFov < 0 || cam.VFov >= 180 || cam.DefocusAngle < 0 || cam.FocusDist < 0 {
			return fmt.Errorf("%w: camera values out of range: %+v", ErrInvalid, *cam)
		}
	}
	return nil
}

// SceneOptions returns the options for building the configured scene
func (c RenderConfig) SceneOptions(logger core.Logger) scene.Options {
	return scene.Options{
		Seed:        c.Seed,
		TextureDirs: c.TextureDirs,
		Logger:      logger,
	}
}

// CameraOverrides returns the camera fields to merge over the scene camera
func (c RenderConfig) CameraOverrides() renderer.CameraConfig {
	override := renderer.CameraConfig{Width: c.Width}
	if cam := c.Camera; cam != nil {
		if cam.LookFrom != nil {
			override.Center = cam.LookFrom.toCore()
		}
		if cam.LookAt != nil {
			override.LookAt = cam.LookAt.toCore()
		}
		if cam.Up != nil {
			override.Up = cam.Up.toCore()
		}
		override.AspectRatio = cam.AspectRatio
		override.VFov = cam.VFov
		override.DefocusAngle = cam.DefocusAngle
		override.FocusDistance = cam.FocusDist
	}
	return override
}

// ApplyOverrides returns base with every non-zero render setting of c applied
func (c RenderConfig) ApplyOverrides(base renderer.Config) renderer.Config {
	result := base
	if c.SamplesPerPixel > 0 {
		result.SamplesPerPixel = c.SamplesPerPixel
	}
	if c.MaxDepth > 0 {
		result.MaxDepth = c.MaxDepth
	}
	if c.Workers > 0 {
		result.NumWorkers = c.Workers
	}
	if c.TileSize > 0 {
		result.TileSize = c.TileSize
	}
	result.Seed = c.Seed

	switch {
	case c.SkyGradient:
		result.Background = nil
	case c.Background != nil:
		background := c.Background.toCore()
		result.Background = &background
	}
	return result
}

// BuildScene builds the configured scene with the camera overrides applied
// It returns the scene, its camera and the renderer config ready for rendering
func (c RenderConfig) BuildScene(logger core.Logger) (*scene.Scene, *renderer.Camera, renderer.Config, error) {
	s, err := scene.Build(c.Scene, c.SceneOptions(logger), c.CameraOverrides())
	if err != nil {
		return nil, nil, renderer.Config{}, err
	}
	return s, s.NewCamera(), c.ApplyOverrides(s.RenderConfig()), nil
}
