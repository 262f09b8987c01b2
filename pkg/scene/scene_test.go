package scene

import (
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/df07/go-path-tracer/pkg/core"
	"github.com/df07/go-path-tracer/pkg/geometry"
	"github.com/df07/go-path-tracer/pkg/loaders"
	"github.com/df07/go-path-tracer/pkg/material"
	"github.com/df07/go-path-tracer/pkg/renderer"
)

type recordingLogger struct {
	lines []string
}

func (l *recordingLogger) Printf(format string, args ...interface{}) {
	l.lines = append(l.lines, format)
}

// testOptions builds scenes without finding any texture images
func testOptions(t *testing.T) Options {
	t.Helper()
	t.Setenv(loaders.ImagesEnvVar, "")
	opts := DefaultOptions()
	opts.Logger = &recordingLogger{}
	return opts
}

func TestTitleCase(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"cornell-box", "Cornell Box"},
		{"perlin_spheres", "Perlin Spheres"},
		{"final", "Final"},
		{"UPPER-case", "Upper Case"},
		{"", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			result := titleCase(tc.input)
			if result != tc.expected {
				t.Errorf("titleCase(%q) = %q, want %q", tc.input, result, tc.expected)
			}
		})
	}
}

func TestAllScenesBuild(t *testing.T) {
	opts := testOptions(t)

	for _, id := range Names() {
		t.Run(id, func(t *testing.T) {
			s, err := Build(id, opts)
			if err != nil {
				t.Fatalf("Build failed: %v", err)
			}
			if s.World == nil {
				t.Fatal("Scene has no world")
			}
			if !s.World.BoundingBox().IsValid() {
				t.Errorf("Scene bounding box is invalid: %v", s.World.BoundingBox())
			}
			if s.SamplingConfig.SamplesPerPixel < 1 || s.SamplingConfig.MaxDepth < 1 {
				t.Errorf("Invalid sampling config %+v", s.SamplingConfig)
			}
			if s.Background == nil {
				t.Error("Built-in scenes use a fixed background color")
			}

			// The ray toward the look-at point must hit something in every scene
			camera := s.CameraConfig
			ray := core.NewRay(camera.Center, camera.LookAt.Subtract(camera.Center))
			var rec material.HitRecord
			if !s.World.Hit(ray, core.NewInterval(0.001, math.Inf(1)), &rec, core.NewSeededSampler(1)) {
				t.Errorf("Center ray from %v missed the scene", camera.Center)
			}
		})
	}
}

func TestLookup_Unknown(t *testing.T) {
	if _, err := Lookup("no-such-scene"); err == nil {
		t.Error("Expected an error for an unknown scene")
	}
	if _, err := Build("no-such-scene", DefaultOptions()); err == nil {
		t.Error("Expected an error for an unknown scene")
	}
}

func TestDefaultSceneIsRegistered(t *testing.T) {
	if _, err := Lookup(DefaultSceneID); err != nil {
		t.Errorf("Default scene not registered: %v", err)
	}
}

func TestListAllScenes(t *testing.T) {
	response := ListAllScenes()

	total := 0
	for _, group := range response.Groups {
		for _, info := range group.Scenes {
			if info.Group != group.Name {
				t.Errorf("Scene %s listed under %q but belongs to %q", info.ID, group.Name, info.Group)
			}
			if info.DisplayName == "" {
				t.Errorf("Scene %s has no display name", info.ID)
			}
		}
		total += len(group.Scenes)
	}
	if total != len(Names()) {
		t.Errorf("Expected %d scenes, got %d", len(Names()), total)
	}
	if len(Names()) != 9 {
		t.Errorf("Expected 9 built-in scenes, got %d", len(Names()))
	}
}

func TestCameraOverrides(t *testing.T) {
	s := NewCornellScene(testOptions(t), renderer.CameraConfig{Width: 64})

	if s.CameraConfig.Width != 64 {
		t.Errorf("Expected overridden width 64, got %d", s.CameraConfig.Width)
	}
	if s.CameraConfig.VFov != 40 {
		t.Errorf("Expected default vfov 40, got %f", s.CameraConfig.VFov)
	}
	if s.NewCamera().Height() != 64 {
		t.Errorf("Expected square image, got height %d", s.NewCamera().Height())
	}
}

func TestRenderConfig(t *testing.T) {
	s := NewSimpleLightScene(testOptions(t))
	config := s.RenderConfig()

	if config.SamplesPerPixel != 50 || config.MaxDepth != 10 {
		t.Errorf("Expected 50 spp and depth 10, got %d and %d", config.SamplesPerPixel, config.MaxDepth)
	}
	if config.Background == nil || *config.Background != core.NewVec3(0, 0, 0) {
		t.Errorf("Expected a black background, got %v", config.Background)
	}
}

func TestBouncingSpheres_SeedIsDeterministic(t *testing.T) {
	opts := testOptions(t)

	a := NewBouncingSpheresScene(opts).World.BoundingBox()
	b := NewBouncingSpheresScene(opts).World.BoundingBox()
	if a != b {
		t.Errorf("Same seed produced different scenes: %v vs %v", a, b)
	}

	bvh, ok := NewBouncingSpheresScene(opts).World.(*geometry.BVH)
	if !ok {
		t.Fatal("Expected the bouncing spheres world to be a BVH")
	}
	// Ground, three large spheres and up to 22x22 small ones
	shapes := bvh.Stats().TotalShapes
	if shapes < 4 || shapes > 4+22*22 {
		t.Errorf("Unexpected shape count %d", shapes)
	}
}

func TestEarthScene_MissingTextureWarns(t *testing.T) {
	opts := testOptions(t)
	opts.TextureDirs = []string{t.TempDir()}
	logger := opts.Logger.(*recordingLogger)

	NewEarthScene(opts)

	if len(logger.lines) == 0 {
		t.Error("Expected a warning when the earth texture is missing")
	}
}

func TestEarthScene_LoadsTexture(t *testing.T) {
	opts := testOptions(t)
	dir := t.TempDir()
	opts.TextureDirs = []string{dir}
	logger := opts.Logger.(*recordingLogger)

	// Decoding sniffs the content, so a PNG works under the expected name
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	img.SetRGBA(0, 0, color.RGBA{R: 255, A: 255})
	file, err := os.Create(filepath.Join(dir, EarthTextureFile))
	if err != nil {
		t.Fatalf("Failed to create texture: %v", err)
	}
	if err := png.Encode(file, img); err != nil {
		t.Fatalf("Failed to encode texture: %v", err)
	}
	file.Close()

	s := NewEarthScene(opts)
	if len(logger.lines) != 0 {
		t.Errorf("Expected no warnings, got %v", logger.lines)
	}

	// A ray hitting the front of the globe sees the white texture, not the debug color
	var rec material.HitRecord
	ray := core.NewRay(core.NewVec3(0, 0, 12), core.NewVec3(0, 0, -1))
	if !s.World.Hit(ray, core.NewInterval(0.001, math.Inf(1)), &rec, nil) {
		t.Fatal("Expected to hit the globe")
	}
	scatter, ok := rec.Material.Scatter(ray, rec, core.NewSeededSampler(1))
	if !ok {
		t.Fatal("Expected the globe to scatter")
	}
	if scatter.Attenuation != core.NewVec3(1, 1, 1) {
		t.Errorf("Expected white albedo, got %v", scatter.Attenuation)
	}
}

func TestFinalScene_Bounds(t *testing.T) {
	s := NewFinalScene(testOptions(t))
	bbox := s.World.BoundingBox()

	// The mist sphere of radius 5000 encloses everything
	if bbox.X.Min > -4999 || bbox.X.Max < 4999 {
		t.Errorf("Expected the mist to dominate the bounds, got %v", bbox)
	}
	if s.SamplingConfig.SamplesPerPixel != 10000 || s.SamplingConfig.MaxDepth != 40 {
		t.Errorf("Unexpected sampling config %+v", s.SamplingConfig)
	}
}

func TestBackgroundsAreIndependent(t *testing.T) {
	a, b := skyBackground(), skyBackground()
	if a == b {
		t.Fatal("Expected each scene to get its own background value")
	}
	a.X = 0
	if b.X != 0.70 {
		t.Errorf("Changing one background changed another: %v", b)
	}
	if black := blackBackground(); !black.Equals(core.Vec3{}) {
		t.Errorf("Expected black background, got %v", black)
	}
}
