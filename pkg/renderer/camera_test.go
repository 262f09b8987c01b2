package renderer

import (
	"math"
	"testing"

	"github.com/df07/go-path-tracer/pkg/core"
)

// fixedSampler always returns the same value, centering pixel samples
type fixedSampler struct{ value float64 }

func (f fixedSampler) Get1D() float64 { return f.value }
func (f fixedSampler) Get2D() core.Vec2 {
	return core.NewVec2(f.value, f.value)
}
func (f fixedSampler) Get3D() core.Vec3 {
	return core.NewVec3(f.value, f.value, f.value)
}

func TestCameraGetCameraForward(t *testing.T) {
	config := CameraConfig{
		Center:        core.NewVec3(0, 0, 0),
		LookAt:        core.NewVec3(0, 0, -1),
		Up:            core.NewVec3(0, 1, 0),
		Width:         400,
		AspectRatio:   1.0,
		VFov:          45.0,
		FocusDistance: 10,
	}
	camera := NewCamera(config)

	forward := camera.GetCameraForward()
	expected := core.NewVec3(0, 0, -1)

	if math.Abs(forward.X-expected.X) > 1e-6 ||
		math.Abs(forward.Y-expected.Y) > 1e-6 ||
		math.Abs(forward.Z-expected.Z) > 1e-6 {
		t.Errorf("Expected forward direction %v, got %v", expected, forward)
	}
}

func TestCameraImageHeight(t *testing.T) {
	tests := []struct {
		name        string
		width       int
		aspectRatio float64
		expected    int
	}{
		{"widescreen", 400, 16.0 / 9.0, 225},
		{"square", 600, 1.0, 600},
		{"truncates", 101, 2.0, 50},
		{"at least one row", 2, 16.0 / 9.0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultCameraConfig()
			config.Width = tt.width
			config.AspectRatio = tt.aspectRatio
			camera := NewCamera(config)

			if camera.Width() != tt.width {
				t.Errorf("Expected width %d, got %d", tt.width, camera.Width())
			}
			if camera.Height() != tt.expected {
				t.Errorf("Expected height %d, got %d", tt.expected, camera.Height())
			}
		})
	}
}

func TestCameraGetRay_CenterPixel(t *testing.T) {
	config := CameraConfig{
		Center:        core.NewVec3(0, 0, 0),
		LookAt:        core.NewVec3(0, 0, -1),
		Up:            core.NewVec3(0, 1, 0),
		Width:         101,
		AspectRatio:   1.0,
		VFov:          90,
		FocusDistance: 1,
	}
	camera := NewCamera(config)

	// A 0.5 sample hits the exact center of pixel (50, 50), the middle of the image
	ray := camera.GetRay(50, 50, fixedSampler{0.5})
	direction := ray.Direction.Normalize()

	if math.Abs(direction.X) > 1e-9 || math.Abs(direction.Y) > 1e-9 || math.Abs(direction.Z+1) > 1e-9 {
		t.Errorf("Expected center ray along -Z, got %v", direction)
	}
	if ray.Origin != config.Center {
		t.Errorf("Pinhole camera ray should start at the center, got %v", ray.Origin)
	}
	if ray.Time != 0.5 {
		t.Errorf("Expected ray time 0.5 from the sampler, got %f", ray.Time)
	}
}

func TestCameraGetRay_Orientation(t *testing.T) {
	config := CameraConfig{
		Center:        core.NewVec3(0, 0, 0),
		LookAt:        core.NewVec3(0, 0, -1),
		Up:            core.NewVec3(0, 1, 0),
		Width:         100,
		AspectRatio:   1.0,
		VFov:          90,
		FocusDistance: 1,
	}
	camera := NewCamera(config)
	sampler := fixedSampler{0.5}

	topLeft := camera.GetRay(0, 0, sampler).Direction
	bottomRight := camera.GetRay(99, 99, sampler).Direction

	if topLeft.X >= 0 || topLeft.Y <= 0 {
		t.Errorf("Pixel (0,0) should look up and to the left, got %v", topLeft)
	}
	if bottomRight.X <= 0 || bottomRight.Y >= 0 {
		t.Errorf("Last pixel should look down and to the right, got %v", bottomRight)
	}

	// With a 90 degree FOV and focus distance 1, the viewport spans [-1, 1]
	expectedX := -1 + 0.5*(2.0/100.0)
	if math.Abs(topLeft.X-expectedX) > 1e-9 {
		t.Errorf("Expected top-left X %f, got %f", expectedX, topLeft.X)
	}
}

func TestCameraGetRay_Defocus(t *testing.T) {
	config := DefaultCameraConfig()
	config.Width = 64
	config.AspectRatio = 1.0
	config.DefocusAngle = 10
	config.FocusDistance = 5
	camera := NewCamera(config)

	sampler := core.NewSeededSampler(7)
	radius := config.FocusDistance * math.Tan(core.DegreesToRadians(config.DefocusAngle/2))

	moved := false
	for i := 0; i < 100; i++ {
		ray := camera.GetRay(32, 32, sampler)
		offset := ray.Origin.Subtract(config.Center)
		if offset.Length() > radius+1e-9 {
			t.Fatalf("Ray origin %v outside the defocus disk of radius %f", ray.Origin, radius)
		}
		if math.Abs(offset.Z) > 1e-9 {
			t.Fatalf("Defocus disk should be perpendicular to the view direction, got offset %v", offset)
		}
		if offset.Length() > 1e-6 {
			moved = true
		}
	}
	if !moved {
		t.Error("Expected at least one ray origin off the camera center")
	}
}

func TestMergeCameraConfig(t *testing.T) {
	base := DefaultCameraConfig()
	override := CameraConfig{Width: 800, VFov: 20, Center: core.NewVec3(13, 2, 3)}

	merged := MergeCameraConfig(base, override)

	if merged.Width != 800 || merged.VFov != 20 {
		t.Errorf("Expected overridden width and fov, got %d and %f", merged.Width, merged.VFov)
	}
	if merged.Center != core.NewVec3(13, 2, 3) {
		t.Errorf("Expected overridden center, got %v", merged.Center)
	}
	if merged.LookAt != base.LookAt || merged.Up != base.Up {
		t.Error("Zero-valued override fields should keep the base values")
	}
	if merged.AspectRatio != base.AspectRatio || merged.FocusDistance != base.FocusDistance {
		t.Error("Zero-valued override fields should keep the base values")
	}
}
