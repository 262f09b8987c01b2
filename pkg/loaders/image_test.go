package loaders

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/df07/go-path-tracer/pkg/core"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// testImage returns a 2x2 image: white, red / green, blue
func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	img.Set(1, 0, color.RGBA{R: 255, G: 0, B: 0, A: 255})
	img.Set(0, 1, color.RGBA{R: 0, G: 255, B: 0, A: 255})
	img.Set(1, 1, color.RGBA{R: 0, G: 0, B: 255, A: 255})
	return img
}

func writeImage(t *testing.T, path string, encode func(io.Writer, image.Image) error) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	defer f.Close()
	if err := encode(f, testImage()); err != nil {
		t.Fatalf("Failed to encode %s: %v", path, err)
	}
}

// TestLoadImage writes the test image in each supported format and verifies loading
func TestLoadImage(t *testing.T) {
	tests := []struct {
		name   string
		file   string
		encode func(io.Writer, image.Image) error
	}{
		{"PNG", "test.png", png.Encode},
		{"BMP", "test.bmp", bmp.Encode},
		{"TIFF", "test.tiff", func(w io.Writer, m image.Image) error { return tiff.Encode(w, m, nil) }},
	}

	white := core.NewVec3(1.0, 1.0, 1.0)
	red := core.NewVec3(1.0, 0.0, 0.0)
	green := core.NewVec3(0.0, 1.0, 0.0)
	blue := core.NewVec3(0.0, 0.0, 1.0)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testFile := filepath.Join(t.TempDir(), tt.file)
			writeImage(t, testFile, tt.encode)

			imageData, err := LoadImage(testFile)
			if err != nil {
				t.Fatalf("LoadImage failed: %v", err)
			}

			if imageData.Width != 2 || imageData.Height != 2 {
				t.Fatalf("Expected 2x2 image, got %dx%d", imageData.Width, imageData.Height)
			}
			if len(imageData.Pixels) != 4 {
				t.Fatalf("Expected 4 pixels, got %d", len(imageData.Pixels))
			}

			// Row-major, top row first
			for i, expected := range []core.Vec3{white, red, green, blue} {
				if !imageData.Pixels[i].Equals(expected) {
					t.Errorf("Pixel %d: expected %v, got %v", i, expected, imageData.Pixels[i])
				}
			}
		})
	}
}

func TestLoadImage_EightBitQuantization(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.RGBA{R: 128, G: 64, B: 1, A: 255})
	testFile := filepath.Join(t.TempDir(), "gray.png")
	writeImage(t, testFile, func(w io.Writer, _ image.Image) error { return png.Encode(w, img) })

	data, err := LoadImage(testFile)
	if err != nil {
		t.Fatalf("LoadImage failed: %v", err)
	}
	expected := core.NewVec3(128.0/255.0, 64.0/255.0, 1.0/255.0)
	if !data.Pixels[0].Equals(expected) {
		t.Errorf("Expected %v, got %v", expected, data.Pixels[0])
	}
}

// TestLoadImageNotFound verifies error handling for missing files
func TestLoadImageNotFound(t *testing.T) {
	_, err := LoadImage("nonexistent.png")
	if err == nil {
		t.Fatal("Expected error for non-existent file, got nil")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected wrapped os.ErrNotExist, got %v", err)
	}
}

func TestLoadImageNotAnImage(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "notes.png")
	if err := os.WriteFile(testFile, []byte("definitely not a png"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadImage(testFile); err == nil {
		t.Error("Expected decode error")
	}
}

func TestFindImage(t *testing.T) {
	envDir := t.TempDir()
	searchDir := t.TempDir()
	writeImage(t, filepath.Join(envDir, "env.png"), png.Encode)
	writeImage(t, filepath.Join(searchDir, "search.png"), png.Encode)
	writeImage(t, filepath.Join(searchDir, "env.png"), png.Encode)

	t.Setenv(ImagesEnvVar, envDir)

	path, err := FindImage("env.png", searchDir)
	if err != nil {
		t.Fatalf("FindImage failed: %v", err)
	}
	if path != filepath.Join(envDir, "env.png") {
		t.Errorf("Expected environment directory to win, got %s", path)
	}

	path, err = FindImage("search.png", searchDir)
	if err != nil {
		t.Fatalf("FindImage failed: %v", err)
	}
	if path != filepath.Join(searchDir, "search.png") {
		t.Errorf("Expected search directory match, got %s", path)
	}

	if _, err := FindImage("missing-texture.png", searchDir); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected os.ErrNotExist, got %v", err)
	}
}

type recordingLogger struct {
	lines []string
}

func (l *recordingLogger) Printf(format string, args ...interface{}) {
	l.lines = append(l.lines, format)
}

func TestLoadImageTexture(t *testing.T) {
	dir := t.TempDir()
	writeImage(t, filepath.Join(dir, "tex.png"), png.Encode)
	t.Setenv(ImagesEnvVar, "")

	logger := &recordingLogger{}
	texture := LoadImageTexture("tex.png", logger, dir)
	if texture.Width != 2 || texture.Height != 2 {
		t.Errorf("Expected 2x2 texture, got %dx%d", texture.Width, texture.Height)
	}
	if len(logger.lines) != 0 {
		t.Errorf("Expected no warnings, got %v", logger.lines)
	}

	missing := LoadImageTexture("no-such-texture.png", logger, dir)
	if got := missing.Evaluate(core.NewVec2(0.5, 0.5), core.Vec3{}); !got.Equals(core.NewVec3(0, 1, 1)) {
		t.Errorf("Expected debug color for missing texture, got %v", got)
	}
	if len(logger.lines) != 1 {
		t.Errorf("Expected one warning, got %d", len(logger.lines))
	}
}
