package loaders

import (
	"fmt"
	"image"
	_ "image/gif"  // GIF decoder
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"os"
	"path/filepath"

	"github.com/df07/go-path-tracer/pkg/core"
	"github.com/df07/go-path-tracer/pkg/material"
	_ "golang.org/x/image/bmp"  // BMP decoder
	_ "golang.org/x/image/tiff" // TIFF decoder
	_ "golang.org/x/image/webp" // WebP decoder
)

// ImagesEnvVar names a directory searched first for texture images
const ImagesEnvVar = "RTW_IMAGES"

// ImageData contains loaded image data as Vec3 color array
type ImageData struct {
	Width  int
	Height int
	Pixels []core.Vec3 // Row-major, top row first
}

// LoadImage loads an image and converts it to a Vec3 color array
// Channels are quantized to 8 bits and normalized to [0, 1]
func LoadImage(filename string) (*ImageData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	// Decode image (auto-detects the format from the file header)
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", filename, err)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	pixels := make([]core.Vec3, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			// RGBA returns uint32 in [0, 65535]; keep the high byte
			pixels[y*width+x] = core.NewVec3(
				float64(r>>8)/255.0,
				float64(g>>8)/255.0,
				float64(b>>8)/255.0,
			)
		}
	}

	return &ImageData{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}, nil
}

// FindImage locates filename, trying the RTW_IMAGES directory, then each
// search directory, then the working directory and up to six parents' images/ folders
func FindImage(filename string, searchDirs ...string) (string, error) {
	var candidates []string
	if dir := os.Getenv(ImagesEnvVar); dir != "" {
		candidates = append(candidates, filepath.Join(dir, filename))
	}
	for _, dir := range searchDirs {
		if dir != "" {
			candidates = append(candidates, filepath.Join(dir, filename))
		}
	}
	candidates = append(candidates, filename)

	prefix := "images"
	for i := 0; i < 7; i++ {
		candidates = append(candidates, filepath.Join(prefix, filename))
		prefix = filepath.Join("..", prefix)
	}

	for _, candidate := range candidates {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("image %q not found: %w", filename, os.ErrNotExist)
}

// LoadImageTexture finds and loads filename as a texture
// On failure it logs a warning and returns an empty texture, which renders as the debug color
func LoadImageTexture(filename string, logger core.Logger, searchDirs ...string) *material.ImageTexture {
	path, err := FindImage(filename, searchDirs...)
	if err == nil {
		var data *ImageData
		data, err = LoadImage(path)
		if err == nil {
			return material.NewImageTexture(data.Width, data.Height, data.Pixels)
		}
	}

	if logger != nil {
		logger.Printf("Warning: could not load texture %s: %v\n", filename, err)
	}
	return material.NewImageTexture(0, 0, nil)
}
