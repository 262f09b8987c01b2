package renderer

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"io"
	"math"

	"github.com/df07/go-path-tracer/pkg/core"
)

// Frame holds averaged linear radiance per pixel, row-major with the top row first
type Frame struct {
	Width  int
	Height int
	Pixels []core.Vec3
}

// NewFrame creates a black frame
func NewFrame(width, height int) *Frame {
	return &Frame{
		Width:  width,
		Height: height,
		Pixels: make([]core.Vec3, width*height),
	}
}

// Set stores the color of pixel (x, y)
func (f *Frame) Set(x, y int, c core.Vec3) {
	f.Pixels[y*f.Width+x] = c
}

// At returns the color of pixel (x, y)
func (f *Frame) At(x, y int) core.Vec3 {
	return f.Pixels[y*f.Width+x]
}

// intensity is the range quantized colors are clamped to
var intensity = core.NewInterval(0.000, 0.999)

// linearToGamma applies gamma 2; non-positive values map to 0
func linearToGamma(linear float64) float64 {
	if linear > 0 {
		return math.Sqrt(linear)
	}
	return 0
}

// ToByte converts a linear color channel to an 8-bit value in [0, 255]
func ToByte(linear float64) int {
	return int(256 * intensity.Clamp(linearToGamma(linear)))
}

// ToRGBA converts a linear color to a gamma-corrected 8-bit color
func ToRGBA(c core.Vec3) color.RGBA {
	return color.RGBA{
		R: uint8(ToByte(c.X)),
		G: uint8(ToByte(c.Y)),
		B: uint8(ToByte(c.Z)),
		A: 255,
	}
}

// ToImage converts the frame to an 8-bit RGBA image
func (f *Frame) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			img.SetRGBA(x, y, ToRGBA(f.At(x, y)))
		}
	}
	return img
}

// WritePPM writes the frame as an ASCII (P3) PPM image
func (f *Frame) WritePPM(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", f.Width, f.Height); err != nil {
		return fmt.Errorf("failed to write PPM header: %w", err)
	}
	for _, c := range f.Pixels {
		if _, err := fmt.Fprintf(bw, "%d %d %d\n", ToByte(c.X), ToByte(c.Y), ToByte(c.Z)); err != nil {
			return fmt.Errorf("failed to write PPM pixel: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush PPM output: %w", err)
	}
	return nil
}

// Luminances returns the luminance of every pixel in row-major order
func (f *Frame) Luminances() []float64 {
	values := make([]float64, len(f.Pixels))
	for i, c := range f.Pixels {
		values[i] = c.Luminance()
	}
	return values
}
