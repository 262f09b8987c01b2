package renderer

import (
	"bytes"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/df07/go-path-tracer/pkg/core"
	"github.com/golang/snappy"
	"github.com/klauspost/compress/zstd"
)

func testFrame() *Frame {
	frame := NewFrame(4, 3)
	for y := 0; y < frame.Height; y++ {
		for x := 0; x < frame.Width; x++ {
			frame.Set(x, y, core.NewVec3(float64(x)/4, float64(y)/3, 0.5))
		}
	}
	return frame
}

func plainPPM(t *testing.T, frame *Frame) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := frame.WritePPM(&buf); err != nil {
		t.Fatalf("WritePPM failed: %v", err)
	}
	return buf.Bytes()
}

func TestFormatForFilename(t *testing.T) {
	tests := []struct {
		filename string
		expected ImageFormat
		wantErr  bool
	}{
		{"out.ppm", FormatPPM, false},
		{"-", FormatPPM, false},
		{"out.ppm.zst", FormatPPMZstd, false},
		{"out.ppm.sz", FormatPPMSnappy, false},
		{"OUT.PNG", FormatPNG, false},
		{"out.jpg", FormatPPM, true},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			got, err := FormatForFilename(tt.filename)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Expected error=%v, got %v", tt.wantErr, err)
			}
			if !tt.wantErr && got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestEncodeFrame_Zstd(t *testing.T) {
	frame := testFrame()
	var buf bytes.Buffer
	if err := EncodeFrame(&buf, frame, FormatPPMZstd); err != nil {
		t.Fatalf("EncodeFrame failed: %v", err)
	}

	decoder, err := zstd.NewReader(&buf)
	if err != nil {
		t.Fatalf("Failed to create zstd reader: %v", err)
	}
	defer decoder.Close()
	decoded, err := io.ReadAll(decoder)
	if err != nil {
		t.Fatalf("Failed to decode zstd stream: %v", err)
	}
	if !bytes.Equal(decoded, plainPPM(t, frame)) {
		t.Error("Decoded zstd output does not match the plain PPM")
	}
}

func TestEncodeFrame_Snappy(t *testing.T) {
	frame := testFrame()
	var buf bytes.Buffer
	if err := EncodeFrame(&buf, frame, FormatPPMSnappy); err != nil {
		t.Fatalf("EncodeFrame failed: %v", err)
	}

	decoded, err := io.ReadAll(snappy.NewReader(&buf))
	if err != nil {
		t.Fatalf("Failed to decode snappy stream: %v", err)
	}
	if !bytes.Equal(decoded, plainPPM(t, frame)) {
		t.Error("Decoded snappy output does not match the plain PPM")
	}
}

func TestSaveFrame_PNG(t *testing.T) {
	frame := testFrame()
	filename := filepath.Join(t.TempDir(), "frame.png")
	if err := SaveFrame(frame, filename); err != nil {
		t.Fatalf("SaveFrame failed: %v", err)
	}

	file, err := os.Open(filename)
	if err != nil {
		t.Fatalf("Failed to open output: %v", err)
	}
	defer file.Close()

	img, err := png.Decode(file)
	if err != nil {
		t.Fatalf("Failed to decode PNG: %v", err)
	}
	if img.Bounds().Dx() != 4 || img.Bounds().Dy() != 3 {
		t.Errorf("Unexpected PNG bounds %v", img.Bounds())
	}
}

func TestSaveFrame_PPM(t *testing.T) {
	frame := testFrame()
	filename := filepath.Join(t.TempDir(), "frame.ppm")
	if err := SaveFrame(frame, filename); err != nil {
		t.Fatalf("SaveFrame failed: %v", err)
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	if !bytes.Equal(data, plainPPM(t, frame)) {
		t.Error("Saved PPM does not match WritePPM output")
	}
}

func TestSaveFrame_UnsupportedFormat(t *testing.T) {
	if err := SaveFrame(testFrame(), filepath.Join(t.TempDir(), "frame.gif")); err == nil {
		t.Error("Expected an error for an unsupported extension")
	}
}
