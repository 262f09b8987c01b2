package renderer

import (
	"fmt"
	"image/png"
	"io"
	"os"
	"strings"

	"github.com/golang/snappy"
	"github.com/klauspost/compress/zstd"
)

// ImageFormat identifies an output encoding
type ImageFormat int

const (
	FormatPPM       ImageFormat = iota // ASCII PPM
	FormatPPMZstd                      // ASCII PPM in a zstd stream
	FormatPPMSnappy                    // ASCII PPM in a snappy framed stream
	FormatPNG                          // 8-bit PNG
)

// String returns the canonical file extension for the format
func (f ImageFormat) String() string {
	switch f {
	case FormatPPMZstd:
		return ".ppm.zst"
	case FormatPPMSnappy:
		return ".ppm.sz"
	case FormatPNG:
		return ".png"
	default:
		return ".ppm"
	}
}

// FormatForFilename picks an output format from the file extension
func FormatForFilename(filename string) (ImageFormat, error) {
	lower := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(lower, ".ppm.zst"), strings.HasSuffix(lower, ".zst"):
		return FormatPPMZstd, nil
	case strings.HasSuffix(lower, ".ppm.sz"), strings.HasSuffix(lower, ".sz"):
		return FormatPPMSnappy, nil
	case strings.HasSuffix(lower, ".png"):
		return FormatPNG, nil
	case strings.HasSuffix(lower, ".ppm"), filename == "-":
		return FormatPPM, nil
	default:
		return FormatPPM, fmt.Errorf("unsupported output format: %s", filename)
	}
}

// nopCloser wraps a writer whose lifetime is owned elsewhere
type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// NewImageWriter wraps w in the compression stream for format
// Closing the returned writer flushes the stream but does not close w
func NewImageWriter(w io.Writer, format ImageFormat) (io.WriteCloser, error) {
	switch format {
	case FormatPPMZstd:
		encoder, err := zstd.NewWriter(w)
		if err != nil {
			return nil, fmt.Errorf("failed to create zstd writer: %w", err)
		}
		return encoder, nil
	case FormatPPMSnappy:
		return snappy.NewBufferedWriter(w), nil
	default:
		return nopCloser{w}, nil
	}
}

// EncodeFrame writes frame to w in the given format
func EncodeFrame(w io.Writer, frame *Frame, format ImageFormat) error {
	if format == FormatPNG {
		if err := png.Encode(w, frame.ToImage()); err != nil {
			return fmt.Errorf("failed to encode PNG: %w", err)
		}
		return nil
	}

	stream, err := NewImageWriter(w, format)
	if err != nil {
		return err
	}
	if err := frame.WritePPM(stream); err != nil {
		stream.Close()
		return err
	}
	if err := stream.Close(); err != nil {
		return fmt.Errorf("failed to finish %s stream: %w", format, err)
	}
	return nil
}

// SaveFrame writes frame to filename, choosing the format from its extension
// A filename of "-" writes PPM to stdout
func SaveFrame(frame *Frame, filename string) error {
	format, err := FormatForFilename(filename)
	if err != nil {
		return err
	}

	if filename == "-" {
		return EncodeFrame(os.Stdout, frame, format)
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := EncodeFrame(file, frame, format); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}
	return nil
}
