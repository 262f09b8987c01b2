package renderer

import (
	"math"
	"testing"
	"time"

	"github.com/df07/go-path-tracer/pkg/core"
)

func TestPixelStats(t *testing.T) {
	var ps PixelStats
	if ps.GetColor() != (core.Vec3{}) {
		t.Errorf("Expected black for an empty pixel, got %v", ps.GetColor())
	}

	ps.AddSample(core.NewVec3(1, 0, 0))
	ps.AddSample(core.NewVec3(0, 1, 0))

	expected := core.NewVec3(0.5, 0.5, 0)
	if ps.GetColor() != expected {
		t.Errorf("Expected %v, got %v", expected, ps.GetColor())
	}
	if ps.SampleCount != 2 {
		t.Errorf("Expected 2 samples, got %d", ps.SampleCount)
	}
}

func TestRenderStats_TileDurationStats(t *testing.T) {
	tests := []struct {
		name         string
		durations    []time.Duration
		expectedMean float64
		expectedStd  float64
	}{
		{"no tiles", nil, 0, 0},
		{"single tile", []time.Duration{2 * time.Second}, 2, 0},
		{"uniform", []time.Duration{time.Second, time.Second, time.Second}, 1, 0},
		{"spread", []time.Duration{time.Second, 3 * time.Second}, 2, math.Sqrt2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stats RenderStats
			for i, d := range tt.durations {
				stats.Tiles = append(stats.Tiles, TileStats{ID: i, Duration: d})
			}

			mean, std := stats.TileDurationStats()
			if math.Abs(mean-tt.expectedMean) > 1e-9 {
				t.Errorf("Expected mean %f, got %f", tt.expectedMean, mean)
			}
			if math.Abs(std-tt.expectedStd) > 1e-9 {
				t.Errorf("Expected std %f, got %f", tt.expectedStd, std)
			}
		})
	}
}

func TestRenderStats_SamplesPerSecond(t *testing.T) {
	stats := RenderStats{TotalSamples: 1000, Elapsed: 2 * time.Second}
	if got := stats.SamplesPerSecond(); got != 500 {
		t.Errorf("Expected 500 samples/sec, got %f", got)
	}

	if got := (RenderStats{TotalSamples: 10}).SamplesPerSecond(); got != 0 {
		t.Errorf("Expected 0 with no elapsed time, got %f", got)
	}
}
