package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-path-tracer/pkg/core"
	"github.com/df07/go-path-tracer/pkg/material"
	"gonum.org/v1/gonum/stat"
)

func TestConstantMedium_ScatterDistance(t *testing.T) {
	boundary := NewSphere(core.NewVec3(0, 0, 0), 1000, DummyMaterial{})
	density := 0.5
	medium := NewConstantMedium(boundary, density, core.NewVec3(1, 1, 1))
	sampler := core.NewSeededSampler(42)

	// Start at the center, looking along +X: free path lengths are exponential with mean 1/density
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0))
	distances := make([]float64, 0, 5000)
	for i := 0; i < 5000; i++ {
		var rec material.HitRecord
		if !medium.Hit(ray, hitRange, &rec, sampler) {
			continue
		}
		distances = append(distances, rec.T)
	}

	if len(distances) < 4900 {
		t.Fatalf("Expected nearly every ray to scatter in a thick medium, got %d", len(distances))
	}
	mean, std := stat.MeanStdDev(distances, nil)
	if math.Abs(mean-1/density) > 0.1 {
		t.Errorf("Expected mean free path %f, got %f", 1/density, mean)
	}
	if math.Abs(std-1/density) > 0.15 {
		t.Errorf("Expected std dev %f, got %f", 1/density, std)
	}
}

func TestConstantMedium_ThinMediumRarelyScatters(t *testing.T) {
	boundary := NewBox(core.NewVec3(-1, -1, -1), core.NewVec3(1, 1, 1), DummyMaterial{})
	sampler := core.NewSeededSampler(7)

	hitRate := func(density float64) float64 {
		medium := NewConstantMedium(boundary, density, core.NewVec3(1, 1, 1))
		ray := core.NewRay(core.NewVec3(0, 0, 10), core.NewVec3(0, 0, -1))
		hits := 0
		for i := 0; i < 10000; i++ {
			var rec material.HitRecord
			if medium.Hit(ray, hitRange, &rec, sampler) {
				hits++
			}
		}
		return float64(hits) / 10000
	}

	// Probability of scattering over a 2 unit chord is 1 - exp(-2*density)
	for _, density := range []float64{0.0001, 0.01, 0.5} {
		expected := 1 - math.Exp(-2*density)
		got := hitRate(density)
		if math.Abs(got-expected) > 0.02 {
			t.Errorf("density %f: expected hit rate %f, got %f", density, expected, got)
		}
	}
}

func TestConstantMedium_HitRecord(t *testing.T) {
	boundary := NewSphere(core.NewVec3(0, 0, 0), 1, DummyMaterial{})
	medium := NewConstantMedium(boundary, 1e6, core.NewVec3(0.2, 0.3, 0.4))

	var rec material.HitRecord
	ray := core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -2))
	if !medium.Hit(ray, hitRange, &rec, core.NewSeededSampler(1)) {
		t.Fatal("Expected a very dense medium to scatter")
	}

	// Scatters right at the entry point z=1, t=2
	if rec.T < 2 || rec.T > 2.001 {
		t.Errorf("Expected t just past 2, got %f", rec.T)
	}
	if !rec.FrontFace || !rec.Normal.Equals(core.NewVec3(1, 0, 0)) {
		t.Errorf("Expected arbitrary front-facing +X normal, got %v front=%v", rec.Normal, rec.FrontFace)
	}
	if _, ok := rec.Material.(*material.Isotropic); !ok {
		t.Errorf("Expected isotropic phase function, got %T", rec.Material)
	}
}

func TestConstantMedium_RespectsInterval(t *testing.T) {
	boundary := NewSphere(core.NewVec3(0, 0, 0), 1, DummyMaterial{})
	medium := NewConstantMedium(boundary, 1e6, core.NewVec3(1, 1, 1))
	ray := core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1))

	var rec material.HitRecord
	// Interval ends before the medium starts
	if medium.Hit(ray, core.NewInterval(0.001, 3.5), &rec, core.NewSeededSampler(1)) {
		t.Error("Expected miss when the interval ends before the medium")
	}

	// Interval starts inside the medium: scattering begins there
	if !medium.Hit(ray, core.NewInterval(5, 100), &rec, core.NewSeededSampler(1)) {
		t.Fatal("Expected hit when starting inside a dense medium")
	}
	if rec.T < 5 || rec.T > 5.001 {
		t.Errorf("Expected t just past 5, got %f", rec.T)
	}

	// Missing the boundary entirely
	if medium.Hit(core.NewRay(core.NewVec3(5, 5, 5), core.NewVec3(0, 0, -1)), hitRange, &rec, core.NewSeededSampler(1)) {
		t.Error("Expected miss for a ray that never enters the boundary")
	}
}

func TestConstantMedium_BoundingBox(t *testing.T) {
	boundary := NewSphere(core.NewVec3(1, 2, 3), 2, DummyMaterial{})
	medium := NewConstantMedium(boundary, 0.1, core.NewVec3(1, 1, 1))
	if medium.BoundingBox() != boundary.BoundingBox() {
		t.Error("Medium should report its boundary's box")
	}
}
