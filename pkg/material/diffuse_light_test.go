package material

import (
	"testing"

	"github.com/df07/go-path-tracer/pkg/core"
)

func TestDiffuseLight_DoesNotScatter(t *testing.T) {
	light := NewDiffuseLight(core.NewVec3(4, 4, 4))
	ray := core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1))
	hit := HitRecord{Point: core.NewVec3(0, 0, 0), Normal: core.NewVec3(0, 0, 1)}

	if _, ok := light.Scatter(ray, hit, core.NewSeededSampler(1)); ok {
		t.Error("DiffuseLight should absorb incoming rays")
	}
}

func TestEmitted(t *testing.T) {
	tests := []struct {
		name     string
		material Material
		expected core.Vec3
	}{
		{"Light", NewDiffuseLight(core.NewVec3(15, 15, 15)), core.NewVec3(15, 15, 15)},
		{"Lambertian", NewLambertian(core.NewVec3(0.5, 0.5, 0.5)), core.Vec3{}},
		{"Metal", NewMetal(core.NewVec3(0.5, 0.5, 0.5), 0), core.Vec3{}},
		{"Dielectric", NewDielectric(1.5), core.Vec3{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Emitted(tt.material, core.NewVec2(0.5, 0.5), core.NewVec3(1, 2, 3))
			if !got.Equals(tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestDiffuseLight_Textured(t *testing.T) {
	light := NewTexturedDiffuseLight(NewCheckerColors(1.0, core.NewVec3(1, 1, 1), core.NewVec3(2, 2, 2)))

	if got := light.Emitted(core.Vec2{}, core.NewVec3(0.5, 0.5, 0.5)); !got.Equals(core.NewVec3(1, 1, 1)) {
		t.Errorf("Expected even emission, got %v", got)
	}
	if got := light.Emitted(core.Vec2{}, core.NewVec3(-0.5, 0.5, 0.5)); !got.Equals(core.NewVec3(2, 2, 2)) {
		t.Errorf("Expected odd emission, got %v", got)
	}
}
