package geometry

import (
	"math"

	"github.com/df07/go-path-tracer/pkg/core"
	"github.com/df07/go-path-tracer/pkg/material"
)

// mediumExitEpsilon separates the entry and exit searches through the boundary
const mediumExitEpsilon = 0.0001

// ConstantMedium is a volume of uniform density fog bounded by a closed object
type ConstantMedium struct {
	Boundary      Hittable
	PhaseFunction material.Material
	negInvDensity float64
}

// NewConstantMedium creates a medium inside boundary with the given density and isotropic color
func NewConstantMedium(boundary Hittable, density float64, albedo core.Vec3) *ConstantMedium {
	return NewTexturedConstantMedium(boundary, density, material.NewSolidColor(albedo))
}

// NewTexturedConstantMedium creates a medium whose phase function albedo comes from a texture
func NewTexturedConstantMedium(boundary Hittable, density float64, albedo material.ColorSource) *ConstantMedium {
	return &ConstantMedium{
		Boundary:      boundary,
		PhaseFunction: material.NewTexturedIsotropic(albedo),
		negInvDensity: -1.0 / density,
	}
}

// Hit samples a scattering distance inside the boundary
// The boundary is assumed convex: the ray enters at most once
func (m *ConstantMedium) Hit(ray core.Ray, rayT core.Interval, rec *material.HitRecord, sampler core.Sampler) bool {
	var rec1, rec2 material.HitRecord

	if !m.Boundary.Hit(ray, core.UniverseInterval, &rec1, sampler) {
		return false
	}
	if !m.Boundary.Hit(ray, core.NewInterval(rec1.T+mediumExitEpsilon, math.Inf(1)), &rec2, sampler) {
		return false
	}

	t1 := math.Max(rec1.T, rayT.Min)
	t2 := math.Min(rec2.T, rayT.Max)
	if t1 >= t2 {
		return false
	}
	if t1 < 0 {
		t1 = 0
	}

	rayLength := ray.Direction.Length()
	distanceInsideBoundary := (t2 - t1) * rayLength
	hitDistance := m.negInvDensity * math.Log(sampler.Get1D())

	if hitDistance > distanceInsideBoundary {
		return false
	}

	rec.T = t1 + hitDistance/rayLength
	rec.Point = ray.At(rec.T)
	// Normal and face are arbitrary inside a volume
	rec.Normal = core.NewVec3(1, 0, 0)
	rec.FrontFace = true
	rec.UV = core.Vec2{}
	rec.Material = m.PhaseFunction

	return true
}

// BoundingBox returns the boundary's box
func (m *ConstantMedium) BoundingBox() core.AABB {
	return m.Boundary.BoundingBox()
}
