package integrator

import (
	"math"

	"github.com/df07/go-path-tracer/pkg/core"
	"github.com/df07/go-path-tracer/pkg/geometry"
	"github.com/df07/go-path-tracer/pkg/material"
)

// shadowAcneEpsilon keeps scattered rays from re-hitting their own surface
const shadowAcneEpsilon = 0.001

var (
	skyHorizon = core.NewVec3(1.0, 1.0, 1.0)
	skyZenith  = core.NewVec3(0.5, 0.7, 1.0)
)

// PathTracingIntegrator implements unidirectional path tracing with material sampling only
type PathTracingIntegrator struct {
	World      geometry.Hittable
	Background *core.Vec3 // nil selects the sky gradient
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(world geometry.Hittable, background *core.Vec3) *PathTracingIntegrator {
	return &PathTracingIntegrator{
		World:      world,
		Background: background,
	}
}

// RayColor computes the color for a single ray using unidirectional path tracing
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, depth int, sampler core.Sampler) core.Vec3 {
	// If we've exceeded the ray bounce limit, no more light is gathered
	if depth <= 0 {
		return core.Vec3{}
	}

	var hit material.HitRecord
	if !pt.World.Hit(ray, core.NewInterval(shadowAcneEpsilon, math.Inf(1)), &hit, sampler) {
		return pt.BackgroundColor(ray)
	}

	colorEmitted := material.Emitted(hit.Material, hit.UV, hit.Point)

	scatter, didScatter := hit.Material.Scatter(ray, hit, sampler)
	if !didScatter {
		// Material absorbed the ray, only return emitted light
		return colorEmitted
	}

	colorScattered := scatter.Attenuation.MultiplyVec(pt.RayColor(scatter.Scattered, depth-1, sampler))
	return colorEmitted.Add(colorScattered)
}

// BackgroundColor returns the color seen by a ray that escapes the scene
func (pt *PathTracingIntegrator) BackgroundColor(ray core.Ray) core.Vec3 {
	if pt.Background != nil {
		return *pt.Background
	}

	unitDirection := ray.Direction.Normalize()
	a := 0.5 * (unitDirection.Y + 1.0)
	return skyHorizon.Lerp(skyZenith, a)
}
