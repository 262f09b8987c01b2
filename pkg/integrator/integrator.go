package integrator

import (
	"github.com/df07/go-path-tracer/pkg/core"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor computes the radiance arriving along ray, following at most depth bounces
	RayColor(ray core.Ray, depth int, sampler core.Sampler) core.Vec3
}
