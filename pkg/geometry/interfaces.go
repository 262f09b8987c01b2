package geometry

import (
	"github.com/df07/go-path-tracer/pkg/core"
	"github.com/df07/go-path-tracer/pkg/material"
)

// Hittable interface for objects that can be hit by rays
//
// Hit reports the nearest intersection with t inside rayT and fills rec.
// On a miss rec is left untouched. The sampler is only consumed by
// objects with stochastic intersections such as participating media.
type Hittable interface {
	Hit(ray core.Ray, rayT core.Interval, rec *material.HitRecord, sampler core.Sampler) bool
	BoundingBox() core.AABB
}
