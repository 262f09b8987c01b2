package geometry

import (
	"github.com/df07/go-path-tracer/pkg/core"
	"github.com/df07/go-path-tracer/pkg/material"
	"gonum.org/v1/gonum/spatial/r3"
)

// Translate moves a wrapped object by a fixed offset
type Translate struct {
	Object Hittable
	Offset core.Vec3
	bbox   core.AABB
}

// NewTranslate wraps object so it appears displaced by offset
func NewTranslate(object Hittable, offset core.Vec3) *Translate {
	return &Translate{
		Object: object,
		Offset: offset,
		bbox:   object.BoundingBox().Add(offset),
	}
}

// Hit moves the ray into object space, intersects, and moves the hit point back
func (t *Translate) Hit(ray core.Ray, rayT core.Interval, rec *material.HitRecord, sampler core.Sampler) bool {
	offsetRay := core.NewRayAtTime(ray.Origin.Subtract(t.Offset), ray.Direction, ray.Time)

	if !t.Object.Hit(offsetRay, rayT, rec, sampler) {
		return false
	}

	rec.Point = rec.Point.Add(t.Offset)
	return true
}

// BoundingBox returns the wrapped object's box shifted by the offset
func (t *Translate) BoundingBox() core.AABB {
	return t.bbox
}

// yAxis is the rotation axis for RotateY
var yAxis = r3.Vec{X: 0, Y: 1, Z: 0}

// RotateY rotates a wrapped object about the world Y axis
type RotateY struct {
	Object   Hittable
	Degrees  float64
	toWorld  r3.Rotation
	toObject r3.Rotation
	bbox     core.AABB
}

// NewRotateY wraps object so it appears rotated by angle degrees about the Y axis
func NewRotateY(object Hittable, angle float64) *RotateY {
	radians := core.DegreesToRadians(angle)
	r := &RotateY{
		Object:   object,
		Degrees:  angle,
		toWorld:  r3.NewRotation(radians, yAxis),
		toObject: r3.NewRotation(-radians, yAxis),
	}

	// Bound the rotated corners of the object's box
	corners := object.BoundingBox().Corners()
	var rotated [8]core.Vec3
	for i, corner := range corners {
		rotated[i] = r.objectToWorld(corner)
	}
	r.bbox = core.NewAABBFromPoints(rotated[:]...)

	return r
}

func (r *RotateY) objectToWorld(v core.Vec3) core.Vec3 {
	return core.FromR3(r.toWorld.Rotate(v.R3()))
}

func (r *RotateY) worldToObject(v core.Vec3) core.Vec3 {
	return core.FromR3(r.toObject.Rotate(v.R3()))
}

// Hit rotates the ray into object space, intersects, and rotates the hit back to world space
func (r *RotateY) Hit(ray core.Ray, rayT core.Interval, rec *material.HitRecord, sampler core.Sampler) bool {
	rotatedRay := core.NewRayAtTime(r.worldToObject(ray.Origin), r.worldToObject(ray.Direction), ray.Time)

	if !r.Object.Hit(rotatedRay, rayT, rec, sampler) {
		return false
	}

	// Rotation preserves t and front-face orientation
	rec.Point = r.objectToWorld(rec.Point)
	rec.Normal = r.objectToWorld(rec.Normal)
	return true
}

// BoundingBox returns the box around the rotated object's box
func (r *RotateY) BoundingBox() core.AABB {
	return r.bbox
}
