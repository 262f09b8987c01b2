package geometry

import (
	"sort"

	"github.com/df07/go-path-tracer/pkg/core"
	"github.com/df07/go-path-tracer/pkg/material"
)

// BVHNode represents a node in the Bounding Volume Hierarchy
type BVHNode struct {
	BoundingBox core.AABB
	Left        *BVHNode
	Right       *BVHNode
	Shapes      []Hittable // One or two objects for leaf nodes (nil for internal nodes)
}

// BVH represents a Bounding Volume Hierarchy for fast ray-object intersection
type BVH struct {
	Root *BVHNode
}

// Leaf threshold: spans of this many or fewer objects become a leaf
const leafThreshold = 2

// NewBVH constructs a BVH from a slice of objects
func NewBVH(objects []Hittable) *BVH {
	if len(objects) == 0 {
		return &BVH{}
	}

	// Sort a copy so the caller's slice keeps its order
	objectsCopy := make([]Hittable, len(objects))
	copy(objectsCopy, objects)

	return &BVH{Root: buildBVH(objectsCopy)}
}

// NewBVHFromList constructs a BVH over the objects of a list
func NewBVHFromList(list *HittableList) *BVH {
	return NewBVH(list.Objects)
}

// buildBVH recursively splits objects at the median along the longest axis of their bounds
func buildBVH(objects []Hittable) *BVHNode {
	boundingBox := core.EmptyAABB
	for _, object := range objects {
		boundingBox = boundingBox.Union(object.BoundingBox())
	}

	if len(objects) <= leafThreshold {
		return &BVHNode{
			BoundingBox: boundingBox,
			Shapes:      objects,
		}
	}

	sortObjectsByAxis(objects, boundingBox.LongestAxis())

	mid := len(objects) / 2
	return &BVHNode{
		BoundingBox: boundingBox,
		Left:        buildBVH(objects[:mid]),
		Right:       buildBVH(objects[mid:]),
	}
}

// sortObjectsByAxis orders objects by the low edge of their bounding box along axis
func sortObjectsByAxis(objects []Hittable, axis int) {
	sort.Slice(objects, func(i, j int) bool {
		return objects[i].BoundingBox().Axis(axis).Min < objects[j].BoundingBox().Axis(axis).Min
	})
}

// Hit tests if a ray intersects any object in the BVH
func (bvh *BVH) Hit(ray core.Ray, rayT core.Interval, rec *material.HitRecord, sampler core.Sampler) bool {
	if bvh.Root == nil {
		return false
	}
	return bvh.hitNode(bvh.Root, ray, rayT, rec, sampler)
}

// hitNode recursively tests ray intersection with BVH nodes
func (bvh *BVH) hitNode(node *BVHNode, ray core.Ray, rayT core.Interval, rec *material.HitRecord, sampler core.Sampler) bool {
	if !node.BoundingBox.Hit(ray, rayT) {
		return false
	}

	closestSoFar := rayT.Max
	hitAnything := false

	if node.Shapes != nil {
		for _, object := range node.Shapes {
			if object.Hit(ray, core.NewInterval(rayT.Min, closestSoFar), rec, sampler) {
				hitAnything = true
				closestSoFar = rec.T
			}
		}
		return hitAnything
	}

	if bvh.hitNode(node.Left, ray, rayT, rec, sampler) {
		hitAnything = true
		closestSoFar = rec.T
	}
	if bvh.hitNode(node.Right, ray, core.NewInterval(rayT.Min, closestSoFar), rec, sampler) {
		hitAnything = true
	}

	return hitAnything
}

// BoundingBox implements the Hittable interface - returns the overall bounding box of the BVH
func (bvh *BVH) BoundingBox() core.AABB {
	if bvh.Root == nil {
		return core.EmptyAABB
	}
	return bvh.Root.BoundingBox
}

// Stats returns statistics about the BVH structure
func (bvh *BVH) Stats() BVHStats {
	if bvh.Root == nil {
		return BVHStats{}
	}

	stats := BVHStats{}
	bvh.collectStats(bvh.Root, 0, &stats)

	// Calculate average depth after collecting all data
	if stats.LeafNodes > 0 {
		stats.AvgDepth = stats.AvgDepth / float64(stats.LeafNodes)
	}

	return stats
}

// BVHStats contains statistics about the BVH structure
type BVHStats struct {
	TotalNodes  int
	LeafNodes   int
	MaxDepth    int
	AvgDepth    float64
	TotalShapes int
}

// collectStats recursively collects statistics about the BVH
func (bvh *BVH) collectStats(node *BVHNode, depth int, stats *BVHStats) {
	stats.TotalNodes++

	if depth > stats.MaxDepth {
		stats.MaxDepth = depth
	}

	if node.Shapes != nil {
		// Leaf node
		stats.LeafNodes++
		stats.TotalShapes += len(node.Shapes)
		stats.AvgDepth += float64(depth) // Accumulate depth for average calculation
	} else {
		bvh.collectStats(node.Left, depth+1, stats)
		bvh.collectStats(node.Right, depth+1, stats)
	}
}
