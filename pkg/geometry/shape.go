package geometry

import (
	"github.com/alariq/basic-raytracer/pkg/core"
	"github.com/alariq/basic-raytracer/pkg/material"
)

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	Point    core.Point3       // Point of intersection
	Normal   core.Vec3         // Unit surface normal, not flipped toward the ray
	T        float64           // Parameter t along the ray
	Material material.Material // Material of the struck surface
}

// Shape is anything a ray can be tested against.
// Hit reports the nearest intersection with t in [tMin, tMax).
type Shape interface {
	Hit(ray core.Ray, tMin, tMax float64) (HitRecord, bool)
	BoundingBox() core.AABB
}
