package geometry

import (
	"math"

	"github.com/alariq/basic-raytracer/pkg/core"
)

// parallelEpsilon rejects rays nearly parallel to a triangle's plane
const parallelEpsilon = 1e-6

// Triangle is a single mesh face with its flat shading normal
type Triangle struct {
	V0, V1, V2 core.Point3
	Normal     core.Vec3
}

// NewTriangle creates a triangle whose normal is the normalized geometric
// normal (counter-clockwise winding)
func NewTriangle(v0, v1, v2 core.Point3) Triangle {
	return Triangle{V0: v0, V1: v1, V2: v2, Normal: GeometricNormal(v0, v1, v2)}
}

// GeometricNormal returns normalize(cross(v1-v0, v2-v0)).
// Degenerate triangles produce NaN components.
func GeometricNormal(v0, v1, v2 core.Point3) core.Vec3 {
	return v1.Subtract(v0).Cross(v2.Subtract(v0)).Normalize()
}

// Centroid returns the average of the three vertices
func (tri Triangle) Centroid() core.Point3 {
	return tri.V0.Add(tri.V1).Add(tri.V2).Divide(3)
}

// Intersect finds where the ray crosses the triangle using the supplied
// normal for the plane equation and same-side edge tests. It returns the
// ray parameter and hit point; hits behind the ray origin are rejected.
func (tri Triangle) Intersect(ray core.Ray) (float64, core.Point3, bool) {
	n := tri.Normal

	// Check if ray and plane are parallel. Written negated so a NaN normal
	// from a degenerate face is rejected too.
	nDotDir := n.Dot(ray.Direction)
	if !(math.Abs(nDotDir) >= parallelEpsilon) {
		return 0, core.Point3{}, false
	}

	// Distance along the ray to the plane through V0
	t := (n.Dot(tri.V0) - n.Dot(ray.Origin)) / nDotDir
	if t < 0 {
		return 0, core.Point3{}, false
	}
	p := ray.At(t)

	// Inside-outside test: P must lie left of every edge as seen from n
	edges := [3][2]core.Point3{
		{tri.V0, tri.V1},
		{tri.V1, tri.V2},
		{tri.V2, tri.V0},
	}
	for _, e := range edges {
		c := e[1].Subtract(e[0]).Cross(p.Subtract(e[0]))
		if n.Dot(c) < 0 {
			return 0, core.Point3{}, false
		}
	}

	return t, p, true
}

// BoundingBox returns the bounds of the three vertices
func (tri Triangle) BoundingBox() core.AABB {
	return core.NewAABBFromPoints(tri.V0, tri.V1, tri.V2)
}
