package geometry

import (
	"fmt"

	"github.com/alariq/basic-raytracer/pkg/core"
	"github.com/alariq/basic-raytracer/pkg/material"
)

// FaceVertex references one corner of a triangle: a position index and a
// normal index, both 0-based. N is -1 when the face carries no normal.
type FaceVertex struct {
	P int
	N int
}

// MeshData is a loaded triangle soup. Every three consecutive entries of
// Faces form one triangle.
type MeshData struct {
	Name      string
	Positions []core.Point3
	Normals   []core.Vec3
	Faces     []FaceVertex
}

// TriangleCount returns the number of triangles described by Faces
func (d *MeshData) TriangleCount() int {
	return len(d.Faces) / 3
}

// Validate checks face count and index ranges
func (d *MeshData) Validate() error {
	if len(d.Faces)%3 != 0 {
		return fmt.Errorf("mesh %q: %d face vertices is not a multiple of 3", d.Name, len(d.Faces))
	}
	for i, fv := range d.Faces {
		if fv.P < 0 || fv.P >= len(d.Positions) {
			return fmt.Errorf("mesh %q: face vertex %d position index %d out of range [0,%d)", d.Name, i, fv.P, len(d.Positions))
		}
		if fv.N >= len(d.Normals) || fv.N < -1 {
			return fmt.Errorf("mesh %q: face vertex %d normal index %d out of range [0,%d)", d.Name, i, fv.N, len(d.Normals))
		}
	}
	return nil
}

// Mesh is a triangle mesh with a single material. Intersection is a linear
// scan over all triangles.
type Mesh struct {
	data      *MeshData
	triangles []Triangle
	bbox      core.AABB
	material  material.Material
}

// NewMesh builds a mesh from loaded data. The mesh takes ownership of data.
// Each triangle uses the normal of its first vertex (flat shading), or its
// geometric normal when the face has none. Invalid data panics; loaders are
// expected to have called Validate.
func NewMesh(data *MeshData, mat material.Material) *Mesh {
	if err := data.Validate(); err != nil {
		panic(err)
	}

	numTriangles := data.TriangleCount()
	triangles := make([]Triangle, numTriangles)
	points := make([]core.Vec3, 0, len(data.Positions))

	for i := 0; i < numTriangles; i++ {
		f0, f1, f2 := data.Faces[3*i], data.Faces[3*i+1], data.Faces[3*i+2]
		v0, v1, v2 := data.Positions[f0.P], data.Positions[f1.P], data.Positions[f2.P]

		if f0.N >= 0 {
			triangles[i] = Triangle{V0: v0, V1: v1, V2: v2, Normal: data.Normals[f0.N]}
		} else {
			triangles[i] = NewTriangle(v0, v1, v2)
		}
		points = append(points, v0, v1, v2)
	}

	return &Mesh{
		data:      data,
		triangles: triangles,
		bbox:      core.NewAABBFromPoints(points...),
		material:  mat,
	}
}

// Hit tests the ray against every triangle and keeps the nearest hit in
// [tMin, tMax). The reported normal is the stored face normal and is not
// flipped toward the ray.
func (m *Mesh) Hit(ray core.Ray, tMin, tMax float64) (HitRecord, bool) {
	var rec HitRecord
	closest := tMax
	hitAnything := false

	for i := range m.triangles {
		t, p, ok := m.triangles[i].Intersect(ray)
		if !ok || t < tMin || t >= closest {
			continue
		}
		closest = t
		rec.T = t
		rec.Point = p
		rec.Normal = m.triangles[i].Normal
		hitAnything = true
	}

	if hitAnything {
		rec.Material = m.material
	}
	return rec, hitAnything
}

// BoundingBox returns the axis-aligned bounding box for the entire mesh
func (m *Mesh) BoundingBox() core.AABB {
	return m.bbox
}

// Material returns the material shared by all triangles
func (m *Mesh) Material() material.Material {
	return m.material
}

// Data returns the geometry the mesh was built from
func (m *Mesh) Data() *MeshData {
	return m.data
}

// TriangleCount returns the number of triangles in this mesh
func (m *Mesh) TriangleCount() int {
	return len(m.triangles)
}

// Triangles returns the individual triangles (for debugging or special operations)
func (m *Mesh) Triangles() []Triangle {
	return m.triangles
}
