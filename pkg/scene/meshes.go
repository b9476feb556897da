package scene

import (
	"math"

	"github.com/alariq/basic-raytracer/pkg/core"
	"github.com/alariq/basic-raytracer/pkg/geometry"
)

// NewQuadMeshData creates a two-triangle quad with corners corner,
// corner+u, corner+u+v and corner+v. The face normal is normalize(u x v).
func NewQuadMeshData(name string, corner, u, v core.Vec3) *geometry.MeshData {
	return &geometry.MeshData{
		Name: name,
		Positions: []core.Point3{
			corner,
			corner.Add(u),
			corner.Add(u).Add(v),
			corner.Add(v),
		},
		Faces: []geometry.FaceVertex{
			{P: 0, N: -1}, {P: 1, N: -1}, {P: 2, N: -1},
			{P: 0, N: -1}, {P: 2, N: -1}, {P: 3, N: -1},
		},
	}
}

// NewUVSphereMeshData tessellates a unit sphere at the origin into
// latitude/longitude bands. Each vertex carries its outward normal.
func NewUVSphereMeshData(name string, rings, segments int) *geometry.MeshData {
	data := &geometry.MeshData{Name: name}

	// Vertex grid including both poles
	for r := 0; r <= rings; r++ {
		theta := math.Pi * float64(r) / float64(rings)
		for s := 0; s <= segments; s++ {
			phi := 2 * math.Pi * float64(s) / float64(segments)
			p := core.NewVec3(
				math.Sin(theta)*math.Cos(phi),
				math.Cos(theta),
				-math.Sin(theta)*math.Sin(phi),
			)
			data.Positions = append(data.Positions, p)
			data.Normals = append(data.Normals, p)
		}
	}

	idx := func(r, s int) int { return r*(segments+1) + s }
	corner := func(i int) geometry.FaceVertex { return geometry.FaceVertex{P: i, N: i} }

	for r := 0; r < rings; r++ {
		for s := 0; s < segments; s++ {
			a, b := idx(r, s), idx(r+1, s)
			c, d := idx(r+1, s+1), idx(r, s+1)
			// Skip the collapsed triangle at each pole
			if r != 0 {
				data.Faces = append(data.Faces, corner(a), corner(b), corner(d))
			}
			if r != rings-1 {
				data.Faces = append(data.Faces, corner(b), corner(c), corner(d))
			}
		}
	}

	// Meshes shade with the first corner's normal. Give each face its own
	// flat normal there so the triangle plane is exact.
	for i := 0; i+2 < len(data.Faces); i += 3 {
		p0 := data.Positions[data.Faces[i].P]
		p1 := data.Positions[data.Faces[i+1].P]
		p2 := data.Positions[data.Faces[i+2].P]
		data.Normals = append(data.Normals, geometry.GeometricNormal(p0, p1, p2))
		data.Faces[i].N = len(data.Normals) - 1
	}

	return data
}

// NewPyramidMeshData creates a square pyramid with its base centered on the
// origin in the XZ plane. Faces point outward.
func NewPyramidMeshData(name string, base, height float64) *geometry.MeshData {
	h := base / 2
	apex := core.NewVec3(0, height, 0)
	corners := []core.Point3{
		core.NewVec3(-h, 0, h),
		core.NewVec3(h, 0, h),
		core.NewVec3(h, 0, -h),
		core.NewVec3(-h, 0, -h),
	}

	data := &geometry.MeshData{
		Name:      name,
		Positions: append(append([]core.Point3{}, corners...), apex),
	}
	fv := func(i int) geometry.FaceVertex { return geometry.FaceVertex{P: i, N: -1} }

	// Sides, counter-clockwise seen from outside
	for i := 0; i < 4; i++ {
		data.Faces = append(data.Faces, fv(i), fv((i+1)%4), fv(4))
	}
	// Base facing down
	data.Faces = append(data.Faces, fv(0), fv(3), fv(2), fv(0), fv(2), fv(1))
	return data
}
