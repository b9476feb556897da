package geometry

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/alariq/basic-raytracer/pkg/core"
)

// Transform places a mesh instance in the world: scale, then rotate around
// X, Y and Z (in that order, degrees), then translate.
type Transform struct {
	Translate core.Vec3
	Rotate    core.Vec3 // Euler angles in degrees
	Scale     core.Vec3
}

// IdentityTransform leaves geometry unchanged
func IdentityTransform() Transform {
	return Transform{Scale: core.NewVec3(1, 1, 1)}
}

// IsIdentity reports whether applying the transform is a no-op
func (tr Transform) IsIdentity() bool {
	return tr == IdentityTransform()
}

// Matrix returns the homogeneous matrix T * Rz * Ry * Rx * S
func (tr Transform) Matrix() mgl64.Mat4 {
	rx := mgl64.HomogRotate3DX(mgl64.DegToRad(tr.Rotate.X))
	ry := mgl64.HomogRotate3DY(mgl64.DegToRad(tr.Rotate.Y))
	rz := mgl64.HomogRotate3DZ(mgl64.DegToRad(tr.Rotate.Z))

	return mgl64.Translate3D(tr.Translate.X, tr.Translate.Y, tr.Translate.Z).
		Mul4(rz).Mul4(ry).Mul4(rx).
		Mul4(mgl64.Scale3D(tr.Scale.X, tr.Scale.Y, tr.Scale.Z))
}

// Apply returns a transformed copy of the mesh data. Positions go through
// the full matrix, normals through its inverse transpose and are
// renormalized.
func (tr Transform) Apply(data *MeshData) *MeshData {
	out := &MeshData{
		Name:      data.Name,
		Positions: make([]core.Point3, len(data.Positions)),
		Normals:   make([]core.Vec3, len(data.Normals)),
		Faces:     append([]FaceVertex(nil), data.Faces...),
	}

	m := tr.Matrix()
	normalMatrix := mgl64.Mat4Normal(m)

	for i, p := range data.Positions {
		out.Positions[i] = fromMgl(mgl64.TransformCoordinate(toMgl(p), m))
	}
	for i, n := range data.Normals {
		out.Normals[i] = fromMgl(normalMatrix.Mul3x1(toMgl(n))).Normalize()
	}
	return out
}

func toMgl(v core.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

func fromMgl(v mgl64.Vec3) core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}
