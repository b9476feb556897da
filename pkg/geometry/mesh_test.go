package geometry

import (
	"math"
	"testing"

	"github.com/alariq/basic-raytracer/pkg/core"
	"github.com/alariq/basic-raytracer/pkg/material"
)

// twoLayerData returns two parallel triangles at z=-1 and z=-3 facing +Z
func twoLayerData() *MeshData {
	return &MeshData{
		Name: "layers",
		Positions: []core.Point3{
			core.NewVec3(-1, -1, -3), core.NewVec3(1, -1, -3), core.NewVec3(0, 1, -3),
			core.NewVec3(-1, -1, -1), core.NewVec3(1, -1, -1), core.NewVec3(0, 1, -1),
		},
		Faces: []FaceVertex{
			{P: 0, N: -1}, {P: 1, N: -1}, {P: 2, N: -1},
			{P: 3, N: -1}, {P: 4, N: -1}, {P: 5, N: -1},
		},
	}
}

func TestMesh_HitNearestTriangle(t *testing.T) {
	mat := material.NewMaterial(core.NewVec3(0.2, 0.4, 0.6))
	mesh := NewMesh(twoLayerData(), mat)

	if mesh.TriangleCount() != 2 {
		t.Fatalf("Expected 2 triangles, got %d", mesh.TriangleCount())
	}

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	tests := []struct {
		name      string
		tMin      float64
		tMax      float64
		shouldHit bool
		expectedT float64
	}{
		{"Nearest of two", 0.001, 100, true, 1},
		{"Near layer excluded by tMin", 1.5, 100, true, 3},
		{"Far layer excluded by tMax", 0.001, 3, true, 1},
		{"tMax is exclusive", 0.001, 1, false, 0},
		{"Both excluded", 3.5, 100, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, isHit := mesh.Hit(ray, tt.tMin, tt.tMax)
			if isHit != tt.shouldHit {
				t.Fatalf("Expected hit=%v, got %v", tt.shouldHit, isHit)
			}
			if !isHit {
				return
			}
			if math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got %f", tt.expectedT, hit.T)
			}
			if hit.Material != mat {
				t.Errorf("Expected mesh material on hit record")
			}
		})
	}
}

func TestMesh_NormalIsNotFlipped(t *testing.T) {
	mesh := NewMesh(twoLayerData(), material.NewMaterial(core.NewVec3(1, 1, 1)))

	// Ray from behind still reports the stored +Z normal
	ray := core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1))
	hit, isHit := mesh.Hit(ray, 0.001, 100)
	if !isHit {
		t.Fatal("Expected hit from behind")
	}
	if math.Abs(hit.T-2) > 1e-9 {
		t.Errorf("Expected t=2, got %f", hit.T)
	}
	if hit.Normal.Subtract(core.NewVec3(0, 0, 1)).Length() > 1e-9 {
		t.Errorf("Expected normal (0,0,1), got %v", hit.Normal)
	}
}

func TestMesh_UsesFirstVertexNormal(t *testing.T) {
	data := &MeshData{
		Positions: []core.Point3{core.NewVec3(-1, -1, -1), core.NewVec3(1, -1, -1), core.NewVec3(0, 1, -1)},
		Normals:   []core.Vec3{core.NewVec3(0, 1, 0), core.NewVec3(1, 0, 0)},
		Faces:     []FaceVertex{{P: 0, N: 1}, {P: 1, N: 0}, {P: 2, N: 0}},
	}
	mesh := NewMesh(data, material.NewMaterial(core.NewVec3(1, 1, 1)))

	if got := mesh.Triangles()[0].Normal; got != core.NewVec3(1, 0, 0) {
		t.Errorf("Expected first vertex normal (1,0,0), got %v", got)
	}
}

func TestMesh_BoundingBox(t *testing.T) {
	mesh := NewMesh(twoLayerData(), material.NewMaterial(core.NewVec3(1, 1, 1)))
	box := mesh.BoundingBox()
	if box.Min != core.NewVec3(-1, -1, -3) || box.Max != core.NewVec3(1, 1, -1) {
		t.Errorf("Unexpected bounds %v", box)
	}
}

func TestMeshData_Validate(t *testing.T) {
	positions := []core.Point3{core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0)}

	tests := []struct {
		name    string
		data    MeshData
		wantErr bool
	}{
		{"Valid", MeshData{Positions: positions, Faces: []FaceVertex{{0, -1}, {1, -1}, {2, -1}}}, false},
		{"Empty", MeshData{}, false},
		{"Partial triangle", MeshData{Positions: positions, Faces: []FaceVertex{{0, -1}, {1, -1}}}, true},
		{"Position out of range", MeshData{Positions: positions, Faces: []FaceVertex{{0, -1}, {1, -1}, {3, -1}}}, true},
		{"Normal out of range", MeshData{Positions: positions, Faces: []FaceVertex{{0, 0}, {1, -1}, {2, -1}}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.data.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewMesh_PanicsOnInvalidData(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected panic for invalid mesh data")
		}
	}()
	NewMesh(&MeshData{Faces: []FaceVertex{{0, -1}, {1, -1}, {2, -1}}}, material.NewMaterial(core.NewVec3(1, 1, 1)))
}
