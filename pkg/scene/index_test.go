package scene

import (
	"testing"

	"github.com/alariq/basic-raytracer/pkg/core"
	"github.com/alariq/basic-raytracer/pkg/geometry"
)

func TestScene_Overlaps(t *testing.T) {
	s := New()
	mat := colored(1, 1, 1)
	s.AddSphere(geometry.NewSphere(core.NewVec3(0, 0, 0), 1, mat))
	s.AddSphere(geometry.NewSphere(core.NewVec3(1.5, 0, 0), 1, mat)) // overlaps sphere 0
	s.AddSphere(geometry.NewSphere(core.NewVec3(10, 0, 0), 1, mat))  // isolated
	s.AddSphere(geometry.NewSphere(core.NewVec3(-10, 0, 0), 1, mat)) // rests on the quad
	quad := NewQuadMeshData("floor", core.NewVec3(-12, -1, -2), core.NewVec3(0, 0, 4), core.NewVec3(4, 0, 0))
	s.AddMesh(geometry.NewMesh(quad, mat))

	overlaps, err := s.Overlaps()
	if err != nil {
		t.Fatalf("Overlaps() error: %v", err)
	}
	if len(overlaps) != 2 {
		t.Fatalf("Expected 2 overlaps, got %d: %v", len(overlaps), overlaps)
	}

	first, second := overlaps[0], overlaps[1]
	if first.A.Kind != PrimitiveSphere || first.A.Index != 0 || first.B.Kind != PrimitiveSphere || first.B.Index != 1 {
		t.Errorf("Unexpected first overlap %v", first)
	}
	if second.A.Kind != PrimitiveSphere || second.A.Index != 3 || second.B.Kind != PrimitiveMesh || second.B.Index != 0 {
		t.Errorf("Unexpected second overlap %v", second)
	}
	if second.B.Name != "floor" {
		t.Errorf("Expected mesh name floor, got %q", second.B.Name)
	}
}

func TestIndex_QueryAndNearest(t *testing.T) {
	s := New()
	mat := colored(1, 1, 1)
	for i := 0; i < 20; i++ {
		s.AddSphere(geometry.NewSphere(core.NewVec3(float64(i)*3, 0, 0), 1, mat))
	}

	idx, err := NewIndex(s)
	if err != nil {
		t.Fatalf("NewIndex() error: %v", err)
	}
	if idx.Size() != 20 {
		t.Fatalf("Expected 20 entries, got %d", idx.Size())
	}

	found := idx.Query(core.NewAABB(core.NewVec3(5.5, -0.5, -0.5), core.NewVec3(6.5, 0.5, 0.5)))
	if len(found) != 1 || found[0].Index != 2 {
		t.Errorf("Expected sphere 2 from query, got %v", found)
	}

	nearest, ok := idx.Nearest(core.NewVec3(30.2, 5, 0))
	if !ok || nearest.Index != 10 {
		t.Errorf("Expected sphere 10 as nearest, got %v", nearest)
	}

	empty, err := NewIndex(New())
	if err != nil {
		t.Fatalf("NewIndex() error: %v", err)
	}
	if _, ok := empty.Nearest(core.NewVec3(0, 0, 0)); ok {
		t.Error("Expected no nearest entry in empty index")
	}
}
