package core

import "testing"

func TestAABB_FromPointsAndUnion(t *testing.T) {
	box := NewAABBFromPoints(NewVec3(1, -1, 0), NewVec3(-2, 3, 0.5), NewVec3(0, 0, -4))
	if box.Min != NewVec3(-2, -1, -4) || box.Max != NewVec3(1, 3, 0.5) {
		t.Errorf("Unexpected bounds %v", box)
	}

	other := NewAABB(NewVec3(5, 5, 5), NewVec3(6, 6, 6))
	union := box.Union(other)
	if union.Min != box.Min || union.Max != other.Max {
		t.Errorf("Unexpected union %v", union)
	}
	if union.Center() != NewVec3(2, 2.5, 1) {
		t.Errorf("Unexpected center %v", union.Center())
	}
}

func TestAABB_Overlaps(t *testing.T) {
	unit := NewAABB(NewVec3(0, 0, 0), NewVec3(1, 1, 1))

	tests := []struct {
		name     string
		other    AABB
		expected bool
	}{
		{"Contained", NewAABB(NewVec3(0.25, 0.25, 0.25), NewVec3(0.5, 0.5, 0.5)), true},
		{"Touching face", NewAABB(NewVec3(1, 0, 0), NewVec3(2, 1, 1)), true},
		{"Separated on x", NewAABB(NewVec3(1.5, 0, 0), NewVec3(2, 1, 1)), false},
		{"Separated on z", NewAABB(NewVec3(0, 0, -3), NewVec3(1, 1, -2)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := unit.Overlaps(tt.other); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}
