package scene

import (
	"fmt"
	"sort"

	"github.com/dhconnelly/rtreego"

	"github.com/alariq/basic-raytracer/pkg/core"
)

// boundsPadding gives flat primitives (axis-aligned triangles, planar
// meshes) a non-zero extent; rtreego treats touching rectangles as disjoint.
const boundsPadding = 1e-6

// PrimitiveKind identifies which scene collection an indexed entry came from
type PrimitiveKind string

const (
	PrimitiveSphere PrimitiveKind = "sphere"
	PrimitiveMesh   PrimitiveKind = "mesh"
)

// IndexEntry is one scene primitive stored in the R-tree
type IndexEntry struct {
	Kind  PrimitiveKind
	Index int // Position in Scene.Spheres or Scene.Meshes
	Name  string
	Box   core.AABB
	rect  rtreego.Rect
	order int
}

// Bounds implements rtreego.Spatial
func (e *IndexEntry) Bounds() rtreego.Rect {
	return e.rect
}

func (e *IndexEntry) String() string {
	if e.Name != "" {
		return fmt.Sprintf("%s %d (%s)", e.Kind, e.Index, e.Name)
	}
	return fmt.Sprintf("%s %d", e.Kind, e.Index)
}

// Index is an R-tree over the bounding boxes of every sphere and mesh.
// It is a load-time diagnostic; ray queries go through Scene.Intersect.
type Index struct {
	tree    *rtreego.Rtree
	entries []*IndexEntry
}

// Overlap is a pair of primitives whose bounding boxes intersect
type Overlap struct {
	A, B *IndexEntry
}

func (o Overlap) String() string {
	return fmt.Sprintf("%v overlaps %v", o.A, o.B)
}

// NewIndex builds the R-tree for the scene's current primitives
func NewIndex(s *Scene) (*Index, error) {
	idx := &Index{}
	objs := make([]rtreego.Spatial, 0, len(s.Spheres)+len(s.Meshes))

	for i, sphere := range s.Spheres {
		entry, err := newIndexEntry(PrimitiveSphere, i, "", sphere.BoundingBox())
		if err != nil {
			return nil, err
		}
		entry.order = len(idx.entries)
		idx.entries = append(idx.entries, entry)
		objs = append(objs, entry)
	}
	for i, mesh := range s.Meshes {
		entry, err := newIndexEntry(PrimitiveMesh, i, mesh.Data().Name, mesh.BoundingBox())
		if err != nil {
			return nil, err
		}
		entry.order = len(idx.entries)
		idx.entries = append(idx.entries, entry)
		objs = append(objs, entry)
	}

	idx.tree = rtreego.NewTree(3, 2, 8, objs...)
	return idx, nil
}

func newIndexEntry(kind PrimitiveKind, i int, name string, box core.AABB) (*IndexEntry, error) {
	padded := box.Expand(boundsPadding)
	rect, err := rtreego.NewRectFromPoints(toPoint(padded.Min), toPoint(padded.Max))
	if err != nil {
		return nil, fmt.Errorf("failed to index %s %d: %w", kind, i, err)
	}
	return &IndexEntry{Kind: kind, Index: i, Name: name, Box: box, rect: rect}, nil
}

func toPoint(v core.Vec3) rtreego.Point {
	return rtreego.Point{v.X, v.Y, v.Z}
}

// Size returns the number of indexed primitives
func (idx *Index) Size() int {
	return idx.tree.Size()
}

// Query returns the primitives whose bounding boxes intersect box
func (idx *Index) Query(box core.AABB) []*IndexEntry {
	padded := box.Expand(boundsPadding)
	rect, err := rtreego.NewRectFromPoints(toPoint(padded.Min), toPoint(padded.Max))
	if err != nil {
		return nil
	}
	results := idx.tree.SearchIntersect(rect)
	entries := make([]*IndexEntry, 0, len(results))
	for _, r := range results {
		entries = append(entries, r.(*IndexEntry))
	}
	return entries
}

// Nearest returns the primitive whose bounding box is closest to p
func (idx *Index) Nearest(p core.Point3) (*IndexEntry, bool) {
	if idx.tree.Size() == 0 {
		return nil, false
	}
	obj := idx.tree.NearestNeighbor(toPoint(p))
	if obj == nil {
		return nil, false
	}
	return obj.(*IndexEntry), true
}

// Overlaps returns every unordered pair of primitives with intersecting
// bounding boxes, spheres before meshes
func (idx *Index) Overlaps() []Overlap {
	var overlaps []Overlap
	for _, entry := range idx.entries {
		for _, other := range idx.tree.SearchIntersect(entry.rect) {
			o := other.(*IndexEntry)
			if o.order <= entry.order {
				continue
			}
			overlaps = append(overlaps, Overlap{A: entry, B: o})
		}
	}
	sort.Slice(overlaps, func(i, j int) bool {
		if overlaps[i].A.order != overlaps[j].A.order {
			return overlaps[i].A.order < overlaps[j].A.order
		}
		return overlaps[i].B.order < overlaps[j].B.order
	})
	return overlaps
}

// Overlaps reports primitives whose bounds intersect. Coincident surfaces
// produce self-shadowing artifacts, so loaders log these.
func (s *Scene) Overlaps() ([]Overlap, error) {
	idx, err := NewIndex(s)
	if err != nil {
		return nil, err
	}
	return idx.Overlaps(), nil
}
