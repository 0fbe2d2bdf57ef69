package trace

import "github.com/piwi3910/laserflat/internal/geom"

// TypedPolygon pairs a chain with its edge type, for iteration in
// deterministic order.
type TypedPolygon struct {
	Type EdgeType
	Poly *FlattenedMesh
}

// MeshBoundary holds the flattened 2D boundary of a single source object:
// its outline, holes and engrave lines, grouped by edge type. The packer is
// the only mutator after construction, setting Rotation, Translation and
// PageNum; the document writers read it afterwards.
type MeshBoundary struct {
	Name     string
	Polygons map[EdgeType][]*FlattenedMesh

	// Placement, set by the packer. Rotation is in degrees (0 or 90).
	Rotation    int
	Translation geom.Vec2
	PageNum     int

	aabb geom.AABB
}

// NewMeshBoundary builds a boundary from split polygons. The bounding box is
// computed here once; Polygons must not be mutated afterwards.
func NewMeshBoundary(name string, polygons map[EdgeType][]*FlattenedMesh) *MeshBoundary {
	b := &MeshBoundary{
		Name:     name,
		Polygons: polygons,
		aabb:     geom.NewAABB(),
	}
	for _, tp := range b.PolygonsByType() {
		b.aabb.Join(tp.Poly.AABB())
	}
	return b
}

// AABB returns the bounding box over all polygons of all types.
func (b *MeshBoundary) AABB() geom.AABB {
	return b.aabb
}

// IsEmpty reports whether the boundary contains no usable shape.
func (b *MeshBoundary) IsEmpty() bool {
	return len(b.Polygons) == 0 || !b.aabb.IsValid()
}

// PolygonsByType returns all chains with their type, cut chains first.
func (b *MeshBoundary) PolygonsByType() []TypedPolygon {
	var out []TypedPolygon
	for _, t := range EdgeTypes {
		for _, poly := range b.Polygons[t] {
			out = append(out, TypedPolygon{Type: t, Poly: poly})
		}
	}
	return out
}

// TransformPoint maps a shape-local point to its packed location, applying
// the placement translation and rotation in model (Y-up) coordinates.
func (b *MeshBoundary) TransformPoint(p geom.Vec2) geom.Vec2 {
	if b.Rotation == 90 {
		return geom.Vec2{X: b.Translation.X + p.Y, Y: b.Translation.Y - p.X}
	}
	return p.Add(b.Translation)
}

// PlacedAABB returns the bounding box of the shape after placement, in
// global page-offset coordinates.
func (b *MeshBoundary) PlacedAABB() geom.AABB {
	box := geom.NewAABB()
	box.Extend(b.TransformPoint(geom.Vec2{X: b.aabb.MinX, Y: b.aabb.MinY}))
	box.Extend(b.TransformPoint(geom.Vec2{X: b.aabb.MaxX, Y: b.aabb.MaxY}))
	return box
}

// TransformInto places the shape at the given position so that its bounding
// box fills the given size, rotating by 90 degrees when the size's
// orientation disagrees with the shape's. The extra Y shift after rotation
// compensates for the rotation pivot being the origin rather than the box
// corner.
func (b *MeshBoundary) TransformInto(position, size geom.Vec2) {
	aabb := b.aabb
	b.Translation = position.Sub(aabb.MinPoint())
	if (size.X > size.Y) == (aabb.Width() > aabb.Height()) {
		b.Rotation = 0
	} else {
		b.Rotation = 90
		b.Translation.Y += aabb.Width()
	}
}
