package geom

import "math"

// AABB is an axis-aligned bounding box. The zero value from NewAABB is the
// empty (inverted) box: extending it with any point makes it cover exactly
// that point.
type AABB struct {
	MinX float64 `json:"min_x"`
	MinY float64 `json:"min_y"`
	MaxX float64 `json:"max_x"`
	MaxY float64 `json:"max_y"`
}

// NewAABB returns the empty bounding box.
func NewAABB() AABB {
	return AABB{
		MinX: math.Inf(1),
		MinY: math.Inf(1),
		MaxX: math.Inf(-1),
		MaxY: math.Inf(-1),
	}
}

// IsValid reports whether the box spans a non-empty area.
func (b AABB) IsValid() bool {
	return b.MinX < b.MaxX && b.MinY < b.MaxY
}

// Width returns the horizontal extent of the box.
func (b AABB) Width() float64 {
	return b.MaxX - b.MinX
}

// Height returns the vertical extent of the box.
func (b AABB) Height() float64 {
	return b.MaxY - b.MinY
}

// MidX returns the X coordinate of the box center.
func (b AABB) MidX() float64 {
	return (b.MaxX + b.MinX) / 2
}

// MidY returns the Y coordinate of the box center.
func (b AABB) MidY() float64 {
	return (b.MaxY + b.MinY) / 2
}

// Area returns the area spanned by the box.
func (b AABB) Area() float64 {
	return b.Width() * b.Height()
}

// MinPoint returns the bottom-left corner.
func (b AABB) MinPoint() Vec2 {
	return Vec2{X: b.MinX, Y: b.MinY}
}

// Size returns the box dimensions as a vector.
func (b AABB) Size() Vec2 {
	return Vec2{X: b.Width(), Y: b.Height()}
}

// Extend grows the box to include the given point.
func (b *AABB) Extend(p Vec2) {
	b.MinX = math.Min(b.MinX, p.X)
	b.MinY = math.Min(b.MinY, p.Y)
	b.MaxX = math.Max(b.MaxX, p.X)
	b.MaxY = math.Max(b.MaxY, p.Y)
}

// Join grows the box to include the other box.
func (b *AABB) Join(o AABB) {
	b.MinX = math.Min(b.MinX, o.MinX)
	b.MinY = math.Min(b.MinY, o.MinY)
	b.MaxX = math.Max(b.MaxX, o.MaxX)
	b.MaxY = math.Max(b.MaxY, o.MaxY)
}

// Translated returns the box shifted by the given vector.
func (b AABB) Translated(t Vec2) AABB {
	return AABB{
		MinX: b.MinX + t.X,
		MinY: b.MinY + t.Y,
		MaxX: b.MaxX + t.X,
		MaxY: b.MaxY + t.Y,
	}
}

// Rotated returns the box mirrored around its diagonal: same min corner,
// width and height swapped. This is the bounding box of the shape after a
// 90 degree rotation that keeps the min corner in place.
func (b AABB) Rotated() AABB {
	return AABB{
		MinX: b.MinX,
		MinY: b.MinY,
		MaxX: b.MinX + b.Height(),
		MaxY: b.MinY + b.Width(),
	}
}

// Boundary returns the four edges of the box, counter-clockwise from the
// bottom edge.
func (b AABB) Boundary() [4][2]Vec2 {
	minmin := Vec2{X: b.MinX, Y: b.MinY}
	maxmin := Vec2{X: b.MaxX, Y: b.MinY}
	maxmax := Vec2{X: b.MaxX, Y: b.MaxY}
	minmax := Vec2{X: b.MinX, Y: b.MaxY}
	return [4][2]Vec2{
		{minmin, maxmin},
		{maxmin, maxmax},
		{maxmax, minmax},
		{minmax, minmin},
	}
}
