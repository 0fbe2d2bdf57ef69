// Package geom provides the small 2D/3D vector and bounding-box math used
// by the flattening and packing pipeline. All coordinates are in mm.
package geom

import "math"

// Vec2 represents a 2D coordinate in mm.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns the component-wise sum of v and o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns the component-wise difference of v and o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v scaled by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Vec3 represents a 3D coordinate in mm.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Add returns the component-wise sum of v and o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Sub returns the component-wise difference of v and o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

// Scale returns v scaled by s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Cross returns the cross product of v and o.
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

// Length returns the Euclidean length of v.
func (v Vec3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Normalized returns v scaled to unit length. The zero vector is returned
// unchanged.
func (v Vec3) Normalized() Vec3 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}

// Clamped returns v with each component clamped to [-1, 1] independently.
// Used by kerf accumulation to stop parallel tangents from doubling the
// displacement.
func (v Vec3) Clamped() Vec3 {
	return Vec3{
		X: clamp(v.X),
		Y: clamp(v.Y),
		Z: clamp(v.Z),
	}
}

// Drop projects v to 2D by removing the given axis (0=X, 1=Y, 2=Z).
func (v Vec3) Drop(axis int) Vec2 {
	switch axis {
	case 0:
		return Vec2{X: v.Y, Y: v.Z}
	case 1:
		return Vec2{X: v.X, Y: v.Z}
	default:
		return Vec2{X: v.X, Y: v.Y}
	}
}

func clamp(f float64) float64 {
	return math.Max(-1, math.Min(f, 1))
}
