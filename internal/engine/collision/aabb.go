// Package collision provides bounding-box utilities used for camera
// collision and visibility culling.
package collision

import (
	"github.com/Faultbox/cubeshadow/pkg/math"
)

// AABB represents an axis-aligned bounding box. Min <= Max component-wise.
type AABB struct {
	Min math.Vec3
	Max math.Vec3
}

// NewAABB creates an AABB from two opposite corners in any order.
func NewAABB(a, b math.Vec3) AABB {
	return AABB{Min: a.Min(b), Max: a.Max(b)}
}

// Around returns the box center ± half.
func Around(center, half math.Vec3) AABB {
	return NewAABB(center.Sub(half), center.Add(half))
}

// Compute returns the extents of a set of raw vertex positions.
// An empty set yields the zero box.
func Compute(positions [][3]float32) AABB {
	if len(positions) == 0 {
		return AABB{}
	}
	box := AABB{Min: math.FromArr(positions[0]), Max: math.FromArr(positions[0])}
	for _, p := range positions[1:] {
		v := math.FromArr(p)
		box.Min = box.Min.Min(v)
		box.Max = box.Max.Max(v)
	}
	return box
}

// Center returns the center point of the AABB.
func (b AABB) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the dimensions of the AABB.
func (b AABB) Size() math.Vec3 {
	return b.Max.Sub(b.Min)
}

// Valid reports whether Min <= Max on every axis.
func (b AABB) Valid() bool {
	return b.Min.X <= b.Max.X && b.Min.Y <= b.Max.Y && b.Min.Z <= b.Max.Z
}

// ContainsPoint returns true if the point is inside the AABB.
func (b AABB) ContainsPoint(p math.Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// ScaleTranslate applies a per-axis scale then a translation.
// Rotation is never applied to bounds.
func (b AABB) ScaleTranslate(scale, position math.Vec3) AABB {
	return NewAABB(b.Min.Mul(scale).Add(position), b.Max.Mul(scale).Add(position))
}

// Union returns the smallest box containing both.
func (b AABB) Union(other AABB) AABB {
	return AABB{Min: b.Min.Min(other.Min), Max: b.Max.Max(other.Max)}
}
