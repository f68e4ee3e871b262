package collision

import "github.com/Faultbox/cubeshadow/pkg/math"

// CheckCollision tests a vertical cylinder against a box. center is the
// cylinder's mid-height point on its axis.
//
// The horizontal test uses the squared XZ distance from the axis to the
// closest point of the box footprint; the vertical test checks that
// [center.Y-height/2, center.Y+height/2] overlaps the box's Y extent.
// Touching counts as a collision.
func CheckCollision(center math.Vec3, radius, height float32, box AABB) bool {
	dx := axisGap(center.X, box.Min.X, box.Max.X)
	dz := axisGap(center.Z, box.Min.Z, box.Max.Z)
	distSq := dx*dx + dz*dz

	if distSq > radius*radius {
		return false
	}

	top := center.Y + height/2
	bottom := center.Y - height/2
	if top < box.Min.Y || bottom > box.Max.Y {
		return false
	}

	return true
}

// axisGap returns how far v lies outside [lo, hi], or 0 inside.
func axisGap(v, lo, hi float32) float32 {
	switch {
	case v < lo:
		return lo - v
	case v > hi:
		return v - hi
	default:
		return 0
	}
}

// CollidesAny reports whether the cylinder hits any of the boxes.
func CollidesAny(center math.Vec3, radius, height float32, boxes []AABB) bool {
	for _, b := range boxes {
		if CheckCollision(center, radius, height, b) {
			return true
		}
	}
	return false
}
