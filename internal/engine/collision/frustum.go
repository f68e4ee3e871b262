package collision

import "github.com/Faultbox/cubeshadow/pkg/math"

// Plane is Normal·p + D = 0; points with a positive distance are inside.
type Plane struct {
	Normal math.Vec3
	D      float32
}

// normalize scales the plane so the normal has unit length.
func (p *Plane) normalize() {
	l := p.Normal.Length()
	if l == 0 {
		return
	}
	p.Normal = p.Normal.Scale(1 / l)
	p.D /= l
}

// Distance returns the signed distance from the plane to a point.
func (p Plane) Distance(point math.Vec3) float32 {
	return p.Normal.Dot(point) + p.D
}

// Frustum plane indices.
const (
	Left = iota
	Right
	Bottom
	Top
	Near
	Far
)

// Frustum holds six inward-facing planes.
type Frustum struct {
	Planes [6]Plane
}

// NewFrustum extracts the planes of a combined view-projection matrix
// (Gribb/Hartmann). Row i, column j of the column-major matrix is m[i+j*4].
func NewFrustum(m math.Mat4) Frustum {
	row := func(i int) (float32, float32, float32, float32) {
		return m[i], m[i+4], m[i+8], m[i+12]
	}
	wx, wy, wz, ww := row(3)

	var f Frustum
	for i := 0; i < 3; i++ {
		x, y, z, w := row(i)
		f.Planes[2*i] = Plane{Normal: math.Vec3{X: wx + x, Y: wy + y, Z: wz + z}, D: ww + w}
		f.Planes[2*i+1] = Plane{Normal: math.Vec3{X: wx - x, Y: wy - y, Z: wz - z}, D: ww - w}
	}
	for i := range f.Planes {
		f.Planes[i].normalize()
	}
	return f
}

// IntersectsAABB returns false only when the box is entirely outside at
// least one plane. For each plane the corner furthest along the normal
// is tested.
func (f Frustum) IntersectsAABB(box AABB) bool {
	for _, p := range f.Planes {
		corner := box.Min
		if p.Normal.X >= 0 {
			corner.X = box.Max.X
		}
		if p.Normal.Y >= 0 {
			corner.Y = box.Max.Y
		}
		if p.Normal.Z >= 0 {
			corner.Z = box.Max.Z
		}
		if p.Distance(corner) < 0 {
			return false
		}
	}
	return true
}

// IsBoxInFrustum places a local-space box with the object's scale and
// position and tests it. Object rotation is not applied.
func (f Frustum) IsBoxInFrustum(local AABB, position, scale math.Vec3) bool {
	return f.IntersectsAABB(local.ScaleTranslate(scale, position))
}
