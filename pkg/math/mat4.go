package math

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Mat4 is a 4x4 matrix in column-major order (OpenGL compatible).
// Element i*4+j is column i, row j. It shares its layout with
// mgl32.Mat4, which does the heavy lifting.
type Mat4 [16]float32

// Vec4 is a 4-component vector.
type Vec4 [4]float32

func (m Mat4) gl() mgl32.Mat4 { return mgl32.Mat4(m) }

func glVec(v Vec3) mgl32.Vec3 { return mgl32.Vec3{v.X, v.Y, v.Z} }

// Identity returns an identity matrix.
func Identity() Mat4 {
	return Mat4(mgl32.Ident4())
}

// Radians converts degrees to radians.
func Radians(deg float32) float32 {
	return deg * (math.Pi / 180.0)
}

// Degrees converts radians to degrees.
func Degrees(rad float32) float32 {
	return rad * (180.0 / math.Pi)
}

// Perspective returns a perspective projection matrix.
// fovY is in radians, aspect is width/height. Clip-space depth is [-w, w].
func Perspective(fovY, aspect, near, far float32) Mat4 {
	return Mat4(mgl32.Perspective(fovY, aspect, near, far))
}

// LookAt returns a view matrix looking from eye to center with up direction.
func LookAt(eye, center, up Vec3) Mat4 {
	return Mat4(mgl32.LookAtV(glVec(eye), glVec(center), glVec(up)))
}

// Translate returns a translation matrix.
func Translate(x, y, z float32) Mat4 {
	return Mat4(mgl32.Translate3D(x, y, z))
}

// Scale returns a scale matrix.
func Scale(x, y, z float32) Mat4 {
	return Mat4(mgl32.Scale3D(x, y, z))
}

// RotateAxis rotates angle radians around a normalized axis.
func RotateAxis(axis [3]float32, angle float32) Mat4 {
	return Mat4(mgl32.HomogRotate3D(angle, mgl32.Vec3(axis)))
}

// Model builds translate * rotate * scale for a single-axis rotation given
// in degrees. The rotation is skipped when the angle is zero or the axis
// is degenerate.
func Model(position, axis Vec3, angleDeg float32, scale Vec3) Mat4 {
	m := Translate(position.X, position.Y, position.Z)
	if angleDeg != 0 {
		if n := axis.Normalize(); n != (Vec3{}) {
			m = m.Mul(RotateAxis(n.Arr(), Radians(angleDeg)))
		}
	}
	return m.Mul(Scale(scale.X, scale.Y, scale.Z))
}

// Mul returns m * other.
func (m Mat4) Mul(other Mat4) Mat4 {
	return Mat4(m.gl().Mul4(other.gl()))
}

// MulVec4 returns m * v.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	return Vec4(m.gl().Mul4x1(mgl32.Vec4(v)))
}

// TransformPoint transforms a point with w=1, dividing by the resulting
// w when it is neither 0 nor 1.
func (m Mat4) TransformPoint(p [3]float32) [3]float32 {
	c := m.MulVec4(Vec4{p[0], p[1], p[2], 1})
	if c[3] != 0 && c[3] != 1 {
		return [3]float32{c[0] / c[3], c[1] / c[3], c[2] / c[3]}
	}
	return [3]float32{c[0], c[1], c[2]}
}

// TransformVec3 transforms a Vec3 point by this matrix.
func (m Mat4) TransformVec3(v Vec3) Vec3 {
	return FromArr(m.TransformPoint(v.Arr()))
}

// Mat3x3 returns the upper-left 3x3 block, column-major.
func (m Mat4) Mat3x3() [9]float32 {
	return [9]float32(m.gl().Mat3())
}

// NormalMatrix returns the inverse-transpose of the upper 3x3 of m,
// column-major, for transforming normals under non-uniform scale.
func (m Mat4) NormalMatrix() [9]float32 {
	return [9]float32(m.gl().Mat3().Inv().Transpose())
}

// Inverse returns the inverse of the matrix, or identity when singular.
func (m Mat4) Inverse() Mat4 {
	inv := m.gl().Inv()
	if inv == (mgl32.Mat4{}) {
		return Identity()
	}
	return Mat4(inv)
}
