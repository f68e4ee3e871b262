// Package shadow renders omnidirectional depth from a point light into a
// cube map, one 90 degree face at a time.
package shadow

import (
	"github.com/Faultbox/cubeshadow/pkg/math"
)

// Cube map faces in OpenGL order.
const (
	FacePositiveX = iota
	FaceNegativeX
	FacePositiveY
	FaceNegativeY
	FacePositiveZ
	FaceNegativeZ
	FaceCount
)

// Default clip planes for the light projection.
const (
	DefaultNear = 1.0
	DefaultFar  = 25.0
)

// faceDirs holds the forward and up vector of each face. The ±Y faces
// need a Z up vector since (0,-1,0) would be parallel to the view axis.
var faceDirs = [FaceCount][2]math.Vec3{
	{{X: 1}, {Y: -1}},
	{{X: -1}, {Y: -1}},
	{{Y: 1}, {Z: 1}},
	{{Y: -1}, {Z: -1}},
	{{Z: 1}, {Y: -1}},
	{{Z: -1}, {Y: -1}},
}

// FaceDirection returns the forward axis of a face.
func FaceDirection(face int) math.Vec3 {
	return faceDirs[face][0]
}

// FaceUp returns the up vector used to build a face's view matrix.
func FaceUp(face int) math.Vec3 {
	return faceDirs[face][1]
}

// Projection returns the square 90 degree projection shared by all faces.
func Projection(near, far float32) math.Mat4 {
	return math.Perspective(math.Radians(90), 1, near, far)
}

// FaceView returns the view matrix of one face.
func FaceView(lightPos math.Vec3, face int) math.Mat4 {
	return math.LookAt(lightPos, lightPos.Add(faceDirs[face][0]), faceDirs[face][1])
}

// FaceTransforms returns projection * view for every face.
func FaceTransforms(lightPos math.Vec3, near, far float32) [FaceCount]math.Mat4 {
	proj := Projection(near, far)
	var out [FaceCount]math.Mat4
	for f := range out {
		out[f] = proj.Mul(FaceView(lightPos, f))
	}
	return out
}

// FaceFor returns the face a direction from the light falls in, picking
// the axis with the largest magnitude.
func FaceFor(dir math.Vec3) int {
	ax, ay, az := abs32(dir.X), abs32(dir.Y), abs32(dir.Z)
	switch {
	case ax >= ay && ax >= az:
		if dir.X >= 0 {
			return FacePositiveX
		}
		return FaceNegativeX
	case ay >= az:
		if dir.Y >= 0 {
			return FacePositiveY
		}
		return FaceNegativeY
	default:
		if dir.Z >= 0 {
			return FacePositiveZ
		}
		return FaceNegativeZ
	}
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
