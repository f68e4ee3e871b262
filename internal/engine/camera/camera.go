// Package camera provides the first-person camera used to walk the scene.
package camera

import (
	gomath "math"

	"github.com/Faultbox/cubeshadow/internal/engine/collision"
	"github.com/Faultbox/cubeshadow/pkg/math"
)

// Pitch is clamped short of vertical so the view basis never degenerates.
const maxPitch = 89.0

var worldUp = math.Vec3{Y: 1}

// FPSCamera looks around with yaw/pitch and walks on the XZ plane.
// Its height never changes while walking.
type FPSCamera struct {
	Position math.Vec3

	// Angles in degrees. Yaw -90 looks down -Z.
	Yaw   float32
	Pitch float32

	// Projection
	FOV  float32 // Degrees
	Near float32
	Far  float32

	Speed       float32 // Units per second
	Sensitivity float32 // Degrees per pixel of mouse motion

	// Collision cylinder centered on Position.
	Radius float32
	Height float32
}

// NewFPSCamera creates a camera at position looking down -Z.
func NewFPSCamera(position math.Vec3) *FPSCamera {
	return &FPSCamera{
		Position:    position,
		Yaw:         -90,
		FOV:         45,
		Near:        0.1,
		Far:         100,
		Speed:       3,
		Sensitivity: 0.1,
		Radius:      0.3,
		Height:      1.6,
	}
}

// Front returns the normalized view direction.
func (c *FPSCamera) Front() math.Vec3 {
	yaw := float64(math.Radians(c.Yaw))
	pitch := float64(math.Radians(c.Pitch))
	return math.Vec3{
		X: float32(gomath.Cos(yaw) * gomath.Cos(pitch)),
		Y: float32(gomath.Sin(pitch)),
		Z: float32(gomath.Sin(yaw) * gomath.Cos(pitch)),
	}.Normalize()
}

// ViewMatrix returns the view matrix for this camera.
func (c *FPSCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position, c.Position.Add(c.Front()), worldUp)
}

// ProjectionMatrix returns the perspective projection for aspect.
func (c *FPSCamera) ProjectionMatrix(aspect float32) math.Mat4 {
	return math.Perspective(math.Radians(c.FOV), aspect, c.Near, c.Far)
}

// HandleMouse turns the camera by a relative mouse motion.
func (c *FPSCamera) HandleMouse(dx, dy float32) {
	c.Yaw += dx * c.Sensitivity
	c.Pitch -= dy * c.Sensitivity
	c.Pitch = min(max(c.Pitch, -maxPitch), maxPitch)
}

// Movement holds the walk keys held this frame.
type Movement struct {
	Forward, Back, Left, Right bool
}

// Any reports whether any walk key is held.
func (m Movement) Any() bool {
	return m.Forward || m.Back || m.Left || m.Right
}

// ProposeMove returns where the camera would be after dt seconds of m,
// moving along the view direction projected onto XZ.
func (c *FPSCamera) ProposeMove(m Movement, dt float32) math.Vec3 {
	front := c.Front()
	front.Y = 0
	if front.LengthSqr() == 0 {
		return c.Position
	}
	front = front.Normalize()
	right := front.Cross(worldUp).Normalize()
	step := c.Speed * dt

	p := c.Position
	if m.Forward {
		p = p.Add(front.Scale(step))
	}
	if m.Back {
		p = p.Sub(front.Scale(step))
	}
	if m.Left {
		p = p.Sub(right.Scale(step))
	}
	if m.Right {
		p = p.Add(right.Scale(step))
	}
	p.Y = c.Position.Y
	return p
}

// Move applies m unless the camera cylinder at the new position would
// touch one of boxes. Returns true if the camera moved.
func (c *FPSCamera) Move(m Movement, dt float32, boxes []collision.AABB) bool {
	if !m.Any() {
		return false
	}
	next := c.ProposeMove(m, dt)
	if collision.CollidesAny(next, c.Radius, c.Height, boxes) {
		return false
	}
	c.Position = next
	return true
}
