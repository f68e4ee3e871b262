package camera

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/cubeshadow/internal/engine/collision"
	"github.com/Faultbox/cubeshadow/pkg/math"
)

func TestFrontDefault(t *testing.T) {
	c := NewFPSCamera(math.Vec3{})
	f := c.Front()
	assert.InDelta(t, 0, f.X, 1e-6)
	assert.InDelta(t, 0, f.Y, 1e-6)
	assert.InDelta(t, -1, f.Z, 1e-6)
}

func TestHandleMouseClampsPitch(t *testing.T) {
	c := NewFPSCamera(math.Vec3{})
	c.HandleMouse(0, -10000)
	assert.Equal(t, float32(maxPitch), c.Pitch)
	c.HandleMouse(0, 10000)
	assert.Equal(t, float32(-maxPitch), c.Pitch)

	c.HandleMouse(100, 0)
	assert.InDelta(t, -80, c.Yaw, 1e-4)
}

func TestProposeMoveKeepsHeight(t *testing.T) {
	c := NewFPSCamera(math.Vec3{Y: 1.5})
	c.Pitch = 45

	p := c.ProposeMove(Movement{Forward: true}, 1)
	assert.Equal(t, float32(1.5), p.Y)
	assert.InDelta(t, -3, p.Z, 1e-5, "full speed along XZ despite pitch")

	p = c.ProposeMove(Movement{Right: true}, 1)
	assert.InDelta(t, 3, p.X, 1e-5)

	p = c.ProposeMove(Movement{Forward: true, Back: true}, 1)
	assert.InDelta(t, 0, p.Z, 1e-5)
}

func TestMoveBlockedByWall(t *testing.T) {
	c := NewFPSCamera(math.Vec3{Y: 1})
	wall := collision.NewAABB(math.Vec3{X: -5, Y: 0, Z: -2}, math.Vec3{X: 5, Y: 3, Z: -1.5})
	boxes := []collision.AABB{wall}

	assert.True(t, c.Move(Movement{Forward: true}, 0.1, boxes))
	assert.InDelta(t, -0.3, c.Position.Z, 1e-5)

	// Next steps would bring the cylinder into the wall.
	for i := 0; i < 10; i++ {
		c.Move(Movement{Forward: true}, 0.1, boxes)
	}
	assert.False(t, collision.CollidesAny(c.Position, c.Radius, c.Height, boxes))
	assert.Greater(t, c.Position.Z, float32(-1.5))
	assert.Less(t, c.Position.Z, float32(-0.6))

	assert.False(t, c.Move(Movement{}, 1, boxes), "no keys, no move")
}

func TestProjectionUsesFOV(t *testing.T) {
	c := NewFPSCamera(math.Vec3{})
	c.FOV = 90
	p := c.ProjectionMatrix(1)
	assert.InDelta(t, 1, p[5], 1e-5)
}
