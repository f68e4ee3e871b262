// Package animation drives dynamic scene objects from a pausable clock.
package animation

import (
	gomath "math"

	"github.com/Faultbox/cubeshadow/pkg/math"
)

// GetRockingChairPositionAndRotation returns the rocking offset and Z
// rotation (degrees) at time t. The base rolls back and forth along Z by
// length/2 * sin(2*pi*f*t) and turns by the rolled arc over radius.
func GetRockingChairPositionAndRotation(t, frequency, radius, length float64) (math.Vec3, float32) {
	omega := 2 * gomath.Pi * frequency
	displacement := length * 0.5 * gomath.Sin(omega*t)
	theta := displacement / radius

	offset := math.Vec3{Z: float32(-displacement)}
	return offset, float32(-theta * 180 / gomath.Pi)
}
