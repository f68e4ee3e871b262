package animation

import (
	gomath "math"

	"github.com/Faultbox/cubeshadow/internal/engine/scene"
	"github.com/Faultbox/cubeshadow/pkg/math"
)

// Default rocking parameters.
const (
	DefaultRockFrequency = 0.30
	DefaultRockRadius    = 0.3
	DefaultRockLength    = 0.08
)

var rockAxis = math.Vec3{X: 1}

// RockingChair rocks an object around its rest pose. The rotation is
// applied about the X axis so the chair tips along its Z travel.
type RockingChair struct {
	Frequency float64
	Radius    float64
	Length    float64
}

// NewRockingChair returns a behavior with the default parameters.
func NewRockingChair() *RockingChair {
	return &RockingChair{
		Frequency: DefaultRockFrequency,
		Radius:    DefaultRockRadius,
		Length:    DefaultRockLength,
	}
}

// Apply implements scene.Behavior.
func (r *RockingChair) Apply(o *scene.Object, t float64) {
	offset, rot := GetRockingChairPositionAndRotation(t, r.Frequency, r.Radius, r.Length)
	o.Position = o.InitialPosition.Add(offset)
	o.RotationAxis = rockAxis
	o.RotationAngle = o.RestAngle(rockAxis) + rot
}

// Orbit circles an object around Center on the XZ plane, keeping the
// rest pose height.
type Orbit struct {
	Center math.Vec3
	Radius float32
	Speed  float32 // Radians per second
	Phase  float32
}

// Apply implements scene.Behavior.
func (b *Orbit) Apply(o *scene.Object, t float64) {
	a := float64(b.Phase) + t*float64(b.Speed)
	o.Position = math.Vec3{
		X: b.Center.X + b.Radius*float32(gomath.Cos(a)),
		Y: o.InitialPosition.Y,
		Z: b.Center.Z + b.Radius*float32(gomath.Sin(a)),
	}
}

// Spin turns an object about Axis at a constant rate.
type Spin struct {
	Axis             math.Vec3
	DegreesPerSecond float32
}

// Apply implements scene.Behavior.
func (s *Spin) Apply(o *scene.Object, t float64) {
	o.RotationAxis = s.Axis
	deg := gomath.Mod(float64(o.RestAngle(s.Axis))+t*float64(s.DegreesPerSecond), 360)
	o.RotationAngle = float32(deg)
}
