// Package lighting provides the shadow-casting primary point light and the
// additional non-shadowing point lights of a scene.
package lighting

import (
	gomath "math"

	"github.com/Faultbox/cubeshadow/pkg/math"
)

// Orbit moves a light around a center on the XZ plane:
// (cx + r cos(t s), cy + h, cz + r sin(t s)).
type Orbit struct {
	Center math.Vec3
	Radius float32
	Speed  float32 // Radians per second
	Height float32 // Offset above Center.Y
}

// At returns the orbit position at time t.
func (o Orbit) At(t float64) math.Vec3 {
	a := t * float64(o.Speed)
	return math.Vec3{
		X: o.Center.X + o.Radius*float32(gomath.Cos(a)),
		Y: o.Center.Y + o.Height,
		Z: o.Center.Z + o.Radius*float32(gomath.Sin(a)),
	}
}

// PointLight is the primary light. It is the only light that drives the
// cube shadow map.
type PointLight struct {
	Position  math.Vec3
	Color     math.Vec3
	Intensity float32

	// Attenuation coefficients: 1 / (c + l*d + q*d*d).
	Constant  float32
	Linear    float32
	Quadratic float32

	// Orbit, when set, overrides Position on Update.
	Orbit *Orbit
	// CycleColor makes Update oscillate the color over time.
	CycleColor bool
}

// NewPointLight returns a white light with the default attenuation.
func NewPointLight(position math.Vec3) *PointLight {
	return &PointLight{
		Position:  position,
		Color:     math.Vec3{X: 1, Y: 1, Z: 1},
		Intensity: 1,
		Constant:  1,
		Linear:    0.09,
		Quadratic: 0.032,
	}
}

// Update advances orbit and color cycling to time t (seconds).
func (l *PointLight) Update(t float64) {
	if l.Orbit != nil {
		l.Position = l.Orbit.At(t)
	}
	if l.CycleColor {
		l.Color = math.Vec3{
			X: float32((gomath.Sin(t) + 1) / 2),
			Y: float32((gomath.Cos(t) + 1) / 2),
			Z: float32((gomath.Sin(t*0.5) + 1) / 2),
		}
	}
}

// Attenuation returns the distance falloff factor at d.
func (l *PointLight) Attenuation(d float32) float32 {
	denom := l.Constant + l.Linear*d + l.Quadratic*d*d
	if denom <= 0 {
		return 1
	}
	return 1 / denom
}

// Radiance returns color * intensity, the value uploaded to the shader.
func (l *PointLight) Radiance() math.Vec3 {
	return l.Color.Scale(l.Intensity)
}
