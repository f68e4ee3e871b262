package lighting

import (
	gomath "math"

	"github.com/Faultbox/cubeshadow/pkg/math"
)

// MaxAdditionalLights is the array size of the forward shader's extra
// light uniforms.
const MaxAdditionalLights = 16

// Flicker tuning.
const (
	bobAmplitude = 0.5
	phaseStep    = 2.5
	minFlicker   = 0.2
	maxFlicker   = 0.8
)

var flickerBase = math.Vec3{X: 1, Y: 0.8, Z: 0.6}

// LightID identifies an additional light. IDs are never reused.
type LightID int

// SimpleLight is a point light without shadows.
type SimpleLight struct {
	ID        LightID
	Position  math.Vec3
	Base      math.Vec3 // Position before flicker
	Color     math.Vec3
	Intensity float32
	Flicker   bool
}

// Set holds additional lights in insertion order.
type Set struct {
	lights []SimpleLight
	nextID LightID
}

// NewSet creates an empty set.
func NewSet() *Set {
	return &Set{lights: make([]SimpleLight, 0, MaxAdditionalLights)}
}

// Add appends a light and returns its ID.
func (s *Set) Add(position, color math.Vec3, intensity float32) LightID {
	id := s.nextID
	s.nextID++
	s.lights = append(s.lights, SimpleLight{
		ID:        id,
		Position:  position,
		Base:      position,
		Color:     color,
		Intensity: intensity,
	})
	return id
}

// Remove deletes a light. Returns false if the ID is unknown.
func (s *Set) Remove(id LightID) bool {
	for i := range s.lights {
		if s.lights[i].ID == id {
			s.lights = append(s.lights[:i], s.lights[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Set) find(id LightID) *SimpleLight {
	for i := range s.lights {
		if s.lights[i].ID == id {
			return &s.lights[i]
		}
	}
	return nil
}

// SetPosition moves a light. Unknown IDs are ignored.
func (s *Set) SetPosition(id LightID, p math.Vec3) {
	if l := s.find(id); l != nil {
		l.Position = p
		l.Base = p
	}
}

// SetColor recolors a light. Unknown IDs are ignored.
func (s *Set) SetColor(id LightID, c math.Vec3) {
	if l := s.find(id); l != nil {
		l.Color = c
	}
}

// SetIntensity changes a light's intensity. Unknown IDs are ignored.
func (s *Set) SetIntensity(id LightID, intensity float32) {
	if l := s.find(id); l != nil {
		l.Intensity = intensity
	}
}

// SetFlicker enables or disables flicker for a light.
func (s *Set) SetFlicker(id LightID, on bool) {
	if l := s.find(id); l != nil {
		l.Flicker = on
		if !on {
			l.Position = l.Base
		}
	}
}

// Get returns a copy of a light.
func (s *Set) Get(id LightID) (SimpleLight, bool) {
	if l := s.find(id); l != nil {
		return *l, true
	}
	return SimpleLight{}, false
}

// Lights returns the lights in insertion order.
func (s *Set) Lights() []SimpleLight {
	return s.lights
}

// Len returns the number of lights.
func (s *Set) Len() int {
	return len(s.lights)
}

// Update animates flickering lights at time t. Each light i gets a phase
// offset so they do not pulse in unison.
func (s *Set) Update(t float64) {
	for i := range s.lights {
		l := &s.lights[i]
		if !l.Flicker {
			continue
		}
		fi := float64(i)

		l.Position = l.Base
		l.Position.Y += bobAmplitude * float32(gomath.Sin(t*0.5+fi*0.5))

		phase := t + fi*phaseStep
		r := float32((gomath.Sin(phase) + 1) / 2)
		g := float32((gomath.Sin(phase+2) + 1) / 2)
		b := float32((gomath.Sin(phase+4) + 1) / 2)
		l.Color = flickerBase.Mul(math.Vec3{X: r, Y: g, Z: b})
		l.Intensity = min(max(r, minFlicker), maxFlicker)
	}
}

// Uniforms returns flat arrays for GPU upload, capped at
// MaxAdditionalLights. Positions are transformed by view.
func (s *Set) Uniforms(view math.Mat4) (positions, colors, intensities []float32, count int32) {
	n := min(len(s.lights), MaxAdditionalLights)
	positions = make([]float32, MaxAdditionalLights*3)
	colors = make([]float32, MaxAdditionalLights*3)
	intensities = make([]float32, MaxAdditionalLights)

	for i, l := range s.lights[:n] {
		p := view.TransformVec3(l.Position)
		positions[i*3+0] = p.X
		positions[i*3+1] = p.Y
		positions[i*3+2] = p.Z
		colors[i*3+0] = l.Color.X
		colors[i*3+1] = l.Color.Y
		colors[i*3+2] = l.Color.Z
		intensities[i] = l.Intensity
	}
	return positions, colors, intensities, int32(n)
}
