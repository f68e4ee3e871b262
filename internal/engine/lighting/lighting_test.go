package lighting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/cubeshadow/pkg/math"
)

func TestOrbit(t *testing.T) {
	o := Orbit{Center: math.Vec3{X: 9, Y: 1, Z: 3}, Radius: 2, Speed: 0.5, Height: 1.5}

	p := o.At(0)
	assert.InDelta(t, 11, p.X, 1e-5)
	assert.InDelta(t, 2.5, p.Y, 1e-5)
	assert.InDelta(t, 3, p.Z, 1e-5)

	// Every point stays on the circle.
	for _, tm := range []float64{0.3, 1, 4.2, 10} {
		q := o.At(tm)
		d := math.Vec3{X: q.X - 9, Z: q.Z - 3}.Length()
		assert.InDelta(t, 2, d, 1e-4)
	}
}

func TestPointLightUpdate(t *testing.T) {
	l := NewPointLight(math.Vec3{Y: 5})
	l.Update(3)
	assert.Equal(t, math.Vec3{Y: 5}, l.Position, "no orbit: position is fixed")
	assert.Equal(t, math.Vec3{X: 1, Y: 1, Z: 1}, l.Color)

	l.Orbit = &Orbit{Radius: 1, Speed: 1}
	l.CycleColor = true
	l.Update(0)
	assert.InDelta(t, 1, l.Position.X, 1e-5)
	assert.InDelta(t, 0.5, l.Color.X, 1e-5)
	assert.InDelta(t, 1, l.Color.Y, 1e-5)
	assert.InDelta(t, 0.5, l.Color.Z, 1e-5)
}

func TestAttenuation(t *testing.T) {
	l := NewPointLight(math.Vec3{})
	assert.InDelta(t, 1, l.Attenuation(0), 1e-6)
	assert.Less(t, l.Attenuation(10), l.Attenuation(1))

	l.Constant, l.Linear, l.Quadratic = 0, 0, 0
	assert.Equal(t, float32(1), l.Attenuation(5))
}

func TestSetAddRemove(t *testing.T) {
	s := NewSet()
	a := s.Add(math.Vec3{X: 1}, math.Vec3{X: 1, Y: 1, Z: 1}, 1)
	b := s.Add(math.Vec3{X: 2}, math.Vec3{X: 1}, 0.5)
	require.NotEqual(t, a, b)
	assert.Equal(t, 2, s.Len())

	assert.True(t, s.Remove(a))
	assert.False(t, s.Remove(a))
	assert.Equal(t, 1, s.Len())

	// IDs are not reused after removal.
	c := s.Add(math.Vec3{}, math.Vec3{}, 1)
	assert.NotEqual(t, a, c)
	assert.NotEqual(t, b, c)
}

func TestSetUpdates(t *testing.T) {
	s := NewSet()
	id := s.Add(math.Vec3{}, math.Vec3{}, 1)

	s.SetPosition(id, math.Vec3{X: 5, Y: 2, Z: 1})
	s.SetColor(id, math.Vec3{X: 0.2, Y: 1, Z: 0.2})
	s.SetIntensity(id, 3.5)
	s.SetIntensity(LightID(99), 1) // ignored

	l, ok := s.Get(id)
	require.True(t, ok)
	assert.Equal(t, math.Vec3{X: 5, Y: 2, Z: 1}, l.Position)
	assert.Equal(t, math.Vec3{X: 0.2, Y: 1, Z: 0.2}, l.Color)
	assert.Equal(t, float32(3.5), l.Intensity)
}

func TestFlickerBounds(t *testing.T) {
	s := NewSet()
	base := math.Vec3{X: 1, Y: 2, Z: 3}
	id := s.Add(base, math.Vec3{X: 1, Y: 1, Z: 1}, 1)
	still := s.Add(base, math.Vec3{X: 1, Y: 1, Z: 1}, 1)
	s.SetFlicker(id, true)

	for tm := 0.0; tm < 20; tm += 0.37 {
		s.Update(tm)
		l, _ := s.Get(id)
		assert.GreaterOrEqual(t, l.Intensity, float32(minFlicker))
		assert.LessOrEqual(t, l.Intensity, float32(maxFlicker))
		assert.InDelta(t, base.Y, l.Position.Y, bobAmplitude+1e-5)
		assert.Equal(t, base.X, l.Position.X)
		assert.LessOrEqual(t, l.Color.X, flickerBase.X)
	}

	l, _ := s.Get(still)
	assert.Equal(t, float32(1), l.Intensity, "non-flickering light untouched")

	s.SetFlicker(id, false)
	l, _ = s.Get(id)
	assert.Equal(t, base, l.Position)
}

func TestUniformsCap(t *testing.T) {
	s := NewSet()
	for i := 0; i < MaxAdditionalLights+4; i++ {
		s.Add(math.Vec3{X: float32(i)}, math.Vec3{Y: 1}, 2)
	}

	pos, col, inten, n := s.Uniforms(math.Translate(0, 0, -1))
	assert.Equal(t, int32(MaxAdditionalLights), n)
	assert.Len(t, pos, MaxAdditionalLights*3)
	assert.Len(t, col, MaxAdditionalLights*3)
	assert.Len(t, inten, MaxAdditionalLights)

	// Second light at x=1, moved into view space.
	assert.Equal(t, float32(1), pos[3])
	assert.Equal(t, float32(-1), pos[5])
	assert.Equal(t, float32(1), col[4])
	assert.Equal(t, float32(2), inten[0])
}
