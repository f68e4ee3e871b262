package shadow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/cubeshadow/internal/engine/geometry"
	"github.com/Faultbox/cubeshadow/internal/engine/scene"
	"github.com/Faultbox/cubeshadow/pkg/math"
)

func TestFaceViewsAxisAligned(t *testing.T) {
	for f := 0; f < FaceCount; f++ {
		dir := FaceDirection(f)
		view := FaceView(math.Vec3{}, f)

		// A point on the face axis lands on the view -Z axis.
		p := view.TransformVec3(dir.Scale(3))
		assert.InDelta(t, 0, p.X, 1e-5, "face %d", f)
		assert.InDelta(t, 0, p.Y, 1e-5, "face %d", f)
		assert.InDelta(t, -3, p.Z, 1e-5, "face %d", f)

		// Up vector is never parallel to the forward axis.
		assert.InDelta(t, 0, dir.Dot(FaceUp(f)), 1e-6, "face %d", f)
	}
}

func TestFaceTransformsInsideClipVolume(t *testing.T) {
	transforms := FaceTransforms(math.Vec3{}, DefaultNear, DefaultFar)
	for f, m := range transforms {
		for _, d := range []float32{1, 2.5, 10, 25} {
			p := FaceDirection(f).Scale(d)
			c := m.MulVec4(math.Vec4{p.X, p.Y, p.Z, 1})
			require.Greater(t, c[3], float32(0))

			x, y, z := c[0]/c[3], c[1]/c[3], c[2]/c[3]
			depth := z*0.5 + 0.5
			assert.True(t, x >= -1 && x <= 1, "face %d d=%v x=%v", f, d, x)
			assert.True(t, y >= -1 && y <= 1, "face %d d=%v y=%v", f, d, y)
			assert.True(t, depth >= -1e-5 && depth <= 1+1e-5, "face %d d=%v depth=%v", f, d, depth)
		}
	}
}

func TestFaceTransformsOffCenterLight(t *testing.T) {
	light := math.Vec3{X: 3, Y: -2, Z: 7}
	transforms := FaceTransforms(light, DefaultNear, DefaultFar)
	p := light.Add(FaceDirection(FaceNegativeY).Scale(4))
	c := transforms[FaceNegativeY].MulVec4(math.Vec4{p.X, p.Y, p.Z, 1})
	assert.InDelta(t, 0, c[0]/c[3], 1e-5)
	assert.InDelta(t, 0, c[1]/c[3], 1e-5)
}

func TestFaceFor(t *testing.T) {
	tests := []struct {
		dir  math.Vec3
		want int
	}{
		{math.Vec3{X: 1}, FacePositiveX},
		{math.Vec3{X: -2, Y: 1}, FaceNegativeX},
		{math.Vec3{Y: 3, Z: 1}, FacePositiveY},
		{math.Vec3{Y: -1}, FaceNegativeY},
		{math.Vec3{X: 0.2, Z: 0.5}, FacePositiveZ},
		{math.Vec3{Z: -1}, FaceNegativeZ},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FaceFor(tt.dir), "%+v", tt.dir)
	}
}

func TestNewPassDefaults(t *testing.T) {
	p := NewPass(0, 0)
	assert.Equal(t, float32(DefaultNear), p.Near)
	assert.Equal(t, float32(DefaultFar), p.Far)

	p = NewPass(0.5, 40)
	assert.Equal(t, float32(0.5), p.Near)
	assert.Equal(t, float32(40), p.Far)
}

type recorder struct {
	begun  []int
	ended  []int
	draws  map[int][]string
	models []math.Mat4
}

func (r *recorder) BeginFace(face int, _ math.Mat4, _ math.Vec3, _ float32) {
	r.begun = append(r.begun, face)
}

func (r *recorder) Draw(o *scene.Object, model math.Mat4) {
	face := r.begun[len(r.begun)-1]
	r.draws[face] = append(r.draws[face], o.Name)
	r.models = append(r.models, model)
}

func (r *recorder) EndFace(face int) {
	r.ended = append(r.ended, face)
}

func newRecorder() *recorder {
	return &recorder{draws: make(map[int][]string)}
}

func TestPassVisitsEveryFace(t *testing.T) {
	reg := scene.NewRegistry()
	reg.AddCube(scene.Spec{Name: "box", Position: math.Vec3{X: 5}, Scale: math.Vec3{X: 1, Y: 1, Z: 1}, Static: true})
	reg.AddSphere(scene.Spec{Name: "sky", Layer: scene.LayerSky, Static: true}, 50)

	rec := newRecorder()
	stats := NewPass(1, 25).Render(rec, math.Vec3{}, reg.All())

	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, rec.begun)
	assert.Equal(t, rec.begun, rec.ended)
	assert.Equal(t, 6, stats.Draws)
	for f := 0; f < FaceCount; f++ {
		assert.Equal(t, []string{"box"}, rec.draws[f], "sky is never drawn")
	}

	o, _ := reg.Get(0)
	assert.Equal(t, o.ModelMatrix(), rec.models[0])
}

func TestPassCullFaces(t *testing.T) {
	reg := scene.NewRegistry()
	reg.AddCube(scene.Spec{Name: "box", Position: math.Vec3{X: 5}, Scale: math.Vec3{X: 1, Y: 1, Z: 1}, Static: true})

	p := NewPass(1, 25)
	p.CullFaces = true
	rec := newRecorder()
	stats := p.Render(rec, math.Vec3{}, reg.All())

	assert.Equal(t, 1, stats.Draws)
	assert.Equal(t, 5, stats.Culled)
	assert.Equal(t, []string{"box"}, rec.draws[FacePositiveX])
}

func primitiveMeshes() MeshSource {
	cube := geometry.Cube()
	sphere := geometry.Sphere(geometry.SphereSectors, geometry.SphereStacks)
	return func(o *scene.Object) *geometry.Mesh {
		switch o.Kind {
		case scene.KindCube:
			return cube
		case scene.KindSphere:
			return sphere
		}
		return nil
	}
}

func floorScene() *scene.Registry {
	reg := scene.NewRegistry()
	reg.AddCube(scene.Spec{
		Name:     "floor",
		Position: math.Vec3{Y: -1},
		Scale:    math.Vec3{X: 10, Y: 1, Z: 10},
		Static:   true,
	})
	return reg
}

func TestSoftwareFloorOnly(t *testing.T) {
	light := math.Vec3{Y: 5}
	sw := NewSoftware(64, primitiveMeshes())
	NewPass(DefaultNear, DefaultFar).Render(sw, light, floorScene().All())

	// Floor top is at y = -0.5.
	assert.InDelta(t, 5.5, sw.Sample(math.Vec3{Y: -1})*DefaultFar, 0.01)
	// Nothing above the light.
	assert.Equal(t, float32(1), sw.Sample(math.Vec3{Y: 1}))
}

func TestSoftwareSphereOccludesFloor(t *testing.T) {
	light := math.Vec3{Y: 5}
	reg := floorScene()
	reg.AddSphere(scene.Spec{Name: "ball", Position: math.Vec3{Y: 1}, Static: true}, 1)

	sw := NewSoftware(64, primitiveMeshes())
	NewPass(DefaultNear, DefaultFar).Render(sw, light, reg.All())

	got := sw.Sample(math.Vec3{Y: -1}) * DefaultFar
	assert.InDelta(t, 3, got, 0.05, "light height minus sphere top")
	assert.Less(t, got, float32(5.5))

	// Off to the side the floor is still visible.
	side := math.Vec3{X: 4, Y: -5.5}
	assert.InDelta(t, side.Length(), sw.Sample(side)*DefaultFar, 0.2)
}

func TestSoftwareNearClipping(t *testing.T) {
	// A large cube around the light crosses the near plane of every face.
	reg := scene.NewRegistry()
	reg.AddCube(scene.Spec{Name: "room", Scale: math.Vec3{X: 8, Y: 8, Z: 8}, Static: true})

	sw := NewSoftware(32, primitiveMeshes())
	NewPass(DefaultNear, DefaultFar).Render(sw, math.Vec3{}, reg.All())

	for f := 0; f < FaceCount; f++ {
		assert.InDelta(t, 4, sw.Sample(FaceDirection(f))*DefaultFar, 0.01, "face %d", f)
	}
}
