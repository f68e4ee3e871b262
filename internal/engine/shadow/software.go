package shadow

import (
	gomath "math"

	"github.com/Faultbox/cubeshadow/internal/engine/geometry"
	"github.com/Faultbox/cubeshadow/internal/engine/scene"
	"github.com/Faultbox/cubeshadow/pkg/math"
)

// MeshSource returns the CPU mesh an object is drawn with, or nil.
type MeshSource func(o *scene.Object) *geometry.Mesh

// Software rasterizes the depth pass on the CPU. It stores the same
// value the depth shader writes, so it can stand in for the GPU when
// checking shadow results without a context.
type Software struct {
	Resolution int
	meshes     MeshSource

	faces    [FaceCount][]float32
	matrices [FaceCount]math.Mat4
	lightPos math.Vec3
	far      float32

	cur int
}

// NewSoftware creates a CPU target with size*size texels per face.
func NewSoftware(size int, meshes MeshSource) *Software {
	s := &Software{Resolution: size, meshes: meshes}
	for f := range s.faces {
		s.faces[f] = make([]float32, size*size)
	}
	return s
}

// BeginFace clears a face to the far value.
func (s *Software) BeginFace(face int, shadowMatrix math.Mat4, lightPos math.Vec3, far float32) {
	s.cur = face
	s.matrices[face] = shadowMatrix
	s.lightPos = lightPos
	s.far = far
	for i := range s.faces[face] {
		s.faces[face][i] = 1
	}
}

// EndFace is a no-op.
func (s *Software) EndFace(int) {}

// clipVert carries clip-space and world-space position together so the
// depth value can be computed from the interpolated world point.
type clipVert struct {
	clip  math.Vec4
	world math.Vec3
}

// Draw rasterizes every triangle of the object's mesh.
func (s *Software) Draw(o *scene.Object, model math.Mat4) {
	mesh := s.meshes(o)
	if mesh == nil {
		return
	}
	m := s.matrices[s.cur]
	mesh.Triangles(func(a, b, c *geometry.Vertex) {
		var tri [3]clipVert
		for i, v := range [3]*geometry.Vertex{a, b, c} {
			w := model.TransformVec3(math.FromArr(v.Position))
			tri[i] = clipVert{
				clip:  m.MulVec4(math.Vec4{w.X, w.Y, w.Z, 1}),
				world: w,
			}
		}
		poly := clipNear(tri[:])
		for i := 1; i+1 < len(poly); i++ {
			s.raster(poly[0], poly[i], poly[i+1])
		}
	})
}

// clipNear clips a polygon against the near plane z >= -w.
func clipNear(in []clipVert) []clipVert {
	dist := func(v clipVert) float32 { return v.clip[2] + v.clip[3] }

	out := make([]clipVert, 0, len(in)+2)
	for i := range in {
		a, b := in[i], in[(i+1)%len(in)]
		da, db := dist(a), dist(b)
		if da >= 0 {
			out = append(out, a)
		}
		if (da >= 0) != (db >= 0) {
			t := da / (da - db)
			var v clipVert
			for k := 0; k < 4; k++ {
				v.clip[k] = a.clip[k] + t*(b.clip[k]-a.clip[k])
			}
			v.world = a.world.Lerp(b.world, t)
			out = append(out, v)
		}
	}
	return out
}

type screenVert struct {
	x, y  float32
	invW  float32
	world math.Vec3 // Pre-divided by w
}

func (s *Software) toScreen(v clipVert) screenVert {
	invW := 1 / v.clip[3]
	size := float32(s.Resolution)
	return screenVert{
		x:     (v.clip[0]*invW*0.5 + 0.5) * size,
		y:     (v.clip[1]*invW*0.5 + 0.5) * size,
		invW:  invW,
		world: v.world.Scale(invW),
	}
}

func edge(a, b screenVert, px, py float32) float32 {
	return (b.x-a.x)*(py-a.y) - (b.y-a.y)*(px-a.x)
}

// raster fills texel centers covered by the triangle, keeping the
// smallest normalized light distance. Both windings are drawn.
func (s *Software) raster(c0, c1, c2 clipVert) {
	v0, v1, v2 := s.toScreen(c0), s.toScreen(c1), s.toScreen(c2)
	area := edge(v0, v1, v2.x, v2.y)
	if area == 0 {
		return
	}

	size := s.Resolution
	minX := clampInt(int(floor32(min(v0.x, v1.x, v2.x))), 0, size-1)
	maxX := clampInt(int(floor32(max(v0.x, v1.x, v2.x))), 0, size-1)
	minY := clampInt(int(floor32(min(v0.y, v1.y, v2.y))), 0, size-1)
	maxY := clampInt(int(floor32(max(v0.y, v1.y, v2.y))), 0, size-1)

	depth := s.faces[s.cur]
	for y := minY; y <= maxY; y++ {
		py := float32(y) + 0.5
		for x := minX; x <= maxX; x++ {
			px := float32(x) + 0.5
			w0 := edge(v1, v2, px, py) / area
			w1 := edge(v2, v0, px, py) / area
			w2 := edge(v0, v1, px, py) / area
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}

			invW := w0*v0.invW + w1*v1.invW + w2*v2.invW
			world := v0.world.Scale(w0).Add(v1.world.Scale(w1)).Add(v2.world.Scale(w2)).Scale(1 / invW)
			d := world.Distance(s.lightPos) / s.far

			i := y*size + x
			if d < depth[i] {
				depth[i] = d
			}
		}
	}
}

// Sample returns the stored normalized distance in direction dir from
// the light, mirroring a samplerCube lookup with nearest filtering.
func (s *Software) Sample(dir math.Vec3) float32 {
	face := FaceFor(dir)
	p := s.lightPos.Add(dir.Normalize())
	c := s.matrices[face].MulVec4(math.Vec4{p.X, p.Y, p.Z, 1})
	size := s.Resolution
	x := clampInt(int(floor32((c[0]/c[3]*0.5+0.5)*float32(size))), 0, size-1)
	y := clampInt(int(floor32((c[1]/c[3]*0.5+0.5)*float32(size))), 0, size-1)
	return s.faces[face][y*size+x]
}

// Face returns the raw depth values of one face, row-major.
func (s *Software) Face(face int) []float32 {
	return s.faces[face]
}

func floor32(x float32) float32 {
	return float32(gomath.Floor(float64(x)))
}

func clampInt(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
