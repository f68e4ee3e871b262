// Package geometry builds and uploads the vertex data shared by scene
// objects: a procedural cube, a procedural UV sphere and imported meshes.
package geometry

import (
	gomath "math"

	"github.com/Faultbox/cubeshadow/pkg/math"
)

// Vertex is the interleaved layout every primitive exposes to the shaders.
type Vertex struct {
	Position  [3]float32
	Normal    [3]float32
	TexCoord  [2]float32
	Tangent   [3]float32
	Bitangent [3]float32
}

// Mesh is CPU-side geometry. A nil Indices slice means a flat triangle list.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
}

// Indexed reports whether the mesh is drawn with an index buffer.
func (m *Mesh) Indexed() bool {
	return m.Indices != nil
}

// Count returns the number of elements passed to the draw call.
func (m *Mesh) Count() int32 {
	if m.Indexed() {
		return int32(len(m.Indices))
	}
	return int32(len(m.Vertices))
}

// Positions returns the raw vertex positions.
func (m *Mesh) Positions() [][3]float32 {
	out := make([][3]float32, len(m.Vertices))
	for i, v := range m.Vertices {
		out[i] = v.Position
	}
	return out
}

// Triangles calls fn for every triangle in draw order.
func (m *Mesh) Triangles(fn func(a, b, c *Vertex)) {
	if m.Indexed() {
		for i := 0; i+2 < len(m.Indices); i += 3 {
			fn(&m.Vertices[m.Indices[i]], &m.Vertices[m.Indices[i+1]], &m.Vertices[m.Indices[i+2]])
		}
		return
	}
	for i := 0; i+2 < len(m.Vertices); i += 3 {
		fn(&m.Vertices[i], &m.Vertices[i+1], &m.Vertices[i+2])
	}
}

// cubeFaces lists outward normal, right and up axes for each face so
// every quad winds counter-clockwise seen from outside.
var cubeFaces = [6][3]math.Vec3{
	{{X: 0, Y: 0, Z: 1}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}},   // +Z
	{{X: 0, Y: 0, Z: -1}, {X: -1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}}, // -Z
	{{X: -1, Y: 0, Z: 0}, {X: 0, Y: 0, Z: 1}, {X: 0, Y: 1, Z: 0}},  // -X
	{{X: 1, Y: 0, Z: 0}, {X: 0, Y: 0, Z: -1}, {X: 0, Y: 1, Z: 0}},  // +X
	{{X: 0, Y: 1, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 0, Z: -1}},  // +Y
	{{X: 0, Y: -1, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 0, Z: 1}},  // -Y
}

// Cube returns a unit cube centered on the origin with 24 vertices
// (4 per face, so normals and UVs stay per-face) and 36 indices.
func Cube() *Mesh {
	m := &Mesh{
		Vertices: make([]Vertex, 0, 24),
		Indices:  make([]uint32, 0, 36),
	}
	corners := [4][2]float32{{-0.5, -0.5}, {0.5, -0.5}, {0.5, 0.5}, {-0.5, 0.5}}

	for _, face := range cubeFaces {
		n, r, u := face[0], face[1], face[2]
		base := uint32(len(m.Vertices))
		for _, c := range corners {
			p := n.Scale(0.5).Add(r.Scale(c[0])).Add(u.Scale(c[1]))
			m.Vertices = append(m.Vertices, Vertex{
				Position: p.Arr(),
				Normal:   n.Arr(),
				TexCoord: [2]float32{c[0] + 0.5, c[1] + 0.5},
			})
		}
		m.Indices = append(m.Indices, base, base+1, base+2, base+2, base+3, base)
	}

	ComputeTangents(m)
	return m
}

// Default sphere tessellation.
const (
	SphereSectors = 32
	SphereStacks  = 16
)

// Sphere returns a radius-1 UV sphere as a flat triangle list with no
// index buffer, sectors around Y and stacks from pole to pole.
func Sphere(sectors, stacks int) *Mesh {
	if sectors < 3 {
		sectors = 3
	}
	if stacks < 2 {
		stacks = 2
	}

	point := func(i, j int) Vertex {
		phi := 2 * gomath.Pi * float64(i) / float64(sectors)
		theta := -gomath.Pi/2 + gomath.Pi*float64(j)/float64(stacks)
		p := [3]float32{
			float32(gomath.Sin(phi) * gomath.Cos(theta)),
			float32(gomath.Sin(theta)),
			float32(gomath.Cos(phi) * gomath.Cos(theta)),
		}
		return Vertex{
			Position: p,
			Normal:   p,
			TexCoord: [2]float32{float32(i) / float32(sectors), float32(j) / float32(stacks)},
		}
	}

	m := &Mesh{Vertices: make([]Vertex, 0, sectors*stacks*6)}
	for j := 0; j < stacks; j++ {
		for i := 0; i < sectors; i++ {
			a, b := point(i, j), point(i+1, j)
			c, d := point(i+1, j+1), point(i, j+1)
			m.Vertices = append(m.Vertices, a, b, c, a, c, d)
		}
	}

	ComputeTangents(m)
	return m
}
