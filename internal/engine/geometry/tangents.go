package geometry

import "github.com/Faultbox/cubeshadow/pkg/math"

// ComputeTangents fills per-vertex tangent and bitangent vectors for
// tangent-space normal mapping. Contributions are accumulated per
// triangle, then each frame is orthogonalized against the normal.
// Triangles with a degenerate UV area contribute nothing.
func ComputeTangents(m *Mesh) {
	for i := range m.Vertices {
		m.Vertices[i].Tangent = [3]float32{}
		m.Vertices[i].Bitangent = [3]float32{}
	}

	m.Triangles(func(v0, v1, v2 *Vertex) {
		p0 := math.FromArr(v0.Position)
		e1 := math.FromArr(v1.Position).Sub(p0)
		e2 := math.FromArr(v2.Position).Sub(p0)

		du1 := v1.TexCoord[0] - v0.TexCoord[0]
		dv1 := v1.TexCoord[1] - v0.TexCoord[1]
		du2 := v2.TexCoord[0] - v0.TexCoord[0]
		dv2 := v2.TexCoord[1] - v0.TexCoord[1]

		denom := du1*dv2 - du2*dv1
		if denom == 0 {
			return
		}
		r := 1 / denom

		t := e1.Scale(dv2 * r).Sub(e2.Scale(dv1 * r))
		b := e2.Scale(du1 * r).Sub(e1.Scale(du2 * r))

		for _, v := range [3]*Vertex{v0, v1, v2} {
			v.Tangent = math.FromArr(v.Tangent).Add(t).Arr()
			v.Bitangent = math.FromArr(v.Bitangent).Add(b).Arr()
		}
	})

	for i := range m.Vertices {
		v := &m.Vertices[i]
		n := math.FromArr(v.Normal)
		t := math.FromArr(v.Tangent)
		b := math.FromArr(v.Bitangent)

		// Gram-Schmidt: T = normalize(T - N*(N·T))
		t = t.Sub(n.Scale(n.Dot(t)))
		if t.LengthSqr() < 1e-8 {
			// Poles and degenerate UVs: any vector perpendicular to N.
			if n.X < 0.9 && n.X > -0.9 {
				t = math.Vec3{X: 1}.Sub(n.Scale(n.X))
			} else {
				t = math.Vec3{Y: 1}.Sub(n.Scale(n.Y))
			}
		}
		t = t.Normalize()

		if b.LengthSqr() < 1e-8 {
			b = n.Cross(t)
		}

		v.Tangent = t.Arr()
		v.Bitangent = b.Normalize().Arr()
	}
}
