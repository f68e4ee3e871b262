package shadow

import (
	"github.com/Faultbox/cubeshadow/internal/engine/collision"
	"github.com/Faultbox/cubeshadow/internal/engine/scene"
	"github.com/Faultbox/cubeshadow/pkg/math"
)

// Target receives the depth draws of one shadow pass.
type Target interface {
	// BeginFace prepares face for drawing with the combined
	// projection * view matrix of that face.
	BeginFace(face int, shadowMatrix math.Mat4, lightPos math.Vec3, far float32)
	// Draw renders one object with its model matrix.
	Draw(o *scene.Object, model math.Mat4)
	// EndFace finishes face.
	EndFace(face int)
}

// Pass traverses the scene once per cube face.
type Pass struct {
	Near float32
	Far  float32
	// CullFaces skips objects whose bounds miss a face's frustum.
	CullFaces bool
}

// NewPass creates a pass with the given clip planes.
func NewPass(near, far float32) *Pass {
	if near <= 0 {
		near = DefaultNear
	}
	if far <= near {
		far = DefaultFar
	}
	return &Pass{Near: near, Far: far}
}

// Stats counts draws issued by one Render.
type Stats struct {
	Draws  int
	Culled int
}

// Render draws every shadow casting object into all six faces.
func (p *Pass) Render(t Target, lightPos math.Vec3, objects []*scene.Object) Stats {
	var stats Stats
	transforms := FaceTransforms(lightPos, p.Near, p.Far)

	for face, m := range transforms {
		t.BeginFace(face, m, lightPos, p.Far)

		var frustum collision.Frustum
		if p.CullFaces {
			frustum = collision.NewFrustum(m)
		}

		for _, o := range objects {
			if !o.CastsShadow() {
				continue
			}
			if p.CullFaces && !frustum.IsBoxInFrustum(o.LocalBounds, o.Position, o.Scale) {
				stats.Culled++
				continue
			}
			t.Draw(o, o.ModelMatrix())
			stats.Draws++
		}

		t.EndFace(face)
	}
	return stats
}
