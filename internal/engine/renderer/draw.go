package renderer

import (
	"github.com/Faultbox/cubeshadow/internal/engine/collision"
	"github.com/Faultbox/cubeshadow/internal/engine/geometry"
	"github.com/Faultbox/cubeshadow/internal/engine/material"
	"github.com/Faultbox/cubeshadow/internal/engine/scene"
	"github.com/Faultbox/cubeshadow/pkg/math"
)

// LightMarkerScale is the radius of the sphere drawn at the primary light.
const LightMarkerScale = 0.1

// View describes the camera for one frame.
type View struct {
	View       math.Mat4
	Projection math.Mat4
	Eye        math.Vec3
	// Cull drops objects whose bounds are outside the view frustum.
	Cull bool
}

// DrawCall is everything the forward pass needs for one object.
type DrawCall struct {
	Name     string
	Geometry geometry.Handle

	Model  math.Mat4
	MV     math.Mat4
	MVP    math.Mat4
	Normal [9]float32

	Material     material.Material
	UseTexture   bool
	UseNormalMap bool
	Emissive     math.Vec3
	Unlit        bool
	Blend        bool
}

// FrameStats counts what one frame drew.
type FrameStats struct {
	Drawn  int
	Culled int
}

func newDrawCall(name string, g geometry.Handle, model math.Mat4, m material.Material, v View) DrawCall {
	mv := v.View.Mul(model)
	return DrawCall{
		Name:         name,
		Geometry:     g,
		Model:        model,
		MV:           mv,
		MVP:          v.Projection.Mul(mv),
		Normal:       mv.NormalMatrix(),
		Material:     m,
		UseTexture:   m.HasTexture(),
		UseNormalMap: m.HasNormalMap(),
	}
}

// BuildDrawCalls orders the scene for the forward pass: sky first, then
// opaque objects in insertion order, then everything blended far to
// near. An opaque-layer object whose material has alpha below one is
// blended. Materials must resolve; a dangling index panics.
func BuildDrawCalls(sc *scene.Scene, v View) ([]DrawCall, FrameStats) {
	var stats FrameStats
	var frustum collision.Frustum
	if v.Cull {
		frustum = collision.NewFrustum(v.Projection.Mul(v.View))
	}

	reg := sc.Registry
	calls := make([]DrawCall, 0, reg.Len())

	emit := func(o *scene.Object) {
		if v.Cull && o.Layer != scene.LayerSky &&
			!frustum.IsBoxInFrustum(o.LocalBounds, o.Position, o.Scale) {
			stats.Culled++
			return
		}
		dc := newDrawCall(o.Name, o.Geometry, o.ModelMatrix(), sc.Materials.MustGet(o.Material), v)
		switch o.Layer {
		case scene.LayerSky:
			dc.Unlit = true
		case scene.LayerTransparent:
			dc.Blend = true
		}
		if dc.Material.Transparent() {
			dc.Blend = true
		}
		calls = append(calls, dc)
		stats.Drawn++
	}

	for _, o := range reg.InLayer(scene.LayerSky) {
		emit(o)
	}
	var blended []*scene.Object
	for _, o := range reg.InLayer(scene.LayerOpaque) {
		if sc.Materials.MustGet(o.Material).Transparent() {
			blended = append(blended, o)
			continue
		}
		emit(o)
	}
	for _, o := range scene.SortBackToFront(append(blended, reg.InLayer(scene.LayerTransparent)...), v.Eye) {
		emit(o)
	}
	return calls, stats
}

// LightMarker returns the draw call for the small sphere at the primary
// light. Its color comes from the light alone and it never samples a
// texture.
func LightMarker(sc *scene.Scene, v View) DrawCall {
	l := sc.Light
	model := math.Model(l.Position, math.Vec3{}, 0,
		math.Vec3{X: LightMarkerScale, Y: LightMarkerScale, Z: LightMarkerScale})
	kd := l.Radiance().Scale(0.2)
	m := material.Material{Kd: kd, Shininess: 1, Alpha: 1}

	dc := newDrawCall("light", sc.Primitives.Sphere, model, m, v)
	dc.UseTexture = false
	dc.UseNormalMap = false
	dc.Emissive = kd
	return dc
}
