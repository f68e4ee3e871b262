// Package scene holds the renderable state of a level: the object
// registry, the material table, the lights and the shared primitive
// geometry.
package scene

import (
	"go.uber.org/zap"

	"github.com/Faultbox/cubeshadow/internal/engine/collision"
	"github.com/Faultbox/cubeshadow/internal/engine/geometry"
	"github.com/Faultbox/cubeshadow/internal/engine/lighting"
	"github.com/Faultbox/cubeshadow/internal/engine/material"
	"github.com/Faultbox/cubeshadow/internal/logger"
	"github.com/Faultbox/cubeshadow/pkg/math"
)

// Primitives are the GPU buffers shared by every cube and sphere.
type Primitives struct {
	Cube   geometry.Handle
	Sphere geometry.Handle
}

// Scene is everything the shadow and lighting passes read.
type Scene struct {
	Registry  *Registry
	Materials *material.Table

	// Light is the only shadow casting light.
	Light  *lighting.PointLight
	Lights *lighting.Set

	Ambient math.Vec3

	Primitives Primitives
	// Models are imported mesh buffers owned by this scene.
	Models []geometry.Handle
}

// New creates an empty scene with a white primary light at the origin.
func New() *Scene {
	return &Scene{
		Registry:  NewRegistry(),
		Materials: material.NewTable(),
		Light:     lighting.NewPointLight(math.Vec3{}),
		Lights:    lighting.NewSet(),
		Ambient:   math.Vec3{X: 0.1, Y: 0.1, Z: 0.1},
	}
}

// CubeSpec returns a placement spec with the cube geometry and material m.
func (s *Scene) CubeSpec(name string, m material.Index) Spec {
	return Spec{Name: name, Material: m, Geometry: s.Primitives.Cube, Static: true}
}

// SphereSpec returns a placement spec with the sphere geometry and
// material m.
func (s *Scene) SphereSpec(name string, m material.Index) Spec {
	return Spec{Name: name, Material: m, Geometry: s.Primitives.Sphere, Static: true}
}

// Update advances the lights to animation time t.
func (s *Scene) Update(t float64) {
	s.Light.Update(t)
	s.Lights.Update(t)
}

// Bounds returns the union of every collidable object's world box.
func (s *Scene) Bounds() (collision.AABB, bool) {
	var out collision.AABB
	found := false
	for _, box := range s.Registry.CollisionBoxes() {
		if !found {
			out, found = box, true
			continue
		}
		out = out.Union(box)
	}
	return out, found
}

// Validate checks every object's material index against the table.
// It returns the first object with a dangling reference.
func (s *Scene) Validate() error {
	for _, o := range s.Registry.All() {
		if _, err := s.Materials.Get(o.Material); err != nil {
			logger.Error("object references missing material",
				zap.String("object", o.Name), zap.Int("material", int(o.Material)))
			return err
		}
	}
	return nil
}

// Destroy releases the scene's GPU buffers and empties the registry.
func (s *Scene) Destroy() {
	s.Primitives.Cube.Destroy()
	s.Primitives.Sphere.Destroy()
	for i := range s.Models {
		s.Models[i].Destroy()
	}
	s.Models = nil
	s.Registry.Clear()
}
