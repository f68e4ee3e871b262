package level

import (
	"fmt"
	"maps"
	"slices"

	"go.uber.org/zap"

	"github.com/Faultbox/cubeshadow/internal/engine/animation"
	"github.com/Faultbox/cubeshadow/internal/engine/collision"
	"github.com/Faultbox/cubeshadow/internal/engine/geometry"
	"github.com/Faultbox/cubeshadow/internal/engine/lighting"
	"github.com/Faultbox/cubeshadow/internal/engine/material"
	"github.com/Faultbox/cubeshadow/internal/engine/scene"
	"github.com/Faultbox/cubeshadow/internal/logger"
	"github.com/Faultbox/cubeshadow/pkg/math"
)

// TextureSource resolves texture paths to handles, 0 when unavailable.
type TextureSource interface {
	Load(path string) uint32
}

// ModelLoader loads a mesh file and returns its GPU handle and the
// extents of its raw vertex positions.
type ModelLoader func(path string) (geometry.Handle, collision.AABB, error)

// Resources are the loaders a build draws on.
type Resources struct {
	Textures TextureSource
	Models   ModelLoader
}

type builder struct {
	lv        *Level
	sc        *scene.Scene
	res       Resources
	textures  map[string]uint32
	materials map[string]material.Index
	models    map[string]loadedModel
}

type loadedModel struct {
	handle geometry.Handle
	extent collision.AABB
	ok     bool
}

// Build populates sc from lv. Unknown names are errors; textures and
// model files that fail to load degrade with a warning.
func Build(lv *Level, sc *scene.Scene, res Resources) error {
	b := &builder{
		lv:        lv,
		sc:        sc,
		res:       res,
		textures:  make(map[string]uint32),
		materials: make(map[string]material.Index),
		models:    make(map[string]loadedModel),
	}

	sc.Ambient = math.FromArr(lv.Ambient)

	if err := b.buildMaterials(); err != nil {
		return err
	}
	b.buildLights()

	for i := range lv.Composites {
		if err := b.buildComposite(&lv.Composites[i]); err != nil {
			return err
		}
	}
	for i := range lv.Objects {
		if err := b.buildObject(&lv.Objects[i]); err != nil {
			return err
		}
	}

	logger.Info("level built",
		zap.String("name", lv.Name),
		zap.Int("objects", sc.Registry.Len()),
		zap.Int("materials", sc.Materials.Len()),
		zap.Int("lights", sc.Lights.Len()+1),
	)
	return nil
}

func (b *builder) texture(name string) (uint32, error) {
	if name == "" {
		return 0, nil
	}
	if h, ok := b.textures[name]; ok {
		return h, nil
	}
	path, ok := b.lv.Textures[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownTexture, name)
	}
	var h uint32
	if b.res.Textures != nil {
		h = b.res.Textures.Load(path)
	}
	b.textures[name] = h
	return h, nil
}

func (b *builder) buildMaterials() error {
	// Sorted so material indices are stable across runs.
	for _, name := range slices.Sorted(maps.Keys(b.lv.Materials)) {
		def := b.lv.Materials[name]
		m := material.Material{
			Kd:        math.FromArr(def.Kd),
			Ks:        math.FromArr(def.Ks),
			Shininess: def.Shininess,
			Alpha:     1,
		}
		if def.Alpha != nil {
			m.Alpha = *def.Alpha
		}

		var err error
		if m.DiffuseMap, err = b.texture(def.Diffuse); err != nil {
			return fmt.Errorf("material %q: %w", name, err)
		}
		if m.SpecularMap, err = b.texture(def.Specular); err != nil {
			return fmt.Errorf("material %q: %w", name, err)
		}
		if m.NormalMap, err = b.texture(def.Normal); err != nil {
			return fmt.Errorf("material %q: %w", name, err)
		}

		b.materials[name] = b.sc.Materials.AddOrGet(m)
	}
	return nil
}

func (b *builder) material(name string) (material.Index, error) {
	idx, ok := b.materials[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownMaterial, name)
	}
	return idx, nil
}

func (b *builder) buildLights() {
	def := b.lv.Light
	l := lighting.NewPointLight(math.FromArr(def.Position))
	if def.Color != nil {
		l.Color = math.FromArr(*def.Color)
	}
	if def.Intensity != nil {
		l.Intensity = *def.Intensity
	}
	if a := def.Attenuation; a != nil {
		l.Constant, l.Linear, l.Quadratic = a[0], a[1], a[2]
	}
	if o := def.Orbit; o != nil {
		l.Orbit = &lighting.Orbit{
			Center: math.FromArr(o.Center),
			Radius: o.Radius,
			Speed:  o.Speed,
			Height: o.Height,
		}
	}
	l.CycleColor = def.CycleColor
	b.sc.Light = l

	for i, sd := range b.lv.Lights {
		if b.sc.Lights.Len() >= lighting.MaxAdditionalLights {
			logger.Warn("too many additional lights, ignoring the rest",
				zap.Int("max", lighting.MaxAdditionalLights), zap.Int("index", i))
			break
		}
		id := b.sc.Lights.Add(math.FromArr(sd.Position), math.FromArr(sd.Color), sd.Intensity)
		if sd.Flicker {
			b.sc.Lights.SetFlicker(id, true)
		}
	}
}

func parseLayer(s string) (scene.Layer, error) {
	switch s {
	case "", "opaque":
		return scene.LayerOpaque, nil
	case "transparent":
		return scene.LayerTransparent, nil
	case "sky":
		return scene.LayerSky, nil
	default:
		return 0, fmt.Errorf("unknown layer %q", s)
	}
}

func (b *builder) buildComposite(def *CompositeDef) error {
	m, err := b.material(def.Material)
	if err != nil {
		return fmt.Errorf("composite %q: %w", def.Name, err)
	}
	layer, err := parseLayer(def.Layer)
	if err != nil {
		return fmt.Errorf("composite %q: %w", def.Name, err)
	}
	s := b.sc.CubeSpec(def.Name, m)
	s.Layer = layer
	b.sc.Registry.CreateCompositeCube(math.FromArr(def.Origin), math.FromArr(def.Size), s)
	return nil
}

func (b *builder) model(name string) (loadedModel, error) {
	if lm, ok := b.models[name]; ok {
		return lm, nil
	}
	path, ok := b.lv.Models[name]
	if !ok {
		return loadedModel{}, fmt.Errorf("%w: %q", ErrUnknownModel, name)
	}

	var lm loadedModel
	if b.res.Models != nil {
		h, extent, err := b.res.Models(path)
		if err != nil {
			logger.Warn("model unavailable", zap.String("model", name), zap.String("path", path), zap.Error(err))
		} else {
			lm = loadedModel{handle: h, extent: extent, ok: true}
			b.sc.Models = append(b.sc.Models, h)
		}
	}
	b.models[name] = lm
	return lm, nil
}

func (b *builder) buildObject(def *ObjectDef) error {
	m, err := b.material(def.Material)
	if err != nil {
		return fmt.Errorf("object %q: %w", def.Name, err)
	}
	layer, err := parseLayer(def.Layer)
	if err != nil {
		return fmt.Errorf("object %q: %w", def.Name, err)
	}

	s := scene.Spec{
		Name:     def.Name,
		Position: math.FromArr(def.Position),
		Scale:    math.Vec3{X: 1, Y: 1, Z: 1},
		Material: m,
		Static:   true,
		Layer:    layer,
	}
	if def.Scale != nil {
		s.Scale = math.FromArr(*def.Scale)
	}
	if def.Rotation != nil {
		s.RotationAxis = math.FromArr(def.Rotation.Axis)
		s.RotationAngle = def.Rotation.Angle
	}
	if def.Static != nil {
		s.Static = *def.Static
	}
	if def.Behavior != nil {
		beh, err := newBehavior(def.Behavior)
		if err != nil {
			return fmt.Errorf("object %q: %w", def.Name, err)
		}
		s.Behavior = beh
		s.Static = false
	}

	kind := def.Type
	if kind == "model" {
		lm, err := b.model(def.Model)
		if err != nil {
			return fmt.Errorf("object %q: %w", def.Name, err)
		}
		if lm.ok {
			s.Geometry = lm.handle
			b.sc.Registry.AddModel(s, lm.extent.ScaleTranslate(s.Scale, s.Position))
			return nil
		}
		if def.Fallback == "" {
			return nil
		}
		kind = def.Fallback
	}

	switch kind {
	case "", "cube":
		s.Geometry = b.sc.Primitives.Cube
		b.sc.Registry.AddCube(s)
	case "sphere":
		s.Geometry = b.sc.Primitives.Sphere
		radius := def.Radius
		if radius == 0 {
			radius = 1
		}
		switch {
		case def.Flatten:
			s.Scale = scene.RingScale(radius)
		case def.Scale == nil:
			s.Scale = math.Vec3{}
		}
		b.sc.Registry.AddSphere(s, radius)
	default:
		return fmt.Errorf("object %q: unknown type %q", def.Name, kind)
	}
	return nil
}

func newBehavior(def *BehaviorDef) (scene.Behavior, error) {
	switch def.Type {
	case "rocking_chair":
		r := animation.NewRockingChair()
		if def.Frequency != 0 {
			r.Frequency = def.Frequency
		}
		if def.Radius != 0 {
			r.Radius = def.Radius
		}
		if def.Length != 0 {
			r.Length = def.Length
		}
		return r, nil
	case "orbit":
		return &animation.Orbit{
			Center: math.FromArr(def.Center),
			Radius: def.OrbitRadius,
			Speed:  def.Speed,
			Phase:  def.Phase,
		}, nil
	case "spin":
		axis := math.FromArr(def.Axis)
		if axis == (math.Vec3{}) {
			axis = math.Vec3{Y: 1}
		}
		return &animation.Spin{Axis: axis, DegreesPerSecond: def.DegreesPerSecond}, nil
	default:
		return nil, fmt.Errorf("unknown behavior %q", def.Type)
	}
}
