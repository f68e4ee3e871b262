package scene

import (
	"github.com/Faultbox/cubeshadow/internal/engine/collision"
	"github.com/Faultbox/cubeshadow/internal/engine/geometry"
	"github.com/Faultbox/cubeshadow/internal/engine/material"
	"github.com/Faultbox/cubeshadow/pkg/math"
)

// Kind tags the primitive an object is drawn with.
type Kind int

const (
	KindCube Kind = iota
	KindSphere
	KindModel
)

func (k Kind) String() string {
	switch k {
	case KindCube:
		return "cube"
	case KindSphere:
		return "sphere"
	case KindModel:
		return "model"
	default:
		return "unknown"
	}
}

// Layer selects the pass group an object is drawn in.
type Layer int

const (
	// LayerOpaque objects are lit, shadowed, cast shadows and collide.
	LayerOpaque Layer = iota
	// LayerTransparent objects are blended back-to-front after opaque ones.
	LayerTransparent
	// LayerSky objects are drawn first, unlit, and are ignored by shadows
	// and collision.
	LayerSky
)

// ID is a stable object identifier assigned at insertion.
type ID int

// Behavior drives a dynamic object's pose from the animation clock.
type Behavior interface {
	Apply(o *Object, t float64)
}

// Object is one renderable entity.
type Object struct {
	ID    ID
	Name  string
	Kind  Kind
	Layer Layer

	Position        math.Vec3 // Current pose
	InitialPosition math.Vec3 // Rest pose for animation
	Scale           math.Vec3
	RotationAxis    math.Vec3
	RotationAngle   float32 // Degrees
	InitialAxis     math.Vec3
	InitialRotation float32 // Degrees

	// Bounds is the world-space box computed at insertion.
	Bounds collision.AABB
	// LocalBounds is the box before scale and translation, used for culling.
	LocalBounds collision.AABB

	Geometry geometry.Handle
	Material material.Index
	Static   bool
	Behavior Behavior
}

// ModelMatrix returns translate * rotate * scale for the current pose.
func (o *Object) ModelMatrix() math.Mat4 {
	return math.Model(o.Position, o.RotationAxis, o.RotationAngle, o.Scale)
}

// WorldBounds places LocalBounds at the current pose. Rotation is not
// applied.
func (o *Object) WorldBounds() collision.AABB {
	return o.LocalBounds.ScaleTranslate(o.Scale, o.Position)
}

// CastsShadow reports whether the shadow pass draws the object.
func (o *Object) CastsShadow() bool {
	return o.Layer != LayerSky
}

// Collides reports whether the object blocks camera movement.
func (o *Object) Collides() bool {
	return o.Layer != LayerSky
}

// Reset returns the object to its rest pose.
func (o *Object) Reset() {
	o.Position = o.InitialPosition
	o.RotationAxis = o.InitialAxis
	o.RotationAngle = o.InitialRotation
}

// RestAngle returns the rest rotation about axis. A rest pose turned
// about any other axis contributes nothing.
func (o *Object) RestAngle(axis math.Vec3) float32 {
	if o.InitialAxis != axis {
		return 0
	}
	return o.InitialRotation
}
