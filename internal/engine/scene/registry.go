package scene

import (
	"fmt"
	"sort"

	"github.com/Faultbox/cubeshadow/internal/engine/collision"
	"github.com/Faultbox/cubeshadow/internal/engine/geometry"
	"github.com/Faultbox/cubeshadow/internal/engine/material"
	"github.com/Faultbox/cubeshadow/pkg/math"
)

// Spec holds the placement shared by every Add call.
type Spec struct {
	Name          string
	Position      math.Vec3
	Scale         math.Vec3
	RotationAxis  math.Vec3
	RotationAngle float32 // Degrees
	Material      material.Index
	Geometry      geometry.Handle
	Static        bool
	Layer         Layer
	Behavior      Behavior
}

var (
	unitCubeBounds   = collision.Around(math.Vec3{}, math.Vec3{X: 0.5, Y: 0.5, Z: 0.5})
	unitSphereBounds = collision.Around(math.Vec3{}, math.Vec3{X: 1, Y: 1, Z: 1})
)

// Registry owns every object in a scene. Objects are appended during
// setup and only removed by Clear. Inputs are not validated.
type Registry struct {
	objects []*Object
	static  []*Object
	dynamic []*Object
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

func (r *Registry) add(kind Kind, s Spec, bounds, local collision.AABB) ID {
	o := &Object{
		ID:              ID(len(r.objects)),
		Name:            s.Name,
		Kind:            kind,
		Layer:           s.Layer,
		Position:        s.Position,
		InitialPosition: s.Position,
		Scale:           s.Scale,
		RotationAxis:    s.RotationAxis,
		RotationAngle:   s.RotationAngle,
		InitialAxis:     s.RotationAxis,
		InitialRotation: s.RotationAngle,
		Bounds:          bounds,
		LocalBounds:     local,
		Geometry:        s.Geometry,
		Material:        s.Material,
		Static:          s.Static,
		Behavior:        s.Behavior,
	}
	r.objects = append(r.objects, o)
	if o.Static {
		r.static = append(r.static, o)
	} else {
		r.dynamic = append(r.dynamic, o)
	}
	return o.ID
}

// AddCube inserts a cube with bounds position ± scale/2.
func (r *Registry) AddCube(s Spec) ID {
	half := s.Scale.Scale(0.5)
	return r.add(KindCube, s, collision.Around(s.Position, half), unitCubeBounds)
}

// AddSphere inserts a sphere with the cube bound position ± radius.
// A zero Scale becomes the uniform radius; a non-zero Scale is kept so
// rings can flatten the sphere.
func (r *Registry) AddSphere(s Spec, radius float32) ID {
	if s.Scale == (math.Vec3{}) {
		s.Scale = math.Vec3{X: radius, Y: radius, Z: radius}
	}
	bounds := collision.Around(s.Position, math.Vec3{X: radius, Y: radius, Z: radius})
	return r.add(KindSphere, s, bounds, unitSphereBounds)
}

// RingFlatness is the Y scale of a flattened sphere.
const RingFlatness = 0.01

// RingScale is the Scale that squashes a sphere of the given radius
// into a flat disc, for planetary rings.
func RingScale(radius float32) math.Vec3 {
	return math.Vec3{X: radius, Y: RingFlatness, Z: radius}
}

// AddModel inserts an imported mesh. bounds is the world-space box the
// caller derived from the raw mesh extents.
func (r *Registry) AddModel(s Spec, bounds collision.AABB) ID {
	local := bounds
	if s.Scale.X != 0 && s.Scale.Y != 0 && s.Scale.Z != 0 {
		inv := math.Vec3{X: 1 / s.Scale.X, Y: 1 / s.Scale.Y, Z: 1 / s.Scale.Z}
		local = collision.NewAABB(bounds.Min.Sub(s.Position).Mul(inv), bounds.Max.Sub(s.Position).Mul(inv))
	}
	return r.add(KindModel, s, bounds, local)
}

// CreateCompositeCube fills the integer-truncated extents of size with
// unit cubes at origin + (x, y, z). A size of (4.9, 1, 1) yields 4 cubes.
// Each cube is named <name>_x_y_z and uses s for everything but
// position, scale and rotation.
func (r *Registry) CreateCompositeCube(origin, size math.Vec3, s Spec) []ID {
	nx, ny, nz := int(size.X), int(size.Y), int(size.Z)
	if nx <= 0 || ny <= 0 || nz <= 0 {
		return nil
	}

	ids := make([]ID, 0, nx*ny*nz)
	base := s.Name
	for x := 0; x < nx; x++ {
		for y := 0; y < ny; y++ {
			for z := 0; z < nz; z++ {
				cs := s
				cs.Name = fmt.Sprintf("%s_%d_%d_%d", base, x, y, z)
				cs.Position = origin.Add(math.Vec3{X: float32(x), Y: float32(y), Z: float32(z)})
				cs.Scale = math.Vec3{X: 1, Y: 1, Z: 1}
				cs.RotationAxis = math.Vec3{}
				cs.RotationAngle = 0
				ids = append(ids, r.AddCube(cs))
			}
		}
	}
	return ids
}

// Get returns the object with the given ID.
func (r *Registry) Get(id ID) (*Object, bool) {
	if id < 0 || int(id) >= len(r.objects) {
		return nil, false
	}
	return r.objects[id], true
}

// All returns every object in insertion order.
func (r *Registry) All() []*Object {
	return r.objects
}

// Static returns objects the animation driver never touches.
func (r *Registry) Static() []*Object {
	return r.static
}

// Dynamic returns objects the animation driver may move.
func (r *Registry) Dynamic() []*Object {
	return r.dynamic
}

// Len returns the number of objects.
func (r *Registry) Len() int {
	return len(r.objects)
}

// InLayer returns the objects of one layer in insertion order.
func (r *Registry) InLayer(l Layer) []*Object {
	var out []*Object
	for _, o := range r.objects {
		if o.Layer == l {
			out = append(out, o)
		}
	}
	return out
}

// SortBackToFront sorts objs in place by decreasing distance from eye.
// Ties keep their input order.
func SortBackToFront(objs []*Object, eye math.Vec3) []*Object {
	sort.SliceStable(objs, func(i, j int) bool {
		return objs[i].Position.Sub(eye).LengthSqr() > objs[j].Position.Sub(eye).LengthSqr()
	})
	return objs
}

// CollisionBoxes returns the boxes the camera collides with. Static
// objects use their insertion bounds; dynamic ones their current pose.
func (r *Registry) CollisionBoxes() []collision.AABB {
	boxes := make([]collision.AABB, 0, len(r.objects))
	for _, o := range r.objects {
		if !o.Collides() {
			continue
		}
		if o.Static {
			boxes = append(boxes, o.Bounds)
		} else {
			boxes = append(boxes, o.WorldBounds())
		}
	}
	return boxes
}

// Clear drops every object. Only used at teardown and level reload.
func (r *Registry) Clear() {
	r.objects = nil
	r.static = nil
	r.dynamic = nil
}
