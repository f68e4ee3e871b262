package animation

import (
	"github.com/Faultbox/cubeshadow/internal/engine/scene"
)

// Driver applies each dynamic object's behavior once per frame. Static
// objects are never visited.
type Driver struct {
	registry *scene.Registry
	clock    *Clock
}

// NewDriver creates a driver reading time from clock.
func NewDriver(registry *scene.Registry, clock *Clock) *Driver {
	return &Driver{registry: registry, clock: clock}
}

// Clock returns the driver's clock.
func (d *Driver) Clock() *Clock {
	return d.clock
}

// Update poses every dynamic object for the current animation time and
// returns how many were moved.
func (d *Driver) Update() int {
	t := d.clock.Elapsed()
	n := 0
	for _, o := range d.registry.Dynamic() {
		if o.Behavior == nil {
			continue
		}
		o.Behavior.Apply(o, t)
		n++
	}
	return n
}
