// Package material provides the deduplicated material table referenced by
// scene objects.
package material

import (
	"errors"
	"fmt"

	"github.com/Faultbox/cubeshadow/pkg/math"
)

// ErrIndexOutOfRange is returned when a material index is not in the table.
var ErrIndexOutOfRange = errors.New("material index out of range")

// Material describes surface shading. Texture fields hold GL texture
// handles; 0 means no texture. Two materials are equal when every field
// matches, handles included.
type Material struct {
	Kd          math.Vec3 // Diffuse color
	DiffuseMap  uint32
	Ks          math.Vec3 // Specular color
	Shininess   float32
	SpecularMap uint32
	NormalMap   uint32
	Alpha       float32 // Opacity in [0, 1]
}

// Index is a stable reference into a Table.
type Index int

// HasTexture reports whether a diffuse map is bound.
func (m Material) HasTexture() bool {
	return m.DiffuseMap != 0
}

// HasNormalMap reports whether a normal map is bound.
func (m Material) HasNormalMap() bool {
	return m.NormalMap != 0
}

// Transparent reports whether the material needs blending.
func (m Material) Transparent() bool {
	return m.Alpha < 1
}

// Table is an append-only list of unique materials.
// It is filled during scene setup and read-only afterwards.
type Table struct {
	entries []Material
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{}
}

// AddOrGet returns the index of an equal material, appending m if none
// exists. The scan is linear; tables are built once at load time.
func (t *Table) AddOrGet(m Material) Index {
	if idx, ok := t.Find(m); ok {
		return idx
	}
	t.entries = append(t.entries, m)
	return Index(len(t.entries) - 1)
}

// Find returns the index of a material equal to m in every field.
func (t *Table) Find(m Material) (Index, bool) {
	for i, e := range t.entries {
		if e == m {
			return Index(i), true
		}
	}
	return 0, false
}

// Get returns the material at idx.
func (t *Table) Get(idx Index) (Material, error) {
	if idx < 0 || int(idx) >= len(t.entries) {
		return Material{}, fmt.Errorf("%w: %d (table has %d)", ErrIndexOutOfRange, idx, len(t.entries))
	}
	return t.entries[idx], nil
}

// MustGet is Get for the render path, where a bad index is a programming
// error. It panics instead of substituting another material.
func (t *Table) MustGet(idx Index) Material {
	m, err := t.Get(idx)
	if err != nil {
		panic(err)
	}
	return m
}

// Len returns the number of unique materials.
func (t *Table) Len() int {
	return len(t.entries)
}
