package geometry

import (
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"go.uber.org/zap"

	"github.com/Faultbox/cubeshadow/internal/logger"
)

// LoadGLTF reads every triangle primitive of a .gltf or .glb file into a
// single indexed mesh. Node transforms are not applied; the scene object
// carries placement.
func LoadGLTF(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gltf open %q: %w", path, err)
	}
	m, err := meshFromDocument(doc)
	if err != nil {
		return nil, fmt.Errorf("gltf %q: %w", path, err)
	}
	return m, nil
}

func meshFromDocument(doc *gltf.Document) (*Mesh, error) {
	m := &Mesh{Indices: []uint32{}}

	for mi, gm := range doc.Meshes {
		for pi, prim := range gm.Primitives {
			if prim.Mode != gltf.PrimitiveTriangles {
				logger.Debug("skipping non-triangle primitive",
					zap.Int("mesh", mi), zap.Int("primitive", pi))
				continue
			}
			if err := appendPrimitive(doc, prim, m); err != nil {
				return nil, fmt.Errorf("mesh %d primitive %d: %w", mi, pi, err)
			}
		}
	}

	if len(m.Vertices) == 0 {
		return nil, fmt.Errorf("no triangle geometry")
	}

	ComputeTangents(m)
	return m, nil
}

func appendPrimitive(doc *gltf.Document, prim *gltf.Primitive, m *Mesh) error {
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return fmt.Errorf("no POSITION attribute")
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return fmt.Errorf("positions: %w", err)
	}

	var normals [][3]float32
	var uvs [][2]float32
	if idx, ok := prim.Attributes[gltf.NORMAL]; ok {
		if normals, err = modeler.ReadNormal(doc, doc.Accessors[idx], nil); err != nil {
			return fmt.Errorf("normals: %w", err)
		}
	}
	if idx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		if uvs, err = modeler.ReadTextureCoord(doc, doc.Accessors[idx], nil); err != nil {
			return fmt.Errorf("texcoords: %w", err)
		}
	}

	base := uint32(len(m.Vertices))
	for i, p := range positions {
		v := Vertex{Position: p, Normal: [3]float32{0, 1, 0}}
		if i < len(normals) {
			v.Normal = normals[i]
		}
		if i < len(uvs) {
			v.TexCoord = uvs[i]
		}
		m.Vertices = append(m.Vertices, v)
	}

	if prim.Indices == nil {
		for i := range positions {
			m.Indices = append(m.Indices, base+uint32(i))
		}
		return nil
	}

	indices, err := modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
	if err != nil {
		return fmt.Errorf("indices: %w", err)
	}
	for _, idx := range indices {
		m.Indices = append(m.Indices, base+idx)
	}
	return nil
}
