package geometry

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Handle references uploaded geometry. Many scene objects share one Handle.
type Handle struct {
	VAO     uint32
	VBO     uint32
	EBO     uint32
	Count   int32 // Index count when Indexed, vertex count otherwise
	Indexed bool
}

// Valid reports whether the handle can be drawn.
func (h Handle) Valid() bool {
	return h.VAO != 0 && h.Count > 0
}

// Upload copies the mesh into a VAO with attribute locations
// 0 position, 1 normal, 2 texcoord, 3 tangent, 4 bitangent.
func Upload(m *Mesh) Handle {
	h := Handle{Count: m.Count(), Indexed: m.Indexed()}
	if len(m.Vertices) == 0 {
		return Handle{}
	}

	gl.GenVertexArrays(1, &h.VAO)
	gl.BindVertexArray(h.VAO)

	gl.GenBuffers(1, &h.VBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, h.VBO)
	vertexSize := int(unsafe.Sizeof(Vertex{}))
	gl.BufferData(gl.ARRAY_BUFFER, len(m.Vertices)*vertexSize, unsafe.Pointer(&m.Vertices[0]), gl.STATIC_DRAW)

	// Position
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, int32(vertexSize), 0)
	gl.EnableVertexAttribArray(0)
	// Normal
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, int32(vertexSize), 3*4)
	gl.EnableVertexAttribArray(1)
	// TexCoord
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, int32(vertexSize), 6*4)
	gl.EnableVertexAttribArray(2)
	// Tangent
	gl.VertexAttribPointerWithOffset(3, 3, gl.FLOAT, false, int32(vertexSize), 8*4)
	gl.EnableVertexAttribArray(3)
	// Bitangent
	gl.VertexAttribPointerWithOffset(4, 3, gl.FLOAT, false, int32(vertexSize), 11*4)
	gl.EnableVertexAttribArray(4)

	if h.Indexed && len(m.Indices) > 0 {
		gl.GenBuffers(1, &h.EBO)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, h.EBO)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, unsafe.Pointer(&m.Indices[0]), gl.STATIC_DRAW)
	}

	gl.BindVertexArray(0)
	return h
}

// Draw issues the draw call matching the handle's layout.
// Invalid handles are skipped.
func (h Handle) Draw() {
	if !h.Valid() {
		return
	}
	gl.BindVertexArray(h.VAO)
	if h.Indexed {
		gl.DrawElements(gl.TRIANGLES, h.Count, gl.UNSIGNED_INT, nil)
	} else {
		gl.DrawArrays(gl.TRIANGLES, 0, h.Count)
	}
}

// Destroy releases the GPU buffers.
func (h *Handle) Destroy() {
	if h.VAO != 0 {
		gl.DeleteVertexArrays(1, &h.VAO)
		h.VAO = 0
	}
	if h.VBO != 0 {
		gl.DeleteBuffers(1, &h.VBO)
		h.VBO = 0
	}
	if h.EBO != 0 {
		gl.DeleteBuffers(1, &h.EBO)
		h.EBO = 0
	}
}
