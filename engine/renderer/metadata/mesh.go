package metadata

import (
	"unsafe"

	"github.com/spaghettifunk/anima-overlay/engine/math"
)

/** @brief An 8-bit-per-channel RGBA colour, packed the way R8G8B8A8_UNORM expects it. */
type Color32 struct {
	R, G, B, A uint8
}

/**
 * @brief A single UI vertex. Field order and sizes match the input layout:
 * POSITION (2 x f32), TEXCOORD (2 x f32), COLOR (4 x u8).
 */
type Vertex struct {
	/** @brief Position in pixels before normalization, clip space afterwards. */
	Pos math.Vec2
	/** @brief Texture coordinate. */
	UV math.Vec2
	/** @brief Vertex colour. */
	Color Color32
}

const (
	/** @brief Size in bytes of one Vertex record. */
	VertexSize = uint32(unsafe.Sizeof(Vertex{}))
	/** @brief Size in bytes of one index. */
	IndexSize = uint32(unsafe.Sizeof(uint32(0)))
)

/**
 * @brief A tessellated UI mesh: a clip rectangle plus triangles.
 * Produced once per frame and consumed by exactly one draw.
 */
type Mesh struct {
	/** @brief Clip rectangle in pixels. */
	Clip math.Rect
	/** @brief Ordered vertices. */
	Vertices []Vertex
	/** @brief Triangle list indices into Vertices; the length is a multiple of 3. */
	Indices []uint32
}

func (m *Mesh) IsEmpty() bool {
	return len(m.Indices) == 0
}

// AddTriangle appends one triangle referencing existing vertices.
func (m *Mesh) AddTriangle(a, b, c uint32) {
	m.Indices = append(m.Indices, a, b, c)
}

// VertexBytes views the vertices as the raw byte sequence uploaded to the GPU.
func (m *Mesh) VertexBytes() []byte {
	if len(m.Vertices) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&m.Vertices[0])), len(m.Vertices)*int(VertexSize))
}

// IndexBytes views the indices as the raw byte sequence uploaded to the GPU.
func (m *Mesh) IndexBytes() []byte {
	if len(m.Indices) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&m.Indices[0])), len(m.Indices)*int(IndexSize))
}
