package renderer

import (
	"github.com/spaghettifunk/anima-overlay/engine/core"
	"github.com/spaghettifunk/anima-overlay/engine/renderer/metadata"
)

/**
 * @brief GPU-resident copy of one mesh: an immutable vertex buffer and an immutable
 * 32-bit index buffer. Lives for a single draw.
 */
type GeometryBuffer struct {
	VertexBuffer Buffer
	IndexBuffer  Buffer
	VertexCount  uint32
	IndexCount   uint32
}

/**
 * @brief Uploads mesh into freshly created immutable buffers sized exactly to its contents.
 * @param device The device to create the buffers on.
 * @param mesh The tessellated mesh.
 * @return The buffers, or a GraphicsResourceError.
 */
func UploadGeometry(device Device, mesh *metadata.Mesh) (*GeometryBuffer, error) {
	vertexDesc := metadata.ImmutableVertexBufferDesc(len(mesh.Vertices))
	vertexBuffer, err := device.CreateBuffer(&vertexDesc, mesh.VertexBytes())
	if err != nil {
		return nil, core.NewGraphicsResourceError("CreateBuffer(vertex)", err)
	}

	indexDesc := metadata.ImmutableIndexBufferDesc(len(mesh.Indices))
	indexBuffer, err := device.CreateBuffer(&indexDesc, mesh.IndexBytes())
	if err != nil {
		vertexBuffer.Release()
		return nil, core.NewGraphicsResourceError("CreateBuffer(index)", err)
	}

	return &GeometryBuffer{
		VertexBuffer: vertexBuffer,
		IndexBuffer:  indexBuffer,
		VertexCount:  uint32(len(mesh.Vertices)),
		IndexCount:   uint32(len(mesh.Indices)),
	}, nil
}

func (gb *GeometryBuffer) bind(context DeviceContext) {
	context.IASetVertexBuffers(0, []Buffer{gb.VertexBuffer}, []uint32{metadata.VertexSize}, []uint32{0})
	context.IASetIndexBuffer(gb.IndexBuffer, metadata.FormatR32Uint, 0)
}

func (gb *GeometryBuffer) Release() {
	if gb.IndexBuffer != nil {
		gb.IndexBuffer.Release()
		gb.IndexBuffer = nil
	}
	if gb.VertexBuffer != nil {
		gb.VertexBuffer.Release()
		gb.VertexBuffer = nil
	}
}
