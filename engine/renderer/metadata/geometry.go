package metadata

/**
 * @brief Describes a GPU buffer to create (mirrors D3D11_BUFFER_DESC).
 */
type BufferDesc struct {
	/** @brief Size of the buffer in bytes. */
	ByteWidth uint32
	/** @brief Expected read/write pattern. */
	Usage Usage
	/** @brief Pipeline stages the buffer binds to. */
	BindFlags           BindFlag
	CPUAccessFlags      uint32
	MiscFlags           uint32
	StructureByteStride uint32
}

// ImmutableVertexBufferDesc describes a GPU-resident vertex buffer of count vertices.
func ImmutableVertexBufferDesc(count int) BufferDesc {
	return BufferDesc{
		ByteWidth: uint32(count) * VertexSize,
		Usage:     UsageImmutable,
		BindFlags: BindVertexBuffer,
	}
}

// ImmutableIndexBufferDesc describes a GPU-resident buffer of count 32-bit indices.
func ImmutableIndexBufferDesc(count int) BufferDesc {
	return BufferDesc{
		ByteWidth: uint32(count) * IndexSize,
		Usage:     UsageImmutable,
		BindFlags: BindIndexBuffer,
	}
}
