package metadata

type ResourceType int

const (
	ResourceTypeNone ResourceType = iota
	// Compiled shader bytecode (.cso).
	ResourceTypeShader
	// HLSL source (.hlsl).
	ResourceTypeShaderSource
	// Overlay configuration (.toml).
	ResourceTypeConfig
)

/** @brief A blob of data loaded from disk. */
type Resource struct {
	Name     string
	FullPath string
	DataSize uint64
	Data     []byte
}

/** @brief Compiled bytecode for the overlay's two shader stages. */
type ShaderSource struct {
	/** @brief Vertex stage bytecode; the input layout is validated against it. */
	Vertex []byte
	/** @brief Pixel stage bytecode. */
	Pixel []byte
}
