package metadata

/** @brief Per render target blend configuration (D3D11_RENDER_TARGET_BLEND_DESC). */
type RenderTargetBlendDesc struct {
	BlendEnable           bool
	SrcBlend              Blend
	DestBlend             Blend
	BlendOp               BlendOp
	SrcBlendAlpha         Blend
	DestBlendAlpha        Blend
	BlendOpAlpha          BlendOp
	RenderTargetWriteMask ColorWriteEnable
}

/**
 * @brief Output-merger blend configuration (D3D11_BLEND_DESC).
 * RenderTarget keeps the native eight slots; with IndependentBlendEnable off only
 * slot 0 is read by the driver.
 */
type BlendDesc struct {
	AlphaToCoverageEnable  bool
	IndependentBlendEnable bool
	RenderTarget           [SimultaneousRenderTargetCount]RenderTargetBlendDesc
}

/** @brief One vertex attribute of an input layout (D3D11_INPUT_ELEMENT_DESC). */
type InputElementDesc struct {
	SemanticName         string
	SemanticIndex        uint32
	Format               Format
	InputSlot            uint32
	AlignedByteOffset    uint32
	InputSlotClass       InputClassification
	InstanceDataStepRate uint32
}

/** @brief Rasterizer viewport (D3D11_VIEWPORT). */
type Viewport struct {
	TopLeftX float32
	TopLeftY float32
	Width    float32
	Height   float32
	MinDepth float32
	MaxDepth float32
}
