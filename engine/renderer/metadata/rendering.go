package metadata

/** @brief Pixel and element formats, numerically equal to their DXGI_FORMAT counterparts. */
type Format uint32

const (
	FormatUnknown           Format = 0
	FormatR32G32Float       Format = 16
	FormatR8G8B8A8Unorm     Format = 28
	FormatR8G8B8A8UnormSRGB Format = 29
	FormatR32Uint           Format = 42
	FormatR16Uint           Format = 57
	FormatB8G8R8A8Unorm     Format = 87
)

/** @brief Blend factors, numerically equal to D3D11_BLEND. */
type Blend uint32

const (
	BlendZero         Blend = 1
	BlendOne          Blend = 2
	BlendSrcColor     Blend = 3
	BlendInvSrcColor  Blend = 4
	BlendSrcAlpha     Blend = 5
	BlendInvSrcAlpha  Blend = 6
	BlendDestAlpha    Blend = 7
	BlendInvDestAlpha Blend = 8
	BlendDestColor    Blend = 9
	BlendInvDestColor Blend = 10
)

/** @brief Blend operations, numerically equal to D3D11_BLEND_OP. */
type BlendOp uint32

const (
	BlendOpAdd         BlendOp = 1
	BlendOpSubtract    BlendOp = 2
	BlendOpRevSubtract BlendOp = 3
	BlendOpMin         BlendOp = 4
	BlendOpMax         BlendOp = 5
)

/** @brief Render target channel write mask (D3D11_COLOR_WRITE_ENABLE). */
type ColorWriteEnable uint8

const (
	ColorWriteEnableRed   ColorWriteEnable = 1
	ColorWriteEnableGreen ColorWriteEnable = 2
	ColorWriteEnableBlue  ColorWriteEnable = 4
	ColorWriteEnableAlpha ColorWriteEnable = 8
	ColorWriteEnableAll   ColorWriteEnable = ColorWriteEnableRed | ColorWriteEnableGreen | ColorWriteEnableBlue | ColorWriteEnableAlpha
)

/** @brief Primitive topologies (D3D11_PRIMITIVE_TOPOLOGY). */
type PrimitiveTopology uint32

const (
	PrimitiveTopologyUndefined     PrimitiveTopology = 0
	PrimitiveTopologyPointList     PrimitiveTopology = 1
	PrimitiveTopologyLineList      PrimitiveTopology = 2
	PrimitiveTopologyLineStrip     PrimitiveTopology = 3
	PrimitiveTopologyTriangleList  PrimitiveTopology = 4
	PrimitiveTopologyTriangleStrip PrimitiveTopology = 5
)

/** @brief How a buffer is accessed by the GPU and CPU (D3D11_USAGE). */
type Usage uint32

const (
	UsageDefault   Usage = 0
	UsageImmutable Usage = 1
	UsageDynamic   Usage = 2
	UsageStaging   Usage = 3
)

/** @brief Pipeline bindings of a buffer (D3D11_BIND_FLAG). */
type BindFlag uint32

const (
	BindVertexBuffer   BindFlag = 0x1
	BindIndexBuffer    BindFlag = 0x2
	BindConstantBuffer BindFlag = 0x4
)

type InputClassification uint32

const (
	InputPerVertexData   InputClassification = 0
	InputPerInstanceData InputClassification = 1
)

/** @brief Places an input element directly after the previous one. */
const AppendAlignedElement uint32 = 0xffffffff

/** @brief Number of simultaneous render target blend slots in a blend description. */
const SimultaneousRenderTargetCount = 8

/** @brief Sample mask enabling every sample. */
const SampleMaskAll uint32 = 0xffffffff
