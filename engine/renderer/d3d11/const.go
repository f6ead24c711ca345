//go:build windows

package d3d11

// ID3D11Device vtable indices.
const (
	deviceCreateBuffer           = 3
	deviceCreateRenderTargetView = 9
	deviceCreateInputLayout      = 11
	deviceCreateVertexShader     = 12
	deviceCreatePixelShader      = 15
	deviceCreateBlendState       = 20
	deviceGetImmediateContext    = 40
)

// ID3D11DeviceContext vtable indices.
const (
	ctxPSSetShader            = 9
	ctxVSSetShader            = 11
	ctxDrawIndexed            = 12
	ctxIASetInputLayout       = 17
	ctxIASetVertexBuffers     = 18
	ctxIASetIndexBuffer       = 19
	ctxIASetPrimitiveTopology = 24
	ctxOMSetRenderTargets     = 33
	ctxOMSetBlendState        = 35
	ctxRSSetViewports         = 44
	ctxClearRenderTargetView  = 50
)

// IDXGISwapChain vtable indices.
const (
	swapChainGetDevice     = 7
	swapChainPresent       = 8
	swapChainGetBuffer     = 9
	swapChainGetDesc       = 12
	swapChainResizeBuffers = 13
)

const (
	d3dDriverTypeHardware = 1
	d3dFeatureLevel11_0   = 0xb000
	d3dFeatureLevel10_1   = 0xa100
	d3dFeatureLevel10_0   = 0xa000
	d3d11SDKVersion       = 7

	d3d11CreateDeviceBGRASupport = 0x20

	dxgiUsageRenderTargetOutput = 0x20
	dxgiSwapEffectDiscard       = 0
)

var (
	iidID3D11Device    = comGUID{0xdb6f6ddb, 0xac77, 0x4e88, [8]byte{0x82, 0x53, 0x81, 0x9d, 0xf9, 0xbb, 0xf1, 0x40}}
	iidID3D11Texture2D = comGUID{0x6f15aaf2, 0xd208, 0x4e89, [8]byte{0x9a, 0xb4, 0x48, 0x95, 0x35, 0xd3, 0x4f, 0x9c}}
)

// d3d11BufferDesc matches D3D11_BUFFER_DESC.
type d3d11BufferDesc struct {
	ByteWidth           uint32
	Usage               uint32
	BindFlags           uint32
	CPUAccessFlags      uint32
	MiscFlags           uint32
	StructureByteStride uint32
}

// d3d11SubresourceData matches D3D11_SUBRESOURCE_DATA.
type d3d11SubresourceData struct {
	pSysMem          uintptr
	SysMemPitch      uint32
	SysMemSlicePitch uint32
}

// d3d11InputElementDesc matches D3D11_INPUT_ELEMENT_DESC.
type d3d11InputElementDesc struct {
	SemanticName         *byte
	SemanticIndex        uint32
	Format               uint32
	InputSlot            uint32
	AlignedByteOffset    uint32
	InputSlotClass       uint32
	InstanceDataStepRate uint32
}

// d3d11RenderTargetBlendDesc matches D3D11_RENDER_TARGET_BLEND_DESC (32 bytes).
type d3d11RenderTargetBlendDesc struct {
	BlendEnable           int32
	SrcBlend              uint32
	DestBlend             uint32
	BlendOp               uint32
	SrcBlendAlpha         uint32
	DestBlendAlpha        uint32
	BlendOpAlpha          uint32
	RenderTargetWriteMask uint8
}

// d3d11BlendDesc matches D3D11_BLEND_DESC.
type d3d11BlendDesc struct {
	AlphaToCoverageEnable  int32
	IndependentBlendEnable int32
	RenderTarget           [8]d3d11RenderTargetBlendDesc
}

// d3d11Viewport matches D3D11_VIEWPORT.
type d3d11Viewport struct {
	TopLeftX float32
	TopLeftY float32
	Width    float32
	Height   float32
	MinDepth float32
	MaxDepth float32
}

type dxgiRational struct {
	Numerator   uint32
	Denominator uint32
}

// dxgiModeDesc matches DXGI_MODE_DESC.
type dxgiModeDesc struct {
	Width            uint32
	Height           uint32
	RefreshRate      dxgiRational
	Format           uint32
	ScanlineOrdering uint32
	Scaling          uint32
}

type dxgiSampleDesc struct {
	Count   uint32
	Quality uint32
}

// dxgiSwapChainDesc matches DXGI_SWAP_CHAIN_DESC.
type dxgiSwapChainDesc struct {
	BufferDesc   dxgiModeDesc
	SampleDesc   dxgiSampleDesc
	BufferUsage  uint32
	BufferCount  uint32
	OutputWindow uintptr
	Windowed     int32
	SwapEffect   uint32
	Flags        uint32
}

func boolToInt32(b bool) int32 {
	if b {
		return 1
	}
	return 0
}
