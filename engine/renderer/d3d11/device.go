//go:build windows

package d3d11

import (
	"errors"
	"runtime"
	"syscall"
	"unsafe"

	"github.com/spaghettifunk/anima-overlay/engine/renderer"
	"github.com/spaghettifunk/anima-overlay/engine/renderer/metadata"
)

type (
	Texture          struct{ comObject }
	RenderTargetView struct{ comObject }
	VertexShader     struct{ comObject }
	PixelShader      struct{ comObject }
	InputLayout      struct{ comObject }
	BlendState       struct{ comObject }
	Buffer           struct{ comObject }
)

var errEmptyBytecode = errors.New("empty shader bytecode")

// Device wraps one reference to an ID3D11Device.
type Device struct {
	comObject
}

// ImmediateContext returns the device's immediate context with its own reference.
func (d *Device) ImmediateContext() (renderer.DeviceContext, error) {
	var ctx uintptr
	syscall.SyscallN(comVtblFn(d.ptr, deviceGetImmediateContext), d.ptr, uintptr(unsafe.Pointer(&ctx)))
	if ctx == 0 {
		return nil, &HRESULTError{Op: "GetImmediateContext", HR: 0x80004005}
	}
	return &DeviceContext{comObject{ctx}}, nil
}

func (d *Device) CreateRenderTargetView(texture renderer.Texture) (renderer.RenderTargetView, error) {
	var view uintptr
	hr, _, _ := syscall.SyscallN(
		comVtblFn(d.ptr, deviceCreateRenderTargetView),
		d.ptr,
		rawOf(texture),
		0, // pDesc: view the whole resource in its own format
		uintptr(unsafe.Pointer(&view)),
	)
	if err := hresult("CreateRenderTargetView", hr); err != nil {
		return nil, err
	}
	return &RenderTargetView{comObject{view}}, nil
}

func (d *Device) CreateVertexShader(bytecode []byte) (renderer.VertexShader, error) {
	if len(bytecode) == 0 {
		return nil, errEmptyBytecode
	}
	var shader uintptr
	hr, _, _ := syscall.SyscallN(
		comVtblFn(d.ptr, deviceCreateVertexShader),
		d.ptr,
		uintptr(unsafe.Pointer(&bytecode[0])),
		uintptr(len(bytecode)),
		0, // pClassLinkage
		uintptr(unsafe.Pointer(&shader)),
	)
	if err := hresult("CreateVertexShader", hr); err != nil {
		return nil, err
	}
	return &VertexShader{comObject{shader}}, nil
}

func (d *Device) CreatePixelShader(bytecode []byte) (renderer.PixelShader, error) {
	if len(bytecode) == 0 {
		return nil, errEmptyBytecode
	}
	var shader uintptr
	hr, _, _ := syscall.SyscallN(
		comVtblFn(d.ptr, deviceCreatePixelShader),
		d.ptr,
		uintptr(unsafe.Pointer(&bytecode[0])),
		uintptr(len(bytecode)),
		0, // pClassLinkage
		uintptr(unsafe.Pointer(&shader)),
	)
	if err := hresult("CreatePixelShader", hr); err != nil {
		return nil, err
	}
	return &PixelShader{comObject{shader}}, nil
}

func (d *Device) CreateInputLayout(elements []metadata.InputElementDesc, vertexBytecode []byte) (renderer.InputLayout, error) {
	if len(elements) == 0 || len(vertexBytecode) == 0 {
		return nil, errEmptyBytecode
	}
	names := make([][]byte, len(elements))
	descs := make([]d3d11InputElementDesc, len(elements))
	for i, e := range elements {
		names[i] = append([]byte(e.SemanticName), 0)
		descs[i] = d3d11InputElementDesc{
			SemanticName:         &names[i][0],
			SemanticIndex:        e.SemanticIndex,
			Format:               uint32(e.Format),
			InputSlot:            e.InputSlot,
			AlignedByteOffset:    e.AlignedByteOffset,
			InputSlotClass:       uint32(e.InputSlotClass),
			InstanceDataStepRate: e.InstanceDataStepRate,
		}
	}
	var layout uintptr
	hr, _, _ := syscall.SyscallN(
		comVtblFn(d.ptr, deviceCreateInputLayout),
		d.ptr,
		uintptr(unsafe.Pointer(&descs[0])),
		uintptr(len(descs)),
		uintptr(unsafe.Pointer(&vertexBytecode[0])),
		uintptr(len(vertexBytecode)),
		uintptr(unsafe.Pointer(&layout)),
	)
	runtime.KeepAlive(names)
	if err := hresult("CreateInputLayout", hr); err != nil {
		return nil, err
	}
	return &InputLayout{comObject{layout}}, nil
}

func (d *Device) CreateBlendState(desc *metadata.BlendDesc) (renderer.BlendState, error) {
	native := d3d11BlendDesc{
		AlphaToCoverageEnable:  boolToInt32(desc.AlphaToCoverageEnable),
		IndependentBlendEnable: boolToInt32(desc.IndependentBlendEnable),
	}
	for i, rt := range desc.RenderTarget {
		native.RenderTarget[i] = d3d11RenderTargetBlendDesc{
			BlendEnable:           boolToInt32(rt.BlendEnable),
			SrcBlend:              uint32(rt.SrcBlend),
			DestBlend:             uint32(rt.DestBlend),
			BlendOp:               uint32(rt.BlendOp),
			SrcBlendAlpha:         uint32(rt.SrcBlendAlpha),
			DestBlendAlpha:        uint32(rt.DestBlendAlpha),
			BlendOpAlpha:          uint32(rt.BlendOpAlpha),
			RenderTargetWriteMask: uint8(rt.RenderTargetWriteMask),
		}
	}
	var state uintptr
	hr, _, _ := syscall.SyscallN(
		comVtblFn(d.ptr, deviceCreateBlendState),
		d.ptr,
		uintptr(unsafe.Pointer(&native)),
		uintptr(unsafe.Pointer(&state)),
	)
	if err := hresult("CreateBlendState", hr); err != nil {
		return nil, err
	}
	return &BlendState{comObject{state}}, nil
}

func (d *Device) CreateBuffer(desc *metadata.BufferDesc, initialData []byte) (renderer.Buffer, error) {
	native := d3d11BufferDesc{
		ByteWidth:           desc.ByteWidth,
		Usage:               uint32(desc.Usage),
		BindFlags:           uint32(desc.BindFlags),
		CPUAccessFlags:      desc.CPUAccessFlags,
		MiscFlags:           desc.MiscFlags,
		StructureByteStride: desc.StructureByteStride,
	}
	var data *d3d11SubresourceData
	if len(initialData) > 0 {
		data = &d3d11SubresourceData{pSysMem: uintptr(unsafe.Pointer(&initialData[0]))}
	}
	var buffer uintptr
	hr, _, _ := syscall.SyscallN(
		comVtblFn(d.ptr, deviceCreateBuffer),
		d.ptr,
		uintptr(unsafe.Pointer(&native)),
		uintptr(unsafe.Pointer(data)),
		uintptr(unsafe.Pointer(&buffer)),
	)
	runtime.KeepAlive(initialData)
	if err := hresult("CreateBuffer", hr); err != nil {
		return nil, err
	}
	return &Buffer{comObject{buffer}}, nil
}

// DeviceContext wraps one reference to an ID3D11DeviceContext.
type DeviceContext struct {
	comObject
}

func (c *DeviceContext) RSSetViewports(viewports []metadata.Viewport) {
	if len(viewports) == 0 {
		return
	}
	native := make([]d3d11Viewport, len(viewports))
	for i, v := range viewports {
		native[i] = d3d11Viewport(v)
	}
	syscall.SyscallN(comVtblFn(c.ptr, ctxRSSetViewports), c.ptr, uintptr(len(native)), uintptr(unsafe.Pointer(&native[0])))
}

func (c *DeviceContext) OMSetBlendState(state renderer.BlendState, blendFactor [4]float32, sampleMask uint32) {
	syscall.SyscallN(
		comVtblFn(c.ptr, ctxOMSetBlendState),
		c.ptr,
		rawOf(state),
		uintptr(unsafe.Pointer(&blendFactor[0])),
		uintptr(sampleMask),
	)
}

func (c *DeviceContext) OMSetRenderTargets(views []renderer.RenderTargetView) {
	if len(views) == 0 {
		syscall.SyscallN(comVtblFn(c.ptr, ctxOMSetRenderTargets), c.ptr, 0, 0, 0)
		return
	}
	ptrs := make([]uintptr, len(views))
	for i, v := range views {
		ptrs[i] = rawOf(v)
	}
	syscall.SyscallN(
		comVtblFn(c.ptr, ctxOMSetRenderTargets),
		c.ptr,
		uintptr(len(ptrs)),
		uintptr(unsafe.Pointer(&ptrs[0])),
		0, // pDepthStencilView
	)
}

func (c *DeviceContext) IASetInputLayout(layout renderer.InputLayout) {
	syscall.SyscallN(comVtblFn(c.ptr, ctxIASetInputLayout), c.ptr, rawOf(layout))
}

func (c *DeviceContext) IASetPrimitiveTopology(topology metadata.PrimitiveTopology) {
	syscall.SyscallN(comVtblFn(c.ptr, ctxIASetPrimitiveTopology), c.ptr, uintptr(topology))
}

func (c *DeviceContext) IASetVertexBuffers(startSlot uint32, buffers []renderer.Buffer, strides, offsets []uint32) {
	if len(buffers) == 0 {
		return
	}
	ptrs := make([]uintptr, len(buffers))
	for i, b := range buffers {
		ptrs[i] = rawOf(b)
	}
	syscall.SyscallN(
		comVtblFn(c.ptr, ctxIASetVertexBuffers),
		c.ptr,
		uintptr(startSlot),
		uintptr(len(ptrs)),
		uintptr(unsafe.Pointer(&ptrs[0])),
		uintptr(unsafe.Pointer(&strides[0])),
		uintptr(unsafe.Pointer(&offsets[0])),
	)
}

func (c *DeviceContext) IASetIndexBuffer(buffer renderer.Buffer, format metadata.Format, offset uint32) {
	syscall.SyscallN(comVtblFn(c.ptr, ctxIASetIndexBuffer), c.ptr, rawOf(buffer), uintptr(format), uintptr(offset))
}

func (c *DeviceContext) VSSetShader(shader renderer.VertexShader) {
	syscall.SyscallN(comVtblFn(c.ptr, ctxVSSetShader), c.ptr, rawOf(shader), 0, 0)
}

func (c *DeviceContext) PSSetShader(shader renderer.PixelShader) {
	syscall.SyscallN(comVtblFn(c.ptr, ctxPSSetShader), c.ptr, rawOf(shader), 0, 0)
}

func (c *DeviceContext) DrawIndexed(indexCount, startIndexLocation uint32, baseVertexLocation int32) {
	syscall.SyscallN(
		comVtblFn(c.ptr, ctxDrawIndexed),
		c.ptr,
		uintptr(indexCount),
		uintptr(startIndexLocation),
		uintptr(baseVertexLocation),
	)
}

// ClearRenderTargetView fills view with color. The overlay never clears the host's
// image; this is for the demo host.
func (c *DeviceContext) ClearRenderTargetView(view renderer.RenderTargetView, color [4]float32) {
	syscall.SyscallN(comVtblFn(c.ptr, ctxClearRenderTargetView), c.ptr, rawOf(view), uintptr(unsafe.Pointer(&color[0])))
}

var (
	_ renderer.Device        = (*Device)(nil)
	_ renderer.DeviceContext = (*DeviceContext)(nil)
)
