package renderer

import (
	"github.com/spaghettifunk/anima-overlay/engine/math"
	"github.com/spaghettifunk/anima-overlay/engine/renderer/metadata"
)

// Resource is any GPU object handed out by a Device. Release drops this
// reference; the object dies when the driver holds no other one.
type Resource interface {
	Release()
}

type Texture interface{ Resource }

type RenderTargetView interface{ Resource }

type VertexShader interface{ Resource }

type PixelShader interface{ Resource }

type InputLayout interface{ Resource }

type BlendState interface{ Resource }

type Buffer interface{ Resource }

// Device creates GPU resources. It is borrowed from the host's surface.
type Device interface {
	Resource
	ImmediateContext() (DeviceContext, error)
	CreateRenderTargetView(texture Texture) (RenderTargetView, error)
	CreateVertexShader(bytecode []byte) (VertexShader, error)
	CreatePixelShader(bytecode []byte) (PixelShader, error)
	CreateInputLayout(elements []metadata.InputElementDesc, vertexBytecode []byte) (InputLayout, error)
	CreateBlendState(desc *metadata.BlendDesc) (BlendState, error)
	CreateBuffer(desc *metadata.BufferDesc, initialData []byte) (Buffer, error)
}

// DeviceContext records pipeline state and draw calls.
type DeviceContext interface {
	Resource
	RSSetViewports(viewports []metadata.Viewport)
	OMSetBlendState(state BlendState, blendFactor [4]float32, sampleMask uint32)
	OMSetRenderTargets(views []RenderTargetView)
	IASetInputLayout(layout InputLayout)
	IASetPrimitiveTopology(topology metadata.PrimitiveTopology)
	IASetVertexBuffers(startSlot uint32, buffers []Buffer, strides, offsets []uint32)
	IASetIndexBuffer(buffer Buffer, format metadata.Format, offset uint32)
	VSSetShader(shader VertexShader)
	PSSetShader(shader PixelShader)
	DrawIndexed(indexCount, startIndexLocation uint32, baseVertexLocation int32)
}

// Window is the host's output window.
type Window interface {
	// ClientSize reports the current client area in pixels.
	ClientSize() math.Vec2
}

// Surface is the host's presentation surface (the swap chain).
type Surface interface {
	Device() (Device, error)
	BackBuffer(index uint32) (Texture, error)
	// OutputWindow fails with core.ErrSurfaceDescriptor when the surface has no usable window.
	OutputWindow() (Window, error)
}

// PresentFunc is the host's original, un-intercepted present routine.
type PresentFunc func(surface Surface, syncInterval, flags uint32) error

// ResizeBuffersFunc is the host's original, un-intercepted resize routine.
type ResizeBuffersFunc func(surface Surface, bufferCount, width, height uint32, format metadata.Format, flags uint32) error

// deviceContext borrows the device and its immediate context from surface.
// Both must be released by the caller.
func deviceContext(surface Surface) (Device, DeviceContext, error) {
	device, err := surface.Device()
	if err != nil {
		return nil, nil, err
	}
	context, err := device.ImmediateContext()
	if err != nil {
		device.Release()
		return nil, nil, err
	}
	return device, context, nil
}
