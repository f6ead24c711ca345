package renderer

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/spaghettifunk/anima-overlay/engine/math"
	"github.com/spaghettifunk/anima-overlay/engine/renderer/metadata"
)

var errFakeRefused = errors.New("E_INVALIDARG")

type fakeObject struct {
	kind     string
	released atomic.Bool
}

func (o *fakeObject) Release() {
	o.released.Store(true)
}

type fakeBuffer struct {
	fakeObject
	desc metadata.BufferDesc
	data []byte
}

type drawCall struct {
	indexCount uint32
	target     *fakeObject
	stride     uint32
	indexFmt   metadata.Format
	vertices   []metadata.Vertex
	indices    []uint32
	shaders    [2]*fakeObject
}

// fakeDevice records every creation call and the draws issued on its context.
type fakeDevice struct {
	mu         sync.Mutex
	refs       atomic.Int32
	failures   map[string]error
	created    []*fakeObject
	views      []*fakeObject
	buffers    []*fakeBuffer
	blendDescs []metadata.BlendDesc
	layouts    [][]metadata.InputElementDesc
	violations []string
	context    *fakeContext
}

func newFakeDevice() *fakeDevice {
	d := &fakeDevice{failures: make(map[string]error)}
	d.context = &fakeContext{device: d}
	return d
}

func (d *fakeDevice) setFailure(op string, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.failures[op] = err
}

func (d *fakeDevice) fail(op string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.failures[op]
}

func (d *fakeDevice) violation(format string, args ...interface{}) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.violations = append(d.violations, fmt.Sprintf(format, args...))
}

func (d *fakeDevice) newObject(kind string) *fakeObject {
	o := &fakeObject{kind: kind}
	d.mu.Lock()
	d.created = append(d.created, o)
	d.mu.Unlock()
	return o
}

func (d *fakeDevice) liveObjects(kind string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := 0
	for _, o := range d.created {
		if o.kind == kind && !o.released.Load() {
			n++
		}
	}
	return n
}

func (d *fakeDevice) Release() {
	d.refs.Add(-1)
}

func (d *fakeDevice) ImmediateContext() (DeviceContext, error) {
	if err := d.fail("GetImmediateContext"); err != nil {
		return nil, err
	}
	d.context.refs.Add(1)
	return d.context, nil
}

func (d *fakeDevice) CreateRenderTargetView(texture Texture) (RenderTargetView, error) {
	if err := d.fail("CreateRenderTargetView"); err != nil {
		return nil, err
	}
	tex, ok := texture.(*fakeObject)
	if !ok || tex.kind != "texture" || tex.released.Load() {
		return nil, errFakeRefused
	}
	view := d.newObject("view")
	d.mu.Lock()
	d.views = append(d.views, view)
	d.mu.Unlock()
	return view, nil
}

func (d *fakeDevice) CreateVertexShader(bytecode []byte) (VertexShader, error) {
	if err := d.fail("CreateVertexShader"); err != nil {
		return nil, err
	}
	return d.newObject("vs"), nil
}

func (d *fakeDevice) CreatePixelShader(bytecode []byte) (PixelShader, error) {
	if err := d.fail("CreatePixelShader"); err != nil {
		return nil, err
	}
	return d.newObject("ps"), nil
}

func (d *fakeDevice) CreateInputLayout(elements []metadata.InputElementDesc, vertexBytecode []byte) (InputLayout, error) {
	if err := d.fail("CreateInputLayout"); err != nil {
		return nil, err
	}
	d.mu.Lock()
	d.layouts = append(d.layouts, append([]metadata.InputElementDesc(nil), elements...))
	d.mu.Unlock()
	return d.newObject("layout"), nil
}

func (d *fakeDevice) CreateBlendState(desc *metadata.BlendDesc) (BlendState, error) {
	if err := d.fail("CreateBlendState"); err != nil {
		return nil, err
	}
	d.mu.Lock()
	d.blendDescs = append(d.blendDescs, *desc)
	d.mu.Unlock()
	return d.newObject("blend"), nil
}

func (d *fakeDevice) CreateBuffer(desc *metadata.BufferDesc, initialData []byte) (Buffer, error) {
	if err := d.fail("CreateBuffer"); err != nil {
		return nil, err
	}
	if desc.ByteWidth == 0 || int(desc.ByteWidth) != len(initialData) {
		return nil, errFakeRefused
	}
	b := &fakeBuffer{fakeObject: fakeObject{kind: "buffer"}, desc: *desc, data: append([]byte(nil), initialData...)}
	d.mu.Lock()
	d.created = append(d.created, &b.fakeObject)
	d.buffers = append(d.buffers, b)
	d.mu.Unlock()
	return b, nil
}

type fakeContext struct {
	mu           sync.Mutex
	device       *fakeDevice
	refs         atomic.Int32
	viewports    []metadata.Viewport
	blendStates  []*fakeObject
	blendFactors [][4]float32
	sampleMasks  []uint32
	targets      []*fakeObject
	layout       *fakeObject
	topology     metadata.PrimitiveTopology
	vertexBuffer *fakeBuffer
	stride       uint32
	indexBuffer  *fakeBuffer
	indexFmt     metadata.Format
	vs, ps       *fakeObject
	draws        []drawCall
}

func (c *fakeContext) Release() {
	c.refs.Add(-1)
}

func (c *fakeContext) RSSetViewports(viewports []metadata.Viewport) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.viewports = append(c.viewports, viewports...)
}

func (c *fakeContext) OMSetBlendState(state BlendState, blendFactor [4]float32, sampleMask uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.blendStates = append(c.blendStates, state.(*fakeObject))
	c.blendFactors = append(c.blendFactors, blendFactor)
	c.sampleMasks = append(c.sampleMasks, sampleMask)
}

func (c *fakeContext) OMSetRenderTargets(views []RenderTargetView) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(views) != 1 {
		c.device.violation("%d render targets bound", len(views))
		return
	}
	c.targets = append(c.targets, views[0].(*fakeObject))
}

func (c *fakeContext) IASetInputLayout(layout InputLayout) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.layout = layout.(*fakeObject)
}

func (c *fakeContext) IASetPrimitiveTopology(topology metadata.PrimitiveTopology) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.topology = topology
}

func (c *fakeContext) IASetVertexBuffers(startSlot uint32, buffers []Buffer, strides, offsets []uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vertexBuffer = buffers[0].(*fakeBuffer)
	c.stride = strides[0]
}

func (c *fakeContext) IASetIndexBuffer(buffer Buffer, format metadata.Format, offset uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.indexBuffer = buffer.(*fakeBuffer)
	c.indexFmt = format
}

func (c *fakeContext) VSSetShader(shader VertexShader) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vs = shader.(*fakeObject)
}

func (c *fakeContext) PSSetShader(shader PixelShader) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ps = shader.(*fakeObject)
}

func (c *fakeContext) DrawIndexed(indexCount, startIndexLocation uint32, baseVertexLocation int32) {
	c.mu.Lock()
	defer c.mu.Unlock()

	target := c.targets[len(c.targets)-1]
	if target.released.Load() {
		c.device.violation("draw into a released render target")
	}
	if c.vertexBuffer.released.Load() || c.indexBuffer.released.Load() {
		c.device.violation("draw from a released buffer")
	}
	c.draws = append(c.draws, drawCall{
		indexCount: indexCount,
		target:     target,
		stride:     c.stride,
		indexFmt:   c.indexFmt,
		vertices:   decodeVertices(c.vertexBuffer.data),
		indices:    decodeIndices(c.indexBuffer.data),
		shaders:    [2]*fakeObject{c.vs, c.ps},
	})
}

func (c *fakeContext) drawCalls() []drawCall {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]drawCall(nil), c.draws...)
}

func (c *fakeContext) recordedViewports() []metadata.Viewport {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]metadata.Viewport(nil), c.viewports...)
}

// fakeSurface is both the swap chain and its output window.
type fakeSurface struct {
	device    *fakeDevice
	mu        sync.Mutex
	size      math.Vec2
	resizing  atomic.Bool
	windowErr error
	resizeErr error
	resizes   int
}

func newFakeSurface(width, height float32) *fakeSurface {
	return &fakeSurface{device: newFakeDevice(), size: math.NewVec2(width, height)}
}

func (s *fakeSurface) Device() (Device, error) {
	if err := s.device.fail("GetDevice"); err != nil {
		return nil, err
	}
	s.device.refs.Add(1)
	return s.device, nil
}

func (s *fakeSurface) BackBuffer(index uint32) (Texture, error) {
	if err := s.device.fail("GetBuffer"); err != nil {
		return nil, err
	}
	if index != 0 || s.resizing.Load() {
		return nil, errFakeRefused
	}
	return s.device.newObject("texture"), nil
}

func (s *fakeSurface) OutputWindow() (Window, error) {
	if s.windowErr != nil {
		return nil, s.windowErr
	}
	return s, nil
}

func (s *fakeSurface) ClientSize() math.Vec2 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.size
}

// resize plays the host's original ResizeBuffers.
func (s *fakeSurface) resize(surface Surface, bufferCount, width, height uint32, format metadata.Format, flags uint32) error {
	s.resizing.Store(true)
	defer s.resizing.Store(false)

	if n := s.device.liveObjects("view"); n != 0 {
		s.device.violation("resize with %d live render target views", n)
	}
	runtime.Gosched()

	s.mu.Lock()
	if width != 0 {
		s.size.X = float32(width)
	}
	if height != 0 {
		s.size.Y = float32(height)
	}
	s.resizes++
	s.mu.Unlock()
	return s.resizeErr
}

func decodeVertices(data []byte) []metadata.Vertex {
	if len(data) == 0 {
		return nil
	}
	n := len(data) / int(metadata.VertexSize)
	return append([]metadata.Vertex(nil), unsafe.Slice((*metadata.Vertex)(unsafe.Pointer(&data[0])), n)...)
}

func decodeIndices(data []byte) []uint32 {
	if len(data) == 0 {
		return nil
	}
	n := len(data) / int(metadata.IndexSize)
	return append([]uint32(nil), unsafe.Slice((*uint32)(unsafe.Pointer(&data[0])), n)...)
}
