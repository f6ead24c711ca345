package renderer

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/anima-overlay/engine/core"
	"github.com/spaghettifunk/anima-overlay/engine/math"
	"github.com/spaghettifunk/anima-overlay/engine/renderer/metadata"
	"github.com/spaghettifunk/anima-overlay/engine/ui"
)

var (
	testShaders = metadata.ShaderSource{Vertex: []byte("vs"), Pixel: []byte("ps")}
	red         = metadata.Color32{R: 255, A: 255}
	fixedTime   = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
)

func fixedClock() *core.Clock {
	return core.NewClockWithSource(func() time.Time { return fixedTime })
}

func triangleUI(ctx *ui.Context) {
	ctx.Painter().Triangle(math.NewVec2(400, 300), math.NewVec2(450, 300), math.NewVec2(400, 350), red)
}

func newTestRenderer(t *testing.T, surface *fakeSurface, uiFn ui.UIFunc, opts ...Option) *FrameRenderer {
	t.Helper()
	opts = append([]Option{WithClock(fixedClock())}, opts...)
	fr, err := NewFrameRenderer(surface, testShaders, uiFn, opts...)
	require.NoError(t, err)
	return fr
}

func TestNormalizePosition(t *testing.T) {
	screen := math.NewVec2(800, 600)

	tests := []struct {
		name  string
		pixel math.Vec2
		want  math.Vec2
	}{
		{"top-left", math.NewVec2(0, 0), math.NewVec2(-1, 1)},
		{"bottom-right", math.NewVec2(800, 600), math.NewVec2(1, -1)},
		{"top-right", math.NewVec2(800, 0), math.NewVec2(1, 1)},
		{"bottom-left", math.NewVec2(0, 600), math.NewVec2(-1, -1)},
		{"center", math.NewVec2(400, 300), math.NewVec2(0, 0)},
		{"quarter", math.NewVec2(200, 150), math.NewVec2(-0.5, 0.5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizePosition(tt.pixel, screen)
			assert.InDelta(t, tt.want.X, got.X, 1e-6)
			assert.InDelta(t, tt.want.Y, got.Y, 1e-6)
		})
	}
}

func TestNormalizePositionIsInvertible(t *testing.T) {
	for _, screen := range []math.Vec2{{X: 800, Y: 600}, {X: 1920, Y: 1080}, {X: 37, Y: 11}} {
		for x := float32(-50); x <= screen.X+50; x += screen.X / 7 {
			for y := float32(-50); y <= screen.Y+50; y += screen.Y / 5 {
				p := math.NewVec2(x, y)
				back := PixelPosition(NormalizePosition(p, screen), screen)
				assert.InDelta(t, p.X, back.X, 1e-3)
				assert.InDelta(t, p.Y, back.Y, 1e-3)
			}
		}
	}
}

func TestPresentSingleTriangle(t *testing.T) {
	surface := newFakeSurface(800, 600)
	fr := newTestRenderer(t, surface, triangleUI)

	require.NoError(t, fr.Present(surface))

	draws := surface.device.context.drawCalls()
	require.Len(t, draws, 1)
	draw := draws[0]
	assert.Equal(t, uint32(3), draw.indexCount)
	assert.Equal(t, []uint32{0, 1, 2}, draw.indices)
	assert.Equal(t, metadata.VertexSize, draw.stride)
	assert.Equal(t, metadata.FormatR32Uint, draw.indexFmt)

	want := []math.Vec2{{X: 0, Y: 0}, {X: 0.125, Y: 0}, {X: 0, Y: -0.1667}}
	require.Len(t, draw.vertices, 3)
	for i, v := range draw.vertices {
		assert.InDelta(t, want[i].X, v.Pos.X, 1e-4)
		assert.InDelta(t, want[i].Y, v.Pos.Y, 1e-4)
		assert.Equal(t, red, v.Color)
	}

	assert.Equal(t, []metadata.Viewport{{Width: 800, Height: 600, MaxDepth: 1}}, surface.device.context.recordedViewports())
	assert.Equal(t, metadata.PrimitiveTopologyTriangleList, surface.device.context.topology)
	assert.Equal(t, "layout", surface.device.context.layout.kind)
	assert.Equal(t, "vs", draw.shaders[0].kind)
	assert.Equal(t, "ps", draw.shaders[1].kind)
}

func TestPresentSetsBlendState(t *testing.T) {
	surface := newFakeSurface(800, 600)
	fr := newTestRenderer(t, surface, triangleUI)

	require.NoError(t, fr.Present(surface))

	ctx := surface.device.context
	require.Len(t, surface.device.blendDescs, 1)
	assert.Equal(t, OverlayBlendDesc(), surface.device.blendDescs[0])
	assert.Equal(t, [][4]float32{{0, 0, 0, 1}}, ctx.blendFactors)
	assert.Equal(t, []uint32{0xffffffff}, ctx.sampleMasks)
	// The context keeps its own reference.
	assert.True(t, ctx.blendStates[0].released.Load())
}

func TestOverlayBlendDesc(t *testing.T) {
	desc := OverlayBlendDesc()

	assert.False(t, desc.AlphaToCoverageEnable)
	assert.False(t, desc.IndependentBlendEnable)
	assert.Equal(t, metadata.RenderTargetBlendDesc{
		BlendEnable:           true,
		SrcBlend:              metadata.BlendSrcAlpha,
		DestBlend:             metadata.BlendInvSrcAlpha,
		BlendOp:               metadata.BlendOpAdd,
		SrcBlendAlpha:         metadata.BlendOne,
		DestBlendAlpha:        metadata.BlendInvSrcAlpha,
		BlendOpAlpha:          metadata.BlendOpAdd,
		RenderTargetWriteMask: metadata.ColorWriteEnableAll,
	}, desc.RenderTarget[0])
	for i := 1; i < len(desc.RenderTarget); i++ {
		assert.Zero(t, desc.RenderTarget[i])
	}
}

func TestPresentDrawsEveryMeshInOrder(t *testing.T) {
	surface := newFakeSurface(800, 600)
	inner := math.NewRect(math.NewVec2(100, 100), math.NewVec2(300, 300))
	fr := newTestRenderer(t, surface, func(ctx *ui.Context) {
		p := ctx.Painter()
		p.Rect(math.NewRect(math.NewVec2(0, 0), math.NewVec2(50, 50)), red)
		clipped := p.WithClip(inner)
		clipped.Rect(inner, red)
		clipped.Triangle(math.NewVec2(100, 100), math.NewVec2(200, 100), math.NewVec2(100, 200), red)
		p.Rect(math.NewRect(math.NewVec2(500, 500), math.NewVec2(600, 600)), red)
	})

	require.NoError(t, fr.Present(surface))

	draws := surface.device.context.drawCalls()
	require.Len(t, draws, 3)
	assert.Equal(t, uint32(6), draws[0].indexCount)
	assert.Equal(t, uint32(9), draws[1].indexCount)
	assert.Equal(t, uint32(6), draws[2].indexCount)
	for _, d := range draws {
		assert.Equal(t, int(d.indexCount), len(d.indices))
	}
}

func TestPresentReleasesGeometryAndBorrowedHandles(t *testing.T) {
	surface := newFakeSurface(800, 600)
	fr := newTestRenderer(t, surface, triangleUI)

	require.NoError(t, fr.Present(surface))
	require.NoError(t, fr.Present(surface))

	assert.Equal(t, 0, surface.device.liveObjects("buffer"))
	assert.Equal(t, 0, surface.device.liveObjects("blend"))
	assert.Equal(t, 0, surface.device.liveObjects("texture"))
	assert.Equal(t, 1, surface.device.liveObjects("view"))
	assert.Equal(t, int32(0), surface.device.refs.Load())
	assert.Equal(t, int32(0), surface.device.context.refs.Load())
}

func TestPresentIsIdempotent(t *testing.T) {
	surface := newFakeSurface(1024, 768)
	fr := newTestRenderer(t, surface, func(ctx *ui.Context) {
		p := ctx.Panel(math.NewRect(math.NewVec2(10, 10), math.NewVec2(300, 200)))
		ctx.ProgressBar(p, ui.IDFromString("bar"), math.NewRect(math.NewVec2(20, 20), math.NewVec2(280, 40)), 0.5)
		p.Circle(math.NewVec2(150, 120), 30, red)
	})

	require.NoError(t, fr.Present(surface))
	first := surface.device.context.drawCalls()
	require.NoError(t, fr.Present(surface))
	second := surface.device.context.drawCalls()[len(first):]

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].vertices, second[i].vertices)
		assert.Equal(t, first[i].indices, second[i].indices)
	}
}

func TestPresentFeedsMinimalInput(t *testing.T) {
	surface := newFakeSurface(800, 600)
	var got ui.RawInput
	fr := newTestRenderer(t, surface, func(ctx *ui.Context) {
		got = ctx.Input()
	})

	require.NoError(t, fr.Present(surface))

	assert.Equal(t, math.NewRect(math.NewVec2(0, 0), math.NewVec2(800, 600)), got.ScreenRect)
	assert.Equal(t, float32(1), got.PixelsPerPoint)
	assert.InDelta(t, 1.0/60.0, got.PredictedDT, 1e-6)
	assert.InDelta(t, core.SystemTime(fixedTime), got.Time, 1e-6)
	assert.Empty(t, got.Events)
	assert.Empty(t, got.DroppedFiles)
	assert.Empty(t, got.HoveredFiles)
	assert.Equal(t, ui.Modifiers{}, got.Modifiers)
}

func TestPresentMinimizedWindowDrawsNothing(t *testing.T) {
	surface := newFakeSurface(0, 0)
	frames := 0
	fr := newTestRenderer(t, surface, func(ctx *ui.Context) {
		frames++
		triangleUI(ctx)
	})

	require.NoError(t, fr.Present(surface))

	assert.Equal(t, 1, frames)
	assert.Empty(t, surface.device.context.drawCalls())
	assert.Empty(t, surface.device.context.recordedViewports())
}

func TestResizeScenario(t *testing.T) {
	surface := newFakeSurface(800, 600)
	bus := core.NewEventBus()
	var resized [2]uint32
	bus.Register(core.EventCodeResized, t, func(code core.SystemEventCode, sender, listener interface{}, data core.EventContext) bool {
		resized = [2]uint32{data.Data.U32[0], data.Data.U32[1]}
		return true
	})
	fr := newTestRenderer(t, surface, triangleUI, WithEventBus(bus))
	firstID := fr.TargetID()

	require.NoError(t, fr.Present(surface))
	require.NoError(t, fr.ResizeBuffers(surface, 2, 1920, 1080, metadata.FormatR8G8B8A8Unorm, 0, surface.resize))
	require.NoError(t, fr.Present(surface))

	viewports := surface.device.context.recordedViewports()
	require.Len(t, viewports, 2)
	assert.Equal(t, float32(800), viewports[0].Width)
	assert.Equal(t, float32(600), viewports[0].Height)
	assert.Equal(t, float32(1920), viewports[1].Width)
	assert.Equal(t, float32(1080), viewports[1].Height)

	draws := surface.device.context.drawCalls()
	require.Len(t, draws, 2)
	assert.NotSame(t, draws[0].target, draws[1].target)
	assert.True(t, draws[0].target.released.Load())
	assert.False(t, draws[1].target.released.Load())

	assert.NotEqual(t, firstID, fr.TargetID())
	assert.True(t, fr.TargetID().IsValid())
	assert.Equal(t, [2]uint32{1920, 1080}, resized)
	assert.Equal(t, 1, surface.resizes)
	assert.Empty(t, surface.device.violations)
}

func TestResizeReturnsOriginalResult(t *testing.T) {
	surface := newFakeSurface(800, 600)
	surface.resizeErr = errors.New("DXGI_ERROR_INVALID_CALL")
	fr := newTestRenderer(t, surface, triangleUI)

	err := fr.ResizeBuffers(surface, 2, 640, 480, metadata.FormatUnknown, 0, surface.resize)

	assert.Equal(t, surface.resizeErr, err)
	assert.False(t, errors.Is(err, core.ErrGraphicsResource))
	assert.Equal(t, 1, surface.device.liveObjects("view"))
}

func TestResizeEvent(t *testing.T) {
	tests := []struct {
		name          string
		width, height uint32
		windowSize    math.Vec2
		resizeErr     error
		want          [][2]uint32
	}{
		{name: "explicit size", width: 1024, height: 768, windowSize: math.NewVec2(800, 600), want: [][2]uint32{{1024, 768}}},
		{name: "zero size follows the window", windowSize: math.NewVec2(1280, 720), want: [][2]uint32{{1280, 720}}},
		{name: "original failed", width: 640, height: 480, windowSize: math.NewVec2(800, 600), resizeErr: errors.New("DXGI_ERROR_INVALID_CALL")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			surface := newFakeSurface(800, 600)
			bus := core.NewEventBus()
			var got [][2]uint32
			bus.Register(core.EventCodeResized, t, func(code core.SystemEventCode, sender, listener interface{}, data core.EventContext) bool {
				got = append(got, [2]uint32{data.Data.U32[0], data.Data.U32[1]})
				return true
			})
			fr := newTestRenderer(t, surface, triangleUI, WithEventBus(bus))
			surface.size = tt.windowSize
			surface.resizeErr = tt.resizeErr

			err := fr.ResizeBuffers(surface, 2, tt.width, tt.height, metadata.FormatUnknown, 0, surface.resize)

			assert.Equal(t, tt.resizeErr, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResizeListenerMayQueryRenderer(t *testing.T) {
	surface := newFakeSurface(800, 600)
	bus := core.NewEventBus()
	fr := newTestRenderer(t, surface, triangleUI, WithEventBus(bus))
	var seen core.Identifier
	bus.Register(core.EventCodeResized, t, func(code core.SystemEventCode, sender, listener interface{}, data core.EventContext) bool {
		seen = sender.(*FrameRenderer).TargetID()
		return true
	})

	done := make(chan error, 1)
	go func() {
		done <- fr.ResizeBuffers(surface, 2, 1024, 768, metadata.FormatUnknown, 0, surface.resize)
	}()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("ResizeBuffers did not return while a listener read the target")
	}
	assert.True(t, seen.IsValid())
	assert.Equal(t, fr.TargetID(), seen)
}

func TestResizeRecreateFailure(t *testing.T) {
	surface := newFakeSurface(800, 600)
	fr := newTestRenderer(t, surface, triangleUI)
	surface.device.setFailure("CreateRenderTargetView", errFakeRefused)

	err := fr.ResizeBuffers(surface, 2, 640, 480, metadata.FormatUnknown, 0, surface.resize)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrGraphicsResource)
	assert.ErrorIs(t, err, errFakeRefused)
	var gre *core.GraphicsResourceError
	require.ErrorAs(t, err, &gre)
	assert.Equal(t, "CreateRenderTargetView", gre.Op)
	assert.False(t, fr.TargetID().IsValid())

	// Nothing may be drawn into an unbound target.
	err = fr.Present(surface)
	assert.ErrorIs(t, err, core.ErrNotAttached)
	assert.Empty(t, surface.device.context.drawCalls())
}

func TestConcurrentPresentAndResize(t *testing.T) {
	surface := newFakeSurface(800, 600)
	fr := newTestRenderer(t, surface, triangleUI)

	const rounds = 100
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < rounds; i++ {
			assert.NoError(t, fr.Present(surface))
		}
	}()
	go func() {
		defer wg.Done()
		sizes := [][2]uint32{{1920, 1080}, {800, 600}}
		for i := 0; i < rounds; i++ {
			s := sizes[i%2]
			assert.NoError(t, fr.ResizeBuffers(surface, 2, s[0], s[1], metadata.FormatUnknown, 0, surface.resize))
		}
	}()
	wg.Wait()

	assert.Len(t, surface.device.context.drawCalls(), rounds)
	assert.Empty(t, surface.device.violations)
	assert.Equal(t, 1, surface.device.liveObjects("view"))
	assert.Equal(t, int32(0), surface.device.refs.Load())
}

func TestNewFrameRendererErrors(t *testing.T) {
	tests := []struct {
		name    string
		failure string
		op      string
	}{
		{"device", "GetDevice", "GetDevice"},
		{"back buffer", "GetBuffer", "GetBuffer"},
		{"render target view", "CreateRenderTargetView", "CreateRenderTargetView"},
		{"vertex shader", "CreateVertexShader", "CreateVertexShader"},
		{"pixel shader", "CreatePixelShader", "CreatePixelShader"},
		{"input layout", "CreateInputLayout", "CreateInputLayout"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			surface := newFakeSurface(800, 600)
			surface.device.setFailure(tt.failure, errFakeRefused)

			fr, err := NewFrameRenderer(surface, testShaders, triangleUI)
			require.Error(t, err)
			assert.Nil(t, fr)
			var gre *core.GraphicsResourceError
			require.ErrorAs(t, err, &gre)
			assert.Equal(t, tt.op, gre.Op)
			assert.ErrorIs(t, err, core.ErrGraphicsResource)

			// Partially built state is torn down.
			for _, kind := range []string{"view", "vs", "ps", "layout", "texture"} {
				assert.Equal(t, 0, surface.device.liveObjects(kind), kind)
			}
		})
	}
}

func TestNewFrameRendererInvalidWindow(t *testing.T) {
	surface := newFakeSurface(800, 600)
	surface.windowErr = errors.New("null window handle")

	_, err := NewFrameRenderer(surface, testShaders, triangleUI)

	assert.ErrorIs(t, err, core.ErrSurfaceDescriptor)
	assert.False(t, errors.Is(err, core.ErrGraphicsResource))
}

func TestPresentAbortsFrameOnFailure(t *testing.T) {
	for _, op := range []string{"CreateBlendState", "CreateBuffer", "GetDevice", "GetImmediateContext"} {
		t.Run(op, func(t *testing.T) {
			surface := newFakeSurface(800, 600)
			fr := newTestRenderer(t, surface, triangleUI)
			surface.device.setFailure(op, errFakeRefused)

			err := fr.Present(surface)

			assert.ErrorIs(t, err, core.ErrGraphicsResource)
			assert.Empty(t, surface.device.context.drawCalls())
			assert.Equal(t, int32(0), surface.device.refs.Load())
		})
	}
}

func TestUploadGeometrySizing(t *testing.T) {
	device := newFakeDevice()
	mesh := metadata.Mesh{}
	ui.CircleShape{Center: math.NewVec2(10, 10), Radius: 5, Fill: red}.Tessellate(&mesh)
	require.Len(t, mesh.Vertices, 9)
	require.Len(t, mesh.Indices, 24)

	gb, err := UploadGeometry(device, &mesh)
	require.NoError(t, err)

	vb := gb.VertexBuffer.(*fakeBuffer)
	ib := gb.IndexBuffer.(*fakeBuffer)
	assert.Equal(t, uint32(9*20), vb.desc.ByteWidth)
	assert.Equal(t, uint32(24*4), ib.desc.ByteWidth)
	assert.Equal(t, metadata.UsageImmutable, vb.desc.Usage)
	assert.Equal(t, metadata.UsageImmutable, ib.desc.Usage)
	assert.Equal(t, metadata.BindVertexBuffer, vb.desc.BindFlags)
	assert.Equal(t, metadata.BindIndexBuffer, ib.desc.BindFlags)
	assert.Equal(t, mesh.Vertices, decodeVertices(vb.data))
	assert.Equal(t, mesh.Indices, decodeIndices(ib.data))
	assert.Equal(t, uint32(9), gb.VertexCount)
	assert.Equal(t, uint32(24), gb.IndexCount)

	gb.Release()
	assert.True(t, vb.released.Load())
	assert.True(t, ib.released.Load())
}

func TestUploadGeometryIndexFailureReleasesVertexBuffer(t *testing.T) {
	device := newFakeDevice()
	mesh := metadata.Mesh{}
	// An index buffer with no indices is refused by the device.
	mesh.Vertices = []metadata.Vertex{{}, {}, {}}

	_, err := UploadGeometry(device, &mesh)

	var gre *core.GraphicsResourceError
	require.ErrorAs(t, err, &gre)
	assert.Equal(t, "CreateBuffer(index)", gre.Op)
	assert.Equal(t, 0, device.liveObjects("buffer"))
}

func TestBuildPipelineStateInputLayout(t *testing.T) {
	device := newFakeDevice()

	ps, err := BuildPipelineState(device, testShaders)
	require.NoError(t, err)

	require.Len(t, device.layouts, 1)
	layout := device.layouts[0]
	require.Len(t, layout, 3)
	assert.Equal(t, "POSITION", layout[0].SemanticName)
	assert.Equal(t, metadata.FormatR32G32Float, layout[0].Format)
	assert.Equal(t, uint32(0), layout[0].AlignedByteOffset)
	assert.Equal(t, "TEXCOORD", layout[1].SemanticName)
	assert.Equal(t, metadata.FormatR32G32Float, layout[1].Format)
	assert.Equal(t, metadata.AppendAlignedElement, layout[1].AlignedByteOffset)
	assert.Equal(t, "COLOR", layout[2].SemanticName)
	assert.Equal(t, metadata.FormatR8G8B8A8Unorm, layout[2].Format)
	assert.Equal(t, metadata.AppendAlignedElement, layout[2].AlignedByteOffset)

	ps.Destroy()
	assert.Equal(t, 0, device.liveObjects("vs"))
	assert.Equal(t, 0, device.liveObjects("ps"))
	assert.Equal(t, 0, device.liveObjects("layout"))
}

func TestSurfaceTargetLifecycle(t *testing.T) {
	surface := newFakeSurface(800, 600)

	st, err := AttachSurfaceTarget(surface.device, surface)
	require.NoError(t, err)
	first := st.ID()
	assert.True(t, st.IsBound())
	assert.True(t, first.IsValid())

	st.ReleaseBeforeResize()
	st.ReleaseBeforeResize()
	assert.False(t, st.IsBound())
	assert.Equal(t, 0, surface.device.liveObjects("view"))

	require.NoError(t, st.RecreateAfterResize(surface.device, surface))
	assert.True(t, st.IsBound())
	assert.NotEqual(t, first, st.ID())
	assert.Equal(t, 1, surface.device.liveObjects("view"))
	assert.Equal(t, 0, surface.device.liveObjects("texture"))
}

func TestDestroyReleasesEverything(t *testing.T) {
	surface := newFakeSurface(800, 600)
	fr := newTestRenderer(t, surface, triangleUI)
	require.NoError(t, fr.Present(surface))

	fr.Destroy()

	for _, kind := range []string{"view", "vs", "ps", "layout", "buffer", "blend", "texture"} {
		assert.Equal(t, 0, surface.device.liveObjects(kind), kind)
	}
}

func TestPresentUpdatesMetrics(t *testing.T) {
	now := fixedTime
	clock := core.NewClockWithSource(func() time.Time { return now })
	surface := newFakeSurface(800, 600)
	fr := newTestRenderer(t, surface, triangleUI, WithClock(clock))

	for i := 0; i < 10; i++ {
		now = now.Add(20 * time.Millisecond)
		require.NoError(t, fr.Present(surface))
	}

	assert.InDelta(t, 20.0, fr.Metrics().FrameTime(), 1e-6)
}
