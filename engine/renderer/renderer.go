package renderer

import (
	"errors"
	"fmt"
	"sync"

	"github.com/spaghettifunk/anima-overlay/engine/core"
	"github.com/spaghettifunk/anima-overlay/engine/math"
	"github.com/spaghettifunk/anima-overlay/engine/renderer/metadata"
	"github.com/spaghettifunk/anima-overlay/engine/ui"
)

/**
 * @brief Draws the UI over the host's back buffer once per host present.
 *
 * Two locks are used. uiMu guards the toolkit context and is held for a whole
 * Present. targetMu guards the SurfaceTarget; Present holds it from binding the
 * target to the last draw, ResizeBuffers holds it across release, the host's resize
 * and recreate. The order is always uiMu then targetMu.
 */
type FrameRenderer struct {
	uiMu  sync.Mutex
	uiCtx *ui.Context
	uiFn  ui.UIFunc

	targetMu sync.Mutex
	target   *SurfaceTarget

	pipeline *PipelineState
	window   Window

	clock       *core.Clock
	lastElapsed float64
	metrics     *core.Metrics
	events      *core.EventBus
}

type Option func(fr *FrameRenderer)

// WithClock replaces the wall clock used for frame timestamps.
func WithClock(clock *core.Clock) Option {
	return func(fr *FrameRenderer) { fr.clock = clock }
}

func WithMetrics(metrics *core.Metrics) Option {
	return func(fr *FrameRenderer) { fr.metrics = metrics }
}

// WithEventBus makes the renderer announce resizes on bus.
func WithEventBus(bus *core.EventBus) Option {
	return func(fr *FrameRenderer) { fr.events = bus }
}

func WithUIContext(ctx *ui.Context) Option {
	return func(fr *FrameRenderer) { fr.uiCtx = ctx }
}

/**
 * @brief Attaches to surface: validates its output window, binds a render target to
 * back buffer 0 and builds the pipeline.
 * @param surface The host's presentation surface.
 * @param shaders Compiled vertex and pixel shaders.
 * @param uiFn Builds the UI every frame.
 * @return The renderer, a GraphicsResourceError or an error matching core.ErrSurfaceDescriptor.
 */
func NewFrameRenderer(surface Surface, shaders metadata.ShaderSource, uiFn ui.UIFunc, opts ...Option) (*FrameRenderer, error) {
	fr := &FrameRenderer{uiFn: uiFn}
	for _, opt := range opts {
		opt(fr)
	}
	if fr.uiCtx == nil {
		fr.uiCtx = ui.NewContext()
	}
	if fr.clock == nil {
		fr.clock = core.NewClock()
	}
	if fr.metrics == nil {
		fr.metrics = core.NewMetrics()
	}

	window, err := surface.OutputWindow()
	if err != nil {
		if !errors.Is(err, core.ErrSurfaceDescriptor) {
			err = fmt.Errorf("%w: %v", core.ErrSurfaceDescriptor, err)
		}
		return nil, err
	}
	fr.window = window

	device, err := surface.Device()
	if err != nil {
		return nil, core.NewGraphicsResourceError("GetDevice", err)
	}
	defer device.Release()

	target, err := AttachSurfaceTarget(device, surface)
	if err != nil {
		return nil, err
	}
	pipeline, err := BuildPipelineState(device, shaders)
	if err != nil {
		target.ReleaseBeforeResize()
		return nil, err
	}
	fr.target = target
	fr.pipeline = pipeline

	fr.clock.Start()
	return fr, nil
}

/**
 * @brief Runs the UI and draws its meshes over the back buffer of surface.
 * Any error aborts the frame; nothing is retried.
 */
func (fr *FrameRenderer) Present(surface Surface) error {
	fr.uiMu.Lock()
	defer fr.uiMu.Unlock()

	device, context, err := deviceContext(surface)
	if err != nil {
		return core.NewGraphicsResourceError("GetDevice", err)
	}
	defer device.Release()
	defer context.Release()

	screen := fr.window.ClientSize()
	input := ui.NewRawInput(screen, core.SystemTime(fr.clock.Now()))
	shapes := fr.uiCtx.Run(input, fr.uiFn)
	meshes := fr.uiCtx.Tessellate(shapes)
	fr.updateMetrics()

	// A minimized window has no drawable area.
	if screen.X <= 0 || screen.Y <= 0 {
		return nil
	}

	NormalizeMeshes(meshes, screen)
	context.RSSetViewports([]metadata.Viewport{viewport(screen)})
	if err := ApplyBlendState(device, context); err != nil {
		return err
	}

	fr.targetMu.Lock()
	defer fr.targetMu.Unlock()

	if err := fr.target.bind(context); err != nil {
		return err
	}
	fr.pipeline.bindLayout(context)

	for i := range meshes {
		if err := fr.draw(device, context, &meshes[i]); err != nil {
			return err
		}
	}
	return nil
}

func (fr *FrameRenderer) draw(device Device, context DeviceContext, mesh *metadata.Mesh) error {
	geometry, err := UploadGeometry(device, mesh)
	if err != nil {
		return err
	}
	defer geometry.Release()

	geometry.bind(context)
	fr.pipeline.bindShaders(context)
	context.DrawIndexed(geometry.IndexCount, 0, 0)
	return nil
}

/**
 * @brief Releases the render target, forwards the resize to the host's original
 * routine and rebinds the render target to the resized back buffer, all under the
 * target lock. EventCodeResized fires after the lock is released, only when the
 * original routine succeeded, and carries the window's new client size.
 * @return A GraphicsResourceError if the target cannot be recreated, otherwise the
 * original routine's result.
 */
func (fr *FrameRenderer) ResizeBuffers(surface Surface, bufferCount, width, height uint32, format metadata.Format, flags uint32, original ResizeBuffersFunc) error {
	var result error
	err := func() error {
		fr.targetMu.Lock()
		defer fr.targetMu.Unlock()

		fr.target.ReleaseBeforeResize()
		result = original(surface, bufferCount, width, height, format, flags)

		device, err := surface.Device()
		if err != nil {
			return core.NewGraphicsResourceError("GetDevice", err)
		}
		defer device.Release()
		return fr.target.RecreateAfterResize(device, surface)
	}()
	if err != nil {
		return err
	}
	if result != nil {
		return result
	}

	// Zero dimensions ask the host to take the size from the window.
	size := fr.window.ClientSize()
	core.LogDebug("surface resized to %.0fx%.0f", size.X, size.Y)
	if fr.events != nil {
		ctx := core.EventContext{}
		ctx.Data.U32[0] = uint32(size.X)
		ctx.Data.U32[1] = uint32(size.Y)
		fr.events.Fire(core.EventCodeResized, fr, ctx)
	}
	return nil
}

// Destroy releases the render target and pipeline. The renderer must not be used afterwards.
func (fr *FrameRenderer) Destroy() {
	fr.uiMu.Lock()
	defer fr.uiMu.Unlock()
	fr.targetMu.Lock()
	defer fr.targetMu.Unlock()

	fr.target.ReleaseBeforeResize()
	fr.pipeline.Destroy()
}

// TargetID identifies the render target generation currently bound.
func (fr *FrameRenderer) TargetID() core.Identifier {
	fr.targetMu.Lock()
	defer fr.targetMu.Unlock()
	return fr.target.ID()
}

func (fr *FrameRenderer) Metrics() *core.Metrics {
	return fr.metrics
}

func (fr *FrameRenderer) updateMetrics() {
	fr.clock.Update()
	elapsed := fr.clock.Elapsed()
	fr.metrics.Update(elapsed - fr.lastElapsed)
	fr.lastElapsed = elapsed
}

func viewport(screen math.Vec2) metadata.Viewport {
	return metadata.Viewport{
		TopLeftX: 0,
		TopLeftY: 0,
		Width:    screen.X,
		Height:   screen.Y,
		MinDepth: 0,
		MaxDepth: 1,
	}
}
