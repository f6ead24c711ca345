package renderer

import (
	"github.com/spaghettifunk/anima-overlay/engine/core"
)

/**
 * @brief The single render target view bound to back buffer 0 of the host surface.
 * Between ReleaseBeforeResize and a successful RecreateAfterResize the target is unbound
 * and must not be drawn to; FrameRenderer guards it with its own mutex.
 */
type SurfaceTarget struct {
	id   core.Identifier
	view RenderTargetView
}

/**
 * @brief Creates a render target view for back buffer 0 of surface.
 * @param device The device owning the surface.
 * @param surface The host's presentation surface.
 * @return The bound target, or a GraphicsResourceError.
 */
func AttachSurfaceTarget(device Device, surface Surface) (*SurfaceTarget, error) {
	st := &SurfaceTarget{}
	if err := st.create(device, surface); err != nil {
		return nil, err
	}
	return st, nil
}

func (st *SurfaceTarget) create(device Device, surface Surface) error {
	backBuffer, err := surface.BackBuffer(0)
	if err != nil {
		return core.NewGraphicsResourceError("GetBuffer", err)
	}
	// The view holds its own reference to the texture.
	defer backBuffer.Release()

	view, err := device.CreateRenderTargetView(backBuffer)
	if err != nil {
		return core.NewGraphicsResourceError("CreateRenderTargetView", err)
	}
	st.view = view
	st.id = core.IdentifierNew()
	core.LogDebug("render target %s bound to back buffer 0", st.id)
	return nil
}

// ReleaseBeforeResize destroys the view so the host can resize its buffers. Calling it on an
// unbound target does nothing.
func (st *SurfaceTarget) ReleaseBeforeResize() {
	if st.view == nil {
		return
	}
	st.view.Release()
	st.view = nil
	core.LogDebug("render target %s released", st.id)
	st.id = core.InvalidIdentifier
}

// RecreateAfterResize binds a fresh view to the resized back buffer 0.
func (st *SurfaceTarget) RecreateAfterResize(device Device, surface Surface) error {
	st.ReleaseBeforeResize()
	return st.create(device, surface)
}

// ID identifies the current view generation. It changes on every recreate and is invalid while unbound.
func (st *SurfaceTarget) ID() core.Identifier {
	return st.id
}

func (st *SurfaceTarget) IsBound() bool {
	return st.view != nil
}

// bind installs the view as the sole render target of context.
func (st *SurfaceTarget) bind(context DeviceContext) error {
	if st.view == nil {
		return core.ErrNotAttached
	}
	context.OMSetRenderTargets([]RenderTargetView{st.view})
	return nil
}
