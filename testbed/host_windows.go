//go:build windows

package testbed

import (
	"context"

	"golang.org/x/sys/windows"

	"github.com/spaghettifunk/anima-overlay/engine"
	"github.com/spaghettifunk/anima-overlay/engine/core"
	"github.com/spaghettifunk/anima-overlay/engine/platform"
	"github.com/spaghettifunk/anima-overlay/engine/renderer"
	"github.com/spaghettifunk/anima-overlay/engine/renderer/d3d11"
	"github.com/spaghettifunk/anima-overlay/engine/renderer/metadata"
)

var clearColor = [4]float32{0.10, 0.12, 0.16, 1.0}

/**
 * @brief Plays the host: opens a window, creates a swap chain and presents a cleared
 * frame every iteration with the overlay attached to it.
 */
func Run(ctx context.Context, configPath string) error {
	p, err := platform.New()
	if err != nil {
		return err
	}
	if err := p.Startup("Anima Overlay Testbed", 100, 100, 1280, 720); err != nil {
		return err
	}
	defer p.Shutdown()

	width, height := p.FramebufferSize()
	swapChain, device, deviceContext, err := d3d11.CreateDeviceAndSwapChain(windows.HWND(p.Handle()), uint32(width), uint32(height))
	if err != nil {
		return err
	}
	defer swapChain.Release()
	defer device.Release()
	defer deviceContext.Release()

	demo := NewDemo()
	overlay, err := engine.New(demo.Application(configPath, d3d11.Compile))
	if err != nil {
		return err
	}
	if err := overlay.Attach(swapChain); err != nil {
		return err
	}
	defer overlay.Detach()

	p.SetMessageHandler(func(msg uint32, wparam, lparam uintptr) {
		overlay.WndProc(p.Handle(), msg, wparam, lparam)
	})
	p.SetResizeHandler(func(width, height int) {
		// Minimized.
		if width == 0 || height == 0 {
			return
		}
		// Zero count and unknown format keep the current ones.
		if err := overlay.ResizeBuffers(swapChain, 0, uint32(width), uint32(height), metadata.FormatUnknown, 0, d3d11.ResizeBuffers); err != nil {
			core.LogError("resize failed: %s", err)
		}
	})

	for p.PumpMessages() {
		if ctx.Err() != nil {
			break
		}
		if err := clearBackBuffer(swapChain, device, deviceContext); err != nil {
			return err
		}
		if err := overlay.Present(swapChain, 1, 0, d3d11.Present); err != nil {
			core.LogWarn("present failed: %s", err)
		}
	}
	return nil
}

// clearBackBuffer stands in for the host's own rendering.
func clearBackBuffer(swapChain *d3d11.SwapChain, device *d3d11.Device, deviceContext *d3d11.DeviceContext) error {
	texture, err := swapChain.BackBuffer(0)
	if err != nil {
		return err
	}
	view, err := device.CreateRenderTargetView(texture)
	texture.Release()
	if err != nil {
		return err
	}
	defer view.Release()

	deviceContext.OMSetRenderTargets([]renderer.RenderTargetView{view})
	deviceContext.ClearRenderTargetView(view, clearColor)
	return nil
}
