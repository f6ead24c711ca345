package platform

import (
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/spaghettifunk/anima-overlay/engine/core"
)

func init() {
	// GLFW event handling must run on the main OS thread
	runtime.LockOSThread()
}

// MessageHandler receives window input translated to Win32 message codes.
type MessageHandler func(msg uint32, wparam, lparam uintptr)

// ResizeHandler receives the new framebuffer size in pixels.
type ResizeHandler func(width, height int)

/**
 * @brief A glfw window standing in for a host's output window.
 */
type Platform struct {
	Window    *glfw.Window
	onMessage MessageHandler
	onResize  ResizeHandler
}

func New() (*Platform, error) {
	return &Platform{
		Window: nil,
	}, nil
}

func (p *Platform) Startup(applicationName string, x uint32, y uint32, width uint32, height uint32) error {
	if err := glfw.Init(); err != nil {
		core.LogFatal("failed to initialize glfw: %s", err)
		return err
	}

	glfw.WindowHint(glfw.Visible, glfw.False)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI) // The swap chain is created by Direct3D.

	window, err := glfw.CreateWindow(int(width), int(height), applicationName, nil, nil)
	if err != nil {
		core.LogFatal("failed to create window: %s", err)
		return err
	}
	p.Window = window

	p.Window.SetKeyCallback(p.keyCallback)
	p.Window.SetMouseButtonCallback(p.mouseButtonCallback)
	p.Window.SetCursorPosCallback(p.cursorPosCallback)
	p.Window.SetScrollCallback(p.scrollCallback)
	p.Window.SetFramebufferSizeCallback(p.framebufferSizeCallback)
	p.Window.SetPos(int(x), int(y))
	p.Window.Show()

	return nil
}

func (p *Platform) SetMessageHandler(fn MessageHandler) {
	p.onMessage = fn
}

func (p *Platform) SetResizeHandler(fn ResizeHandler) {
	p.onResize = fn
}

func (p *Platform) FramebufferSize() (int, int) {
	return p.Window.GetFramebufferSize()
}

func (p *Platform) Shutdown() error {
	if p.Window != nil {
		p.Window.Destroy()
		p.Window = nil
	}
	glfw.Terminate()
	return nil
}

// PumpMessages dispatches pending window events. Returns false once the window
// was asked to close.
func (p *Platform) PumpMessages() bool {
	glfw.PollEvents()
	return !p.Window.ShouldClose()
}

func (p *Platform) send(msg uint32, wparam, lparam uintptr) {
	if p.onMessage != nil {
		p.onMessage(msg, wparam, lparam)
	}
}

func (p *Platform) keyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if msg, ok := keyMessage(action); ok {
		p.send(msg, uintptr(key), MakeLParam(scancode, 0))
	}
}

func (p *Platform) mouseButtonCallback(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	if msg, ok := mouseButtonMessage(button, action); ok {
		x, y := w.GetCursorPos()
		p.send(msg, 0, MakeLParam(int(x), int(y)))
	}
}

func (p *Platform) cursorPosCallback(w *glfw.Window, xpos, ypos float64) {
	p.send(WMMouseMove, 0, MakeLParam(int(xpos), int(ypos)))
}

func (p *Platform) scrollCallback(w *glfw.Window, xoff, yoff float64) {
	p.send(WMMouseWheel, MakeWheelWParam(yoff), 0)
}

func (p *Platform) framebufferSizeCallback(w *glfw.Window, width, height int) {
	p.send(WMSize, 0, MakeLParam(width, height))
	if p.onResize != nil {
		p.onResize(width, height)
	}
}
