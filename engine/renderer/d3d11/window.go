//go:build windows

package d3d11

import (
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/spaghettifunk/anima-overlay/engine/math"
)

var (
	user32            = windows.NewLazySystemDLL("user32.dll")
	procGetClientRect = user32.NewProc("GetClientRect")
)

// Window is the host's output window.
type Window struct {
	hwnd windows.HWND
}

func NewWindow(hwnd windows.HWND) *Window {
	return &Window{hwnd: hwnd}
}

func (w *Window) Handle() windows.HWND {
	return w.hwnd
}

func (w *Window) IsValid() bool {
	return w.hwnd != 0 && windows.IsWindow(w.hwnd)
}

// ClientSize reads the live client rectangle. A failed read reports an empty window.
func (w *Window) ClientSize() math.Vec2 {
	var r windows.Rect
	ret, _, _ := procGetClientRect.Call(uintptr(w.hwnd), uintptr(unsafe.Pointer(&r)))
	if ret == 0 {
		return math.NewVec2Zero()
	}
	return math.NewVec2(float32(r.Right-r.Left), float32(r.Bottom-r.Top))
}
