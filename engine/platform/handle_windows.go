//go:build windows

package platform

import "unsafe"

// Handle is the native HWND of the window.
func (p *Platform) Handle() uintptr {
	return uintptr(unsafe.Pointer(p.Window.GetWin32Window()))
}
