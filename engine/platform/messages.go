package platform

import "github.com/go-gl/glfw/v3.3/glfw"

// Win32 message codes the overlay's window procedure understands.
const (
	WMSize        uint32 = 0x0005
	WMKeyDown     uint32 = 0x0100
	WMKeyUp       uint32 = 0x0101
	WMMouseMove   uint32 = 0x0200
	WMLButtonDown uint32 = 0x0201
	WMLButtonUp   uint32 = 0x0202
	WMRButtonDown uint32 = 0x0204
	WMRButtonUp   uint32 = 0x0205
	WMMButtonDown uint32 = 0x0207
	WMMButtonUp   uint32 = 0x0208
	WMMouseWheel  uint32 = 0x020A
)

// WheelDelta is one notch of the mouse wheel.
const WheelDelta = 120

// MakeLParam packs two 16 bit values the way MAKELPARAM does.
func MakeLParam(lo, hi int) uintptr {
	return uintptr(uint32(uint16(lo)) | uint32(uint16(hi))<<16)
}

// SplitLParam is the inverse of MakeLParam, sign-extending both halves.
func SplitLParam(lparam uintptr) (lo, hi int) {
	return int(int16(uint16(lparam))), int(int16(uint16(lparam >> 16)))
}

// MakeWheelWParam stores the scroll offset in notches as the high word.
func MakeWheelWParam(notches float64) uintptr {
	return MakeLParam(0, int(notches*WheelDelta))
}

func keyMessage(action glfw.Action) (uint32, bool) {
	switch action {
	case glfw.Press, glfw.Repeat:
		return WMKeyDown, true
	case glfw.Release:
		return WMKeyUp, true
	}
	return 0, false
}

func mouseButtonMessage(button glfw.MouseButton, action glfw.Action) (uint32, bool) {
	var down, up uint32
	switch button {
	case glfw.MouseButtonLeft:
		down, up = WMLButtonDown, WMLButtonUp
	case glfw.MouseButtonRight:
		down, up = WMRButtonDown, WMRButtonUp
	case glfw.MouseButtonMiddle:
		down, up = WMMButtonDown, WMMButtonUp
	default:
		return 0, false
	}
	if action == glfw.Press {
		return down, true
	}
	return up, true
}
