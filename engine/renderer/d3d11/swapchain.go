//go:build windows

package d3d11

import (
	"errors"
	"fmt"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/spaghettifunk/anima-overlay/engine/core"
	"github.com/spaghettifunk/anima-overlay/engine/renderer"
	"github.com/spaghettifunk/anima-overlay/engine/renderer/metadata"
)

var errForeignSurface = errors.New("surface is not a d3d11 swap chain")

// SwapChain wraps one reference to an IDXGISwapChain and serves as the overlay's surface.
type SwapChain struct {
	comObject
}

// NewSwapChain wraps a swap chain pointer owned by the host, taking a reference of its own.
func NewSwapChain(ptr uintptr) *SwapChain {
	comAddRef(ptr)
	return &SwapChain{comObject{ptr}}
}

// Device returns the device the swap chain was created on.
func (s *SwapChain) Device() (renderer.Device, error) {
	var device uintptr
	hr, _, _ := syscall.SyscallN(
		comVtblFn(s.ptr, swapChainGetDevice),
		s.ptr,
		uintptr(unsafe.Pointer(&iidID3D11Device)),
		uintptr(unsafe.Pointer(&device)),
	)
	if err := hresult("IDXGISwapChain::GetDevice", hr); err != nil {
		return nil, err
	}
	return &Device{comObject{device}}, nil
}

func (s *SwapChain) BackBuffer(index uint32) (renderer.Texture, error) {
	var texture uintptr
	hr, _, _ := syscall.SyscallN(
		comVtblFn(s.ptr, swapChainGetBuffer),
		s.ptr,
		uintptr(index),
		uintptr(unsafe.Pointer(&iidID3D11Texture2D)),
		uintptr(unsafe.Pointer(&texture)),
	)
	if err := hresult("IDXGISwapChain::GetBuffer", hr); err != nil {
		return nil, err
	}
	return &Texture{comObject{texture}}, nil
}

func (s *SwapChain) desc() (dxgiSwapChainDesc, error) {
	var desc dxgiSwapChainDesc
	hr, _, _ := syscall.SyscallN(comVtblFn(s.ptr, swapChainGetDesc), s.ptr, uintptr(unsafe.Pointer(&desc)))
	return desc, hresult("IDXGISwapChain::GetDesc", hr)
}

// OutputWindow reads the window from the swap chain description.
func (s *SwapChain) OutputWindow() (renderer.Window, error) {
	desc, err := s.desc()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrSurfaceDescriptor, err)
	}
	window := NewWindow(windows.HWND(desc.OutputWindow))
	if !window.IsValid() {
		return nil, fmt.Errorf("%w: output window 0x%x is not a window", core.ErrSurfaceDescriptor, desc.OutputWindow)
	}
	return window, nil
}

func (s *SwapChain) Present(syncInterval, flags uint32) error {
	hr, _, _ := syscall.SyscallN(comVtblFn(s.ptr, swapChainPresent), s.ptr, uintptr(syncInterval), uintptr(flags))
	return hresult("IDXGISwapChain::Present", hr)
}

func (s *SwapChain) ResizeBuffers(bufferCount, width, height uint32, format metadata.Format, flags uint32) error {
	hr, _, _ := syscall.SyscallN(
		comVtblFn(s.ptr, swapChainResizeBuffers),
		s.ptr,
		uintptr(bufferCount),
		uintptr(width),
		uintptr(height),
		uintptr(format),
		uintptr(flags),
	)
	return hresult("IDXGISwapChain::ResizeBuffers", hr)
}

// ResizeBuffers is the un-intercepted resize routine for surfaces of this package.
func ResizeBuffers(surface renderer.Surface, bufferCount, width, height uint32, format metadata.Format, flags uint32) error {
	sc, ok := surface.(*SwapChain)
	if !ok {
		return errForeignSurface
	}
	return sc.ResizeBuffers(bufferCount, width, height, format, flags)
}

// Present is the un-intercepted present routine for surfaces of this package.
func Present(surface renderer.Surface, syncInterval, flags uint32) error {
	sc, ok := surface.(*SwapChain)
	if !ok {
		return errForeignSurface
	}
	return sc.Present(syncInterval, flags)
}

var (
	_ renderer.Surface           = (*SwapChain)(nil)
	_ renderer.PresentFunc       = Present
	_ renderer.ResizeBuffersFunc = ResizeBuffers
)
