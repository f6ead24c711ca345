//go:build windows

package d3d11

import (
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/spaghettifunk/anima-overlay/engine/core"
	"github.com/spaghettifunk/anima-overlay/engine/renderer/metadata"
)

var (
	d3d11dll                          = windows.NewLazySystemDLL("d3d11.dll")
	procD3D11CreateDeviceAndSwapChain = d3d11dll.NewProc("D3D11CreateDeviceAndSwapChain")
)

/**
 * @brief Creates a hardware device and a windowed swap chain presenting to hwnd.
 * The overlay itself never creates devices; this stands in for a host application.
 * @return The swap chain, its device and immediate context; the caller releases all three.
 */
func CreateDeviceAndSwapChain(hwnd windows.HWND, width, height uint32) (*SwapChain, *Device, *DeviceContext, error) {
	desc := dxgiSwapChainDesc{
		BufferDesc: dxgiModeDesc{
			Width:       width,
			Height:      height,
			RefreshRate: dxgiRational{Numerator: 60, Denominator: 1},
			Format:      uint32(metadata.FormatR8G8B8A8Unorm),
		},
		SampleDesc:   dxgiSampleDesc{Count: 1},
		BufferUsage:  dxgiUsageRenderTargetOutput,
		BufferCount:  2,
		OutputWindow: uintptr(hwnd),
		Windowed:     1,
		SwapEffect:   dxgiSwapEffectDiscard,
	}
	featureLevels := []uint32{d3dFeatureLevel11_0, d3dFeatureLevel10_1, d3dFeatureLevel10_0}

	var swapChain, device, context uintptr
	var actualLevel uint32
	hr, _, _ := procD3D11CreateDeviceAndSwapChain.Call(
		0, // pAdapter (NULL = default)
		uintptr(d3dDriverTypeHardware),
		0, // Software
		uintptr(d3d11CreateDeviceBGRASupport),
		uintptr(unsafe.Pointer(&featureLevels[0])),
		uintptr(len(featureLevels)),
		uintptr(d3d11SDKVersion),
		uintptr(unsafe.Pointer(&desc)),
		uintptr(unsafe.Pointer(&swapChain)),
		uintptr(unsafe.Pointer(&device)),
		uintptr(unsafe.Pointer(&actualLevel)),
		uintptr(unsafe.Pointer(&context)),
	)
	if err := hresult("D3D11CreateDeviceAndSwapChain", hr); err != nil {
		return nil, nil, nil, err
	}
	core.LogInfo("D3D11 device created with feature level 0x%x", actualLevel)
	return &SwapChain{comObject{swapChain}}, &Device{comObject{device}}, &DeviceContext{comObject{context}}, nil
}
