package renderer

import (
	"github.com/spaghettifunk/anima-overlay/engine/core"
	"github.com/spaghettifunk/anima-overlay/engine/renderer/metadata"
)

// opaqueBlack is the blend factor installed with the overlay blend state.
// None of the overlay's blend operations read it.
var opaqueBlack = [4]float32{0, 0, 0, 1}

// OverlayBlendDesc is straight alpha compositing over the host's image on render target 0.
func OverlayBlendDesc() metadata.BlendDesc {
	desc := metadata.BlendDesc{
		AlphaToCoverageEnable:  false,
		IndependentBlendEnable: false,
	}
	desc.RenderTarget[0] = metadata.RenderTargetBlendDesc{
		BlendEnable:           true,
		SrcBlend:              metadata.BlendSrcAlpha,
		DestBlend:             metadata.BlendInvSrcAlpha,
		BlendOp:               metadata.BlendOpAdd,
		SrcBlendAlpha:         metadata.BlendOne,
		DestBlendAlpha:        metadata.BlendInvSrcAlpha,
		BlendOpAlpha:          metadata.BlendOpAdd,
		RenderTargetWriteMask: metadata.ColorWriteEnableAll,
	}
	return desc
}

// ApplyBlendState creates the overlay blend state and installs it on context.
// The context keeps its own reference, ours is dropped before returning.
func ApplyBlendState(device Device, context DeviceContext) error {
	desc := OverlayBlendDesc()
	state, err := device.CreateBlendState(&desc)
	if err != nil {
		return core.NewGraphicsResourceError("CreateBlendState", err)
	}
	defer state.Release()

	context.OMSetBlendState(state, opaqueBlack, metadata.SampleMaskAll)
	return nil
}
