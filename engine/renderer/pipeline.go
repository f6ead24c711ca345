package renderer

import (
	"github.com/spaghettifunk/anima-overlay/engine/core"
	"github.com/spaghettifunk/anima-overlay/engine/renderer/metadata"
)

/** @brief Vertex attributes in the exact order and formats of metadata.Vertex. */
var InputElements = []metadata.InputElementDesc{
	{
		SemanticName:      "POSITION",
		Format:            metadata.FormatR32G32Float,
		AlignedByteOffset: 0,
		InputSlotClass:    metadata.InputPerVertexData,
	},
	{
		SemanticName:      "TEXCOORD",
		Format:            metadata.FormatR32G32Float,
		AlignedByteOffset: metadata.AppendAlignedElement,
		InputSlotClass:    metadata.InputPerVertexData,
	},
	{
		SemanticName:      "COLOR",
		Format:            metadata.FormatR8G8B8A8Unorm,
		AlignedByteOffset: metadata.AppendAlignedElement,
		InputSlotClass:    metadata.InputPerVertexData,
	},
}

/**
 * @brief The shaders and input layout used for every overlay draw.
 * Built once at attach and immutable afterwards.
 */
type PipelineState struct {
	vertexShader VertexShader
	pixelShader  PixelShader
	inputLayout  InputLayout
}

/**
 * @brief Creates both shader stages and the input layout from compiled bytecode.
 * @param device The device to create the objects on.
 * @param source Vertex and pixel stage bytecode.
 * @return The pipeline, or a GraphicsResourceError naming the refused call.
 */
func BuildPipelineState(device Device, source metadata.ShaderSource) (*PipelineState, error) {
	ps := &PipelineState{}

	vs, err := device.CreateVertexShader(source.Vertex)
	if err != nil {
		return nil, core.NewGraphicsResourceError("CreateVertexShader", err)
	}
	ps.vertexShader = vs

	pixel, err := device.CreatePixelShader(source.Pixel)
	if err != nil {
		ps.Destroy()
		return nil, core.NewGraphicsResourceError("CreatePixelShader", err)
	}
	ps.pixelShader = pixel

	layout, err := device.CreateInputLayout(InputElements, source.Vertex)
	if err != nil {
		ps.Destroy()
		return nil, core.NewGraphicsResourceError("CreateInputLayout", err)
	}
	ps.inputLayout = layout

	core.LogDebug("overlay pipeline created")
	return ps, nil
}

// Destroy releases whatever objects were created.
func (ps *PipelineState) Destroy() {
	if ps.inputLayout != nil {
		ps.inputLayout.Release()
		ps.inputLayout = nil
	}
	if ps.pixelShader != nil {
		ps.pixelShader.Release()
		ps.pixelShader = nil
	}
	if ps.vertexShader != nil {
		ps.vertexShader.Release()
		ps.vertexShader = nil
	}
}

func (ps *PipelineState) bindLayout(context DeviceContext) {
	context.IASetInputLayout(ps.inputLayout)
	context.IASetPrimitiveTopology(metadata.PrimitiveTopologyTriangleList)
}

func (ps *PipelineState) bindShaders(context DeviceContext) {
	context.VSSetShader(ps.vertexShader)
	context.PSSetShader(ps.pixelShader)
}
