package ui

import (
	"image/color"

	"golang.org/x/image/colornames"

	"github.com/spaghettifunk/anima-overlay/engine/math"
	"github.com/spaghettifunk/anima-overlay/engine/renderer/metadata"
)

// Style holds the colours and metrics widgets are drawn with.
type Style struct {
	PanelFill      metadata.Color32
	PanelStroke    metadata.Color32
	PanelPadding   float32
	StrokeWidth    float32
	BarBackground  metadata.Color32
	BarFill        metadata.Color32
	Accent         metadata.Color32
	Warning        metadata.Color32
	AnimationTime  float32
	ItemSpacing    float32
	GraphLineWidth float32
}

func DefaultStyle() *Style {
	return &Style{
		PanelFill:      ToColor32(colornames.Darkslategray, 200),
		PanelStroke:    ToColor32(colornames.Slategray, 255),
		PanelPadding:   8,
		StrokeWidth:    1,
		BarBackground:  ToColor32(colornames.Dimgray, 220),
		BarFill:        ToColor32(colornames.Lightskyblue, 255),
		Accent:         ToColor32(colornames.Limegreen, 255),
		Warning:        ToColor32(colornames.Orangered, 255),
		AnimationTime:  1.0 / 12.0,
		ItemSpacing:    4,
		GraphLineWidth: 1.5,
	}
}

// ToColor32 converts c to a vertex colour with the given alpha. The colour channels
// are premultiplied by neither; the overlay blend state expects straight alpha.
func ToColor32(c color.Color, alpha uint8) metadata.Color32 {
	r, g, b, _ := c.RGBA()
	return metadata.Color32{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: alpha}
}

// WithAlpha scales the alpha of c by factor in [0,1].
func WithAlpha(c metadata.Color32, factor float32) metadata.Color32 {
	factor = math.Clamp(factor, 0, 1)
	c.A = uint8(float32(c.A)*factor + 0.5)
	return c
}
