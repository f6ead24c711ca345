package ui

import (
	"github.com/spaghettifunk/anima-overlay/engine/math"
	"github.com/spaghettifunk/anima-overlay/engine/renderer/metadata"
)

// Painter adds shapes to the current frame, all tagged with its clip rectangle.
type Painter struct {
	ctx  *Context
	clip math.Rect
}

// Painter returns a painter clipped to the whole screen.
func (c *Context) Painter() *Painter {
	return &Painter{ctx: c, clip: c.input.ScreenRect}
}

// WithClip narrows the clip rectangle to its intersection with rect.
func (p *Painter) WithClip(rect math.Rect) *Painter {
	return &Painter{ctx: p.ctx, clip: p.clip.Intersect(rect)}
}

func (p *Painter) ClipRect() math.Rect {
	return p.clip
}

func (p *Painter) Add(shape Shape) {
	p.ctx.add(shape)
}

func (p *Painter) Rect(rect math.Rect, fill metadata.Color32) {
	p.Add(RectShape{Rect: rect, Fill: fill, Clip: p.clip})
}

// RectStroke outlines rect with lines centred on its edges.
func (p *Painter) RectStroke(rect math.Rect, width float32, color metadata.Color32) {
	tl := rect.Min
	tr := math.NewVec2(rect.Max.X, rect.Min.Y)
	br := rect.Max
	bl := math.NewVec2(rect.Min.X, rect.Max.Y)
	p.Line(tl, tr, width, color)
	p.Line(tr, br, width, color)
	p.Line(br, bl, width, color)
	p.Line(bl, tl, width, color)
}

func (p *Painter) Triangle(a, b, c math.Vec2, fill metadata.Color32) {
	p.Add(TriangleShape{Points: [3]math.Vec2{a, b, c}, Fill: fill, Clip: p.clip})
}

func (p *Painter) Line(a, b math.Vec2, width float32, color metadata.Color32) {
	p.Add(LineShape{A: a, B: b, Width: width, Color: color, Clip: p.clip})
}

// Polyline joins consecutive points with lines.
func (p *Painter) Polyline(points []math.Vec2, width float32, color metadata.Color32) {
	for i := 1; i < len(points); i++ {
		p.Line(points[i-1], points[i], width, color)
	}
}

func (p *Painter) Circle(center math.Vec2, radius float32, fill metadata.Color32) {
	p.Add(CircleShape{Center: center, Radius: radius, Fill: fill, Clip: p.clip})
}
