package ui

import (
	"github.com/spaghettifunk/anima-overlay/engine/math"
	"github.com/spaghettifunk/anima-overlay/engine/renderer/metadata"
)

// Panel draws a framed background and returns a painter clipped to its padded content.
func (c *Context) Panel(rect math.Rect) *Painter {
	p := c.Painter()
	p.Rect(rect, c.style.PanelFill)
	p.RectStroke(rect, c.style.StrokeWidth, c.style.PanelStroke)
	return p.WithClip(rect.Shrink(c.style.PanelPadding))
}

// ProgressBar draws fraction (clamped to [0,1]) with the filled part eased between
// frames. It returns the fraction actually drawn.
func (c *Context) ProgressBar(p *Painter, id ID, rect math.Rect, fraction float32) float32 {
	shown := c.AnimateValue(id, math.Clamp(fraction, 0, 1))
	p.Rect(rect, c.style.BarBackground)
	if shown > 0 {
		filled := math.NewRect(rect.Min, math.NewVec2(rect.Min.X+rect.Width()*shown, rect.Max.Y))
		p.Rect(filled, c.style.BarFill)
	}
	return shown
}

// Graph plots values left to right inside rect, scaled so maxValue touches the top.
// Values above maxValue are drawn in the warning colour.
func (c *Context) Graph(p *Painter, rect math.Rect, values []float32, maxValue float32) {
	if len(values) < 2 || maxValue <= 0 {
		return
	}
	step := rect.Width() / float32(len(values)-1)
	point := func(i int) math.Vec2 {
		v := math.Clamp(values[i]/maxValue, 0, 1)
		return math.NewVec2(rect.Min.X+step*float32(i), rect.Max.Y-rect.Height()*v)
	}
	for i := 1; i < len(values); i++ {
		color := c.style.Accent
		if values[i] > maxValue {
			color = c.style.Warning
		}
		p.Line(point(i-1), point(i), c.style.GraphLineWidth, color)
	}
}

// Crosshair draws a centred cross with a dot.
func (c *Context) Crosshair(p *Painter, center math.Vec2, size float32, color metadata.Color32) {
	half := size / 2
	p.Line(math.NewVec2(center.X-half, center.Y), math.NewVec2(center.X+half, center.Y), c.style.StrokeWidth, color)
	p.Line(math.NewVec2(center.X, center.Y-half), math.NewVec2(center.X, center.Y+half), c.style.StrokeWidth, color)
	p.Circle(center, size/8, color)
}

// Column hands out rows of a rectangle from top to bottom.
type Column struct {
	rect    math.Rect
	cursor  float32
	spacing float32
}

func (c *Context) Column(rect math.Rect) *Column {
	return &Column{rect: rect, cursor: rect.Min.Y, spacing: c.style.ItemSpacing}
}

// Next reserves a row of the given height. Rows past the bottom are empty.
func (col *Column) Next(height float32) math.Rect {
	top := math.Clamp(col.cursor, col.rect.Min.Y, col.rect.Max.Y)
	bottom := math.Clamp(col.cursor+height, col.rect.Min.Y, col.rect.Max.Y)
	col.cursor += height + col.spacing
	return math.NewRect(math.NewVec2(col.rect.Min.X, top), math.NewVec2(col.rect.Max.X, bottom))
}
