package ui

import (
	"github.com/spaghettifunk/anima-overlay/engine/math"
	"github.com/spaghettifunk/anima-overlay/engine/renderer/metadata"
)

const (
	minCircleSegments = 8
	maxCircleSegments = 64
)

// Shape is one paint command. Tessellate appends its triangles to mesh.
type Shape interface {
	ClipRect() math.Rect
	Tessellate(mesh *metadata.Mesh)
}

// RectShape is a filled axis-aligned rectangle.
type RectShape struct {
	Rect math.Rect
	Fill metadata.Color32
	Clip math.Rect
}

func (s RectShape) ClipRect() math.Rect { return s.Clip }

func (s RectShape) Tessellate(mesh *metadata.Mesh) {
	if s.Rect.IsEmpty() || s.Fill.A == 0 {
		return
	}
	base := uint32(len(mesh.Vertices))
	mesh.Vertices = append(mesh.Vertices,
		vertex(s.Rect.Min, s.Fill),
		vertex(math.NewVec2(s.Rect.Max.X, s.Rect.Min.Y), s.Fill),
		vertex(s.Rect.Max, s.Fill),
		vertex(math.NewVec2(s.Rect.Min.X, s.Rect.Max.Y), s.Fill),
	)
	mesh.AddTriangle(base, base+1, base+2)
	mesh.AddTriangle(base, base+2, base+3)
}

// TriangleShape is a filled triangle.
type TriangleShape struct {
	Points [3]math.Vec2
	Fill   metadata.Color32
	Clip   math.Rect
}

func (s TriangleShape) ClipRect() math.Rect { return s.Clip }

func (s TriangleShape) Tessellate(mesh *metadata.Mesh) {
	if s.Fill.A == 0 {
		return
	}
	base := uint32(len(mesh.Vertices))
	for _, p := range s.Points {
		mesh.Vertices = append(mesh.Vertices, vertex(p, s.Fill))
	}
	mesh.AddTriangle(base, base+1, base+2)
}

// LineShape is a segment of the given width, drawn as a quad.
type LineShape struct {
	A, B  math.Vec2
	Width float32
	Color metadata.Color32
	Clip  math.Rect
}

func (s LineShape) ClipRect() math.Rect { return s.Clip }

func (s LineShape) Tessellate(mesh *metadata.Mesh) {
	dir := s.B.Sub(s.A)
	if s.Width <= 0 || s.Color.A == 0 || dir.LengthSquared() == 0 {
		return
	}
	n := dir.Normalized().Perp().Scale(s.Width / 2)
	base := uint32(len(mesh.Vertices))
	mesh.Vertices = append(mesh.Vertices,
		vertex(s.A.Add(n), s.Color),
		vertex(s.B.Add(n), s.Color),
		vertex(s.B.Sub(n), s.Color),
		vertex(s.A.Sub(n), s.Color),
	)
	mesh.AddTriangle(base, base+1, base+2)
	mesh.AddTriangle(base, base+2, base+3)
}

// CircleShape is a filled circle approximated by a triangle fan.
type CircleShape struct {
	Center math.Vec2
	Radius float32
	Fill   metadata.Color32
	Clip   math.Rect
}

func (s CircleShape) ClipRect() math.Rect { return s.Clip }

func (s CircleShape) Segments() int {
	return math.Clamp(int(s.Radius), minCircleSegments, maxCircleSegments)
}

func (s CircleShape) Tessellate(mesh *metadata.Mesh) {
	if s.Radius <= 0 || s.Fill.A == 0 {
		return
	}
	segments := s.Segments()
	center := uint32(len(mesh.Vertices))
	mesh.Vertices = append(mesh.Vertices, vertex(s.Center, s.Fill))
	for i := 0; i < segments; i++ {
		angle := float32(i) / float32(segments) * math.K_PI_2
		p := math.NewVec2(s.Center.X+math.Cos(angle)*s.Radius, s.Center.Y+math.Sin(angle)*s.Radius)
		mesh.Vertices = append(mesh.Vertices, vertex(p, s.Fill))
	}
	for i := 0; i < segments; i++ {
		next := (i + 1) % segments
		mesh.AddTriangle(center, center+1+uint32(i), center+1+uint32(next))
	}
}

func vertex(p math.Vec2, c metadata.Color32) metadata.Vertex {
	return metadata.Vertex{Pos: p, UV: math.NewVec2Zero(), Color: c}
}

// Tessellate turns shapes into meshes, one per run of shapes sharing a clip
// rectangle, in painter order. Shapes that produce no triangles are dropped and no
// empty mesh is ever returned.
func Tessellate(shapes []Shape) []metadata.Mesh {
	var meshes []metadata.Mesh
	var current *metadata.Mesh

	for _, shape := range shapes {
		clip := shape.ClipRect()
		if current == nil || current.Clip != clip {
			if current != nil && !current.IsEmpty() {
				meshes = append(meshes, *current)
			}
			current = &metadata.Mesh{Clip: clip}
		}
		shape.Tessellate(current)
	}
	if current != nil && !current.IsEmpty() {
		meshes = append(meshes, *current)
	}
	return meshes
}
