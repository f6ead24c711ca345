package renderer

import (
	"github.com/spaghettifunk/anima-overlay/engine/math"
	"github.com/spaghettifunk/anima-overlay/engine/renderer/metadata"
)

// NormalizePosition maps a pixel position (origin top-left, y down) to clip space
// (origin centre, y up). The screen corners land on (-1,1) and (1,-1).
func NormalizePosition(p, screen math.Vec2) math.Vec2 {
	halfW := screen.X / 2
	halfH := screen.Y / 2
	return math.Vec2{
		X: (p.X - halfW) / halfW,
		Y: (p.Y - halfH) / -halfH,
	}
}

// PixelPosition is the inverse of NormalizePosition.
func PixelPosition(p, screen math.Vec2) math.Vec2 {
	halfW := screen.X / 2
	halfH := screen.Y / 2
	return math.Vec2{
		X: p.X*halfW + halfW,
		Y: p.Y*-halfH + halfH,
	}
}

// NormalizeMeshes rewrites every vertex position of meshes in place.
func NormalizeMeshes(meshes []metadata.Mesh, screen math.Vec2) {
	for i := range meshes {
		vertices := meshes[i].Vertices
		for j := range vertices {
			vertices[j].Pos = NormalizePosition(vertices[j].Pos, screen)
		}
	}
}
