package models

import (
	"github.com/Veil43/rastertoy/pkg/math3d"
	"github.com/Veil43/rastertoy/pkg/render"
)

// NewCubeMesh builds a unit cube (extents -0.5..0.5) with 24 duplicated
// per-face vertices so each face gets its own flat normal and a distinct
// per-face color, and 36 indices winding each face counter-clockwise.
func NewCubeMesh() *Mesh {
	positions := []math3d.Vec3{
		// FRONT (-Z)
		math3d.V3(0.5, 0.5, -0.5), math3d.V3(0.5, -0.5, -0.5), math3d.V3(-0.5, -0.5, -0.5), math3d.V3(-0.5, 0.5, -0.5),
		// RIGHT (+X)
		math3d.V3(0.5, 0.5, 0.5), math3d.V3(0.5, -0.5, 0.5), math3d.V3(0.5, -0.5, -0.5), math3d.V3(0.5, 0.5, -0.5),
		// BACK (+Z)
		math3d.V3(-0.5, 0.5, 0.5), math3d.V3(-0.5, -0.5, 0.5), math3d.V3(0.5, -0.5, 0.5), math3d.V3(0.5, 0.5, 0.5),
		// LEFT (-X)
		math3d.V3(-0.5, 0.5, -0.5), math3d.V3(-0.5, -0.5, -0.5), math3d.V3(-0.5, -0.5, 0.5), math3d.V3(-0.5, 0.5, 0.5),
		// TOP (+Y)
		math3d.V3(0.5, 0.5, 0.5), math3d.V3(0.5, 0.5, -0.5), math3d.V3(-0.5, 0.5, -0.5), math3d.V3(-0.5, 0.5, 0.5),
		// BOTTOM (-Y)
		math3d.V3(-0.5, -0.5, 0.5), math3d.V3(-0.5, -0.5, -0.5), math3d.V3(0.5, -0.5, -0.5), math3d.V3(0.5, -0.5, 0.5),
	}

	colors := []render.Color{
		ColorRed, ColorRed, ColorRed, ColorRed,
		ColorGreen, ColorGreen, ColorGreen, ColorGreen,
		ColorBlue, ColorBlue, ColorBlue, ColorBlue,
		ColorYellow, ColorYellow, ColorYellow, ColorYellow,
		ColorPurple, ColorPurple, ColorPurple, ColorPurple,
		ColorCyan, ColorCyan, ColorCyan, ColorCyan,
	}

	normals := []math3d.Vec3{
		math3d.V3(0, 0, -1), math3d.V3(0, 0, -1), math3d.V3(0, 0, -1), math3d.V3(0, 0, -1),
		math3d.V3(1, 0, 0), math3d.V3(1, 0, 0), math3d.V3(1, 0, 0), math3d.V3(1, 0, 0),
		math3d.V3(0, 0, 1), math3d.V3(0, 0, 1), math3d.V3(0, 0, 1), math3d.V3(0, 0, 1),
		math3d.V3(-1, 0, 0), math3d.V3(-1, 0, 0), math3d.V3(-1, 0, 0), math3d.V3(-1, 0, 0),
		math3d.V3(0, 1, 0), math3d.V3(0, 1, 0), math3d.V3(0, 1, 0), math3d.V3(0, 1, 0),
		math3d.V3(0, -1, 0), math3d.V3(0, -1, 0), math3d.V3(0, -1, 0), math3d.V3(0, -1, 0),
	}

	indices := []int{
		0, 1, 2, 0, 2, 3,
		4, 5, 6, 4, 6, 7,
		8, 9, 10, 8, 10, 11,
		12, 13, 14, 12, 14, 15,
		16, 17, 18, 16, 18, 19,
		20, 21, 22, 20, 22, 23,
	}

	return &Mesh{
		VertexPositions: positions,
		VertexNormals:   normals,
		VertexColors:    colors,
		VertexIndices:   indices,
		NormalIndices:   indices,
	}
}

var (
	ColorRed    = render.ColorRed
	ColorGreen  = render.ColorGreen
	ColorBlue   = render.ColorBlue
	ColorYellow = render.ColorYellow
	ColorPurple = render.RGB(160, 32, 240)
	ColorCyan   = render.RGB(0, 255, 255)
)
