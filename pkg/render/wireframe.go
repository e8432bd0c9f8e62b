package render

import (
	"math"
)

// Wireframe draws line geometry — triangle outlines and normal-visualization
// overlays — sharing the Rasterizer's depth buffer so lines can be drawn
// with a priority that keeps them visible over coincident solid geometry.
type Wireframe struct {
	Raster *Rasterizer
}

// NewWireframe creates a wireframe renderer sharing a rasterizer's camera,
// framebuffer, and depth buffer.
func NewWireframe(r *Rasterizer) *Wireframe {
	return &Wireframe{Raster: r}
}

const (
	priorityWireframe = 1 << 20
	priorityNormal    = 1 << 21
)

// DrawLine draws a line between two view-space vertices. priority is added
// to the interpolated 1/z depth key so lines can be made to win the depth
// test against coincident triangle fragments drawn earlier in the frame.
// Endpoints behind the eye drop the whole line; a line with one or both
// endpoints outside the NDC unit square still draws, with each plotted pixel
// rejected individually by plot's framebuffer bounds check.
func (w *Wireframe) DrawLine(a, b Vertex, lc LineColor, priority float64) {
	r := w.Raster
	sa, okA := r.project(a)
	sb, okB := r.project(b)
	if !okA || !okB {
		return
	}

	colA, rowA := r.ndcToScreen(sa.NdcX, sa.NdcY)
	colB, rowB := r.ndcToScreen(sb.NdcX, sb.NdcY)

	dxTotal := colB - colA
	dyTotal := rowB - rowA
	steps := int(math.Max(math.Abs(dxTotal), math.Abs(dyTotal)))
	if steps == 0 {
		w.plot(int(colA), int(rowA), sa.InvZ+priority, lc.At(a.Color, b.Color, 0))
		return
	}

	// Axis transpose: step along whichever axis has the larger extent so a
	// steep line doesn't leave gaps.
	stepX := dxTotal / float64(steps)
	stepY := dyTotal / float64(steps)

	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		col := colA + stepX*float64(i)
		row := rowA + stepY*float64(i)
		invZ := sa.InvZ + (sb.InvZ-sa.InvZ)*t
		c := lc.At(a.Color, b.Color, t)
		w.plot(int(col), int(row), invZ+priority, c)
	}
}

func (w *Wireframe) plot(col, row int, depthKey float64, c Color) {
	r := w.Raster
	if col < 0 || col >= r.FB.Width || row < 0 || row >= r.FB.Height {
		return
	}
	if depthKey <= r.getDepth(col, row) {
		return
	}
	r.setDepth(col, row, depthKey)
	r.FB.SetPixel(col, row, c)
}

// DrawTriangleOutline draws the three edges of a view-space triangle.
func (w *Wireframe) DrawTriangleOutline(tri Triangle, lc LineColor) {
	w.DrawLine(tri.V0, tri.V1, lc, priorityWireframe)
	w.DrawLine(tri.V1, tri.V2, lc, priorityWireframe)
	w.DrawLine(tri.V2, tri.V0, lc, priorityWireframe)
}

// DrawClippedOutline draws the outline of a clip result. When the result
// was split into two triangles, this draws the first sub-triangle's outline
// twice rather than also drawing the second sub-triangle's outline.
func (w *Wireframe) DrawClippedOutline(result ClipResult, lc LineColor) {
	if len(result.Triangles) == 0 {
		return
	}
	w.DrawTriangleOutline(result.Triangles[0], lc)
	if result.IsSplit && len(result.Triangles) == 2 {
		// TODO: draw second wireframe sub-triangle (v0,v2,v3); currently
		// duplicates the first.
		w.DrawTriangleOutline(result.Triangles[0], lc)
	}
}

// DrawNormal draws a vertex's normal as a short line from its position to
// position + normal*length — the raw normal is used unnormalized, so a
// shading normal that isn't unit length stretches or shrinks the overlay
// accordingly. Colored as a gradient from white at the base to green at the
// tip, drawn with higher priority than ordinary wireframe edges.
func (w *Wireframe) DrawNormal(v Vertex, length float64) {
	tip := Vertex{Position: v.Position.Add(v.Normal.Scale(length)), Normal: v.Normal, Color: ColorGreen}
	base := Vertex{Position: v.Position, Normal: v.Normal, Color: ColorWhite}
	w.DrawLine(base, tip, InterpolatedLineColor(), priorityNormal)
}

// DrawTriangleNormals draws the normal overlay for each vertex of a
// triangle.
func (w *Wireframe) DrawTriangleNormals(tri Triangle, length float64) {
	w.DrawNormal(tri.V0, length)
	w.DrawNormal(tri.V1, length)
	w.DrawNormal(tri.V2, length)
}
