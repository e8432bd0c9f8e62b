package render

import (
	"github.com/Veil43/rastertoy/pkg/math3d"
)

// ShadingMode selects how a solid triangle's color is computed.
type ShadingMode int

const (
	ShadingFlat ShadingMode = iota
	ShadingGouraud
	ShadingPhong
)

// RenderMode selects what DrawObject draws for the current object.
type RenderMode int

const (
	RenderSolid RenderMode = iota
	RenderWireframe
	RenderSolidWireframe
)

// CullingStats accumulates per-frame object-level frustum culling counts.
type CullingStats struct {
	MeshesTested int
	MeshesCulled int
	MeshesDrawn  int
}

// Rasterizer owns the depth buffer and draws into a Framebuffer using a
// Camera's current view/frustum. The depth buffer stores 1/z (larger =
// nearer) and is cleared to 0 each frame.
type Rasterizer struct {
	Camera *Camera
	FB     *Framebuffer
	depth  []float64

	DisableBackfaceCulling bool
	CullingStats           CullingStats
}

// NewRasterizer creates a rasterizer bound to a camera and framebuffer.
func NewRasterizer(camera *Camera, fb *Framebuffer) *Rasterizer {
	return &Rasterizer{
		Camera: camera,
		FB:     fb,
		depth:  make([]float64, fb.Width*fb.Height),
	}
}

// ClearDepth resets the depth buffer to 0.0, the "infinitely far" sentinel
// under the 1/z convention (larger values are nearer).
func (r *Rasterizer) ClearDepth() {
	for i := range r.depth {
		r.depth[i] = 0
	}
}

func (r *Rasterizer) getDepth(col, row int) float64 {
	return r.depth[row*r.FB.Width+col]
}

func (r *Rasterizer) setDepth(col, row int, invZ float64) {
	r.depth[row*r.FB.Width+col] = invZ
}

// ResetCullingStats zeroes the per-frame counters.
func (r *Rasterizer) ResetCullingStats() {
	r.CullingStats = CullingStats{}
}

// screenVertex is the single attribute-vector type carried along both
// scanline edges and swapped as a unit, rather than parallel scalar arrays.
type screenVertex struct {
	NdcX, NdcY float64
	InvZ       float64 // 1/view-space z
	Normal     math3d.Vec3
	Color      Color
}

func lerpScreenVertex(a, b screenVertex, t float64) screenVertex {
	return screenVertex{
		NdcX:   a.NdcX + (b.NdcX-a.NdcX)*t,
		NdcY:   a.NdcY + (b.NdcY-a.NdcY)*t,
		InvZ:   a.InvZ + (b.InvZ-a.InvZ)*t,
		Normal: a.Normal.Lerp(b.Normal, t),
		Color:  LerpColor(a.Color, b.Color, t),
	}
}

// projectionD returns the shared projection constant d = origin.z + focal.
func (r *Rasterizer) projectionD() float64 {
	return r.Camera.Origin.Z + r.Camera.FocalLength
}

// project converts a view-space vertex to NDC, carrying 1/z, normal, and
// color. ok is false only if the vertex is behind the eye. A vertex landing
// outside the NDC unit square is still projected: top/bottom frustum planes
// are deliberately unenforced (see Frustum), so triangles routinely carry
// vertices with |py|>1, and the spec requires tolerating that per fragment
// (shadeFragment, plot) rather than discarding the whole triangle or line.
func (r *Rasterizer) project(v Vertex) (sv screenVertex, ok bool) {
	d := r.projectionD()
	if v.Position.Z <= 0 {
		return screenVertex{}, false
	}
	halfW := r.Camera.ViewportWidth / 2
	halfH := r.Camera.ViewportHeight / 2
	px := v.Position.X * d / (v.Position.Z * halfW)
	py := v.Position.Y * d / (v.Position.Z * halfH)
	return screenVertex{
		NdcX:   px,
		NdcY:   py,
		InvZ:   1 / v.Position.Z,
		Normal: v.Normal,
		Color:  v.Color,
	}, true
}

// ndcToScreen maps NDC (px, py) in [-1,1] to a pixel (col, row).
func (r *Rasterizer) ndcToScreen(px, py float64) (col, row float64) {
	col = (px + 1) / 2 * float64(r.FB.Width-1)
	row = (1 - py) / 2 * float64(r.FB.Height-1)
	return
}

// FaceNormal computes the view-space face normal (v1-v0)x(v2-v0).
func FaceNormal(v0, v1, v2 math3d.Vec3) math3d.Vec3 {
	return v1.Sub(v0).Cross(v2.Sub(v0))
}

// Centroid returns the arithmetic mean of three points.
func Centroid(v0, v1, v2 math3d.Vec3) math3d.Vec3 {
	return v0.Add(v1).Add(v2).Scale(1.0 / 3.0)
}

// IsBackface reports whether a triangle faces away from the camera:
// v_to_cam · n <= 0, where v_to_cam = camera.origin - centroid (view space)
// and n is the view-space face normal.
func (r *Rasterizer) IsBackface(tri Triangle) bool {
	n := FaceNormal(tri.V0.Position, tri.V1.Position, tri.V2.Position)
	centroid := Centroid(tri.V0.Position, tri.V1.Position, tri.V2.Position)
	toCam := r.Camera.Origin.Sub(centroid)
	return toCam.Dot(n) <= 0
}

// DrawTriangleSolid shades and rasterizes one already-clipped, view-space
// triangle using the given shading mode, light, and ambient term. Flat and
// Gouraud bake their intensity into each vertex's color before scanning;
// Phong carries the raw normal and shades per fragment.
func (r *Rasterizer) DrawTriangleSolid(tri Triangle, mode ShadingMode, light PointLight, ambient Ambient) {
	switch mode {
	case ShadingFlat:
		n := FaceNormal(tri.V0.Position, tri.V1.Position, tri.V2.Position).Normalize()
		centroid := Centroid(tri.V0.Position, tri.V1.Position, tri.V2.Position)
		intensity := light.FlatIntensity(n, centroid)
		shaded := Shade(tri.V0.Color, ambient, intensity)
		tri.V0.Color, tri.V1.Color, tri.V2.Color = shaded, shaded, shaded
	case ShadingGouraud:
		verts := [3]*Vertex{&tri.V0, &tri.V1, &tri.V2}
		for _, v := range verts {
			intensity := light.GouraudIntensity(v.Normal.Normalize(), v.Position)
			v.Color = Shade(v.Color, ambient, intensity)
		}
	}

	sv0, ok0 := r.project(tri.V0)
	sv1, ok1 := r.project(tri.V1)
	sv2, ok2 := r.project(tri.V2)
	if !ok0 || !ok1 || !ok2 {
		return
	}

	if mode == ShadingPhong {
		r.scanFill(sv0, sv1, sv2, true, light, ambient)
		return
	}
	r.scanFill(sv0, sv1, sv2, false, PointLight{}, Ambient{})
}

// scanFill sorts by NDC y, walks the top half (p0->p1) then the bottom half
// (p1->p2) against the long edge (p0->p2), interpolating every attribute as
// a single screenVertex. When perPixelLight is set, Phong shading is applied
// per fragment using the interpolated normal and reconstructed view-space
// position.
func (r *Rasterizer) scanFill(a, b, c screenVertex, perPixelLight bool, light PointLight, ambient Ambient) {
	p0, p1, p2 := a, b, c
	if p0.NdcY > p1.NdcY {
		p0, p1 = p1, p0
	}
	if p1.NdcY > p2.NdcY {
		p1, p2 = p2, p1
	}
	if p0.NdcY > p1.NdcY {
		p0, p1 = p1, p0
	}

	dy := 2.0 / float64(r.FB.Height)
	d := r.projectionD()

	scanHalf := func(top, bottom, longStart, longEnd screenVertex) {
		if bottom.NdcY == top.NdcY {
			return
		}
		for y := top.NdcY; y <= bottom.NdcY; y += dy {
			tShort := clamp01(math3d.LinearInterpolate(y, top.NdcY, 0, bottom.NdcY, 1))
			tLong := clamp01(math3d.LinearInterpolate(y, longStart.NdcY, 0, longEnd.NdcY, 1))
			start := lerpScreenVertex(top, bottom, tShort)
			end := lerpScreenVertex(longStart, longEnd, tLong)
			if start.NdcX > end.NdcX {
				start, end = end, start
			}
			r.scanRow(y, start, end, perPixelLight, light, ambient, d)
		}
	}

	scanHalf(p0, p1, p0, p2)
	scanHalf(p1, p2, p0, p2)
}

func clamp01(t float64) float64 {
	return math3d.Clamp(t, 0, 1)
}

func (r *Rasterizer) scanRow(y float64, start, end screenVertex, perPixelLight bool, light PointLight, ambient Ambient, d float64) {
	dx := 2.0 / float64(r.FB.Width)
	if end.NdcX == start.NdcX {
		r.shadeFragment(start.NdcX, y, start, perPixelLight, light, ambient, d)
		return
	}
	for x := start.NdcX; x <= end.NdcX; x += dx {
		t := clamp01(math3d.LinearInterpolate(x, start.NdcX, 0, end.NdcX, 1))
		frag := lerpScreenVertex(start, end, t)
		frag.NdcX = x
		frag.NdcY = y
		r.shadeFragment(x, y, frag, perPixelLight, light, ambient, d)
	}
}

func (r *Rasterizer) shadeFragment(x, y float64, frag screenVertex, perPixelLight bool, light PointLight, ambient Ambient, d float64) {
	if x < -1 || x > 1 || y < -1 || y > 1 || frag.InvZ == 0 {
		return
	}
	col, row := r.ndcToScreen(x, y)
	ci, ri := int(col), int(row)
	if ci < 0 || ci >= r.FB.Width || ri < 0 || ri >= r.FB.Height {
		return
	}
	if frag.InvZ <= r.getDepth(ci, ri) {
		return
	}

	z := 1 / frag.InvZ
	color := frag.Color
	if perPixelLight {
		viewPos := math3d.V3(x*d/z, y*d/z, z)
		normal := frag.Normal.Normalize()
		viewDir := r.Camera.Origin.Sub(viewPos)
		intensity := light.PhongIntensity(normal, viewPos, viewDir)
		color = Shade(color, ambient, intensity)
	}

	r.setDepth(ci, ri, frag.InvZ)
	r.FB.SetPixel(ci, ri, color)
}

// VisualizeDepth overwrites every drawn pixel of the framebuffer with a
// greyscale rendering of its depth-buffer value, converting the stored 1/z
// back to view-space z before handing it to GreyscaleFromDepth. Pixels no
// triangle or line ever touched this frame (depth still 0) are left alone.
func (r *Rasterizer) VisualizeDepth() {
	for row := 0; row < r.FB.Height; row++ {
		for col := 0; col < r.FB.Width; col++ {
			invZ := r.getDepth(col, row)
			if invZ == 0 {
				continue
			}
			r.FB.SetPixel(col, row, GreyscaleFromDepth(1/invZ))
		}
	}
}

// DrawTriangleFlat is a convenience wrapper for ShadingFlat.
func (r *Rasterizer) DrawTriangleFlat(tri Triangle, light PointLight, ambient Ambient) {
	r.DrawTriangleSolid(tri, ShadingFlat, light, ambient)
}

// DrawTriangleGouraud is a convenience wrapper for ShadingGouraud.
func (r *Rasterizer) DrawTriangleGouraud(tri Triangle, light PointLight, ambient Ambient) {
	r.DrawTriangleSolid(tri, ShadingGouraud, light, ambient)
}

// DrawTrianglePhong is a convenience wrapper for ShadingPhong.
func (r *Rasterizer) DrawTrianglePhong(tri Triangle, light PointLight, ambient Ambient) {
	r.DrawTriangleSolid(tri, ShadingPhong, light, ambient)
}
