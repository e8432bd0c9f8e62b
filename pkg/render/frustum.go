package render

import (
	"github.com/Veil43/rastertoy/pkg/math3d"
)

// Plane is a half-space boundary: a unit normal and the signed distance
// from the origin along that normal. The normal points inward, toward the
// visible side of the half-space.
type Plane struct {
	Normal math3d.Vec3
	D      float64
}

// PointDistance returns n·p + d: positive when p is on the inward side.
func (p Plane) PointDistance(point math3d.Vec3) float64 {
	return p.Normal.Dot(point) + p.D
}

// SphereDistance applies the same test to a sphere's center; the sphere is
// fully outside the plane when this is less than -radius.
func (p Plane) SphereDistance(center math3d.Vec3) float64 {
	return p.PointDistance(center)
}

// Sphere is a bounding sphere in some frame (object space or world space
// depending on context).
type Sphere struct {
	Center math3d.Vec3
	Radius float64
}

// Named plane slots. Frustum is stored as a fixed array (the "union of
// named fields and array" requirement resolved per the design notes):
// by-index for loops, named accessors below for readability.
const (
	PlaneNear = iota
	PlaneLeft
	PlaneRight
	PlaneTop
	PlaneBottom
	PlaneFar
	planeCount
)

// Frustum holds the camera's six half-space planes. Only Near, Left, and
// Right are enforced by classification and culling; Top, Bottom, and Far
// are constructed (Top/Bottom, by Camera.initialize) or left zero (Far is
// never built) and deliberately unused — preserving this rather than
// "fixing" it keeps edge fragments at the vertical screen limits visible,
// which is the intended observable behavior.
type Frustum struct {
	Planes [planeCount]Plane
}

func (f Frustum) Near() Plane   { return f.Planes[PlaneNear] }
func (f Frustum) Left() Plane   { return f.Planes[PlaneLeft] }
func (f Frustum) Right() Plane  { return f.Planes[PlaneRight] }
func (f Frustum) Top() Plane    { return f.Planes[PlaneTop] }
func (f Frustum) Bottom() Plane { return f.Planes[PlaneBottom] }

// enforcedPlanes lists the plane indices point/sphere classification tests.
var enforcedPlanes = [3]int{PlaneNear, PlaneLeft, PlaneRight}

// ClassifyPoint tests p against the enforced planes (near/left/right only).
// It returns (true, -1) if p is on the inward side of all of them, or
// (false, planeIndex) naming the first violated plane.
func (f Frustum) ClassifyPoint(p math3d.Vec3) (inside bool, violated int) {
	for _, idx := range enforcedPlanes {
		if f.Planes[idx].PointDistance(p) < 0 {
			return false, idx
		}
	}
	return true, -1
}

// SphereOutside reports whether a world-space sphere is entirely outside
// the enforced planes (near/left/right) — used by object-level frustum
// culling before any per-triangle work happens.
func (f Frustum) SphereOutside(s Sphere) bool {
	for _, idx := range enforcedPlanes {
		if f.Planes[idx].SphereDistance(s.Center) < -s.Radius {
			return true
		}
	}
	return false
}

// Vertex carries the per-vertex attributes the clipper and rasterizer both
// need: view-space position, normal, and color.
type Vertex struct {
	Position math3d.Vec3
	Normal   math3d.Vec3
	Color    Color
}

// Triangle is three vertices, view-space, pre-projection.
type Triangle struct {
	V0, V1, V2 Vertex
}

// ClipResult is the output of clipping one triangle against one plane.
// IsSplit is true both when real splitting occurred (two triangles emitted)
// and, per the preserved quirk, when the input triangle was already fully
// inside — callers must check len(Triangles), not IsSplit, to tell the two
// apart (Open Question decision 3, DESIGN.md).
type ClipResult struct {
	Triangles []Triangle
	IsSplit   bool
}

// intersectEdge finds the point where segment a->b crosses plane, given
// that the caller guarantees n·(b-a) != 0 (the endpoints straddle it). The
// new vertex carries b's normal and color, not an interpolation — a
// documented coarse behavior.
func intersectEdge(plane Plane, a, b Vertex) Vertex {
	denom := plane.Normal.Dot(b.Position.Sub(a.Position))
	t := -(plane.D + plane.Normal.Dot(a.Position)) / denom
	return Vertex{
		Position: a.Position.Lerp(b.Position, t),
		Normal:   b.Normal,
		Color:    b.Color,
	}
}

// ClipTriangle clips a triangle against the frustum's enforced planes
// (near/left/right). Each vertex is classified once; if the three don't
// all agree, the triangle is clipped against the single plane violated by
// whichever vertex is outside — only one plane is ever considered per
// triangle, so output triangles may still lie outside other planes; the
// rasterizer tolerates that by rejecting out-of-range fragments
// individually.
func ClipTriangle(v0, v1, v2 Vertex, f Frustum) ClipResult {
	in0, p0 := f.ClassifyPoint(v0.Position)
	in1, p1 := f.ClassifyPoint(v1.Position)
	in2, p2 := f.ClassifyPoint(v2.Position)

	insideCount := 0
	for _, in := range [3]bool{in0, in1, in2} {
		if in {
			insideCount++
		}
	}

	switch insideCount {
	case 3:
		return ClipResult{Triangles: []Triangle{{v0, v1, v2}}, IsSplit: true}

	case 0:
		return ClipResult{}

	case 1:
		// One inside (A), two outside (B, C).
		var a, b, c Vertex
		var plane int
		switch {
		case in0:
			a, b, c, plane = v0, v1, v2, p1
		case in1:
			a, b, c, plane = v1, v2, v0, p2
		default:
			a, b, c, plane = v2, v0, v1, p0
		}
		pl := f.Planes[plane]
		bPrime := intersectEdge(pl, a, b)
		cPrime := intersectEdge(pl, a, c)
		return ClipResult{
			Triangles: []Triangle{{bPrime, a, cPrime}},
			IsSplit:   false,
		}

	default: // insideCount == 2
		// Two inside (A, B), one outside (C).
		var a, b, c Vertex
		var plane int
		switch {
		case !in0:
			c, a, b, plane = v0, v1, v2, p0
		case !in1:
			c, a, b, plane = v1, v2, v0, p1
		default:
			c, a, b, plane = v2, v0, v1, p2
		}
		pl := f.Planes[plane]
		aPrime := intersectEdge(pl, c, a)
		bPrime := intersectEdge(pl, c, b)
		return ClipResult{
			Triangles: []Triangle{
				{aPrime, a, b},
				{aPrime, b, bPrime},
			},
			IsSplit: true,
		}
	}
}
