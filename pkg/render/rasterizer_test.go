package render

import (
	"math"
	"testing"

	"github.com/Veil43/rastertoy/pkg/math3d"
)

func TestDrawTriangleSolidPartiallyOffscreenStillDrawsVisiblePortion(t *testing.T) {
	r := testRasterizer(64, 64)
	// The top vertex projects well outside the NDC unit square (py > 1);
	// the near/left/right frustum only, with top/bottom unenforced, so
	// triangles like this reach the rasterizer routinely. The visible
	// base of the triangle must still be drawn.
	tri := Triangle{
		V0: Vertex{Position: math3d.V3(-1, -0.2, 10), Normal: math3d.V3(0, 0, -1), Color: ColorWhite},
		V1: Vertex{Position: math3d.V3(1, -0.2, 10), Normal: math3d.V3(0, 0, -1), Color: ColorWhite},
		V2: Vertex{Position: math3d.V3(0, 20, 10), Normal: math3d.V3(0, 0, -1), Color: ColorWhite},
	}
	r.DrawTriangleSolid(tri, ShadingFlat, PointLight{Intensity: 1}, Ambient{Intensity: 1})

	nonZero := 0
	for _, p := range r.FB.Pixels {
		if p != (Color{}) {
			nonZero++
		}
	}
	if nonZero == 0 {
		t.Errorf("expected the triangle's in-range base to draw pixels despite an off-screen apex")
	}
}

func TestProjectOnlyRejectsBehindEye(t *testing.T) {
	cam := NewCamera(math3d.Zero3(), 2, 20*math.Pi/180, 1, identityBasis())
	r := &Rasterizer{Camera: cam, FB: NewFramebuffer(8, 8)}

	if _, ok := r.project(Vertex{Position: math3d.V3(0, 0, -1)}); ok {
		t.Errorf("expected project to reject a vertex behind the eye")
	}
	if _, ok := r.project(Vertex{Position: math3d.V3(0, 100, 10)}); !ok {
		t.Errorf("expected project to accept a vertex outside the NDC unit square, rejecting it per-fragment instead")
	}
}

func TestDrawLinePartiallyOffscreenStillDrawsVisiblePortion(t *testing.T) {
	r := testRasterizer(64, 64)
	w := NewWireframe(r)
	a := Vertex{Position: math3d.V3(0, 0, 10), Color: ColorRed}
	b := Vertex{Position: math3d.V3(0, 5, 10), Color: ColorRed}
	w.DrawLine(a, b, FixedLineColor(ColorRed), priorityWireframe)

	nonZero := 0
	for _, p := range r.FB.Pixels {
		if p != (Color{}) {
			nonZero++
		}
	}
	if nonZero == 0 {
		t.Errorf("expected DrawLine to plot the in-range portion of a line with an off-screen endpoint")
	}
}
