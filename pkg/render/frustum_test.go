package render

import (
	"math"
	"testing"

	"github.com/Veil43/rastertoy/pkg/math3d"
)

func testFrustum(focal float64) Frustum {
	// A simple symmetric frustum matching a camera looking down +Z with
	// unit viewport half-extents, focal length `focal`.
	var f Frustum
	f.Planes[PlaneNear] = Plane{Normal: math3d.V3(0, 0, 1), D: -focal}
	f.Planes[PlaneLeft] = Plane{Normal: math3d.V3(focal, 0, 1).Normalize(), D: 0}
	f.Planes[PlaneRight] = Plane{Normal: math3d.V3(-focal, 0, 1).Normalize(), D: 0}
	return f
}

func TestClassifyPointFullyInside(t *testing.T) {
	f := testFrustum(2)
	inside, _ := f.ClassifyPoint(math3d.V3(0, 0, 5))
	if !inside {
		t.Fatalf("expected point at z=5 (focal=2) to classify inside")
	}
}

func TestClassifyPointOutsideNear(t *testing.T) {
	f := testFrustum(2)
	inside, violated := f.ClassifyPoint(math3d.V3(0, 0, 1))
	if inside || violated != PlaneNear {
		t.Fatalf("expected point at z=1 < focal to violate near plane, got inside=%v violated=%d", inside, violated)
	}
}

func TestClipTriangleFullyInsideUnchanged(t *testing.T) {
	f := testFrustum(1)
	v0 := Vertex{Position: math3d.V3(-0.1, 0, 2)}
	v1 := Vertex{Position: math3d.V3(0.1, 0, 2)}
	v2 := Vertex{Position: math3d.V3(0, 0.1, 2)}

	result := ClipTriangle(v0, v1, v2, f)
	if len(result.Triangles) != 1 {
		t.Fatalf("expected 1 unchanged triangle, got %d", len(result.Triangles))
	}
	// The preserved quirk: fully-inside still reports IsSplit = true.
	if !result.IsSplit {
		t.Errorf("expected IsSplit=true on fully-inside result (documented quirk)")
	}
	got := result.Triangles[0]
	if got.V0 != v0 || got.V1 != v1 || got.V2 != v2 {
		t.Errorf("fully-inside clip altered vertices: got %+v", got)
	}
}

func TestClipTriangleFullyOutsideEmpty(t *testing.T) {
	f := testFrustum(1)
	v0 := Vertex{Position: math3d.V3(-5, 0, 2)}
	v1 := Vertex{Position: math3d.V3(-6, 0, 2)}
	v2 := Vertex{Position: math3d.V3(-7, 0, 2)}

	result := ClipTriangle(v0, v1, v2, f)
	if len(result.Triangles) != 0 {
		t.Fatalf("expected no triangles, got %d", len(result.Triangles))
	}
}

func TestClipTriangleOneVertexOutsideLeft(t *testing.T) {
	f := testFrustum(1)
	// left plane: x >= -z is inside, since normal is (1,0,1) normalized, d=0.
	v0 := Vertex{Position: math3d.V3(-5, 0, 1), Color: ColorRed}
	v1 := Vertex{Position: math3d.V3(2, 0, 2), Color: ColorGreen}
	v2 := Vertex{Position: math3d.V3(0.5, 2, 2), Color: ColorBlue}

	result := ClipTriangle(v0, v1, v2, f)
	if len(result.Triangles) != 2 {
		t.Fatalf("expected split into 2 triangles, got %d", len(result.Triangles))
	}
	for i, tri := range result.Triangles {
		for _, v := range [3]math3d.Vec3{tri.V0.Position, tri.V1.Position, tri.V2.Position} {
			if f.Planes[PlaneLeft].PointDistance(v) < -1e-4 {
				t.Errorf("triangle %d vertex %v violates left plane", i, v)
			}
		}
	}
}

func TestClipTriangleTwoVerticesOutside(t *testing.T) {
	f := testFrustum(1)
	v0 := Vertex{Position: math3d.V3(1, 0, 2)}  // inside
	v1 := Vertex{Position: math3d.V3(-2.5, 0, 2)} // outside left
	v2 := Vertex{Position: math3d.V3(-3, 1, 2)} // outside left

	result := ClipTriangle(v0, v1, v2, f)
	if len(result.Triangles) != 1 {
		t.Fatalf("expected single clipped triangle, got %d", len(result.Triangles))
	}
	if result.IsSplit {
		t.Errorf("one-inside-two-outside clip should report IsSplit=false per spec, got true")
	}
}

func TestSphereOutsideRejectsFarAway(t *testing.T) {
	f := testFrustum(2)
	if !f.SphereOutside(Sphere{Center: math3d.V3(0, 0, 1e6), Radius: 1}) {
		t.Errorf("expected a sphere at z=1e6 to be classified outside")
	}
}

func approxEq(a, b, eps float64) bool { return math.Abs(a-b) < eps }
