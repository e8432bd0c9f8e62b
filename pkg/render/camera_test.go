package render

import (
	"math"
	"testing"

	"github.com/Veil43/rastertoy/pkg/math3d"
)

func identityBasis() math3d.Mat3 {
	return math3d.NewBasis(math3d.V3(1, 0, 0), math3d.V3(0, 1, 0), math3d.V3(0, 0, 1))
}

func TestNewCameraViewportSize(t *testing.T) {
	c := NewCamera(math3d.Zero3(), 2, 20*math.Pi/180, 1, identityBasis())
	wantHeight := 2 * 2 * math.Tan(10*math.Pi/180)
	if !approxEq(c.ViewportHeight, wantHeight, 1e-9) {
		t.Errorf("ViewportHeight = %v, want %v", c.ViewportHeight, wantHeight)
	}
	if !approxEq(c.ViewportWidth, wantHeight, 1e-9) {
		t.Errorf("ViewportWidth = %v, want %v (aspect=1)", c.ViewportWidth, wantHeight)
	}
}

func TestNewCameraNearPlaneDistance(t *testing.T) {
	c := NewCamera(math3d.Zero3(), 2, 20*math.Pi/180, 1, identityBasis())
	if c.Frustum().Near().D != -2 {
		t.Errorf("near plane D = %v, want -focal (-2)", c.Frustum().Near().D)
	}
}

func TestObjectInFrustumRejectsFarObject(t *testing.T) {
	c := NewCamera(math3d.Zero3(), 2, 20*math.Pi/180, 1, identityBasis())
	if c.ObjectInFrustum(Sphere{Center: math3d.V3(0, 0, 1e6), Radius: 1}) {
		t.Errorf("expected far object to be culled")
	}
}

func TestObjectInFrustumAcceptsNearbyObject(t *testing.T) {
	c := NewCamera(math3d.Zero3(), 2, 20*math.Pi/180, 1, identityBasis())
	if !c.ObjectInFrustum(Sphere{Center: math3d.V3(0, 0, 12), Radius: 2}) {
		t.Errorf("expected object at (0,0,12) r=2 to be visible")
	}
}

func TestMoveByTranslatesViewMatrix(t *testing.T) {
	c := NewCamera(math3d.Zero3(), 2, 20*math.Pi/180, 1, identityBasis())
	before := c.TransformToView(math3d.V3(0, 0, 0))
	c.MoveBy(math3d.V3(1, 0, 0))
	after := c.TransformToView(math3d.V3(0, 0, 0))
	if after.Sub(before).X == 0 {
		t.Errorf("expected MoveBy to shift the transform of the origin")
	}
}
