package models

import (
	"math"
	"testing"

	"github.com/Veil43/rastertoy/pkg/math3d"
)

func TestObjectTransformAppliesScaleRotationTranslation(t *testing.T) {
	mesh := NewCubeMesh()
	obj := NewObject(mesh, math3d.V3(0, 0, 10), 2, 0)
	p := obj.ObjectTransform().MulVec3(math3d.V3(1, 0, 0))
	want := math3d.V3(2, 0, 10)
	if p.Sub(want).Len() > 1e-9 {
		t.Errorf("ObjectTransform()*  (1,0,0) = %v, want %v", p, want)
	}
}

func TestRotateObjectYAccumulates(t *testing.T) {
	mesh := NewCubeMesh()
	obj := NewObject(mesh, math3d.Zero3(), 1, 0)
	obj.RotateObjectY(90)
	rotated := obj.ObjectRotation().MulVec3Dir(math3d.V3(1, 0, 0))
	if math.Abs(rotated.Z) < 0.9 {
		t.Errorf("expected a 90-degree Y rotation to swap X into Z, got %v", rotated)
	}
}

func TestWorldBoundingSphereScalesRadius(t *testing.T) {
	mesh := NewCubeMesh()
	obj := NewObject(mesh, math3d.Zero3(), 4, 0)
	local := mesh.BoundingSphere()
	world := obj.WorldBoundingSphere()
	if math.Abs(world.Radius-local.Radius*4) > 1e-9 {
		t.Errorf("WorldBoundingSphere radius = %v, want %v", world.Radius, local.Radius*4)
	}
}
