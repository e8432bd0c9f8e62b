package models

import (
	"strings"
	"testing"
)

const triangleOBJ = `
v 0 0 0
v 1 0 0
v 0 1 0
vn 0 0 1
f 1//1 2//1 3//1
`

const quadOBJ = `
v -1 -1 0
v 1 -1 0
v 1 1 0
v -1 1 0
f 1 2 3 4
`

func TestParseOBJTriangleWithNormals(t *testing.T) {
	mesh, err := parseOBJ(strings.NewReader(triangleOBJ))
	if err != nil {
		t.Fatalf("parseOBJ: %v", err)
	}
	if mesh.TriangleCount() != 1 {
		t.Fatalf("TriangleCount = %d, want 1", mesh.TriangleCount())
	}
	if len(mesh.VertexPositions) != 3 {
		t.Fatalf("len(VertexPositions) = %d, want 3", len(mesh.VertexPositions))
	}
}

func TestParseOBJQuadSplitsIntoTwoTriangles(t *testing.T) {
	mesh, err := parseOBJ(strings.NewReader(quadOBJ))
	if err != nil {
		t.Fatalf("parseOBJ: %v", err)
	}
	if mesh.TriangleCount() != 2 {
		t.Fatalf("TriangleCount = %d, want 2", mesh.TriangleCount())
	}
	if len(mesh.VertexNormals) != 4 {
		t.Fatalf("expected synthesized normals for all 4 vertices, got %d", len(mesh.VertexNormals))
	}
}

func TestParseOBJMissingNormalsAreSynthesizedAndUnitLength(t *testing.T) {
	mesh, err := parseOBJ(strings.NewReader(quadOBJ))
	if err != nil {
		t.Fatalf("parseOBJ: %v", err)
	}
	for i, n := range mesh.VertexNormals {
		l := n.Len()
		if l < 0.99 || l > 1.01 {
			t.Errorf("normal %d has length %v, want ~1", i, l)
		}
	}
}

func TestNewCubeMeshHas36Indices(t *testing.T) {
	mesh := NewCubeMesh()
	if mesh.TriangleCount() != 12 {
		t.Errorf("TriangleCount = %d, want 12", mesh.TriangleCount())
	}
	if len(mesh.VertexPositions) != 24 {
		t.Errorf("len(VertexPositions) = %d, want 24", len(mesh.VertexPositions))
	}
}

func TestCubeBoundingSphereCentersAtOrigin(t *testing.T) {
	mesh := NewCubeMesh()
	s := mesh.BoundingSphere()
	if s.Center.Len() > 1e-9 {
		t.Errorf("expected cube bounding sphere centered at origin, got %v", s.Center)
	}
}
