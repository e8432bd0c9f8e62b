// Package models provides 3D mesh representation, loading, and the scene
// objects that place meshes in the world.
package models

import (
	"math"

	"github.com/Veil43/rastertoy/pkg/math3d"
	"github.com/Veil43/rastertoy/pkg/render"
)

// Mesh holds indexed vertex attributes and the two (usually equal, not
// necessarily so for OBJ files with sparse `vn` references) index arrays
// that reference them per triangle.
type Mesh struct {
	VertexPositions []math3d.Vec3
	VertexNormals   []math3d.Vec3
	VertexColors    []render.Color

	VertexIndices []int
	NormalIndices []int
}

// NewMesh creates an empty mesh.
func NewMesh() *Mesh {
	return &Mesh{}
}

// TriangleCount returns the number of triangles described by the index
// arrays.
func (m *Mesh) TriangleCount() int {
	return len(m.VertexIndices) / 3
}

// BoundingSphere returns the mesh's bounding sphere in object space: the
// vertex centroid, and the distance from it to the farthest vertex.
func (m *Mesh) BoundingSphere() render.Sphere {
	if len(m.VertexPositions) == 0 {
		return render.Sphere{}
	}
	var sum math3d.Vec3
	for _, p := range m.VertexPositions {
		sum = sum.Add(p)
	}
	center := sum.Scale(1.0 / float64(len(m.VertexPositions)))

	maxDistSq := 0.0
	for _, p := range m.VertexPositions {
		if d := p.Sub(center).LenSq(); d > maxDistSq {
			maxDistSq = d
		}
	}
	return render.Sphere{Center: center, Radius: math.Sqrt(maxDistSq)}
}

// Triangle returns the three vertex positions, normals, and colors for
// triangle i.
func (m *Mesh) Triangle(i int) (pos [3]math3d.Vec3, normal [3]math3d.Vec3, color [3]render.Color) {
	vi0, vi1, vi2 := m.VertexIndices[i*3], m.VertexIndices[i*3+1], m.VertexIndices[i*3+2]
	ni0, ni1, ni2 := m.NormalIndices[i*3], m.NormalIndices[i*3+1], m.NormalIndices[i*3+2]

	pos = [3]math3d.Vec3{m.VertexPositions[vi0], m.VertexPositions[vi1], m.VertexPositions[vi2]}
	normal = [3]math3d.Vec3{m.VertexNormals[ni0], m.VertexNormals[ni1], m.VertexNormals[ni2]}

	defaultColor := render.ColorWhite
	color = [3]render.Color{defaultColor, defaultColor, defaultColor}
	if len(m.VertexColors) == len(m.VertexPositions) {
		color = [3]render.Color{m.VertexColors[vi0], m.VertexColors[vi1], m.VertexColors[vi2]}
	}
	return
}

// Object places a Mesh in the world: position, per-axis accumulated
// rotation, uniform scale, and an identifying ID (used as the cursor target
// for key-driven selection).
type Object struct {
	Mesh     *Mesh
	Position math3d.Vec3
	Scale    float64
	ID       int

	rotation math3d.Mat4
}

// NewObject places a mesh at position with a uniform scale factor.
func NewObject(mesh *Mesh, position math3d.Vec3, scale float64, id int) *Object {
	return &Object{
		Mesh:     mesh,
		Position: position,
		Scale:    scale,
		ID:       id,
		rotation: math3d.Identity(),
	}
}

// RotateObjectX accumulates a rotation of degrees around the object's local
// X axis.
func (o *Object) RotateObjectX(degrees float64) {
	o.rotation = o.rotation.Mul(math3d.RotateX(degrees * math.Pi / 180))
}

// RotateObjectY accumulates a rotation of degrees around the object's local
// Y axis.
func (o *Object) RotateObjectY(degrees float64) {
	o.rotation = o.rotation.Mul(math3d.RotateY(degrees * math.Pi / 180))
}

// RotateObjectZ accumulates a rotation of degrees around the object's local
// Z axis.
func (o *Object) RotateObjectZ(degrees float64) {
	o.rotation = o.rotation.Mul(math3d.RotateZ(degrees * math.Pi / 180))
}

// ObjectRotation returns the object's accumulated rotation matrix (no
// translation or scale), used to transform normals.
func (o *Object) ObjectRotation() math3d.Mat4 {
	return o.rotation
}

// TriangleCount delegates to the underlying mesh, letting Object satisfy
// render.Object directly.
func (o *Object) TriangleCount() int {
	return o.Mesh.TriangleCount()
}

// Triangle delegates to the underlying mesh.
func (o *Object) Triangle(i int) (pos [3]math3d.Vec3, normal [3]math3d.Vec3, color [3]render.Color) {
	return o.Mesh.Triangle(i)
}

// ObjectTransform returns scale * rotation * translation: the full
// object-to-world transform applied to vertex positions.
func (o *Object) ObjectTransform() math3d.Mat4 {
	return math3d.ScaleUniform(o.Scale).Mul(o.rotation).Mul(math3d.Translate(o.Position))
}

// WorldBoundingSphere returns the object's bounding sphere transformed into
// world space: the object-space sphere's center goes through the full
// transform, and its radius scales uniformly.
func (o *Object) WorldBoundingSphere() render.Sphere {
	local := o.Mesh.BoundingSphere()
	center := o.ObjectTransform().MulVec3(local.Center)
	return render.Sphere{Center: center, Radius: local.Radius * o.Scale}
}
