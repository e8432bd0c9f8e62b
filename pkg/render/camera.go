package render

import (
	"math"

	"github.com/Veil43/rastertoy/pkg/math3d"
)

// Camera holds the view matrix, projection parameters, and the frustum
// derived from them at construction time.
type Camera struct {
	Origin      math3d.Vec3
	FocalLength float64
	VFov        float64 // vertical field of view, radians
	Aspect      float64

	ViewportWidth  float64
	ViewportHeight float64

	viewMatrix math3d.Mat4
	frustum    Frustum
}

// NewCamera builds a camera from its origin, focal length, vertical FOV
// (radians), aspect ratio, and orientation basis (right, up, forward).
// The view matrix and frustum are computed once here; camera motion
// (MoveBy, RotateYBy) updates the view matrix incrementally rather than
// rebuilding from these fields.
func NewCamera(origin math3d.Vec3, focalLength, vfov, aspect float64, basis math3d.Mat3) *Camera {
	c := &Camera{
		Origin:      origin,
		FocalLength: focalLength,
		VFov:        vfov,
		Aspect:      aspect,
	}
	c.initialize(basis)
	return c
}

func (c *Camera) initialize(basis math3d.Mat3) {
	c.ViewportHeight = 2 * c.FocalLength * math.Tan(c.VFov/2)
	c.ViewportWidth = c.ViewportHeight * c.Aspect

	right, up, forward := basis.I, basis.J, basis.K

	// View matrix rows: right, up, forward, origin. The pipeline multiplies
	// positions by this matrix directly (row-vector convention, translation
	// in the last row) rather than negating the origin into a standard
	// look-at matrix.
	c.viewMatrix = math3d.Mat4{
		right.X, right.Y, right.Z, 0,
		up.X, up.Y, up.Z, 0,
		forward.X, forward.Y, forward.Z, 0,
		c.Origin.X, c.Origin.Y, c.Origin.Z, 1,
	}

	// Near-plane corners, expressed relative to the camera in camera space.
	v := up.Scale(c.ViewportHeight)
	u := right.Scale(c.ViewportWidth)
	d := forward.Scale(c.FocalLength)

	topRight := d.Add(v.Scale(0.5)).Add(u.Scale(0.5))
	botRight := d.Sub(v.Scale(0.5)).Add(u.Scale(0.5))
	topLeft := d.Add(v.Scale(0.5)).Sub(u.Scale(0.5))
	botLeft := d.Sub(v.Scale(0.5)).Sub(u.Scale(0.5))

	var f Frustum
	// Near plane distance is -focal, not focal; this is intentional and
	// reabsorbed by the view convention elsewhere (Open Question decision 1).
	f.Planes[PlaneNear] = Plane{Normal: math3d.V3(0, 0, 1), D: -c.FocalLength}
	f.Planes[PlaneLeft] = Plane{Normal: topLeft.Cross(botLeft).Normalize(), D: 0}
	f.Planes[PlaneRight] = Plane{Normal: botRight.Cross(topRight).Normalize(), D: 0}
	f.Planes[PlaneTop] = Plane{Normal: topRight.Cross(topLeft).Normalize(), D: 0}
	f.Planes[PlaneBottom] = Plane{Normal: botLeft.Cross(botRight).Normalize(), D: 0}
	c.frustum = f
}

// Frustum returns the camera's view frustum.
func (c *Camera) Frustum() Frustum {
	return c.frustum
}

// ViewMatrix returns the current view matrix.
func (c *Camera) ViewMatrix() math3d.Mat4 {
	return c.viewMatrix
}

// Rotation returns the rotation (upper-left 3x3) part of the view matrix.
func (c *Camera) Rotation() math3d.Mat3 {
	return c.viewMatrix.Basis()
}

// MoveBy right-multiplies the view matrix by a translation built from v,
// matching the original camera's incremental motion model.
func (c *Camera) MoveBy(v math3d.Vec3) {
	c.viewMatrix = c.viewMatrix.Mul(math3d.Translate(v))
}

// RotateYBy right-multiplies the view matrix by the inverse Y rotation,
// equivalent to rotating the world opposite to camera yaw.
func (c *Camera) RotateYBy(degrees float64) {
	rad := degrees * math.Pi / 180
	inverseY := math3d.RotateY(-rad)
	c.viewMatrix = c.viewMatrix.Mul(inverseY)
}

// ViewDirection returns origin - v (not normalized) — the direction from a
// view-space point back toward the camera.
func (c *Camera) ViewDirection(v math3d.Vec3) math3d.Vec3 {
	return c.Origin.Sub(v)
}

// ObjectInFrustum reports whether the object's world-space bounding sphere
// is visible: the sphere center is transformed by the view matrix, then
// tested against near/left/right only.
func (c *Camera) ObjectInFrustum(worldSphere Sphere) bool {
	viewCenter := c.viewMatrix.MulVec3(worldSphere.Center)
	return !c.frustum.SphereOutside(Sphere{Center: viewCenter, Radius: worldSphere.Radius})
}

// TransformToView transforms a world-space point into view space.
func (c *Camera) TransformToView(p math3d.Vec3) math3d.Vec3 {
	return c.viewMatrix.MulVec3(p)
}

// TransformDirToView transforms a world-space direction (e.g. a normal)
// into view space, ignoring translation.
func (c *Camera) TransformDirToView(d math3d.Vec3) math3d.Vec3 {
	return c.viewMatrix.MulVec3Dir(d)
}
