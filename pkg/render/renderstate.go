package render

import (
	"log"
	"math"

	"github.com/Veil43/rastertoy/pkg/math3d"
)

// Object is what RenderState needs from a scene object: enough to transform
// its triangles into view space, test it against the frustum, and rotate it
// in response to input. models.Object satisfies this without render
// importing the models package (which already imports render).
type Object interface {
	TriangleCount() int
	Triangle(i int) (pos [3]math3d.Vec3, normal [3]math3d.Vec3, color [3]Color)
	ObjectTransform() math3d.Mat4
	ObjectRotation() math3d.Mat4
	WorldBoundingSphere() Sphere
	RotateObjectY(degrees float64)
}

// viewTriangle transforms triangle i of obj from object space to view space:
// positions go through the object transform then the camera's view matrix;
// normals go through the object's rotation-only matrix then the view
// matrix's rotation, ignoring translation.
func (r *Rasterizer) viewTriangle(obj Object, i int) Triangle {
	pos, normal, color := obj.Triangle(i)
	transform := obj.ObjectTransform()
	rotation := obj.ObjectRotation()

	var tri Triangle
	dst := [3]*Vertex{&tri.V0, &tri.V1, &tri.V2}
	for k := range dst {
		worldPos := transform.MulVec3(pos[k])
		worldNormal := rotation.MulVec3Dir(normal[k])
		dst[k].Position = r.Camera.TransformToView(worldPos)
		dst[k].Normal = r.Camera.TransformDirToView(worldNormal)
		dst[k].Color = color[k]
	}
	return tri
}

// ProcessTriangle transforms triangle i of obj into view space, optionally
// backface-culls it, and clips it against the camera's frustum. An empty
// ClipResult means the triangle contributed nothing this frame (culled or
// entirely outside).
func (r *Rasterizer) ProcessTriangle(obj Object, i int, cullBackfaces bool) ClipResult {
	tri := r.viewTriangle(obj, i)
	if cullBackfaces && r.IsBackface(tri) {
		return ClipResult{}
	}
	return ClipTriangle(tri.V0, tri.V1, tri.V2, r.Camera.Frustum())
}

// normalOverlayLength is the fixed view-space scale of the normal
// visualization overlay.
const normalOverlayLength = 1.0

// RenderState is the render core's entire mutable state: camera, lighting,
// the loaded scene, and the current display modes. The three methods below
// are the only way a host drives it — on_launch, update, and process_input.
type RenderState struct {
	Camera  *Camera
	FB      *Framebuffer
	Raster  *Rasterizer
	Wire    *Wireframe
	Mode    RenderMode
	Shading ShadingMode
	Light   PointLight
	Ambient Ambient

	ShowNormals  bool
	ShowDepthMap bool

	Objects []Object
	Cursor  int

	lastDelta float64
}

// NewRenderState creates an unlaunched render state. OnLaunch must be called
// before Update or ProcessInput do anything useful.
func NewRenderState() *RenderState {
	return &RenderState{}
}

// OnLaunch constructs the camera, framebuffer, rasterizer, and default
// lighting for a screen of the given dimensions and aspect ratio, and takes
// ownership of the scene's objects. Building the fallback cube when no
// meshes loaded, and resolving obj_names into loaded meshes, is the host's
// job (see cmd/rastertoy) — this only wires up whatever object list it is
// handed.
func (rs *RenderState) OnLaunch(screen Screen, objects []Object) {
	const (
		vfovDegrees = 20.0
		focalLength = 2.0
	)
	basis := math3d.NewBasis(math3d.V3(1, 0, 0), math3d.V3(0, 1, 0), math3d.V3(0, 0, 1))
	rs.Camera = NewCamera(math3d.Zero3(), focalLength, vfovDegrees*math.Pi/180, screen.AspectRatio, basis)
	rs.FB = NewFramebuffer(screen.Width, screen.Height)
	rs.Raster = NewRasterizer(rs.Camera, rs.FB)
	rs.Wire = NewWireframe(rs.Raster)

	rs.Mode = RenderSolid
	rs.Shading = ShadingFlat
	rs.Light = PointLight{Position: math3d.V3(-4, 10, 8), Intensity: 0.8, Specularity: 10}
	rs.Ambient = Ambient{Intensity: 0.2}
	rs.ShowNormals = false

	rs.Objects = objects
	rs.Cursor = 0

	log.Printf("render: launched with %d object(s), %dx%d", len(objects), screen.Width, screen.Height)
}

// OnShutdown releases the back-buffers and scene. Go's GC reclaims the
// memory on its own; this exists so the host has a single symmetric place
// to call before exiting, matching the launch/shutdown pairing the rest of
// the pipeline mirrors.
func (rs *RenderState) OnShutdown() {
	rs.Objects = nil
	rs.Raster = nil
	rs.Wire = nil
	rs.FB = nil
	log.Printf("render: shutdown")
}

// Update advances the render state by delta seconds and redraws the current
// frame into FB. Only the cursor-selected object is drawn; the rest stay
// loaded but invisible until selected.
func (rs *RenderState) Update(delta float64) {
	rs.lastDelta = delta
	rs.FB.Clear(ColorBlack)
	rs.Raster.ClearDepth()
	rs.Raster.ResetCullingStats()

	if rs.Cursor < 0 || rs.Cursor >= len(rs.Objects) {
		return
	}
	rs.drawObject(rs.Objects[rs.Cursor])

	if rs.ShowDepthMap {
		rs.Raster.VisualizeDepth()
	}
}

// Present copies the current frame into a host-owned Screen buffer, the
// boundary a platform frontend crosses to hand pixels to its own display
// surface instead of drawing FB.Pixels directly.
func (rs *RenderState) Present(screen Screen) {
	Blit(rs.FB, screen)
}

func (rs *RenderState) drawObject(obj Object) {
	rs.Raster.CullingStats.MeshesTested++
	if !rs.Camera.ObjectInFrustum(obj.WorldBoundingSphere()) {
		rs.Raster.CullingStats.MeshesCulled++
		return
	}
	rs.Raster.CullingStats.MeshesDrawn++

	switch rs.Mode {
	case RenderSolid:
		rs.drawObjectSolid(obj)
	case RenderWireframe:
		rs.drawObjectWireframe(obj)
	case RenderSolidWireframe:
		rs.drawObjectSolidWireframe(obj)
	}
}

func (rs *RenderState) maybeDrawNormals(tri Triangle) {
	if rs.ShowNormals {
		rs.Wire.DrawTriangleNormals(tri, normalOverlayLength)
	}
}

// drawObjectSolid shades every clipped sub-triangle with the current
// shading mode; backface culling is enabled.
func (rs *RenderState) drawObjectSolid(obj Object) {
	for i := 0; i < obj.TriangleCount(); i++ {
		result := rs.Raster.ProcessTriangle(obj, i, true)
		for _, tri := range result.Triangles {
			rs.maybeDrawNormals(tri)
			rs.Raster.DrawTriangleSolid(tri, rs.Shading, rs.Light, rs.Ambient)
		}
	}
}

// drawObjectWireframe draws only outlines, with backface culling disabled
// (a wireframe of a mesh with the far side culled away looks wrong). This
// reproduces the clipped-split outline bug: DrawClippedOutline draws the
// first sub-triangle's outline twice instead of also drawing the second.
func (rs *RenderState) drawObjectWireframe(obj Object) {
	for i := 0; i < obj.TriangleCount(); i++ {
		result := rs.Raster.ProcessTriangle(obj, i, false)
		if len(result.Triangles) == 0 {
			continue
		}
		rs.maybeDrawNormals(result.Triangles[0])
		rs.Wire.DrawClippedOutline(result, FixedLineColor(ColorRed))
	}
}

// drawObjectSolidWireframe shades each sub-triangle and outlines it in
// yellow; unlike wireframe-only mode, both sub-triangles of a split
// triangle get their own outline — there's no shared ClipResult-level
// outline call here to duplicate.
func (rs *RenderState) drawObjectSolidWireframe(obj Object) {
	for i := 0; i < obj.TriangleCount(); i++ {
		result := rs.Raster.ProcessTriangle(obj, i, true)
		for _, tri := range result.Triangles {
			rs.maybeDrawNormals(tri)
			rs.Wire.DrawTriangleOutline(tri, FixedLineColor(ColorYellow))
			rs.Raster.DrawTriangleSolid(tri, rs.Shading, rs.Light, rs.Ambient)
		}
	}
}

const (
	cameraMoveSpeed = 5.0  // view-space units/second, space/ctrl
	lightMoveSpeed  = 50.0 // world-space units/second, arrow keys
	rotateSpeed     = 60.0 // degrees/second, Q/E
)

// ProcessInput mutates render state in response to one key event. Movement
// and rotation amounts scale by the delta from the most recent Update call,
// so input between frames accumulates consistently regardless of how many
// key events land in a single frame.
func (rs *RenderState) ProcessInput(key Key) {
	dt := rs.lastDelta
	switch key {
	case KeyF:
		rs.Shading = ShadingFlat
	case KeyG:
		rs.Shading = ShadingGouraud
	case KeyP:
		rs.Shading = ShadingPhong

	case KeyW:
		rs.Mode = RenderWireframe
	case KeyS:
		rs.Mode = RenderSolid
	case KeyD:
		rs.Mode = RenderSolidWireframe

	case KeySpace:
		rs.Camera.MoveBy(math3d.V3(0, -cameraMoveSpeed, 0).Scale(dt))
	case KeyLCtrl:
		rs.Camera.MoveBy(math3d.V3(0, cameraMoveSpeed, 0).Scale(dt))

	case KeyQ:
		rs.rotateCurrent(rotateSpeed * dt)
	case KeyE:
		rs.rotateCurrent(-rotateSpeed * dt)

	case KeyUp:
		rs.Light.Position = rs.Light.Position.Add(math3d.V3(0, lightMoveSpeed, 0).Scale(dt))
	case KeyDown:
		rs.Light.Position = rs.Light.Position.Add(math3d.V3(0, -lightMoveSpeed, 0).Scale(dt))
	case KeyLeft:
		rs.Light.Position = rs.Light.Position.Add(math3d.V3(-lightMoveSpeed, 0, 0).Scale(dt))
	case KeyRight:
		rs.Light.Position = rs.Light.Position.Add(math3d.V3(lightMoveSpeed, 0, 0).Scale(dt))

	case KeyN:
		rs.ShowNormals = !rs.ShowNormals
	case KeyM:
		rs.ShowDepthMap = !rs.ShowDepthMap

	case Key1, Key2, Key3, Key4, Key5, Key6, Key7, Key8, Key9:
		rs.selectCursor(int(key - Key1))
	case Key0:
		// Key0 has no slot in the original 1-9 selection scheme; ignored.
	}
}

func (rs *RenderState) rotateCurrent(degrees float64) {
	if rs.Cursor < 0 || rs.Cursor >= len(rs.Objects) {
		return
	}
	rs.Objects[rs.Cursor].RotateObjectY(degrees)
}

// selectCursor moves the cursor to idx if a loaded object exists there, and
// leaves it unchanged otherwise — selecting an empty slot never leaves the
// cursor pointing past the end of the list.
func (rs *RenderState) selectCursor(idx int) {
	if idx >= 0 && idx < len(rs.Objects) {
		rs.Cursor = idx
	}
}
