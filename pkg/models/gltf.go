package models

import (
	"fmt"
	"path/filepath"
	"unsafe"

	"github.com/qmuntal/gltf"

	"github.com/Veil43/rastertoy/pkg/math3d"
)

// GLTFLoader loads GLTF/GLB files as an alternate mesh source alongside the
// OBJ subset parser. Normals are synthesized the same way OBJ does — via
// unnormalized per-face-normal summation, then per-vertex normalize — when
// the file provides none.
type GLTFLoader struct {
	// SmoothNormals is not read by Load: normals are synthesized whenever
	// the file provides none, whatever its value.
	SmoothNormals bool
}

// NewGLTFLoader creates a loader with SmoothNormals set to true.
func NewGLTFLoader() *GLTFLoader {
	return &GLTFLoader{SmoothNormals: true}
}

// LoadGLB loads a binary GLTF (.glb) file into a Mesh.
func LoadGLB(path string) (*Mesh, error) {
	return NewGLTFLoader().Load(path)
}

// Load loads a GLTF or GLB file and returns a Mesh.
func (l *GLTFLoader) Load(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf %s: %w", filepath.Base(path), err)
	}

	mesh := NewMesh()
	for _, m := range doc.Meshes {
		if err := l.appendMesh(doc, m, mesh); err != nil {
			return nil, fmt.Errorf("process mesh %q: %w", m.Name, err)
		}
	}

	hasNormals := len(mesh.VertexNormals) == len(mesh.VertexPositions)
	if !hasNormals {
		synthesizeNormals(mesh)
	}

	return mesh, nil
}

// appendMesh extracts one GLTF mesh's triangle primitives, appending to an
// existing Mesh so a document with multiple meshes merges into one.
func (l *GLTFLoader) appendMesh(doc *gltf.Document, m *gltf.Mesh, mesh *Mesh) error {
	for _, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
			continue
		}

		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		positions, err := readVec3Accessor(doc, posIdx)
		if err != nil {
			return fmt.Errorf("read positions: %w", err)
		}

		var normals []math3d.Vec3
		if normIdx, ok := prim.Attributes[gltf.NORMAL]; ok {
			normals, err = readVec3Accessor(doc, normIdx)
			if err != nil {
				return fmt.Errorf("read normals: %w", err)
			}
		}

		base := len(mesh.VertexPositions)
		mesh.VertexPositions = append(mesh.VertexPositions, positions...)
		if len(normals) == len(positions) {
			mesh.VertexNormals = append(mesh.VertexNormals, normals...)
		}

		var indices []int
		if prim.Indices != nil {
			indices, err = readIndices(doc, *prim.Indices)
			if err != nil {
				return fmt.Errorf("read indices: %w", err)
			}
		} else {
			indices = make([]int, len(positions))
			for i := range indices {
				indices[i] = i
			}
		}

		// GLTF winds front faces CCW; the rest of this pipeline expects the
		// same winding used by the OBJ loader and cube builder, so no swap
		// is applied here beyond offsetting into the merged vertex arrays.
		for _, idx := range indices {
			mesh.VertexIndices = append(mesh.VertexIndices, base+idx)
			mesh.NormalIndices = append(mesh.NormalIndices, base+idx)
		}
	}
	return nil
}

// synthesizeNormals fills in vertex normals by summing each triangle's
// unnormalized face normal into its three vertices, then normalizing.
func synthesizeNormals(mesh *Mesh) {
	mesh.VertexNormals = make([]math3d.Vec3, len(mesh.VertexPositions))
	for i := 0; i < mesh.TriangleCount(); i++ {
		i0 := mesh.VertexIndices[i*3]
		i1 := mesh.VertexIndices[i*3+1]
		i2 := mesh.VertexIndices[i*3+2]
		v0, v1, v2 := mesh.VertexPositions[i0], mesh.VertexPositions[i1], mesh.VertexPositions[i2]
		n := v1.Sub(v0).Cross(v2.Sub(v0))
		mesh.VertexNormals[i0] = mesh.VertexNormals[i0].Add(n)
		mesh.VertexNormals[i1] = mesh.VertexNormals[i1].Add(n)
		mesh.VertexNormals[i2] = mesh.VertexNormals[i2].Add(n)
	}
	for i, n := range mesh.VertexNormals {
		mesh.VertexNormals[i] = n.Normalize()
	}
}

func readVec3Accessor(doc *gltf.Document, accessorIdx int) ([]math3d.Vec3, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorVec3 {
		return nil, fmt.Errorf("expected VEC3, got %v", accessor.Type)
	}

	data, err := readAccessorData(doc, accessor)
	if err != nil {
		return nil, err
	}

	floats, ok := data.([][3]float32)
	if !ok {
		return nil, fmt.Errorf("unexpected data type for VEC3")
	}

	result := make([]math3d.Vec3, len(floats))
	for i, f := range floats {
		result[i] = math3d.V3(float64(f[0]), float64(f[1]), float64(f[2]))
	}
	return result, nil
}

func readIndices(doc *gltf.Document, accessorIdx int) ([]int, error) {
	accessor := doc.Accessors[accessorIdx]

	data, err := readAccessorData(doc, accessor)
	if err != nil {
		return nil, err
	}

	switch v := data.(type) {
	case []uint8:
		result := make([]int, len(v))
		for i, x := range v {
			result[i] = int(x)
		}
		return result, nil
	case []uint16:
		result := make([]int, len(v))
		for i, x := range v {
			result[i] = int(x)
		}
		return result, nil
	case []uint32:
		result := make([]int, len(v))
		for i, x := range v {
			result[i] = int(x)
		}
		return result, nil
	default:
		return nil, fmt.Errorf("unexpected index type: %T", data)
	}
}

// readAccessorData reads raw attribute or index data out of a GLTF
// accessor's backing buffer view. Only embedded (GLB) buffer data is
// supported; external buffer URIs are not resolved.
func readAccessorData(doc *gltf.Document, accessor *gltf.Accessor) (any, error) {
	if accessor.BufferView == nil {
		return nil, fmt.Errorf("accessor has no buffer view")
	}

	bufferView := doc.BufferViews[*accessor.BufferView]
	buffer := doc.Buffers[bufferView.Buffer]

	if buffer.URI != "" {
		return nil, fmt.Errorf("external buffers not supported")
	}
	bufData := buffer.Data
	if bufData == nil {
		return nil, fmt.Errorf("buffer has no data")
	}

	start := bufferView.ByteOffset + accessor.ByteOffset
	stride := bufferView.ByteStride
	count := accessor.Count

	switch accessor.Type {
	case gltf.AccessorVec3:
		if stride == 0 {
			stride = 12
		}
		result := make([][3]float32, count)
		for i := range count {
			offset := start + i*stride
			for j := range 3 {
				result[i][j] = readFloat32(bufData[offset+j*4:])
			}
		}
		return result, nil

	case gltf.AccessorScalar:
		if stride == 0 {
			switch accessor.ComponentType {
			case gltf.ComponentUbyte:
				stride = 1
			case gltf.ComponentUshort:
				stride = 2
			case gltf.ComponentUint:
				stride = 4
			}
		}
		switch accessor.ComponentType {
		case gltf.ComponentUbyte:
			result := make([]uint8, count)
			for i := range count {
				result[i] = bufData[start+i*stride]
			}
			return result, nil
		case gltf.ComponentUshort:
			result := make([]uint16, count)
			for i := range count {
				offset := start + i*stride
				result[i] = uint16(bufData[offset]) | uint16(bufData[offset+1])<<8
			}
			return result, nil
		case gltf.ComponentUint:
			result := make([]uint32, count)
			for i := range count {
				offset := start + i*stride
				result[i] = uint32(bufData[offset]) |
					uint32(bufData[offset+1])<<8 |
					uint32(bufData[offset+2])<<16 |
					uint32(bufData[offset+3])<<24
			}
			return result, nil
		}
	}

	return nil, fmt.Errorf("unsupported accessor type: %v / %v", accessor.Type, accessor.ComponentType)
}

func readFloat32(b []byte) float32 {
	bits := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
	return *(*float32)(unsafe.Pointer(&bits))
}
