package models

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/Veil43/rastertoy/pkg/math3d"
)

// LoadOBJ parses the `v`/`vn`/`f` subset of the Wavefront OBJ format from
// path. Quads are split into two triangles (1,2,3 and 1,3,4); n-gons with
// more than four vertices are fan-triangulated from vertex 0, which is only
// correct for convex polygons and logs a warning. Indices are 1-based in
// the file and converted to 0-based. If the file provides no normals, or a
// mismatched count, normals are synthesized by summing the (unnormalized)
// face normal of every triangle into its three vertices and normalizing
// once at the end.
func LoadOBJ(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return parseOBJ(f)
}

func parseOBJ(r io.Reader) (*Mesh, error) {
	var vertices []math3d.Vec3
	var normals []math3d.Vec3
	var vertexIndices []int
	var normalIndices []int

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "v":
			v, err := parseVec3(fields[1:])
			if err != nil {
				log.Printf("obj: line %d: invalid vertex: %v", lineNo, err)
				continue
			}
			vertices = append(vertices, v)

		case "vn":
			n, err := parseVec3(fields[1:])
			if err != nil {
				log.Printf("obj: line %d: invalid normal: %v", lineNo, err)
				continue
			}
			normals = append(normals, n)

		case "f":
			faceV, faceN, err := parseFace(fields[1:])
			if err != nil {
				log.Printf("obj: line %d: invalid face: %v", lineNo, err)
				continue
			}
			vi, ni := triangulate(faceV, faceN)
			vertexIndices = append(vertexIndices, vi...)
			normalIndices = append(normalIndices, ni...)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if len(normalIndices) == 0 {
		normalIndices = append([]int(nil), vertexIndices...)
	}

	if len(normals) == 0 || len(normals) != len(vertices) {
		log.Printf("obj: normals not provided or mismatched, synthesizing")
		normals = make([]math3d.Vec3, len(vertices))
		normalIndices = append([]int(nil), vertexIndices...)
		for i := 0; i < len(normalIndices)/3; i++ {
			in0 := normalIndices[i*3] - 1
			in1 := normalIndices[i*3+1] - 1
			in2 := normalIndices[i*3+2] - 1
			if in0 < 0 || in1 < 0 || in2 < 0 || in2 >= len(vertices) {
				continue
			}
			v0, v1, v2 := vertices[in0], vertices[in1], vertices[in2]
			n := v1.Sub(v0).Cross(v2.Sub(v0))
			normals[in0] = normals[in0].Add(n)
			normals[in1] = normals[in1].Add(n)
			normals[in2] = normals[in2].Add(n)
		}
	}

	var origin math3d.Vec3
	for _, v := range vertices {
		origin = origin.Add(v)
	}
	if len(vertices) > 0 {
		origin = origin.Scale(1.0 / float64(len(vertices)))
	}

	radius := 0.0
	for _, v := range vertices {
		if d := v.Sub(origin).LenSq(); d > radius {
			radius = d
		}
	}
	radius = math.Sqrt(radius)
	if radius == 0 {
		radius = 1
	}

	positions := make([]math3d.Vec3, len(vertices))
	for i, v := range vertices {
		positions[i] = v.Scale(1 / radius)
	}

	unitNormals := make([]math3d.Vec3, len(normals))
	for i, n := range normals {
		unitNormals[i] = n.Normalize()
	}

	for i := range vertexIndices {
		vertexIndices[i]--
	}
	for i := range normalIndices {
		normalIndices[i]--
	}

	return &Mesh{
		VertexPositions: positions,
		VertexNormals:   unitNormals,
		VertexIndices:   vertexIndices,
		NormalIndices:   normalIndices,
	}, nil
}

func parseVec3(fields []string) (math3d.Vec3, error) {
	if len(fields) < 3 {
		return math3d.Vec3{}, fmt.Errorf("expected 3 components, got %d", len(fields))
	}
	var v [3]float64
	for i := 0; i < 3; i++ {
		f, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return math3d.Vec3{}, err
		}
		v[i] = f
	}
	return math3d.V3(v[0], v[1], v[2]), nil
}

// parseFace reads "v", "v/vt", "v/vt/vn", or "v//vn" tokens, returning the
// vertex index list and the normal index list (empty if no `f` token in
// this face carries a normal reference).
func parseFace(fields []string) (vertexIdx, normalIdx []int, err error) {
	for _, tok := range fields {
		parts := strings.Split(tok, "/")
		if parts[0] != "" {
			v, err := strconv.Atoi(parts[0])
			if err != nil {
				return nil, nil, err
			}
			vertexIdx = append(vertexIdx, v)
		}
		if len(parts) > 2 && parts[2] != "" {
			n, err := strconv.Atoi(parts[2])
			if err != nil {
				return nil, nil, err
			}
			normalIdx = append(normalIdx, n)
		}
	}
	return vertexIdx, normalIdx, nil
}

// triangulate fan-triangulates a face's vertex (and, if present, normal)
// index list: unchanged for a triangle, split 1-2-3/1-3-4 for a quad, and
// fanned from index 0 for anything larger — which only produces correct
// results for convex polygons.
func triangulate(faceV, faceN []int) (vertexIndices, normalIndices []int) {
	switch {
	case len(faceV) == 3:
		vertexIndices = append(vertexIndices, faceV...)
		normalIndices = append(normalIndices, faceN...)

	case len(faceV) == 4:
		vertexIndices = append(vertexIndices,
			faceV[0], faceV[1], faceV[2],
			faceV[0], faceV[2], faceV[3])
		if len(faceN) == 4 {
			normalIndices = append(normalIndices,
				faceN[0], faceN[1], faceN[2],
				faceN[0], faceN[2], faceN[3])
		}

	case len(faceV) > 4:
		pivot := faceV[0]
		for i := 1; i < len(faceV)-1; i++ {
			vertexIndices = append(vertexIndices, pivot, faceV[i], faceV[i+1])
		}
		if len(faceN) > 4 {
			pivotN := faceN[0]
			for i := 1; i < len(faceN)-1; i++ {
				normalIndices = append(normalIndices, pivotN, faceN[i], faceN[i+1])
			}
		}
		log.Printf("obj: face with %d vertices fan-triangulated from vertex 0; non-convex polygons will render incorrectly", len(faceV))
	}
	return
}
