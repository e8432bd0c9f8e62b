package math3d

import "math"

// Mat4 is a 4x4 matrix stored row-major, used with the row-vector
// convention: a point is transformed as v' = v * M, and translation
// lives in row 3 (not column 3).
//
// Memory layout (row*4 + col):
// |  0  1  2  3 |   row 0 = X basis
// |  4  5  6  7 |   row 1 = Y basis
// |  8  9 10 11 |   row 2 = Z basis
// | 12 13 14 15 |   row 3 = translation (Tx, Ty, Tz, 1)
type Mat4 [16]float64

// Identity returns the identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translate creates a translation matrix with t in the last row.
func Translate(t Vec3) Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		t.X, t.Y, t.Z, 1,
	}
}

// Scale creates a non-uniform scaling matrix.
func Scale(v Vec3) Mat4 {
	return Mat4{
		v.X, 0, 0, 0,
		0, v.Y, 0, 0,
		0, 0, v.Z, 0,
		0, 0, 0, 1,
	}
}

// ScaleUniform creates a uniform scaling matrix.
func ScaleUniform(s float64) Mat4 {
	return Scale(V3(s, s, s))
}

// RotateX creates a rotation matrix around the X axis (row-vector convention).
func RotateX(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat4{
		1, 0, 0, 0,
		0, c, s, 0,
		0, -s, c, 0,
		0, 0, 0, 1,
	}
}

// RotateY creates a rotation matrix around the Y axis (row-vector convention).
func RotateY(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat4{
		c, 0, -s, 0,
		0, 1, 0, 0,
		s, 0, c, 0,
		0, 0, 0, 1,
	}
}

// RotateZ creates a rotation matrix around the Z axis (row-vector convention).
func RotateZ(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat4{
		c, s, 0, 0,
		-s, c, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Mul multiplies two matrices: the combined transform of applying a then b
// to a row vector, i.e. v*(a.Mul(b)) == (v*a)*b.
func (a Mat4) Mul(b Mat4) Mat4 {
	var m Mat4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += a[row*4+k] * b[k*4+col]
			}
			m[row*4+col] = sum
		}
	}
	return m
}

// MulVec3 transforms a Vec3 as a point (row vector, w=1), including translation.
func (m Mat4) MulVec3(v Vec3) Vec3 {
	return Vec3{
		X: v.X*m[0] + v.Y*m[4] + v.Z*m[8] + m[12],
		Y: v.X*m[1] + v.Y*m[5] + v.Z*m[9] + m[13],
		Z: v.X*m[2] + v.Y*m[6] + v.Z*m[10] + m[14],
	}
}

// MulVec3Dir transforms a Vec3 as a direction (row vector, w=0, no translation).
func (m Mat4) MulVec3Dir(v Vec3) Vec3 {
	return Vec3{
		X: v.X*m[0] + v.Y*m[4] + v.Z*m[8],
		Y: v.X*m[1] + v.Y*m[5] + v.Z*m[9],
		Z: v.X*m[2] + v.Y*m[6] + v.Z*m[10],
	}
}

// MulVec4 transforms a Vec4 as a row vector.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	return Vec4{
		X: v.X*m[0] + v.Y*m[4] + v.Z*m[8] + v.W*m[12],
		Y: v.X*m[1] + v.Y*m[5] + v.Z*m[9] + v.W*m[13],
		Z: v.X*m[2] + v.Y*m[6] + v.Z*m[10] + v.W*m[14],
		W: v.X*m[3] + v.Y*m[7] + v.Z*m[11] + v.W*m[15],
	}
}

// Transpose returns the transposed matrix.
func (m Mat4) Transpose() Mat4 {
	var t Mat4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			t[col*4+row] = m[row*4+col]
		}
	}
	return t
}

// Get returns the element at (row, col).
func (m Mat4) Get(row, col int) float64 {
	return m[row*4+col]
}

// Set sets the element at (row, col).
func (m *Mat4) Set(row, col int, val float64) {
	m[row*4+col] = val
}

// Translation extracts the translation row.
func (m Mat4) Translation() Vec3 {
	return Vec3{m[12], m[13], m[14]}
}

// SetTranslation overwrites the translation row.
func (m *Mat4) SetTranslation(v Vec3) {
	m[12] = v.X
	m[13] = v.Y
	m[14] = v.Z
}

// Basis extracts the upper-left 3x3 (the X/Y/Z basis rows) as a Mat3.
func (m Mat4) Basis() Mat3 {
	return Mat3{
		I: Vec3{m[0], m[1], m[2]},
		J: Vec3{m[4], m[5], m[6]},
		K: Vec3{m[8], m[9], m[10]},
	}
}

// Inverse computes the matrix inverse via Gauss-Jordan elimination with
// partial pivoting. It returns the zero matrix if the matrix is singular
// (pivot magnitude below 1e-6) rather than erroring: callers that invert a
// degenerate transform get a degenerate result, not a panic.
func (m Mat4) Inverse() Mat4 {
	var a [4][8]float64
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			a[r][c] = m[r*4+c]
		}
		a[r][4+r] = 1
	}

	for col := 0; col < 4; col++ {
		pivotRow := col
		maxVal := math.Abs(a[col][col])
		for r := col + 1; r < 4; r++ {
			if v := math.Abs(a[r][col]); v > maxVal {
				maxVal = v
				pivotRow = r
			}
		}
		if maxVal < 1e-6 {
			return Mat4{}
		}
		a[col], a[pivotRow] = a[pivotRow], a[col]

		pivot := a[col][col]
		for c := 0; c < 8; c++ {
			a[col][c] /= pivot
		}

		for r := 0; r < 4; r++ {
			if r == col {
				continue
			}
			factor := a[r][col]
			for c := 0; c < 8; c++ {
				a[r][c] -= factor * a[col][c]
			}
		}
	}

	var inv Mat4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			inv[r*4+c] = a[r][4+c]
		}
	}
	return inv
}
