package math3d

import (
	"math"
	"testing"
)

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

func matApproxEqual(a, b Mat4, eps float64) bool {
	for i := range a {
		if !approxEqual(a[i], b[i], eps) {
			return false
		}
	}
	return true
}

func TestIdentityMulVec3(t *testing.T) {
	v := V3(1, 2, 3)
	got := Identity().MulVec3(v)
	if got != v {
		t.Errorf("Identity().MulVec3(%v) = %v, want %v", v, got, v)
	}
}

func TestTranslateRowConvention(t *testing.T) {
	// Translation lives in row 3; MulVec3 on a point must add it.
	m := Translate(V3(10, -5, 2))
	got := m.MulVec3(V3(1, 1, 1))
	want := V3(11, -4, 3)
	if got != want {
		t.Errorf("Translate.MulVec3 = %v, want %v", got, want)
	}
}

func TestMulVec3DirIgnoresTranslation(t *testing.T) {
	m := Translate(V3(10, -5, 2))
	got := m.MulVec3Dir(V3(1, 1, 1))
	want := V3(1, 1, 1)
	if got != want {
		t.Errorf("MulVec3Dir = %v, want %v (translation must not apply)", got, want)
	}
}

func TestRotateYQuarterTurn(t *testing.T) {
	// Rotating (0,0,1) by 90 degrees around Y should give approximately (1,0,0).
	m := RotateY(math.Pi / 2)
	got := m.MulVec3(V3(0, 0, 1))
	want := V3(1, 0, 0)
	if !approxEqual(got.X, want.X, 1e-9) || !approxEqual(got.Y, want.Y, 1e-9) || !approxEqual(got.Z, want.Z, 1e-9) {
		t.Errorf("RotateY(pi/2).MulVec3((0,0,1)) = %v, want ~%v", got, want)
	}
}

func TestMulComposesRowVectorOrder(t *testing.T) {
	a := Translate(V3(1, 0, 0))
	b := Translate(V3(0, 2, 0))
	combined := a.Mul(b)
	v := V3(0, 0, 0)
	got := combined.MulVec3(v)
	want := a.MulVec3(v)
	want = b.MulVec3(want)
	if got != want {
		t.Errorf("v*(a.Mul(b)) = %v, want (v*a)*b = %v", got, want)
	}
}

func TestInverseRoundTrip(t *testing.T) {
	m := Translate(V3(3, -2, 7)).Mul(RotateY(0.7)).Mul(Scale(V3(2, 2, 2)))
	inv := m.Inverse()
	product := m.Mul(inv)
	if !matApproxEqual(product, Identity(), 1e-4) {
		t.Errorf("M * inverse(M) = %v, want identity within 1e-4", product)
	}
}

func TestInverseSingularReturnsZero(t *testing.T) {
	// A matrix with a zero row is singular.
	var singular Mat4
	singular[0], singular[1], singular[2], singular[3] = 1, 0, 0, 0
	singular[15] = 1
	got := singular.Inverse()
	if got != (Mat4{}) {
		t.Errorf("Inverse of singular matrix = %v, want zero matrix", got)
	}
}

func TestTransposeInvolution(t *testing.T) {
	m := Mat4{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}
	if got := m.Transpose().Transpose(); got != m {
		t.Errorf("Transpose(Transpose(m)) = %v, want %v", got, m)
	}
}

func BenchmarkMatMul(b *testing.B) {
	x := Translate(V3(1, 2, 3))
	y := RotateY(0.5)
	for i := 0; i < b.N; i++ {
		_ = x.Mul(y)
	}
}
