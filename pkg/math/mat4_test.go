package math

import (
	"math"
	"testing"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	// Diagonal should be 1
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	// Off-diagonal should be 0
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
	if !m.IsIdentity() {
		t.Error("IsIdentity should be true for Identity()")
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(1, 2, 3)
	result := m.Mul(Identity())

	if result != m {
		t.Errorf("M * I should equal M: got %v, want %v", result, m)
	}
}

func TestTranslate(t *testing.T) {
	m := Translate(5, 10, 15)

	// Translation should be in column 4 (indices 12, 13, 14)
	if m[12] != 5 || m[13] != 10 || m[14] != 15 {
		t.Errorf("Translate: got (%f, %f, %f), want (5, 10, 15)", m[12], m[13], m[14])
	}
}

func TestMulPoint(t *testing.T) {
	tests := []struct {
		name string
		m    Mat4
		p    Vec3
		want Vec3
	}{
		{"identity", Identity(), Vec3{1, 2, 3}, Vec3{1, 2, 3}},
		{"translate", Translate(10, 20, 30), Vec3{1, 2, 3}, Vec3{11, 22, 33}},
		{"scale", Scale(2, 2, 2), Vec3{1, 2, 3}, Vec3{2, 4, 6}},
		{"scale then translate", Translate(1, 0, 0).Mul(Scale(2, 3, 4)), Vec3{1, 1, 1}, Vec3{3, 3, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.MulPoint(tt.p); got != tt.want {
				t.Errorf("MulPoint: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRotateY90(t *testing.T) {
	m := RotateY(float32(math.Pi / 2)) // 90 degrees
	result := m.MulPoint(Vec3{1, 0, 0})

	// After 90 degree Y rotation, (1,0,0) should become approximately (0,0,-1)
	if abs(result.X) > 0.001 || abs(result.Y) > 0.001 || abs(result.Z+1) > 0.001 {
		t.Errorf("RotateY 90: got %v, want (0, 0, -1)", result)
	}
}

func TestRotateX90(t *testing.T) {
	result := RotateX(Radians(90)).MulPoint(Vec3{0, 1, 0})

	// (0,1,0) rotates counter-clockwise onto +Z
	if abs(result.X) > 0.001 || abs(result.Y) > 0.001 || abs(result.Z-1) > 0.001 {
		t.Errorf("RotateX 90: got %v, want (0, 0, 1)", result)
	}
}

func TestComposeOrder(t *testing.T) {
	// Scale first, then rotate 90 degrees about Z, then translate.
	m := Compose(Vec3{1, 1, 0}, Vec3{0, 0, 90}, Vec3{2, 2, 2})
	got := m.MulPoint(Vec3{1, 0, 0})

	// (1,0,0) -> (2,0,0) -> (0,2,0) -> (1,3,0)
	if abs(got.X-1) > 0.001 || abs(got.Y-3) > 0.001 || abs(got.Z) > 0.001 {
		t.Errorf("Compose: got %v, want (1, 3, 0)", got)
	}
}

func TestComposeNeutral(t *testing.T) {
	m := Compose(Vec3{}, Vec3{}, Vec3{1, 1, 1})
	if !m.IsIdentity() {
		t.Errorf("Compose with neutral arguments should be identity, got %v", m)
	}
}

func TestNormalMatrixTranslation(t *testing.T) {
	n, ok := Translate(3, 4, 5).NormalMatrix()
	if !ok {
		t.Fatal("translation should have an invertible 3x3 block")
	}
	if n != Identity3() {
		t.Errorf("normal matrix of a translation should be identity, got %v", n)
	}
}

func TestNormalMatrixNonUniformScale(t *testing.T) {
	n, ok := Scale(2, 1, 1).NormalMatrix()
	if !ok {
		t.Fatal("scale should be invertible")
	}

	// A normal along X shrinks instead of stretching
	got := n.MulVec3(Vec3{1, 0, 0})
	if abs(got.X-0.5) > 1e-6 || got.Y != 0 || got.Z != 0 {
		t.Errorf("normal matrix X: got %v, want (0.5, 0, 0)", got)
	}
}

func TestNormalMatrixSingular(t *testing.T) {
	if _, ok := Scale(1, 0, 1).NormalMatrix(); ok {
		t.Error("expected singular matrix to report ok=false")
	}
}

func TestMat3Inverse(t *testing.T) {
	m := Mat3{
		2, 0, 1,
		1, 3, 0,
		0, 1, 4,
	}
	inv, ok := m.Inverse()
	if !ok {
		t.Fatal("matrix should be invertible")
	}

	p := m.Mul(inv)
	id := Identity3()
	for i := 0; i < 9; i++ {
		if abs(p[i]-id[i]) > 1e-5 {
			t.Errorf("M * inverse(M) element %d: got %f, want %f", i, p[i], id[i])
		}
	}
}

func TestMat3Transpose(t *testing.T) {
	m := Mat3{1, 2, 3, 4, 5, 6, 7, 8, 9}
	want := Mat3{1, 4, 7, 2, 5, 8, 3, 6, 9}
	if got := m.Transpose(); got != want {
		t.Errorf("Transpose: got %v, want %v", got, want)
	}
}

func TestMat4Mat3(t *testing.T) {
	m := Compose(Vec3{7, 8, 9}, Vec3{}, Vec3{2, 3, 4})
	want := Mat3{2, 0, 0, 0, 3, 0, 0, 0, 4}
	if got := m.Mat3(); got != want {
		t.Errorf("Mat3: got %v, want %v", got, want)
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
