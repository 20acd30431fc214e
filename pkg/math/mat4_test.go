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
}

func TestMulIdentity(t *testing.T) {
	m := Translate(1, 2, 3)
	id := Identity()
	result := m.Mul(id)

	for i := 0; i < 16; i++ {
		if result[i] != m[i] {
			t.Errorf("M * I should equal M, element %d: got %f, want %f", i, result[i], m[i])
		}
	}
}

func TestTranslate(t *testing.T) {
	m := Translate(5, 10, 15)

	// Translation lives in column 3
	if m.At(0, 3) != 5 || m.At(1, 3) != 10 || m.At(2, 3) != 15 {
		t.Errorf("Translate: got (%f, %f, %f), want (5, 10, 15)", m[12], m[13], m[14])
	}
}

func TestSetAt(t *testing.T) {
	m := Identity()
	m.Set(1, 3, 7)
	if m[13] != 7 {
		t.Errorf("Set(1,3): got m[13]=%f, want 7", m[13])
	}
	if m.At(1, 3) != 7 {
		t.Errorf("At(1,3): got %f, want 7", m.At(1, 3))
	}
}

func TestTransformVec3(t *testing.T) {
	m := Translate(10, 20, 30)
	got := m.TransformVec3(Vec3{1, 2, 3})
	want := Vec3{11, 22, 33}
	if got != want {
		t.Errorf("TransformVec3: got %v, want %v", got, want)
	}

	got = Scale(2, 2, 2).TransformVec3(Vec3{1, 2, 3})
	want = Vec3{2, 4, 6}
	if got != want {
		t.Errorf("TransformVec3 with scale: got %v, want %v", got, want)
	}
}

func TestRotateZ90(t *testing.T) {
	m := RotateZ(float32(math.Pi / 2))
	got := m.TransformVec3(Vec3{1, 0, 0})

	// Counter-clockwise: X axis goes to Y axis
	if abs(got.X) > 0.001 || abs(got.Y-1) > 0.001 || abs(got.Z) > 0.001 {
		t.Errorf("RotateZ 90: got %v, want (0, 1, 0)", got)
	}
}

func TestRotateAxisMatchesRotateZ(t *testing.T) {
	angle := float32(0.7)
	a := RotateAxis(Vec3{0, 0, 1}, angle)
	b := RotateZ(angle)
	if !a.ApproxEqual(b, 1e-6) {
		t.Errorf("RotateAxis(z) = %v, want %v", a, b)
	}
}

func TestRotateAxisDegrees(t *testing.T) {
	// Unnormalized axis is accepted
	m := RotateAxisDegrees(Vec3{0, 0, 5}, 90)
	got := m.TransformVec3(Vec3{1, 0, 0})
	if abs(got.X) > 0.001 || abs(got.Y-1) > 0.001 {
		t.Errorf("RotateAxisDegrees 90 about z: got %v, want (0, 1, 0)", got)
	}

	if id := RotateAxisDegrees(Vec3{}, 45); id != Identity() {
		t.Errorf("zero axis should give identity, got %v", id)
	}
}

func TestPerspective(t *testing.T) {
	fov := float32(math.Pi / 4) // 45 degrees
	aspect := float32(1.0)
	near := float32(0.1)
	far := float32(100.0)

	m := Perspective(fov, aspect, near, far)

	// Should be a valid projection matrix (not identity)
	if m[0] == 0 || m[5] == 0 {
		t.Error("Perspective should have non-zero elements")
	}
	// Element [15] should be 0 for perspective projection
	if m[15] != 0 {
		t.Errorf("Perspective [15] should be 0, got %f", m[15])
	}
	// Element [11] should be -1 for perspective projection
	if m[11] != -1 {
		t.Errorf("Perspective [11] should be -1, got %f", m[11])
	}
}

func TestLookAt(t *testing.T) {
	eye := Vec3{0, 0, 5}
	center := Vec3{0, 0, 0}
	up := Vec3{0, 1, 0}

	m := LookAt(eye, center, up)

	// The eye maps to the view-space origin
	got := m.TransformVec3(eye)
	if got.Length() > 1e-5 {
		t.Errorf("LookAt eye should map to origin, got %v", got)
	}
	if m[15] != 1 {
		t.Errorf("LookAt [15] should be 1, got %f", m[15])
	}
}

func TestOrtho(t *testing.T) {
	m := Ortho(0, 800, 0, 500, -1, 1)
	got := m.TransformVec3(Vec3{800, 500, 0})
	if abs(got.X-1) > 1e-5 || abs(got.Y-1) > 1e-5 {
		t.Errorf("Ortho top-right: got %v, want (1, 1, _)", got)
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
