package mesh

import (
	"errors"
	gomath "math"
	"testing"

	"github.com/Faultbox/sketch3d/pkg/math"
)

// tetrahedron returns a closed, consistently wound tetrahedron.
func tetrahedron() *Mesh {
	return &Mesh{
		Vertices: []math.Vec3{
			{X: 0, Y: 0, Z: 0},
			{X: 1, Y: 0, Z: 0},
			{X: 0, Y: 1, Z: 0},
			{X: 0, Y: 0, Z: 1},
		},
		Triangles: []Triangle{
			{0, 2, 1},
			{0, 1, 3},
			{0, 3, 2},
			{1, 2, 3},
		},
	}
}

func TestBounds(t *testing.T) {
	m := tetrahedron()
	b := m.Bounds()
	if b.Min != (math.Vec3{}) {
		t.Errorf("Bounds min: got %v, want origin", b.Min)
	}
	if b.Max != (math.Vec3{X: 1, Y: 1, Z: 1}) {
		t.Errorf("Bounds max: got %v, want (1,1,1)", b.Max)
	}
	if b.Size() != 1 {
		t.Errorf("Bounds size: got %v, want 1", b.Size())
	}
	if c := b.Center(); c != (math.Vec3{X: 0.5, Y: 0.5, Z: 0.5}) {
		t.Errorf("Bounds center: got %v", c)
	}
}

func TestIsClosed(t *testing.T) {
	m := tetrahedron()
	if !m.IsClosed() {
		t.Error("tetrahedron should be closed")
	}

	// Dropping a face opens it
	m.Triangles = m.Triangles[:3]
	if m.IsClosed() {
		t.Error("tetrahedron with a missing face should not be closed")
	}

	// Flipping one face breaks orientation
	m = tetrahedron()
	m.Triangles[0] = Triangle{0, 1, 2}
	if m.IsClosed() {
		t.Error("inconsistently wound tetrahedron should not be closed")
	}
}

func TestFaceNormal(t *testing.T) {
	m := tetrahedron()
	// Face {0,2,1} lies in z=0 and winds clockwise seen from +z
	n := m.FaceNormal(0)
	if n.Z >= 0 {
		t.Errorf("FaceNormal(0) = %v, want negative Z", n)
	}
}

func TestValidate(t *testing.T) {
	m := tetrahedron()
	if err := m.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	m.Triangles = append(m.Triangles, Triangle{0, 1, 9})
	if err := m.Validate(); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("Validate: got %v, want ErrIndexOutOfRange", err)
	}

	m = tetrahedron()
	m.Vertices[2].Y = float32(gomath.NaN())
	if err := m.Validate(); !errors.Is(err, ErrNonFinite) {
		t.Errorf("Validate: got %v, want ErrNonFinite", err)
	}
}

func TestClear(t *testing.T) {
	m := tetrahedron()
	m.Clear()
	if !m.Empty() || len(m.Vertices) != 0 {
		t.Errorf("Clear left %d vertices, %d triangles", len(m.Vertices), len(m.Triangles))
	}
}
