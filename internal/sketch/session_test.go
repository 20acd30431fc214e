package sketch

import (
	"errors"
	gomath "math"
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/sketch3d/internal/trackball"
	"github.com/Faultbox/sketch3d/pkg/math"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	s, err := NewSession(DefaultParams(), nil, nil)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return s
}

// drawCircle drags a circle of radius r around (cx, cy), one sample every
// 2 degrees.
func drawCircle(s *Session, cx, cy, r float64) {
	for i := 0; i < 180; i++ {
		a := float64(i) * 2 * gomath.Pi / 180
		x := float32(cx + r*gomath.Cos(a))
		y := float32(cy + r*gomath.Sin(a))
		if i == 0 {
			s.PointerDown(x, y)
			continue
		}
		s.PointerDrag(x, y)
	}
	s.PointerUp()
}

func TestNewSessionInvalidParams(t *testing.T) {
	p := DefaultParams()
	p.BaseStep = 16
	if _, err := NewSession(p, nil, nil); !errors.Is(err, ErrBaseStep) {
		t.Errorf("expected ErrBaseStep, got %v", err)
	}
}

func TestTriangulateEmpty(t *testing.T) {
	s := newTestSession(t)
	if _, err := s.Triangulate(); !errors.Is(err, ErrNoStroke) {
		t.Errorf("expected ErrNoStroke, got %v", err)
	}
	if s.Mesh() != nil {
		t.Error("mesh should stay nil")
	}
}

func TestTriangulateCircle(t *testing.T) {
	s := newTestSession(t)
	drawCircle(s, 200, 200, 100)

	if !s.Stroke().Closed() {
		t.Fatal("pointer up should close the stroke")
	}
	if s.Tracking() {
		t.Error("tracking should stop on pointer up")
	}

	m, err := s.Triangulate()
	if err != nil {
		t.Fatalf("Triangulate: %v", err)
	}

	b := s.Boundary()
	if len(b) < 4 {
		t.Fatalf("expected a boundary of at least 4 points, got %d", len(b))
	}
	if got, want := s.Spine().Len(), len(b)-3; got != want {
		t.Errorf("spine: got %d segments, want %d", got, want)
	}
	if !s.Spine().ValidFor(b) {
		t.Error("spine should be valid for its boundary")
	}

	rings := s.Rings()
	if want := (s.Spine().Len() + 1) / 2; len(rings) != want {
		t.Errorf("rings: got %d, want %d", len(rings), want)
	}
	n := DefaultParams().RingSize()
	if got, want := len(m.Triangles), 2*n*len(rings); got != want {
		t.Errorf("triangles: got %d, want %d", got, want)
	}
	if err := m.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
	if !m.IsClosed() {
		t.Error("circle mesh should be closed")
	}

	if m.Vertices[0] != s.Stroke().First() {
		t.Errorf("first vertex: got %v, want stroke start %v", m.Vertices[0], s.Stroke().First())
	}
	if last := m.Vertices[len(m.Vertices)-1]; last != b[s.Spine().LastInShape].Pos {
		t.Errorf("last vertex: got %v, want %v", last, b[s.Spine().LastInShape].Pos)
	}

	// The swept rings stay within the circle's bounding sphere
	center := math.Vec3{X: 200, Y: 200}
	for i, v := range m.Vertices {
		if d := v.Distance(center); d > 101 {
			t.Errorf("vertex %d at distance %v from center", i, d)
			break
		}
	}
}

func TestSetModeBuildsMesh(t *testing.T) {
	s := newTestSession(t)
	drawCircle(s, 300, 200, 80)

	if err := s.SetMode(ModeViewing); err != nil {
		t.Fatalf("SetMode: %v", err)
	}
	if s.Mode() != ModeViewing {
		t.Errorf("mode: got %v, want viewing", s.Mode())
	}
	if s.Mesh().Empty() {
		t.Fatal("entering viewing mode should build the mesh")
	}

	// Drawing is ignored while viewing
	n := s.Stroke().Len()
	s.PointerDown(10, 10)
	s.PointerDrag(50, 50)
	s.PointerUp()
	if s.Stroke().Len() != n {
		t.Error("pointer events should be ignored in viewing mode")
	}

	// Back and forth keeps the existing mesh
	m := s.Mesh()
	if err := s.SetMode(ModeDrawing); err != nil {
		t.Fatalf("SetMode: %v", err)
	}
	if err := s.SetMode(ModeViewing); err != nil {
		t.Fatalf("SetMode: %v", err)
	}
	if s.Mesh() != m {
		t.Error("mesh should not be rebuilt for the same stroke")
	}
}

func TestSetModeWithoutStroke(t *testing.T) {
	s := newTestSession(t)
	if err := s.SetMode(ModeViewing); !errors.Is(err, ErrNoStroke) {
		t.Errorf("expected ErrNoStroke, got %v", err)
	}
	if s.Mode() != ModeDrawing {
		t.Errorf("mode after failed switch: got %v, want %v", s.Mode(), ModeDrawing)
	}
}

// dragOpen starts a stroke at (100, 100) and drags it 60 samples without
// releasing the button.
func dragOpen(s *Session) {
	s.PointerDown(100, 100)
	for i := 1; i <= 60; i++ {
		s.PointerDrag(float32(100+3*i), float32(100+i))
	}
}

func assertClosedBoundary(t *testing.T, s *Session) {
	t.Helper()
	if !s.Stroke().Closed() {
		t.Fatal("stroke should be closed")
	}
	pts := s.Stroke().Points()
	if pts[len(pts)-1] != s.Stroke().First() {
		t.Errorf("stroke end: got %v, want %v", pts[len(pts)-1], s.Stroke().First())
	}
	b := s.Boundary()
	if len(b) == 0 {
		t.Fatal("no boundary points")
	}
	if b[0].Pos != s.Stroke().First() || b[len(b)-1].Pos != s.Stroke().First() {
		t.Errorf("boundary: first %v, last %v, want both %v", b[0].Pos, b[len(b)-1].Pos, s.Stroke().First())
	}
}

func TestSetModeClosesStrokeMidDrag(t *testing.T) {
	s := newTestSession(t)
	dragOpen(s)
	if err := s.SetMode(ModeViewing); err != nil {
		t.Fatalf("SetMode: %v", err)
	}
	if s.Tracking() {
		t.Error("tracking should stop when leaving drawing mode")
	}
	assertClosedBoundary(t, s)

	m := s.Mesh()
	s.PointerUp()
	if s.Mesh() != m || !s.Stroke().Closed() {
		t.Error("late pointer-up should not change the stroke or mesh")
	}
}

func TestTriangulateClosesStrokeMidDrag(t *testing.T) {
	s := newTestSession(t)
	dragOpen(s)
	if _, err := s.Triangulate(); err != nil {
		t.Fatalf("Triangulate: %v", err)
	}
	if s.Tracking() {
		t.Error("tracking should stop once the stroke is triangulated")
	}
	assertClosedBoundary(t, s)

	// Samples after triangulation are not appended to a closed stroke
	n := s.Stroke().Len()
	s.PointerDrag(500, 500)
	if s.Stroke().Len() != n {
		t.Errorf("samples: got %d, want %d", s.Stroke().Len(), n)
	}
}

func TestPointerDownStartsNewStroke(t *testing.T) {
	s := newTestSession(t)
	drawCircle(s, 200, 200, 50)
	if _, err := s.Triangulate(); err != nil {
		t.Fatalf("Triangulate: %v", err)
	}

	s.PointerDown(20, 30)
	if s.Stroke().Len() != 1 || s.Stroke().Closed() {
		t.Errorf("expected a fresh open stroke, got %d samples", s.Stroke().Len())
	}
	if s.Mesh() != nil || s.Boundary() != nil {
		t.Error("derived buffers should be cleared")
	}
	if !s.Tracking() {
		t.Error("should be tracking after pointer down")
	}
}

func TestSessionReset(t *testing.T) {
	tb := trackball.New()
	s, err := NewSession(DefaultParams(), tb, nil)
	if err != nil {
		t.Fatal(err)
	}
	drawCircle(s, 200, 200, 60)
	if _, err := s.Triangulate(); err != nil {
		t.Fatal(err)
	}
	tb.SetMatrix(math.Translate(1, 2, 3))

	s.Reset()
	if s.Stroke().Len() != 0 || s.Mesh() != nil || len(s.Rings()) != 0 {
		t.Error("Reset should clear all buffers")
	}
	if s.Spine().LastInShape != -1 {
		t.Errorf("LastInShape: got %d, want -1", s.Spine().LastInShape)
	}
	if !tb.Matrix().ApproxEqual(math.Identity(), 1e-6) {
		t.Error("Reset should reset the trackball")
	}
}

func TestSetStroke(t *testing.T) {
	s := newTestSession(t)
	pts := []math.Vec2{{X: 10, Y: 10}, {X: 100, Y: 10}, {X: 100, Y: 100}, {X: 10, Y: 100}}
	s.SetStroke(pts)
	if !s.Stroke().Closed() {
		t.Fatal("SetStroke should close the stroke")
	}
	got := s.Stroke().Points()
	if got[len(got)-1] != got[0] {
		t.Error("closed stroke should end at its first sample")
	}
	if _, err := s.Triangulate(); err != nil {
		t.Fatalf("Triangulate: %v", err)
	}
}

func TestSaveWithoutMesh(t *testing.T) {
	s := newTestSession(t)
	dir := t.TempDir()
	if err := s.SaveMesh(filepath.Join(dir, "a.obj")); !errors.Is(err, ErrNoMesh) {
		t.Errorf("SaveMesh: expected ErrNoMesh, got %v", err)
	}
	if err := s.ExportSTL(filepath.Join(dir, "a.stl")); !errors.Is(err, ErrNoMesh) {
		t.Errorf("ExportSTL: expected ErrNoMesh, got %v", err)
	}
	if err := s.SaveStroke(filepath.Join(dir, "a.txt")); !errors.Is(err, ErrNoStroke) {
		t.Errorf("SaveStroke: expected ErrNoStroke, got %v", err)
	}
}

func TestSaveLoadMesh(t *testing.T) {
	s := newTestSession(t)
	drawCircle(s, 200, 200, 100)
	orig, err := s.Triangulate()
	if err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "circle.obj")
	if err := s.SaveMesh(path); err != nil {
		t.Fatalf("SaveMesh: %v", err)
	}
	if err := s.ExportSTL(filepath.Join(dir, "circle.stl")); err != nil {
		t.Fatalf("ExportSTL: %v", err)
	}

	other := newTestSession(t)
	if err := other.LoadMesh(path); err != nil {
		t.Fatalf("LoadMesh: %v", err)
	}
	m := other.Mesh()
	if len(m.Vertices) != len(orig.Vertices) || len(m.Triangles) != len(orig.Triangles) {
		t.Fatalf("loaded %d/%d, want %d/%d",
			len(m.Vertices), len(m.Triangles), len(orig.Vertices), len(orig.Triangles))
	}
	for i := range m.Triangles {
		if m.Triangles[i] != orig.Triangles[i] {
			t.Fatalf("triangle %d: got %v, want %v", i, m.Triangles[i], orig.Triangles[i])
		}
	}
	if other.Mode() != ModeViewing {
		t.Error("loading a mesh should switch to viewing mode")
	}
}

func TestLoadMeshFailureKeepsState(t *testing.T) {
	s := newTestSession(t)
	drawCircle(s, 200, 200, 100)
	m, err := s.Triangulate()
	if err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.obj")
	if err := os.WriteFile(bad, []byte("v 1 2 3\nf 1 2 9\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := s.LoadMesh(filepath.Join(dir, "missing.obj")); err == nil {
		t.Error("expected an error for a missing file")
	}
	if err := s.LoadMesh(bad); err == nil {
		t.Error("expected an error for an out-of-range face")
	}
	if s.Mesh() != m || s.Mode() != ModeDrawing || s.Stroke().Len() == 0 {
		t.Error("failed load should leave the session untouched")
	}
}

func TestSaveStroke(t *testing.T) {
	s := newTestSession(t)
	drawCircle(s, 200, 200, 40)
	path := filepath.Join(t.TempDir(), "stroke.txt")
	if err := s.SaveStroke(path); err != nil {
		t.Fatalf("SaveStroke: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil || info.Size() == 0 {
		t.Errorf("stroke file not written: %v", err)
	}
}
