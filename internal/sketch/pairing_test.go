package sketch

import (
	"reflect"
	"testing"

	"github.com/Faultbox/sketch3d/pkg/math"
)

func boundaryOf(pts ...math.Vec3) []BoundaryPoint {
	b := make([]BoundaryPoint, len(pts))
	for i, p := range pts {
		b[i] = BoundaryPoint{Index: i, Pos: p}
	}
	return b
}

func nPoints(m int) []BoundaryPoint {
	pts := make([]math.Vec3, m)
	for i := range pts {
		pts[i] = math.Vec3{X: float32(i + 1), Y: float32(i*i + 1)}
	}
	return boundaryOf(pts...)
}

func TestPairSix(t *testing.T) {
	s := Pair(nPoints(6))
	want := []SpineSegment{{1, 5}, {5, 2}, {2, 4}}
	if !reflect.DeepEqual(s.Segments, want) {
		t.Errorf("segments: got %v, want %v", s.Segments, want)
	}
	if s.LastInShape != 3 {
		t.Errorf("LastInShape: got %d, want 3", s.LastInShape)
	}
}

func TestPairFive(t *testing.T) {
	s := Pair(nPoints(5))
	want := []SpineSegment{{1, 4}, {4, 2}}
	if !reflect.DeepEqual(s.Segments, want) {
		t.Errorf("segments: got %v, want %v", s.Segments, want)
	}
	if s.LastInShape != 3 {
		t.Errorf("LastInShape: got %d, want 3", s.LastInShape)
	}
}

func TestPairCounts(t *testing.T) {
	for m := 0; m <= 40; m++ {
		b := nPoints(m)
		s := Pair(b)

		want := 0
		if m >= 3 {
			want = m - 3
		}
		if s.Len() != want {
			t.Errorf("m=%d: got %d segments, want %d", m, s.Len(), want)
		}
		if m < 2 {
			if s.LastInShape != -1 {
				t.Errorf("m=%d: LastInShape %d, want -1", m, s.LastInShape)
			}
			continue
		}
		if !s.ValidFor(b) {
			t.Errorf("m=%d: spine not valid for its own boundary", m)
		}
		// Chords never touch the start point and always cross the meeting point's sides
		for _, seg := range s.Segments {
			if seg.First == 0 || seg.Second == 0 || seg.First == seg.Second {
				t.Errorf("m=%d: bad segment %v", m, seg)
			}
		}
	}
}

func TestSpineValidFor(t *testing.T) {
	b := nPoints(8)
	s := Pair(b)
	if !s.ValidFor(b) {
		t.Fatal("spine should be valid for its boundary")
	}
	if s.ValidFor(b[:5]) {
		t.Error("spine should be invalid after the boundary shrinks")
	}
	if s.ValidFor(nPoints(9)) {
		t.Error("spine should be invalid for a different boundary")
	}
}

func TestCloseChords(t *testing.T) {
	b := boundaryOf(
		math.Vec3{X: 0, Y: -20},
		math.Vec3{X: 0, Y: 0},
		math.Vec3{X: 5, Y: 1},
		math.Vec3{X: 5, Y: 50},
		math.Vec3{X: 10, Y: 0},
	)
	s := Pair(b)
	// (1,4) runs past point 2 at distance 1
	if got := CloseChords(b, s, 2); got != 1 {
		t.Errorf("CloseChords: got %d, want 1", got)
	}
	if got := CloseChords(b, s, 0.5); got != 0 {
		t.Errorf("CloseChords with tight limit: got %d, want 0", got)
	}
}

func TestIsClose(t *testing.T) {
	a := math.Vec3{X: 0, Y: 0}
	b := math.Vec3{X: 10, Y: 0}
	if !IsClose(math.Vec3{X: 3, Y: 1}, a, b, 2) {
		t.Error("point 1 away should be close with limit 2")
	}
	if IsClose(math.Vec3{X: 3, Y: 3}, a, b, 2) {
		t.Error("point 3 away should not be close with limit 2")
	}
}
