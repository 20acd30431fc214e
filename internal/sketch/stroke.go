package sketch

import (
	"github.com/Faultbox/sketch3d/pkg/math"
)

// Stroke is the ordered list of pointer samples for one closed curve.
type Stroke struct {
	points      []math.Vec3
	minDist     float32
	closingStep float32
	closed      bool
}

// NewStroke creates an empty stroke that drops samples closer than minDist to
// the previous one and closes with interpolated points no more than
// closingStep apart.
func NewStroke(minDist, closingStep float32) *Stroke {
	return &Stroke{
		points:      make([]math.Vec3, 0, 256),
		minDist:     minDist,
		closingStep: closingStep,
	}
}

// Begin discards any previous stroke and records the first sample.
func (s *Stroke) Begin(x, y float32) {
	s.Reset()
	s.points = append(s.points, math.Vec3{X: x, Y: y})
}

// Add appends a sample if it is far enough from the previous one. It returns
// whether the sample was kept.
func (s *Stroke) Add(x, y float32) bool {
	if s.closed {
		return false
	}
	p := math.Vec3{X: x, Y: y}
	if n := len(s.points); n > 0 && s.points[n-1].Distance(p) < s.minDist {
		return false
	}
	s.points = append(s.points, p)
	return true
}

// Close connects the last sample back to the first with midpoint-subdivided
// closing points and repeats the first sample at the end. Strokes with fewer
// than two samples are left open.
func (s *Stroke) Close() {
	if s.closed || len(s.points) < 2 {
		return
	}
	first := s.points[0]
	last := s.points[len(s.points)-1]
	s.points = s.subdivide(s.points, last, first)
	if last != first {
		s.points = append(s.points, first)
	}
	s.closed = true
}

// subdivide appends the midpoints between a and b, in order, until no gap is
// at least closingStep long.
func (s *Stroke) subdivide(dst []math.Vec3, a, b math.Vec3) []math.Vec3 {
	if a.Distance(b) < s.closingStep {
		return dst
	}
	mid := a.Midpoint(b)
	dst = s.subdivide(dst, a, mid)
	dst = append(dst, mid)
	return s.subdivide(dst, mid, b)
}

// Reset empties the stroke.
func (s *Stroke) Reset() {
	s.points = s.points[:0]
	s.closed = false
}

// Len returns the number of samples.
func (s *Stroke) Len() int { return len(s.points) }

// Closed reports whether Close has run since the last Begin.
func (s *Stroke) Closed() bool { return s.closed }

// Points returns the samples. The slice is owned by the stroke.
func (s *Stroke) Points() []math.Vec3 { return s.points }

// First returns the first sample, or the zero vector for an empty stroke.
func (s *Stroke) First() math.Vec3 {
	if len(s.points) == 0 {
		return math.Vec3{}
	}
	return s.points[0]
}

// SetPoints replaces the stroke with pts, for strokes loaded from a file.
func (s *Stroke) SetPoints(pts []math.Vec2) {
	s.Reset()
	for _, p := range pts {
		s.points = append(s.points, p.Vec3())
	}
}
