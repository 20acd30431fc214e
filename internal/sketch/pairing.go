package sketch

import (
	"fmt"

	"github.com/Faultbox/sketch3d/pkg/math"
)

// SpineSegment pairs two boundary points that face each other across the
// shape. First is the point whose cursor moved; both are indices into the
// boundary slice the spine was built from.
type SpineSegment struct {
	First  int
	Second int
}

// Spine is the ordered list of chords across the shape plus the boundary
// point where the two pairing cursors met, which caps the far end of the
// mesh. A Spine stays valid only until its boundary slice changes.
type Spine struct {
	Segments    []SpineSegment
	LastInShape int

	boundaryLen int
}

// Pair walks a forward cursor from index 1 and a backward cursor from the
// last index, alternating turns, pairing the point under the moving cursor
// with the point under the other one. When the cursors meet the meeting point
// becomes LastInShape and the final chord, which ends there, is dropped.
//
// For m boundary points the walk takes m-2 turns and yields max(m-3, 0)
// segments. Fewer than two points give an empty spine with LastInShape -1.
func Pair(b []BoundaryPoint) Spine {
	m := len(b)
	if m < 2 {
		return Spine{LastInShape: -1, boundaryLen: m}
	}

	s := Spine{
		Segments:    make([]SpineSegment, 0, m),
		boundaryLen: m,
	}
	forward, back := 1, m-1
	forwardTurn := true
	turns := 0
	for forward != back {
		if turns++; turns > m-2 {
			panic(fmt.Sprintf("sketch: pairing exceeded %d turns", m-2))
		}
		if forwardTurn {
			s.Segments = append(s.Segments, SpineSegment{First: forward, Second: back})
			forward++
		} else {
			s.Segments = append(s.Segments, SpineSegment{First: back, Second: forward})
			back--
		}
		forwardTurn = !forwardTurn
	}

	s.LastInShape = forward
	if n := len(s.Segments); n > 0 {
		s.LastInShape = s.Segments[n-1].Second
		s.Segments = s.Segments[:n-1]
	}
	return s
}

// ValidFor reports whether the spine still indexes into b.
func (s Spine) ValidFor(b []BoundaryPoint) bool {
	if s.boundaryLen != len(b) {
		return false
	}
	if s.LastInShape >= len(b) {
		return false
	}
	for _, seg := range s.Segments {
		if seg.First < 0 || seg.First >= len(b) || seg.Second < 0 || seg.Second >= len(b) {
			return false
		}
	}
	return true
}

// Len returns the number of segments.
func (s Spine) Len() int { return len(s.Segments) }

// IsClose reports whether p lies within limit of the line through a and b.
func IsClose(p, a, b math.Vec3, limit float64) bool {
	return math.PointLineDistance(p, a, b) < limit
}

// CloseChords counts chords that pass within limit of a boundary point other
// than their own endpoints. A high count means the pairing cut across thin
// or self-touching parts of the outline.
func CloseChords(b []BoundaryPoint, s Spine, limit float64) int {
	n := 0
	for _, seg := range s.Segments {
		a, c := b[seg.First].Pos, b[seg.Second].Pos
		lo, hi := min(seg.First, seg.Second), max(seg.First, seg.Second)
		for k := lo + 1; k < hi; k++ {
			if IsClose(b[k].Pos, a, c, limit) && between(b[k].Pos, a, c) {
				n++
				break
			}
		}
	}
	return n
}

// between reports whether the projection of p onto ab falls inside the segment.
func between(p, a, b math.Vec3) bool {
	ab := b.Sub(a).XY()
	t := p.Sub(a).XY().Dot(ab)
	return t >= 0 && t <= ab.Dot(ab)
}
