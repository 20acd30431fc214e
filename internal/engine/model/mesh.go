package model

import (
	"github.com/Faultbox/sketch3d/internal/sketch"
	"github.com/Faultbox/sketch3d/pkg/math"
	"github.com/Faultbox/sketch3d/pkg/mesh"
)

// minNormal is the smallest cross-product length treated as a real face.
const minNormal = 1e-8

// Build expands an indexed mesh into flat-shaded triangles. Each face gets
// its own three vertices carrying the face normal. Degenerate faces are
// dropped and counted in Skipped. A nil or empty mesh gives nil.
func Build(m *mesh.Mesh) *Mesh {
	if m.Empty() {
		return nil
	}

	out := &Mesh{
		Vertices: make([]Vertex, 0, len(m.Triangles)*3),
		Bounds:   m.Bounds(),
	}
	for i, t := range m.Triangles {
		n := m.FaceNormal(i)
		l := n.Length()
		if !(l > minNormal) {
			out.Skipped++
			continue
		}
		n = n.Scale(1 / l)
		for _, idx := range t {
			v := m.Vertices[idx]
			out.Vertices = append(out.Vertices, Vertex{
				Position: [3]float32{v.X, v.Y, v.Z},
				Normal:   [3]float32{n.X, n.Y, n.Z},
			})
		}
	}
	return out
}

// NormalizeTransform maps the box to a cube of side 2 centred on the origin.
// The drawing is captured in window coordinates with Y pointing down, so the
// transform also turns it half way round X to stand upright; a rotation
// keeps the triangle winding intact where a single-axis flip would not.
func NormalizeTransform(b mesh.Bounds) math.Mat4 {
	size := b.Size()
	s := float32(1)
	if size > 0 {
		s = 2 / size
	}
	c := b.Center()
	return math.Scale(s, -s, -s).Mul(math.Translate(-c.X, -c.Y, -c.Z))
}

// LineStrip flattens points into x,y pairs for a 2D line strip.
func LineStrip(pts []math.Vec3) []float32 {
	if len(pts) == 0 {
		return nil
	}
	out := make([]float32, 0, len(pts)*2)
	for _, p := range pts {
		out = append(out, p.X, p.Y)
	}
	return out
}

// BoundaryPoints flattens boundary positions into x,y pairs.
func BoundaryPoints(b []sketch.BoundaryPoint) []float32 {
	if len(b) == 0 {
		return nil
	}
	out := make([]float32, 0, len(b)*2)
	for _, p := range b {
		out = append(out, p.Pos.X, p.Pos.Y)
	}
	return out
}

// Chords returns one line segment per spine chord as x,y pairs. A spine that
// no longer matches b yields nothing.
func Chords(b []sketch.BoundaryPoint, s sketch.Spine) []float32 {
	if s.Len() == 0 || !s.ValidFor(b) {
		return nil
	}
	out := make([]float32, 0, s.Len()*4)
	for _, seg := range s.Segments {
		p, q := b[seg.First].Pos, b[seg.Second].Pos
		out = append(out, p.X, p.Y, q.X, q.Y)
	}
	return out
}
