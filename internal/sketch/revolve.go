package sketch

import (
	gomath "math"

	"go.uber.org/zap"

	"github.com/Faultbox/sketch3d/pkg/math"
	"github.com/Faultbox/sketch3d/pkg/mesh"
)

// minRadius is the smallest chord half-length that still produces a ring.
const minRadius = 1e-6

// Ring holds the vertex-buffer indices of one swept chord, in angular order.
type Ring []uint32

// RingVertices sweeps the chord pivot–other about its midpoint M in steps of
// stepDeg degrees. The ring is the circle with the chord as diameter, standing
// perpendicular to the drawing plane: the local point (r·cosθ, 0, r·sinθ) is
// tilted about Z to the chord's elevation and moved to M.
//
// The chord direction is folded into the right half-plane before the
// elevation is taken, so θ = 0 always lands on the right-hand end and
// neighbouring rings line up. ok is false for a degenerate chord.
func RingVertices(pivot, other math.Vec3, stepDeg int) (pts []math.Vec3, ok bool) {
	m := pivot.Midpoint(other)
	r := math.SideLength(m, other)
	if !(r >= minRadius) || gomath.IsInf(r, 0) {
		return nil, false
	}

	dx := float64(pivot.X - m.X)
	dy := float64(pivot.Y - m.Y)
	if dx < 0 {
		dx, dy = -dx, -dy
	}
	sin := dy / r
	if sin > 1 {
		sin = 1
	} else if sin < -1 {
		sin = -1
	}
	angle := gomath.Asin(sin)

	tilt := math.RotateZ(float32(angle))
	n := 360 / stepDeg
	pts = make([]math.Vec3, 0, n)
	for k := 0; k < n; k++ {
		theta := math.DegToRad(float64(k * stepDeg))
		local := math.Vec3{
			X: float32(r * gomath.Cos(theta)),
			Z: float32(r * gomath.Sin(theta)),
		}
		p := tilt.TransformVec3(local)
		p.X += m.X
		p.Y += m.Y
		if !p.IsFinite() {
			return nil, false
		}
		pts = append(pts, p)
	}
	return pts, true
}

// Revolve builds the mesh for a spine. Segments are taken in pairs (0,1),
// (2,3), ...; each pair contributes one ring swept from its even segment, the
// rung joining a forward point to the backward point across from it. The odd
// segment is the diagonal to the next rung and adds no geometry.
//
// Vertex 0 is start, the last vertex is the LastInShape boundary point, and
// ring vertices sit in between. Degenerate rungs are skipped and logged.
func Revolve(start math.Vec3, b []BoundaryPoint, s Spine, p Params, log *zap.Logger) (*mesh.Mesh, []Ring) {
	if log == nil {
		log = zap.NewNop()
	}

	m := &mesh.Mesh{Vertices: []math.Vec3{start}}
	var rings []Ring
	for i := 0; i < len(s.Segments); i += 2 {
		seg := s.Segments[i]
		pts, ok := RingVertices(b[seg.First].Pos, b[seg.Second].Pos, p.MeshRotation)
		if !ok {
			log.Debug("skipping degenerate ring",
				zap.Int("segment", i),
				zap.Int("first", seg.First),
				zap.Int("second", seg.Second),
			)
			continue
		}
		ring := make(Ring, len(pts))
		for k, v := range pts {
			ring[k] = uint32(len(m.Vertices))
			m.Vertices = append(m.Vertices, v)
		}
		rings = append(rings, ring)
	}

	end := start
	if s.LastInShape >= 0 && s.LastInShape < len(b) {
		end = b[s.LastInShape].Pos
	}
	m.Vertices = append(m.Vertices, end)

	m.Triangles = Stitch(rings, 0, uint32(len(m.Vertices)-1))
	return m, rings
}

// Stitch joins consecutive rings into a tube and closes both ends with fans
// to the apex vertices startIdx and endIdx. Each quad between rings i and i+1
// at positions j, j+1 becomes (p0,p3,p2) and (p0,p1,p3); the caps run the
// ring edges the other way so every edge is shared by two opposite
// half-edges. For R rings of N points the result has 2·N·R triangles.
func Stitch(rings []Ring, startIdx, endIdx uint32) []mesh.Triangle {
	if len(rings) == 0 {
		return nil
	}
	n := len(rings[0])
	tris := make([]mesh.Triangle, 0, 2*n*len(rings))

	for i := 0; i+1 < len(rings); i++ {
		c0, c1 := rings[i], rings[i+1]
		for j := 0; j < n; j++ {
			j1 := (j + 1) % n
			p0, p1 := c0[j], c0[j1]
			p2, p3 := c1[j], c1[j1]
			tris = append(tris,
				mesh.Triangle{p0, p3, p2},
				mesh.Triangle{p0, p1, p3},
			)
		}
	}

	first, last := rings[0], rings[len(rings)-1]
	for j := 0; j < n; j++ {
		j1 := (j + 1) % n
		tris = append(tris, mesh.Triangle{startIdx, first[j1], first[j]})
	}
	for j := 0; j < n; j++ {
		j1 := (j + 1) % n
		tris = append(tris, mesh.Triangle{endIdx, last[j], last[j1]})
	}
	return tris
}
