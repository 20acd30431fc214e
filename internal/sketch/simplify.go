package sketch

import (
	gomath "math"

	"github.com/Faultbox/sketch3d/pkg/math"
)

// BoundaryPoint is a stroke sample kept by the simplifier.
type BoundaryPoint struct {
	Index int // index into the stroke
	Pos   math.Vec3
}

// FindNextPoint returns the index of the next boundary sample after i, probing
// distance samples ahead and halving the probe while it runs past the end or
// while the curve turns by more than tolerance radians over the probed span.
// The tolerance bounds the turning angle (pi minus the interior angle at the
// middle sample), not the interior angle itself. Odd distances are accepted
// as-is. The result is always greater than i when
// i is not the last index.
func FindNextPoint(pts []math.Vec3, i, distance int, tolerance float64) int {
	last := len(pts) - 1
	for {
		j := i + distance
		if distance%2 != 0 {
			if j > last {
				return last
			}
			return j
		}
		if j > last {
			distance /= 2
			continue
		}
		if turningAngle(pts[i], pts[i+distance/2], pts[j]) > tolerance {
			distance /= 2
			continue
		}
		return j
	}
}

// turningAngle returns how far the path a→b→c bends at b, in radians: zero
// for a straight run, pi for a full reversal. Degenerate triangles with a
// zero-length side give +Inf so that the caller subdivides.
func turningAngle(a, b, c math.Vec3) float64 {
	interior := math.AngleFromSides(math.SideLength(b, a), math.SideLength(b, c), math.SideLength(a, c))
	if gomath.IsNaN(interior) || gomath.IsInf(interior, 0) {
		return gomath.Inf(1)
	}
	return gomath.Pi - interior
}

// OutsideEdges simplifies pts into boundary points. The first sample is always
// kept and stroke indices strictly increase. An empty stroke yields nil.
func OutsideEdges(pts []math.Vec3, baseStep int, tolerance float64) []BoundaryPoint {
	if len(pts) == 0 {
		return nil
	}
	if baseStep < 1 {
		baseStep = 1
	}

	out := []BoundaryPoint{{Index: 0, Pos: pts[0]}}
	last := len(pts) - 1
	for i := 0; i < last; {
		j := FindNextPoint(pts, i, baseStep, tolerance)
		if j <= i {
			panic("sketch: simplifier made no progress")
		}
		// A sample exactly on the origin marks an empty slot, never a real
		// pointer position.
		if p := pts[j]; p.X != 0 || p.Y != 0 {
			out = append(out, BoundaryPoint{Index: j, Pos: p})
		}
		i = j
	}
	return out
}
