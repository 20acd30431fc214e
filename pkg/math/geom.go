package math

import "math"

// DegToRad converts degrees to radians.
func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// SideLength returns the planar (X/Y) distance between a and b.
func SideLength(a, b Vec3) float64 {
	dx := float64(b.X - a.X)
	dy := float64(b.Y - a.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// AngleFromSides returns the angle at vertex B of triangle ABC, in radians,
// from its three side lengths (law of cosines). The result is NaN when BA or
// BC is zero.
func AngleFromSides(ba, bc, ac float64) float64 {
	denom := 2 * ba * bc
	if denom == 0 {
		return math.NaN()
	}
	cos := (ba*ba + bc*bc - ac*ac) / denom
	// Rounding can push collinear triangles just past ±1.
	if cos > 1 {
		cos = 1
	} else if cos < -1 {
		cos = -1
	}
	return math.Acos(cos)
}

// PointLineDistance returns the planar distance from p to the infinite line
// through a and b. When a and b coincide it is the distance from p to a.
func PointLineDistance(p, a, b Vec3) float64 {
	abx := float64(b.X - a.X)
	aby := float64(b.Y - a.Y)
	apx := float64(p.X - a.X)
	apy := float64(p.Y - a.Y)

	l := math.Sqrt(abx*abx + aby*aby)
	if l == 0 {
		return math.Sqrt(apx*apx + apy*apy)
	}
	return math.Abs(abx*apy-aby*apx) / l
}
