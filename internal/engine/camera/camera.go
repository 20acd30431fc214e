// Package camera holds the fixed viewpoint of the 3D view. Interaction moves
// the model through the trackball; the camera itself never moves.
package camera

import (
	"github.com/Faultbox/sketch3d/pkg/math"
)

// Camera looks from Eye at Focus with Y up.
type Camera struct {
	Eye   math.Vec3
	Focus math.Vec3
	FOV   float32 // vertical, degrees
	Near  float32
	Far   float32
}

// ViewMatrix returns the world-to-eye transform.
func (c Camera) ViewMatrix() math.Mat4 {
	up := math.Vec3{Y: 1}
	// Looking straight along Y needs a different up vector
	dir := c.Focus.Sub(c.Eye).Normalize()
	if d := dir.Dot(up); d > 0.999 || d < -0.999 {
		up = math.Vec3{Z: -1}
	}
	return math.LookAt(c.Eye, c.Focus, up)
}

// ProjectionMatrix returns the perspective projection for a viewport of the
// given width/height ratio.
func (c Camera) ProjectionMatrix(aspect float32) math.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return math.Perspective(float32(math.DegToRad(float64(c.FOV))), aspect, c.Near, c.Far)
}
