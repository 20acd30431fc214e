// Package sketch turns a closed freehand stroke into a closed triangle mesh:
// the stroke is simplified into boundary points, opposing boundary points are
// paired into spine chords, and each chord is swept about its midpoint into a
// ring of vertices that is stitched to its neighbours.
package sketch

import (
	"errors"
	"fmt"
	"math"
)

// Parameter validation errors.
var (
	ErrBaseStep       = errors.New("base step must be positive, divisible by 4 and not a power of two")
	ErrAngleTolerance = errors.New("angle tolerance must be in (0, pi]")
	ErrMeshRotation   = errors.New("mesh rotation must divide 360 and lie in [1, 120]")
	ErrDistance       = errors.New("distances must be positive")
)

// Params configures the pipeline stages.
type Params struct {
	// BaseStep is the initial sample distance for the simplifier. Halving it
	// must give at least two levels of refinement, so it is divisible by 4,
	// and it must not be a power of two.
	BaseStep int `yaml:"base_step"`

	// AngleTolerance is the largest turning angle (radians) over which the
	// simplifier skips straight to the far sample.
	AngleTolerance float64 `yaml:"angle_tolerance"`

	// MeshRotation is the angular step, in degrees, between ring vertices.
	MeshRotation int `yaml:"mesh_rotation"`

	// MinSampleDistance filters pointer samples closer than this to the
	// previous sample.
	MinSampleDistance float32 `yaml:"min_sample_distance"`

	// ClosingStep is the largest gap left between interpolated closing points.
	ClosingStep float32 `yaml:"closing_step"`

	// DistanceConstant is the proximity limit for the chord diagnostic.
	DistanceConstant float64 `yaml:"distance_constant"`
}

// DefaultParams returns the parameters used by the interactive tool.
func DefaultParams() Params {
	return Params{
		BaseStep:          20,
		AngleTolerance:    0.5,
		MeshRotation:      6,
		MinSampleDistance: 2,
		ClosingStep:       6,
		DistanceConstant:  10,
	}
}

// Validate checks every field against its documented range.
func (p Params) Validate() error {
	if p.BaseStep <= 0 || p.BaseStep%4 != 0 || isPowerOfTwo(p.BaseStep) {
		return fmt.Errorf("%w: got %d", ErrBaseStep, p.BaseStep)
	}
	if !(p.AngleTolerance > 0 && p.AngleTolerance <= math.Pi) {
		return fmt.Errorf("%w: got %v", ErrAngleTolerance, p.AngleTolerance)
	}
	if p.MeshRotation < 1 || p.MeshRotation > 120 || 360%p.MeshRotation != 0 {
		return fmt.Errorf("%w: got %d", ErrMeshRotation, p.MeshRotation)
	}
	if p.MinSampleDistance <= 0 || p.ClosingStep <= 0 || p.DistanceConstant <= 0 {
		return ErrDistance
	}
	return nil
}

// RingSize is the number of vertices in every ring.
func (p Params) RingSize() int {
	return 360 / p.MeshRotation
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}
