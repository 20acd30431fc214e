package sketch

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/sketch3d/internal/trackball"
	"github.com/Faultbox/sketch3d/pkg/formats"
	"github.com/Faultbox/sketch3d/pkg/math"
	"github.com/Faultbox/sketch3d/pkg/mesh"
)

// Session errors.
var (
	ErrNoStroke = errors.New("no stroke to triangulate")
	ErrNoMesh   = errors.New("no mesh built")
)

// Mode is the interaction mode of a session.
type Mode int

// Modes.
const (
	ModeDrawing Mode = iota // 2D stroke capture
	ModeViewing             // 3D trackball view of the mesh
)

// String returns the mode name.
func (m Mode) String() string {
	if m == ModeViewing {
		return "viewing"
	}
	return "drawing"
}

// Session owns the stroke, its derived boundary, spine and mesh, and the
// trackball. It is not safe for concurrent use; all calls are expected from
// the single input/render thread.
type Session struct {
	params Params
	log    *zap.Logger

	stroke   *Stroke
	boundary []BoundaryPoint
	spine    Spine
	rings    []Ring
	mesh     *mesh.Mesh

	trackball *trackball.Trackball
	mode      Mode
	tracking  bool
	built     bool
}

// NewSession validates p and creates an empty session. A nil trackball gets a
// default one; a nil logger discards output.
func NewSession(p Params, tb *trackball.Trackball, log *zap.Logger) (*Session, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid sketch params: %w", err)
	}
	if tb == nil {
		tb = trackball.New()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Session{
		params:    p,
		log:       log,
		stroke:    NewStroke(p.MinSampleDistance, p.ClosingStep),
		spine:     Spine{LastInShape: -1},
		trackball: tb,
	}, nil
}

// PointerDown starts a new stroke at (x, y), discarding the previous stroke
// and everything derived from it. Ignored outside drawing mode.
func (s *Session) PointerDown(x, y float32) {
	if s.mode != ModeDrawing {
		return
	}
	s.Reset()
	s.stroke.Begin(x, y)
	s.tracking = true
}

// PointerDrag adds a sample to the stroke being drawn.
func (s *Session) PointerDrag(x, y float32) {
	if s.mode != ModeDrawing || !s.tracking {
		return
	}
	s.stroke.Add(x, y)
}

// PointerUp closes the stroke being drawn.
func (s *Session) PointerUp() {
	if !s.tracking {
		return
	}
	s.tracking = false
	s.stroke.Close()
	s.log.Debug("stroke closed", zap.Int("samples", s.stroke.Len()))
}

// Tracking reports whether a stroke is being drawn.
func (s *Session) Tracking() bool { return s.tracking }

// SetMode switches between drawing and viewing. A stroke still being drawn
// is closed first. Entering viewing mode builds the mesh if the current
// stroke has none yet; if that fails the session stays in its current mode.
func (s *Session) SetMode(m Mode) error {
	if m == s.mode {
		return nil
	}
	s.PointerUp()
	if m == ModeViewing && !s.built {
		if _, err := s.Triangulate(); err != nil {
			return err
		}
	}
	s.mode = m
	s.log.Info("mode changed", zap.Stringer("mode", m))
	return nil
}

// Mode returns the current mode.
func (s *Session) Mode() Mode { return s.mode }

// Triangulate runs simplify → pair → revolve → stitch on the current stroke
// and replaces the mesh. An open stroke is closed first. With no stroke it
// returns ErrNoStroke and changes nothing.
func (s *Session) Triangulate() (*mesh.Mesh, error) {
	if s.stroke.Len() == 0 {
		return nil, ErrNoStroke
	}
	s.PointerUp()
	s.stroke.Close()

	pts := s.stroke.Points()
	s.boundary = OutsideEdges(pts, s.params.BaseStep, s.params.AngleTolerance)
	s.spine = Pair(s.boundary)
	if n := CloseChords(s.boundary, s.spine, s.params.DistanceConstant); n > 0 {
		s.log.Debug("chords pass close to the outline",
			zap.Int("chords", n),
			zap.Float64("limit", s.params.DistanceConstant),
		)
	}

	s.mesh, s.rings = Revolve(s.stroke.First(), s.boundary, s.spine, s.params, s.log)
	s.built = true

	s.log.Info("mesh built",
		zap.Int("samples", len(pts)),
		zap.Int("boundary", len(s.boundary)),
		zap.Int("segments", s.spine.Len()),
		zap.Int("rings", len(s.rings)),
		zap.Int("vertices", len(s.mesh.Vertices)),
		zap.Int("triangles", len(s.mesh.Triangles)),
	)
	return s.mesh, nil
}

// Reset clears the stroke, all derived buffers and the trackball transform.
func (s *Session) Reset() {
	s.stroke.Reset()
	s.boundary = nil
	s.spine = Spine{LastInShape: -1}
	s.rings = nil
	s.mesh = nil
	s.built = false
	s.tracking = false
	s.trackball.Reset()
}

// SetStroke replaces the stroke with pts and closes it, as if it had been
// drawn.
func (s *Session) SetStroke(pts []math.Vec2) {
	s.Reset()
	s.stroke.SetPoints(pts)
	s.stroke.Close()
}

// LoadMesh replaces the session's content with a mesh read from path. On
// failure the session is left untouched.
func (s *Session) LoadMesh(path string) error {
	m, err := formats.LoadPoly(path)
	if err != nil {
		return err
	}
	if err := m.Validate(); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	s.Reset()
	s.mesh = m
	s.built = true
	s.mode = ModeViewing
	s.log.Info("mesh loaded",
		zap.String("path", path),
		zap.Int("vertices", len(m.Vertices)),
		zap.Int("triangles", len(m.Triangles)),
	)
	return nil
}

// SaveMesh writes the current mesh in the polygon text format.
func (s *Session) SaveMesh(path string) error {
	if s.mesh.Empty() {
		return ErrNoMesh
	}
	if err := formats.SavePoly(path, s.mesh); err != nil {
		return err
	}
	s.log.Info("mesh saved", zap.String("path", path))
	return nil
}

// ExportSTL writes the current mesh as binary STL.
func (s *Session) ExportSTL(path string) error {
	if s.mesh.Empty() {
		return ErrNoMesh
	}
	if err := formats.SaveSTL(path, s.mesh); err != nil {
		return err
	}
	s.log.Info("mesh exported", zap.String("path", path))
	return nil
}

// SaveStroke writes the current stroke samples.
func (s *Session) SaveStroke(path string) error {
	if s.stroke.Len() == 0 {
		return ErrNoStroke
	}
	return formats.SaveStroke(path, s.stroke.Points())
}

// Params returns the pipeline parameters.
func (s *Session) Params() Params { return s.params }

// Stroke returns the stroke.
func (s *Session) Stroke() *Stroke { return s.stroke }

// Boundary returns the boundary points from the last triangulation.
func (s *Session) Boundary() []BoundaryPoint { return s.boundary }

// Spine returns the spine from the last triangulation.
func (s *Session) Spine() Spine { return s.spine }

// Rings returns the rings from the last triangulation.
func (s *Session) Rings() []Ring { return s.rings }

// Mesh returns the current mesh, or nil.
func (s *Session) Mesh() *mesh.Mesh { return s.mesh }

// Trackball returns the session's trackball.
func (s *Session) Trackball() *trackball.Trackball { return s.trackball }
