package app

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/sketch3d/internal/config"
	"github.com/Faultbox/sketch3d/internal/engine/input"
	"github.com/Faultbox/sketch3d/internal/engine/renderer"
	"github.com/Faultbox/sketch3d/internal/sketch"
	"github.com/Faultbox/sketch3d/internal/trackball"
	"github.com/Faultbox/sketch3d/pkg/formats"
	"github.com/Faultbox/sketch3d/pkg/mesh"
)

// Controller routes input events to the session and the trackball. It holds
// no GL state, so the whole interaction model runs without a window.
type Controller struct {
	files   config.FilesConfig
	session *sketch.Session
	log     *zap.Logger

	width, height int
	showChords    bool
	quit          bool
	screenshot    bool

	uploaded *mesh.Mesh
}

// NewController creates a controller for a window of the given size.
func NewController(s *sketch.Session, files config.FilesConfig, width, height int, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	c := &Controller{
		files:   files,
		session: s,
		log:     log,
	}
	c.Resize(width, height)
	return c
}

// Handle processes one event.
func (c *Controller) Handle(e input.Event) {
	switch e.Type {
	case input.EventQuit:
		c.quit = true
	case input.EventWindowResize:
		c.Resize(e.Width, e.Height)
	case input.EventKeyDown:
		if err := c.Command(e.Key); err != nil {
			c.log.Warn("command failed", zap.Int("key", int(e.Key)), zap.Error(err))
		}
	case input.EventMouseDown, input.EventMouseMove, input.EventMouseUp:
		if c.session.Mode() == sketch.ModeDrawing {
			c.draw(e)
		} else {
			c.view(e)
		}
	}
}

// draw feeds left-button pointer events to stroke capture. Samples outside
// the window are dropped.
func (c *Controller) draw(e input.Event) {
	switch e.Type {
	case input.EventMouseDown:
		if e.State&trackball.ButtonDown == trackball.LButtonDown && c.inside(e.X, e.Y) {
			c.showChords = false
			c.session.PointerDown(float32(e.X), float32(e.Y))
		}
	case input.EventMouseMove:
		if e.State&trackball.LButtonDown != 0 && c.inside(e.X, e.Y) {
			c.session.PointerDrag(float32(e.X), float32(e.Y))
		}
	case input.EventMouseUp:
		if e.State&trackball.LButtonUp != 0 {
			c.session.PointerUp()
		}
	}
}

// view feeds pointer events to the trackball.
func (c *Controller) view(e input.Event) {
	tb := c.session.Trackball()
	switch e.Type {
	case input.EventMouseDown:
		tb.MouseDown(e.State, e.X, e.Y)
	case input.EventMouseMove:
		if tb.Action() != trackball.ActionNone {
			tb.MouseMotion(e.X, e.Y)
		}
	case input.EventMouseUp:
		tb.MouseUp(e.State)
	}
}

func (c *Controller) inside(x, y int) bool {
	return x > 0 && y > 0 && x < c.width && y < c.height
}

// Command runs the action bound to key.
func (c *Controller) Command(key sdl.Keycode) error {
	s := c.session
	switch key {
	case sdl.K_ESCAPE:
		c.quit = true
	case sdl.K_3, sdl.K_TAB:
		return s.SetMode(sketch.ModeViewing)
	case sdl.K_2:
		return s.SetMode(sketch.ModeDrawing)
	case sdl.K_c:
		c.showChords = false
		s.Reset()
	case sdl.K_t:
		if _, err := s.Triangulate(); err != nil {
			return err
		}
		c.showChords = true
	case sdl.K_s:
		return s.SaveMesh(c.files.MeshPath)
	case sdl.K_o:
		return s.LoadMesh(c.files.MeshPath)
	case sdl.K_e:
		return s.ExportSTL(c.files.STLPath)
	case sdl.K_w:
		return s.SaveStroke(c.files.StrokePath)
	case sdl.K_l:
		return c.Open(c.files.StrokePath)
	case sdl.K_r:
		s.Trackball().Reset()
	case sdl.K_p:
		c.screenshot = true
	}
	return nil
}

// Open loads a stroke (.txt, .stroke) or a polygon mesh, by extension.
func (c *Controller) Open(path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".stroke":
		pts, err := formats.LoadStroke(path)
		if err != nil {
			return err
		}
		if len(pts) == 0 {
			return fmt.Errorf("%s: %w", path, sketch.ErrNoStroke)
		}
		if err := c.session.SetMode(sketch.ModeDrawing); err != nil {
			return err
		}
		c.session.SetStroke(pts)
		c.showChords = false
		c.log.Info("stroke loaded", zap.String("path", path), zap.Int("samples", len(pts)))
		return nil
	default:
		return c.session.LoadMesh(path)
	}
}

// Resize records the window size for the sample filter and the trackball.
func (c *Controller) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.width, c.height = width, height
	c.session.Trackball().SetWindowSize(width, height)
}

// MeshChanged returns the session's mesh and whether it differs from the one
// last reported, so the caller uploads each mesh once.
func (c *Controller) MeshChanged() (*mesh.Mesh, bool) {
	m := c.session.Mesh()
	if m == c.uploaded {
		return m, false
	}
	c.uploaded = m
	return m, true
}

// Overlay describes the 2D view.
func (c *Controller) Overlay() renderer.Overlay {
	s := c.session
	return renderer.Overlay{
		Stroke:     s.Stroke().Points(),
		Boundary:   s.Boundary(),
		Spine:      s.Spine(),
		ShowChords: c.showChords,
	}
}

// Title is the window title for the current state.
func (c *Controller) Title() string {
	s := c.session
	if s.Mode() == sketch.ModeViewing {
		n := 0
		if m := s.Mesh(); m != nil {
			n = len(m.Triangles)
		}
		return fmt.Sprintf("sketch3d - viewing (%d triangles)", n)
	}
	return fmt.Sprintf("sketch3d - drawing (%d samples)", s.Stroke().Len())
}

// TakeScreenshot reports whether a capture was requested since the last
// call.
func (c *Controller) TakeScreenshot() bool {
	req := c.screenshot
	c.screenshot = false
	return req
}

// Quit reports whether the user asked to leave.
func (c *Controller) Quit() bool { return c.quit }

// Session returns the controlled session.
func (c *Controller) Session() *sketch.Session { return c.session }
