// Package app runs the interactive modeller: one window, one session, and a
// single-threaded loop that polls input, updates the session and draws the
// current view.
package app

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/sketch3d/internal/config"
	"github.com/Faultbox/sketch3d/internal/engine/debug"
	"github.com/Faultbox/sketch3d/internal/engine/input"
	"github.com/Faultbox/sketch3d/internal/engine/renderer"
	"github.com/Faultbox/sketch3d/internal/engine/window"
	"github.com/Faultbox/sketch3d/internal/logger"
	"github.com/Faultbox/sketch3d/internal/sketch"
	"github.com/Faultbox/sketch3d/internal/trackball"
)

// App is the interactive application.
type App struct {
	cfg *config.Config
	log *zap.Logger

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	ctrl     *Controller
	shots    *debug.Screenshots

	title string
}

// New opens the window and prepares an empty session.
func New(cfg *config.Config) (*App, error) {
	a := &App{cfg: cfg, log: logger.Named("app")}

	tb := trackball.New()
	tb.SetScales(cfg.Trackball)
	tb.SetEye(cfg.View.Eye)
	session, err := sketch.NewSession(cfg.Sketch, tb, logger.Named("session"))
	if err != nil {
		return nil, err
	}

	a.window, err = window.New(window.Config{
		Title:  cfg.Window.Title,
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,
		VSync:  cfg.Window.VSync,
	}, logger.Named("window"))
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// The renderer needs the GL context the window just made
	a.renderer, err = renderer.New(renderer.Config{
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,
		View:   cfg.View,
	}, logger.Named("renderer"))
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	a.resize()

	a.input = input.New()
	w, h := a.window.Size()
	a.ctrl = NewController(session, cfg.Files, w, h, a.log)
	a.shots = debug.NewScreenshots(cfg.Files.ScreenshotDir, "sketch3d")

	a.log.Info("app initialized",
		zap.Int("base_step", cfg.Sketch.BaseStep),
		zap.Float64("angle_tolerance", cfg.Sketch.AngleTolerance),
		zap.Int("mesh_rotation", cfg.Sketch.MeshRotation),
	)
	return a, nil
}

// Open loads a stroke or mesh file before the loop starts.
func (a *App) Open(path string) error {
	return a.ctrl.Open(path)
}

// Run loops until the window closes or Esc is pressed.
func (a *App) Run() error {
	var frameTime time.Duration
	if a.cfg.Window.FPSLimit > 0 {
		frameTime = time.Second / time.Duration(a.cfg.Window.FPSLimit)
	}
	frames := 0
	fpsTimer := time.Now()

	a.log.Info("starting event loop")
	for {
		start := time.Now()

		if a.input.Update() {
			break
		}
		for _, e := range a.input.Events() {
			a.ctrl.Handle(e)
			if e.Type == input.EventWindowResize {
				a.resize()
			}
		}
		if a.ctrl.Quit() {
			break
		}

		if m, changed := a.ctrl.MeshChanged(); changed {
			a.renderer.SetMesh(m)
		}
		a.render()
		if a.ctrl.TakeScreenshot() {
			a.screenshot()
		}
		a.window.SwapBuffers()

		if t := a.ctrl.Title(); t != a.title {
			a.window.SetTitle(t)
			a.title = t
		}

		frames++
		if time.Since(fpsTimer) >= time.Second {
			a.log.Debug("fps", zap.Int("count", frames))
			frames = 0
			fpsTimer = time.Now()
		}
		if frameTime > 0 {
			if d := frameTime - time.Since(start); d > 0 {
				time.Sleep(d)
			}
		}
	}
	a.log.Info("event loop stopped")
	return nil
}

func (a *App) render() {
	a.renderer.Begin()
	s := a.ctrl.Session()
	if s.Mode() == sketch.ModeViewing {
		a.renderer.DrawMesh(s.Trackball().Matrix())
		return
	}
	a.renderer.DrawOverlay(a.ctrl.Overlay())
}

func (a *App) screenshot() {
	fw, fh := a.window.DrawableSize()
	path, err := a.shots.Save(a.renderer.ReadPixels(fw, fh), fw, fh)
	if err != nil {
		a.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	a.log.Info("screenshot saved", zap.String("path", path))
}

func (a *App) resize() {
	w, h := a.window.Size()
	fw, fh := a.window.DrawableSize()
	a.renderer.Resize(w, h, fw, fh)
}

// Close releases the renderer and the window.
func (a *App) Close() {
	a.log.Info("closing app")
	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}
