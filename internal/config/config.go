// Package config loads the modeller's settings from defaults, a YAML file
// and command-line flags, in that order of priority.
package config

import (
	"errors"
	"fmt"

	"github.com/Faultbox/sketch3d/internal/logger"
	"github.com/Faultbox/sketch3d/internal/sketch"
	"github.com/Faultbox/sketch3d/internal/trackball"
	"github.com/Faultbox/sketch3d/pkg/math"
)

// Config holds every setting.
type Config struct {
	Window    WindowConfig     `yaml:"window"`
	Sketch    sketch.Params    `yaml:"sketch"`
	Trackball trackball.Scales `yaml:"trackball"`
	View      ViewConfig       `yaml:"view"`
	Files     FilesConfig      `yaml:"files"`
	Logging   LoggingConfig    `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title    string `yaml:"title"`
	Width    int    `yaml:"width"`
	Height   int    `yaml:"height"`
	VSync    bool   `yaml:"vsync"`
	FPSLimit int    `yaml:"fps_limit"`
}

// RGB is a colour with components in [0, 1].
type RGB [3]float32

// ViewConfig holds the camera and lighting of the 3D view.
type ViewConfig struct {
	Eye   math.Vec3 `yaml:"eye"`
	Focus math.Vec3 `yaml:"coi"`
	FOV   float32   `yaml:"fov"`
	Near  float32   `yaml:"near"`
	Far   float32   `yaml:"far"`

	Background RGB `yaml:"background"`
	Stroke     RGB `yaml:"stroke"`
	Boundary   RGB `yaml:"boundary"`
	Spine      RGB `yaml:"spine"`

	LightPosition   math.Vec3 `yaml:"light_position"`
	LightAmbient    RGB       `yaml:"light_ambient"`
	LightDiffuse    RGB       `yaml:"light_diffuse"`
	LightSpecular   RGB       `yaml:"light_specular"`
	MaterialAmbient RGB       `yaml:"material_ambient"`
	MaterialDiffuse RGB       `yaml:"material_diffuse"`
	MaterialSpec    RGB       `yaml:"material_specular"`
	Shininess       float32   `yaml:"shininess"`
	Wireframe       bool      `yaml:"wireframe"`
}

// FilesConfig holds the default paths used by the save and load commands.
type FilesConfig struct {
	MeshPath   string `yaml:"mesh_path"`
	STLPath    string `yaml:"stl_path"`
	StrokePath string `yaml:"stroke_path"`

	ScreenshotDir string `yaml:"screenshot_dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with the stock settings.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "sketch3d",
			Width:  800,
			Height: 500,
			VSync:  true,
		},
		Sketch:    sketch.DefaultParams(),
		// The view is normalised to a cube of side 2, so pan and dolly
		// move in those units rather than in pixels.
		Trackball: trackball.Scales{Rotate: 0.2, Zoom: 0.002, Pan: 0.005, Dolly: 0.01},
		View: ViewConfig{
			Eye:  math.Vec3{X: 0, Y: 0, Z: 3},
			FOV:  45,
			Near: 0.001,
			Far:  1000,

			Background: RGB{0, 0, 0},
			Stroke:     RGB{1, 1, 1},
			Boundary:   RGB{1, 0.3, 0.2},
			Spine:      RGB{0.3, 0.8, 1},

			LightPosition:   math.Vec3{X: 5, Y: 25, Z: 15},
			LightAmbient:    RGB{0.5, 0.5, 0.5},
			LightDiffuse:    RGB{0.5, 0.5, 0.5},
			LightSpecular:   RGB{1, 1, 1},
			MaterialAmbient: RGB{0.7, 0.7, 0.7},
			MaterialDiffuse: RGB{0.8, 0.8, 0.8},
			MaterialSpec:    RGB{1, 1, 1},
			Shininess:       100,
		},
		Files: FilesConfig{
			MeshPath:   "sketch.obj",
			STLPath:    "sketch.stl",
			StrokePath: "stroke.txt",

			ScreenshotDir: "screenshots",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate checks the settings that would otherwise fail deep inside the
// pipeline or the renderer.
func (c *Config) Validate() error {
	if err := c.Sketch.Validate(); err != nil {
		return fmt.Errorf("sketch: %w", err)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window: size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	if !(c.View.FOV > 0 && c.View.FOV < 180) {
		return fmt.Errorf("view: fov %v out of range (0, 180)", c.View.FOV)
	}
	if !(c.View.Near > 0 && c.View.Far > c.View.Near) {
		return errors.New("view: need 0 < near < far")
	}
	if c.Trackball.Rotate <= 0 || c.Trackball.Zoom <= 0 || c.Trackball.Pan <= 0 || c.Trackball.Dolly <= 0 {
		return errors.New("trackball: scales must be positive")
	}
	if _, err := logger.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	return nil
}
