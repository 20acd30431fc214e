package config

import (
	"flag"
	"os"
)

// Flags holds command-line overrides. Zero values leave the config alone.
type Flags struct {
	Config    string
	Debug     bool
	Width     int
	Height    int
	Step      int
	Tolerance float64
	Rotation  int
	Load      string
}

// Register binds the flags to fs.
func (f *Flags) Register(fs *flag.FlagSet) {
	fs.StringVar(&f.Config, "config", "", "Path to config file")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.IntVar(&f.Width, "width", 0, "Window width")
	fs.IntVar(&f.Height, "height", 0, "Window height")
	fs.IntVar(&f.Step, "step", 0, "Simplifier base step")
	fs.Float64Var(&f.Tolerance, "tolerance", 0, "Simplifier angle tolerance (radians)")
	fs.IntVar(&f.Rotation, "rotation", 0, "Ring angular step (degrees)")
	fs.StringVar(&f.Load, "load", "", "Mesh or stroke file to open at startup")
}

// ParseFlags parses args (without the program name). Call this early in main().
func ParseFlags(args []string) (*Flags, error) {
	f := &Flags{}
	fs := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	f.Register(fs)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return f, nil
}

// apply copies the set overrides into cfg.
func (f *Flags) apply(cfg *Config) {
	if f == nil {
		return
	}
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.Width > 0 {
		cfg.Window.Width = f.Width
	}
	if f.Height > 0 {
		cfg.Window.Height = f.Height
	}
	if f.Step != 0 {
		cfg.Sketch.BaseStep = f.Step
	}
	if f.Tolerance != 0 {
		cfg.Sketch.AngleTolerance = f.Tolerance
	}
	if f.Rotation != 0 {
		cfg.Sketch.MeshRotation = f.Rotation
	}
}
