// sketchtool runs the sketch-to-mesh pipeline from the command line.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/sketch3d/internal/config"
	"github.com/Faultbox/sketch3d/internal/logger"
	"github.com/Faultbox/sketch3d/internal/preview"
	"github.com/Faultbox/sketch3d/internal/sketch"
	"github.com/Faultbox/sketch3d/pkg/formats"
	"github.com/Faultbox/sketch3d/pkg/mesh"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "mesh":
		err = cmdMesh(args)
	case "info":
		err = cmdInfo(args)
	case "stl":
		err = cmdSTL(args)
	case "preview":
		err = cmdPreview(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`sketchtool - sketch-to-mesh pipeline utility

Usage:
  sketchtool <command> [options]

Commands:
  mesh [flags] <stroke.txt>          Build a mesh from a stroke file
  info <mesh.obj>                    Show mesh statistics
  stl <mesh.obj> <out.stl>           Convert a polygon mesh to binary STL
  preview [flags] <stroke.txt> <out.png>
                                     Draw the stroke, boundary points and chords

Mesh flags:
  -o path        Polygon output (default: stroke name with .obj)
  -stl path      Also write binary STL
  -step N        Simplifier base step
  -tolerance r   Angle tolerance in radians
  -rotation d    Ring angular step in degrees
  -config path   Take sketch parameters from a config file
  -v             Debug logging

Examples:
  sketchtool mesh -rotation 10 vase.txt
  sketchtool info vase.obj
  sketchtool preview -size 1024 vase.txt vase.png`)
}

// pipelineFlags registers the parameter overrides shared by mesh and preview.
func pipelineFlags(fs *flag.FlagSet) *config.Flags {
	f := &config.Flags{}
	fs.StringVar(&f.Config, "config", "", "Config file")
	fs.IntVar(&f.Step, "step", 0, "Simplifier base step")
	fs.Float64Var(&f.Tolerance, "tolerance", 0, "Angle tolerance (radians)")
	fs.IntVar(&f.Rotation, "rotation", 0, "Ring angular step (degrees)")
	fs.BoolVar(&f.Debug, "v", false, "Debug logging")
	return f
}

// session loads the config, starts logging and reads the stroke into a new
// session.
func session(f *config.Flags, strokePath string) (*sketch.Session, error) {
	cfg, err := config.Load(f)
	if err != nil {
		return nil, err
	}
	level := "warn"
	if f.Debug {
		level = "debug"
	}
	if err := logger.InitWith(logger.Options{Level: level, Console: os.Stderr}); err != nil {
		return nil, err
	}

	s, err := sketch.NewSession(cfg.Sketch, nil, logger.Named("sketch"))
	if err != nil {
		return nil, err
	}
	pts, err := formats.LoadStroke(strokePath)
	if err != nil {
		return nil, err
	}
	if len(pts) == 0 {
		return nil, fmt.Errorf("%s: %w", strokePath, sketch.ErrNoStroke)
	}
	s.SetStroke(pts)
	return s, nil
}

func cmdMesh(args []string) error {
	fs := flag.NewFlagSet("mesh", flag.ExitOnError)
	out := fs.String("o", "", "Polygon output path")
	stlOut := fs.String("stl", "", "STL output path")
	f := pipelineFlags(fs)
	fs.Parse(args)

	if fs.NArg() < 1 {
		return fmt.Errorf("usage: sketchtool mesh [flags] <stroke.txt>")
	}
	in := fs.Arg(0)

	s, err := session(f, in)
	if err != nil {
		return err
	}
	defer logger.Sync()

	m, err := s.Triangulate()
	if err != nil {
		return err
	}
	if m.Empty() {
		logger.Warn("stroke produced no triangles", zap.String("path", in))
	}

	path := *out
	if path == "" {
		path = strings.TrimSuffix(in, ".txt") + ".obj"
	}
	if err := s.SaveMesh(path); err != nil {
		return err
	}
	fmt.Printf("%s: %d boundary points, %d segments, %d rings\n",
		in, len(s.Boundary()), s.Spine().Len(), len(s.Rings()))
	fmt.Printf("wrote %s (%d vertices, %d triangles)\n", path, len(m.Vertices), len(m.Triangles))

	if *stlOut != "" {
		if err := s.ExportSTL(*stlOut); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", *stlOut)
	}
	return nil
}

func cmdInfo(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: sketchtool info <mesh.obj>")
	}
	m, err := formats.LoadPoly(args[0])
	if err != nil {
		return err
	}
	printInfo(args[0], m)
	return nil
}

func printInfo(path string, m *mesh.Mesh) {
	b := m.Bounds()
	fmt.Printf("Mesh:      %s\n", path)
	fmt.Printf("Vertices:  %d\n", len(m.Vertices))
	fmt.Printf("Triangles: %d\n", len(m.Triangles))
	fmt.Printf("Bounds:    (%.2f, %.2f, %.2f) - (%.2f, %.2f, %.2f)\n",
		b.Min.X, b.Min.Y, b.Min.Z, b.Max.X, b.Max.Y, b.Max.Z)
	if err := m.Validate(); err != nil {
		fmt.Printf("Valid:     no (%v)\n", err)
	} else {
		fmt.Printf("Valid:     yes\n")
	}
	fmt.Printf("Closed:    %v\n", m.IsClosed())
}

func cmdSTL(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: sketchtool stl <mesh.obj> <out.stl>")
	}
	m, err := formats.LoadPoly(args[0])
	if err != nil {
		return err
	}
	if err := formats.SaveSTL(args[1], m); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d triangles)\n", args[1], len(m.Triangles))
	return nil
}

func cmdPreview(args []string) error {
	fs := flag.NewFlagSet("preview", flag.ExitOnError)
	size := fs.Int("size", 512, "Image width and height")
	f := pipelineFlags(fs)
	fs.Parse(args)

	if fs.NArg() < 2 {
		return fmt.Errorf("usage: sketchtool preview [flags] <stroke.txt> <out.png>")
	}

	s, err := session(f, fs.Arg(0))
	if err != nil {
		return err
	}
	defer logger.Sync()

	if _, err := s.Triangulate(); err != nil {
		return err
	}

	opts := preview.DefaultOptions()
	opts.Size = *size
	sc := preview.Scene{
		Stroke:   s.Stroke().Points(),
		Boundary: s.Boundary(),
		Spine:    s.Spine(),
	}
	if err := preview.SavePNG(fs.Arg(1), sc, opts); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", fs.Arg(1))
	return nil
}
