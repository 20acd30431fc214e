// Package preview rasterises a stroke, its boundary points and its spine
// chords into an image, for inspecting the pipeline without a window.
package preview

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	gomath "math"
	"os"

	"golang.org/x/image/vector"

	"github.com/Faultbox/sketch3d/internal/sketch"
	"github.com/Faultbox/sketch3d/pkg/math"
)

// ErrEmpty is returned when there is no stroke to draw.
var ErrEmpty = errors.New("preview: empty stroke")

// Scene is what gets drawn.
type Scene struct {
	Stroke   []math.Vec3
	Boundary []sketch.BoundaryPoint
	Spine    sketch.Spine
}

// Options controls the image.
type Options struct {
	Size        int     // width and height in pixels
	Margin      float32 // pixels kept clear around the drawing
	LineWidth   float32
	PointRadius float32

	Background color.RGBA
	Fill       color.RGBA
	Outline    color.RGBA
	Boundary   color.RGBA
	Chords     color.RGBA
}

// DefaultOptions returns a 512 pixel preview.
func DefaultOptions() Options {
	return Options{
		Size:        512,
		Margin:      16,
		LineWidth:   2,
		PointRadius: 4,
		Background:  color.RGBA{0, 0, 0, 255},
		Fill:        color.RGBA{40, 40, 60, 255},
		Outline:     color.RGBA{255, 255, 255, 255},
		Boundary:    color.RGBA{255, 77, 51, 255},
		Chords:      color.RGBA{77, 204, 255, 255},
	}
}

// Render draws the scene scaled to fit the image, keeping its aspect ratio.
func Render(sc Scene, opts Options) (*image.RGBA, error) {
	if len(sc.Stroke) < 2 {
		return nil, ErrEmpty
	}
	if opts.Size <= 0 {
		return nil, fmt.Errorf("preview: size %d must be positive", opts.Size)
	}

	dst := image.NewRGBA(image.Rect(0, 0, opts.Size, opts.Size))
	fill(dst, opts.Background)

	f := fit(sc.Stroke, opts)
	r := vector.NewRasterizer(opts.Size, opts.Size)

	// Interior
	x, y := f.apply(sc.Stroke[0])
	r.MoveTo(x, y)
	for _, p := range sc.Stroke[1:] {
		r.LineTo(f.apply(p))
	}
	r.ClosePath()
	draw(r, dst, opts.Fill)

	// Outline
	for i := 1; i < len(sc.Stroke); i++ {
		segment(r, f, sc.Stroke[i-1], sc.Stroke[i], opts.LineWidth)
	}
	draw(r, dst, opts.Outline)

	if sc.Spine.Len() > 0 && sc.Spine.ValidFor(sc.Boundary) {
		for _, seg := range sc.Spine.Segments {
			segment(r, f, sc.Boundary[seg.First].Pos, sc.Boundary[seg.Second].Pos, opts.LineWidth/2)
		}
		draw(r, dst, opts.Chords)
	}

	if len(sc.Boundary) > 0 {
		for _, b := range sc.Boundary {
			cx, cy := f.apply(b.Pos)
			circle(r, cx, cy, opts.PointRadius)
		}
		draw(r, dst, opts.Boundary)
	}
	return dst, nil
}

// SavePNG renders the scene into a PNG file.
func SavePNG(path string, sc Scene, opts Options) error {
	img, err := Render(sc, opts)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WritePNG(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WritePNG encodes img as PNG.
func WritePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("preview: encoding png: %w", err)
	}
	return nil
}

// transform maps drawing coordinates to image pixels.
type transform struct {
	minX, minY float32
	scale      float32
	offX, offY float32
}

func (t transform) apply(p math.Vec3) (float32, float32) {
	return t.offX + (p.X-t.minX)*t.scale, t.offY + (p.Y-t.minY)*t.scale
}

func fit(pts []math.Vec3, opts Options) transform {
	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := minX, minY
	for _, p := range pts[1:] {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}

	avail := float32(opts.Size) - 2*opts.Margin
	if avail <= 0 {
		avail = float32(opts.Size)
	}
	extent := max(maxX-minX, maxY-minY)
	scale := float32(1)
	if extent > 0 {
		scale = avail / extent
	}
	return transform{
		minX:  minX,
		minY:  minY,
		scale: scale,
		offX:  (float32(opts.Size) - (maxX-minX)*scale) / 2,
		offY:  (float32(opts.Size) - (maxY-minY)*scale) / 2,
	}
}

// segment adds a quad of the given width along a→b.
func segment(r *vector.Rasterizer, t transform, a, b math.Vec3, width float32) {
	x0, y0 := t.apply(a)
	x1, y1 := t.apply(b)
	dx, dy := x1-x0, y1-y0
	l := float32(gomath.Hypot(float64(dx), float64(dy)))
	if l == 0 {
		return
	}
	nx, ny := -dy/l*width/2, dx/l*width/2

	// Every quad winds the same way so overlaps do not cancel
	r.MoveTo(x0+nx, y0+ny)
	r.LineTo(x1+nx, y1+ny)
	r.LineTo(x1-nx, y1-ny)
	r.LineTo(x0-nx, y0-ny)
	r.ClosePath()
}

// circle adds a disc approximated by four cubic Béziers.
func circle(r *vector.Rasterizer, cx, cy, radius float32) {
	const k = float32(0.5522847498)
	kr := k * radius
	r.MoveTo(cx, cy-radius)
	r.CubeTo(cx+kr, cy-radius, cx+radius, cy-kr, cx+radius, cy)
	r.CubeTo(cx+radius, cy+kr, cx+kr, cy+radius, cx, cy+radius)
	r.CubeTo(cx-kr, cy+radius, cx-radius, cy+kr, cx-radius, cy)
	r.CubeTo(cx-radius, cy-kr, cx-kr, cy-radius, cx, cy-radius)
	r.ClosePath()
}

// draw composites the accumulated path in c over dst and resets r.
func draw(r *vector.Rasterizer, dst *image.RGBA, c color.RGBA) {
	r.Draw(dst, dst.Bounds(), image.NewUniform(c), image.Point{})
	b := dst.Bounds()
	r.Reset(b.Dx(), b.Dy())
}

func fill(dst *image.RGBA, c color.RGBA) {
	for i := 0; i < len(dst.Pix); i += 4 {
		dst.Pix[i+0] = c.R
		dst.Pix[i+1] = c.G
		dst.Pix[i+2] = c.B
		dst.Pix[i+3] = c.A
	}
}
