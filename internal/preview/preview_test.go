package preview

import (
	"bytes"
	"errors"
	"image/color"
	"image/png"
	gomath "math"
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/sketch3d/internal/sketch"
	"github.com/Faultbox/sketch3d/pkg/math"
)

func circleStroke(cx, cy, r float64, n int) []math.Vec3 {
	pts := make([]math.Vec3, 0, n+1)
	for i := 0; i < n; i++ {
		a := 2 * gomath.Pi * float64(i) / float64(n)
		pts = append(pts, math.Vec3{X: float32(cx + r*gomath.Cos(a)), Y: float32(cy + r*gomath.Sin(a))})
	}
	return append(pts, pts[0])
}

func TestRenderFillAndBackground(t *testing.T) {
	opts := DefaultOptions()
	img, err := Render(Scene{Stroke: circleStroke(200, 200, 100, 120)}, opts)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 512 || b.Dy() != 512 {
		t.Fatalf("size: got %v", b)
	}
	if got := img.RGBAAt(256, 256); !nearColor(got, opts.Fill) {
		t.Errorf("center: got %v, want fill %v", got, opts.Fill)
	}
	if got := img.RGBAAt(2, 2); got != opts.Background {
		t.Errorf("corner: got %v, want background %v", got, opts.Background)
	}
	// Rightmost point of the circle lands on the outline
	if got := img.RGBAAt(int(512-16-1), 256); got == opts.Background {
		t.Errorf("outline missing at the right edge: %v", got)
	}
}

func TestRenderBoundaryPoints(t *testing.T) {
	stroke := circleStroke(200, 200, 100, 120)
	b := sketch.OutsideEdges(stroke, 20, 0.5)
	s := sketch.Pair(b)
	opts := DefaultOptions()

	img, err := Render(Scene{Stroke: stroke, Boundary: b, Spine: s}, opts)
	if err != nil {
		t.Fatal(err)
	}
	f := fit(stroke, opts)
	for _, p := range b {
		x, y := f.apply(p.Pos)
		if got := img.RGBAAt(int(x), int(y)); !nearColor(got, opts.Boundary) {
			t.Errorf("boundary point %d at (%v,%v): got %v", p.Index, x, y, got)
		}
	}
}

func TestRenderStaleSpineIgnored(t *testing.T) {
	stroke := circleStroke(200, 200, 100, 60)
	b := sketch.OutsideEdges(stroke, 20, 0.5)
	s := sketch.Pair(b)
	opts := DefaultOptions()
	opts.Boundary = opts.Fill

	withSpine, err := Render(Scene{Stroke: stroke, Boundary: b[:2], Spine: s}, opts)
	if err != nil {
		t.Fatal(err)
	}
	chords := 0
	for i := 0; i < len(withSpine.Pix); i += 4 {
		c := color.RGBA{withSpine.Pix[i], withSpine.Pix[i+1], withSpine.Pix[i+2], withSpine.Pix[i+3]}
		if c == opts.Chords {
			chords++
		}
	}
	if chords != 0 {
		t.Errorf("stale spine drew %d chord pixels", chords)
	}
}

func TestRenderErrors(t *testing.T) {
	if _, err := Render(Scene{}, DefaultOptions()); !errors.Is(err, ErrEmpty) {
		t.Errorf("expected ErrEmpty, got %v", err)
	}
	opts := DefaultOptions()
	opts.Size = 0
	if _, err := Render(Scene{Stroke: circleStroke(0, 0, 1, 8)}, opts); err == nil {
		t.Error("expected an error for zero size")
	}
}

func TestRenderDegenerateExtent(t *testing.T) {
	p := math.Vec3{X: 5, Y: 5}
	if _, err := Render(Scene{Stroke: []math.Vec3{p, p}}, DefaultOptions()); err != nil {
		t.Errorf("single point stroke should still render: %v", err)
	}
}

func TestSavePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preview.png")
	opts := DefaultOptions()
	opts.Size = 128
	if err := SavePNG(path, Scene{Stroke: circleStroke(50, 80, 30, 40)}, opts); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 128 || b.Dy() != 128 {
		t.Errorf("size: got %v", b)
	}
}

// nearColor allows for rounding in the coverage accumulation.
func nearColor(a, b color.RGBA) bool {
	d := func(x, y uint8) bool { return x-y <= 2 || y-x <= 2 }
	return d(a.R, b.R) && d(a.G, b.G) && d(a.B, b.B) && d(a.A, b.A)
}
