package formats

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/Faultbox/sketch3d/pkg/math"
)

// LoadStroke reads a stroke point file.
func LoadStroke(path string) ([]math.Vec2, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseStroke(f)
}

// ParseStroke reads one "x y" sample per line. Blank lines and lines starting
// with # are ignored.
func ParseStroke(r io.Reader) ([]math.Vec2, error) {
	var pts []math.Vec2
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("line %d: want 2 coordinates, got %d: %w", lineNo, len(fields), ErrMalformedLine)
		}
		x, err := strconv.ParseFloat(fields[0], 32)
		if err != nil {
			return nil, fmt.Errorf("line %d: %v: %w", lineNo, err, ErrMalformedLine)
		}
		y, err := strconv.ParseFloat(fields[1], 32)
		if err != nil {
			return nil, fmt.Errorf("line %d: %v: %w", lineNo, err, ErrMalformedLine)
		}
		pts = append(pts, math.Vec2{X: float32(x), Y: float32(y)})
	}
	return pts, sc.Err()
}

// WriteStroke writes the X/Y of each point, one per line.
func WriteStroke(w io.Writer, pts []math.Vec3) error {
	bw := bufio.NewWriter(w)
	for _, p := range pts {
		fmt.Fprintf(bw, "%s %s\n", formatFloat(p.X), formatFloat(p.Y))
	}
	return bw.Flush()
}

// SaveStroke writes pts to path.
func SaveStroke(path string, pts []math.Vec3) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteStroke(f, pts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
