package formats

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/Faultbox/sketch3d/pkg/math"
	"github.com/Faultbox/sketch3d/pkg/mesh"
)

// Polygon file errors.
var (
	ErrMalformedLine = errors.New("malformed polygon line")
	ErrFaceIndex     = errors.New("face index out of range")
)

// LoadPoly reads a polygon text file. On error the returned mesh is nil, so
// callers can keep whatever they had loaded before.
func LoadPoly(path string) (*mesh.Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := ParsePoly(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// ParsePoly parses the line-oriented vertex/face format:
//
//	v <x> <y> <z>
//	f <i> <j> <k>
//
// Face indices are 1-based and may carry /tex/normal suffixes, which are
// ignored. Faces with more than three corners are fan-triangulated. Comment
// and directive lines (#, g, s, m, u, o, vn, vt) are skipped.
func ParsePoly(r io.Reader) (*mesh.Mesh, error) {
	m := &mesh.Mesh{}
	type face struct {
		line int
		idx  []uint32
	}
	var faces []face

	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: vertex needs 3 coordinates: %w", lineNo, ErrMalformedLine)
			}
			var xyz [3]float32
			for i := range xyz {
				f, err := strconv.ParseFloat(fields[i+1], 32)
				if err != nil {
					return nil, fmt.Errorf("line %d: %v: %w", lineNo, err, ErrMalformedLine)
				}
				xyz[i] = float32(f)
			}
			m.Vertices = append(m.Vertices, math.Vec3{X: xyz[0], Y: xyz[1], Z: xyz[2]})

		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: face needs 3 indices: %w", lineNo, ErrMalformedLine)
			}
			idx := make([]uint32, 0, len(fields)-1)
			for _, tok := range fields[1:] {
				if slash := strings.IndexByte(tok, '/'); slash >= 0 {
					tok = tok[:slash]
				}
				n, err := strconv.ParseUint(tok, 10, 32)
				if err != nil || n == 0 {
					return nil, fmt.Errorf("line %d: bad face index %q: %w", lineNo, tok, ErrMalformedLine)
				}
				idx = append(idx, uint32(n-1))
			}
			faces = append(faces, face{line: lineNo, idx: idx})

		default:
			// #, g, s, mtllib, usemtl, o, vn, vt and anything else
			continue
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	// Faces may reference vertices defined later in the file.
	n := uint32(len(m.Vertices))
	for _, f := range faces {
		for _, i := range f.idx {
			if i >= n {
				return nil, fmt.Errorf("line %d: index %d of %d vertices: %w", f.line, i+1, n, ErrFaceIndex)
			}
		}
		for k := 1; k+1 < len(f.idx); k++ {
			m.Triangles = append(m.Triangles, mesh.Triangle{f.idx[0], f.idx[k], f.idx[k+1]})
		}
	}

	return m, nil
}

// SavePoly writes m to path in the polygon text format.
func SavePoly(path string, m *mesh.Mesh) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WritePoly(f, m); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WritePoly writes all vertices followed by all faces. Face indices are
// written 1-based without texture or normal suffixes.
func WritePoly(w io.Writer, m *mesh.Mesh) error {
	bw := bufio.NewWriter(w)
	for _, v := range m.Vertices {
		fmt.Fprintf(bw, "v %s %s %s\n", formatFloat(v.X), formatFloat(v.Y), formatFloat(v.Z))
	}
	for _, t := range m.Triangles {
		fmt.Fprintf(bw, "f %d %d %d\n", t[0]+1, t[1]+1, t[2]+1)
	}
	return bw.Flush()
}

// formatFloat prints the shortest representation that parses back to f.
func formatFloat(f float32) string {
	return strconv.FormatFloat(float64(f), 'g', -1, 32)
}
