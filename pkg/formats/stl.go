package formats

import (
	"io"
	"os"

	"github.com/hschendel/stl"

	"github.com/Faultbox/sketch3d/pkg/mesh"
)

// ToSolid converts m into an STL solid with per-face unit normals.
func ToSolid(m *mesh.Mesh, name string) *stl.Solid {
	solid := &stl.Solid{
		Name:      name,
		Triangles: make([]stl.Triangle, 0, len(m.Triangles)),
	}
	for i, t := range m.Triangles {
		n := m.FaceNormal(i).Normalize()
		tri := stl.Triangle{Normal: stl.Vec3{n.X, n.Y, n.Z}}
		for k, idx := range t {
			v := m.Vertices[idx]
			tri.Vertices[k] = stl.Vec3{v.X, v.Y, v.Z}
		}
		solid.Triangles = append(solid.Triangles, tri)
	}
	return solid
}

// WriteSTL writes m as a binary STL stream.
func WriteSTL(w io.Writer, m *mesh.Mesh, name string) error {
	return ToSolid(m, name).WriteAll(w)
}

// SaveSTL writes m to path as binary STL.
func SaveSTL(path string, m *mesh.Mesh) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteSTL(f, m, "sketch3d"); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
