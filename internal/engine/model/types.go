// Package model turns sketch geometry into GPU-ready vertex data: the lit
// triangle mesh for the 3D view and the line overlays for the 2D view.
package model

import "github.com/Faultbox/sketch3d/pkg/mesh"

// Vertex is one flat-shaded mesh vertex.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
}

// Mesh holds unindexed triangles ready for upload, three vertices per face.
type Mesh struct {
	Vertices []Vertex
	Bounds   mesh.Bounds
	Skipped  int // degenerate faces left out
}

// TriangleCount returns the number of triangles in the buffer.
func (m *Mesh) TriangleCount() int {
	if m == nil {
		return 0
	}
	return len(m.Vertices) / 3
}
