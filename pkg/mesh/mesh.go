// Package mesh holds the triangle mesh produced by the sketch pipeline or
// loaded from a polygon file.
package mesh

import (
	"errors"
	"fmt"

	"github.com/Faultbox/sketch3d/pkg/math"
)

// Mesh validation errors.
var (
	ErrIndexOutOfRange = errors.New("triangle index out of range")
	ErrNonFinite       = errors.New("non-finite vertex")
)

// Triangle is three indices into Mesh.Vertices. Winding order determines the
// outward normal.
type Triangle [3]uint32

// Mesh is an indexed triangle mesh.
type Mesh struct {
	Vertices  []math.Vec3
	Triangles []Triangle
}

// Bounds holds an axis-aligned bounding box.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// Center returns the center of the box.
func (b Bounds) Center() math.Vec3 {
	return b.Min.Midpoint(b.Max)
}

// Size returns the largest extent of the box.
func (b Bounds) Size() float32 {
	d := b.Max.Sub(b.Min)
	size := d.X
	if d.Y > size {
		size = d.Y
	}
	if d.Z > size {
		size = d.Z
	}
	return size
}

// Clear drops all vertices and triangles, keeping capacity.
func (m *Mesh) Clear() {
	m.Vertices = m.Vertices[:0]
	m.Triangles = m.Triangles[:0]
}

// Empty reports whether the mesh has no triangles.
func (m *Mesh) Empty() bool {
	return m == nil || len(m.Triangles) == 0
}

// Bounds returns the bounding box of all vertices. The zero box is returned
// for an empty mesh.
func (m *Mesh) Bounds() Bounds {
	if len(m.Vertices) == 0 {
		return Bounds{}
	}
	b := Bounds{Min: m.Vertices[0], Max: m.Vertices[0]}
	for _, v := range m.Vertices[1:] {
		b.Min.X = min(b.Min.X, v.X)
		b.Min.Y = min(b.Min.Y, v.Y)
		b.Min.Z = min(b.Min.Z, v.Z)
		b.Max.X = max(b.Max.X, v.X)
		b.Max.Y = max(b.Max.Y, v.Y)
		b.Max.Z = max(b.Max.Z, v.Z)
	}
	return b
}

// FaceNormal returns the unnormalized cross-product normal of triangle i.
func (m *Mesh) FaceNormal(i int) math.Vec3 {
	t := m.Triangles[i]
	v0 := m.Vertices[t[0]]
	u := m.Vertices[t[1]].Sub(v0)
	v := m.Vertices[t[2]].Sub(v0)
	return u.Cross(v)
}

// Validate checks that every index is in range and every vertex is finite.
func (m *Mesh) Validate() error {
	for i, v := range m.Vertices {
		if !v.IsFinite() {
			return fmt.Errorf("vertex %d: %w", i, ErrNonFinite)
		}
	}
	n := uint32(len(m.Vertices))
	for i, t := range m.Triangles {
		for _, idx := range t {
			if idx >= n {
				return fmt.Errorf("triangle %d index %d (of %d vertices): %w", i, idx, n, ErrIndexOutOfRange)
			}
		}
	}
	return nil
}

type edge struct{ from, to uint32 }

// IsClosed reports whether the mesh is a consistently oriented closed surface:
// every directed edge appears exactly once and its reverse appears exactly once.
func (m *Mesh) IsClosed() bool {
	if len(m.Triangles) == 0 {
		return false
	}
	edges := make(map[edge]int, len(m.Triangles)*3)
	for _, t := range m.Triangles {
		for k := 0; k < 3; k++ {
			edges[edge{t[k], t[(k+1)%3]}]++
		}
	}
	for e, n := range edges {
		if n != 1 || edges[edge{e.to, e.from}] != 1 {
			return false
		}
	}
	return true
}
