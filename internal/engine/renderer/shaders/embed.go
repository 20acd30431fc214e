// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// MeshVertexShader transforms lit mesh vertices.
//
//go:embed mesh.vert
var MeshVertexShader string

// MeshFragmentShader applies Phong lighting.
//
//go:embed mesh.frag
var MeshFragmentShader string

// LineVertexShader places 2D overlay points in window coordinates.
//
//go:embed line.vert
var LineVertexShader string

// LineFragmentShader fills overlay lines and points with a flat colour.
//
//go:embed line.frag
var LineFragmentShader string
