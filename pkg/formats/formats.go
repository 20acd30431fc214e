// Package formats reads and writes the on-disk artefacts of a sketch session:
// Wavefront-style polygon meshes (.obj), binary STL exports and plain-text
// stroke files.
package formats
