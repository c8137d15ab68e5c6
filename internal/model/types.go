// Package model flattens parsed meshes into an interleaved vertex buffer
// split into named groups, and edits and exports that buffer.
package model

import (
	"errors"

	"github.com/Faultbox/meshkit/pkg/math"
	"github.com/Faultbox/meshkit/pkg/wavefront"
)

// Buffer layout: 3 position, 3 normal, 2 texcoord floats per vertex.
const (
	FloatsPerVertex = 8
	PositionOffset  = 0
	NormalOffset    = 3
	TexCoordOffset  = 6

	bytesPerFloat = 4
)

// MaterialSuffix is appended to a group name to form its exported
// material name.
const MaterialSuffix = "-material"

// Model errors.
var (
	ErrNoFaces           = errors.New("mesh has no faces")
	ErrIndexOutOfRange   = errors.New("face index out of range")
	ErrMixedAttributes   = errors.New("vertex lacks an attribute the rest of the mesh has")
	ErrGroupMarkers      = errors.New("group markers are not in face order")
	ErrGroupOutOfRange   = errors.New("group index out of range")
	ErrSingularTransform = errors.New("transform is not invertible")
	ErrEmptyModel        = errors.New("no mesh loaded")
	ErrSavePath          = errors.New("mesh path collides with its material library")
)

// Vertex is one decoded entry of the interleaved buffer.
type Vertex struct {
	Position math.Vec3
	Normal   math.Vec3
	TexCoord math.Vec2
}

// Group is a named, contiguous run of buffer vertices sharing a material.
// Offset is the index of the group's first vertex; the group extends to the
// next group's offset, or to the end of the buffer for the last group.
type Group struct {
	Offset   int
	Name     string
	Material wavefront.Material
}

// DrawRange is what a renderer needs to draw one group.
type DrawRange struct {
	Name     string
	First    int // first vertex
	Count    int // vertex count, a multiple of 3
	Material wavefront.Material
}

// Mesh is the output of Build.
type Mesh struct {
	Buffer       []float32
	Groups       []Group
	HasNormals   bool // normals came from the file rather than face normals
	HasTexCoords bool // texcoords came from the file rather than zeros
}

// VertexCount returns the number of vertices in the buffer.
func (m *Mesh) VertexCount() int {
	return len(m.Buffer) / FloatsPerVertex
}

// Bounds holds an axis-aligned bounding box.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// LoadOptions contains options for loading meshes.
type LoadOptions struct {
	// Encoding is the text encoding of mesh and material files, and of
	// files written by Save. Empty means UTF-8.
	Encoding string
}
