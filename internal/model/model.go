package model

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/meshkit/internal/logger"
	"github.com/Faultbox/meshkit/pkg/math"
	"github.com/Faultbox/meshkit/pkg/wavefront"
)

// Model owns one loaded mesh: the interleaved vertex buffer and its group
// table. It is not safe for concurrent use; callers serialize Load, Save,
// ApplyMaterial and ApplyTransform against readers of Buffer and Groups.
type Model struct {
	opts LoadOptions

	path         string
	buffer       []float32
	groups       []Group
	hasNormals   bool
	hasTexCoords bool
	libraries    []string
	diagnostics  []wavefront.Diagnostic
}

// New creates an empty model.
func New(opts LoadOptions) *Model {
	return &Model{opts: opts}
}

// Load parses the mesh at path (and any material libraries it references)
// and replaces the model's contents. On failure the model is left empty.
func (m *Model) Load(path string) error {
	m.Reset()

	obj, err := wavefront.ParseOBJFile(path, wavefront.ParseOptions{Encoding: m.opts.Encoding})
	if obj != nil {
		m.diagnostics = obj.Diagnostics
		for _, d := range obj.Diagnostics {
			logger.Warn(d.Message, zap.String("file", d.File), zap.Int("line", d.Line))
		}
	}
	if err != nil {
		logger.Error("failed to parse mesh", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("loading %s: %w", path, err)
	}

	mesh, err := Build(obj)
	if err != nil {
		logger.Error("failed to build mesh", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("loading %s: %w", path, err)
	}

	m.path = path
	m.buffer = mesh.Buffer
	m.groups = mesh.Groups
	m.hasNormals = mesh.HasNormals
	m.hasTexCoords = mesh.HasTexCoords
	m.libraries = obj.MaterialLibs

	logger.Info("mesh loaded",
		zap.String("path", path),
		zap.Int("vertices", m.VertexCount()),
		zap.Int("groups", len(m.groups)),
		zap.Int("materials", obj.Materials.Len()),
		zap.Int("diagnostics", len(m.diagnostics)),
	)
	return nil
}

// Reset empties the model.
func (m *Model) Reset() {
	m.path = ""
	m.buffer = nil
	m.groups = nil
	m.hasNormals = false
	m.hasTexCoords = false
	m.libraries = nil
	m.diagnostics = nil
}

// Loaded reports whether a mesh is loaded.
func (m *Model) Loaded() bool {
	return m.buffer != nil
}

// Path returns the path of the loaded mesh.
func (m *Model) Path() string {
	return m.path
}

// Buffer returns a read-only view of the interleaved vertex buffer, valid
// until the next Load or Reset. It is nil when nothing is loaded.
func (m *Model) Buffer() []float32 {
	return m.buffer[:len(m.buffer):len(m.buffer)]
}

// ByteLen returns the buffer size in bytes.
func (m *Model) ByteLen() int {
	return len(m.buffer) * bytesPerFloat
}

// VertexCount returns the number of vertices in the buffer.
func (m *Model) VertexCount() int {
	return len(m.buffer) / FloatsPerVertex
}

// Vertex decodes vertex i from the buffer. Like slice indexing, it panics
// if i is not in [0, VertexCount()).
func (m *Model) Vertex(i int) Vertex {
	v := m.buffer[i*FloatsPerVertex : (i+1)*FloatsPerVertex]
	return Vertex{
		Position: math.Vec3{X: v[PositionOffset], Y: v[PositionOffset+1], Z: v[PositionOffset+2]},
		Normal:   math.Vec3{X: v[NormalOffset], Y: v[NormalOffset+1], Z: v[NormalOffset+2]},
		TexCoord: math.Vec2{X: v[TexCoordOffset], Y: v[TexCoordOffset+1]},
	}
}

// HasNormals reports whether normals were read from the file.
func (m *Model) HasNormals() bool {
	return m.hasNormals
}

// HasTexCoords reports whether texture coordinates were read from the file.
func (m *Model) HasTexCoords() bool {
	return m.hasTexCoords
}

// MaterialLibraries returns the material library paths the mesh referenced.
func (m *Model) MaterialLibraries() []string {
	return append([]string(nil), m.libraries...)
}

// Diagnostics returns the non-fatal problems found by the last Load.
func (m *Model) Diagnostics() []wavefront.Diagnostic {
	return append([]wavefront.Diagnostic(nil), m.diagnostics...)
}

// Bounds returns the bounding box of the current vertex positions.
func (m *Model) Bounds() Bounds {
	return computeBounds(m.buffer)
}

// GroupCount returns the number of groups.
func (m *Model) GroupCount() int {
	return len(m.groups)
}

// Groups returns a copy of the group table.
func (m *Model) Groups() []Group {
	return append([]Group(nil), m.groups...)
}

// GroupName returns the name of group i.
func (m *Model) GroupName(i int) (string, error) {
	if err := m.checkGroup(i); err != nil {
		return "", err
	}
	return m.groups[i].Name, nil
}

// GroupMaterial returns the material of group i.
func (m *Model) GroupMaterial(i int) (wavefront.Material, error) {
	if err := m.checkGroup(i); err != nil {
		return wavefront.Material{}, err
	}
	return m.groups[i].Material, nil
}

// GroupRange returns the first vertex and vertex count of group i.
func (m *Model) GroupRange(i int) (start, count int, err error) {
	if err := m.checkGroup(i); err != nil {
		return 0, 0, err
	}
	start = m.groups[i].Offset
	end := m.VertexCount()
	if i+1 < len(m.groups) {
		end = m.groups[i+1].Offset
	}
	return start, end - start, nil
}

// FindGroup returns the index of the first group with the given name.
func (m *Model) FindGroup(name string) (int, bool) {
	for i, g := range m.groups {
		if g.Name == name {
			return i, true
		}
	}
	return -1, false
}

// DrawRanges returns one draw call per group.
func (m *Model) DrawRanges() []DrawRange {
	ranges := make([]DrawRange, len(m.groups))
	for i, g := range m.groups {
		start, count, _ := m.GroupRange(i)
		ranges[i] = DrawRange{
			Name:     g.Name,
			First:    start,
			Count:    count,
			Material: g.Material,
		}
	}
	return ranges
}

func (m *Model) checkGroup(i int) error {
	if i < 0 || i >= len(m.groups) {
		return fmt.Errorf("%w: %d (have %d)", ErrGroupOutOfRange, i, len(m.groups))
	}
	return nil
}
