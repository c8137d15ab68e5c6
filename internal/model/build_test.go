package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/meshkit/pkg/math"
	"github.com/Faultbox/meshkit/pkg/wavefront"
)

func buildString(t *testing.T, src string) (*Mesh, error) {
	t.Helper()
	obj, err := wavefront.ParseOBJ(strings.NewReader(src), wavefront.ParseOptions{})
	require.NoError(t, err)
	return Build(obj)
}

func vertexAt(buf []float32, i int) Vertex {
	v := buf[i*FloatsPerVertex:]
	return Vertex{
		Position: math.V3(v[0], v[1], v[2]),
		Normal:   math.V3(v[3], v[4], v[5]),
		TexCoord: math.Vec2{X: v[6], Y: v[7]},
	}
}

func TestBuildTriangles(t *testing.T) {
	mesh, err := buildString(t, `v 0 0 0
v 1 0 0
v 0 1 0
v 1 1 0
f 1 2 3
f 2 4 3
`)
	require.NoError(t, err)

	assert.Equal(t, 6, mesh.VertexCount())
	assert.Len(t, mesh.Buffer, 6*FloatsPerVertex)
	require.Len(t, mesh.Groups, 1)
	assert.Equal(t, 0, mesh.Groups[0].Offset)
	assert.Equal(t, wavefront.DefaultGroupName, mesh.Groups[0].Name)
	assert.Equal(t, wavefront.DefaultMaterial(), mesh.Groups[0].Material)
	assert.False(t, mesh.HasNormals)
	assert.False(t, mesh.HasTexCoords)
}

func TestBuildFaceNormal(t *testing.T) {
	mesh, err := buildString(t, "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n")
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		v := vertexAt(mesh.Buffer, i)
		assert.Equal(t, math.V3(0, 0, 1), v.Normal)
		assert.Equal(t, math.Vec2{}, v.TexCoord)
	}
	assert.Equal(t, math.V3(1, 0, 0), vertexAt(mesh.Buffer, 1).Position)
}

func TestBuildFanTriangulation(t *testing.T) {
	mesh, err := buildString(t, `v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
v -1 1 0
f 1 2 3 4 5
`)
	require.NoError(t, err)
	require.Equal(t, 9, mesh.VertexCount())

	want := []math.Vec3{
		{}, {X: 1}, {X: 1, Y: 1},
		{}, {X: 1, Y: 1}, {Y: 1},
		{}, {Y: 1}, {X: -1, Y: 1},
	}
	for i, p := range want {
		assert.Equal(t, p, vertexAt(mesh.Buffer, i).Position, "vertex %d", i)
	}
}

func TestBuildFileAttributes(t *testing.T) {
	mesh, err := buildString(t, `v 0 0 0
v 1 0 0
v 0 1 0
vt 0.25 0.75
vn 0 1 0
f 1/1/1 2/1/1 3/1/1
`)
	require.NoError(t, err)
	assert.True(t, mesh.HasNormals)
	assert.True(t, mesh.HasTexCoords)

	v := vertexAt(mesh.Buffer, 2)
	assert.Equal(t, math.V3(0, 1, 0), v.Normal)
	assert.Equal(t, math.Vec2{X: 0.25, Y: 0.75}, v.TexCoord)
}

func TestBuildDegenerateTriangle(t *testing.T) {
	mesh, err := buildString(t, "v 0 0 0\nv 1 0 0\nv 2 0 0\nf 1 2 3\n")
	require.NoError(t, err)
	assert.Equal(t, math.Vec3{}, vertexAt(mesh.Buffer, 0).Normal)
}

func TestBuildGroupOffsets(t *testing.T) {
	mesh, err := buildString(t, `v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
g quad
f 1 2 3 4
g tri
f 1 2 3
f 1 3 4
g empty
g last
f 2 3 4
`)
	require.NoError(t, err)

	require.Len(t, mesh.Groups, 3)
	assert.Equal(t, "quad", mesh.Groups[0].Name)
	assert.Equal(t, 0, mesh.Groups[0].Offset)
	assert.Equal(t, "tri", mesh.Groups[1].Name)
	assert.Equal(t, 6, mesh.Groups[1].Offset)
	assert.Equal(t, "last", mesh.Groups[2].Name)
	assert.Equal(t, 12, mesh.Groups[2].Offset)
	assert.Equal(t, 15, mesh.VertexCount())
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		err  error
	}{
		{"no faces", "v 0 0 0\nv 1 0 0\nv 0 1 0\n", ErrNoFaces},
		{"position out of range", "v 0 0 0\nv 1 0 0\nf 1 2 3\n", ErrIndexOutOfRange},
		{"normal out of range", "v 0 0 0\nv 1 0 0\nv 0 1 0\nvn 0 0 1\nf 1//1 2//2 3//1\n", ErrIndexOutOfRange},
		{"texcoord out of range", "v 0 0 0\nv 1 0 0\nv 0 1 0\nvt 0 0\nf 1/1 2/3 3/1\n", ErrIndexOutOfRange},
		{"missing normal", "v 0 0 0\nv 1 0 0\nv 0 1 0\nvn 0 0 1\nf 1//1 2 3//1\n", ErrMixedAttributes},
		{"missing texcoord", "v 0 0 0\nv 1 0 0\nv 0 1 0\nvt 0 0\nf 1/1 2/1 3\n", ErrMixedAttributes},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := buildString(t, tt.src)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestBuildShortFace(t *testing.T) {
	obj := &wavefront.OBJ{
		Positions: []math.Vec3{{}, {X: 1}},
		Faces:     []wavefront.Face{{Vertices: []wavefront.FaceVertex{{Position: 0}, {Position: 1}}}},
	}
	_, err := Build(obj)
	assert.ErrorIs(t, err, wavefront.ErrMalformedFace)
}

func TestComputeBounds(t *testing.T) {
	mesh, err := buildString(t, "v -1 2 0\nv 3 -4 5\nv 0 0 -6\nf 1 2 3\n")
	require.NoError(t, err)

	b := computeBounds(mesh.Buffer)
	assert.Equal(t, math.V3(-1, -4, -6), b.Min)
	assert.Equal(t, math.V3(3, 2, 5), b.Max)
	assert.Equal(t, Bounds{}, computeBounds(nil))
}

func TestBuildFirstMarkerMustStartAtFirstFace(t *testing.T) {
	obj, err := wavefront.ParseOBJ(strings.NewReader("v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\nf 1 3 2\n"), wavefront.ParseOptions{})
	require.NoError(t, err)
	obj.Groups[0].FaceIndex = 1

	_, err = Build(obj)
	assert.ErrorIs(t, err, ErrGroupMarkers)
}
