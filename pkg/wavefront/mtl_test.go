package wavefront

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/meshkit/pkg/math"
)

const twoMaterials = `# exported
newmtl red
Ka 0.1 0 0
Kd 1 0 0
Ks 0.5 0.5 0.5
Ns 64

newmtl plain
Kd 0.2 0.3 0.4
`

func TestDefaultMaterial(t *testing.T) {
	m := DefaultMaterial()
	assert.Equal(t, math.Vec3{}, m.Ambient)
	assert.Equal(t, math.Vec3{X: 1, Y: 1, Z: 1}, m.Diffuse)
	assert.Equal(t, math.Vec3{}, m.Specular)
	assert.Equal(t, float32(32), m.Shininess)
}

func TestMaterialTableParse(t *testing.T) {
	table := NewMaterialTable()
	diags, err := table.Parse(strings.NewReader(twoMaterials), "lib.mtl")
	require.NoError(t, err)
	assert.Empty(t, diags)
	assert.Equal(t, 2, table.Len())
	assert.Equal(t, []string{"red", "plain"}, table.Names())

	red, ok := table.Lookup("red")
	require.True(t, ok)
	assert.Equal(t, Material{
		Ambient:   math.Vec3{X: 0.1},
		Diffuse:   math.Vec3{X: 1},
		Specular:  math.Vec3{X: 0.5, Y: 0.5, Z: 0.5},
		Shininess: 64,
	}, red)

	// Unset fields keep their defaults.
	plain, ok := table.Lookup("plain")
	require.True(t, ok)
	assert.Equal(t, math.Vec3{X: 0.2, Y: 0.3, Z: 0.4}, plain.Diffuse)
	assert.Equal(t, float32(32), plain.Shininess)
}

func TestMaterialTableAppendOverwrites(t *testing.T) {
	table := NewMaterialTable()
	table.Append("a", DefaultMaterial())
	table.Append("a", Material{Shininess: 5})

	assert.Equal(t, 1, table.Len())
	m, _ := table.Lookup("a")
	assert.Equal(t, float32(5), m.Shininess)
}

func TestMaterialTableResolve(t *testing.T) {
	table := NewMaterialTable()
	table.Append("known", Material{Shininess: 8})

	m, ok := table.Resolve("known")
	assert.True(t, ok)
	assert.Equal(t, float32(8), m.Shininess)

	m, ok = table.Resolve("missing")
	assert.False(t, ok)
	assert.Equal(t, DefaultMaterial(), m)
}

func TestMaterialTableLookupIsCopy(t *testing.T) {
	table := NewMaterialTable()
	table.Append("a", DefaultMaterial())

	m, _ := table.Lookup("a")
	m.Shininess = 1

	again, _ := table.Lookup("a")
	assert.Equal(t, float32(32), again.Shininess)
}

func TestMaterialTableDiagnostics(t *testing.T) {
	src := "Kd 1 1 1\nnewmtl a\nmap_Kd tex.png\nillum 2\n"
	table := NewMaterialTable()
	diags, err := table.Parse(strings.NewReader(src), "lib.mtl")
	require.NoError(t, err)

	require.Len(t, diags, 3)
	assert.Equal(t, 1, diags[0].Line)
	assert.Contains(t, diags[0].Message, "outside of a newmtl record")
	assert.Contains(t, diags[1].Message, "map_Kd")
	assert.Equal(t, "lib.mtl:4: unsupported material property \"illum\"", diags[2].String())
	assert.Equal(t, 1, table.Len())
}

func TestMaterialTableBlankLineClosesRecord(t *testing.T) {
	src := "newmtl a\nKd 0 1 0\n\nKs 1 1 1\n"
	table := NewMaterialTable()
	diags, err := table.Parse(strings.NewReader(src), "")
	require.NoError(t, err)

	require.Len(t, diags, 1)
	a, _ := table.Lookup("a")
	assert.Equal(t, math.Vec3{}, a.Specular)
}

func TestMaterialTableMalformedNumber(t *testing.T) {
	src := "newmtl ok\nKd 1 1 1\nnewmtl bad\nKd 1 x 1\n"
	table := NewMaterialTable()
	_, err := table.Parse(strings.NewReader(src), "lib.mtl")
	require.ErrorIs(t, err, ErrMalformedNumber)
	assert.Contains(t, err.Error(), "lib.mtl:4")

	// Records committed before the error are kept.
	_, ok := table.Lookup("ok")
	assert.True(t, ok)
}

func TestMaterialTableLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lib.mtl")
	require.NoError(t, os.WriteFile(path, []byte(twoMaterials), 0644))

	table := NewMaterialTable()
	table.Append("old", DefaultMaterial())

	_, err := table.LoadFile(path, "", true)
	require.NoError(t, err)
	assert.Equal(t, 3, table.Len())

	_, err = table.LoadFile(path, "", false)
	require.NoError(t, err)
	assert.Equal(t, 2, table.Len())

	_, err = table.LoadFile(filepath.Join(dir, "missing.mtl"), "", true)
	assert.Error(t, err)
}
