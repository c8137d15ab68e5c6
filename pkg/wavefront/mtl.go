package wavefront

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Faultbox/meshkit/pkg/encoding"
	"github.com/Faultbox/meshkit/pkg/math"
)

// Material holds Phong lighting parameters.
type Material struct {
	Ambient   math.Vec3 // Ka
	Diffuse   math.Vec3 // Kd
	Specular  math.Vec3 // Ks
	Shininess float32   // Ns
}

// DefaultMaterial returns the material used when none is given or a name
// cannot be resolved: black ambient, white diffuse, no specular, shininess 32.
func DefaultMaterial() Material {
	return Material{
		Ambient:   math.Vec3{X: 0, Y: 0, Z: 0},
		Diffuse:   math.Vec3{X: 1, Y: 1, Z: 1},
		Specular:  math.Vec3{X: 0, Y: 0, Z: 0},
		Shininess: 32,
	}
}

// MaterialTable maps material names to materials. Names are unique;
// appending an existing name overwrites it.
type MaterialTable struct {
	materials map[string]Material
	names     []string // first-appearance order
}

// NewMaterialTable creates an empty table.
func NewMaterialTable() *MaterialTable {
	return &MaterialTable{materials: make(map[string]Material)}
}

// Append adds or replaces a material.
func (t *MaterialTable) Append(name string, m Material) {
	if _, ok := t.materials[name]; !ok {
		t.names = append(t.names, name)
	}
	t.materials[name] = m
}

// Lookup returns a copy of the named material.
func (t *MaterialTable) Lookup(name string) (Material, bool) {
	m, ok := t.materials[name]
	return m, ok
}

// Resolve returns a copy of the named material, or DefaultMaterial and
// false when the name is unknown.
func (t *MaterialTable) Resolve(name string) (Material, bool) {
	if m, ok := t.materials[name]; ok {
		return m, true
	}
	return DefaultMaterial(), false
}

// Names returns material names in the order they were first appended.
func (t *MaterialTable) Names() []string {
	return append([]string(nil), t.names...)
}

// Len returns the number of materials.
func (t *MaterialTable) Len() int {
	return len(t.materials)
}

// Reset removes all materials.
func (t *MaterialTable) Reset() {
	t.materials = make(map[string]Material)
	t.names = nil
}

// Parse reads an MTL library from r and appends its materials to the table.
// file is only used to label diagnostics and errors.
//
// A record opens with newmtl and is committed on a blank or comment line,
// on the next newmtl, or at end of input. Materials committed before a
// malformed number stay in the table.
func (t *MaterialTable) Parse(r io.Reader, file string) ([]Diagnostic, error) {
	var (
		diags   []Diagnostic
		name    string
		current Material
		open    bool
		lineNum int
	)

	commit := func() {
		if open {
			t.Append(name, current)
			open = false
		}
	}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSuffix(scanner.Text(), "\r")

		fields := strings.Fields(line)
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			commit()
			continue
		}

		keyword, args := fields[0], fields[1:]
		if keyword == "newmtl" {
			commit()
			if len(args) == 0 {
				diags = append(diags, Diagnostic{File: file, Line: lineNum, Message: "newmtl without a name"})
				continue
			}
			name = args[0]
			current = DefaultMaterial()
			open = true
			continue
		}

		var dst []float32
		var rgb [3]float32
		var ns [1]float32
		switch keyword {
		case "Ka", "Kd", "Ks":
			dst = rgb[:]
		case "Ns":
			dst = ns[:]
		default:
			diags = append(diags, Diagnostic{File: file, Line: lineNum, Message: fmt.Sprintf("unsupported material property %q", keyword)})
			continue
		}

		if err := parseFloats(args, dst); err != nil {
			return diags, lineError(file, lineNum, err)
		}
		if !open {
			diags = append(diags, Diagnostic{File: file, Line: lineNum, Message: fmt.Sprintf("%s outside of a newmtl record", keyword)})
			continue
		}

		color := math.Vec3{X: rgb[0], Y: rgb[1], Z: rgb[2]}
		switch keyword {
		case "Ka":
			current.Ambient = color
		case "Kd":
			current.Diffuse = color
		case "Ks":
			current.Specular = color
		case "Ns":
			current.Shininess = ns[0]
		}
	}
	if err := scanner.Err(); err != nil {
		return diags, fmt.Errorf("reading material library: %w", err)
	}

	commit()
	return diags, nil
}

// LoadFile parses the MTL file at path, decoding it from the named text
// encoding. The table is cleared first unless appendMode is set.
func (t *MaterialTable) LoadFile(path, textEncoding string, appendMode bool) ([]Diagnostic, error) {
	if !appendMode {
		t.Reset()
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening material library: %w", err)
	}
	defer f.Close()

	r, err := encoding.NewReader(f, textEncoding)
	if err != nil {
		return nil, err
	}
	return t.Parse(r, path)
}
