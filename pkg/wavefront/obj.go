package wavefront

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Faultbox/meshkit/pkg/encoding"
	"github.com/Faultbox/meshkit/pkg/math"
)

// DefaultGroupName names the implicit group that exists before any g line.
const DefaultGroupName = "default"

// FaceVertex is one corner of a face. Position is always present;
// texture coordinate and normal references are optional.
type FaceVertex struct {
	Position int
	TexCoord Index
	Normal   Index
}

// Face is a polygon with at least three corners.
type Face struct {
	Vertices []FaceVertex
}

// GroupMarker records where a group starts in the face list, together with
// the material that was active when its first face was read.
type GroupMarker struct {
	FaceIndex int
	Name      string
	Material  Material
}

// OBJ is a parsed mesh file.
type OBJ struct {
	Positions    []math.Vec3
	Normals      []math.Vec3
	TexCoords    []math.Vec2
	Faces        []Face
	Groups       []GroupMarker  // in face-list order
	Materials    *MaterialTable // every library referenced by mtllib
	MaterialLibs []string       // resolved library paths, in reference order
	Diagnostics  []Diagnostic
}

// ParseOptions controls how a mesh is read.
type ParseOptions struct {
	// Encoding is the text encoding of the mesh and its libraries
	// (empty for UTF-8).
	Encoding string
	// Dir is the directory mtllib references are resolved against.
	// ParseOBJFile sets it to the mesh file's directory.
	Dir string
	// File labels diagnostics and errors.
	File string
}

// objParser carries the state of a single parse.
type objParser struct {
	opts   ParseOptions
	obj    *OBJ
	line   int
	group  string
	mat    Material
	active bool // the current group has emitted a face
}

// ParseOBJ parses a mesh from r. Parsing stops at the first malformed
// number or face; everything else that cannot be understood is reported in
// OBJ.Diagnostics.
func ParseOBJ(r io.Reader, opts ParseOptions) (*OBJ, error) {
	p := &objParser{
		opts: opts,
		obj: &OBJ{
			Materials: NewMaterialTable(),
		},
		group: DefaultGroupName,
		mat:   DefaultMaterial(),
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		p.line++
		if err := p.parseLine(strings.TrimSuffix(scanner.Text(), "\r")); err != nil {
			return p.obj, lineError(opts.File, p.line, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return p.obj, fmt.Errorf("reading mesh: %w", err)
	}

	return p.obj, nil
}

// ParseOBJFile parses the mesh file at path. mtllib references are
// resolved relative to the file's directory.
func ParseOBJFile(path string, opts ParseOptions) (*OBJ, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening mesh: %w", err)
	}
	defer f.Close()

	r, err := encoding.NewReader(f, opts.Encoding)
	if err != nil {
		return nil, err
	}

	opts.Dir = filepath.Dir(path)
	if opts.File == "" {
		opts.File = path
	}
	return ParseOBJ(r, opts)
}

func (p *objParser) parseLine(line string) error {
	if line == "" || line[0] == '#' || line[0] == ' ' {
		return nil
	}

	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	switch directive, args := fields[0], fields[1:]; directive {
	case "v":
		var v [3]float32
		if err := parseFloats(args, v[:]); err != nil {
			return err
		}
		p.obj.Positions = append(p.obj.Positions, math.Vec3{X: v[0], Y: v[1], Z: v[2]})

	case "vn":
		var n [3]float32
		if err := parseFloats(args, n[:]); err != nil {
			return err
		}
		p.obj.Normals = append(p.obj.Normals, math.Vec3{X: n[0], Y: n[1], Z: n[2]})

	case "vt":
		var uv [2]float32
		// The v component is optional; a trailing w is ignored.
		n := len(args)
		if n > 2 {
			n = 2
		}
		if n == 0 {
			return fmt.Errorf("%w: vt needs at least one value", ErrMalformedNumber)
		}
		if err := parseFloats(args, uv[:n]); err != nil {
			return err
		}
		p.obj.TexCoords = append(p.obj.TexCoords, math.Vec2{X: uv[0], Y: uv[1]})

	case "f":
		return p.parseFace(args)

	case "g":
		if len(args) > 0 {
			p.group = args[0]
		}
		p.active = false

	case "usemtl":
		if len(args) == 0 {
			p.diag("usemtl without a name, using default material")
			p.mat = DefaultMaterial()
			return nil
		}
		m, ok := p.obj.Materials.Resolve(args[0])
		if !ok {
			p.diag(fmt.Sprintf("material not found: %s", args[0]))
		}
		p.mat = m

	case "mtllib":
		for _, name := range args {
			p.loadLibrary(name)
		}

	default:
		p.diag(fmt.Sprintf("unsupported directive %q", directive))
	}

	return nil
}

func (p *objParser) parseFace(args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("%w: need at least 3 vertices, got %d", ErrMalformedFace, len(args))
	}

	face := Face{Vertices: make([]FaceVertex, 0, len(args))}
	for _, tok := range args {
		fv, err := parseFaceVertex(tok)
		if err != nil {
			return err
		}
		face.Vertices = append(face.Vertices, fv)
	}

	if !p.active {
		p.active = true
		p.obj.Groups = append(p.obj.Groups, GroupMarker{
			FaceIndex: len(p.obj.Faces),
			Name:      p.group,
			Material:  p.mat,
		})
	}
	p.obj.Faces = append(p.obj.Faces, face)
	return nil
}

// parseFaceVertex splits "pos[/tex[/norm]]". Empty parts are absent.
func parseFaceVertex(tok string) (FaceVertex, error) {
	var idx [3]Index
	for i, part := range strings.SplitN(tok, "/", 3) {
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return FaceVertex{}, fmt.Errorf("%w: %q", ErrMalformedIndex, tok)
		}
		if n < 1 {
			return FaceVertex{}, fmt.Errorf("%w: %q (only positive 1-based indices are supported)", ErrMalformedIndex, tok)
		}
		idx[i] = Present(n - 1)
	}

	pos, ok := idx[0].Get()
	if !ok {
		return FaceVertex{}, fmt.Errorf("%w: vertex %q has no position", ErrMalformedFace, tok)
	}
	return FaceVertex{Position: pos, TexCoord: idx[1], Normal: idx[2]}, nil
}

// loadLibrary appends a material library to the parser's table. A missing
// or broken library is reported and parsing continues.
func (p *objParser) loadLibrary(name string) {
	path := name
	if !filepath.IsAbs(name) {
		path = filepath.Join(p.opts.Dir, name)
	}
	p.obj.MaterialLibs = append(p.obj.MaterialLibs, path)

	diags, err := p.obj.Materials.LoadFile(path, p.opts.Encoding, true)
	p.obj.Diagnostics = append(p.obj.Diagnostics, diags...)
	if err != nil {
		p.diag(fmt.Sprintf("material library %s: %v", name, err))
	}
}

func (p *objParser) diag(msg string) {
	p.obj.Diagnostics = append(p.obj.Diagnostics, Diagnostic{
		File:    p.opts.File,
		Line:    p.line,
		Message: msg,
	})
}
