package wavefront

import (
	"bufio"
	"fmt"
	"io"

	"github.com/Faultbox/meshkit/pkg/math"
)

// lineWriter buffers output and keeps the first write error.
type lineWriter struct {
	w   *bufio.Writer
	err error
}

func (lw *lineWriter) printf(format string, args ...any) {
	if lw.err != nil {
		return
	}
	_, lw.err = fmt.Fprintf(lw.w, format, args...)
}

func (lw *lineWriter) flush() error {
	if lw.err != nil {
		return lw.err
	}
	return lw.w.Flush()
}

// OBJWriter writes mesh directives. Face indices are 1-based, as in the
// file format. Errors are sticky and returned by Flush.
type OBJWriter struct {
	lw lineWriter
}

// NewOBJWriter creates a writer on w.
func NewOBJWriter(w io.Writer) *OBJWriter {
	return &OBJWriter{lw: lineWriter{w: bufio.NewWriter(w)}}
}

// MaterialLib writes an mtllib line.
func (o *OBJWriter) MaterialLib(name string) {
	o.lw.printf("mtllib %s\n", name)
}

// Vertex writes a v line.
func (o *OBJWriter) Vertex(p math.Vec3) {
	o.lw.printf("v %s %s %s\n", FormatFloat(p.X), FormatFloat(p.Y), FormatFloat(p.Z))
}

// Group writes a g line.
func (o *OBJWriter) Group(name string) {
	o.lw.printf("g %s\n", name)
}

// UseMaterial writes a usemtl line.
func (o *OBJWriter) UseMaterial(name string) {
	o.lw.printf("usemtl %s\n", name)
}

// Triangle writes a position-only f line with 1-based indices.
func (o *OBJWriter) Triangle(a, b, c int) {
	o.lw.printf("f %d %d %d\n", a, b, c)
}

// Flush writes buffered output and returns the first error encountered.
func (o *OBJWriter) Flush() error {
	return o.lw.flush()
}

// MTLWriter writes material library records.
type MTLWriter struct {
	lw lineWriter
}

// NewMTLWriter creates a writer on w.
func NewMTLWriter(w io.Writer) *MTLWriter {
	return &MTLWriter{lw: lineWriter{w: bufio.NewWriter(w)}}
}

// Material writes one newmtl record followed by a blank separator line.
func (m *MTLWriter) Material(name string, mat Material) {
	m.lw.printf("newmtl %s\n", name)
	m.lw.printf("Ka %s\n", formatVec3(mat.Ambient))
	m.lw.printf("Kd %s\n", formatVec3(mat.Diffuse))
	m.lw.printf("Ks %s\n", formatVec3(mat.Specular))
	m.lw.printf("Ns %s\n", FormatFloat(mat.Shininess))
	m.lw.printf("\n")
}

// Flush writes buffered output and returns the first error encountered.
func (m *MTLWriter) Flush() error {
	return m.lw.flush()
}

func formatVec3(v math.Vec3) string {
	return FormatFloat(v.X) + " " + FormatFloat(v.Y) + " " + FormatFloat(v.Z)
}
