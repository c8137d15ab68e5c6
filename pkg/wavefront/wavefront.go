// Package wavefront parses and writes the Wavefront OBJ mesh format and its
// MTL material library companion.
//
// Only the subset needed to build a flat, grouped vertex buffer is
// supported: positions, normals, texture coordinates, polygonal faces,
// groups and Phong materials (Ka, Kd, Ks, Ns).
package wavefront

import (
	"errors"
	"fmt"
	"strconv"
)

// Parse errors.
var (
	ErrMalformedIndex  = errors.New("malformed face index")
	ErrMalformedNumber = errors.New("malformed number")
	ErrMalformedFace   = errors.New("malformed face")
)

// Diagnostic is a non-fatal problem found while parsing. The line is
// skipped or a fallback is used, and parsing continues.
type Diagnostic struct {
	File    string // Source file, empty when parsing a bare reader
	Line    int    // 1-based line number, 0 if not tied to a line
	Message string
}

// String returns the diagnostic as "file:line: message".
func (d Diagnostic) String() string {
	switch {
	case d.File != "" && d.Line > 0:
		return fmt.Sprintf("%s:%d: %s", d.File, d.Line, d.Message)
	case d.Line > 0:
		return fmt.Sprintf("line %d: %s", d.Line, d.Message)
	case d.File != "":
		return fmt.Sprintf("%s: %s", d.File, d.Message)
	default:
		return d.Message
	}
}

// Index is an optional 0-based index into one of the attribute arrays.
// The zero value is absent.
type Index struct {
	n  int
	ok bool
}

// Present returns an index referring to element n.
func Present(n int) Index {
	return Index{n: n, ok: true}
}

// Absent returns an index that refers to nothing.
func Absent() Index {
	return Index{}
}

// Get returns the index and whether it is present.
func (i Index) Get() (int, bool) {
	return i.n, i.ok
}

// Valid reports whether the index is present.
func (i Index) Valid() bool {
	return i.ok
}

// String returns the 0-based index, or "-" when absent.
func (i Index) String() string {
	if !i.ok {
		return "-"
	}
	return strconv.Itoa(i.n)
}

// lineError attaches a source position to a parse error.
func lineError(file string, line int, err error) error {
	if file == "" {
		return fmt.Errorf("line %d: %w", line, err)
	}
	return fmt.Errorf("%s:%d: %w", file, line, err)
}

// parseFloats parses exactly len(dst) leading tokens as float32.
func parseFloats(tokens []string, dst []float32) error {
	if len(tokens) < len(dst) {
		return fmt.Errorf("%w: expected %d values, got %d", ErrMalformedNumber, len(dst), len(tokens))
	}
	for i := range dst {
		f, err := strconv.ParseFloat(tokens[i], 32)
		if err != nil {
			return fmt.Errorf("%w: %q", ErrMalformedNumber, tokens[i])
		}
		dst[i] = float32(f)
	}
	return nil
}

// FormatFloat formats f in the shortest form that parses back to the same
// float32.
func FormatFloat(f float32) string {
	return strconv.FormatFloat(float64(f), 'g', -1, 32)
}
