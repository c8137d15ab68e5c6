package model

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/meshkit/internal/logger"
	"github.com/Faultbox/meshkit/pkg/encoding"
	"github.com/Faultbox/meshkit/pkg/math"
	"github.com/Faultbox/meshkit/pkg/wavefront"
)

// Save writes the model to path plus a material library <base>.mtl in the
// same directory, where base is path's file name without its extension.
// Only positions, groups and materials are written; every group's material
// is named <group>-material.
func (m *Model) Save(path string) error {
	if !m.Loaded() {
		return ErrEmptyModel
	}

	dir := filepath.Dir(path)
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	mtlPath := filepath.Join(dir, base+".mtl")
	if filepath.Clean(path) == mtlPath {
		return fmt.Errorf("%w: %s", ErrSavePath, path)
	}

	if err := m.writeFile(path, func(w io.Writer) error {
		return m.writeOBJ(w, base+".mtl")
	}); err != nil {
		return err
	}
	if err := m.writeFile(mtlPath, m.writeMTL); err != nil {
		return err
	}

	logger.Info("mesh saved",
		zap.String("obj", path),
		zap.String("mtl", mtlPath),
		zap.Int("vertices", m.VertexCount()),
		zap.Int("groups", len(m.groups)),
	)
	return nil
}

// WriteOBJ writes the mesh part of Save to w, referencing mtllib.
func (m *Model) WriteOBJ(w io.Writer, mtllib string) error {
	if !m.Loaded() {
		return ErrEmptyModel
	}
	return m.writeOBJ(w, mtllib)
}

// WriteMTL writes the material library part of Save to w.
func (m *Model) WriteMTL(w io.Writer) error {
	if !m.Loaded() {
		return ErrEmptyModel
	}
	return m.writeMTL(w)
}

func (m *Model) writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w, err := encoding.NewWriter(f, m.opts.Encoding)
	if err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := write(w); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if c, ok := w.(io.Closer); ok {
		if err := c.Close(); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}

func (m *Model) writeOBJ(w io.Writer, mtllib string) error {
	ow := wavefront.NewOBJWriter(w)
	ow.MaterialLib(mtllib)

	for i := 0; i < m.VertexCount(); i++ {
		p := m.buffer[i*FloatsPerVertex+PositionOffset:]
		ow.Vertex(math.Vec3{X: p[0], Y: p[1], Z: p[2]})
	}

	for i, g := range m.groups {
		start, count, _ := m.GroupRange(i)
		ow.Group(g.Name)
		ow.UseMaterial(g.Name + MaterialSuffix)
		for v := start; v+2 < start+count; v += 3 {
			ow.Triangle(v+1, v+2, v+3)
		}
	}
	return ow.Flush()
}

func (m *Model) writeMTL(w io.Writer) error {
	mw := wavefront.NewMTLWriter(w)
	for _, g := range m.groups {
		mw.Material(g.Name+MaterialSuffix, g.Material)
	}
	return mw.Flush()
}
