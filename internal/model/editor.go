package model

import (
	"go.uber.org/zap"

	"github.com/Faultbox/meshkit/internal/logger"
	"github.com/Faultbox/meshkit/pkg/math"
	"github.com/Faultbox/meshkit/pkg/wavefront"
)

// ApplyMaterial replaces the material of group i. The buffer is untouched.
func (m *Model) ApplyMaterial(i int, mat wavefront.Material) error {
	if err := m.checkGroup(i); err != nil {
		return err
	}
	m.groups[i].Material = mat

	logger.Debug("material applied", zap.Int("group", i), zap.String("name", m.groups[i].Name))
	return nil
}

// ApplyTransform transforms the vertices of group i in place. Positions are
// multiplied by t; normals by the normal matrix of t and renormalized.
// Texture coordinates and vertices of other groups are untouched.
func (m *Model) ApplyTransform(i int, t math.Mat4) error {
	start, count, err := m.GroupRange(i)
	if err != nil {
		return err
	}

	normalMatrix, ok := t.NormalMatrix()
	if !ok {
		return ErrSingularTransform
	}

	for v := start; v < start+count; v++ {
		p := m.buffer[v*FloatsPerVertex+PositionOffset:][:3]
		n := m.buffer[v*FloatsPerVertex+NormalOffset:][:3]

		pos := t.MulPoint(math.Vec3{X: p[0], Y: p[1], Z: p[2]})
		nrm := normalMatrix.MulVec3(math.Vec3{X: n[0], Y: n[1], Z: n[2]}).Normalize()

		p[0], p[1], p[2] = pos.X, pos.Y, pos.Z
		n[0], n[1], n[2] = nrm.X, nrm.Y, nrm.Z
	}

	logger.Debug("transform applied",
		zap.Int("group", i),
		zap.String("name", m.groups[i].Name),
		zap.Int("vertices", count),
	)
	return nil
}
