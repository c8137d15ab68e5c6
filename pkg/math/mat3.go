package math

// Mat3 is a 3x3 matrix in column-major order, matching Mat4.
type Mat3 [9]float32

// Identity3 returns a 3x3 identity matrix.
func Identity3() Mat3 {
	return Mat3{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

// at returns the element at row r, column c.
func (m Mat3) at(r, c int) float32 {
	return m[c*3+r]
}

// Determinant returns the determinant of m.
func (m Mat3) Determinant() float32 {
	return m.at(0, 0)*(m.at(1, 1)*m.at(2, 2)-m.at(1, 2)*m.at(2, 1)) -
		m.at(0, 1)*(m.at(1, 0)*m.at(2, 2)-m.at(1, 2)*m.at(2, 0)) +
		m.at(0, 2)*(m.at(1, 0)*m.at(2, 1)-m.at(1, 1)*m.at(2, 0))
}

// Inverse returns the inverse of m. ok is false if m is singular.
func (m Mat3) Inverse() (inv Mat3, ok bool) {
	det := m.Determinant()
	if det == 0 {
		return Mat3{}, false
	}

	// Cofactors C(r,c)
	c00 := m.at(1, 1)*m.at(2, 2) - m.at(1, 2)*m.at(2, 1)
	c01 := -(m.at(1, 0)*m.at(2, 2) - m.at(1, 2)*m.at(2, 0))
	c02 := m.at(1, 0)*m.at(2, 1) - m.at(1, 1)*m.at(2, 0)
	c10 := -(m.at(0, 1)*m.at(2, 2) - m.at(0, 2)*m.at(2, 1))
	c11 := m.at(0, 0)*m.at(2, 2) - m.at(0, 2)*m.at(2, 0)
	c12 := -(m.at(0, 0)*m.at(2, 1) - m.at(0, 1)*m.at(2, 0))
	c20 := m.at(0, 1)*m.at(1, 2) - m.at(0, 2)*m.at(1, 1)
	c21 := -(m.at(0, 0)*m.at(1, 2) - m.at(0, 2)*m.at(1, 0))
	c22 := m.at(0, 0)*m.at(1, 1) - m.at(0, 1)*m.at(1, 0)

	invDet := 1 / det

	// inverse(r,c) = C(c,r) / det, stored column-major at [c*3+r].
	return Mat3{
		c00 * invDet, c01 * invDet, c02 * invDet,
		c10 * invDet, c11 * invDet, c12 * invDet,
		c20 * invDet, c21 * invDet, c22 * invDet,
	}, true
}

// Transpose returns the transpose of m.
func (m Mat3) Transpose() Mat3 {
	return Mat3{
		m[0], m[3], m[6],
		m[1], m[4], m[7],
		m[2], m[5], m[8],
	}
}

// Mul multiplies this matrix by another (m * other).
func (m Mat3) Mul(other Mat3) Mat3 {
	var result Mat3
	for col := 0; col < 3; col++ {
		for row := 0; row < 3; row++ {
			result[col*3+row] =
				m[0*3+row]*other[col*3+0] +
					m[1*3+row]*other[col*3+1] +
					m[2*3+row]*other[col*3+2]
		}
	}
	return result
}

// MulVec3 returns m * v.
func (m Mat3) MulVec3(v Vec3) Vec3 {
	return Vec3{
		m[0]*v.X + m[3]*v.Y + m[6]*v.Z,
		m[1]*v.X + m[4]*v.Y + m[7]*v.Z,
		m[2]*v.X + m[5]*v.Y + m[8]*v.Z,
	}
}
