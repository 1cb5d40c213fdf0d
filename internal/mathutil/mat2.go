package mathutil

import "math"

// Mat2 is a 2×2 matrix stored row-major: [r0c0, r0c1, r1c0, r1c1].
type Mat2 [4]float64

func Mat2Identity() Mat2 {
	return Mat2{1, 0, 0, 1}
}

// Rotation2 returns the counter-clockwise rotation matrix for angle a (radians).
func Rotation2(a float64) Mat2 {
	c, s := math.Cos(a), math.Sin(a)
	return Mat2{
		c, -s,
		s, c,
	}
}

func (m Mat2) Add(b Mat2) Mat2 {
	return Mat2{m[0] + b[0], m[1] + b[1], m[2] + b[2], m[3] + b[3]}
}

func (m Mat2) Sub(b Mat2) Mat2 {
	return Mat2{m[0] - b[0], m[1] - b[1], m[2] - b[2], m[3] - b[3]}
}

// MulElem is the elementwise product; Mul is the matrix product.
func (m Mat2) MulElem(b Mat2) Mat2 {
	return Mat2{m[0] * b[0], m[1] * b[1], m[2] * b[2], m[3] * b[3]}
}

// DivElem is the elementwise quotient. Zero entries follow IEEE division.
func (m Mat2) DivElem(b Mat2) Mat2 {
	return Mat2{m[0] / b[0], m[1] / b[1], m[2] / b[2], m[3] / b[3]}
}

// Mul returns m × b.
func (m Mat2) Mul(b Mat2) Mat2 {
	var r Mat2
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			r[i*2+j] = m[i*2+0]*b[0*2+j] + m[i*2+1]*b[1*2+j]
		}
	}
	return r
}

// MulVec returns m × v.
func (m Mat2) MulVec(v Vec2) Vec2 {
	return Vec2{
		m[0]*v.X + m[1]*v.Y,
		m[2]*v.X + m[3]*v.Y,
	}
}

func (m Mat2) Scale(s float64) Mat2 {
	return Mat2{m[0] * s, m[1] * s, m[2] * s, m[3] * s}
}

func (m Mat2) Det() float64 {
	return m[0]*m[3] - m[1]*m[2]
}

// Inverse returns the all-zero matrix when the determinant is exactly zero.
func (m Mat2) Inverse() Mat2 {
	d := m.Det()
	if d == 0 {
		return Mat2{}
	}
	return Mat2{
		m[3] / d, -m[1] / d,
		-m[2] / d, m[0] / d,
	}
}
