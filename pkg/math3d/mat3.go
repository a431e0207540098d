package math3d

import "math"

// Mat3 is a 3x3 matrix stored row-major.
//
// Memory layout (indices):
// | 0 1 2 |
// | 3 4 5 |
// | 6 7 8 |
type Mat3 [9]float64

// Identity3 returns the identity matrix.
func Identity3() Mat3 {
	return Mat3{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

// RotateX creates a right-handed rotation matrix around the X axis.
func RotateX(angle float64) Mat3 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat3{
		1, 0, 0,
		0, c, -s,
		0, s, c,
	}
}

// RotateY creates a right-handed rotation matrix around the Y axis.
func RotateY(angle float64) Mat3 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat3{
		c, 0, s,
		0, 1, 0,
		-s, 0, c,
	}
}

// RotateZ creates a right-handed rotation matrix around the Z axis.
func RotateZ(angle float64) Mat3 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat3{
		c, -s, 0,
		s, c, 0,
		0, 0, 1,
	}
}

// RotateAxis creates a rotation around a principal axis (0 = X, 1 = Y, 2 = Z).
func RotateAxis(axis int, angle float64) Mat3 {
	switch axis {
	case 0:
		return RotateX(angle)
	case 1:
		return RotateY(angle)
	default:
		return RotateZ(angle)
	}
}

// Mul multiplies two matrices: a * b.
//
//nolint:st1016 // a*b naming convention is clearer for matrix multiplication
func (a Mat3) Mul(b Mat3) Mat3 {
	var m Mat3
	for row := range 3 {
		for col := range 3 {
			m[row*3+col] = a[row*3]*b[col] + a[row*3+1]*b[3+col] + a[row*3+2]*b[6+col]
		}
	}
	return m
}

// MulVec3 returns m * v.
func (m Mat3) MulVec3(v Vec3) Vec3 {
	return Vec3{
		m[0]*v.X + m[1]*v.Y + m[2]*v.Z,
		m[3]*v.X + m[4]*v.Y + m[5]*v.Z,
		m[6]*v.X + m[7]*v.Y + m[8]*v.Z,
	}
}

// Transpose returns the transposed matrix. For a pure rotation this is the inverse.
func (m Mat3) Transpose() Mat3 {
	return Mat3{
		m[0], m[3], m[6],
		m[1], m[4], m[7],
		m[2], m[5], m[8],
	}
}

// Get returns the element at (row, col).
func (m Mat3) Get(row, col int) float64 {
	return m[row*3+col]
}

// Snap maps every entry with magnitude below 0.5 to 0 and every other entry to its
// sign. Applied to a near-rotation made of quarter turns it recovers the exact
// signed permutation matrix.
func (m Mat3) Snap() Mat3 {
	var out Mat3
	for i, v := range m {
		switch {
		case math.Abs(v) < 0.5:
			out[i] = 0
		case v > 0:
			out[i] = 1
		default:
			out[i] = -1
		}
	}
	return out
}

// IsSignedPermutation reports whether every entry is exactly -1, 0 or 1 and each row
// and column holds exactly one non-zero entry.
func (m Mat3) IsSignedPermutation() bool {
	var colCount [3]int
	for row := range 3 {
		nonZero := 0
		for col := range 3 {
			switch m[row*3+col] {
			case 0:
			case 1, -1:
				nonZero++
				colCount[col]++
			default:
				return false
			}
		}
		if nonZero != 1 {
			return false
		}
	}
	return colCount == [3]int{1, 1, 1}
}

// ApproxEqual reports whether every entry of a and b differs by at most eps.
func (a Mat3) ApproxEqual(b Mat3, eps float64) bool {
	for i := range a {
		if math.Abs(a[i]-b[i]) > eps {
			return false
		}
	}
	return true
}
