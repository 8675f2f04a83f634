package math3

// Matrix3 is a row-major 3x3 matrix of float64.
type Matrix3 [3][3]float64

// Identity3 returns the 3x3 identity matrix.
func Identity3() Matrix3 {
	return Matrix3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
}

// Col returns the j-th column of m.
func (m Matrix3) Col(j int) Vector3 {
	return Vector3{m[0][j], m[1][j], m[2][j]}
}

// Transpose returns the transpose of m.
func (m Matrix3) Transpose() Matrix3 {
	var t Matrix3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			t[i][j] = m[j][i]
		}
	}
	return t
}

// MulMat returns the matrix product m * n.
func (m Matrix3) MulMat(n Matrix3) Matrix3 {
	var p Matrix3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			p[i][j] = m[i][0]*n[0][j] + m[i][1]*n[1][j] + m[i][2]*n[2][j]
		}
	}
	return p
}

// MulVec returns the matrix-vector product m * v.
func (m Matrix3) MulVec(v Vector3) Vector3 {
	return Vector3{
		m[0][0]*v[0] + m[0][1]*v[1] + m[0][2]*v[2],
		m[1][0]*v[0] + m[1][1]*v[1] + m[1][2]*v[2],
		m[2][0]*v[0] + m[2][1]*v[1] + m[2][2]*v[2],
	}
}
