package math3_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/flier/gobvh/pkg/math3"
)

func TestVector3_Ops(t *testing.T) {
	v := math3.Vec3(1, -2, 3)
	w := math3.Vec3(4, 5, -6)

	assert.Equal(t, math3.Vec3(5, 3, -3), v.Add(w))
	assert.Equal(t, math3.Vec3(-3, -7, 9), v.Sub(w))
	assert.Equal(t, math3.Vec3(2, -4, 6), v.Scale(2))
	assert.Equal(t, math3.Vec3(4, -10, -18), v.Mul(w))
	assert.Equal(t, -24.0, v.Dot(w))
	assert.Equal(t, 6.0, v.L1())
	assert.Equal(t, 14.0, v.SquaredNorm())

	assert.Equal(t, math3.Vec3(1, -2, -6), v.Min(w))
	assert.Equal(t, math3.Vec3(4, 5, 3), v.Max(w))
}

func TestMatrix3_Ops(t *testing.T) {
	id := math3.Identity3()
	m := math3.Matrix3{{1, 2, 3}, {4, 5, 6}, {7, 8, 10}}

	assert.Equal(t, m, m.MulMat(id))
	assert.Equal(t, m, id.MulMat(m))

	assert.Equal(t, math3.Vec3(1, 4, 7), m.Col(0))
	assert.Equal(t, math3.Matrix3{{1, 4, 7}, {2, 5, 8}, {3, 6, 10}}, m.Transpose())

	assert.Equal(t, math3.Vec3(14, 32, 53), m.MulVec(math3.Vec3(1, 2, 3)))
}
