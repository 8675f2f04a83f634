package bv_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/flier/gobvh/pkg/bv"
	"github.com/flier/gobvh/pkg/math3"
)

func TestMorton32(t *testing.T) {
	bound := box(0, 0, 0, 1, 1, 1)
	coder := bv.NewMorton32(bound)

	assert.Equal(t, 30, coder.Bits())

	assert.Equal(t, uint32(0), coder.Code(math3.Vec3(0, 0, 0)))

	// The far corner lands in the last cell on every axis.
	assert.Equal(t, uint32(1<<30-1), coder.Code(math3.Vec3(1, 1, 1)))

	// Out-of-bound points clamp to the grid.
	assert.Equal(t, uint32(0), coder.Code(math3.Vec3(-5, -5, -5)))
	assert.Equal(t, uint32(1<<30-1), coder.Code(math3.Vec3(9, 9, 9)))
}

func TestMorton32_AxisBits(t *testing.T) {
	bound := box(0, 0, 0, 1, 1, 1)
	coder := bv.NewMorton32(bound)

	// One cell along a single axis sets that axis's lowest interleaved
	// bit: x contributes bit 2, y bit 1, z bit 0.
	cell := 1.5 / 1024

	assert.Equal(t, uint32(4), coder.Code(math3.Vec3(cell, 0, 0)))
	assert.Equal(t, uint32(2), coder.Code(math3.Vec3(0, cell, 0)))
	assert.Equal(t, uint32(1), coder.Code(math3.Vec3(0, 0, cell)))
}

func TestMorton32_Ordering(t *testing.T) {
	bound := box(0, 0, 0, 100, 100, 100)
	coder := bv.NewMorton32(bound)

	// Nearby points produce closer codes than distant ones.
	origin := coder.Code(math3.Vec3(1, 1, 1))
	near := coder.Code(math3.Vec3(2, 2, 2))
	far := coder.Code(math3.Vec3(99, 99, 99))

	assert.Less(t, near-origin, far-origin)
}

func TestMorton32_DegenerateBound(t *testing.T) {
	// A flat bound maps the flat axis to cell zero instead of
	// producing NaNs.
	bound := box(0, 0, 0, 1, 0, 1)
	coder := bv.NewMorton32(bound)

	code := coder.Code(math3.Vec3(0.5, 0, 0.5))
	assert.Equal(t, uint32(0), code&0x2, "flat axis contributes nothing")
}
