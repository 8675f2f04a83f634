package bv

import "github.com/flier/gobvh/pkg/math3"

// mortonGrid is the per-axis resolution of the 30-bit coder: 10 bits
// per axis.
const mortonGrid = 1 << 10

// Morton32 quantizes points inside a bound box onto a 1024^3 grid and
// interleaves the axis bits into 30-bit Morton codes.
type Morton32 struct {
	base math3.Vector3
	inv  math3.Vector3
}

// NewMorton32 builds a coder over the given bound. Degenerate axes map
// every coordinate to cell zero.
func NewMorton32(bound AABB) Morton32 {
	m := Morton32{base: bound.Min}
	for i := 0; i < 3; i++ {
		if e := bound.Max[i] - bound.Min[i]; e > 0 {
			m.inv[i] = 1 / e
		}
	}
	return m
}

// Bits returns the code width, 30.
func (m Morton32) Bits() int { return 30 }

// Code encodes a point into its Morton code relative to the bound.
func (m Morton32) Code(p math3.Vector3) uint32 {
	d := p.Sub(m.base).Mul(m.inv)

	x := quantize(d[0])
	y := quantize(d[1])
	z := quantize(d[2])

	return spreadBits(x)<<2 | spreadBits(y)<<1 | spreadBits(z)
}

// quantize maps a normalized coordinate into [0, mortonGrid).
func quantize(v float64) uint32 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return mortonGrid - 1
	}
	return uint32(v * mortonGrid)
}

// spreadBits spaces the low 10 bits of v two bits apart.
func spreadBits(v uint32) uint32 {
	v &= 0x000003ff
	v = (v | v<<16) & 0xff0000ff
	v = (v | v<<8) & 0x0300f00f
	v = (v | v<<4) & 0x030c30c3
	v = (v | v<<2) & 0x09249249
	return v
}

var _ MortonCoder = Morton32{}
