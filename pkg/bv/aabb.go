package bv

import "github.com/flier/gobvh/pkg/math3"

// AABB is an axis-aligned bounding box described by its minimum and
// maximum corners.
type AABB struct {
	Min, Max math3.Vector3
}

// NewAABB builds a box from two opposite corners, which need not be
// ordered.
func NewAABB(a, b math3.Vector3) AABB {
	return AABB{Min: a.Min(b), Max: a.Max(b)}
}

// PointAABB returns the degenerate box containing a single point.
func PointAABB(p math3.Vector3) AABB {
	return AABB{Min: p, Max: p}
}

// Union returns the smallest box containing both a and other.
func (a AABB) Union(other AABB) AABB {
	return AABB{Min: a.Min.Min(other.Min), Max: a.Max.Max(other.Max)}
}

// Contain reports whether other lies entirely inside a.
func (a AABB) Contain(other AABB) bool {
	for i := 0; i < 3; i++ {
		if other.Min[i] < a.Min[i] || other.Max[i] > a.Max[i] {
			return false
		}
	}
	return true
}

// Equal reports exact corner equality.
func (a AABB) Equal(other AABB) bool {
	return a.Min == other.Min && a.Max == other.Max
}

// Overlap reports whether a and other intersect.
func (a AABB) Overlap(other AABB) bool {
	for i := 0; i < 3; i++ {
		if a.Min[i] > other.Max[i] || a.Max[i] < other.Min[i] {
			return false
		}
	}
	return true
}

// Center returns the centroid of the box.
func (a AABB) Center() math3.Vector3 {
	return a.Min.Add(a.Max).Scale(0.5)
}

// Width returns the extent along axis 0.
func (a AABB) Width() float64 { return a.Max[0] - a.Min[0] }

// Height returns the extent along axis 1.
func (a AABB) Height() float64 { return a.Max[1] - a.Min[1] }

// Depth returns the extent along axis 2.
func (a AABB) Depth() float64 { return a.Max[2] - a.Min[2] }

// Size returns the squared length of the box diagonal, the merge cost
// metric the bottom-up builder minimizes.
func (a AABB) Size() float64 {
	return a.Max.Sub(a.Min).SquaredNorm()
}

// Select picks the candidate child closer to a, measured as the L1
// distance between the doubled centers. 0 means c0, 1 means c1.
func (a AABB) Select(c0, c1 AABB) int {
	v := a.Min.Add(a.Max)
	d0 := c0.Min.Add(c0.Max).Sub(v).L1()
	d1 := c1.Min.Add(c1.Max).Sub(v).L1()

	if d0 <= d1 {
		return 0
	}
	return 1
}

// Morton returns a 30-bit Morton coder quantizing centroids against
// this box.
func (a AABB) Morton() MortonCoder {
	return NewMorton32(a)
}

var (
	_ Volume[AABB]   = AABB{}
	_ Selector[AABB] = AABB{}
	_ MortonVolume   = AABB{}
)
