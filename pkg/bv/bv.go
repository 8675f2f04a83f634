// Package bv defines the capability contract a bounding volume must
// satisfy to be stored in a hierarchy tree, together with the
// axis-aligned box implementation used by the broad phase.
//
// The contract is deliberately narrow: a volume only needs to merge,
// test containment and equality, and report its centroid, extents and a
// scalar cost metric. Optional capabilities (the sibling-selection
// oracle and the Morton coder) are discovered dynamically; volumes
// without them fall back to documented defaults.
package bv

import "github.com/flier/gobvh/pkg/math3"

// Volume is the contract a bounding volume type must satisfy.
//
// B is the volume type itself; all operations are value operations on
// float64 coordinates.
type Volume[B any] interface {
	// Union returns a volume containing both this volume and other.
	Union(other B) B

	// Contain reports whether this volume contains other.
	Contain(other B) bool

	// Equal reports whether this volume exactly equals other.
	Equal(other B) bool

	// Center returns the centroid of the volume.
	Center() math3.Vector3

	// Width returns the extent along axis 0.
	Width() float64

	// Height returns the extent along axis 1.
	Height() float64

	// Depth returns the extent along axis 2.
	Depth() float64

	// Size returns a cost metric monotonic in the volume's extent,
	// used to score candidate merges.
	Size() float64
}

// Selector is the optional sibling-selection oracle a volume may
// provide. During tree insertion the query volume picks which of two
// candidate children it is closer to: 0 for c0, 1 for c1.
//
// Volumes that do not implement Selector always descend into child 0.
type Selector[B any] interface {
	Select(c0, c1 B) int
}

// MortonCoder encodes centroids into space-filling-curve codes of at
// most 32 bits.
type MortonCoder interface {
	// Bits returns the width of the produced codes.
	Bits() int

	// Code encodes a point into a Morton code.
	Code(p math3.Vector3) uint32
}

// MortonVolume is the optional capability that lets a volume act as the
// bound of a Morton coder. The tree calls it on the union of all leaf
// volumes before a Morton-ordered build.
type MortonVolume interface {
	Morton() MortonCoder
}
