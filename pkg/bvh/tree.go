// Package bvh implements a dynamic bounding-volume hierarchy used as
// the broad-phase acceleration structure of collision detection.
//
// The tree is strictly binary: leaves carry the caller's bounding
// volumes and payloads, internal nodes carry the merged volume of their
// descendants. Nodes live in a growable arena and are addressed by
// Index handles, with Null (the all-ones index) as the sentinel; the
// arena recycles released slots through an intrusive free-list.
//
// A tree is built either incrementally through Insert, Remove and the
// Update family, or in a batch through Init, which offers a top-down
// builder and three Morton-ordered builders of decreasing quality and
// cost. Refit and the Balance* operations restore volume tightness and
// tree shape as the underlying objects move.
//
// All operations require exclusive access; the tree performs no
// internal locking.
package bvh

import (
	"slices"

	"github.com/flier/gobvh/internal/debug"
	"github.com/flier/gobvh/pkg/bv"
)

// Tree is a dynamic bounding-volume hierarchy over volumes of type B
// and opaque leaf payloads of type P.
type Tree[B bv.Volume[B], P any] struct {
	arena nodeArena[B, P]

	root   Index
	leaves int

	// opath is the rolling bit-path BalanceIncremental walks to pick
	// the next leaf to reinsert.
	opath uint32

	// MaxLookahead bounds how many parents a volume update climbs from
	// the removal anchor before reinserting. Negative means restart
	// from the root.
	MaxLookahead int

	// BuThreshold is the subtree size at or below which the top-down
	// builders switch to bottom-up greedy construction.
	BuThreshold int

	// TopdownLevel selects the top-down builder variant (0 or 1).
	TopdownLevel int
}

// New creates an empty tree. buThreshold decides the subtree size at or
// below which the top-down builders fall back to bottom-up construction;
// topdownLevel picks the top-down variant (lower builds better trees,
// slower).
func New[B bv.Volume[B], P any](buThreshold, topdownLevel int) *Tree[B, P] {
	t := &Tree[B, P]{
		root:         Null,
		MaxLookahead: -1,
		BuThreshold:  buThreshold,
		TopdownLevel: topdownLevel,
	}
	t.arena.reset(initialCapacity)

	return t
}

// NewDefault creates an empty tree with the default tuning
// (buThreshold 16, topdownLevel 0).
func NewDefault[B bv.Volume[B], P any]() *Tree[B, P] {
	return New[B, P](16, 0)
}

// Init rebuilds the tree from scratch out of the given leaves using the
// construction algorithm selected by level:
//
//	0: top-down build (variant per TopdownLevel)
//	1: Morton split, finishing exhausted subtrees top-down
//	2: Morton split, finishing exhausted subtrees by index midpoint
//	3: index-midpoint split over the Morton-sorted order
//
// Any other level falls back to 0, as do the Morton levels when B does
// not provide the Morton capability. The previous contents of the tree
// are discarded.
func (t *Tree[B, P]) Init(leaves []Leaf[B, P], level int) {
	ids := t.resetWithLeaves(leaves)
	if len(ids) == 0 {
		return
	}

	switch level {
	case 1:
		t.initMorton(ids, mortonTailTopdown)
	case 2:
		t.initMorton(ids, mortonTailMidpoint)
	case 3:
		t.initMorton(ids, mortonTailOnly)
	default:
		t.root = t.topdown(ids)
	}

	if t.root != Null {
		t.arena.nodes[t.root].Parent = Null
	}
}

// Insert adds a leaf with the given volume and payload and returns its
// handle. The handle stays valid until the leaf is removed or the tree
// is rebuilt.
func (t *Tree[B, P]) Insert(volume B, data P) Index {
	leaf := t.createNode(Null, volume, data)
	t.insertLeaf(t.root, leaf)
	t.leaves++

	return leaf
}

// Remove deletes a leaf from the tree.
func (t *Tree[B, P]) Remove(leaf Index) {
	debug.Assert(t.arena.nodes[leaf].IsLeaf(), "remove of non-leaf node %d", leaf)

	t.removeLeaf(leaf)
	t.deleteNode(leaf)
	t.leaves--
}

// Clear releases all topology and re-initializes the arena at its
// initial capacity.
func (t *Tree[B, P]) Clear() {
	t.arena.reset(initialCapacity)
	t.root = Null
	t.leaves = 0
	t.opath = 0
}

// Empty reports whether the tree holds no nodes.
func (t *Tree[B, P]) Empty() bool {
	return t.arena.used == 0
}

// Len returns the number of leaves in the tree.
func (t *Tree[B, P]) Len() int {
	return t.leaves
}

// Root returns the root node, or Null when the tree is empty.
func (t *Tree[B, P]) Root() Index {
	return t.root
}

// Nodes exposes the raw arena for external traversals. Only slots
// reachable from Root hold live nodes; the rest belong to the
// free-list.
func (t *Tree[B, P]) Nodes() []Node[B, P] {
	return t.arena.nodes
}

// createNode allocates a node with the given parent, volume and
// payload.
func (t *Tree[B, P]) createNode(parent Index, volume B, data P) Index {
	i := t.arena.allocate()

	n := &t.arena.nodes[i]
	n.Parent = parent
	n.BV = volume
	n.Data = data

	return i
}

// createMergedNode allocates a node whose volume is the union of bv1
// and bv2.
func (t *Tree[B, P]) createMergedNode(parent Index, bv1, bv2 B, data P) Index {
	return t.createNode(parent, bv1.Union(bv2), data)
}

// createBareNode allocates a node without a meaningful volume; the
// Morton builders fill volumes in with a final Refit.
func (t *Tree[B, P]) createBareNode(parent Index, data P) Index {
	i := t.arena.allocate()

	n := &t.arena.nodes[i]
	n.Parent = parent
	n.Data = data

	return i
}

// deleteNode returns a slot to the free-list.
func (t *Tree[B, P]) deleteNode(i Index) {
	t.arena.release(i)
}

// resetWithLeaves throws away the current topology, re-seeds the arena
// with the given leaf records in slots [0, n) and returns the scratch
// list of their indices.
func (t *Tree[B, P]) resetWithLeaves(leaves []Leaf[B, P]) []Index {
	n := len(leaves)

	capacity := initialCapacity
	for capacity < 2*n {
		capacity *= 2
	}

	t.arena.reset(capacity)
	t.root = Null
	t.leaves = n

	if n == 0 {
		return nil
	}

	for i, l := range leaves {
		node := t.arena.allocate()
		debug.Assert(int(node) == i, "leaf slots must be allocated densely")

		rec := &t.arena.nodes[node]
		rec.BV = l.BV
		rec.Data = l.Data
	}

	ids := make([]Index, n)
	for i := range ids {
		ids[i] = Index(i)
	}

	return ids
}

// topdown dispatches to the top-down builder variant selected by
// TopdownLevel.
func (t *Tree[B, P]) topdown(ids []Index) Index {
	switch t.TopdownLevel {
	case 1:
		return t.topdown1(ids)
	default:
		return t.topdown0(ids)
	}
}

// sortByCenter orders a scratch range by centroid coordinate along the
// given axis.
func (t *Tree[B, P]) sortByCenter(ids []Index, axis int) {
	slices.SortFunc(ids, func(a, b Index) int {
		ca := t.arena.nodes[a].BV.Center()[axis]
		cb := t.arena.nodes[b].BV.Center()[axis]

		switch {
		case ca < cb:
			return -1
		case ca > cb:
			return 1
		default:
			return 0
		}
	})
}
