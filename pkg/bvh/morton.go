package bvh

import (
	"slices"
	"sort"

	"github.com/flier/gobvh/pkg/bv"
)

// mortonTail selects how a Morton build finishes subtrees once the
// code bits run out (or are ignored entirely).
type mortonTail int

const (
	// mortonTailTopdown finishes exhausted subtrees with the top-down
	// builder: slow, high quality.
	mortonTailTopdown mortonTail = iota

	// mortonTailMidpoint finishes exhausted subtrees by index
	// midpoint: cheap, lower quality.
	mortonTailMidpoint

	// mortonTailOnly skips Morton splitting altogether and splits
	// every level by index midpoint of the sorted order.
	mortonTailOnly
)

// initMorton builds the tree over Morton-sorted leaves. Internal nodes
// are created without volumes; a final Refit fills them in. Falls back
// to the top-down builder when B does not provide the Morton
// capability.
func (t *Tree[B, P]) initMorton(ids []Index, tail mortonTail) {
	bound := t.unionOf(ids)

	mv, ok := any(bound).(bv.MortonVolume)
	if !ok {
		t.root = t.topdown(ids)

		return
	}

	coder := mv.Morton()

	nodes := t.arena.nodes
	for _, id := range ids {
		nodes[id].Code = coder.Code(nodes[id].BV.Center())
	}

	slices.SortFunc(ids, func(a, b Index) int {
		switch {
		case nodes[a].Code < nodes[b].Code:
			return -1
		case nodes[a].Code > nodes[b].Code:
			return 1
		default:
			return 0
		}
	})

	if tail == mortonTailOnly {
		t.root = t.mortonRecurseMidpoint(ids)
	} else {
		bits := coder.Bits() - 1
		t.root = t.mortonRecurse(ids, 1<<uint(bits), bits, tail)
	}

	t.Refit()
}

// mortonRecurse splits the sorted range at the current Morton bit. When
// every leaf falls on one side it descends a bit without creating a
// node; when the bits are exhausted the tail strategy finishes the
// subtree.
func (t *Tree[B, P]) mortonRecurse(ids []Index, split uint32, bits int, tail mortonTail) Index {
	if len(ids) == 1 {
		return ids[0]
	}

	if bits <= 0 {
		if tail == mortonTailTopdown {
			return t.topdown(ids)
		}

		return t.mortonRecurseMidpoint(ids)
	}

	nodes := t.arena.nodes
	mid := sort.Search(len(ids), func(i int) bool {
		return nodes[ids[i]].Code >= split
	})

	if mid == 0 {
		// Everything is above the split plane.
		return t.mortonRecurse(ids, split|1<<uint(bits-1), bits-1, tail)
	}

	if mid == len(ids) {
		// Everything is below the split plane.
		return t.mortonRecurse(ids, split&^(1<<uint(bits))|1<<uint(bits-1), bits-1, tail)
	}

	c0 := t.mortonRecurse(ids[:mid], split&^(1<<uint(bits))|1<<uint(bits-1), bits-1, tail)
	c1 := t.mortonRecurse(ids[mid:], split|1<<uint(bits-1), bits-1, tail)

	return t.linkBare(c0, c1)
}

// mortonRecurseMidpoint splits the sorted range down the middle at
// every level.
func (t *Tree[B, P]) mortonRecurseMidpoint(ids []Index) Index {
	if len(ids) == 1 {
		return ids[0]
	}

	mid := len(ids) / 2

	c0 := t.mortonRecurseMidpoint(ids[:mid])
	c1 := t.mortonRecurseMidpoint(ids[mid:])

	return t.linkBare(c0, c1)
}

// linkBare creates a volume-less internal node over two subtrees.
func (t *Tree[B, P]) linkBare(c0, c1 Index) Index {
	var zero P
	node := t.createBareNode(Null, zero)

	nodes := t.arena.nodes
	nodes[node].Children[0] = c0
	nodes[node].Children[1] = c1
	nodes[c0].Parent = node
	nodes[c1].Parent = node

	return node
}
