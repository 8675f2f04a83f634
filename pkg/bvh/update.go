package bvh

import (
	"github.com/flier/gobvh/internal/debug"
	"github.com/flier/gobvh/pkg/math3"
)

// Update reinserts a leaf whose surroundings may have gone stale. The
// leaf is removed, the reinsertion point is widened by climbing up to
// lookahead parents from the removal anchor (negative restarts from the
// root), and the leaf is inserted again. The leaf's volume is left
// untouched.
func (t *Tree[B, P]) Update(leaf Index, lookahead int) {
	debug.Assert(t.arena.nodes[leaf].IsLeaf(), "update of non-leaf node %d", leaf)

	root := t.removeLeaf(leaf)
	root = t.climb(root, lookahead)

	t.insertLeaf(root, leaf)
}

// UpdateVolume replaces a leaf's bounding volume and relocates the leaf
// in the tree. It returns false without touching the tree when the
// current volume already contains the new one.
func (t *Tree[B, P]) UpdateVolume(leaf Index, volume B) bool {
	debug.Assert(t.arena.nodes[leaf].IsLeaf(), "update of non-leaf node %d", leaf)

	if t.arena.nodes[leaf].BV.Contain(volume) {
		return false
	}

	t.updateVolume(leaf, volume)

	return true
}

// UpdatePredicted is UpdateVolume with motion prediction hints. The
// velocity and margin parameters are reserved for inflating the volume
// along the predicted motion and are currently unused; behaviour is
// identical to UpdateVolume.
func (t *Tree[B, P]) UpdatePredicted(leaf Index, volume B, _ math3.Vector3, _ float64) bool {
	return t.UpdateVolume(leaf, volume)
}

// updateVolume overwrites the leaf volume and reinserts the leaf,
// climbing MaxLookahead parents from the removal anchor.
func (t *Tree[B, P]) updateVolume(leaf Index, volume B) {
	root := t.removeLeaf(leaf)
	root = t.climb(root, t.MaxLookahead)

	t.arena.nodes[leaf].BV = volume
	t.insertLeaf(root, leaf)
}

// climb moves up to lookahead parents from node; negative lookahead
// jumps straight to the root.
func (t *Tree[B, P]) climb(node Index, lookahead int) Index {
	if node == Null {
		return t.root
	}

	if lookahead < 0 {
		return t.root
	}

	for i := 0; i < lookahead && t.arena.nodes[node].Parent != Null; i++ {
		node = t.arena.nodes[node].Parent
	}

	return node
}
