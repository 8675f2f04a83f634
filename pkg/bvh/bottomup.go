package bvh

import "math"

// bottomup builds a subtree over the scratch range by greedy pairwise
// agglomeration: each round merges the pair whose union has the
// smallest Size, until one node remains. Cubic in the range length; the
// top-down builders use it at or below BuThreshold, while
// BalanceBottomup runs it over every leaf of the tree.
func (t *Tree[B, P]) bottomup(ids []Index) Index {
	for len(ids) > 1 {
		minSize := math.Inf(1)
		mi, mj := 0, 1

		for i := 0; i < len(ids); i++ {
			for j := i + 1; j < len(ids); j++ {
				sz := t.arena.nodes[ids[i]].BV.Union(t.arena.nodes[ids[j]].BV).Size()
				if sz < minSize {
					minSize = sz
					mi, mj = i, j
				}
			}
		}

		var zero P
		ci, cj := ids[mi], ids[mj]
		node := t.createMergedNode(Null, t.arena.nodes[ci].BV, t.arena.nodes[cj].BV, zero)

		nodes := t.arena.nodes
		nodes[node].Children[0] = ci
		nodes[node].Children[1] = cj
		nodes[ci].Parent = node
		nodes[cj].Parent = node

		// Compact: the merged pair collapses into one slot, the tail
		// element backfills the other.
		last := len(ids) - 1
		ids[mi] = node
		ids[mj] = ids[last]
		ids = ids[:last]
	}

	return ids[0]
}
