package bvh

// topdown0 builds a subtree over the scratch range by recursive median
// splits. At each level it picks the axis with the largest extent of
// the range's union volume, orders the range by centroid along that
// axis and splits at the midpoint. Ranges at or below BuThreshold are
// finished bottom-up.
func (t *Tree[B, P]) topdown0(ids []Index) Index {
	n := len(ids)
	if n <= 1 {
		return ids[0]
	}

	if n <= t.BuThreshold {
		return t.bottomup(ids)
	}

	vol := t.unionOf(ids)

	axis := 0
	extent := [3]float64{vol.Width(), vol.Height(), vol.Depth()}
	if extent[1] > extent[0] {
		axis = 1
	}
	if extent[2] > extent[axis] {
		axis = 2
	}

	t.sortByCenter(ids, axis)
	mid := n / 2

	var zero P
	node := t.createNode(Null, vol, zero)

	c0 := t.topdown0(ids[:mid])
	c1 := t.topdown0(ids[mid:])

	nodes := t.arena.nodes
	nodes[node].Children[0] = c0
	nodes[node].Children[1] = c1
	nodes[c0].Parent = node
	nodes[c1].Parent = node

	return node
}

// topdown1 builds a subtree by mean-centre splits. The split plane on
// each axis is the mean of the centroids; the chosen axis is the one
// whose split is most balanced among axes where both sides are
// non-empty, ties breaking to axis 0. When no axis separates the
// centroids the range is split at the midpoint instead.
func (t *Tree[B, P]) topdown1(ids []Index) Index {
	n := len(ids)
	if n <= 1 {
		return ids[0]
	}

	if n <= t.BuThreshold {
		return t.bottomup(ids)
	}

	nodes := t.arena.nodes

	vol := nodes[ids[0]].BV
	split := nodes[ids[0]].BV.Center()
	for _, id := range ids[1:] {
		vol = vol.Union(nodes[id].BV)
		split = split.Add(nodes[id].BV.Center())
	}
	split = split.Scale(1 / float64(n))

	axis := -1
	bestImbalance := n
	for d := 0; d < 3; d++ {
		left := 0
		for _, id := range ids {
			if nodes[id].BV.Center()[d] < split[d] {
				left++
			}
		}

		if left == 0 || left == n {
			continue
		}

		if imbalance := abs(2*left - n); imbalance < bestImbalance {
			bestImbalance = imbalance
			axis = d
		}
	}

	var mid int
	if axis < 0 {
		axis = 0
		mid = n / 2
	} else {
		mid = t.stablePartition(ids, func(id Index) bool {
			return t.arena.nodes[id].BV.Center()[axis] < split[axis]
		})
	}

	var zero P
	node := t.createNode(Null, vol, zero)

	c0 := t.topdown1(ids[:mid])
	c1 := t.topdown1(ids[mid:])

	nodes = t.arena.nodes
	nodes[node].Children[0] = c0
	nodes[node].Children[1] = c1
	nodes[c0].Parent = node
	nodes[c1].Parent = node

	return node
}

// stablePartition reorders ids so that every element satisfying pred
// precedes every element that does not, preserving relative order on
// both sides. It returns the boundary.
func (t *Tree[B, P]) stablePartition(ids []Index, pred func(Index) bool) int {
	scratch := make([]Index, 0, len(ids))
	mid := 0

	for _, id := range ids {
		if pred(id) {
			ids[mid] = id
			mid++
		} else {
			scratch = append(scratch, id)
		}
	}

	copy(ids[mid:], scratch)

	return mid
}

// unionOf merges the volumes of a scratch range.
func (t *Tree[B, P]) unionOf(ids []Index) B {
	nodes := t.arena.nodes

	vol := nodes[ids[0]].BV
	for _, id := range ids[1:] {
		vol = vol.Union(nodes[id].BV)
	}

	return vol
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
