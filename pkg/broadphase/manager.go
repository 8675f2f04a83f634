// Package broadphase provides a dynamic-AABB-tree collision manager: a
// thin facade over the hierarchy tree that tracks a population of
// objects and enumerates overlapping pairs.
//
// The manager owns one tree per instance and a table from object to
// leaf handle, so callers address objects instead of tree indices. Like
// the tree itself it is single-threaded.
package broadphase

import (
	"github.com/flier/gobvh/internal/debug"
	"github.com/flier/gobvh/pkg/bv"
	"github.com/flier/gobvh/pkg/bvh"
)

// Manager tracks objects of type O, each bounded by an AABB, and
// answers broad-phase overlap queries over them.
type Manager[O comparable] struct {
	tree  *bvh.Tree[bv.AABB, O]
	table table[O, bvh.Index]
}

// NewManager creates an empty manager with the default tree tuning.
func NewManager[O comparable]() *Manager[O] {
	return &Manager[O]{
		tree:  bvh.NewDefault[bv.AABB, O](),
		table: newTable[O, bvh.Index](),
	}
}

// Register starts tracking an object with the given bounds. Registering
// an already-tracked object is equivalent to Update.
func (m *Manager[O]) Register(obj O, box bv.AABB) {
	if leaf, ok := m.table.Get(obj); ok {
		m.tree.UpdateVolume(leaf, box)

		return
	}

	leaf := m.tree.Insert(box, obj)
	m.table.Put(obj, leaf)
}

// Unregister stops tracking an object. It reports whether the object
// was tracked.
func (m *Manager[O]) Unregister(obj O) bool {
	leaf, ok := m.table.Get(obj)
	if !ok {
		return false
	}

	m.tree.Remove(leaf)
	m.table.Delete(obj)

	return true
}

// Update moves a tracked object to new bounds. It reports whether the
// tree changed (false when the old bounds already contain the new
// ones, or the object is unknown).
func (m *Manager[O]) Update(obj O, box bv.AABB) bool {
	leaf, ok := m.table.Get(obj)
	if !ok {
		return false
	}

	return m.tree.UpdateVolume(leaf, box)
}

// Len returns the number of tracked objects.
func (m *Manager[O]) Len() int {
	return m.table.Len()
}

// Clear drops every tracked object.
func (m *Manager[O]) Clear() {
	m.tree.Clear()
	m.table.Reset()
}

// Tree exposes the underlying hierarchy tree for external traversals.
func (m *Manager[O]) Tree() *bvh.Tree[bv.AABB, O] {
	return m.tree
}

// Balance rebuilds the manager's tree top-down and re-points the
// object table at the new leaves.
func (m *Manager[O]) Balance() {
	if m.tree.Empty() {
		return
	}

	m.tree.BalanceTopdown()

	// The rebuild invalidated every leaf handle.
	m.table.Reset()
	nodes := m.tree.Nodes()
	m.indexLeaves(m.tree.Root(), nodes)

	debug.Assert(m.table.Len() == m.tree.Len(), "rebuild lost leaves: %d != %d", m.table.Len(), m.tree.Len())
}

func (m *Manager[O]) indexLeaves(node bvh.Index, nodes []bvh.Node[bv.AABB, O]) {
	n := &nodes[node]
	if n.IsLeaf() {
		m.table.Put(n.Data, node)

		return
	}

	m.indexLeaves(n.Children[0], nodes)
	m.indexLeaves(n.Children[1], nodes)
}

// Collide enumerates every overlapping pair of tracked objects. fn
// returns true to stop the enumeration early; Collide reports whether
// it was stopped.
func (m *Manager[O]) Collide(fn func(a, b O) bool) bool {
	root := m.tree.Root()
	if root == bvh.Null {
		return false
	}

	return m.selfCollide(root, fn)
}

// selfCollide finds pairs inside one subtree: pairs within each child,
// then pairs across the two children.
func (m *Manager[O]) selfCollide(node bvh.Index, fn func(a, b O) bool) bool {
	nodes := m.tree.Nodes()

	n := &nodes[node]
	if n.IsLeaf() {
		return false
	}

	return m.selfCollide(n.Children[0], fn) ||
		m.selfCollide(n.Children[1], fn) ||
		m.pairCollide(n.Children[0], n.Children[1], fn)
}

// pairCollide finds overlapping leaf pairs across two disjoint
// subtrees, pruning on volume overlap and descending the bulkier side
// first.
func (m *Manager[O]) pairCollide(a, b bvh.Index, fn func(x, y O) bool) bool {
	nodes := m.tree.Nodes()

	na, nb := &nodes[a], &nodes[b]
	if !na.BV.Overlap(nb.BV) {
		return false
	}

	if na.IsLeaf() && nb.IsLeaf() {
		return fn(na.Data, nb.Data)
	}

	if nb.IsLeaf() || (!na.IsLeaf() && na.BV.Size() > nb.BV.Size()) {
		return m.pairCollide(na.Children[0], b, fn) ||
			m.pairCollide(na.Children[1], b, fn)
	}

	return m.pairCollide(a, nb.Children[0], fn) ||
		m.pairCollide(a, nb.Children[1], fn)
}

// CollideVolume enumerates every tracked object whose bounds overlap
// the query box. fn returns true to stop early; CollideVolume reports
// whether it was stopped.
func (m *Manager[O]) CollideVolume(box bv.AABB, fn func(obj O) bool) bool {
	root := m.tree.Root()
	if root == bvh.Null {
		return false
	}

	return m.volumeCollide(root, box, fn)
}

func (m *Manager[O]) volumeCollide(node bvh.Index, box bv.AABB, fn func(obj O) bool) bool {
	nodes := m.tree.Nodes()

	n := &nodes[node]
	if !n.BV.Overlap(box) {
		return false
	}

	if n.IsLeaf() {
		return fn(n.Data)
	}

	return m.volumeCollide(n.Children[0], box, fn) ||
		m.volumeCollide(n.Children[1], box, fn)
}
