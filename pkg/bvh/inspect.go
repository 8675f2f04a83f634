package bvh

import (
	"fmt"
	"io"
	"strings"
)

// MaxHeight returns the height of the tree: 0 for an empty tree or a
// single leaf, else one more than the taller child subtree.
func (t *Tree[B, P]) MaxHeight() int {
	if t.root == Null {
		return 0
	}

	return t.maxHeight(t.root)
}

func (t *Tree[B, P]) maxHeight(node Index) int {
	n := &t.arena.nodes[node]
	if n.IsLeaf() {
		return 0
	}

	h0 := t.maxHeight(n.Children[0])
	h1 := t.maxHeight(n.Children[1])

	return 1 + max(h0, h1)
}

// MaxDepth returns the depth of the deepest leaf.
func (t *Tree[B, P]) MaxDepth() int {
	if t.root == Null {
		return 0
	}

	maxDepth := 0
	t.maxDepth(t.root, 0, &maxDepth)

	return maxDepth
}

func (t *Tree[B, P]) maxDepth(node Index, depth int, maxDepth *int) {
	n := &t.arena.nodes[node]
	if n.IsLeaf() {
		if depth > *maxDepth {
			*maxDepth = depth
		}

		return
	}

	t.maxDepth(n.Children[0], depth+1, maxDepth)
	t.maxDepth(n.Children[1], depth+1, maxDepth)
}

// ExtractLeaves appends the leaf records of the subtree rooted at root
// to out, in-order, and returns the extended slice.
func (t *Tree[B, P]) ExtractLeaves(root Index, out []Leaf[B, P]) []Leaf[B, P] {
	n := &t.arena.nodes[root]
	if n.IsLeaf() {
		return append(out, Leaf[B, P]{BV: n.BV, Data: n.Data})
	}

	out = t.ExtractLeaves(n.Children[0], out)
	out = t.ExtractLeaves(n.Children[1], out)

	return out
}

// Print writes an indented dump of the subtree rooted at root to w, for
// debugging.
func (t *Tree[B, P]) Print(w io.Writer, root Index, depth int) {
	if root == Null {
		return
	}

	n := &t.arena.nodes[root]
	indent := strings.Repeat("  ", depth)

	if n.IsLeaf() {
		_, _ = fmt.Fprintf(w, "%s%d leaf bv=%v data=%v\n", indent, root, n.BV, n.Data)

		return
	}

	_, _ = fmt.Fprintf(w, "%s%d node bv=%v\n", indent, root, n.BV)
	t.Print(w, n.Children[0], depth+1)
	t.Print(w, n.Children[1], depth+1)
}
