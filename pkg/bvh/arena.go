package bvh

import "github.com/flier/gobvh/internal/debug"

// initialCapacity is the arena size a fresh or cleared tree starts
// with.
const initialCapacity = 16

// nodeArena is a contiguous, growable store of node records addressed
// by Index, with an intrusive free-list threaded through the Next field
// of unused slots. It grows by doubling and never shrinks.
type nodeArena[B, P any] struct {
	nodes    []Node[B, P]
	used     int
	freeHead Index
}

// reset discards every slot and re-threads the whole arena, sized to at
// least capacity slots, onto the free-list.
func (a *nodeArena[B, P]) reset(capacity int) {
	if capacity < initialCapacity {
		capacity = initialCapacity
	}

	a.nodes = make([]Node[B, P], capacity)
	a.used = 0
	a.freeHead = 0
	a.thread(0)
}

// thread links slots [from, len) into the free-list in ascending order,
// terminated by Null.
func (a *nodeArena[B, P]) thread(from Index) {
	last := Index(len(a.nodes) - 1)
	for i := from; i < last; i++ {
		a.nodes[i].Next = i + 1
	}
	a.nodes[last].Next = Null
}

// allocate pops a slot off the free-list, doubling the arena first if
// the list is exhausted. The returned slot has Parent and both Children
// cleared to Null.
func (a *nodeArena[B, P]) allocate() Index {
	if a.freeHead == Null {
		a.grow()
	}

	i := a.freeHead
	a.freeHead = a.nodes[i].Next

	n := &a.nodes[i]
	n.Parent = Null
	n.Children[0] = Null
	n.Children[1] = Null

	a.used++

	return i
}

// release pushes a slot back onto the free-list. The slot's topology
// fields are not scrubbed; they are undefined until the next allocate.
func (a *nodeArena[B, P]) release(i Index) {
	debug.Assert(int(i) < len(a.nodes), "release of out-of-range slot %d", i)

	a.nodes[i].Next = a.freeHead
	a.freeHead = i
	a.used--
}

// grow doubles the arena and threads the new suffix onto the free-list.
func (a *nodeArena[B, P]) grow() {
	old := len(a.nodes)
	if old == 0 {
		a.reset(initialCapacity)
		return
	}

	nodes := make([]Node[B, P], old*2)
	copy(nodes, a.nodes)
	a.nodes = nodes

	a.freeHead = Index(old)
	a.thread(Index(old))

	if debug.Enabled {
		debug.Log(nil, "arena grown", "%d -> %d slots, %d used", old, len(nodes), a.used)
	}
}
