package solver

import (
	"github.com/domino14/klondike/game"
	"github.com/domino14/klondike/move"
)

// node is one entry in the search tree. The engine owns every node for
// the lifetime of a search; a child's parent link is a non-owning
// reference, and nothing is mutated after a node is pushed.
type node struct {
	state  *game.State
	parent *node
	played move.Move
	g      int32
	h      int32
	f      float64
	seq    uint64
	key    uint64
}

// nodeHeap is the frontier: a priority queue ordered by f, then by lower
// h, then FIFO by insertion sequence so searches are deterministic.
type nodeHeap []*node

func (nh nodeHeap) Len() int { return len(nh) }

func (nh nodeHeap) Less(i, j int) bool {
	if nh[i].f != nh[j].f {
		return nh[i].f < nh[j].f
	}
	if nh[i].h != nh[j].h {
		return nh[i].h < nh[j].h
	}
	return nh[i].seq < nh[j].seq
}

func (nh nodeHeap) Swap(i, j int) {
	nh[i], nh[j] = nh[j], nh[i]
}

func (nh *nodeHeap) Push(x any) {
	*nh = append(*nh, x.(*node))
}

func (nh *nodeHeap) Pop() any {
	old := *nh
	n := len(old)
	it := old[n-1]
	old[n-1] = nil
	*nh = old[:n-1]
	return it
}
