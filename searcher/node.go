package searcher

import (
	"checkmate/game"
	"container/heap"
)

type handle int32

const (
	rootHandle handle = 0
	noParent   handle = -1
)

type node struct {
	move   game.Move
	turn   game.Side // Side to move after move is played
	value  float64
	valued bool // false until the node has a value to compare against
	parent handle
	index  int // Position in the parent's ranking

	children map[game.Move]handle
	order    []handle // Children in insertion order
	ranking  []handle // Heap over children, best first
}

// Tree is the search tree of a single call. Nodes live in one slice and refer
// to each other by handle, so rankings always see a child's current value.
type Tree struct {
	side  game.Side
	nodes []node
}

func newTree(side game.Side) *Tree {
	return &Tree{
		side:  side,
		nodes: []node{{parent: noParent}},
	}
}

// newSubtree roots a tree at an already evaluated node so it can be expanded
// independently of the tree it came from.
func newSubtree(side game.Side, root node) *Tree {
	return &Tree{
		side: side,
		nodes: []node{{
			move:   root.move,
			turn:   root.turn,
			value:  root.value,
			valued: root.valued,
			parent: noParent,
		}},
	}
}

// Size counts the nodes below the root.
func (t *Tree) Size() int {
	return len(t.nodes) - 1
}

func (t *Tree) child(parent handle, move game.Move) (handle, bool) {
	h, ok := t.nodes[parent].children[move]
	return h, ok
}

// addChild inserts a child for move, or replaces the value of the existing one.
func (t *Tree) addChild(parent handle, move game.Move, turn game.Side, value float64) handle {
	if h, ok := t.child(parent, move); ok {
		t.setValue(h, value)
		return h
	}

	h := handle(len(t.nodes))
	t.nodes = append(t.nodes, node{
		move:   move,
		turn:   turn,
		value:  value,
		valued: true,
		parent: parent,
	})

	p := &t.nodes[parent]
	if p.children == nil {
		p.children = make(map[game.Move]handle)
	}
	p.children[move] = h
	p.order = append(p.order, h)
	heap.Push(rankView{t: t, parent: parent}, h)
	return h
}

func (t *Tree) setValue(h handle, value float64) {
	n := &t.nodes[h]
	n.value = value
	n.valued = true
	if n.parent != noParent {
		heap.Fix(rankView{t: t, parent: n.parent}, n.index)
	}
}

// best peeks the highest ranked child of h.
func (t *Tree) best(h handle) (handle, bool) {
	ranking := t.nodes[h].ranking
	if len(ranking) == 0 {
		return 0, false
	}
	return ranking[0], true
}

func (t *Tree) hasChildren(h handle) bool {
	return len(t.nodes[h].order) > 0
}

// before orders nodes of the searching side's turn ahead of the opponent's,
// then by higher value.
func (t *Tree) before(a, b handle) bool {
	na, nb := &t.nodes[a], &t.nodes[b]
	if (na.turn == t.side) != (nb.turn == t.side) {
		return na.turn == t.side
	}
	return na.value > nb.value
}

// rankView exposes one node's ranking to container/heap.
type rankView struct {
	t      *Tree
	parent handle
}

func (r rankView) Len() int {
	return len(r.t.nodes[r.parent].ranking)
}

func (r rankView) Less(i, j int) bool {
	ranking := r.t.nodes[r.parent].ranking
	return r.t.before(ranking[i], ranking[j])
}

func (r rankView) Swap(i, j int) {
	ranking := r.t.nodes[r.parent].ranking
	ranking[i], ranking[j] = ranking[j], ranking[i]
	r.t.nodes[ranking[i]].index = i
	r.t.nodes[ranking[j]].index = j
}

func (r rankView) Push(x any) {
	h := x.(handle)
	p := &r.t.nodes[r.parent]
	r.t.nodes[h].index = len(p.ranking)
	p.ranking = append(p.ranking, h)
}

func (r rankView) Pop() any {
	p := &r.t.nodes[r.parent]
	last := len(p.ranking) - 1
	h := p.ranking[last]
	p.ranking = p.ranking[:last]
	r.t.nodes[h].index = -1
	return h
}
