package searcher

import (
	"checkmate/game"
	"math"

	"golang.org/x/exp/rand"
)

// Select picks uniformly at random among the root's children that share the
// highest value. It returns false if the root has no children.
func Select(tree *Tree, rng *rand.Rand) (game.Move, bool) {
	candidates, _ := tree.candidates()
	if len(candidates) == 0 {
		if tree.hasChildren(rootHandle) {
			panic("no candidate among root children")
		}
		return nil, false
	}
	h := candidates[rng.Intn(len(candidates))]
	return tree.nodes[h].move, true
}

// candidates returns the root's children whose value equals the maximum, in
// insertion order, along with that maximum.
func (t *Tree) candidates() ([]handle, float64) {
	order := t.nodes[rootHandle].order
	best := math.Inf(-1)
	for _, h := range order {
		if v := t.nodes[h].value; v > best {
			best = v
		}
	}

	var candidates []handle
	for _, h := range order {
		if t.nodes[h].value == best {
			candidates = append(candidates, h)
		}
	}
	if len(candidates) == 0 {
		return nil, 0
	}
	return candidates, best
}
