package searcher

import (
	"checkmate/game"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestSelect(t *testing.T) {
	t.Run("tied children are picked uniformly", func(t *testing.T) {
		tree := newTree(game.White)
		tree.addChild(rootHandle, mockMove{id: 0}, game.Black, 1)
		tree.addChild(rootHandle, mockMove{id: 1}, game.Black, 0.5)
		tree.addChild(rootHandle, mockMove{id: 2}, game.Black, 1)
		tree.addChild(rootHandle, mockMove{id: 3}, game.Black, 1)
		rng := rand.New(rand.NewSource(11))

		counts := map[game.Move]int{}
		const trials = 3000
		for i := 0; i < trials; i++ {
			move, ok := Select(tree, rng)
			require.True(t, ok)
			counts[move]++
		}

		require.Zero(t, counts[mockMove{id: 1}], "Worse child should never be picked")
		for _, id := range []int{0, 2, 3} {
			require.InDelta(t, trials/3, counts[mockMove{id: id}], 150, "Tied child %d should be picked about a third of the time", id)
		}
	})

	t.Run("selection only depends on the seed", func(t *testing.T) {
		tree := newTree(game.White)
		for i := 0; i < 10; i++ {
			tree.addChild(rootHandle, mockMove{id: i}, game.Black, 0)
		}

		first, _ := Select(tree, rand.New(rand.NewSource(99)))
		second, _ := Select(tree, rand.New(rand.NewSource(99)))

		require.Equal(t, first, second)
	})

	t.Run("equality is exact", func(t *testing.T) {
		tree := newTree(game.White)
		tree.addChild(rootHandle, mockMove{id: 0}, game.Black, 1)
		tree.addChild(rootHandle, mockMove{id: 1}, game.Black, math.Nextafter(1, 0))
		rng := rand.New(rand.NewSource(1))

		for i := 0; i < 50; i++ {
			move, _ := Select(tree, rng)
			require.Equal(t, mockMove{id: 0}, move, "Slightly lower value should not tie")
		}
	})

	t.Run("root without children selects nothing", func(t *testing.T) {
		move, ok := Select(newTree(game.White), rand.New(rand.NewSource(1)))

		require.False(t, ok)
		require.Nil(t, move)
	})

	t.Run("children without a comparable value panic", func(t *testing.T) {
		tree := newTree(game.White)
		tree.addChild(rootHandle, mockMove{id: 0}, game.Black, math.NaN())

		require.Panics(t, func() { Select(tree, rand.New(rand.NewSource(1))) })
	})
}
