package player

import (
	"checkmate/experiments/metrics"
	"checkmate/game"
	"sync"

	"golang.org/x/exp/rand"
)

// Random plays a uniformly random legal move.
type Random struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewRandom(seed uint64) *Random {
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

func (r *Random) FindMove(state game.State) (game.Move, metrics.SearchMetric, error) {
	collector := metrics.NewDummyCollector()
	collector.Start(0, 0)

	moves := state.LegalMoves()
	if len(moves) == 0 {
		return nil, collector.Complete(), nil
	}

	r.mu.Lock()
	move := moves[r.rng.Intn(len(moves))]
	r.mu.Unlock()
	return move, collector.Complete(), nil
}
