package agent

import (
	"checkmate/experiments/metrics"
	"checkmate/game"
	"checkmate/searcher"
)

type searchAgent struct {
	searcher *searcher.Searcher
	depth    int
}

// NewSearchAgent returns an agent that searches depth plies for the side to move.
func NewSearchAgent(s *searcher.Searcher, depth int) Agent {
	return searchAgent{searcher: s, depth: depth}
}

func (a searchAgent) FindMove(state game.State) (game.Move, metrics.SearchMetric, error) {
	move, metric := a.searcher.Search(state, state.Turn(), a.depth)
	return move, metric, nil
}
