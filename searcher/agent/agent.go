package agent

import (
	"checkmate/experiments/metrics"
	"checkmate/game"
)

type Agent interface {
	// FindMove returns a move for the side to move and performance metrics (if collected) from finding it
	FindMove(state game.State) (game.Move, metrics.SearchMetric, error)
}
