package engine

import "checkmate/experiments/metrics"

type Engine interface {
	// Run plays a game till checkmate, stalemate or the turn limit
	Run() (gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}
