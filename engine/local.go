package engine

import (
	"checkmate/experiments/metrics"
	"checkmate/game"
	"checkmate/searcher/agent"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
)

const Draw = "draw"

type LocalGame struct {
	State    game.State
	Agents   [2]agent.Agent // Indexed by game.Side
	MaxTurns int
}

func LocalEngine(white, black agent.Agent, state game.State, maxTurns int) *LocalGame {
	if white == nil || black == nil {
		panic("need an agent for each side")
	}
	return &LocalGame{
		State:    state,
		Agents:   [2]agent.Agent{game.White: white, game.Black: black},
		MaxTurns: maxTurns,
	}
}

// Run executes the game loop until the side to move has no legal move or the
// turn limit is reached. A game cut short by the limit is a draw.
func (e *LocalGame) Run() (metrics.GameMetric, []metrics.MoveMetric, error) {
	gameMetric := metrics.GameMetric{
		StartingSide: e.State.Turn().String(),
		StartTime:    time.Now(),
	}
	var moveMetrics []metrics.MoveMetric

	log.Info().Msgf("%s is starting", e.State.Turn())

	for step := 1; step <= e.MaxTurns; step++ {
		legal := e.State.LegalMoves()
		if len(legal) == 0 {
			break
		}

		side := e.State.Turn()
		move, metric, err := e.Agents[side].FindMove(e.State)
		if err != nil {
			return e.complete(gameMetric, len(moveMetrics)), moveMetrics, fmt.Errorf("failed to find move for %s: %w", side, err)
		}
		if move == nil || !slices.Contains(legal, move) {
			return e.complete(gameMetric, len(moveMetrics)), moveMetrics, fmt.Errorf("%s returned an illegal move %v", side, move)
		}

		log.Info().Msgf("played %s in %.3f seconds", move, metric.Duration.Seconds())
		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         step,
			Side:         side.String(),
			Move:         move.String(),
			SearchMetric: metric,
		})
		e.State = e.State.Play(move)
	}

	gameMetric = e.complete(gameMetric, len(moveMetrics))
	log.Info().Msgf("outcome of the game is: %s", gameMetric.Winner)
	return gameMetric, moveMetrics, nil
}

func (e *LocalGame) complete(gameMetric metrics.GameMetric, moves int) metrics.GameMetric {
	gameMetric.Winner = Outcome(e.State)
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = moves
	return gameMetric
}

// Outcome names the winner of a finished game, or Draw.
func Outcome(state game.State) string {
	if state.IsCheckmate() {
		return state.Turn().Other().String()
	}
	return Draw
}
