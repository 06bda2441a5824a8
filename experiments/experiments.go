package experiments

import (
	"checkmate/engine"
	"checkmate/experiments/metrics"
	"checkmate/game"
	"checkmate/player"
	"checkmate/searcher"
	"checkmate/searcher/agent"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	Dir      string
	NumGames int // Per match up
	MaxTurns int
	Seed     uint64 // 0 seeds from the clock
}

const (
	KindSearch = "search"
	KindRandom = "random"
)

var depthConfigs = []metrics.AgentConfig{
	{ID: 1, Kind: KindRandom},
	{ID: 2, Kind: KindSearch, Depth: 1, Goroutines: 1},
	{ID: 3, Kind: KindSearch, Depth: 2, Goroutines: 1},
	{ID: 4, Kind: KindSearch, Depth: 3, Goroutines: 1},
	{ID: 5, Kind: KindSearch, Depth: 4, Goroutines: 1},
}

var parallelConfigs = []metrics.AgentConfig{
	{ID: 1, Kind: KindSearch, Depth: 3, Goroutines: 1},
	{ID: 2, Kind: KindSearch, Depth: 3, Goroutines: 2},
	{ID: 3, Kind: KindSearch, Depth: 3, Goroutines: 4},
	{ID: 4, Kind: KindSearch, Depth: 3, Goroutines: 8},
}

// RunDepthExperiment pairs agents of increasing depth (and a random mover)
// against a depth-1 baseline.
func RunDepthExperiment(cfg Config) (*metrics.Writer, error) {
	baseline := metrics.AgentConfig{ID: 0, Kind: KindSearch, Depth: 1, Goroutines: 1}
	matchUps := [][]metrics.AgentConfig{}
	for _, config := range depthConfigs {
		matchUps = append(matchUps, []metrics.AgentConfig{baseline, config})
	}

	return runExperiment(cfg, "depth", append(depthConfigs, baseline), matchUps)
}

// RunThroughputExperiment plays each parallel config against itself for the
// same playing strength and similar game length, so only the search speed
// differs between matchups.
func RunThroughputExperiment(cfg Config) (*metrics.Writer, error) {
	matchUps := [][]metrics.AgentConfig{}
	for _, config := range parallelConfigs {
		matchUps = append(matchUps, []metrics.AgentConfig{config, config})
	}

	return runExperiment(cfg, "throughput", parallelConfigs, matchUps)
}

func runExperiment(cfg Config, name string, configs []metrics.AgentConfig, matchUps [][]metrics.AgentConfig) (*metrics.Writer, error) {
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	// Run a number of games for each matchup
	count := 0
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	log.Info().Msgf("starting %s experiment...", name)

	for mi, matchup := range matchUps {
		config1 := matchup[0]
		config2 := matchup[1]

		log.Info().Msgf("starting matchup %d of %d between agent1=%+v and agent2=%+v...", mi+1, len(matchUps), config1, config2)

		for i := 0; i < cfg.NumGames; i++ {
			log.Info().Msgf("starting matchup %d of %d game %d of %d...", mi+1, len(matchUps), i+1, cfg.NumGames)

			// Alternate colors so neither agent always moves first
			white, black := config1, config2
			if i%2 == 1 {
				white, black = config2, config1
			}

			count++
			gameMetric, moveMetrics, err := runGame(white, black, cfg.MaxTurns, seed+uint64(count))
			if err != nil {
				return nil, fmt.Errorf("failed to play game %d: %w", count, err)
			}
			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         count,
				White:      white.ID,
				Black:      black.ID,
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
			}

			log.Info().Msgf("completed matchup %d of %d game %d with winner: %s", mi+1, len(matchUps), i+1, gameMetric.Winner)
		}
		log.Info().Msgf("completed matchup %d of %d", mi+1, len(matchUps))
	}

	log.Info().Msgf("completed %s experiment", name)

	writer, err := metrics.NewWriter(cfg.Dir, name)
	if err != nil {
		return nil, fmt.Errorf("failed to create experiment writer: %w", err)
	}

	// Store experiment metadata
	err = writer.WriteAgentConfigs(configs)
	if err != nil {
		return nil, fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	// Store experiment results
	err = writer.WriteGameRecords(gameRecords)
	if err != nil {
		return nil, fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	err = writer.WriteMoveRecords(moveRecords)
	if err != nil {
		return nil, fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")

	return writer, nil
}

// runGame plays a single game from the starting position
func runGame(white, black metrics.AgentConfig, maxTurns int, seed uint64) (metrics.GameMetric, []metrics.MoveMetric, error) {
	e := engine.LocalEngine(createAgent(white, seed), createAgent(black, seed+1), game.StartingState(), maxTurns)
	return e.Run()
}

func createAgent(config metrics.AgentConfig, seed uint64) agent.Agent {
	if config.Kind == KindRandom {
		return player.NewRandom(seed)
	}

	options := []searcher.Option{searcher.WithSeed(seed)}
	if config.Goroutines > 0 {
		options = append(options, searcher.WithGoroutines(config.Goroutines))
	}
	return agent.NewSearchAgent(searcher.NewSearcher(options...), config.Depth)
}
