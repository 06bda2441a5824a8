package main

import (
	"checkmate/config"
	"checkmate/engine"
	"checkmate/experiments"
	"checkmate/game"
	"checkmate/player"
	"checkmate/searcher"
	"checkmate/searcher/agent"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := config.SetupLogger(cfg.Logs); err != nil {
		fmt.Fprintf(os.Stderr, "failed to set up logger: %v\n", err)
		os.Exit(1)
	}

	mode := flag.String("mode", "move", "One of move, play, serve or experiment")
	fen := flag.String("fen", "", "Position to search in move mode (default: starting position)")
	side := flag.String("side", "", "Side to search for in move mode (default: side to move)")
	depth := flag.Int("depth", cfg.Search.Depth, "Number of plies to search")
	goroutines := flag.Int("goroutines", cfg.Search.Goroutines, "Number of goroutines expanding root subtrees")
	seed := flag.Uint64("seed", cfg.Search.Seed, "Seed for tie-breaking (0: seed from the clock)")
	queen := flag.Bool("queen", cfg.Search.PromoteToQueen, "Only consider queen promotions")
	human := flag.String("human", "black", "Side played by the human in play mode")
	addr := flag.String("addr", cfg.HTTP.Addr, "Listen address in serve mode")
	experiment := flag.String("experiment", "depth", "Experiment to run: depth or throughput")
	flag.Parse()

	options := []searcher.Option{searcher.WithGoroutines(*goroutines)}
	if *seed != 0 {
		options = append(options, searcher.WithSeed(*seed))
	}
	if *queen {
		options = append(options, searcher.WithMoveNormalizer(game.PromoteToQueen))
	}
	s := searcher.NewSearcher(options...)

	switch *mode {
	case "move":
		err = findMove(s, *fen, *side, *depth)
	case "play":
		err = play(s, *human, *depth, cfg.Experiment.MaxTurns)
	case "serve":
		log.Info().Msgf("starting search server on %s...", *addr)
		err = agent.NewRouter(s, *depth, cfg.HTTP.MaxDepth, cfg.HTTP.AllowOrigins).Run(*addr)
	case "experiment":
		err = runExperiment(*experiment, experiments.Config{
			Dir:      cfg.Experiment.Dir,
			NumGames: cfg.Experiment.NumGames,
			MaxTurns: cfg.Experiment.MaxTurns,
			Seed:     *seed,
		})
	default:
		err = fmt.Errorf("unknown mode %q", *mode)
	}
	if err != nil {
		log.Fatal().Err(err).Msgf("%s failed", *mode)
	}
}

func findMove(s *searcher.Searcher, fen, sideName string, depth int) error {
	state := game.StartingState()
	if fen != "" {
		var err error
		state, err = game.ParseFEN(fen)
		if err != nil {
			return err
		}
	}

	side := state.Turn()
	if sideName != "" {
		var err error
		side, err = game.ParseSide(sideName)
		if err != nil {
			return err
		}
	}

	move, _ := s.Search(state, side, depth)
	if move == nil {
		fmt.Println("none")
		return nil
	}
	fmt.Println(move)
	return nil
}

func play(s *searcher.Searcher, humanSide string, depth, maxTurns int) error {
	side, err := game.ParseSide(humanSide)
	if err != nil {
		return err
	}

	human := player.NewHuman(os.Stdin, os.Stdout)
	bot := agent.NewSearchAgent(s, depth)
	white, black := agent.Agent(bot), agent.Agent(human)
	if side == game.White {
		white, black = human, bot
	}

	e := engine.LocalEngine(white, black, game.StartingState(), maxTurns)
	gameMetric, _, err := e.Run()
	if errors.Is(err, player.ErrQuit) {
		fmt.Println("Game abandoned")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Printf("Outcome of the game is: %s\n", gameMetric.Winner)
	return nil
}

func runExperiment(name string, cfg experiments.Config) error {
	var err error
	switch name {
	case "depth":
		_, err = experiments.RunDepthExperiment(cfg)
	case "throughput":
		_, err = experiments.RunThroughputExperiment(cfg)
	default:
		err = fmt.Errorf("unknown experiment %q", name)
	}
	return err
}
