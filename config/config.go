package config

import (
	"checkmate/meta"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	// this will automatically load your .env file:
	_ "github.com/joho/godotenv/autoload"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Logs       LogConfig
	Search     SearchConfig
	HTTP       HTTPConfig
	Experiment ExperimentConfig
}

type LogConfig struct {
	Style string // "console" or "json"
	Level string
}

type SearchConfig struct {
	Depth          int
	Goroutines     int
	Seed           uint64 // 0 seeds from the clock
	PromoteToQueen bool
}

type HTTPConfig struct {
	Addr         string
	AllowOrigins []string
	MaxDepth     int // Deepest search a client may request
}

type ExperimentConfig struct {
	Dir      string
	NumGames int
	MaxTurns int
}

// LoadConfig reads the environment, falling back to the meta defaults for
// unset variables.
func LoadConfig() (*Config, error) {
	depth, err := intEnv("SEARCH_DEPTH", meta.DEPTH)
	if err != nil {
		return nil, err
	}
	goroutines, err := intEnv("SEARCH_GOROUTINES", meta.GO_ROUTINES)
	if err != nil {
		return nil, err
	}
	seed, err := uintEnv("SEARCH_SEED", 0)
	if err != nil {
		return nil, err
	}
	promote, err := boolEnv("SEARCH_PROMOTE_TO_QUEEN", false)
	if err != nil {
		return nil, err
	}
	maxDepth, err := intEnv("HTTP_MAX_DEPTH", meta.DEPTH)
	if err != nil {
		return nil, err
	}
	numGames, err := intEnv("EXPERIMENT_NUM_GAMES", meta.NUM_GAMES)
	if err != nil {
		return nil, err
	}
	maxTurns, err := intEnv("EXPERIMENT_MAX_TURNS", meta.MAX_TURNS)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Logs: LogConfig{
			Style: stringEnv("LOG_STYLE", meta.LOG_STYLE),
			Level: stringEnv("LOG_LEVEL", meta.LOG_LEVEL),
		},
		Search: SearchConfig{
			Depth:          depth,
			Goroutines:     goroutines,
			Seed:           seed,
			PromoteToQueen: promote,
		},
		HTTP: HTTPConfig{
			Addr:         stringEnv("HTTP_ADDR", meta.HTTP_ADDR),
			AllowOrigins: strings.Split(stringEnv("HTTP_ALLOW_ORIGINS", "*"), ","),
			MaxDepth:     maxDepth,
		},
		Experiment: ExperimentConfig{
			Dir:      stringEnv("EXPERIMENT_DIR", meta.EXPERIMENTS_DIR),
			NumGames: numGames,
			MaxTurns: maxTurns,
		},
	}

	return cfg, nil
}

// SetupLogger configures the global zerolog logger.
func SetupLogger(cfg LogConfig) error {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		return fmt.Errorf("invalid LOG_LEVEL %q: %w", cfg.Level, err)
	}
	zerolog.SetGlobalLevel(level)

	switch strings.ToLower(cfg.Style) {
	case "console", "":
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	case "json":
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	default:
		return fmt.Errorf("invalid LOG_STYLE %q", cfg.Style)
	}
	return nil
}

func stringEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func intEnv(key string, fallback int) (int, error) {
	value := stringEnv(key, "")
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("failed to parse %s: %w", key, err)
	}
	return n, nil
}

func uintEnv(key string, fallback uint64) (uint64, error) {
	value := stringEnv(key, "")
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse %s: %w", key, err)
	}
	return n, nil
}

func boolEnv(key string, fallback bool) (bool, error) {
	value := stringEnv(key, "")
	if value == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("failed to parse %s: %w", key, err)
	}
	return b, nil
}
