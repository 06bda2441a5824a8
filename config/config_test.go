package config

import (
	"checkmate/meta"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("unset variables fall back to defaults", func(t *testing.T) {
		for _, key := range []string{"SEARCH_DEPTH", "SEARCH_GOROUTINES", "SEARCH_SEED", "SEARCH_PROMOTE_TO_QUEEN", "HTTP_ADDR", "HTTP_ALLOW_ORIGINS", "HTTP_MAX_DEPTH", "LOG_STYLE", "LOG_LEVEL", "EXPERIMENT_DIR", "EXPERIMENT_NUM_GAMES", "EXPERIMENT_MAX_TURNS"} {
			t.Setenv(key, "")
		}

		cfg, err := LoadConfig()

		require.NoError(t, err)
		require.Equal(t, meta.DEPTH, cfg.Search.Depth)
		require.Equal(t, meta.GO_ROUTINES, cfg.Search.Goroutines)
		require.Zero(t, cfg.Search.Seed)
		require.False(t, cfg.Search.PromoteToQueen)
		require.Equal(t, meta.HTTP_ADDR, cfg.HTTP.Addr)
		require.Equal(t, []string{"*"}, cfg.HTTP.AllowOrigins)
		require.Equal(t, meta.DEPTH, cfg.HTTP.MaxDepth)
		require.Equal(t, meta.LOG_STYLE, cfg.Logs.Style)
		require.Equal(t, meta.MAX_TURNS, cfg.Experiment.MaxTurns)
	})

	t.Run("variables override defaults", func(t *testing.T) {
		t.Setenv("SEARCH_DEPTH", "2")
		t.Setenv("SEARCH_GOROUTINES", "8")
		t.Setenv("SEARCH_SEED", "1234")
		t.Setenv("SEARCH_PROMOTE_TO_QUEEN", "true")
		t.Setenv("HTTP_ALLOW_ORIGINS", "http://a.test,http://b.test")
		t.Setenv("HTTP_MAX_DEPTH", "3")
		t.Setenv("LOG_STYLE", "json")
		t.Setenv("EXPERIMENT_NUM_GAMES", "3")

		cfg, err := LoadConfig()

		require.NoError(t, err)
		require.Equal(t, 2, cfg.Search.Depth)
		require.Equal(t, 8, cfg.Search.Goroutines)
		require.Equal(t, uint64(1234), cfg.Search.Seed)
		require.True(t, cfg.Search.PromoteToQueen)
		require.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.HTTP.AllowOrigins)
		require.Equal(t, 3, cfg.HTTP.MaxDepth)
		require.Equal(t, "json", cfg.Logs.Style)
		require.Equal(t, 3, cfg.Experiment.NumGames)
	})

	t.Run("malformed variables name the variable", func(t *testing.T) {
		t.Setenv("SEARCH_DEPTH", "deep")

		_, err := LoadConfig()

		require.ErrorContains(t, err, "SEARCH_DEPTH")
	})
}

func TestSetupLogger(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	require.NoError(t, SetupLogger(LogConfig{Style: "json", Level: "warn"}))
	require.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())

	require.Error(t, SetupLogger(LogConfig{Style: "xml", Level: "info"}))
	require.Error(t, SetupLogger(LogConfig{Style: "console", Level: "loud"}))
}
