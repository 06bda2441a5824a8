package experiments

import (
	"checkmate/experiments/metrics"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunExperiment(t *testing.T) {
	t.Run("records every game and move of every matchup", func(t *testing.T) {
		cfg := Config{Dir: t.TempDir(), NumGames: 2, MaxTurns: 4, Seed: 1}
		baseline := metrics.AgentConfig{ID: 0, Kind: KindSearch, Depth: 1, Goroutines: 1}
		random := metrics.AgentConfig{ID: 1, Kind: KindRandom}
		parallel := metrics.AgentConfig{ID: 2, Kind: KindSearch, Depth: 1, Goroutines: 2}

		writer, err := runExperiment(cfg, "test", []metrics.AgentConfig{baseline, random, parallel},
			[][]metrics.AgentConfig{{baseline, random}, {baseline, parallel}})

		require.NoError(t, err)
		for _, file := range []string{"agent_configs.csv", "game_records.csv", "move_records.csv"} {
			require.FileExists(t, filepath.Join(writer.Dir(), file))
		}

		games, err := os.ReadFile(filepath.Join(writer.Dir(), "game_records.csv"))
		require.NoError(t, err)
		require.Len(t, splitLines(string(games)), 1+4, "Should record a header and two games per matchup")

		moves, err := os.ReadFile(filepath.Join(writer.Dir(), "move_records.csv"))
		require.NoError(t, err)
		require.Len(t, splitLines(string(moves)), 1+4*4, "Should record every move of every game")
	})

	t.Run("agents alternate colors between games", func(t *testing.T) {
		cfg := Config{Dir: t.TempDir(), NumGames: 2, MaxTurns: 2, Seed: 1}
		a := metrics.AgentConfig{ID: 7, Kind: KindRandom}
		b := metrics.AgentConfig{ID: 8, Kind: KindRandom}

		writer, err := runExperiment(cfg, "colors", []metrics.AgentConfig{a, b}, [][]metrics.AgentConfig{{a, b}})
		require.NoError(t, err)

		games, err := os.ReadFile(filepath.Join(writer.Dir(), "game_records.csv"))
		require.NoError(t, err)
		lines := splitLines(string(games))
		require.Regexp(t, `^1,7,8,`, lines[1])
		require.Regexp(t, `^2,8,7,`, lines[2])
	})
}

func splitLines(s string) []string {
	return strings.Split(strings.TrimSpace(s), "\n")
}
