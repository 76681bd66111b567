package experiments

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"euphoria/experiments/metrics"
	"euphoria/game"

	"github.com/stretchr/testify/require"
)

/**
Experiments
- a small experiment writes configs, one game row per game and move rows
- seats alternate between games of a match up
- random agents give a throughput figure
*/

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestExperimentRun(t *testing.T) {
	opts := game.DefaultOptions("north", "south")
	opts.MaxTurns = 4
	searching := metrics.AgentConfig{ID: 1, Goroutines: 2, Episodes: 5, Cutoff: 20, Evaluation: "authority"}
	x := Experiment{
		Name:    "smoke",
		Root:    t.TempDir(),
		Games:   2,
		Options: opts,
		Configs: []metrics.AgentConfig{RandomBaseline, searching},
	}

	writer, err := x.Run([][]metrics.AgentConfig{{RandomBaseline, searching}})
	require.NoError(t, err)

	configs := readCSV(t, filepath.Join(writer.Dir(), "agent_configs.csv"))
	require.Len(t, configs, 3, "Header plus one row per config")

	games := readCSV(t, filepath.Join(writer.Dir(), "game_records.csv"))
	require.Len(t, games, 3, "Header plus one row per game")
	require.Equal(t, "0|1", games[1][2])
	require.Equal(t, "1|0", games[2][2], "Seats should alternate")

	moves := readCSV(t, filepath.Join(writer.Dir(), "move_records.csv"))
	require.Greater(t, len(moves), 2)
}

func TestThroughput(t *testing.T) {
	opts := game.DefaultOptions("north", "south")
	opts.MaxTurns = 6
	result, err := RunThroughputExperiment(opts, 3)
	require.NoError(t, err)
	require.Equal(t, 3, result.Games)
	require.Positive(t, result.Moves)
	require.Positive(t, result.MovesPerSecond())
	require.Contains(t, result.String(), "intents/s")
}
