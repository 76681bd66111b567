package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"euphoria/game"

	"github.com/stretchr/testify/require"
)

/**
Configuration
- the defaults validate and build the standard game
- a file overrides only the fields it names
- penalties from a file are compiled into the game options
- invalid settings are all reported
- the search section builds a searcher
*/

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "euphoria.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())

	opts, err := c.GameOptions()
	require.NoError(t, err)
	expected := game.DefaultOptions("alice", "bob")
	require.Equal(t, expected.Players, opts.Players)
	require.Equal(t, expected.Revision, opts.Revision)
	require.Equal(t, expected.StartingAuthority, opts.StartingAuthority)
	require.Len(t, opts.Penalties, len(expected.Penalties))
}

func TestLoad(t *testing.T) {
	t.Run("overriding some fields", func(t *testing.T) {
		c, err := Load(writeConfig(t, `
game:
  players: [ann, ben, cat]
  seed: 42
search:
  duration: 250ms
  episodes: 0
log:
  level: debug
`))
		require.NoError(t, err)
		require.Equal(t, []string{"ann", "ben", "cat"}, c.Game.Players)
		require.Equal(t, uint64(42), c.Game.Seed)
		require.Equal(t, 250*time.Millisecond, c.Search.Duration)
		require.Equal(t, Default().Game.StartingAuthority, c.Game.StartingAuthority, "Unnamed fields keep their default")
		require.Equal(t, Default().Search.Cutoff, c.Search.Cutoff)
	})

	t.Run("custom penalties", func(t *testing.T) {
		c, err := Load(writeConfig(t, `
penalties:
  - name: NoMarkets
    description: market abilities do nothing
    suppresses: Hook.Group == "market"
`))
		require.NoError(t, err)
		opts, err := c.GameOptions()
		require.NoError(t, err)
		require.Len(t, opts.Penalties, 1)
		require.Equal(t, "NoMarkets", opts.Penalties[0].Name)
	})

	t.Run("invalid settings", func(t *testing.T) {
		_, err := Load(writeConfig(t, `
game:
  players: [ann, ann]
  revision: 7
penalties:
  - name: Broken
    suppresses: Hook.Nope >
search:
  evaluation: vibes
`))
		require.Error(t, err)
		for _, part := range []string{"appears twice", "game.revision", "penalties", "search.evaluation"} {
			require.ErrorContains(t, err, part)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		require.Error(t, err)
	})
}

func TestSearchMCTS(t *testing.T) {
	s := Default().Search
	s.Goroutines = 1
	s.Episodes = 10
	s.Metrics = true
	mcts := s.MCTS()

	state := game.NewGameState(game.DefaultOptions("alice", "bob"))
	policy, metric := mcts.Simulate(state, nil)
	require.NotEmpty(t, policy)
	require.Equal(t, 10, metric.Episodes)
}
