package engine

import (
	"testing"

	"euphoria/game"
	"euphoria/searcher"
	"euphoria/searcher/agent"

	"github.com/stretchr/testify/require"
)

/**
Local engine
- random agents finish a short game with a winner and one metric per move
- a searching agent and a random agent finish a short game
- mismatched agent counts panic
*/

func shortGame(seed uint64) game.Options {
	opts := game.DefaultOptions("alice", "bob")
	opts.Seed = seed
	opts.MaxTurns = 12
	return opts
}

func TestLocalEngineRun(t *testing.T) {
	t.Run("random agents", func(t *testing.T) {
		e := NewLocalEngine(shortGame(4), []agent.Agent{agent.NewRandomAgent(1), agent.NewRandomAgent(2)})
		winner, gameMetric, moveMetrics, err := e.Run()
		require.NoError(t, err)
		require.Contains(t, []string{"alice", "bob"}, winner)
		require.Equal(t, winner, gameMetric.Winner)
		require.Len(t, moveMetrics, gameMetric.TotalMoves, "One metric per intent")
		require.NotEmpty(t, gameMetric.ID)
		require.GreaterOrEqual(t, gameMetric.Turns, 1)
	})

	t.Run("searching agent", func(t *testing.T) {
		mcts := searcher.NewMCTS(1, searcher.WithEpisodes(20), searcher.WithCutoff(50), searcher.WithMetrics())
		e := NewLocalEngine(shortGame(5), []agent.Agent{agent.NewEvaluationAgent(mcts), agent.NewRandomAgent(3)})
		winner, _, moveMetrics, err := e.Run()
		require.NoError(t, err)
		require.NotEmpty(t, winner)

		searched := 0
		for _, m := range moveMetrics {
			if m.Player == 0 {
				require.Equal(t, 20, m.Episodes, "Searcher should run its full budget")
				searched++
			}
		}
		require.Positive(t, searched)
	})

	t.Run("mismatched agents", func(t *testing.T) {
		require.Panics(t, func() { NewLocalEngine(shortGame(1), []agent.Agent{agent.NewRandomAgent(1)}) })
	})
}
