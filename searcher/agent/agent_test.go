package agent

import (
	"euphoria/game"
	"euphoria/searcher"
	"testing"

	"github.com/stretchr/testify/require"
)

/**
Agents
- evaluation agent plays the most visited move, breaking ties by name
- training agent samples by sharpened visit counts, reproducibly per seed
- random agent only plays legal moves
- every agent returns a legal move on a real game
*/

func TestFindMax(t *testing.T) {
	a, b := game.Pick(game.HandDie(2)), game.Pick(game.HandDie(5))
	require.Equal(t, b, findMax(map[game.Move]float64{a: 3, b: 9}), "Should pick the most visited move")
	require.Equal(t, a, findMax(map[game.Move]float64{a: 4, b: 4}), "Ties should break by name")
}

func TestAdjustTemperature(t *testing.T) {
	a, b := game.Pick(game.HandDie(2)), game.Pick(game.HandDie(5))
	policy := adjustTemperature(map[game.Move]float64{a: 1, b: 3}, 1.0)
	require.InDelta(t, 0.25, policy[a], 1e-9)
	require.InDelta(t, 0.75, policy[b], 1e-9)

	sharp := adjustTemperature(map[game.Move]float64{a: 1, b: 3}, 0.5)
	require.InDelta(t, 0.1, sharp[a], 1e-9, "1^2/(1^2+3^2)")

	moves := []game.Move{a, b}
	require.Equal(t, a, sample(policy, moves, 0.1))
	require.Equal(t, b, sample(policy, moves, 0.3))
	require.Equal(t, b, sample(policy, moves, 0.9999999999), "Rounding should fall back to the last move")
}

func TestAgentsOnRealGame(t *testing.T) {
	opts := game.DefaultOptions("alice", "bob")
	opts.Seed = 5
	opts.MaxTurns = 20
	state := game.NewGameState(opts)

	agents := map[string]Agent{
		"evaluation": NewEvaluationAgent(searcher.NewMCTS(2, searcher.WithEpisodes(60), searcher.WithCutoff(20))),
		"training":   NewTrainingAgent(searcher.NewMCTS(2, searcher.WithEpisodes(60), searcher.WithCutoff(20)), 1.0, 1),
		"random":     NewRandomAgent(1),
	}
	for name, a := range agents {
		t.Run(name, func(t *testing.T) {
			move, _ := a.FindMove(state, nil)
			require.NotNil(t, move)
			require.NoError(t, state.Check(move.(game.Intent)), "%s should play a legal move", name)
		})
	}
}
