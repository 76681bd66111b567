package searcher

import (
	"euphoria/experiments/metrics"
	"euphoria/game"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

/**
Parallel MCTS on real game states
- episodes run to completion and every root move is a legal move
- the subtree of the played line is reused, and an unknown line resets the tree
- rollouts past the cutoff fall back to the evaluation
- options without a budget are refused
- with both an episode count and a duration, the first to run out ends the search
*/

func newTestState(seed uint64) *game.GameState {
	opts := game.DefaultOptions("alice", "bob")
	opts.Seed = seed
	opts.MaxTurns = 30
	return game.NewGameState(opts)
}

func TestMCTSSimulate(t *testing.T) {
	t.Run("searching a real game", func(t *testing.T) {
		state := newTestState(11)
		m := NewMCTS(4, WithEpisodes(200), WithCutoff(40), WithMetrics())

		policy, metric := m.Simulate(state, nil)

		require.NotEmpty(t, policy, "Search should explore root moves")
		legal := state.LegalMoves()
		total := 0.0
		for move, visits := range policy {
			require.Contains(t, legal, move, "Policy should only hold legal moves")
			total += visits
		}
		require.Equal(t, 200.0, total, "Every episode should pass through one root move")
		require.Equal(t, 200, metric.Episodes)
		require.True(t, metric.IsTreeReset, "First search starts a new tree")
	})

	t.Run("reusing the played subtree", func(t *testing.T) {
		state := newTestState(12)
		m := NewMCTS(2, WithEpisodes(300), WithCutoff(20), WithMetrics())
		policy, _ := m.Simulate(state, nil)

		var move game.Move
		for mv, visits := range policy {
			if !mv.IsStochastic() && (move == nil || visits > policy[move]) {
				move = mv
			}
		}
		require.NotNil(t, move, "Recruit choices are deterministic")
		next := state.Play(move)

		_, metric := m.Simulate(next, []Segment{{Move: move, StateHash: next.Hash()}})
		require.False(t, metric.IsTreeReset, "Search should continue below the played move")

		_, metric = m.Simulate(next, []Segment{{Move: game.Confirm(), StateHash: 1}})
		require.True(t, metric.IsTreeReset, "Unknown lines start over")
	})

	t.Run("budget required", func(t *testing.T) {
		require.Panics(t, func() { NewMCTS(1) })
	})

	t.Run("episodes run out first", func(t *testing.T) {
		m := NewMCTS(3, WithEpisodes(7), WithDuration(time.Minute), WithCutoff(5), WithMetrics())
		_, metric := m.Simulate(newTestState(14), nil)
		require.Equal(t, 7, metric.Episodes)
	})

	t.Run("duration runs out first", func(t *testing.T) {
		m := NewMCTS(2, WithEpisodes(1<<30), WithDuration(20*time.Millisecond), WithCutoff(5), WithMetrics())
		start := time.Now()
		_, metric := m.Simulate(newTestState(15), nil)
		require.Less(t, time.Since(start), 10*time.Second)
		require.Less(t, metric.Episodes, 1<<30)
	})
}

func TestBudget(t *testing.T) {
	t.Run("counting episodes", func(t *testing.T) {
		b := newBudget(3, 0)
		require.True(t, b.next())
		require.True(t, b.next())
		require.True(t, b.next())
		require.False(t, b.next())
		require.False(t, b.next(), "An exhausted budget stays exhausted")
	})

	t.Run("expired deadline", func(t *testing.T) {
		b := newBudget(0, time.Nanosecond)
		time.Sleep(time.Millisecond)
		require.False(t, b.next())
	})
}

func TestRollout(t *testing.T) {
	t.Run("stopping at the cutoff", func(t *testing.T) {
		state := mockState{player: "player1", moves: nil, winner: "player2"}
		p := playout{cutoff: 5, evaluate: func(game.State) float64 { return 0.25 }, metrics: metrics.NewDummyCollector()}
		player, score := p.run(state, rand.New(rand.NewSource(1)))
		require.Equal(t, "player2", player, "Terminal states report the winner")
		require.Equal(t, Win, score)
	})

	t.Run("evaluating unfinished games", func(t *testing.T) {
		state := newTestState(13)
		p := playout{cutoff: 1, evaluate: func(game.State) float64 { return 0.25 }, metrics: metrics.NewDummyCollector()}
		player, score := p.run(state, rand.New(rand.NewSource(2)))
		require.NotEmpty(t, player)
		require.Equal(t, 0.25, score)
	})
}
