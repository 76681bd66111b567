package store

import (
	"math/rand/v2"
	"path/filepath"
	"testing"

	"euphoria/game"
	"euphoria/gamemaster"

	"github.com/stretchr/testify/require"
)

/**
Game index
- a finished game is listed with its winner, turns and final digest
- every intent is stored in order with its digest
- wins are counted per winner
- a game in progress has no winner
*/

func openIndex(t *testing.T) *Index {
	t.Helper()
	idx, err := Open(filepath.Join(t.TempDir(), "games.db"))
	require.NoError(t, err)
	t.Cleanup(func() { idx.Close() })
	return idx
}

// play drives a game with random legal moves until it is over or limit
// intents were played.
func play(t *testing.T, idx *Index, seed uint64, limit int) (string, *game.GameState, []gamemaster.Update) {
	t.Helper()
	opts := game.DefaultOptions("alice", "bob")
	opts.Seed = seed
	opts.MaxTurns = 6
	e := gamemaster.NewLocalEngine(opts, idx.Recorder())
	state, next, err := e.Init()
	require.NoError(t, err)
	rng := rand.New(rand.NewPCG(seed, 2))
	for i := 0; i < limit && !state.IsOver(); i++ {
		moves := state.LegalMoves()
		require.NoError(t, e.Play(state.Player(), moves[rng.IntN(len(moves))].(game.Intent)))
		state = e.State()
	}
	var updates []gamemaster.Update
	for u, ok := next(); ok; u, ok = next() {
		updates = append(updates, u)
	}
	return e.ID(), state, updates
}

func TestIndex(t *testing.T) {
	t.Run("finished game", func(t *testing.T) {
		idx := openIndex(t)
		id, final, updates := play(t, idx, 1, 100000)
		require.True(t, final.IsOver())

		row, err := idx.Game(id)
		require.NoError(t, err)
		require.Equal(t, "alice,bob", row.Players)
		require.Equal(t, int64(1), row.Seed)
		require.True(t, row.Winner.Valid)
		require.Equal(t, final.Winner(), row.Winner.String)
		require.Equal(t, final.Turns, row.Turns)
		require.Equal(t, len(updates), row.Steps)
		require.Equal(t, int64(final.Digest()), row.Digest.Int64)
		require.True(t, row.Ended.Valid)

		moves, err := idx.Moves(id)
		require.NoError(t, err)
		require.Len(t, moves, len(updates))
		for i, m := range moves {
			require.Equal(t, i+1, m.Step)
			require.Equal(t, updates[i].Player, m.Player)
			require.Equal(t, int64(updates[i].Digest), m.Digest)
			var in game.Intent
			require.NoError(t, in.UnmarshalJSON([]byte(m.Intent)))
			require.Equal(t, updates[i].Intent, in, "Intent should be stored in wire form")
		}
	})

	t.Run("wins and listing", func(t *testing.T) {
		idx := openIndex(t)
		_, a, _ := play(t, idx, 2, 100000)
		_, b, _ := play(t, idx, 3, 100000)
		running, _, _ := play(t, idx, 4, 3)

		wins, err := idx.Wins()
		require.NoError(t, err)
		expected := map[string]int{}
		expected[a.Winner()]++
		expected[b.Winner()]++
		require.Equal(t, expected, wins)

		games, err := idx.Games(10)
		require.NoError(t, err)
		require.Len(t, games, 3)

		row, err := idx.Game(running)
		require.NoError(t, err)
		require.False(t, row.Winner.Valid, "Game in progress has no winner")
		require.Equal(t, 3, row.Steps)
	})
}
