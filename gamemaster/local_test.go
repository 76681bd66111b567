package gamemaster

import (
	"context"
	"errors"
	"testing"
	"time"

	"euphoria/communication"
	"euphoria/game"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

/**
Local engine
- init: fresh game, no updates yet, recorders started with the game id
- valid intent: applied, one update with the new digest, recorded
- intent out of turn or illegal: typed rejection, state untouched, nothing recorded
- game over: recorders finished once, further intents refused
Game master
- plays intents received by a communicator and publishes every new state
*/

type mockRecorder struct {
	id       string
	updates  []Update
	finished int
}

func (r *mockRecorder) Start(id string, _ game.Options) error { r.id = id; return nil }
func (r *mockRecorder) Record(u Update) error                 { r.updates = append(r.updates, u); return nil }
func (r *mockRecorder) Finish(*game.GameState) error          { r.finished++; return nil }

func testOptions(seed uint64) game.Options {
	opts := game.DefaultOptions("alice", "bob")
	opts.Seed = seed
	opts.MaxTurns = 12
	return opts
}

func TestLocalEngineInit(t *testing.T) {
	rec := &mockRecorder{}
	engine := NewLocalEngine(testOptions(1), rec)
	state, getUpdate, err := engine.Init()
	require.NoError(t, err)

	require.Equal(t, game.ChooseRecruitPhase, state.Phase, "Game should start by choosing recruits")
	require.Equal(t, engine.ID(), rec.id, "Recorder should start with the game id")
	_, ok := getUpdate()
	require.False(t, ok, "No updates before any intent")

	other := NewLocalEngine(testOptions(1))
	otherState, _, err := other.Init()
	require.NoError(t, err)
	require.Equal(t, state.Digest(), otherState.Digest(), "Same options should deal the same game")
	require.NotEqual(t, engine.ID(), other.ID(), "Every game gets its own id")
}

func TestLocalEnginePlay(t *testing.T) {
	t.Run("valid intent", func(t *testing.T) {
		rec := &mockRecorder{}
		engine := NewLocalEngine(testOptions(2), rec)
		state, getUpdate, err := engine.Init()
		require.NoError(t, err)

		move := state.LegalMoves()[0].(game.Intent)
		require.NoError(t, engine.Play(state.Player(), move))

		u, ok := getUpdate()
		require.True(t, ok, "Expected an update after playing an intent")
		require.Equal(t, 1, u.Step)
		require.Equal(t, move, u.Intent)
		require.Equal(t, engine.State().Digest(), u.Digest, "Update should carry the new digest")
		require.Len(t, rec.updates, 1, "Intent should be recorded")
		_, ok = getUpdate()
		require.False(t, ok, "Updates are handed out once")
	})

	t.Run("intent out of turn", func(t *testing.T) {
		rec := &mockRecorder{}
		engine := NewLocalEngine(testOptions(3), rec)
		state, _, err := engine.Init()
		require.NoError(t, err)

		other := "bob"
		if state.Player() == "bob" {
			other = "alice"
		}
		err = engine.Play(other, state.LegalMoves()[0].(game.Intent))
		require.ErrorIs(t, err, game.ErrNotYourTurn)
		require.Equal(t, state.Digest(), engine.State().Digest(), "Rejected intent should not change the game")
		require.Empty(t, rec.updates)
	})

	t.Run("illegal intent", func(t *testing.T) {
		engine := NewLocalEngine(testOptions(4))
		state, _, err := engine.Init()
		require.NoError(t, err)

		err = engine.Play(state.Player(), game.Confirm())
		require.ErrorIs(t, err, game.ErrWrongPhase)
		var rejection *game.Rejection
		require.True(t, errors.As(err, &rejection))
		require.Equal(t, game.ChooseRecruitPhase, rejection.Phase)
	})

	t.Run("game over", func(t *testing.T) {
		rec := &mockRecorder{}
		engine := NewLocalEngine(testOptions(5), rec)
		state, _, err := engine.Init()
		require.NoError(t, err)

		r := rand.New(rand.NewSource(5))
		for steps := 0; !state.IsOver(); steps++ {
			require.Less(t, steps, 20000, "Game should end")
			moves := state.LegalMoves()
			require.NoError(t, engine.Play(state.Player(), moves[r.Intn(len(moves))].(game.Intent)))
			state = engine.State()
		}

		require.Equal(t, 1, rec.finished, "Recorders should finish once")
		require.Equal(t, len(rec.updates), rec.updates[len(rec.updates)-1].Step)
		err = engine.Play(state.Player(), game.Confirm())
		require.ErrorIs(t, err, game.ErrGameOver)
	})
}

func TestGameMaster(t *testing.T) {
	comm := communication.NewLocalCommunicator()
	gm := NewGameMaster(NewLocalEngine(testOptions(6)), comm)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	type result struct {
		winner string
		err    error
	}
	done := make(chan result, 1)
	go func() {
		winner, err := gm.RunGame(ctx)
		done <- result{winner, err}
	}()

	require.Eventually(t, func() bool { return comm.GetGameState() != nil }, time.Second, time.Millisecond)

	r := rand.New(rand.NewSource(6))
	for {
		state := comm.GetGameState()
		if state.IsOver() {
			break
		}
		moves := state.LegalMoves()
		action := communication.NewAction(state.Player(), moves[r.Intn(len(moves))].(game.Intent))
		comm.SendAction(action)
		require.NoError(t, <-action.Result)

		wrong := communication.NewAction("nobody", game.Confirm())
		if !comm.GetGameState().IsOver() {
			comm.SendAction(wrong)
			require.ErrorIs(t, <-wrong.Result, game.ErrNotYourTurn)
		}
	}

	select {
	case res := <-done:
		require.NoError(t, res.err)
		require.Contains(t, []string{"alice", "bob"}, res.winner)
	case <-ctx.Done():
		t.Fatal("game master did not finish")
	}
}
