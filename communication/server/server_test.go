package server

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"euphoria/communication"
	"euphoria/communication/client"
	"euphoria/game"
	"euphoria/gamemaster"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

/**
Websocket play
- unknown players and second connections for a seat are refused
- a seat playing out of turn gets a not-your-turn result
- the seat to move plays one of its listed moves
- messages failing the schema get an error and keep the connection open
*/

func startGame(t *testing.T) (string, *Server) {
	t.Helper()
	opts := game.DefaultOptions("alice", "bob")
	opts.Seed = 21
	srv := NewServer(opts.Players)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	gm := gamemaster.NewGameMaster(gamemaster.NewLocalEngine(opts), srv)
	go func() { _, _ = gm.RunGame(ctx) }()
	require.Eventually(t, func() bool { return srv.GetGameState() != nil }, 2*time.Second, 10*time.Millisecond, "Game should start")

	return "ws" + strings.TrimPrefix(ts.URL, "http"), srv
}

func TestHandshake(t *testing.T) {
	url, _ := startGame(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := client.Dial(ctx, url, "mallory")
	require.Error(t, err, "Unknown player should be refused")

	alice, err := client.Dial(ctx, url, "alice")
	require.NoError(t, err)
	defer alice.Close()
	require.Equal(t, 0, alice.Seat)

	_, err = client.Dial(ctx, url, "alice")
	require.Error(t, err, "Seat already has a connection")
}

func TestPlay(t *testing.T) {
	url, srv := startGame(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	alice, err := client.Dial(ctx, url, "alice")
	require.NoError(t, err)
	defer alice.Close()
	bob, err := client.Dial(ctx, url, "bob")
	require.NoError(t, err)
	defer bob.Close()

	seats := map[string]*client.Client{"alice": alice, "bob": bob}
	toMove := srv.GetGameState().Player()
	mover := seats[toMove]
	waiter := alice
	if mover == alice {
		waiter = bob
	}

	view, err := mover.Query(ctx)
	require.NoError(t, err)
	require.Equal(t, toMove, view.ToMove)
	require.NotEmpty(t, view.Moves, "Seat to move should get its moves")

	t.Run("playing out of turn", func(t *testing.T) {
		err := waiter.SendIntent(ctx, view.Moves[0])
		var remote *client.RemoteError
		require.True(t, errors.As(err, &remote), "Expected a remote refusal, got %v", err)
		require.Equal(t, game.NotYourTurn.String(), remote.Code)
	})

	t.Run("playing a listed move", func(t *testing.T) {
		before := srv.GetGameState().Digest()
		require.NoError(t, mover.SendIntent(ctx, view.Moves[0]))
		require.NotEqual(t, before, srv.GetGameState().Digest(), "Move should change the game")
		require.NotNil(t, mover.State(), "Mover should have received the new view")
	})
}

func TestInvalidMessage(t *testing.T) {
	url, _ := startGame(t)
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer ws.Close()
	_ = ws.SetReadDeadline(time.Now().Add(5 * time.Second))

	readType := func(want string) communication.ServerMsg {
		for {
			var msg communication.ServerMsg
			require.NoError(t, ws.ReadJSON(&msg))
			if msg.Type == want {
				return msg
			}
		}
	}

	require.NoError(t, ws.WriteJSON(map[string]string{"type": "hello", "player": "bob"}))
	readType(communication.TypeWelcome)

	require.NoError(t, ws.WriteMessage(websocket.TextMessage, []byte(`{"type":"intent"}`)))
	msg := readType(communication.TypeError)
	require.Contains(t, msg.Reason, "invalid message")

	require.NoError(t, ws.WriteJSON(map[string]string{"type": "query"}))
	msg = readType(communication.TypeState)
	require.NotNil(t, msg.State, "Connection should survive a bad message")
}
