package player

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"euphoria/communication/client"
	"euphoria/communication/server"
	"euphoria/game"
	"euphoria/gamemaster"

	"github.com/stretchr/testify/require"
)

/**
Remote bots
- two bots connected over websockets finish a short game and agree on the winner
*/

func TestPlayers(t *testing.T) {
	opts := game.DefaultOptions("alice", "bob")
	opts.Seed = 17
	opts.MaxTurns = 8

	srv := server.NewServer(opts.Players)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()
	url := "ws" + strings.TrimPrefix(ts.URL, "http")

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	gm := gamemaster.NewGameMaster(gamemaster.NewLocalEngine(opts), srv)
	done := make(chan string, 1)
	go func() {
		winner, _ := gm.RunGame(ctx)
		done <- winner
	}()
	require.Eventually(t, func() bool { return srv.GetGameState() != nil }, 2*time.Second, 10*time.Millisecond, "Game should start")

	type result struct {
		winner string
		err    error
	}
	results := make(chan result, len(opts.Players))
	for i, name := range opts.Players {
		c, err := client.Dial(ctx, url, name)
		require.NoError(t, err)
		defer c.Close()
		p := NewPlayer(c, uint64(i))
		go func() {
			winner, err := p.Play(ctx)
			results <- result{winner, err}
		}()
	}

	winner := <-done
	require.NotEmpty(t, winner, "Game master should report a winner")
	for range opts.Players {
		r := <-results
		require.NoError(t, r.err)
		require.Equal(t, winner, r.winner, "Bots should see the same winner")
	}
}
