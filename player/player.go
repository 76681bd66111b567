// Package player runs a bot that plays a seat of a remote game.
package player

import (
	"context"
	"errors"
	"math/rand/v2"

	"euphoria/communication"
	"euphoria/communication/client"
	"euphoria/game"

	"github.com/rs/zerolog/log"
)

// Player picks uniformly among the moves the server lists for its seat.
type Player struct {
	Name   string
	Client *client.Client
	rng    *rand.Rand
}

func NewPlayer(c *client.Client, seed uint64) *Player {
	return &Player{
		Name:   c.Player,
		Client: c,
		rng:    rand.New(rand.NewPCG(seed, uint64(c.Seat))),
	}
}

// Play answers every prompt for the seat until the game is over and
// returns the winner.
func (p *Player) Play(ctx context.Context) (string, error) {
	for {
		view := p.Client.State()
		if view != nil && view.GameOver {
			return view.Winner, nil
		}
		if view != nil && view.ToMove == p.Name && len(view.Moves) > 0 {
			in := p.TakeTurn(view)
			err := p.Client.SendIntent(ctx, in)
			var remote *client.RemoteError
			switch {
			case err == nil:
				continue
			case errors.As(err, &remote):
				// our view was stale; ask again
				log.Warn().Str("player", p.Name).Str("intent", in.String()).Err(err).Msg("intent refused")
				if _, err := p.Client.Query(ctx); err != nil {
					return "", err
				}
				continue
			default:
				return "", err
			}
		}
		if _, err := p.Client.Next(ctx); err != nil {
			return "", err
		}
	}
}

// TakeTurn decides on one of the listed moves.
func (p *Player) TakeTurn(view *communication.View) game.Intent {
	return view.Moves[p.rng.IntN(len(view.Moves))]
}
