package communication

import (
	"context"

	"euphoria/game"
)

// Communicator is an interface that abstracts the communication mechanism.
type Communicator interface {
	GetGameState() *game.GameState
	UpdateGameState(gs *game.GameState)
	SendAction(action Action)
	ReceiveAction(ctx context.Context) (Action, error)
}

// Action is an intent sent on behalf of a player. The outcome is delivered
// on Result when it is set.
type Action struct {
	Player string
	Intent game.Intent
	Result chan error
}

func NewAction(player string, in game.Intent) Action {
	return Action{Player: player, Intent: in, Result: make(chan error, 1)}
}

func (a Action) Reply(err error) {
	if a.Result != nil {
		a.Result <- err
	}
}
