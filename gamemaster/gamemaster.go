package gamemaster

import (
	"context"

	"euphoria/communication"

	"github.com/rs/zerolog/log"
)

// GameMaster feeds the intents a Communicator receives into an Engine and
// publishes every state the engine reaches.
type GameMaster struct {
	Engine       Engine
	Communicator communication.Communicator
}

// NewGameMaster initializes a new GameMaster.
func NewGameMaster(engine Engine, comm communication.Communicator) *GameMaster {
	return &GameMaster{
		Engine:       engine,
		Communicator: comm,
	}
}

// RunGame starts a game and plays it until it is over or ctx is done.
func (gm *GameMaster) RunGame(ctx context.Context) (winner string, err error) {
	state, _, err := gm.Engine.Init()
	if err != nil {
		return "", err
	}
	gm.Communicator.UpdateGameState(state)

	for {
		action, err := gm.Communicator.ReceiveAction(ctx)
		if err != nil {
			return "", err
		}

		// publish before replying so the sender sees its own move applied
		err = gm.Engine.Play(action.Player, action.Intent)
		if err == nil {
			state = gm.Engine.State()
			gm.Communicator.UpdateGameState(state)
		}
		action.Reply(err)
		if err == nil && state.IsOver() {
			log.Info().Str("game", gm.Engine.ID()).Str("winner", state.Winner()).Msg("game master done")
			return state.Winner(), nil
		}
	}
}
