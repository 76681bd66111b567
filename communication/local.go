package communication

import (
	"context"
	"sync"

	"euphoria/game"
)

// LocalCommunicator connects players in the same process, for hot-seat
// play and tests.
type LocalCommunicator struct {
	gameState *game.GameState
	actions   chan Action
	mutex     sync.RWMutex
}

func NewLocalCommunicator() *LocalCommunicator {
	return &LocalCommunicator{actions: make(chan Action, 100)}
}

func (lc *LocalCommunicator) GetGameState() *game.GameState {
	lc.mutex.RLock()
	defer lc.mutex.RUnlock()
	if lc.gameState == nil {
		return nil
	}
	return lc.gameState.Copy()
}

func (lc *LocalCommunicator) UpdateGameState(gs *game.GameState) {
	lc.mutex.Lock()
	defer lc.mutex.Unlock()
	lc.gameState = gs
}

func (lc *LocalCommunicator) SendAction(action Action) {
	lc.actions <- action
}

func (lc *LocalCommunicator) ReceiveAction(ctx context.Context) (Action, error) {
	select {
	case action := <-lc.actions:
		return action, nil
	case <-ctx.Done():
		return Action{}, ctx.Err()
	}
}
