package gamemaster

import (
	"fmt"
	"sync"

	"euphoria/game"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Update is one accepted intent and what it led to.
type Update struct {
	Game   string
	Step   int
	Player string
	Intent game.Intent
	Digest uint64
	Prompt game.Prompt
}

// UpdateGetter pops the oldest update not yet seen. ok is false when there
// is none.
type UpdateGetter func() (u Update, ok bool)

// Recorder receives every accepted intent of a game, in order.
type Recorder interface {
	Start(id string, opts game.Options) error
	Record(u Update) error
	Finish(gs *game.GameState) error
}

type Engine interface {
	Init() (*game.GameState, UpdateGetter, error)
	Play(player string, in game.Intent) error
	State() *game.GameState
	ID() string
}

type localEngine struct {
	sync.Mutex
	id        string
	opts      game.Options
	state     *game.GameState
	updates   []Update
	recorders []Recorder
	step      int
	gameOver  bool
}

func NewLocalEngine(opts game.Options, recorders ...Recorder) *localEngine {
	return &localEngine{opts: opts, recorders: recorders}
}

func (e *localEngine) Init() (*game.GameState, UpdateGetter, error) {
	e.Lock()
	defer e.Unlock()

	e.id = uuid.NewString()
	e.state = game.NewGameState(e.opts)
	e.updates = nil
	e.step = 0
	e.gameOver = false
	for _, r := range e.recorders {
		if err := r.Start(e.id, e.opts); err != nil {
			return nil, nil, fmt.Errorf("start recording %s: %w", e.id, err)
		}
	}
	log.Info().Str("game", e.id).Strs("players", e.opts.Players).Msg("game started")

	return e.state.Copy(), func() (Update, bool) {
		e.Lock()
		defer e.Unlock()
		if len(e.updates) == 0 {
			return Update{}, false
		}
		u := e.updates[0]
		e.updates = e.updates[1:]
		return u, true
	}, nil
}

// Play applies in on behalf of player. Illegal intents are returned as a
// *game.Rejection and leave the game untouched. A recorder error is
// returned after the intent has been applied.
func (e *localEngine) Play(player string, in game.Intent) error {
	e.Lock()
	defer e.Unlock()

	if e.state == nil {
		return fmt.Errorf("game not initialized")
	}
	in = in.Normalized()
	if e.gameOver {
		return &game.Rejection{Code: game.GameOver, Phase: e.state.Phase, Intent: in}
	}
	if expected := e.state.Player(); player != expected {
		log.Debug().Str("game", e.id).Str("player", player).Str("intent", in.String()).Msg("intent out of turn")
		return &game.Rejection{Code: game.NotYourTurn, Phase: e.state.Phase, Intent: in, Reason: "waiting for " + expected}
	}
	if err := e.state.Apply(in); err != nil {
		log.Debug().Str("game", e.id).Str("player", player).Err(err).Msg("intent rejected")
		return err
	}

	e.step++
	u := Update{
		Game:   e.id,
		Step:   e.step,
		Player: player,
		Intent: in,
		Digest: e.state.Digest(),
		Prompt: e.state.Prompt(),
	}
	e.updates = append(e.updates, u)
	for _, r := range e.recorders {
		if err := r.Record(u); err != nil {
			return fmt.Errorf("record step %d: %w", u.Step, err)
		}
	}

	if e.state.IsOver() {
		e.gameOver = true
		log.Info().Str("game", e.id).Str("winner", e.state.Winner()).Int("steps", e.step).Msg("game over")
		for _, r := range e.recorders {
			if err := r.Finish(e.state.Copy()); err != nil {
				return fmt.Errorf("finish recording %s: %w", e.id, err)
			}
		}
	}
	return nil
}

// State returns a copy of the current state.
func (e *localEngine) State() *game.GameState {
	e.Lock()
	defer e.Unlock()

	if e.state == nil {
		return nil
	}
	return e.state.Copy()
}

func (e *localEngine) ID() string {
	e.Lock()
	defer e.Unlock()

	return e.id
}
