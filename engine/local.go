package engine

import (
	"fmt"
	"time"

	"euphoria/experiments/metrics"
	"euphoria/game"
	"euphoria/gamemaster"
	"euphoria/searcher"
	"euphoria/searcher/agent"

	"github.com/rs/zerolog/log"
)

// LocalEngine seats one agent per player and plays them against each other
// in process. Every intent goes through a game master engine, so recorders
// see agent games exactly like remote ones.
type LocalEngine struct {
	opts      game.Options
	agents    []agent.Agent
	recorders []gamemaster.Recorder
}

func NewLocalEngine(opts game.Options, agents []agent.Agent, recorders ...gamemaster.Recorder) *LocalEngine {
	if len(opts.Players) != len(agents) {
		panic("number of players does not match number of agents")
	}
	if len(agents) < 2 {
		panic("need at least two players")
	}
	return &LocalEngine{opts: opts, agents: agents, recorders: recorders}
}

func (e *LocalEngine) Run() (string, metrics.GameMetric, []metrics.MoveMetric, error) {
	master := gamemaster.NewLocalEngine(e.opts, e.recorders...)
	state, _, err := master.Init()
	if err != nil {
		return "", metrics.GameMetric{}, nil, err
	}

	gameMetric := metrics.GameMetric{
		ID:             master.ID(),
		StartingPlayer: state.Current,
		StartTime:      time.Now(),
	}
	log.Info().Str("game", gameMetric.ID).Msgf("%s is starting", state.Player())

	// moves each agent has not seen since it last searched
	updates := make([][]searcher.Segment, len(e.agents))
	var moveMetrics []metrics.MoveMetric
	step := 0
	for !state.IsOver() && step < MaxMoves {
		step++
		seat := state.Current
		move, searchMetric := e.agents[seat].FindMove(state, updates[seat])
		updates[seat] = nil
		moveMetrics = append(moveMetrics, metrics.MoveMetric{Step: step, Player: seat, SearchMetric: searchMetric})

		in, ok := move.(game.Intent)
		if !ok {
			return "", gameMetric, moveMetrics, fmt.Errorf("agent for %s returned no move at step %d", state.Player(), step)
		}
		if err := master.Play(state.Player(), in); err != nil {
			return "", gameMetric, moveMetrics, fmt.Errorf("step %d: %w", step, err)
		}
		state = master.State()

		segment := searcher.Segment{Move: move, StateHash: state.Hash()}
		for i := range updates {
			updates[i] = append(updates[i], segment)
		}
	}

	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = step
	gameMetric.Turns = state.Turns
	gameMetric.Winner = state.Winner()
	if gameMetric.Winner == "" {
		log.Warn().Str("game", gameMetric.ID).Int("moves", step).Msg("stopped without a winner")
	}
	return gameMetric.Winner, gameMetric, moveMetrics, nil
}
