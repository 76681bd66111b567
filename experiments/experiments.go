package experiments

import (
	"fmt"
	"time"

	"euphoria/engine"
	"euphoria/experiments/metrics"
	"euphoria/game"
	"euphoria/gamemaster"
	"euphoria/searcher"
	"euphoria/searcher/agent"

	"github.com/rs/zerolog/log"
)

const (
	NumGames   = 30 // Per match up
	TimeBudget = 10 * time.Millisecond
)

// Experiment plays every match up NumGames times and writes the results as
// CSV under Root. Seats alternate between games so neither agent always
// moves first.
type Experiment struct {
	Name    string
	Root    string
	Games   int
	Options game.Options // Players names the seats; Seed is advanced per game
	Configs []metrics.AgentConfig
	// Recorders, when set, is called once per game
	Recorders func() []gamemaster.Recorder
}

var parallelConfigs = []metrics.AgentConfig{
	{ID: 1, Goroutines: 1, Duration: TimeBudget},
	{ID: 2, Goroutines: 4, Duration: TimeBudget},
	{ID: 3, Goroutines: 8, Duration: TimeBudget},
	{ID: 4, Goroutines: 16, Duration: TimeBudget},
	{ID: 5, Goroutines: 32, Duration: TimeBudget},
}

// RandomBaseline is the agent config of the uniformly random player.
var RandomBaseline = metrics.AgentConfig{ID: 0}

// ParallelizationMatchUps pairs every parallel agent with the sequential
// baseline.
func ParallelizationMatchUps() ([]metrics.AgentConfig, [][]metrics.AgentConfig) {
	baseline := metrics.AgentConfig{ID: 0, Goroutines: 1, Duration: TimeBudget}
	matchUps := [][]metrics.AgentConfig{}
	for _, config := range parallelConfigs {
		matchUps = append(matchUps, []metrics.AgentConfig{baseline, config})
	}
	return append(parallelConfigs, baseline), matchUps
}

// CutoffMatchUps pairs agents with shorter rollouts against full playouts.
func CutoffMatchUps() ([]metrics.AgentConfig, [][]metrics.AgentConfig) {
	baseline := metrics.AgentConfig{ID: 0, Goroutines: 8, Duration: TimeBudget, Cutoff: searcher.MaxCutoff}
	cutoffConfigs := []metrics.AgentConfig{
		{ID: 1, Goroutines: baseline.Goroutines, Duration: baseline.Duration, Cutoff: 10},
		{ID: 2, Goroutines: baseline.Goroutines, Duration: baseline.Duration, Cutoff: 50},
		{ID: 3, Goroutines: baseline.Goroutines, Duration: baseline.Duration, Cutoff: 100},
		{ID: 4, Goroutines: baseline.Goroutines, Duration: baseline.Duration, Cutoff: 200},
	}
	matchUps := [][]metrics.AgentConfig{}
	for _, config := range cutoffConfigs {
		matchUps = append(matchUps, []metrics.AgentConfig{baseline, config})
	}
	return append(cutoffConfigs, baseline), matchUps
}

// EvaluationMatchUps compares the cutoff evaluations with each other and
// with the random player.
func EvaluationMatchUps(episodes int) ([]metrics.AgentConfig, [][]metrics.AgentConfig) {
	authority := metrics.AgentConfig{ID: 1, Goroutines: 4, Episodes: episodes, Cutoff: 50, Evaluation: "authority"}
	economy := metrics.AgentConfig{ID: 2, Goroutines: 4, Episodes: episodes, Cutoff: 50, Evaluation: "economy"}
	return []metrics.AgentConfig{RandomBaseline, authority, economy}, [][]metrics.AgentConfig{
		{authority, economy},
		{RandomBaseline, authority},
		{RandomBaseline, economy},
	}
}

// Run plays the match ups and returns the writer holding the results.
func (x Experiment) Run(matchUps [][]metrics.AgentConfig) (*metrics.Writer, error) {
	if len(x.Options.Players) != 2 {
		return nil, fmt.Errorf("experiments pair two agents, got %d players", len(x.Options.Players))
	}
	games := x.Games
	if games <= 0 {
		games = NumGames
	}

	count := 0
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	log.Info().Msgf("starting %s experiment...", x.Name)

	for mi, matchup := range matchUps {
		log.Info().Msgf("starting matchup %d of %d between agent1=%+v and agent2=%+v...", mi+1, len(matchUps), matchup[0], matchup[1])

		for i := 0; i < games; i++ {
			seats := []metrics.AgentConfig{matchup[0], matchup[1]}
			if i%2 == 1 {
				seats[0], seats[1] = seats[1], seats[0]
			}
			count++
			opts := x.Options
			opts.Seed = x.Options.Seed + uint64(count)

			winner, gameMetric, moveMetrics, err := x.runGame(opts, seats)
			if err != nil {
				return nil, fmt.Errorf("matchup %d game %d: %w", mi+1, i+1, err)
			}
			gameRecords = append(gameRecords, metrics.GameRecord{
				Game:       count,
				Agents:     []int{seats[0].ID, seats[1].ID},
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				moveRecords = append(moveRecords, metrics.MoveRecord{Game: count, MoveMetric: mm})
			}

			log.Info().Msgf("completed matchup %d of %d game %d with winner: %s", mi+1, len(matchUps), i+1, winner)
		}
	}

	log.Info().Msgf("completed %s experiment", x.Name)

	writer, err := metrics.NewWriter(x.Root, x.Name)
	if err != nil {
		return nil, err
	}
	if err := writer.WriteAgentConfigs(x.Configs); err != nil {
		return nil, err
	}
	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return nil, err
	}
	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return nil, err
	}
	log.Info().Str("dir", writer.Dir()).Msg("stored experiment records")
	return writer, nil
}

func (x Experiment) runGame(opts game.Options, seats []metrics.AgentConfig) (string, metrics.GameMetric, []metrics.MoveMetric, error) {
	agents := make([]agent.Agent, len(seats))
	for i, config := range seats {
		agents[i] = NewAgent(config, opts.Seed+uint64(i))
	}
	var recorders []gamemaster.Recorder
	if x.Recorders != nil {
		recorders = x.Recorders()
	}
	return engine.NewLocalEngine(opts, agents, recorders...).Run()
}

// NewAgent builds the agent a config describes. A config without goroutines
// is the random player.
func NewAgent(config metrics.AgentConfig, seed uint64) agent.Agent {
	if config.Goroutines == 0 {
		return agent.NewRandomAgent(seed)
	}
	return agent.NewEvaluationAgent(createMCTS(config))
}

func createMCTS(config metrics.AgentConfig) *searcher.MCTS {
	options := []searcher.Option{}

	if config.Episodes > 0 {
		options = append(options, searcher.WithEpisodes(config.Episodes))
	}
	if config.Duration > 0 {
		options = append(options, searcher.WithDuration(config.Duration))
	}
	if config.Cutoff > 0 {
		options = append(options, searcher.WithCutoff(config.Cutoff))
	}
	if evaluate, ok := game.Evaluations[config.Evaluation]; ok {
		options = append(options, searcher.WithEvaluationFn(evaluate))
	}

	options = append(options, searcher.WithMetrics())
	return searcher.NewMCTS(config.Goroutines, options...)
}
