package experiments

import (
	"fmt"
	"time"

	"euphoria/engine"
	"euphoria/game"
	"euphoria/searcher/agent"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog/log"
)

// Throughput is the raw speed of the rules engine under random play.
type Throughput struct {
	Games    int
	Moves    int
	Turns    int
	Duration time.Duration
}

func (t Throughput) MovesPerSecond() float64 {
	if t.Duration <= 0 {
		return 0
	}
	return float64(t.Moves) / t.Duration.Seconds()
}

func (t Throughput) String() string {
	return fmt.Sprintf("%s games, %s intents, %s turns in %s (%s intents/s)",
		humanize.Comma(int64(t.Games)), humanize.Comma(int64(t.Moves)), humanize.Comma(int64(t.Turns)),
		t.Duration.Round(time.Millisecond), humanize.CommafWithDigits(t.MovesPerSecond(), 0))
}

// RunThroughputExperiment plays games between random agents and measures
// intents per second.
func RunThroughputExperiment(opts game.Options, games int) (Throughput, error) {
	var result Throughput
	log.Info().Msgf("starting throughput experiment with %d games...", games)
	start := time.Now()
	for i := 0; i < games; i++ {
		o := opts
		o.Seed = opts.Seed + uint64(i)
		agents := make([]agent.Agent, len(o.Players))
		for seat := range agents {
			agents[seat] = agent.NewRandomAgent(o.Seed + uint64(seat))
		}
		_, gameMetric, _, err := engine.NewLocalEngine(o, agents).Run()
		if err != nil {
			return result, fmt.Errorf("game %d: %w", i+1, err)
		}
		result.Games++
		result.Moves += gameMetric.TotalMoves
		result.Turns += gameMetric.Turns
	}
	result.Duration = time.Since(start)
	log.Info().Msgf("completed throughput experiment: %s", result)
	return result, nil
}
